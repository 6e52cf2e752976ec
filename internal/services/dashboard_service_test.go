package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/securebank/backoffice/internal/model"
	"github.com/securebank/backoffice/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Overview(t *testing.T) {
	ctx := context.Background()

	customers := store.NewCustomerStore()
	transactions := store.NewTransactionStore()
	loans := store.NewLoanStore()

	_, err := customers.Append(model.Customer{
		Name: "John Smith", Email: "john@example.com", Phone: "+1 555-0100",
		AccountNumber: "ACC001234567", AccountType: model.AccountTypeSavings, Balance: 1000,
	})
	require.NoError(t, err)
	_, err = customers.Append(model.Customer{
		Name: "Sarah Johnson", Email: "sarah@example.com", Phone: "+1 555-0101",
		AccountNumber: "ACC001234568", AccountType: model.AccountTypeChecking, Balance: 500,
	})
	require.NoError(t, err)

	for i := 1; i <= 5; i++ {
		_, err = transactions.Prepend(model.Transaction{
			ID: fmt.Sprintf("T%03d", i), CustomerID: "ACC001234567",
			CustomerName: "John Smith", Type: model.TransactionTypeDeposit,
			Amount: float64(i), Status: model.TransactionStatusCompleted,
		})
		require.NoError(t, err)
	}

	_, err = loans.Prepend(model.Loan{ID: "L001", Status: model.LoanStatusPending})
	require.NoError(t, err)
	_, err = loans.Prepend(model.Loan{ID: "L002", Status: model.LoanStatusApproved})
	require.NoError(t, err)

	svc := NewDashboardService(customers, transactions, loans)
	o := svc.Overview(ctx)

	assert.Equal(t, 2, o.TotalCustomers)
	assert.Equal(t, 5, o.TotalTransactions)
	assert.Equal(t, 1, o.PendingLoans)
	assert.InDelta(t, 1500, o.TotalBalance, 0.001)

	// recent views are capped at the three newest records
	require.Len(t, o.RecentTransactions, 3)
	assert.Equal(t, "T005", o.RecentTransactions[0].ID)
	require.Len(t, o.RecentLoans, 2)
	assert.Equal(t, "L002", o.RecentLoans[0].ID)
}
