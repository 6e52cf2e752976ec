// Package seed loads the demo data set the back-office ships with.
// Every record here is fictitious and lives only in process memory.
package seed

import (
	"time"

	"github.com/securebank/backoffice/internal/model"
	"github.com/securebank/backoffice/internal/store"
	"github.com/securebank/backoffice/pkg/logger"
)

func Customers() []model.Customer {
	return []model.Customer{
		{
			Name:          "John Smith",
			Email:         "john.smith@email.com",
			Phone:         "+1 234 567 8900",
			Address:       "123 Main St, New York, NY",
			AccountNumber: "ACC001234567",
			AccountType:   model.AccountTypeSavings,
			Balance:       15000,
		},
		{
			Name:          "Sarah Johnson",
			Email:         "sarah.j@email.com",
			Phone:         "+1 234 567 8901",
			Address:       "456 Oak Ave, Los Angeles, CA",
			AccountNumber: "ACC001234568",
			AccountType:   model.AccountTypeChecking,
			Balance:       8500,
		},
		{
			Name:          "Mike Wilson",
			Email:         "mike.w@email.com",
			Phone:         "+1 234 567 8902",
			Address:       "789 Pine St, Chicago, IL",
			AccountNumber: "ACC001234569",
			AccountType:   model.AccountTypeBusiness,
			Balance:       45000,
		},
	}
}

func Transactions() []model.Transaction {
	return []model.Transaction{
		{
			ID:           "T001",
			CustomerID:   "ACC001234567",
			CustomerName: "John Smith",
			Type:         model.TransactionTypeDeposit,
			Amount:       5000,
			Date:         time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			Description:  "Salary deposit",
			Status:       model.TransactionStatusCompleted,
		},
		{
			ID:           "T002",
			CustomerID:   "ACC001234568",
			CustomerName: "Sarah Johnson",
			Type:         model.TransactionTypeWithdrawal,
			Amount:       1200,
			Date:         time.Date(2024, 1, 15, 14, 20, 0, 0, time.UTC),
			Description:  "ATM withdrawal",
			Status:       model.TransactionStatusCompleted,
		},
		{
			ID:           "T003",
			CustomerID:   "ACC001234569",
			CustomerName: "Mike Wilson",
			Type:         model.TransactionTypeTransfer,
			Amount:       3500,
			Date:         time.Date(2024, 1, 15, 16, 45, 0, 0, time.UTC),
			Description:  "Business transfer",
			Status:       model.TransactionStatusPending,
		},
	}
}

func Loans() []model.Loan {
	approvedBy := "John Admin"
	approvalDate := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)
	return []model.Loan{
		{
			ID:              "L001",
			CustomerID:      "ACC001234567",
			CustomerName:    "John Smith",
			LoanType:        model.LoanTypePersonal,
			Amount:          25000,
			TermMonths:      36,
			InterestRate:    8.5,
			Status:          model.LoanStatusPending,
			ApplicationDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:              "L002",
			CustomerID:      "ACC001234568",
			CustomerName:    "Sarah Johnson",
			LoanType:        model.LoanTypeHome,
			Amount:          350000,
			TermMonths:      360,
			InterestRate:    4.2,
			Status:          model.LoanStatusUnderReview,
			ApplicationDate: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:              "L003",
			CustomerID:      "ACC001234569",
			CustomerName:    "Mike Wilson",
			LoanType:        model.LoanTypeAuto,
			Amount:          45000,
			TermMonths:      60,
			InterestRate:    6.8,
			Status:          model.LoanStatusApproved,
			ApplicationDate: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			ApprovedBy:      &approvedBy,
			ApprovalDate:    &approvalDate,
		},
	}
}

func Users() []model.User {
	lastAdmin := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	lastEmployee := time.Date(2024, 1, 15, 8, 15, 0, 0, time.UTC)
	lastTeller := time.Date(2024, 1, 10, 16, 45, 0, 0, time.UTC)
	return []model.User{
		{
			Username:  "admin",
			Name:      "John Admin",
			Email:     "admin@securebank.com",
			Role:      model.RoleAdmin,
			Status:    model.UserStatusActive,
			LastLogin: &lastAdmin,
			Password:  "admin123",
		},
		{
			Username:  "employee",
			Name:      "Sarah Employee",
			Email:     "sarah@securebank.com",
			Role:      model.RoleEmployee,
			Status:    model.UserStatusActive,
			LastLogin: &lastEmployee,
			Password:  "emp123",
		},
		{
			Username:  "teller01",
			Name:      "Mike Teller",
			Email:     "mike@securebank.com",
			Role:      model.RoleEmployee,
			Status:    model.UserStatusInactive,
			LastLogin: &lastTeller,
			Password:  "teller123",
		},
	}
}

func Activities() []model.ActivityCreateRequest {
	return []model.ActivityCreateRequest{
		{User: "John Admin", Action: "Approved loan application L003", Type: model.ActivityTypeApproval},
		{User: "Sarah Employee", Action: "Created new customer account", Type: model.ActivityTypeCustomerMgn},
		{User: "Sarah Employee", Action: "Processed deposit transaction T001", Type: model.ActivityTypeTransaction},
	}
}

// Load fills the stores with the demo records. Transactions and loans
// are prepended, so they go in reverse to keep the original display
// order.
func Load(customers *store.CustomerStore, transactions *store.TransactionStore, loans *store.LoanStore, users *store.UserStore) {
	for _, c := range Customers() {
		if _, err := customers.Append(c); err != nil {
			logger.Warn("seed: skipping customer", "account", c.AccountNumber, "error", err)
		}
	}
	txs := Transactions()
	for i := len(txs) - 1; i >= 0; i-- {
		if _, err := transactions.Prepend(txs[i]); err != nil {
			logger.Warn("seed: skipping transaction", "id", txs[i].ID, "error", err)
		}
	}
	lns := Loans()
	for i := len(lns) - 1; i >= 0; i-- {
		if _, err := loans.Prepend(lns[i]); err != nil {
			logger.Warn("seed: skipping loan", "id", lns[i].ID, "error", err)
		}
	}
	for _, u := range Users() {
		if _, err := users.Append(u); err != nil {
			logger.Warn("seed: skipping user", "username", u.Username, "error", err)
		}
	}
}
