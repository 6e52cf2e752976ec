package services

import (
	"context"

	"github.com/securebank/backoffice/internal/model"
	"github.com/securebank/backoffice/internal/store"
)

// DashboardService aggregates the landing-page counters from the
// record stores. Everything here is a read-only view.
type DashboardService struct {
	customers    *store.CustomerStore
	transactions *store.TransactionStore
	loans        *store.LoanStore
}

func NewDashboardService(customers *store.CustomerStore, transactions *store.TransactionStore, loans *store.LoanStore) *DashboardService {
	return &DashboardService{
		customers:    customers,
		transactions: transactions,
		loans:        loans,
	}
}

type DashboardOverview struct {
	TotalCustomers     int                 `json:"total_customers"`
	TotalTransactions  int                 `json:"total_transactions"`
	PendingLoans       int                 `json:"pending_loans"`
	TotalBalance       float64             `json:"total_balance"`
	RecentTransactions []model.Transaction `json:"recent_transactions"`
	RecentLoans        []model.Loan        `json:"recent_loans"`
}

const recentLimit = 3

func (s *DashboardService) Overview(ctx context.Context) DashboardOverview {
	txs := s.transactions.List()
	if len(txs) > recentLimit {
		txs = txs[:recentLimit]
	}
	loans := s.loans.List()
	if len(loans) > recentLimit {
		loans = loans[:recentLimit]
	}
	return DashboardOverview{
		TotalCustomers:     s.customers.Len(),
		TotalTransactions:  s.transactions.Len(),
		PendingLoans:       s.loans.CountByStatus(model.LoanStatusPending),
		TotalBalance:       s.customers.TotalBalance(),
		RecentTransactions: txs,
		RecentLoans:        loans,
	}
}
