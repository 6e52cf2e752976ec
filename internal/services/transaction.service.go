package services

import (
	"context"
	"time"

	"github.com/securebank/backoffice/internal/model"
	"github.com/securebank/backoffice/internal/notify"
	"github.com/securebank/backoffice/internal/store"
	"github.com/securebank/backoffice/pkg/prom"
)

type TransactionService struct {
	transactions *store.TransactionStore
	customers    *store.CustomerStore
	notifier     *notify.Notifier
}

func NewTransactionService(transactions *store.TransactionStore, customers *store.CustomerStore, notifier *notify.Notifier) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		customers:    customers,
		notifier:     notifier,
	}
}

// Create processes a transaction. The customer name is resolved once,
// here, and frozen on the record as of creation time; it does not
// follow later customer changes.
func (s *TransactionService) Create(ctx context.Context, p model.TransactionCreateRequest, actor string) (model.Transaction, error) {
	if err := p.Validate(); err != nil {
		return model.Transaction{}, err
	}

	customerName := "Unknown"
	if c, ok := s.customers.FindByAccountNumber(p.CustomerID); ok {
		customerName = c.Name
	}

	id, err := generateID("T", 3, s.transactions.Has)
	if err != nil {
		return model.Transaction{}, err
	}

	description := p.Description
	if description == "" {
		description = string(p.Type) + " transaction"
	}

	t := model.Transaction{
		ID:           id,
		CustomerID:   p.CustomerID,
		CustomerName: customerName,
		Type:         p.Type,
		Amount:       parseAmount(p.Amount),
		Date:         time.Now().UTC(),
		Description:  description,
		Status:       model.TransactionStatusCompleted,
	}

	created, err := s.transactions.Prepend(t)
	if err != nil {
		return model.Transaction{}, err
	}

	s.notifier.Publish(notify.Event{
		Kind:    notify.EventRecordCreated,
		Entity:  "transaction",
		Actor:   actor,
		Message: "Transaction processed successfully",
	})
	return created, nil
}

func (s *TransactionService) Search(ctx context.Context, q string) []model.Transaction {
	if q != "" {
		prom.IncCounterVec(prom.SystemRecords, prom.MetricSearches, "transaction")
	}
	return s.transactions.Search(q)
}

func (s *TransactionService) List(ctx context.Context) []model.Transaction {
	return s.transactions.List()
}
