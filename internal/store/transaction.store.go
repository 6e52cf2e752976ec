package store

import (
	"sync"

	"github.com/securebank/backoffice/internal/model"
)

// TransactionStore keeps transactions newest-first. Records are
// immutable once inserted.
type TransactionStore struct {
	mu           sync.RWMutex
	transactions []model.Transaction
}

func NewTransactionStore() *TransactionStore {
	return &TransactionStore{}
}

// Prepend inserts at the head so the newest transaction lists first.
func (s *TransactionStore) Prepend(t model.Transaction) (model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.transactions {
		if existing.ID == t.ID {
			return model.Transaction{}, ErrDuplicateID
		}
	}
	s.transactions = append([]model.Transaction{t}, s.transactions...)
	return t, nil
}

func (s *TransactionStore) List() []model.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Search filters by customer name, id or type, preserving order.
func (s *TransactionStore) Search(q string) []model.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		if containsFold(q, t.CustomerName, t.ID, string(t.Type)) {
			out = append(out, t)
		}
	}
	return out
}

func (s *TransactionStore) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.transactions {
		if t.ID == id {
			return true
		}
	}
	return false
}

func (s *TransactionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.transactions)
}
