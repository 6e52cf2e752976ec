package store

import (
	"sync"

	"github.com/securebank/backoffice/internal/model"
)

// CustomerStore keeps customers in append order and owns the
// sequential numeric identifier.
type CustomerStore struct {
	mu        sync.RWMutex
	customers []model.Customer
	nextID    int64
}

func NewCustomerStore() *CustomerStore {
	return &CustomerStore{nextID: 1}
}

// Append inserts the customer at the end of the collection and assigns
// the next sequential id. The generated account number must be unique.
func (s *CustomerStore) Append(c model.Customer) (model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.customers {
		if existing.AccountNumber == c.AccountNumber {
			return model.Customer{}, ErrDuplicateID
		}
	}
	c.ID = s.nextID
	s.nextID++
	s.customers = append(s.customers, c)
	return c, nil
}

func (s *CustomerStore) List() []model.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

// Search filters by name, email or account number, preserving order.
func (s *CustomerStore) Search(q string) []model.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		if containsFold(q, c.Name, c.Email, c.AccountNumber) {
			out = append(out, c)
		}
	}
	return out
}

func (s *CustomerStore) FindByAccountNumber(acc string) (model.Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.customers {
		if c.AccountNumber == acc {
			return c, true
		}
	}
	return model.Customer{}, false
}

func (s *CustomerStore) HasAccountNumber(acc string) bool {
	_, ok := s.FindByAccountNumber(acc)
	return ok
}

func (s *CustomerStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.customers)
}

// TotalBalance sums every customer balance, for the dashboard card.
func (s *CustomerStore) TotalBalance() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, c := range s.customers {
		total += c.Balance
	}
	return total
}
