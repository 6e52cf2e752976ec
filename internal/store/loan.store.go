package store

import (
	"sync"

	"github.com/securebank/backoffice/internal/model"
)

// LoanStore keeps loan applications newest-first.
type LoanStore struct {
	mu    sync.RWMutex
	loans []model.Loan
}

func NewLoanStore() *LoanStore {
	return &LoanStore{}
}

// Prepend inserts at the head so the newest application lists first.
func (s *LoanStore) Prepend(l model.Loan) (model.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.loans {
		if existing.ID == l.ID {
			return model.Loan{}, ErrDuplicateID
		}
	}
	s.loans = append([]model.Loan{l}, s.loans...)
	return l, nil
}

func (s *LoanStore) List() []model.Loan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Loan, len(s.loans))
	copy(out, s.loans)
	return out
}

// Search filters by customer name, id or loan type, preserving order.
func (s *LoanStore) Search(q string) []model.Loan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Loan, 0, len(s.loans))
	for _, l := range s.loans {
		if containsFold(q, l.CustomerName, l.ID, string(l.LoanType)) {
			out = append(out, l)
		}
	}
	return out
}

func (s *LoanStore) Get(id string) (model.Loan, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.loans {
		if l.ID == id {
			return l, true
		}
	}
	return model.Loan{}, false
}

func (s *LoanStore) Has(id string) bool {
	_, ok := s.Get(id)
	return ok
}

// Update locates the loan by identity and applies fn to it under the
// write lock, so a status check and the transition it guards are
// atomic. fn returning an error aborts without mutating.
func (s *LoanStore) Update(id string, fn func(*model.Loan) error) (model.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.loans {
		if s.loans[i].ID != id {
			continue
		}
		updated := s.loans[i]
		if err := fn(&updated); err != nil {
			return model.Loan{}, err
		}
		s.loans[i] = updated
		return updated, nil
	}
	return model.Loan{}, ErrNotFound
}

func (s *LoanStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.loans)
}

// CountByStatus is used by the dashboard (pending applications card).
func (s *LoanStore) CountByStatus(status model.LoanStatus) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, l := range s.loans {
		if l.Status == status {
			n++
		}
	}
	return n
}
