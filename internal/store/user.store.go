package store

import (
	"sync"
	"time"

	"github.com/securebank/backoffice/internal/model"
)

// UserStore keeps back-office users in append order and owns the
// sequential numeric identifier.
type UserStore struct {
	mu     sync.RWMutex
	users  []model.User
	nextID int64
}

func NewUserStore() *UserStore {
	return &UserStore{nextID: 1}
}

func (s *UserStore) Append(u model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.nextID
	s.nextID++
	s.users = append(s.users, u)
	return u, nil
}

func (s *UserStore) List() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.User, len(s.users))
	copy(out, s.users)
	return out
}

// Search filters by name, username or email, preserving order.
func (s *UserStore) Search(q string) []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		if containsFold(q, u.Name, u.Username, u.Email) {
			out = append(out, u)
		}
	}
	return out
}

func (s *UserStore) Get(id int64) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return model.User{}, false
}

func (s *UserStore) FindByUsername(username string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, true
		}
	}
	return model.User{}, false
}

// SetRole replaces only the role of the matching user. A miss is
// reported, not an error: the caller decides whether that matters.
func (s *UserStore) SetRole(id int64, role model.Role) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].Role = role
			return s.users[i], true
		}
	}
	return model.User{}, false
}

// ToggleStatus flips Active/Inactive. Toggling twice restores the
// original value.
func (s *UserStore) ToggleStatus(id int64) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].Status = s.users[i].Status.Toggled()
			return s.users[i], true
		}
	}
	return model.User{}, false
}

// TouchLastLogin stamps the login time on the matching username.
func (s *UserStore) TouchLastLogin(username string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].Username == username {
			s.users[i].LastLogin = &at
			return
		}
	}
}

func (s *UserStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

func (s *UserStore) CountByStatus(status model.UserStatus) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, u := range s.users {
		if u.Status == status {
			n++
		}
	}
	return n
}

func (s *UserStore) CountByRole(role model.Role) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, u := range s.users {
		if u.Role == role {
			n++
		}
	}
	return n
}
