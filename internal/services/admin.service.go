package services

import (
	"context"
	"errors"

	"github.com/securebank/backoffice/internal/audit"
	"github.com/securebank/backoffice/internal/model"
	"github.com/securebank/backoffice/internal/notify"
	"github.com/securebank/backoffice/internal/store"
	"github.com/securebank/backoffice/pkg/prom"
)

var ErrUserNotFound = errors.New("user not found")

// AdminService covers the admin panel: user management and the
// activity feed.
type AdminService struct {
	users    *store.UserStore
	feed     *audit.Feed
	notifier *notify.Notifier
}

func NewAdminService(users *store.UserStore, feed *audit.Feed, notifier *notify.Notifier) *AdminService {
	return &AdminService{
		users:    users,
		feed:     feed,
		notifier: notifier,
	}
}

// CreateUser appends a back-office user. New users start Active with
// no last-login stamp; the password is held write-only for the login
// gate.
func (s *AdminService) CreateUser(ctx context.Context, p model.UserCreateRequest, actor string) (model.User, error) {
	if err := p.Validate(); err != nil {
		return model.User{}, err
	}

	role := p.Role
	if role == "" {
		role = model.RoleEmployee
	}

	u := model.User{
		Username: p.Username,
		Name:     p.Name,
		Email:    p.Email,
		Role:     role,
		Status:   model.UserStatusActive,
		Password: p.Password,
	}

	created, err := s.users.Append(u)
	if err != nil {
		return model.User{}, err
	}

	s.notifier.Publish(notify.Event{
		Kind:    notify.EventRecordCreated,
		Entity:  "user",
		Actor:   actor,
		Message: "User created successfully",
	})
	return created, nil
}

// ChangeRole replaces only the role of the matching user.
func (s *AdminService) ChangeRole(ctx context.Context, userID int64, role model.Role) (model.User, error) {
	if !role.Valid() {
		return model.User{}, errors.New("unknown role: " + string(role))
	}
	u, ok := s.users.SetRole(userID, role)
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return u, nil
}

// ToggleStatus flips a user between Active and Inactive.
func (s *AdminService) ToggleStatus(ctx context.Context, userID int64) (model.User, error) {
	u, ok := s.users.ToggleStatus(userID)
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return u, nil
}

func (s *AdminService) SearchUsers(ctx context.Context, q string) []model.User {
	if q != "" {
		prom.IncCounterVec(prom.SystemRecords, prom.MetricSearches, "user")
	}
	return s.users.Search(q)
}

func (s *AdminService) ListUsers(ctx context.Context) []model.User {
	return s.users.List()
}

// RecordActivity appends an entry to the audit feed. Feed entries are
// recorded explicitly; creating a customer or deciding a loan does not
// write one on its own.
func (s *AdminService) RecordActivity(ctx context.Context, p model.ActivityCreateRequest) (model.Activity, error) {
	a, err := s.feed.Record(p)
	if err != nil {
		return model.Activity{}, err
	}
	s.notifier.Publish(notify.Event{
		Kind:    notify.EventRecordCreated,
		Entity:  "activity",
		Actor:   p.User,
		Message: p.Action,
	})
	return a, nil
}

func (s *AdminService) ListActivities(ctx context.Context) ([]model.Activity, error) {
	return s.feed.List()
}

// SystemStats are the admin panel header cards.
type SystemStats struct {
	TotalUsers       int   `json:"total_users"`
	ActiveUsers      int   `json:"active_users"`
	AdminUsers       int   `json:"admin_users"`
	RecentActivities int64 `json:"recent_activities"`
}

func (s *AdminService) Stats(ctx context.Context) (SystemStats, error) {
	n, err := s.feed.Len()
	if err != nil {
		return SystemStats{}, err
	}
	return SystemStats{
		TotalUsers:       s.users.Len(),
		ActiveUsers:      s.users.CountByStatus(model.UserStatusActive),
		AdminUsers:       s.users.CountByRole(model.RoleAdmin),
		RecentActivities: n,
	}, nil
}
