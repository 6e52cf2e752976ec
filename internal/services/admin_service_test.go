package services

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/securebank/backoffice/internal/audit"
	"github.com/securebank/backoffice/internal/model"
	"github.com/securebank/backoffice/internal/store"
	xredis "github.com/securebank/backoffice/pkg/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAdminService(t *testing.T) (*AdminService, *store.UserStore) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	// unique connection name per test to avoid the adapter cache
	adapter, err := xredis.NewRedisAdapter(t.Name()+"-"+mr.Addr(), "", &redis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	require.NoError(t, err)

	users := store.NewUserStore()
	feed := audit.NewFeed(adapter, "test:activities", 0)
	return NewAdminService(users, feed, nil), users
}

func TestAdminService_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("new users start active with the employee role by default", func(t *testing.T) {
		svc, _ := setupAdminService(t)

		u, err := svc.CreateUser(ctx, model.UserCreateRequest{
			Username: "jdoe",
			Name:     "Jane Doe",
			Email:    "jane@securebank.com",
			Password: "secret",
		}, "John Admin")
		require.NoError(t, err)

		assert.Equal(t, int64(1), u.ID)
		assert.Equal(t, model.RoleEmployee, u.Role)
		assert.Equal(t, model.UserStatusActive, u.Status)
		assert.Nil(t, u.LastLogin)
	})

	t.Run("explicit role is kept", func(t *testing.T) {
		svc, _ := setupAdminService(t)

		u, err := svc.CreateUser(ctx, model.UserCreateRequest{
			Username: "root",
			Name:     "Root Admin",
			Email:    "root@securebank.com",
			Role:     model.RoleAdmin,
			Password: "secret",
		}, "John Admin")
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, u.Role)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		svc, users := setupAdminService(t)

		_, err := svc.CreateUser(ctx, model.UserCreateRequest{
			Username: "jdoe",
			Name:     "Jane Doe",
			Email:    "jane@securebank.com",
		}, "John Admin")
		assert.ErrorContains(t, err, "password is required")
		assert.Equal(t, 0, users.Len())
	})
}

func TestAdminService_RoleAndStatus(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupAdminService(t)

	u, err := svc.CreateUser(ctx, model.UserCreateRequest{
		Username: "jdoe",
		Name:     "Jane Doe",
		Email:    "jane@securebank.com",
		Password: "secret",
	}, "John Admin")
	require.NoError(t, err)

	promoted, err := svc.ChangeRole(ctx, u.ID, model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, promoted.Role)

	_, err = svc.ChangeRole(ctx, u.ID, "superuser")
	assert.ErrorContains(t, err, "unknown role")

	_, err = svc.ChangeRole(ctx, 999, model.RoleAdmin)
	assert.ErrorIs(t, err, ErrUserNotFound)

	disabled, err := svc.ToggleStatus(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, model.UserStatusInactive, disabled.Status)

	_, err = svc.ToggleStatus(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAdminService_Activities(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupAdminService(t)

	a, err := svc.RecordActivity(ctx, model.ActivityCreateRequest{
		User:   "John Admin",
		Action: "Approved loan application L002",
		Type:   model.ActivityTypeApproval,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)

	_, err = svc.RecordActivity(ctx, model.ActivityCreateRequest{
		User: "John Admin",
	})
	assert.ErrorContains(t, err, "action is required")

	list, err := svc.ListActivities(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Approved loan application L002", list[0].Action)
	assert.Equal(t, model.ActivityTypeApproval, list[0].Type)
}

func TestAdminService_Stats(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupAdminService(t)

	_, err := svc.CreateUser(ctx, model.UserCreateRequest{
		Username: "admin", Name: "John Admin", Email: "admin@securebank.com",
		Role: model.RoleAdmin, Password: "secret",
	}, "system")
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, model.UserCreateRequest{
		Username: "employee", Name: "Sarah Employee", Email: "sarah@securebank.com",
		Password: "secret",
	}, "system")
	require.NoError(t, err)

	_, err = svc.RecordActivity(ctx, model.ActivityCreateRequest{
		User: "John Admin", Action: "Created user account", Type: model.ActivityTypeCustomerMgn,
	})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalUsers)
	assert.Equal(t, 2, stats.ActiveUsers)
	assert.Equal(t, 1, stats.AdminUsers)
	assert.Equal(t, int64(1), stats.RecentActivities)
}
