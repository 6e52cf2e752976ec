package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/securebank/backoffice/internal/model"
	"github.com/securebank/backoffice/internal/store"
	"github.com/securebank/backoffice/pkg/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupManager(t *testing.T, delay time.Duration) (*Manager, *store.UserStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	adapter, err := redis.NewRedisAdapter(t.Name()+"-"+mr.Addr(), "", &goredis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	require.NoError(t, err)

	users := store.NewUserStore()
	_, err = users.Append(model.User{
		Username: "admin", Name: "John Admin", Email: "admin@securebank.com",
		Role: model.RoleAdmin, Status: model.UserStatusActive, Password: "admin123",
	})
	require.NoError(t, err)
	_, err = users.Append(model.User{
		Username: "teller01", Name: "Mike Teller", Email: "mike@securebank.com",
		Role: model.RoleEmployee, Status: model.UserStatusInactive, Password: "teller123",
	})
	require.NoError(t, err)

	return NewManager(NewDirectoryVerifier(users), adapter, users, time.Hour, delay), users, mr
}

func TestManager_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials open a resolvable session", func(t *testing.T) {
		m, users, _ := setupManager(t, 0)

		s, err := m.Login(ctx, "admin", "admin123")
		require.NoError(t, err)
		assert.NotEmpty(t, s.Token)
		assert.Equal(t, "admin", s.Username)
		assert.Equal(t, "John Admin", s.Name)
		assert.Equal(t, model.RoleAdmin, s.Role)
		assert.False(t, s.IssuedAt.IsZero())

		resolved, err := m.Resolve(s.Token)
		require.NoError(t, err)
		assert.Equal(t, s.Token, resolved.Token)
		assert.Equal(t, s.Username, resolved.Username)

		u, _ := users.FindByUsername("admin")
		require.NotNil(t, u.LastLogin)
	})

	t.Run("wrong password", func(t *testing.T) {
		m, _, _ := setupManager(t, 0)
		_, err := m.Login(ctx, "admin", "wrongpass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		m, _, _ := setupManager(t, 0)
		_, err := m.Login(ctx, "ghost", "admin123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		m, _, _ := setupManager(t, 0)
		_, err := m.Login(ctx, "teller01", "teller123")
		assert.ErrorIs(t, err, ErrInactiveUser)
	})

	t.Run("waits out the configured delay", func(t *testing.T) {
		delay := 50 * time.Millisecond
		m, _, _ := setupManager(t, delay)

		start := time.Now()
		_, err := m.Login(ctx, "admin", "admin123")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), delay)
	})

	t.Run("cancelled context aborts the wait", func(t *testing.T) {
		m, _, _ := setupManager(t, 10*time.Second)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		start := time.Now()
		_, err := m.Login(cancelled, "admin", "admin123")
		assert.ErrorIs(t, err, context.Canceled)
		assert.Less(t, time.Since(start), time.Second)
	})
}

func TestManager_Resolve(t *testing.T) {
	t.Run("unknown token", func(t *testing.T) {
		m, _, _ := setupManager(t, 0)
		_, err := m.Resolve("not-a-token")
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("empty token", func(t *testing.T) {
		m, _, _ := setupManager(t, 0)
		_, err := m.Resolve("")
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("expired session is gone", func(t *testing.T) {
		m, _, mr := setupManager(t, 0)

		s, err := m.Login(context.Background(), "admin", "admin123")
		require.NoError(t, err)

		mr.FastForward(2 * time.Hour)

		_, err = m.Resolve(s.Token)
		assert.ErrorIs(t, err, ErrNoSession)
	})
}

func TestManager_Logout(t *testing.T) {
	m, _, _ := setupManager(t, 0)

	s, err := m.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	require.NoError(t, m.Logout(s.Token))

	_, err = m.Resolve(s.Token)
	assert.ErrorIs(t, err, ErrNoSession)

	// logging out twice is a no-op
	assert.NoError(t, m.Logout(s.Token))
}
