package store

import (
	"testing"
	"time"

	"github.com/securebank/backoffice/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser(username, name string, role model.Role) model.User {
	return model.User{
		Username: username,
		Name:     name,
		Email:    username + "@securebank.com",
		Role:     role,
		Status:   model.UserStatusActive,
		Password: "secret",
	}
}

func TestUserStore_Append(t *testing.T) {
	s := NewUserStore()

	admin, err := s.Append(testUser("admin", "John Admin", model.RoleAdmin))
	require.NoError(t, err)
	emp, err := s.Append(testUser("employee", "Sarah Employee", model.RoleEmployee))
	require.NoError(t, err)

	assert.Equal(t, int64(1), admin.ID)
	assert.Equal(t, int64(2), emp.ID)
	assert.Equal(t, "John Admin", s.List()[0].Name)
}

func TestUserStore_FindByUsername(t *testing.T) {
	s := NewUserStore()
	_, err := s.Append(testUser("admin", "John Admin", model.RoleAdmin))
	require.NoError(t, err)

	u, ok := s.FindByUsername("admin")
	require.True(t, ok)
	assert.Equal(t, model.RoleAdmin, u.Role)

	_, ok = s.FindByUsername("ghost")
	assert.False(t, ok)
}

func TestUserStore_SetRole(t *testing.T) {
	s := NewUserStore()
	u, err := s.Append(testUser("employee", "Sarah Employee", model.RoleEmployee))
	require.NoError(t, err)

	updated, ok := s.SetRole(u.ID, model.RoleAdmin)
	require.True(t, ok)
	assert.Equal(t, model.RoleAdmin, updated.Role)
	assert.Equal(t, "Sarah Employee", updated.Name)

	_, ok = s.SetRole(999, model.RoleAdmin)
	assert.False(t, ok)
}

func TestUserStore_ToggleStatus(t *testing.T) {
	s := NewUserStore()
	u, err := s.Append(testUser("teller01", "Mike Teller", model.RoleEmployee))
	require.NoError(t, err)

	toggled, ok := s.ToggleStatus(u.ID)
	require.True(t, ok)
	assert.Equal(t, model.UserStatusInactive, toggled.Status)

	// toggling twice round-trips
	back, ok := s.ToggleStatus(u.ID)
	require.True(t, ok)
	assert.Equal(t, model.UserStatusActive, back.Status)

	_, ok = s.ToggleStatus(999)
	assert.False(t, ok)
}

func TestUserStore_TouchLastLogin(t *testing.T) {
	s := NewUserStore()
	_, err := s.Append(testUser("admin", "John Admin", model.RoleAdmin))
	require.NoError(t, err)

	u, _ := s.FindByUsername("admin")
	require.Nil(t, u.LastLogin)

	at := time.Date(2024, 1, 20, 9, 30, 0, 0, time.UTC)
	s.TouchLastLogin("admin", at)

	u, _ = s.FindByUsername("admin")
	require.NotNil(t, u.LastLogin)
	assert.Equal(t, at, *u.LastLogin)
}

func TestUserStore_Counts(t *testing.T) {
	s := NewUserStore()
	_, err := s.Append(testUser("admin", "John Admin", model.RoleAdmin))
	require.NoError(t, err)
	_, err = s.Append(testUser("employee", "Sarah Employee", model.RoleEmployee))
	require.NoError(t, err)
	inactive := testUser("teller01", "Mike Teller", model.RoleEmployee)
	inactive.Status = model.UserStatusInactive
	_, err = s.Append(inactive)
	require.NoError(t, err)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 2, s.CountByStatus(model.UserStatusActive))
	assert.Equal(t, 1, s.CountByRole(model.RoleAdmin))
}
