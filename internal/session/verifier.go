package session

import (
	"context"
	"crypto/subtle"

	"github.com/securebank/backoffice/internal/model"
)

// UserDirectory is the slice of the user store the verifier needs.
type UserDirectory interface {
	FindByUsername(username string) (model.User, bool)
}

// DirectoryVerifier checks credentials against the in-process user
// directory by exact match. Inactive users are refused.
type DirectoryVerifier struct {
	users UserDirectory
}

func NewDirectoryVerifier(users UserDirectory) *DirectoryVerifier {
	return &DirectoryVerifier{users: users}
}

func (v *DirectoryVerifier) Verify(_ context.Context, username, password string) (Identity, error) {
	u, ok := v.users.FindByUsername(username)
	if !ok {
		return Identity{}, ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) != 1 {
		return Identity{}, ErrInvalidCredentials
	}
	if u.Status != model.UserStatusActive {
		return Identity{}, ErrInactiveUser
	}
	return Identity{Username: u.Username, Name: u.Name, Role: u.Role}, nil
}
