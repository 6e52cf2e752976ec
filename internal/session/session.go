// Package session implements the login gate. Authentication is a
// deliberate stand-in for a real identity service: credentials are
// checked by exact match (locally or against the simulated identity
// provider), after an artificial delay modeling the network round
// trip. Sessions are opaque uuid tokens held in Redis with a TTL, with
// an explicit create (login) and destroy (logout) lifecycle.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/securebank/backoffice/internal/model"
	"github.com/securebank/backoffice/pkg/redis"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInactiveUser       = errors.New("user account is inactive")
	ErrNoSession          = errors.New("no session for token")
)

// Identity is the claim set a successful credential check yields.
type Identity struct {
	Username string     `json:"username"`
	Name     string     `json:"name"`
	Role     model.Role `json:"role"`
}

// Session is the server-side record of an authenticated operator.
type Session struct {
	Token    string     `json:"token"`
	Username string     `json:"username"`
	Name     string     `json:"name"`
	Role     model.Role `json:"role"`
	IssuedAt time.Time  `json:"issued_at"`
}

// CredentialVerifier is the seam toward the identity collaborator.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (Identity, error)
}

// LoginRecorder gets told about successful logins so the user record
// can carry a last-login stamp.
type LoginRecorder interface {
	TouchLastLogin(username string, at time.Time)
}

type Manager struct {
	verifier CredentialVerifier
	redis    redis.RedisAdapter
	recorder LoginRecorder
	ttl      time.Duration
	delay    time.Duration
}

func NewManager(verifier CredentialVerifier, redisAdapter redis.RedisAdapter, recorder LoginRecorder, ttl, delay time.Duration) *Manager {
	return &Manager{
		verifier: verifier,
		redis:    redisAdapter,
		recorder: recorder,
		ttl:      ttl,
		delay:    delay,
	}
}

// Login resolves the credential check after the configured artificial
// delay. The wait is cancellable: a dead request context never applies
// a stale session write.
func (m *Manager) Login(ctx context.Context, username, password string) (Session, error) {
	if m.delay > 0 {
		select {
		case <-ctx.Done():
			return Session{}, ctx.Err()
		case <-time.After(m.delay):
		}
	}

	id, err := m.verifier.Verify(ctx, username, password)
	if err != nil {
		return Session{}, err
	}

	s := Session{
		Token:    uuid.NewString(),
		Username: id.Username,
		Name:     id.Name,
		Role:     id.Role,
		IssuedAt: time.Now().UTC(),
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return Session{}, fmt.Errorf("marshal session: %w", err)
	}
	if err := m.redis.Set(sessionKey(s.Token), raw, m.ttl); err != nil {
		return Session{}, fmt.Errorf("store session: %w", err)
	}

	if m.recorder != nil {
		m.recorder.TouchLastLogin(id.Username, s.IssuedAt)
	}
	return s, nil
}

// Resolve maps a bearer token back to its session.
func (m *Manager) Resolve(token string) (Session, error) {
	if token == "" {
		return Session{}, ErrNoSession
	}
	raw, err := m.redis.Get(sessionKey(token))
	if err != nil {
		if errors.Is(err, redis.NilError) {
			return Session{}, ErrNoSession
		}
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return s, nil
}

// Logout tears the session down. Unknown tokens are a no-op.
func (m *Manager) Logout(token string) error {
	return m.redis.Del(sessionKey(token))
}

func sessionKey(token string) string {
	return "session:" + token
}
