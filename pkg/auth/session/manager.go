package session

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// ErrInvalidRefreshToken is returned when a rotation attempt presents a token
// that does not match the stored session.
var ErrInvalidRefreshToken = errors.New("invalid refresh token")

const refreshTokenBytes = 32

// Store is the subset of the redis client the session manager relies on.
type Store interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	AccessSessionKey(accessID string) string
}

// AccessSessionChecker is the read-only view used by request middleware.
type AccessSessionChecker interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
}

// Manager tracks active sessions in redis, keyed by the JWT ID. Each session
// stores the refresh token that can rotate it.
type Manager struct {
	store Store
	ttl   time.Duration
}

// Session is the result of a successful Generate or Rotate.
type Session struct {
	AccessID     string
	RefreshToken string
}

func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

// NewAccessID returns a fresh session identifier for use as the JWT ID.
func NewAccessID() string {
	return uuid.NewString()
}

// Generate creates a new session for accessID and returns the refresh token.
func (m *Manager) Generate(ctx context.Context, accessID string) (*Session, error) {
	if accessID == "" {
		return nil, errors.New("access id is required")
	}
	refresh, err := newRefreshToken()
	if err != nil {
		return nil, err
	}
	key := m.store.AccessSessionKey(accessID)
	if err := m.store.Set(ctx, key, refresh, m.ttl); err != nil {
		return nil, fmt.Errorf("storing session: %w", err)
	}
	return &Session{AccessID: accessID, RefreshToken: refresh}, nil
}

// Rotate swaps the current session for a new one when the presented refresh
// token matches. The old session is revoked before the new one is written.
func (m *Manager) Rotate(ctx context.Context, accessID, refreshToken string) (*Session, error) {
	stored, err := m.store.Get(ctx, m.store.AccessSessionKey(accessID))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(refreshToken)) != 1 {
		return nil, ErrInvalidRefreshToken
	}
	if err := m.Revoke(ctx, accessID); err != nil {
		return nil, err
	}
	return m.Generate(ctx, NewAccessID())
}

// Revoke deletes the session for accessID. Revoking a missing session is a no-op.
func (m *Manager) Revoke(ctx context.Context, accessID string) error {
	if err := m.store.Del(ctx, m.store.AccessSessionKey(accessID)); err != nil {
		return fmt.Errorf("revoking session: %w", err)
	}
	return nil
}

// HasSession reports whether a live session exists for accessID.
func (m *Manager) HasSession(ctx context.Context, accessID string) (bool, error) {
	_, err := m.store.Get(ctx, m.store.AccessSessionKey(accessID))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("checking session: %w", err)
	}
	return true, nil
}

func newRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
