package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/habistudio/habi-backend/pkg/enums"
)

// Store is the subset of the redis client the manager depends on.
type Store interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	AccessSessionKey(accessID string) string
}

// Manager tracks which access-token IDs are backed by a live server session.
// Logout revokes the jti so a stolen token dies with the session.
type Manager struct {
	store Store
	ttl   time.Duration
}

func NewManager(store Store, ttl time.Duration) (*Manager, error) {
	if store == nil {
		return nil, errors.New("session store is required")
	}
	if ttl <= 0 {
		return nil, errors.New("session ttl must be positive")
	}
	return &Manager{store: store, ttl: ttl}, nil
}

// Create registers the access-token ID for the session's lifetime.
func (m *Manager) Create(ctx context.Context, accessID string, role enums.Role) error {
	if accessID == "" {
		return errors.New("access id is required")
	}
	if !role.IsValid() {
		return fmt.Errorf("invalid role %q", role)
	}
	return m.store.Set(ctx, m.store.AccessSessionKey(accessID), role.String(), m.ttl)
}

// Has reports whether the access-token ID still maps to a live session.
func (m *Manager) Has(ctx context.Context, accessID string) (bool, error) {
	if accessID == "" {
		return false, nil
	}
	_, err := m.store.Get(ctx, m.store.AccessSessionKey(accessID))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Revoke removes the session entry for the access-token ID.
func (m *Manager) Revoke(ctx context.Context, accessID string) error {
	if accessID == "" {
		return nil
	}
	return m.store.Del(ctx, m.store.AccessSessionKey(accessID))
}
