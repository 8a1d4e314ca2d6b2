// Package store keeps one FormRecord per identity.
package store

import (
	"context"
	"errors"
	"fmt"

	"visa-bot/internal/common/config"
	"visa-bot/internal/models"

	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("form record not found")

// Store is the identity-keyed record store. Get returns a copy; callers
// persist changes with Set. Concurrent writers for the same identity are
// not coordinated: the last Set wins.
type Store interface {
	Get(ctx context.Context, id models.Identity) (*models.FormRecord, error)
	Set(ctx context.Context, rec *models.FormRecord) error
	Clear(ctx context.Context, id models.Identity) error
	Health(ctx context.Context) error
}

// New builds the backend selected by cfg.Backend. client is only used by
// the redis backend and may be nil otherwise.
func New(cfg config.StoreConfig, client redis.Cmdable) (Store, error) {
	switch cfg.Backend {
	case "", config.StoreBackendMemory:
		return NewMemoryStore(), nil
	case config.StoreBackendRedis:
		if client == nil {
			return nil, fmt.Errorf("redis store requires a redis client")
		}
		return NewRedisStore(client, cfg.KeyPrefix, cfg.TTLDuration()), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// Load returns the stored record or nil when none exists.
func Load(ctx context.Context, s Store, id models.Identity) (*models.FormRecord, error) {
	rec, err := s.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return rec, err
}
