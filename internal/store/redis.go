package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	apperrors "visa-bot/internal/common/errors"
	"visa-bot/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps records as JSON documents under prefix+identity. It is
// opt-in; the default deployment uses MemoryStore.
type RedisStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client redis.Cmdable, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(id models.Identity) string {
	return s.prefix + id.String()
}

func (s *RedisStore) Get(ctx context.Context, id models.Identity) (*models.FormRecord, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError(fmt.Errorf("get %s: %w", s.key(id), err))
	}

	if err := validateDocument(data); err != nil {
		return nil, apperrors.NewStoreUnavailableError(fmt.Errorf("decode %s: %w", s.key(id), err))
	}

	var rec models.FormRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, apperrors.NewStoreUnavailableError(fmt.Errorf("decode %s: %w", s.key(id), err))
	}
	if rec.Answers == nil {
		rec.Answers = make(map[models.Field]string)
	}
	return &rec, nil
}

func (s *RedisStore) Set(ctx context.Context, rec *models.FormRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return apperrors.NewInternalError(fmt.Errorf("encode record: %w", err))
	}
	if err := s.client.Set(ctx, s.key(rec.Identity), data, s.ttl).Err(); err != nil {
		return apperrors.NewStoreUnavailableError(fmt.Errorf("set %s: %w", s.key(rec.Identity), err))
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, id models.Identity) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return apperrors.NewStoreUnavailableError(fmt.Errorf("del %s: %w", s.key(id), err))
	}
	return nil
}

func (s *RedisStore) Health(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
