package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
)

const (
	idempotencyKeyPrefix = "idempotency:"
	processingMarker     = "PROCESSING"

	DefaultLockTTL   = 10 * time.Second
	DefaultRecordTTL = 24 * time.Hour
)

// IdempotencyStore remembers responses to keyed requests.
type IdempotencyStore struct {
	client    *redis.Client
	lockTTL   time.Duration
	recordTTL time.Duration
}

func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client, lockTTL: DefaultLockTTL, recordTTL: DefaultRecordTTL}
}

// Reserve claims key for the caller. When the key already completed it
// returns the stored response; when another request holds it, it returns
// domain.ErrRequestInProgress. A nil response and nil error mean the caller
// owns the key and must Complete or Release it.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string) ([]byte, error) {
	k := idempotencyKeyPrefix + key

	acquired, err := s.client.SetNX(ctx, k, processingMarker, s.lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("reserve idempotency key: %w", err)
	}
	if acquired {
		return nil, nil
	}

	val, err := s.client.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		// Lock expired between SETNX and GET.
		return nil, domain.ErrRequestInProgress
	}
	if err != nil {
		return nil, fmt.Errorf("read idempotency key: %w", err)
	}
	if string(val) == processingMarker {
		return nil, domain.ErrRequestInProgress
	}
	return val, nil
}

func (s *IdempotencyStore) Complete(ctx context.Context, key string, response []byte) error {
	if err := s.client.Set(ctx, idempotencyKeyPrefix+key, response, s.recordTTL).Err(); err != nil {
		return fmt.Errorf("store idempotent response: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, idempotencyKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}
