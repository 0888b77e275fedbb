// Package memory holds process-local stores used when redis or Postgres
// is not configured.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
)

const (
	DefaultLockTTL   = 10 * time.Second
	DefaultRecordTTL = 24 * time.Hour
)

type idempotencyEntry struct {
	response  []byte
	expiresAt time.Time
}

// IdempotencyStore mirrors the redis store's reserve/complete protocol.
type IdempotencyStore struct {
	mu        sync.Mutex
	now       func() time.Time
	lockTTL   time.Duration
	recordTTL time.Duration
	entries   map[string]idempotencyEntry
}

func NewIdempotencyStore(now func() time.Time) *IdempotencyStore {
	if now == nil {
		now = time.Now
	}
	return &IdempotencyStore{
		now:       now,
		lockTTL:   DefaultLockTTL,
		recordTTL: DefaultRecordTTL,
		entries:   make(map[string]idempotencyEntry),
	}
}

func (s *IdempotencyStore) Reserve(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if e, ok := s.entries[key]; ok && e.expiresAt.After(now) {
		if e.response == nil {
			return nil, domain.ErrRequestInProgress
		}
		return e.response, nil
	}
	s.entries[key] = idempotencyEntry{expiresAt: now.Add(s.lockTTL)}
	return nil, nil
}

func (s *IdempotencyStore) Complete(_ context.Context, key string, response []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = idempotencyEntry{
		response:  append([]byte(nil), response...),
		expiresAt: s.now().Add(s.recordTTL),
	}
	return nil
}

func (s *IdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
