package auth

import (
	"context"
	"sync"
	"time"

	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
)

// Session is a signed-in visitor bound to an opaque token.
type Session struct {
	Token     string
	Visitor   domain.Visitor
	DemoMode  bool
	ExpiresAt time.Time
}

// SessionStore persists visitor sessions. Load returns
// domain.ErrSessionNotFound for unknown or expired tokens.
type SessionStore interface {
	Save(ctx context.Context, s Session) error
	Load(ctx context.Context, token string) (Session, error)
	Delete(ctx context.Context, token string) error
}

// MemoryStore is a process-local SessionStore.
type MemoryStore struct {
	mu       sync.Mutex
	now      func() time.Time
	sessions map[string]Session
}

func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{now: now, sessions: make(map[string]Session)}
}

func (m *MemoryStore) Save(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.Token] = s
	return nil
}

func (m *MemoryStore) Load(_ context.Context, token string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return Session{}, domain.ErrSessionNotFound
	}
	if !s.ExpiresAt.IsZero() && !s.ExpiresAt.After(m.now()) {
		delete(m.sessions, token)
		return Session{}, domain.ErrSessionNotFound
	}
	return s, nil
}

func (m *MemoryStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}
