// Package auth signs demo visitors in and out.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/curiousguyinhis30s/themepark-website/internal/clock"
	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
)

const DefaultSessionTTL = 7 * 24 * time.Hour

// Service owns visitor sign-in state. It replaces ambient browser storage
// with an explicit store passed in at construction.
type Service struct {
	store SessionStore
	clock clock.Clock
	ttl   time.Duration
}

type ServiceOption func(*Service)

// WithSessionTTL overrides how long a sign-in lasts.
func WithSessionTTL(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.ttl = d
		}
	}
}

func NewService(store SessionStore, clk clock.Clock, opts ...ServiceOption) *Service {
	svc := &Service{store: store, clock: clk, ttl: DefaultSessionTTL}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Login validates the form, checks demo credentials and opens a session.
// Form problems come back as validate.FieldErrors.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	if fe := ValidateLogin(email, password); !fe.Empty() {
		return Session{}, fe
	}
	visitor, ok := checkDemoCredentials(email, password)
	if !ok {
		return Session{}, domain.ErrInvalidCredentials
	}

	sess := Session{
		Token:     uuid.NewString(),
		Visitor:   visitor,
		DemoMode:  true,
		ExpiresAt: s.clock.Now().Add(s.ttl),
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Current returns the session for token.
func (s *Service) Current(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, domain.ErrUnauthenticated
	}
	sess, err := s.store.Load(ctx, token)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return Session{}, domain.ErrUnauthenticated
	}
	return sess, err
}

// Logout forgets token. Unknown tokens are not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.store.Delete(ctx, token)
}
