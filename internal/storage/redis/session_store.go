package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/curiousguyinhis30s/themepark-website/internal/auth"
	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
)

const (
	userKeyPrefix     = "visitor_user:"
	demoModeKeyPrefix = "visitor_demo_mode:"
)

type visitorRecord struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Avatar         string    `json:"avatar,omitempty"`
	MembershipTier string    `json:"membershipTier"`
	ExpiresAt      time.Time `json:"expiresAt"`
}

// SessionStore keeps visitor sessions in redis. Each session is two keys
// sharing one TTL: the visitor JSON and the demo-mode flag.
type SessionStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewSessionStore(client *redis.Client, now func() time.Time) *SessionStore {
	if now == nil {
		now = time.Now
	}
	return &SessionStore{client: client, now: now}
}

var _ auth.SessionStore = (*SessionStore)(nil)

func (s *SessionStore) Save(ctx context.Context, sess auth.Session) error {
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("save session: already expired")
	}

	data, err := json.Marshal(visitorRecord{
		ID:             sess.Visitor.ID,
		Email:          sess.Visitor.Email,
		Name:           sess.Visitor.Name,
		Avatar:         sess.Visitor.Avatar,
		MembershipTier: string(sess.Visitor.MembershipTier),
		ExpiresAt:      sess.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, userKeyPrefix+sess.Token, data, ttl)
		pipe.Set(ctx, demoModeKeyPrefix+sess.Token, sess.DemoMode, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Load(ctx context.Context, token string) (auth.Session, error) {
	data, err := s.client.Get(ctx, userKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return auth.Session{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return auth.Session{}, fmt.Errorf("load session: %w", err)
	}

	var rec visitorRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return auth.Session{}, fmt.Errorf("decode session: %w", err)
	}

	demo, err := s.client.Get(ctx, demoModeKeyPrefix+token).Bool()
	if err != nil && !errors.Is(err, redis.Nil) {
		return auth.Session{}, fmt.Errorf("load demo mode: %w", err)
	}

	return auth.Session{
		Token: token,
		Visitor: domain.Visitor{
			ID:             rec.ID,
			Email:          rec.Email,
			Name:           rec.Name,
			Avatar:         rec.Avatar,
			MembershipTier: domain.MembershipTier(rec.MembershipTier),
		},
		DemoMode:  demo,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, userKeyPrefix+token, demoModeKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
