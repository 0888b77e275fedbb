package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/curiousguyinhis30s/themepark-website/internal/auth"
	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
	"github.com/curiousguyinhis30s/themepark-website/internal/testutil"
)

func TestSessionStore(t *testing.T) {
	client := testutil.NewTestRedis(t)
	store := NewSessionStore(client, nil)
	ctx := context.Background()

	sess := auth.Session{
		Token: testutil.UniqueKey("token"),
		Visitor: domain.Visitor{
			ID:             "visitor-1",
			Email:          "visitor@demo.com",
			Name:           "Sarah Lim",
			MembershipTier: domain.TierGold,
		},
		DemoMode:  true,
		ExpiresAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second),
	}

	t.Run("Save then Load round trips the session", func(t *testing.T) {
		if err := store.Save(ctx, sess); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, err := store.Load(ctx, sess.Token)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if got.Visitor != sess.Visitor || !got.DemoMode || !got.ExpiresAt.Equal(sess.ExpiresAt) {
			t.Fatalf("unexpected session: %+v", got)
		}

		ttl, err := client.TTL(ctx, userKeyPrefix+sess.Token).Result()
		if err != nil {
			t.Fatalf("ttl: %v", err)
		}
		if ttl <= 0 || ttl > time.Hour {
			t.Fatalf("expected ttl within an hour, got %v", ttl)
		}
	})

	t.Run("Delete removes both keys", func(t *testing.T) {
		if err := store.Delete(ctx, sess.Token); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := store.Load(ctx, sess.Token); !errors.Is(err, domain.ErrSessionNotFound) {
			t.Fatalf("expected ErrSessionNotFound, got %v", err)
		}
		n, err := client.Exists(ctx, demoModeKeyPrefix+sess.Token).Result()
		if err != nil || n != 0 {
			t.Fatalf("expected demo flag gone, got %d, %v", n, err)
		}
	})

	t.Run("expired sessions are rejected on Save", func(t *testing.T) {
		expired := sess
		expired.ExpiresAt = time.Now().Add(-time.Minute)
		if err := store.Save(ctx, expired); err == nil {
			t.Fatal("expected error for expired session")
		}
	})
}

func TestIdempotencyStore(t *testing.T) {
	client := testutil.NewTestRedis(t)
	store := NewIdempotencyStore(client)
	ctx := context.Background()
	key := testutil.UniqueKey("idem")
	t.Cleanup(func() { _ = store.Release(context.Background(), key) })

	stored, err := store.Reserve(ctx, key)
	if err != nil || stored != nil {
		t.Fatalf("expected fresh reservation, got %q, %v", stored, err)
	}

	if _, err := store.Reserve(ctx, key); !errors.Is(err, domain.ErrRequestInProgress) {
		t.Fatalf("expected ErrRequestInProgress, got %v", err)
	}

	if err := store.Complete(ctx, key, []byte(`{"status":201}`)); err != nil {
		t.Fatalf("complete: %v", err)
	}
	stored, err = store.Reserve(ctx, key)
	if err != nil {
		t.Fatalf("reserve after complete: %v", err)
	}
	if string(stored) != `{"status":201}` {
		t.Fatalf("expected stored response, got %q", stored)
	}

	if err := store.Release(ctx, key); err != nil {
		t.Fatalf("release: %v", err)
	}
	stored, err = store.Reserve(ctx, key)
	if err != nil || stored != nil {
		t.Fatalf("expected key reusable after release, got %q, %v", stored, err)
	}
}
