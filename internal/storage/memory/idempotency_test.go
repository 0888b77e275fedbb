package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
)

func TestIdempotencyStore(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewIdempotencyStore(func() time.Time { return now })
	ctx := context.Background()

	if stored, err := store.Reserve(ctx, "k"); err != nil || stored != nil {
		t.Fatalf("expected fresh reservation, got %q, %v", stored, err)
	}
	if _, err := store.Reserve(ctx, "k"); !errors.Is(err, domain.ErrRequestInProgress) {
		t.Fatalf("expected ErrRequestInProgress, got %v", err)
	}

	now = now.Add(DefaultLockTTL + time.Second)
	if stored, err := store.Reserve(ctx, "k"); err != nil || stored != nil {
		t.Fatalf("expected stale lock to be reclaimed, got %q, %v", stored, err)
	}

	if err := store.Complete(ctx, "k", []byte("done")); err != nil {
		t.Fatalf("complete: %v", err)
	}
	stored, err := store.Reserve(ctx, "k")
	if err != nil || string(stored) != "done" {
		t.Fatalf("expected stored response, got %q, %v", stored, err)
	}

	now = now.Add(DefaultRecordTTL + time.Second)
	if stored, err := store.Reserve(ctx, "k"); err != nil || stored != nil {
		t.Fatalf("expected expired record to be reclaimed, got %q, %v", stored, err)
	}
}
