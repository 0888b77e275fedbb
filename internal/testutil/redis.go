package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultTestRedisAddr = "localhost:6379"

// NewTestRedis returns a client on a scratch database, skipping the test
// when redis is unreachable.
func NewTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = defaultTestRedisAddr
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("skipping redis integration tests: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

// UniqueKey returns a key that will not collide with other test runs.
func UniqueKey(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
