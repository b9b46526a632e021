package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := NewRedisStore(context.Background(), "redis://"+mr.Addr(), ttl)
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Hour)
	ctx := context.Background()

	token, err := store.Create(ctx, 99)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	userID, err := store.Get(ctx, token)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if userID != 99 {
		t.Errorf("userID = %d, want 99", userID)
	}
}

func TestRedisStoreExpiry(t *testing.T) {
	store, mr := newTestRedisStore(t, time.Minute)
	ctx := context.Background()

	token, err := store.Create(ctx, 3)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := store.Get(ctx, token); err != ErrSessionNotFound {
		t.Errorf("Get após TTL = %v, want ErrSessionNotFound", err)
	}
}

func TestRedisStoreDelete(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Hour)
	ctx := context.Background()

	token, err := store.Create(ctx, 5)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Delete(ctx, token); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, token); err != ErrSessionNotFound {
		t.Errorf("Get após Delete = %v, want ErrSessionNotFound", err)
	}
}

func TestTTLFromEnv(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Duration
	}{
		{"", DefaultTTL},
		{"8", 8 * time.Hour},
		{"1", time.Hour},
		{"abc", DefaultTTL},
		{"-3", DefaultTTL},
	}
	for _, tc := range cases {
		if got := TTLFromEnv(tc.raw); got != tc.want {
			t.Errorf("TTLFromEnv(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}
