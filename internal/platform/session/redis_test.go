package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStore_CreateGet(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	s := Session{
		Token:     "tok-1",
		UserID:    uuid.New(),
		Role:      "receptionist",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := store.Create(ctx, s); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	got, err := store.Get(ctx, "tok-1")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.UserID != s.UserID || got.Role != "receptionist" {
		t.Errorf("unexpected session: %+v", got)
	}
}

func TestRedisStore_GetUnknown(t *testing.T) {
	store, _ := newTestRedisStore(t)
	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRedisStore_TTLExpiry(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	s := Session{Token: "tok-ttl", UserID: uuid.New(), ExpiresAt: time.Now().Add(time.Minute)}
	if err := store.Create(ctx, s); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := store.Get(ctx, "tok-ttl"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after TTL, got %v", err)
	}
}

func TestRedisStore_RejectsAlreadyExpired(t *testing.T) {
	store, _ := newTestRedisStore(t)
	s := Session{Token: "tok-old", UserID: uuid.New(), ExpiresAt: time.Now().Add(-time.Minute)}
	if err := store.Create(context.Background(), s); err == nil {
		t.Error("expected error storing an already expired session")
	}
}

func TestRedisStore_Delete(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	s := Session{Token: "tok-del", UserID: uuid.New(), ExpiresAt: time.Now().Add(time.Hour)}
	if err := store.Create(ctx, s); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if err := store.Delete(ctx, "tok-del"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := store.Get(ctx, "tok-del"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
