package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	store, err := NewRedisStore("redis://" + s.Addr())
	if err != nil {
		t.Fatalf("failed to create redis store: %v", err)
	}
	return store, s
}

func TestSaveAndLookupRefreshSession(t *testing.T) {
	store, s := setupTestRedis(t)
	defer store.Close()
	defer s.Close()

	ctx := context.Background()
	identity := Identity{
		UserID: "USR-2025-001",
		Name:   "Riley Chen",
		Email:  "researcher@example.com",
		Role:   "researcher",
	}

	if err := store.SaveRefreshSession(ctx, "hash-1", identity, time.Now().Add(24*time.Hour)); err != nil {
		t.Fatalf("SaveRefreshSession failed: %v", err)
	}

	got, err := store.LookupRefreshSession(ctx, "hash-1")
	if err != nil {
		t.Fatalf("LookupRefreshSession failed: %v", err)
	}
	if got.UserID != identity.UserID || got.Email != identity.Email || got.Role != identity.Role {
		t.Fatalf("unexpected identity: %+v", got)
	}
}

func TestLookupExpiredSession(t *testing.T) {
	store, s := setupTestRedis(t)
	defer store.Close()
	defer s.Close()

	ctx := context.Background()
	identity := Identity{UserID: "USR-2025-002", Role: "ipr_officer"}
	if err := store.SaveRefreshSession(ctx, "hash-exp", identity, time.Now().Add(time.Millisecond)); err != nil {
		t.Fatalf("SaveRefreshSession failed: %v", err)
	}

	s.FastForward(2 * time.Millisecond)

	if _, err := store.LookupRefreshSession(ctx, "hash-exp"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestLookupCorruptedSessionReadsAsNoSession(t *testing.T) {
	store, s := setupTestRedis(t)
	defer store.Close()
	defer s.Close()

	s.Set("catalyst:refresh:hash-bad", "{not json")

	if _, err := store.LookupRefreshSession(context.Background(), "hash-bad"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession for corrupted record, got %v", err)
	}
}

func TestRevokeRefreshSessionIsIdempotent(t *testing.T) {
	store, s := setupTestRedis(t)
	defer store.Close()
	defer s.Close()

	ctx := context.Background()
	identity := Identity{UserID: "USR-2025-003"}
	if err := store.SaveRefreshSession(ctx, "hash-revoke", identity, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("SaveRefreshSession failed: %v", err)
	}
	if err := store.RevokeRefreshSession(ctx, "hash-revoke"); err != nil {
		t.Fatalf("RevokeRefreshSession failed: %v", err)
	}
	if _, err := store.LookupRefreshSession(ctx, "hash-revoke"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after revoke, got %v", err)
	}
	if err := store.RevokeRefreshSession(ctx, "hash-revoke"); err != nil {
		t.Fatalf("second revoke should be a no-op, got %v", err)
	}
}

func TestAccessTokenDenylist(t *testing.T) {
	store, s := setupTestRedis(t)
	defer store.Close()
	defer s.Close()

	ctx := context.Background()
	revoked, err := store.IsAccessTokenRevoked(ctx, "jti-1")
	if err != nil || revoked {
		t.Fatalf("expected clean jti, got revoked=%v err=%v", revoked, err)
	}

	if err := store.RevokeAccessToken(ctx, "jti-1", time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("RevokeAccessToken failed: %v", err)
	}
	revoked, err = store.IsAccessTokenRevoked(ctx, "jti-1")
	if err != nil || !revoked {
		t.Fatalf("expected revoked jti, got revoked=%v err=%v", revoked, err)
	}

	s.FastForward(2 * time.Minute)
	revoked, err = store.IsAccessTokenRevoked(ctx, "jti-1")
	if err != nil || revoked {
		t.Fatalf("expected denylist entry to lapse with the token, got revoked=%v err=%v", revoked, err)
	}
}
