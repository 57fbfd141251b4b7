// Package session provides Redis-backed storage for refresh sessions and
// revoked access tokens.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoSession covers absent, expired, and unparseable session records.
// A corrupted stored value must read as "no session", never crash the
// caller.
var ErrNoSession = errors.New("session not found")

// Identity is the JSON record stored per refresh session.
type Identity struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// RedisStore holds refresh sessions and the access-token denylist.
type RedisStore struct {
	client        *redis.Client
	refreshPrefix string
	revokedPrefix string
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisStoreWithClient(client), nil
}

// NewRedisStoreWithClient creates a store from an existing Redis client.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:        client,
		refreshPrefix: "catalyst:refresh:",
		revokedPrefix: "catalyst:revoked:",
	}
}

// SaveRefreshSession stores an identity record under the token hash with
// expiration.
func (s *RedisStore) SaveRefreshSession(ctx context.Context, tokenHash string, identity Identity, expiresAt time.Time) error {
	identity.CreatedAt = time.Now()
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}

	if err := s.client.Set(ctx, s.refreshPrefix+tokenHash, raw, ttl).Err(); err != nil {
		return fmt.Errorf("save refresh session: %w", err)
	}
	return nil
}

// LookupRefreshSession retrieves the identity for a refresh token hash.
func (s *RedisStore) LookupRefreshSession(ctx context.Context, tokenHash string) (Identity, error) {
	raw, err := s.client.Get(ctx, s.refreshPrefix+tokenHash).Result()
	if errors.Is(err, redis.Nil) {
		return Identity{}, ErrNoSession
	}
	if err != nil {
		return Identity{}, fmt.Errorf("lookup refresh session: %w", err)
	}

	var identity Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		return Identity{}, ErrNoSession
	}
	if identity.UserID == "" {
		return Identity{}, ErrNoSession
	}
	return identity, nil
}

// RevokeRefreshSession deletes a refresh session; idempotent.
func (s *RedisStore) RevokeRefreshSession(ctx context.Context, tokenHash string) error {
	if err := s.client.Del(ctx, s.refreshPrefix+tokenHash).Err(); err != nil {
		return fmt.Errorf("revoke refresh session: %w", err)
	}
	return nil
}

// RevokeAccessToken denylists a JTI until the token would have expired
// anyway.
func (s *RedisStore) RevokeAccessToken(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, s.revokedPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke access token: %w", err)
	}
	return nil
}

// IsAccessTokenRevoked reports whether a JTI is on the denylist.
func (s *RedisStore) IsAccessTokenRevoked(ctx context.Context, jti string) (bool, error) {
	_, err := s.client.Get(ctx, s.revokedPrefix+jti).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return true, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ping checks if Redis is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
