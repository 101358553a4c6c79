package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/neurocare-ai/portal/internal/core/domain"
)

// TokenStore persists session credentials and the cached profile in Redis.
// Key format: session:<session_id>:token and session:<session_id>:user.
//
// Purely mechanical: no expiry inspection happens here. The TTL passed to
// Set is a backstop that mirrors the credential's own expiry, so a crashed
// portal cannot resurrect a dead session.
type TokenStore struct {
	client *redis.Client
}

func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

func (s *TokenStore) Get(ctx context.Context, sessionID string) (string, error) {
	token, err := s.client.Get(ctx, s.tokenKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("token get: %w", err)
	}
	return token, nil
}

func (s *TokenStore) Set(ctx context.Context, sessionID, token string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, s.tokenKey(sessionID), token, ttl).Err(); err != nil {
		return fmt.Errorf("token set: %w", err)
	}
	return nil
}

func (s *TokenStore) GetProfile(ctx context.Context, sessionID string) (*domain.Profile, error) {
	raw, err := s.client.Get(ctx, s.userKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("profile get: %w", err)
	}
	var profile domain.Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		// A corrupt cache entry is a miss, not a failure.
		return nil, nil
	}
	return &profile, nil
}

func (s *TokenStore) SetProfile(ctx context.Context, sessionID string, profile *domain.Profile, ttl time.Duration) error {
	if profile == nil {
		return nil
	}
	if ttl < 0 {
		ttl = 0
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("profile encode: %w", err)
	}
	if err := s.client.Set(ctx, s.userKey(sessionID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("profile set: %w", err)
	}
	return nil
}

func (s *TokenStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.tokenKey(sessionID), s.userKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("token clear: %w", err)
	}
	return nil
}

func (s *TokenStore) tokenKey(sessionID string) string {
	return fmt.Sprintf("session:%s:token", sessionID)
}

func (s *TokenStore) userKey(sessionID string) string {
	return fmt.Sprintf("session:%s:user", sessionID)
}
