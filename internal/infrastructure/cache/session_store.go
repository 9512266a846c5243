package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	accessPrefix  = "access_token"
	refreshPrefix = "refresh_token"
)

// SessionStore is the allow-list of issued tokens. A token is honoured only
// while its id is present; logout and refresh remove ids.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func accessKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("%s:%s:%s", accessPrefix, userID, tokenID)
}

func refreshKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("%s:%s:%s", refreshPrefix, userID, tokenID)
}

// Allow stores both token ids of a freshly issued pair.
func (s *SessionStore) Allow(ctx context.Context, userID uuid.UUID, accessID string, accessTTL time.Duration, refreshID string, refreshTTL time.Duration) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, accessKey(userID, accessID), "valid", accessTTL)
	pipe.Set(ctx, refreshKey(userID, refreshID), "valid", refreshTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store session tokens: %w", err)
	}
	return nil
}

func (s *SessionStore) AccessAllowed(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, accessKey(userID, tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("check access token: %w", err)
	}
	return n > 0, nil
}

// ConsumeRefresh removes a refresh token id and reports whether it was
// present, so each refresh token is usable once.
func (s *SessionStore) ConsumeRefresh(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	n, err := s.client.Del(ctx, refreshKey(userID, tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("consume refresh token: %w", err)
	}
	return n > 0, nil
}

// Revoke drops the given token ids. Empty ids are skipped.
func (s *SessionStore) Revoke(ctx context.Context, userID uuid.UUID, accessID, refreshID string) error {
	var keys []string
	if accessID != "" {
		keys = append(keys, accessKey(userID, accessID))
	}
	if refreshID != "" {
		keys = append(keys, refreshKey(userID, refreshID))
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("revoke session tokens: %w", err)
	}
	return nil
}
