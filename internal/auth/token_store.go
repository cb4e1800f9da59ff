package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"smarthauling/internal/cache"
)

const (
	refreshTokenKeyPrefix = "refresh_token:"
	roleVersionKeyPrefix  = "role_version:"
)

// TokenStoreInterface defines the interface for token storage operations.
type TokenStoreInterface interface {
	StoreRefreshToken(ctx context.Context, tokenID string, userID uuid.UUID, email string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, tokenID string) (userID uuid.UUID, email string, err error)
	DeleteRefreshToken(ctx context.Context, tokenID string) error
	RoleVersion(ctx context.Context, userID uuid.UUID) (int64, error)
	BumpRoleVersion(ctx context.Context, userID uuid.UUID) error
}

// TokenStore handles storage and retrieval of tokens in Redis. It also keeps a
// per-user role version counter: tokens minted before a role change carry a
// stale version and lose role-gated access without a database lookup.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// StoreRefreshToken stores a refresh token in Redis with TTL.
func (s *TokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uuid.UUID, email string, ttl time.Duration) error {
	data := map[string]interface{}{
		"user_id": userID.String(),
		"email":   email,
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal token data: %w", err)
	}

	key := refreshTokenKeyPrefix + tokenID
	return s.cache.Set(ctx, key, payload, ttl)
}

// GetRefreshToken retrieves refresh token data from Redis.
func (s *TokenStore) GetRefreshToken(ctx context.Context, tokenID string) (userID uuid.UUID, email string, err error) {
	key := refreshTokenKeyPrefix + tokenID
	data, err := s.cache.Get(ctx, key)
	if err != nil || data == nil {
		return uuid.Nil, "", fmt.Errorf("refresh token not found")
	}

	var tokenData map[string]interface{}
	if err := json.Unmarshal(data, &tokenData); err != nil {
		return uuid.Nil, "", fmt.Errorf("unmarshal token data: %w", err)
	}

	rawID, ok := tokenData["user_id"].(string)
	if !ok {
		return uuid.Nil, "", fmt.Errorf("invalid user_id in token data")
	}
	userID, err = uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("invalid user_id in token data")
	}

	email, ok = tokenData["email"].(string)
	if !ok {
		return uuid.Nil, "", fmt.Errorf("invalid email in token data")
	}

	return userID, email, nil
}

// DeleteRefreshToken removes a refresh token from Redis.
func (s *TokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	key := refreshTokenKeyPrefix + tokenID
	return s.cache.Delete(ctx, key)
}

// RoleVersion returns the current role version for a user. Zero when the role
// has never changed. An unreachable Redis is reported as an error so callers
// can fall back to trusting the token instead of treating the counter as 0.
func (s *TokenStore) RoleVersion(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.cache.GetInt64(ctx, roleVersionKeyPrefix+userID.String())
}

// BumpRoleVersion invalidates role claims in previously issued tokens.
func (s *TokenStore) BumpRoleVersion(ctx context.Context, userID uuid.UUID) error {
	_, err := s.cache.Incr(ctx, roleVersionKeyPrefix+userID.String())
	return err
}
