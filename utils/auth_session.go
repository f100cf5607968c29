// File: quotecompare/utils/auth_session.go
package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"quotecompare/models"

	"github.com/go-redis/redis/v8"
)

// SaveAuthSession caches a verified identity under the hash of its token.
func SaveAuthSession(ctx context.Context, client *redis.Client, tokenHash string, user models.AuthUser, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal auth session: %w", err)
	}
	if err := client.Set(ctx, AuthCachePrefix+tokenHash, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save auth session: %w", err)
	}
	return nil
}

// GetAuthSession returns the cached identity for a token hash. A miss returns (nil, nil).
func GetAuthSession(ctx context.Context, client *redis.Client, tokenHash string) (*models.AuthUser, error) {
	data, err := client.Get(ctx, AuthCachePrefix+tokenHash).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var user models.AuthUser
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal auth session: %w", err)
	}
	return &user, nil
}
