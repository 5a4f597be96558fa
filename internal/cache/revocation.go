package cache

import (
	"context"
	"fmt"
	"time"
)

// 已登出的 session 以 jti 記錄，TTL 與 token 剩餘有效期相同
const revokedSessionPrefix = "session:revoked:"

func revokedKey(jti string) string {
	return revokedSessionPrefix + jti
}

// RevokeSession 將 jti 標記為已撤銷；ttl <= 0 代表 token 已過期，不需記錄
func RevokeSession(ctx context.Context, c Cache, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := c.Set(ctx, revokedKey(jti), 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke session %s: %w", jti, err)
	}
	return nil
}

func IsSessionRevoked(ctx context.Context, c Cache, jti string) (bool, error) {
	n, err := c.Exists(ctx, revokedKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("lookup session %s: %w", jti, err)
	}
	return n > 0, nil
}
