package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist 令牌黑名单接口
type TokenBlacklist interface {
	AddToBlacklist(token string, expireAt time.Time)
	IsBlacklisted(token string) bool
}

var (
	blacklist   TokenBlacklist
	blacklistMu sync.RWMutex
)

// SetTokenBlacklist 设置全局黑名单实现
func SetTokenBlacklist(bl TokenBlacklist) {
	blacklistMu.Lock()
	defer blacklistMu.Unlock()
	blacklist = bl
}

// GetTokenBlacklist 获取全局黑名单实现，未初始化时返回nil
func GetTokenBlacklist() TokenBlacklist {
	blacklistMu.RLock()
	defer blacklistMu.RUnlock()
	return blacklist
}

// RedisBlacklist 基于Redis的令牌黑名单
// 键按令牌哈希存储，过期时间与令牌一致，无需额外清理
type RedisBlacklist struct {
	rdb *redis.Client
}

// NewRedisBlacklist 创建Redis黑名单实例
func NewRedisBlacklist(rdb *redis.Client) *RedisBlacklist {
	return &RedisBlacklist{rdb: rdb}
}

const blacklistKeyPrefix = "auth:blacklist:"

// AddToBlacklist 将令牌加入黑名单
func (b *RedisBlacklist) AddToBlacklist(token string, expireAt time.Time) {
	ttl := time.Until(expireAt)
	if ttl <= 0 {
		// 已过期的令牌无需入黑名单
		return
	}
	ctx := context.Background()
	b.rdb.Set(ctx, blacklistKeyPrefix+hashToken(token), 1, ttl)
}

// IsBlacklisted 检查令牌是否在黑名单中
func (b *RedisBlacklist) IsBlacklisted(token string) bool {
	ctx := context.Background()
	n, err := b.rdb.Exists(ctx, blacklistKeyPrefix+hashToken(token)).Result()
	if err != nil {
		return false
	}
	return n > 0
}

// hashToken 避免在Redis中存储完整令牌
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
