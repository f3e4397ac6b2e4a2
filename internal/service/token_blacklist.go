package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// 登出后的 Token 在过期前进入黑名单。
// 优先使用 Redis（多实例部署时共享），不可用时退化为进程内 sync.Map。

var (
	blacklist        sync.Map // key: token 摘要, value: 过期时间 time.Time
	blacklistSweepMu sync.Mutex
	lastSweep        time.Time
)

func tokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// BlacklistToken 将 Token 加入黑名单，ttl 应不小于 Token 剩余有效期。
func BlacklistToken(token string, ttl time.Duration) {
	if token == "" || ttl <= 0 {
		return
	}
	digest := tokenDigest(token)

	if redisClient := GetRedisClient(); redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		key := RedisKey("auth", "token_blacklist", digest)
		if err := redisClient.Set(ctx, key, "1", ttl).Err(); err == nil {
			return
		}
	}

	blacklist.Store(digest, time.Now().Add(ttl))
	sweepBlacklist()
}

// IsTokenBlacklisted 检查 Token 是否已被登出。
func IsTokenBlacklisted(token string) bool {
	if token == "" {
		return false
	}
	digest := tokenDigest(token)

	if redisClient := GetRedisClient(); redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		key := RedisKey("auth", "token_blacklist", digest)
		exists, err := redisClient.Exists(ctx, key).Result()
		if err == nil {
			return exists > 0
		}
		// Redis 出错时继续检查本地缓存
	}

	if val, ok := blacklist.Load(digest); ok {
		expiresAt, typeOk := val.(time.Time)
		if typeOk && time.Now().Before(expiresAt) {
			return true
		}
		blacklist.Delete(digest)
	}
	return false
}

// sweepBlacklist 惰性清理过期条目，最多每分钟执行一次。
func sweepBlacklist() {
	blacklistSweepMu.Lock()
	defer blacklistSweepMu.Unlock()

	if time.Since(lastSweep) < time.Minute {
		return
	}
	lastSweep = time.Now()

	now := time.Now()
	blacklist.Range(func(key, value interface{}) bool {
		if expiresAt, ok := value.(time.Time); ok && now.After(expiresAt) {
			blacklist.Delete(key)
		}
		return true
	})
}
