package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ducielo/rencontre-coeur-brise/internal/config"
)

var Redis *redis.Client
var Ctx = context.Background()

func InitRedis() {
	Redis = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       0,
	})

	_, err := Redis.Ping(Ctx).Result()
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Stats caching and token revocation will be disabled.", err)
	} else {
		log.Println("Connected to Redis successfully")
	}
}

// --- Token blacklist (logout revocation) ---

func blacklistKey(jti string) string {
	return fmt.Sprintf("token:blacklist:%s", jti)
}

// BlacklistToken stores a token's JTI until the token would have expired
// anyway, so revoked tokens fail auth before the signature check matters.
func BlacklistToken(jti string, ttl time.Duration) error {
	if Redis == nil {
		return nil
	}
	return Redis.Set(Ctx, blacklistKey(jti), "1", ttl).Err()
}

func IsTokenBlacklisted(jti string) bool {
	if Redis == nil || jti == "" {
		return false
	}
	n, err := Redis.Exists(Ctx, blacklistKey(jti)).Result()
	return err == nil && n > 0
}

// --- Like-stats cache ---

// StatsKey is the cache key for a user's like/match counters.
func StatsKey(userID string) string {
	return fmt.Sprintf("likes:stats:%s", userID)
}

func CacheSet(key string, value interface{}, expiration time.Duration) error {
	if Redis == nil {
		return redis.Nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return Redis.Set(Ctx, key, data, expiration).Err()
}

func CacheGet(key string, dest interface{}) error {
	if Redis == nil {
		return redis.Nil
	}
	val, err := Redis.Get(Ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

func CacheInvalidate(keys ...string) error {
	if Redis == nil || len(keys) == 0 {
		return nil
	}
	return Redis.Del(Ctx, keys...).Err()
}
