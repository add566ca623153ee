package database

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { Redis = nil })
	return mr
}

func TestBlacklistToken(t *testing.T) {
	mr := setupMiniredis(t)

	assert.False(t, IsTokenBlacklisted("jti-1"))

	assert.NoError(t, BlacklistToken("jti-1", time.Minute))
	assert.True(t, IsTokenBlacklisted("jti-1"))
	assert.False(t, IsTokenBlacklisted("jti-2"))

	// Entry dies with the token's own expiry.
	mr.FastForward(2 * time.Minute)
	assert.False(t, IsTokenBlacklisted("jti-1"))
}

func TestIsTokenBlacklisted_EmptyJTI(t *testing.T) {
	setupMiniredis(t)
	assert.False(t, IsTokenBlacklisted(""))
}

func TestCacheRoundTrip(t *testing.T) {
	mr := setupMiniredis(t)

	type payload struct {
		Count int64  `json:"count"`
		Name  string `json:"name"`
	}

	key := StatsKey("user-1")
	assert.NoError(t, CacheSet(key, payload{Count: 7, Name: "stats"}, time.Minute))

	var got payload
	assert.NoError(t, CacheGet(key, &got))
	assert.Equal(t, int64(7), got.Count)
	assert.Equal(t, "stats", got.Name)

	mr.FastForward(2 * time.Minute)
	assert.ErrorIs(t, CacheGet(key, &got), redis.Nil)
}

func TestCacheInvalidate(t *testing.T) {
	setupMiniredis(t)

	assert.NoError(t, CacheSet(StatsKey("a"), 1, time.Minute))
	assert.NoError(t, CacheSet(StatsKey("b"), 2, time.Minute))

	assert.NoError(t, CacheInvalidate(StatsKey("a"), StatsKey("b")))

	var dest int
	assert.ErrorIs(t, CacheGet(StatsKey("a"), &dest), redis.Nil)
	assert.ErrorIs(t, CacheGet(StatsKey("b"), &dest), redis.Nil)
}

func TestCacheHelpers_NilClient(t *testing.T) {
	Redis = nil

	assert.NoError(t, BlacklistToken("jti", time.Minute))
	assert.False(t, IsTokenBlacklisted("jti"))
	assert.ErrorIs(t, CacheSet("k", 1, time.Minute), redis.Nil)
	var dest int
	assert.ErrorIs(t, CacheGet("k", &dest), redis.Nil)
	assert.NoError(t, CacheInvalidate("k"))
}
