package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedProfile struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func withTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		client = nil
	})
	return mr
}

func TestCacheAside_MissThenHit(t *testing.T) {
	withTestRedis(t)
	ctx := context.Background()

	fetchCalls := 0
	fetch := func(dest *cachedProfile) func() error {
		return func() error {
			fetchCalls++
			dest.ID = 7
			dest.Username = "lisbon_wanderer"
			return nil
		}
	}

	var first cachedProfile
	require.NoError(t, CacheAside(ctx, UserKey(7), &first, UserTTL, fetch(&first)))
	assert.Equal(t, 1, fetchCalls)
	assert.Equal(t, "lisbon_wanderer", first.Username)

	var second cachedProfile
	require.NoError(t, CacheAside(ctx, UserKey(7), &second, UserTTL, fetch(&second)))
	assert.Equal(t, 1, fetchCalls, "second read should be served from cache")
	assert.Equal(t, first, second)
}

func TestCacheAside_ExpiryRefetches(t *testing.T) {
	mr := withTestRedis(t)
	ctx := context.Background()

	fetchCalls := 0
	var dest cachedProfile
	fetch := func() error {
		fetchCalls++
		dest.ID = 1
		return nil
	}

	require.NoError(t, CacheAside(ctx, UserKey(1), &dest, time.Minute, fetch))
	mr.FastForward(2 * time.Minute)
	require.NoError(t, CacheAside(ctx, UserKey(1), &dest, time.Minute, fetch))
	assert.Equal(t, 2, fetchCalls)
}

func TestInvalidateUser_RemovesKey(t *testing.T) {
	withTestRedis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UserKey(3), cachedProfile{ID: 3}, time.Minute))

	InvalidateUser(ctx, 3)

	var dest cachedProfile
	found, err := GetJSON(ctx, UserKey(3), &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetJSON_NilClientDegrades(t *testing.T) {
	client = nil
	var dest cachedProfile
	found, err := GetJSON(context.Background(), UserKey(1), &dest)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, SetJSON(context.Background(), UserKey(1), dest, time.Minute))
}
