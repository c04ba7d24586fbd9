package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"scribe-be/internal/domain"
	"scribe-be/pkg/logger"
	"scribe-be/pkg/redis"
)

func newCacheFixture(t *testing.T) (*miniredis.Miniredis, *redis.Client, *CacheService) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := redis.NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)

	log, err := logger.New("error", "development")
	require.NoError(t, err)

	return mr, client, NewCacheService(client, log)
}

func TestCacheService_ChannelVideosHit(t *testing.T) {
	_, client, cache := newCacheFixture(t)
	ctx := context.Background()

	stored := []domain.Video{{VideoID: "abc", Title: "Cached"}}
	payload, err := json.Marshal(stored)
	require.NoError(t, err)
	key := client.KeyBuilder.KeyChannelVideos("row-1")
	require.NoError(t, client.Set(ctx, key, payload, time.Minute))

	loaderCalled := false
	videos, err := cache.ChannelVideos(ctx, "row-1", func(context.Context) ([]domain.Video, error) {
		loaderCalled = true
		return nil, nil
	})
	require.NoError(t, err)

	assert.False(t, loaderCalled, "cache hit must not invoke the loader")
	require.Len(t, videos, 1)
	assert.Equal(t, "Cached", videos[0].Title)
}

func TestCacheService_ChannelVideosMissFallsThrough(t *testing.T) {
	_, _, cache := newCacheFixture(t)

	videos, err := cache.ChannelVideos(context.Background(), "row-1", func(context.Context) ([]domain.Video, error) {
		return []domain.Video{{VideoID: "fresh"}}, nil
	})
	require.NoError(t, err)

	require.Len(t, videos, 1)
	assert.Equal(t, "fresh", videos[0].VideoID)
}

func TestCacheService_UndecodableEntryFallsThrough(t *testing.T) {
	_, client, cache := newCacheFixture(t)
	ctx := context.Background()

	key := client.KeyBuilder.KeyChannelVideos("row-1")
	require.NoError(t, client.Set(ctx, key, "not-json", time.Minute))

	videos, err := cache.ChannelVideos(ctx, "row-1", func(context.Context) ([]domain.Video, error) {
		return []domain.Video{{VideoID: "fresh"}}, nil
	})
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "fresh", videos[0].VideoID)
}

func TestCacheService_InvalidateChannel(t *testing.T) {
	_, client, cache := newCacheFixture(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, client.KeyBuilder.KeyChannel("row-1"), "a", time.Minute))
	require.NoError(t, client.Set(ctx, client.KeyBuilder.KeyChannelVideos("row-1"), "b", time.Minute))
	require.NoError(t, client.Set(ctx, client.KeyBuilder.KeyChannel("row-2"), "c", time.Minute))

	require.NoError(t, cache.InvalidateChannel(ctx, "row-1"))

	n, err := client.Exists(ctx,
		client.KeyBuilder.KeyChannel("row-1"),
		client.KeyBuilder.KeyChannelVideos("row-1"),
	)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	n, err = client.Exists(ctx, client.KeyBuilder.KeyChannel("row-2"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
