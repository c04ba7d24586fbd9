package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"scribe-be/internal/domain"
	"scribe-be/pkg/logger"
	"scribe-be/pkg/redis"
)

// CacheService implements cache-aside over Redis for channel reads. Misses
// fall through to the loader and the result is written back asynchronously so
// the request never waits on the cache.
type CacheService struct {
	redis  *redis.Client
	logger *logger.Logger
}

// NewCacheService creates a new cache service
func NewCacheService(redisClient *redis.Client, log *logger.Logger) *CacheService {
	return &CacheService{
		redis:  redisClient,
		logger: log,
	}
}

// ChannelVideos returns the stored video list of a channel, serving from
// cache when possible.
func (s *CacheService) ChannelVideos(ctx context.Context, channelRowID string, loader func(context.Context) ([]domain.Video, error)) ([]domain.Video, error) {
	key := s.redis.KeyBuilder.KeyChannelVideos(channelRowID)

	if cached, err := s.redis.Get(ctx, key); err == nil {
		var videos []domain.Video
		if err := json.Unmarshal([]byte(cached), &videos); err == nil {
			return videos, nil
		}
		s.logger.WithField("key", key).Warn("Dropping undecodable cache entry")
	} else if err != goredis.Nil {
		s.logger.WithError(err).Debug("Cache read failed, falling through")
	}

	videos, err := loader(ctx)
	if err != nil {
		return nil, err
	}

	s.setAsync(key, videos, redis.TTLChannelVideos)
	return videos, nil
}

// Channel returns a channel record, serving from cache when possible.
func (s *CacheService) Channel(ctx context.Context, channelRowID string, loader func(context.Context) (*domain.Channel, error)) (*domain.Channel, error) {
	key := s.redis.KeyBuilder.KeyChannel(channelRowID)

	if cached, err := s.redis.Get(ctx, key); err == nil {
		channel := &domain.Channel{}
		if err := json.Unmarshal([]byte(cached), channel); err == nil {
			return channel, nil
		}
		s.logger.WithField("key", key).Warn("Dropping undecodable cache entry")
	} else if err != goredis.Nil {
		s.logger.WithError(err).Debug("Cache read failed, falling through")
	}

	channel, err := loader(ctx)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return nil, nil
	}

	s.setAsync(key, channel, redis.TTLChannel)
	return channel, nil
}

// ChannelVideoCount returns the stored video count of a channel, serving
// from cache when possible.
func (s *CacheService) ChannelVideoCount(ctx context.Context, channelRowID string, loader func(context.Context) (int, error)) (int, error) {
	key := s.redis.KeyBuilder.KeyChannelCount(channelRowID)

	if cached, err := s.redis.Get(ctx, key); err == nil {
		var count int
		if err := json.Unmarshal([]byte(cached), &count); err == nil {
			return count, nil
		}
	} else if err != goredis.Nil {
		s.logger.WithError(err).Debug("Cache read failed, falling through")
	}

	count, err := loader(ctx)
	if err != nil {
		return 0, err
	}

	s.setAsync(key, count, redis.TTLChannelCount)
	return count, nil
}

// InvalidateChannel drops every cached entry of a channel. Called after
// ingest, refresh and delete.
func (s *CacheService) InvalidateChannel(ctx context.Context, channelRowID string) error {
	pattern := s.redis.KeyBuilder.ChannelPattern(channelRowID)
	if err := s.redis.InvalidatePattern(ctx, pattern); err != nil {
		return fmt.Errorf("failed to invalidate channel cache: %w", err)
	}
	return nil
}

// setAsync writes a cache entry in the background. Failures only log; the
// caller already has the data.
func (s *CacheService) setAsync(key string, value interface{}, ttl time.Duration) {
	payload, err := json.Marshal(value)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to encode cache entry")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.redis.Set(ctx, key, payload, ttl); err != nil {
			s.logger.WithError(err).WithField("key", key).Warn("Failed to write cache entry")
		}
	}()
}
