package service

import (
	"context"
	"strings"

	"scribe-be/internal/domain"
	"scribe-be/internal/repository"
	"scribe-be/pkg/errors"
	"scribe-be/pkg/logger"
)

const (
	// detailCap bounds the detailed fetch during ingestion and refresh.
	detailCap = 500
	// batchSize is how many videos go to the database per transaction.
	batchSize = 100
)

// IngestService orchestrates channel ingestion: resolve the channel, capture
// the full catalog as stubs, then store detailed rows for the newest videos.
type IngestService struct {
	source   CatalogSource
	channels repository.ChannelRepository
	videos   repository.VideoRepository
	stubs    repository.StubRepository
	cache    *CacheService
	logger   *logger.Logger
}

// NewIngestService creates a new ingest service. cache may be nil when
// caching is disabled.
func NewIngestService(
	source CatalogSource,
	channels repository.ChannelRepository,
	videos repository.VideoRepository,
	stubs repository.StubRepository,
	cache *CacheService,
	log *logger.Logger,
) *IngestService {
	return &IngestService{
		source:   source,
		channels: channels,
		videos:   videos,
		stubs:    stubs,
		cache:    cache,
		logger:   log,
	}
}

// Ingest adds a channel to the catalog. A channel that is already stored
// short-circuits without touching the upstream API. Detailed rows are written
// in batches; a failing batch aborts the run but keeps earlier batches.
func (s *IngestService) Ingest(ctx context.Context, channelURL string, userID *string) (*domain.IngestResult, error) {
	channelURL = strings.TrimSpace(channelURL)
	if channelURL == "" {
		return nil, errors.NewValidationError("channel_url is required", nil)
	}

	channelID, err := s.source.ResolveChannelID(ctx, channelURL)
	if err != nil {
		return nil, err
	}

	existing, err := s.channels.GetByChannelID(ctx, channelID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to check existing channel", err)
	}
	if existing != nil {
		count, err := s.videos.CountByChannel(ctx, existing.ID)
		if err != nil {
			return nil, errors.NewInternalError("Failed to count channel videos", err)
		}
		s.logger.WithField("channel_id", channelID).Info("Channel already ingested, skipping fetch")
		return &domain.IngestResult{
			Channel:       existing,
			VideoCount:    count,
			AlreadyExists: true,
			Message:       "Channel already exists",
		}, nil
	}

	info, err := s.source.GetChannelInfo(ctx, channelID)
	if err != nil {
		return nil, err
	}
	info.UserID = userID

	channel, err := s.channels.Upsert(ctx, info)
	if err != nil {
		return nil, errors.NewInternalError("Failed to store channel", err)
	}

	stubs, err := s.source.ListBasicVideos(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if _, err := s.stubs.UpsertBatch(ctx, channel.ID, stubs); err != nil {
		return nil, errors.NewInternalError("Failed to store video stubs", err)
	}

	stored, err := s.storeDetailed(ctx, channel.ID, channelID)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, channel.ID)

	s.logger.WithFields(map[string]interface{}{
		"channel_id": channelID,
		"stubs":      len(stubs),
		"videos":     stored,
	}).Info("Channel ingested")

	return &domain.IngestResult{
		Channel:    channel,
		VideoCount: stored,
		Message:    "Channel ingested",
	}, nil
}

// Refresh re-fetches a channel that is already in the catalog: metadata is
// overwritten, the stored videos are replaced by a fresh detailed fetch.
func (s *IngestService) Refresh(ctx context.Context, id string) (*domain.IngestResult, error) {
	channel, err := s.channels.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load channel", err)
	}
	if channel == nil {
		return nil, errors.NewNotFoundError("Channel not found")
	}

	info, err := s.source.GetChannelInfo(ctx, channel.ChannelID)
	if err != nil {
		return nil, err
	}
	info.UserID = channel.UserID

	channel, err = s.channels.Upsert(ctx, info)
	if err != nil {
		return nil, errors.NewInternalError("Failed to update channel", err)
	}

	if err := s.videos.DeleteByChannel(ctx, channel.ID); err != nil {
		return nil, errors.NewInternalError("Failed to clear channel videos", err)
	}

	stored, err := s.storeDetailed(ctx, channel.ID, channel.ChannelID)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, channel.ID)

	s.logger.WithFields(map[string]interface{}{
		"channel_id": channel.ChannelID,
		"videos":     stored,
	}).Info("Channel refreshed")

	return &domain.IngestResult{
		Channel:    channel,
		VideoCount: stored,
		Message:    "Channel refreshed",
	}, nil
}

// storeDetailed fetches up to detailCap videos and writes them in sequential
// batches of batchSize. The first failing batch aborts the run; earlier
// batches stay committed.
func (s *IngestService) storeDetailed(ctx context.Context, channelRowID, channelID string) (int, error) {
	videos, err := s.source.FetchVideos(ctx, channelID, detailCap)
	if err != nil {
		return 0, err
	}

	stored := 0
	for start := 0; start < len(videos); start += batchSize {
		end := start + batchSize
		if end > len(videos) {
			end = len(videos)
		}

		n, err := s.videos.UpsertBatch(ctx, channelRowID, videos[start:end])
		if err != nil {
			s.logger.WithError(err).WithFields(map[string]interface{}{
				"channel_id": channelID,
				"stored":     stored,
			}).Error("Video batch failed, aborting ingest")
			return stored, errors.NewInternalError("Failed to store video batch", err)
		}
		stored += n
	}

	return stored, nil
}

func (s *IngestService) invalidate(ctx context.Context, channelRowID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateChannel(ctx, channelRowID); err != nil {
		s.logger.WithError(err).Warn("Failed to invalidate channel cache")
	}
}
