package repository

import (
	"context"

	"scribe-be/internal/domain"
)

// ChannelRepository persists ingested channels.
type ChannelRepository interface {
	Upsert(ctx context.Context, channel *domain.Channel) (*domain.Channel, error)
	GetByChannelID(ctx context.Context, channelID string) (*domain.Channel, error)
	GetByID(ctx context.Context, id string) (*domain.Channel, error)
	List(ctx context.Context) ([]domain.Channel, error)
	Delete(ctx context.Context, id string) error
}

// VideoRepository persists full video rows for a channel.
type VideoRepository interface {
	UpsertBatch(ctx context.Context, channelRowID string, videos []domain.Video) (int, error)
	ListByChannel(ctx context.Context, channelRowID string) ([]domain.Video, error)
	CountByChannel(ctx context.Context, channelRowID string) (int, error)
	DeleteByChannel(ctx context.Context, channelRowID string) error
}

// StubRepository persists the lightweight full-catalog capture from the
// basic ingestion pass.
type StubRepository interface {
	UpsertBatch(ctx context.Context, channelRowID string, stubs []domain.VideoStub) (int, error)
	DeleteByChannel(ctx context.Context, channelRowID string) error
}

// TranscriptionRepository persists saved transcription records.
type TranscriptionRepository interface {
	Create(ctx context.Context, t *domain.Transcription) (*domain.Transcription, error)
	List(ctx context.Context, userID *string) ([]domain.Transcription, error)
	Get(ctx context.Context, id string) (*domain.Transcription, error)
	Delete(ctx context.Context, id string) error
	UpdateTags(ctx context.Context, id string, tags []string) (*domain.Transcription, error)
}
