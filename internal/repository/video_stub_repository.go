package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"scribe-be/internal/domain"
	"scribe-be/pkg/database"
)

// videoStubRepository handles basic-pass stub persistence with PostgreSQL
type videoStubRepository struct {
	db *database.PostgresDB
}

// NewVideoStubRepository creates a new video stub repository
func NewVideoStubRepository(db *database.PostgresDB) StubRepository {
	return &videoStubRepository{
		db: db,
	}
}

// UpsertBatch writes the basic-pass catalog capture in a single transaction.
func (r *videoStubRepository) UpsertBatch(ctx context.Context, channelRowID string, stubs []domain.VideoStub) (int, error) {
	if len(stubs) == 0 {
		return 0, nil
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin stub batch transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO video_stubs (id, video_id, channel_id, title, thumbnail_url, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (video_id) DO UPDATE SET
			channel_id = EXCLUDED.channel_id,
			title = EXCLUDED.title,
			thumbnail_url = EXCLUDED.thumbnail_url
	`

	batch := &pgx.Batch{}
	for _, stub := range stubs {
		batch.Queue(query,
			uuid.NewString(),
			stub.VideoID,
			channelRowID,
			stub.Title,
			stub.ThumbnailURL,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range stubs {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return 0, fmt.Errorf("failed to upsert stub batch: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("failed to close stub batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit stub batch: %w", err)
	}

	return len(stubs), nil
}

// DeleteByChannel removes all stubs of a channel
func (r *videoStubRepository) DeleteByChannel(ctx context.Context, channelRowID string) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM video_stubs WHERE channel_id = $1`, channelRowID)
	if err != nil {
		return fmt.Errorf("failed to delete channel stubs: %w", err)
	}
	return nil
}
