package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"scribe-be/internal/domain"
	"scribe-be/pkg/database"
)

// videoRepository handles video persistence with PostgreSQL
type videoRepository struct {
	db *database.PostgresDB
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *database.PostgresDB) VideoRepository {
	return &videoRepository{
		db: db,
	}
}

// UpsertBatch writes one batch of videos in a single transaction. Either the
// whole batch lands or none of it does; batches already committed by earlier
// calls are unaffected. Returns the number of rows written.
func (r *videoRepository) UpsertBatch(ctx context.Context, channelRowID string, videos []domain.Video) (int, error) {
	if len(videos) == 0 {
		return 0, nil
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin video batch transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO videos (id, video_id, channel_id, title, description, published_at,
			thumbnail_url, duration, view_count, like_count, comment_count, tags,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		ON CONFLICT (video_id) DO UPDATE SET
			channel_id = EXCLUDED.channel_id,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			published_at = EXCLUDED.published_at,
			thumbnail_url = EXCLUDED.thumbnail_url,
			duration = EXCLUDED.duration,
			view_count = EXCLUDED.view_count,
			like_count = EXCLUDED.like_count,
			comment_count = EXCLUDED.comment_count,
			tags = EXCLUDED.tags,
			updated_at = NOW()
	`

	batch := &pgx.Batch{}
	for _, video := range videos {
		batch.Queue(query,
			uuid.NewString(),
			video.VideoID,
			channelRowID,
			video.Title,
			video.Description,
			video.PublishedAt,
			video.ThumbnailURL,
			video.Duration,
			video.ViewCount,
			video.LikeCount,
			video.CommentCount,
			video.Tags,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range videos {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return 0, fmt.Errorf("failed to upsert video batch: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("failed to close video batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit video batch: %w", err)
	}

	return len(videos), nil
}

// ListByChannel retrieves all videos of a channel, newest first
func (r *videoRepository) ListByChannel(ctx context.Context, channelRowID string) ([]domain.Video, error) {
	query := `
		SELECT id, video_id, channel_id, title, description, published_at,
			thumbnail_url, duration, view_count, like_count, comment_count, tags,
			created_at, updated_at
		FROM videos
		WHERE channel_id = $1
		ORDER BY published_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, channelRowID)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	var videos []domain.Video
	for rows.Next() {
		video := domain.Video{}
		err := rows.Scan(
			&video.ID,
			&video.VideoID,
			&video.ChannelID,
			&video.Title,
			&video.Description,
			&video.PublishedAt,
			&video.ThumbnailURL,
			&video.Duration,
			&video.ViewCount,
			&video.LikeCount,
			&video.CommentCount,
			&video.Tags,
			&video.CreatedAt,
			&video.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video row: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading video rows: %w", err)
	}

	return videos, nil
}

// CountByChannel returns the number of stored videos for a channel
func (r *videoRepository) CountByChannel(ctx context.Context, channelRowID string) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM videos WHERE channel_id = $1`, channelRowID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count videos: %w", err)
	}
	return count, nil
}

// DeleteByChannel removes all videos of a channel
func (r *videoRepository) DeleteByChannel(ctx context.Context, channelRowID string) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM videos WHERE channel_id = $1`, channelRowID)
	if err != nil {
		return fmt.Errorf("failed to delete channel videos: %w", err)
	}
	return nil
}
