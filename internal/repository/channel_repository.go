package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"scribe-be/internal/domain"
	"scribe-be/pkg/database"
)

// channelRepository handles channel persistence with PostgreSQL
type channelRepository struct {
	db *database.PostgresDB
}

// NewChannelRepository creates a new channel repository
func NewChannelRepository(db *database.PostgresDB) ChannelRepository {
	return &channelRepository{
		db: db,
	}
}

const channelColumns = `id, channel_id, url, title, description, thumbnail_url,
	subscriber_count, video_count, user_id, created_at, updated_at`

// Upsert inserts the channel or, when the external channel_id already
// exists, overwrites its metadata in place. The row id survives updates.
func (r *channelRepository) Upsert(ctx context.Context, channel *domain.Channel) (*domain.Channel, error) {
	query := `
		INSERT INTO channels (id, channel_id, url, title, description, thumbnail_url,
			subscriber_count, video_count, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		ON CONFLICT (channel_id) DO UPDATE SET
			url = EXCLUDED.url,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			thumbnail_url = EXCLUDED.thumbnail_url,
			subscriber_count = EXCLUDED.subscriber_count,
			video_count = EXCLUDED.video_count,
			updated_at = NOW()
		RETURNING ` + channelColumns

	row := r.db.Pool.QueryRow(ctx, query,
		uuid.NewString(),
		channel.ChannelID,
		channel.URL,
		channel.Title,
		channel.Description,
		channel.ThumbnailURL,
		channel.SubscriberCount,
		channel.VideoCount,
		channel.UserID,
	)

	saved, err := scanChannel(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert channel: %w", err)
	}

	return saved, nil
}

// GetByChannelID retrieves a channel by its external platform ID
func (r *channelRepository) GetByChannelID(ctx context.Context, channelID string) (*domain.Channel, error) {
	query := `SELECT ` + channelColumns + ` FROM channels WHERE channel_id = $1`

	channel, err := scanChannel(r.db.Pool.QueryRow(ctx, query, channelID))
	if err != nil {
		if err == pgx.ErrNoRows {
			// Not ingested yet, return nil without error
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get channel by channel_id: %w", err)
	}

	return channel, nil
}

// GetByID retrieves a channel by its internal row ID
func (r *channelRepository) GetByID(ctx context.Context, id string) (*domain.Channel, error) {
	query := `SELECT ` + channelColumns + ` FROM channels WHERE id = $1`

	channel, err := scanChannel(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get channel by id: %w", err)
	}

	return channel, nil
}

// List retrieves all ingested channels, most recently updated first
func (r *channelRepository) List(ctx context.Context) ([]domain.Channel, error) {
	query := `SELECT ` + channelColumns + ` FROM channels ORDER BY updated_at DESC`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query channels: %w", err)
	}
	defer rows.Close()

	var channels []domain.Channel
	for rows.Next() {
		channel, err := scanChannel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan channel row: %w", err)
		}
		channels = append(channels, *channel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading channel rows: %w", err)
	}

	return channels, nil
}

// Delete removes a channel; videos and stubs cascade at the schema level
func (r *channelRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Pool.Exec(ctx, `DELETE FROM channels WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete channel: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanChannel(row pgx.Row) (*domain.Channel, error) {
	channel := &domain.Channel{}
	err := row.Scan(
		&channel.ID,
		&channel.ChannelID,
		&channel.URL,
		&channel.Title,
		&channel.Description,
		&channel.ThumbnailURL,
		&channel.SubscriberCount,
		&channel.VideoCount,
		&channel.UserID,
		&channel.CreatedAt,
		&channel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return channel, nil
}
