package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"scribe-be/internal/domain"
	"scribe-be/pkg/database"
)

// transcriptionRepository handles transcription record persistence with PostgreSQL
type transcriptionRepository struct {
	db *database.PostgresDB
}

// NewTranscriptionRepository creates a new transcription repository
func NewTranscriptionRepository(db *database.PostgresDB) TranscriptionRepository {
	return &transcriptionRepository{
		db: db,
	}
}

const transcriptionColumns = `id, name, original_text, formatted_text, language,
	model_used, file_name, duration_seconds, tags, user_id, created_at, updated_at`

// Create inserts a new transcription record
func (r *transcriptionRepository) Create(ctx context.Context, t *domain.Transcription) (*domain.Transcription, error) {
	query := `
		INSERT INTO transcriptions (id, name, original_text, formatted_text, language,
			model_used, file_name, duration_seconds, tags, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING ` + transcriptionColumns

	row := r.db.Pool.QueryRow(ctx, query,
		uuid.NewString(),
		t.Name,
		t.OriginalText,
		t.FormattedText,
		t.Language,
		t.ModelUsed,
		t.FileName,
		t.DurationSeconds,
		t.Tags,
		t.UserID,
	)

	saved, err := scanTranscription(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create transcription: %w", err)
	}

	return saved, nil
}

// List retrieves transcriptions newest first. With a user ID only that
// user's records are returned; without one only anonymous records.
func (r *transcriptionRepository) List(ctx context.Context, userID *string) ([]domain.Transcription, error) {
	query := `SELECT ` + transcriptionColumns + `
		FROM transcriptions
		WHERE ($1::text IS NULL AND user_id IS NULL) OR user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transcriptions: %w", err)
	}
	defer rows.Close()

	var records []domain.Transcription
	for rows.Next() {
		record, err := scanTranscription(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transcription row: %w", err)
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading transcription rows: %w", err)
	}

	return records, nil
}

// Get retrieves a single transcription by ID
func (r *transcriptionRepository) Get(ctx context.Context, id string) (*domain.Transcription, error) {
	query := `SELECT ` + transcriptionColumns + ` FROM transcriptions WHERE id = $1`

	record, err := scanTranscription(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get transcription: %w", err)
	}

	return record, nil
}

// Delete removes a transcription record
func (r *transcriptionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Pool.Exec(ctx, `DELETE FROM transcriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transcription: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdateTags replaces the tag list of a transcription
func (r *transcriptionRepository) UpdateTags(ctx context.Context, id string, tags []string) (*domain.Transcription, error) {
	query := `
		UPDATE transcriptions
		SET tags = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + transcriptionColumns

	record, err := scanTranscription(r.db.Pool.QueryRow(ctx, query, id, tags))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update transcription tags: %w", err)
	}

	return record, nil
}

func scanTranscription(row pgx.Row) (*domain.Transcription, error) {
	t := &domain.Transcription{}
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.OriginalText,
		&t.FormattedText,
		&t.Language,
		&t.ModelUsed,
		&t.FileName,
		&t.DurationSeconds,
		&t.Tags,
		&t.UserID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}
