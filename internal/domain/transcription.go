package domain

import "time"

// Transcription is a saved transcription result. The transcript text itself
// is produced by the external speech-to-text backend; we only store it.
type Transcription struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	OriginalText    string    `json:"original_text"`
	FormattedText   string    `json:"formatted_text"`
	Language        *string   `json:"language"`
	ModelUsed       *string   `json:"model_used"`
	FileName        *string   `json:"file_name"`
	DurationSeconds *float64  `json:"duration_seconds"`
	Tags            []string  `json:"tags"`
	UserID          *string   `json:"user_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SaveTranscriptionRequest is the body for persisting a transcription result.
type SaveTranscriptionRequest struct {
	Name            string   `json:"name"`
	OriginalText    string   `json:"original_text"`
	FormattedText   string   `json:"formatted_text"`
	Language        *string  `json:"language"`
	ModelUsed       *string  `json:"model_used"`
	FileName        *string  `json:"file_name"`
	DurationSeconds *float64 `json:"duration_seconds"`
	Tags            []string `json:"tags"`
}

// UpdateTagsRequest replaces the tag list of a transcription. A nil or empty
// list clears the tags.
type UpdateTagsRequest struct {
	Tags []string `json:"tags"`
}
