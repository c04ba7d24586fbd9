package domain

import "time"

// Channel represents a YouTube channel tracked in the database.
// ChannelID is the platform's canonical identifier (UC... form) and is the
// upsert conflict target; ID is our own row identifier.
type Channel struct {
	ID              string    `json:"id"`
	ChannelID       string    `json:"channel_id"`
	URL             string    `json:"url"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	ThumbnailURL    string    `json:"thumbnail_url,omitempty"`
	SubscriberCount int64     `json:"subscriber_count"`
	VideoCount      int64     `json:"video_count"`
	UserID          *string   `json:"user_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// IngestRequest is the body of a channel ingestion request.
type IngestRequest struct {
	ChannelURL string `json:"channel_url"`
}

// IngestResult reports the outcome of an ingest or refresh operation.
type IngestResult struct {
	Channel       *Channel `json:"channel"`
	VideoCount    int      `json:"video_count"`
	AlreadyExists bool     `json:"already_exists,omitempty"`
	Message       string   `json:"message"`
}
