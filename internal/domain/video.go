package domain

import "time"

// Video is a fully detailed video record. ChannelID refers to the owning
// Channel's internal row ID, not the platform identifier; every video belongs
// to exactly one channel, determined by which channel's catalog fetch
// produced it. LikeCount is nullable because the platform may hide likes.
type Video struct {
	ID           string    `json:"id"`
	VideoID      string    `json:"video_id"`
	ChannelID    string    `json:"channel_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	PublishedAt  time.Time `json:"published_at"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Duration     string    `json:"duration,omitempty"`
	ViewCount    int64     `json:"view_count"`
	LikeCount    *int64    `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
	Tags         []string  `json:"tags,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// WatchURL reconstructs the public watch URL for the video.
func (v *Video) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + v.VideoID
}

// VideoStub is the lightweight record persisted during the basic ingestion
// pass so the UI can show the full catalog before detailed records arrive.
type VideoStub struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	ChannelID    string `json:"channel_id"`
}
