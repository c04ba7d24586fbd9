package service

import (
	"context"

	"scribe-be/internal/domain"
)

// CatalogSource fetches channel and video metadata from the upstream
// video platform.
type CatalogSource interface {
	ResolveChannelID(ctx context.Context, input string) (string, error)
	GetChannelInfo(ctx context.Context, channelID string) (*domain.Channel, error)
	ListBasicVideos(ctx context.Context, channelID string) ([]domain.VideoStub, error)
	FetchVideos(ctx context.Context, channelID string, maxVideos int) ([]domain.Video, error)
}

// AuthService validates bearer tokens and extracts the caller's profile.
type AuthService interface {
	ValidateToken(ctx context.Context, token string) (*domain.UserProfile, error)
}
