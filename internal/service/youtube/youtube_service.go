package youtube

import (
	"context"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"scribe-be/internal/domain"
	"scribe-be/pkg/errors"
	"scribe-be/pkg/logger"
)

const (
	// pageSize is the platform maximum for playlistItems.list.
	pageSize = 50
	// DefaultMaxVideos caps a detailed fetch when the caller passes no limit.
	DefaultMaxVideos = 10000
	// DetailedFetchCap is the limit ingestion uses for the detailed pass.
	DetailedFetchCap = 500
)

// Service talks to the YouTube Data API v3. It implements
// service.CatalogSource.
type Service struct {
	yt     *youtube.Service
	logger *logger.Logger
}

// NewService creates a YouTube catalog service authenticated by API key.
// Extra client options are appended after the key, so tests can redirect the
// client at an httptest server.
func NewService(ctx context.Context, apiKey string, log *logger.Logger, extra ...option.ClientOption) (*Service, error) {
	opts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, extra...)
	yt, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.NewInternalError("Failed to initialize YouTube client", err)
	}
	return &Service{yt: yt, logger: log}, nil
}

// ResolveChannelID turns a channel URL, handle or bare ID into the canonical
// channel identifier. A canonical-shape token resolves without any network
// call; otherwise handle lookup is tried first, then a channel search.
func (s *Service) ResolveChannelID(ctx context.Context, input string) (string, error) {
	candidate := extractCandidate(input)
	if candidate == "" {
		return "", errors.NewValidationError("Invalid YouTube channel URL", map[string]interface{}{
			"input": input,
		})
	}

	if IsChannelID(candidate) {
		return candidate, nil
	}

	s.logger.WithField("candidate", candidate).Debug("Resolving channel by handle")

	byHandle, err := s.yt.Channels.List([]string{"id"}).
		ForHandle(candidate).
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", errors.NewExternalError("Failed to resolve channel handle", err)
	}
	if len(byHandle.Items) > 0 {
		return byHandle.Items[0].Id, nil
	}

	s.logger.WithField("candidate", candidate).Debug("Handle lookup empty, falling back to search")

	found, err := s.yt.Search.List([]string{"id"}).
		Q(candidate).
		Type("channel").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", errors.NewExternalError("Failed to search for channel", err)
	}
	if len(found.Items) > 0 && found.Items[0].Id != nil && found.Items[0].Id.ChannelId != "" {
		return found.Items[0].Id.ChannelId, nil
	}

	return "", errors.NewNotFoundError("Channel not found")
}

// GetChannelInfo fetches channel metadata.
func (s *Service) GetChannelInfo(ctx context.Context, channelID string) (*domain.Channel, error) {
	resp, err := s.yt.Channels.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(channelID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, errors.NewExternalError("Failed to get channel info", err)
	}
	if len(resp.Items) == 0 {
		return nil, errors.NewNotFoundError("Channel not found")
	}

	item := resp.Items[0]
	channel := &domain.Channel{
		ChannelID:    channelID,
		URL:          "https://www.youtube.com/channel/" + channelID,
		Title:        item.Snippet.Title,
		Description:  item.Snippet.Description,
		ThumbnailURL: channelThumbnail(item.Snippet.Thumbnails),
	}
	if item.Statistics != nil {
		channel.SubscriberCount = int64(item.Statistics.SubscriberCount)
		channel.VideoCount = int64(item.Statistics.VideoCount)
	}

	return channel, nil
}

// ListBasicVideos walks the whole uploads playlist collecting only id, title
// and thumbnail per item. No cap: this pass exists to capture the entire
// catalog quickly.
func (s *Service) ListBasicVideos(ctx context.Context, channelID string) ([]domain.VideoStub, error) {
	playlistID, err := s.uploadsPlaylistID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	var stubs []domain.VideoStub
	pageToken := ""

	for {
		resp, err := s.yt.PlaylistItems.List([]string{"snippet"}).
			PlaylistId(playlistID).
			MaxResults(pageSize).
			PageToken(pageToken).
			Context(ctx).
			Do()
		if err != nil {
			return nil, errors.NewExternalError("Failed to list channel uploads", err)
		}

		for _, item := range resp.Items {
			if item.Snippet == nil || item.Snippet.ResourceId == nil {
				continue
			}
			stubs = append(stubs, domain.VideoStub{
				VideoID:      item.Snippet.ResourceId.VideoId,
				Title:        item.Snippet.Title,
				ThumbnailURL: videoThumbnail(item.Snippet.Thumbnails),
			})
		}

		s.logger.WithFields(map[string]interface{}{
			"channel_id": channelID,
			"fetched":    len(stubs),
		}).Debug("Basic pass progress")

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	return stubs, nil
}

// FetchVideos walks the uploads playlist up to maxVideos items, fetching the
// full snippet, content details and statistics for each page of IDs in one
// batched call. Results keep the playlist's native most-recent-first order.
// Stops early when a page comes back empty or without a next-page token.
func (s *Service) FetchVideos(ctx context.Context, channelID string, maxVideos int) ([]domain.Video, error) {
	if maxVideos <= 0 {
		maxVideos = DefaultMaxVideos
	}

	playlistID, err := s.uploadsPlaylistID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	var videos []domain.Video
	pageToken := ""

	for len(videos) < maxVideos {
		resp, err := s.yt.PlaylistItems.List([]string{"snippet", "contentDetails"}).
			PlaylistId(playlistID).
			MaxResults(pageSize).
			PageToken(pageToken).
			Context(ctx).
			Do()
		if err != nil {
			return nil, errors.NewExternalError("Failed to list channel uploads", err)
		}

		ids := make([]string, 0, len(resp.Items))
		for _, item := range resp.Items {
			if item.ContentDetails != nil && item.ContentDetails.VideoId != "" {
				ids = append(ids, item.ContentDetails.VideoId)
			}
		}
		if len(ids) == 0 {
			break
		}

		page, err := s.videoDetails(ctx, ids)
		if err != nil {
			return nil, err
		}
		videos = append(videos, page...)

		s.logger.WithFields(map[string]interface{}{
			"channel_id": channelID,
			"fetched":    len(videos),
		}).Debug("Detailed pass progress")

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	if len(videos) > maxVideos {
		videos = videos[:maxVideos]
	}
	return videos, nil
}

// videoDetails performs one batched videos.list call for up to a page of IDs.
func (s *Service) videoDetails(ctx context.Context, ids []string) ([]domain.Video, error) {
	resp, err := s.yt.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, errors.NewExternalError("Failed to get video details", err)
	}

	videos := make([]domain.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet == nil {
			continue
		}

		video := domain.Video{
			VideoID:      item.Id,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			ThumbnailURL: videoThumbnail(item.Snippet.Thumbnails),
			Tags:         item.Snippet.Tags,
		}
		if ts, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			video.PublishedAt = ts
		}
		if item.ContentDetails != nil {
			video.Duration = FormatDuration(item.ContentDetails.Duration)
		}
		if item.Statistics != nil {
			video.ViewCount = int64(item.Statistics.ViewCount)
			video.CommentCount = int64(item.Statistics.CommentCount)
			// The platform omits likeCount when the uploader hides it.
			if item.Statistics.LikeCount > 0 {
				likes := int64(item.Statistics.LikeCount)
				video.LikeCount = &likes
			}
		}
		videos = append(videos, video)
	}

	return videos, nil
}

// uploadsPlaylistID looks up the channel's uploads playlist, the paginated
// primitive both fetch passes walk.
func (s *Service) uploadsPlaylistID(ctx context.Context, channelID string) (string, error) {
	resp, err := s.yt.Channels.List([]string{"contentDetails"}).
		Id(channelID).
		Context(ctx).
		Do()
	if err != nil {
		return "", errors.NewExternalError("Failed to get channel uploads playlist", err)
	}
	if len(resp.Items) == 0 || resp.Items[0].ContentDetails == nil ||
		resp.Items[0].ContentDetails.RelatedPlaylists == nil {
		return "", errors.NewNotFoundError("Channel not found")
	}
	return resp.Items[0].ContentDetails.RelatedPlaylists.Uploads, nil
}

func channelThumbnail(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	if t.High != nil {
		return t.High.Url
	}
	if t.Default != nil {
		return t.Default.Url
	}
	return ""
}

func videoThumbnail(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	if t.High != nil {
		return t.High.Url
	}
	if t.Default != nil {
		return t.Default.Url
	}
	return ""
}
