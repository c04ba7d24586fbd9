package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	appErrors "scribe-be/pkg/errors"
	"scribe-be/pkg/logger"
)

const testUploadsPlaylist = "UUBJycsmduvYEL83R_U4JriQ"

func newTestService(t *testing.T, handler http.Handler) *Service {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log, err := logger.New("error", "development")
	require.NoError(t, err)

	svc, err := NewService(context.Background(), "test-key", log,
		option.WithEndpoint(server.URL))
	require.NoError(t, err)
	return svc
}

// fakeAPI serves YouTube-shaped JSON for a single channel whose uploads
// playlist holds totalVideos items. Page tokens encode the next offset.
type fakeAPI struct {
	totalVideos int
	// calls counts requests per endpoint path suffix.
	calls map[string]int
}

func newFakeAPI(totalVideos int) *fakeAPI {
	return &fakeAPI{totalVideos: totalVideos, calls: make(map[string]int)}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case strings.HasSuffix(r.URL.Path, "/channels"):
		f.calls["channels"]++
		f.serveChannels(w, r)
	case strings.HasSuffix(r.URL.Path, "/search"):
		f.calls["search"]++
		f.serveSearch(w)
	case strings.HasSuffix(r.URL.Path, "/playlistItems"):
		f.calls["playlistItems"]++
		f.servePlaylistItems(w, r)
	case strings.HasSuffix(r.URL.Path, "/videos"):
		f.calls["videos"]++
		f.serveVideos(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeAPI) serveChannels(w http.ResponseWriter, r *http.Request) {
	if handle := r.URL.Query().Get("forHandle"); handle != "" {
		if handle == "mkbhd" {
			writeJSON(w, map[string]interface{}{
				"items": []map[string]interface{}{{"id": "UCBJycsmduvYEL83R_U4JriQ"}},
			})
			return
		}
		writeJSON(w, map[string]interface{}{"items": []interface{}{}})
		return
	}

	writeJSON(w, map[string]interface{}{
		"items": []map[string]interface{}{{
			"id": "UCBJycsmduvYEL83R_U4JriQ",
			"snippet": map[string]interface{}{
				"title":       "Marques Brownlee",
				"description": "Tech reviews",
				"thumbnails": map[string]interface{}{
					"high": map[string]interface{}{"url": "https://i.ytimg.com/ch/high.jpg"},
				},
			},
			"statistics": map[string]interface{}{
				"subscriberCount": "18000000",
				"videoCount":      strconv.Itoa(f.totalVideos),
			},
			"contentDetails": map[string]interface{}{
				"relatedPlaylists": map[string]interface{}{"uploads": testUploadsPlaylist},
			},
		}},
	})
}

func (f *fakeAPI) serveSearch(w http.ResponseWriter) {
	writeJSON(w, map[string]interface{}{
		"items": []map[string]interface{}{{
			"id": map[string]interface{}{"channelId": "UCsearchedABCDEFGHIJKLMN"},
		}},
	})
}

func (f *fakeAPI) servePlaylistItems(w http.ResponseWriter, r *http.Request) {
	offset := 0
	if token := r.URL.Query().Get("pageToken"); token != "" {
		offset, _ = strconv.Atoi(strings.TrimPrefix(token, "t"))
	}

	end := offset + 50
	if end > f.totalVideos {
		end = f.totalVideos
	}

	items := make([]map[string]interface{}, 0, end-offset)
	for i := offset; i < end; i++ {
		id := fmt.Sprintf("vid%04d", i)
		items = append(items, map[string]interface{}{
			"snippet": map[string]interface{}{
				"title": fmt.Sprintf("Video %d", i),
				"resourceId": map[string]interface{}{
					"kind":    "youtube#video",
					"videoId": id,
				},
				"thumbnails": map[string]interface{}{
					"high": map[string]interface{}{"url": "https://i.ytimg.com/vi/" + id + "/hq.jpg"},
				},
			},
			"contentDetails": map[string]interface{}{"videoId": id},
		})
	}

	resp := map[string]interface{}{"items": items}
	if end < f.totalVideos {
		resp["nextPageToken"] = "t" + strconv.Itoa(end)
	}
	writeJSON(w, resp)
}

func (f *fakeAPI) serveVideos(w http.ResponseWriter, r *http.Request) {
	// The client sends one repeated id param per video.
	ids := r.URL.Query()["id"]
	if len(ids) == 1 {
		ids = strings.Split(ids[0], ",")
	}
	items := make([]map[string]interface{}, 0, len(ids))
	for _, id := range ids {
		n, _ := strconv.Atoi(strings.TrimPrefix(id, "vid"))
		item := map[string]interface{}{
			"id": id,
			"snippet": map[string]interface{}{
				"title":       fmt.Sprintf("Video %d", n),
				"description": "desc",
				"publishedAt": "2024-03-01T12:00:00Z",
				"tags":        []string{"tech"},
				"thumbnails": map[string]interface{}{
					"high": map[string]interface{}{"url": "https://i.ytimg.com/vi/" + id + "/hq.jpg"},
				},
			},
			"contentDetails": map[string]interface{}{"duration": "PT4M5S"},
			"statistics": map[string]interface{}{
				"viewCount":    strconv.Itoa(1000 + n),
				"likeCount":    strconv.Itoa(n % 2 * 10), // even indexes have likes hidden
				"commentCount": "5",
			},
		}
		items = append(items, item)
	}
	writeJSON(w, map[string]interface{}{"items": items})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	_ = json.NewEncoder(w).Encode(v)
}

func TestResolveChannelID_CanonicalSkipsAPI(t *testing.T) {
	api := newFakeAPI(0)
	svc := newTestService(t, api)

	id, err := svc.ResolveChannelID(context.Background(), "https://www.youtube.com/channel/UCBJycsmduvYEL83R_U4JriQ")
	require.NoError(t, err)
	assert.Equal(t, "UCBJycsmduvYEL83R_U4JriQ", id)
	assert.Empty(t, api.calls, "canonical IDs must resolve without network calls")
}

func TestResolveChannelID_Handle(t *testing.T) {
	api := newFakeAPI(0)
	svc := newTestService(t, api)

	id, err := svc.ResolveChannelID(context.Background(), "https://www.youtube.com/@mkbhd")
	require.NoError(t, err)
	assert.Equal(t, "UCBJycsmduvYEL83R_U4JriQ", id)
	assert.Equal(t, 1, api.calls["channels"])
	assert.Zero(t, api.calls["search"])
}

func TestResolveChannelID_SearchFallback(t *testing.T) {
	api := newFakeAPI(0)
	svc := newTestService(t, api)

	id, err := svc.ResolveChannelID(context.Background(), "@unknownhandle")
	require.NoError(t, err)
	assert.Equal(t, "UCsearchedABCDEFGHIJKLMN", id)
	assert.Equal(t, 1, api.calls["search"])
}

func TestResolveChannelID_InvalidURL(t *testing.T) {
	svc := newTestService(t, newFakeAPI(0))

	_, err := svc.ResolveChannelID(context.Background(), "https://www.youtube.com/watch?v=abc")
	require.Error(t, err)

	appErr, ok := err.(*appErrors.AppError)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrorTypeValidation, appErr.Type)
}

func TestGetChannelInfo(t *testing.T) {
	svc := newTestService(t, newFakeAPI(42))

	channel, err := svc.GetChannelInfo(context.Background(), "UCBJycsmduvYEL83R_U4JriQ")
	require.NoError(t, err)

	assert.Equal(t, "UCBJycsmduvYEL83R_U4JriQ", channel.ChannelID)
	assert.Equal(t, "https://www.youtube.com/channel/UCBJycsmduvYEL83R_U4JriQ", channel.URL)
	assert.Equal(t, "Marques Brownlee", channel.Title)
	assert.Equal(t, "https://i.ytimg.com/ch/high.jpg", channel.ThumbnailURL)
	assert.Equal(t, int64(18000000), channel.SubscriberCount)
	assert.Equal(t, int64(42), channel.VideoCount)
}

func TestListBasicVideos_WalksAllPages(t *testing.T) {
	api := newFakeAPI(120)
	svc := newTestService(t, api)

	stubs, err := svc.ListBasicVideos(context.Background(), "UCBJycsmduvYEL83R_U4JriQ")
	require.NoError(t, err)

	assert.Len(t, stubs, 120)
	assert.Equal(t, 3, api.calls["playlistItems"])
	assert.Equal(t, "vid0000", stubs[0].VideoID)
	assert.Equal(t, "vid0119", stubs[119].VideoID)
	assert.Zero(t, api.calls["videos"], "basic pass must not fetch details")
}

func TestFetchVideos_HonorsCap(t *testing.T) {
	api := newFakeAPI(1200)
	svc := newTestService(t, api)

	videos, err := svc.FetchVideos(context.Background(), "UCBJycsmduvYEL83R_U4JriQ", 75)
	require.NoError(t, err)

	assert.Len(t, videos, 75)
	// 75 needs two pages of 50; the walk must not touch the rest.
	assert.Equal(t, 2, api.calls["playlistItems"])
	assert.Equal(t, 2, api.calls["videos"])
}

func TestFetchVideos_StopsAtCatalogEnd(t *testing.T) {
	api := newFakeAPI(10)
	svc := newTestService(t, api)

	videos, err := svc.FetchVideos(context.Background(), "UCBJycsmduvYEL83R_U4JriQ", 500)
	require.NoError(t, err)

	assert.Len(t, videos, 10)
	assert.Equal(t, 1, api.calls["playlistItems"])
}

func TestFetchVideos_FieldMapping(t *testing.T) {
	svc := newTestService(t, newFakeAPI(2))

	videos, err := svc.FetchVideos(context.Background(), "UCBJycsmduvYEL83R_U4JriQ", 0)
	require.NoError(t, err)
	require.Len(t, videos, 2)

	first := videos[0]
	assert.Equal(t, "vid0000", first.VideoID)
	assert.Equal(t, "4:05", first.Duration)
	assert.Equal(t, int64(1000), first.ViewCount)
	assert.Equal(t, "https://www.youtube.com/watch?v=vid0000", first.WatchURL())
	assert.Nil(t, first.LikeCount, "zero like count maps to absent")

	second := videos[1]
	require.NotNil(t, second.LikeCount)
	assert.Equal(t, int64(10), *second.LikeCount)
}
