package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scribe-be/internal/domain"
)

func video(id, title, duration string, views int64, likeCount *int64, published time.Time, tags ...string) domain.Video {
	return domain.Video{
		VideoID:     id,
		Title:       title,
		Duration:    duration,
		ViewCount:   views,
		LikeCount:   likeCount,
		PublishedAt: published,
		Tags:        tags,
	}
}

func ptr(n int64) *int64 { return &n }

var baseTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func sampleVideos() []domain.Video {
	return []domain.Video{
		video("a", "Camera Review", "10:30", 5000, ptr(300), baseTime, "tech", "camera"),
		video("b", "Quick Tip", "0:45", 9000, ptr(900), baseTime.AddDate(0, 1, 0), "tips"),
		video("c", "Full Documentary", "1:20:00", 5000, nil, baseTime.AddDate(0, 2, 0), "film"),
		video("d", "Another Short", "0:60", 100, ptr(10), baseTime.AddDate(0, 3, 0)),
		video("e", "No Duration", "", 42, ptr(1), baseTime.AddDate(0, 4, 0), "misc"),
	}
}

func TestIsShortForm(t *testing.T) {
	tests := []struct {
		duration string
		want     bool
	}{
		{"0:45", true},
		{"0:60", true},
		{"1:00", false},
		{"10:30", false},
		{"1:20:00", false},
		{"", false},
		{"0:00", true},
	}

	for _, tt := range tests {
		t.Run("duration "+tt.duration, func(t *testing.T) {
			v := domain.Video{Duration: tt.duration}
			assert.Equal(t, tt.want, IsShortForm(v))
		})
	}
}

func TestBuildVideoList_TypePartition(t *testing.T) {
	videos := sampleVideos()

	shorts := BuildVideoList(videos, domain.VideoListOptions{Type: domain.TypeShorts, PerPage: 100})
	long := BuildVideoList(videos, domain.VideoListOptions{Type: domain.TypeLongForm, PerPage: 100})
	all := BuildVideoList(videos, domain.VideoListOptions{Type: domain.TypeAll, PerPage: 100})

	// The two type filters partition the full set.
	assert.Equal(t, all.Filtered, shorts.Filtered+long.Filtered)

	seen := map[string]int{}
	for _, v := range shorts.Videos {
		seen[v.VideoID]++
	}
	for _, v := range long.Videos {
		seen[v.VideoID]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "video %s in both partitions", id)
	}

	// Missing duration lands on the long-form side.
	longIDs := make([]string, 0, len(long.Videos))
	for _, v := range long.Videos {
		longIDs = append(longIDs, v.VideoID)
	}
	assert.Contains(t, longIDs, "e")
}

func TestBuildVideoList_QueryMatchesTitleOrTag(t *testing.T) {
	videos := sampleVideos()

	byTitle := BuildVideoList(videos, domain.VideoListOptions{Query: "CAMERA", PerPage: 100})
	require.Equal(t, 1, byTitle.Filtered)
	assert.Equal(t, "a", byTitle.Videos[0].VideoID)

	byTag := BuildVideoList(videos, domain.VideoListOptions{Query: "tips", PerPage: 100})
	require.Equal(t, 1, byTag.Filtered)
	assert.Equal(t, "b", byTag.Videos[0].VideoID)

	none := BuildVideoList(videos, domain.VideoListOptions{Query: "zzz", PerPage: 100})
	assert.Zero(t, none.Filtered)
}

func TestBuildVideoList_MetricThenDate(t *testing.T) {
	videos := sampleVideos()

	page := BuildVideoList(videos, domain.VideoListOptions{
		Sort:    domain.SortByViewsDate,
		Order:   domain.OrderDesc,
		PerPage: 100,
	})

	ids := make([]string, 0, len(page.Videos))
	for _, v := range page.Videos {
		ids = append(ids, v.VideoID)
	}

	// b leads on views; a and c tie at 5000 views so the later date wins;
	// the low-view rows trail regardless of recency.
	assert.Equal(t, []string{"b", "c", "a", "d", "e"}, ids)

	asc := BuildVideoList(videos, domain.VideoListOptions{
		Sort:    domain.SortByViewsDate,
		Order:   domain.OrderAsc,
		PerPage: 100,
	})
	ascIDs := make([]string, 0, len(asc.Videos))
	for _, v := range asc.Videos {
		ascIDs = append(ascIDs, v.VideoID)
	}
	// Ascending inverts the tiebreak too: a (earlier) before c.
	assert.Equal(t, []string{"e", "d", "a", "c", "b"}, ascIDs)
}

func TestBuildVideoList_LikesTreatMissingAsZero(t *testing.T) {
	videos := sampleVideos()

	page := BuildVideoList(videos, domain.VideoListOptions{
		Sort:    domain.SortByLikes,
		Order:   domain.OrderAsc,
		PerPage: 100,
	})

	// c has no like count, so it sorts first ascending.
	assert.Equal(t, "c", page.Videos[0].VideoID)
}

func TestBuildVideoList_TitleSortIsCaseInsensitive(t *testing.T) {
	videos := []domain.Video{
		video("x", "zebra", "1:00", 0, nil, baseTime),
		video("y", "Apple", "1:00", 0, nil, baseTime),
		video("z", "mango", "1:00", 0, nil, baseTime),
	}

	page := BuildVideoList(videos, domain.VideoListOptions{
		Sort:    domain.SortByTitle,
		Order:   domain.OrderAsc,
		PerPage: 100,
	})

	assert.Equal(t, "Apple", page.Videos[0].Title)
	assert.Equal(t, "mango", page.Videos[1].Title)
	assert.Equal(t, "zebra", page.Videos[2].Title)
}

func TestBuildVideoList_Pagination(t *testing.T) {
	videos := sampleVideos()

	page := BuildVideoList(videos, domain.VideoListOptions{PerPage: 2, Page: 1})
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.PerPage)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Videos, 2)

	last := BuildVideoList(videos, domain.VideoListOptions{PerPage: 2, Page: 2})
	assert.Len(t, last.Videos, 1)

	// Out-of-range pages clamp to the last page instead of going empty.
	clamped := BuildVideoList(videos, domain.VideoListOptions{PerPage: 2, Page: 99})
	assert.Equal(t, 2, clamped.Page)
	assert.Len(t, clamped.Videos, 1)

	empty := BuildVideoList(nil, domain.VideoListOptions{PerPage: 2})
	assert.Zero(t, empty.TotalPages)
	assert.Empty(t, empty.Videos)
}

func TestExportCSV(t *testing.T) {
	videos := []domain.Video{
		video("abc", `He said "hello"`, "1:00", 123, nil, baseTime, `tag "one"`, "two"),
		video("def", "Plain", "2:00", 456, nil, baseTime),
	}

	out := ExportCSV(videos)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, `"Title","Video URL","Thumbnail URL","Views","Tags"`, lines[0])
	assert.Contains(t, lines[1], `"He said ""hello"""`)
	assert.Contains(t, lines[1], `"tag ""one"", two"`)
	assert.Contains(t, lines[1], "https://www.youtube.com/watch?v=abc")
	assert.Contains(t, lines[2], `"456"`)
}

func TestCSVFileName(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "My_Channel_videos_2024-06-15.csv", CSVFileName("My Channel", now))
	assert.Equal(t, "a-b_videos_2024-06-15.csv", CSVFileName("a/b", now))
	assert.Equal(t, "channel_videos_2024-06-15.csv", CSVFileName("  ", now))
}
