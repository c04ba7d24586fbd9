package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"scribe-be/internal/domain"
)

// DefaultPerPage is the page size used when the caller sends none.
const DefaultPerPage = 12

// BuildVideoList derives the display list from a channel's full video set:
// type classification, text filter, sort, then a fixed-size page slice.
// The input slice is not mutated.
func BuildVideoList(videos []domain.Video, opts domain.VideoListOptions) domain.VideoListPage {
	filtered := make([]domain.Video, 0, len(videos))
	query := strings.ToLower(strings.TrimSpace(opts.Query))

	for _, v := range videos {
		if !matchesType(v, opts.Type) {
			continue
		}
		if query != "" && !matchesQuery(v, query) {
			continue
		}
		filtered = append(filtered, v)
	}

	sortVideos(filtered, opts.Sort, opts.Order)

	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	totalPages := (len(filtered) + perPage - 1) / perPage
	page := opts.Page
	if page < 0 {
		page = 0
	}
	if totalPages > 0 && page >= totalPages {
		page = totalPages - 1
	}

	start := page * perPage
	end := start + perPage
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return domain.VideoListPage{
		Videos:     filtered[start:end],
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
		Filtered:   len(filtered),
		Total:      len(videos),
	}
}

// IsShortForm classifies by displayed duration: M:SS with zero minutes and
// at most 60 seconds. Anything with hours, longer M:SS values or no duration
// at all is long-form.
func IsShortForm(v domain.Video) bool {
	parts := strings.Split(v.Duration, ":")
	if len(parts) != 2 {
		return false
	}

	minutes, err := strconv.Atoi(parts[0])
	if err != nil || minutes != 0 {
		return false
	}
	seconds, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}
	return seconds <= 60
}

func matchesType(v domain.Video, t domain.VideoType) bool {
	switch t {
	case domain.TypeShorts:
		return IsShortForm(v)
	case domain.TypeLongForm:
		return !IsShortForm(v)
	default:
		return true
	}
}

func matchesQuery(v domain.Video, query string) bool {
	if strings.Contains(strings.ToLower(v.Title), query) {
		return true
	}
	for _, tag := range v.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// sortVideos orders in place. Compound keys compare the metric first and
// break ties by publish date; flipping the order inverts both legs.
func sortVideos(videos []domain.Video, key domain.SortKey, order domain.SortOrder) {
	desc := order != domain.OrderAsc

	var less func(a, b domain.Video) bool
	switch key {
	case domain.SortByLikes:
		less = func(a, b domain.Video) bool { return likes(a) < likes(b) }
	case domain.SortByTitle:
		less = func(a, b domain.Video) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	case domain.SortByPublished:
		less = func(a, b domain.Video) bool { return a.PublishedAt.Before(b.PublishedAt) }
	case domain.SortByViewsDate:
		less = func(a, b domain.Video) bool {
			if a.ViewCount != b.ViewCount {
				return a.ViewCount < b.ViewCount
			}
			return a.PublishedAt.Before(b.PublishedAt)
		}
	case domain.SortByLikesDate:
		less = func(a, b domain.Video) bool {
			if likes(a) != likes(b) {
				return likes(a) < likes(b)
			}
			return a.PublishedAt.Before(b.PublishedAt)
		}
	default: // SortByViews
		less = func(a, b domain.Video) bool { return a.ViewCount < b.ViewCount }
	}

	sort.SliceStable(videos, func(i, j int) bool {
		if desc {
			return less(videos[j], videos[i])
		}
		return less(videos[i], videos[j])
	})
}

// likes treats an absent like count as zero for ordering.
func likes(v domain.Video) int64 {
	if v.LikeCount == nil {
		return 0
	}
	return *v.LikeCount
}

// csvHeader is the fixed export column set.
var csvHeader = []string{"Title", "Video URL", "Thumbnail URL", "Views", "Tags"}

// ExportCSV renders the given (already filtered and sorted) list as CSV.
// Every field is quoted; embedded double quotes are doubled.
func ExportCSV(videos []domain.Video) string {
	var b strings.Builder
	writeCSVRow(&b, csvHeader)

	for _, v := range videos {
		writeCSVRow(&b, []string{
			v.Title,
			v.WatchURL(),
			v.ThumbnailURL,
			strconv.FormatInt(v.ViewCount, 10),
			strings.Join(v.Tags, ", "),
		})
	}

	return b.String()
}

// CSVFileName builds the download name from the channel title and today's
// date, replacing characters that commonly break filenames.
func CSVFileName(channelTitle string, now time.Time) string {
	title := strings.TrimSpace(channelTitle)
	if title == "" {
		title = "channel"
	}
	replacer := strings.NewReplacer("/", "-", "\\", "-", ":", "-", "\"", "", " ", "_")
	return fmt.Sprintf("%s_videos_%s.csv", replacer.Replace(title), now.Format("2006-01-02"))
}

func writeCSVRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
