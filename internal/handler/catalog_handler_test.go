package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"scribe-be/internal/domain"
)

func TestParseListOptions(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want domain.VideoListOptions
	}{
		{
			name: "defaults",
			url:  "/videos",
			want: domain.VideoListOptions{
				Type:  domain.TypeAll,
				Sort:  domain.SortByPublished,
				Order: domain.OrderDesc,
			},
		},
		{
			name: "full query",
			url:  "/videos?q=camera&type=shorts&sort=views_date&order=asc&page=3&per_page=24",
			want: domain.VideoListOptions{
				Query:   "camera",
				Type:    domain.TypeShorts,
				Sort:    domain.SortByViewsDate,
				Order:   domain.OrderAsc,
				Page:    3,
				PerPage: 24,
			},
		},
		{
			name: "page survives when page size is unchanged",
			url:  "/videos?page=2&per_page=12&prev_per_page=12",
			want: domain.VideoListOptions{
				Type:    domain.TypeAll,
				Sort:    domain.SortByPublished,
				Order:   domain.OrderDesc,
				Page:    2,
				PerPage: 12,
			},
		},
		{
			name: "page resets when page size changes",
			url:  "/videos?page=5&per_page=24&prev_per_page=12",
			want: domain.VideoListOptions{
				Type:    domain.TypeAll,
				Sort:    domain.SortByPublished,
				Order:   domain.OrderDesc,
				Page:    0,
				PerPage: 24,
			},
		},
		{
			name: "garbage paging values are ignored",
			url:  "/videos?page=minus&per_page=-3",
			want: domain.VideoListOptions{
				Type:  domain.TypeAll,
				Sort:  domain.SortByPublished,
				Order: domain.OrderDesc,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			assert.Equal(t, tt.want, parseListOptions(r))
		})
	}
}
