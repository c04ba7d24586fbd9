package domain

// SortKey enumerates the supported video list sort modes. The two compound
// keys order by the metric first and break ties on publish date.
type SortKey string

const (
	SortByViews     SortKey = "views"
	SortByLikes     SortKey = "likes"
	SortByPublished SortKey = "published"
	SortByTitle     SortKey = "title"
	SortByViewsDate SortKey = "views_date"
	SortByLikesDate SortKey = "likes_date"
)

// SortOrder is the overall ascending/descending toggle. For compound keys it
// inverts both the metric comparison and the date tiebreak.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// VideoType filters by the duration-based short-form/long-form classification.
type VideoType string

const (
	TypeAll      VideoType = "all"
	TypeShorts   VideoType = "shorts"
	TypeLongForm VideoType = "long-form"
)

// VideoListOptions selects the filtered, sorted, paginated view of a
// channel's video catalog.
type VideoListOptions struct {
	Query   string    `json:"query"`
	Type    VideoType `json:"type"`
	Sort    SortKey   `json:"sort"`
	Order   SortOrder `json:"order"`
	Page    int       `json:"page"`
	PerPage int       `json:"per_page"`
}

// VideoListPage is one page of the derived view plus enough metadata for the
// client to render pagination controls.
type VideoListPage struct {
	Videos     []Video `json:"videos"`
	Page       int     `json:"page"`
	PerPage    int     `json:"per_page"`
	TotalPages int     `json:"total_pages"`
	Filtered   int     `json:"filtered"`
	Total      int     `json:"total"`
}
