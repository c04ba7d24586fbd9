package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"scribe-be/internal/domain"
	"scribe-be/internal/middleware"
	"scribe-be/internal/repository"
	"scribe-be/internal/service"
	"scribe-be/pkg/errors"
	"scribe-be/pkg/logger"
)

// CatalogHandler handles channel catalog HTTP requests
type CatalogHandler struct {
	ingest   *service.IngestService
	channels repository.ChannelRepository
	videos   repository.VideoRepository
	cache    *service.CacheService
	logger   *logger.Logger
}

// NewCatalogHandler creates a new catalog handler. cache may be nil when
// caching is disabled.
func NewCatalogHandler(
	ingest *service.IngestService,
	channels repository.ChannelRepository,
	videos repository.VideoRepository,
	cache *service.CacheService,
	log *logger.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		ingest:   ingest,
		channels: channels,
		videos:   videos,
		cache:    cache,
		logger:   log,
	}
}

// Ingest handles POST /api/youtube/channels
func (h *CatalogHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req domain.IngestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	var userID *string
	if profile := middleware.UserFromContext(r.Context()); profile != nil {
		userID = &profile.Sub
	}

	result, err := h.ingest.Ingest(r.Context(), req.ChannelURL, userID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	status := http.StatusCreated
	if result.AlreadyExists {
		status = http.StatusOK
	}
	writeJSON(w, status, Response{Success: true, Data: result, Message: result.Message}, h.logger)
}

// Refresh handles PUT /api/youtube/channels/{id}/refresh
func (h *CatalogHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.ingest.Refresh(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: result, Message: result.Message}, h.logger)
}

// List handles GET /api/youtube/channels. Authenticated callers see their
// own channels plus unowned ones; anonymous callers see everything.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	channels, err := h.channels.List(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if profile := middleware.UserFromContext(r.Context()); profile != nil {
		visible := make([]domain.Channel, 0, len(channels))
		for _, c := range channels {
			if c.UserID == nil || *c.UserID == profile.Sub {
				visible = append(visible, c)
			}
		}
		channels = visible
	}
	if channels == nil {
		channels = []domain.Channel{}
	}

	writeData(w, http.StatusOK, channels, h.logger)
}

// ChannelDetail is the payload of GET /api/youtube/channels/{id}.
type ChannelDetail struct {
	Channel          *domain.Channel `json:"channel"`
	StoredVideoCount int             `json:"stored_video_count"`
}

// Get handles GET /api/youtube/channels/{id}
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	channel, err := h.loadChannel(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	countLoader := func(ctx context.Context) (int, error) {
		return h.videos.CountByChannel(ctx, id)
	}
	var count int
	if h.cache != nil {
		count, err = h.cache.ChannelVideoCount(r.Context(), id, countLoader)
	} else {
		count, err = countLoader(r.Context())
	}
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, ChannelDetail{Channel: channel, StoredVideoCount: count}, h.logger)
}

// Videos handles GET /api/youtube/channels/{id}/videos
func (h *CatalogHandler) Videos(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := h.loadChannel(r.Context(), id); err != nil {
		writeError(w, err, h.logger)
		return
	}

	videos, err := h.loadVideos(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	page := service.BuildVideoList(videos, parseListOptions(r))
	writeData(w, http.StatusOK, page, h.logger)
}

// Export handles GET /api/youtube/channels/{id}/export
func (h *CatalogHandler) Export(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	channel, err := h.loadChannel(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	videos, err := h.loadVideos(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	// Export covers the whole filtered list, not one page.
	opts := parseListOptions(r)
	opts.Page = 0
	opts.PerPage = len(videos) + 1
	page := service.BuildVideoList(videos, opts)

	filename := service.CSVFileName(channel.Title, time.Now().UTC())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte(service.ExportCSV(page.Videos))); err != nil {
		h.logger.WithError(err).Error("Failed to write CSV export")
	}
}

// Delete handles DELETE /api/youtube/channels/{id}
func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	channel, err := h.channels.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if channel == nil {
		writeError(w, errors.NewNotFoundError("Channel not found"), h.logger)
		return
	}

	if err := h.channels.Delete(r.Context(), id); err != nil {
		writeError(w, err, h.logger)
		return
	}

	if h.cache != nil {
		if err := h.cache.InvalidateChannel(r.Context(), id); err != nil {
			h.logger.WithError(err).Warn("Failed to invalidate channel cache")
		}
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Channel deleted"}, h.logger)
}

// loadChannel reads a channel through the cache and converts absence into a
// not-found error.
func (h *CatalogHandler) loadChannel(ctx context.Context, id string) (*domain.Channel, error) {
	loader := func(ctx context.Context) (*domain.Channel, error) {
		return h.channels.GetByID(ctx, id)
	}

	var channel *domain.Channel
	var err error
	if h.cache != nil {
		channel, err = h.cache.Channel(ctx, id, loader)
	} else {
		channel, err = loader(ctx)
	}
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return nil, errors.NewNotFoundError("Channel not found")
	}
	return channel, nil
}

func (h *CatalogHandler) loadVideos(ctx context.Context, id string) ([]domain.Video, error) {
	loader := func(ctx context.Context) ([]domain.Video, error) {
		return h.videos.ListByChannel(ctx, id)
	}
	if h.cache != nil {
		return h.cache.ChannelVideos(ctx, id, loader)
	}
	return loader(ctx)
}

// parseListOptions reads the view-model parameters from the query string.
// The page index resets to zero whenever the client changes the page size,
// signalled by a prev_per_page echo that differs from per_page.
func parseListOptions(r *http.Request) domain.VideoListOptions {
	q := r.URL.Query()

	opts := domain.VideoListOptions{
		Query: q.Get("q"),
		Type:  domain.VideoType(q.Get("type")),
		Sort:  domain.SortKey(q.Get("sort")),
		Order: domain.SortOrder(q.Get("order")),
	}

	if opts.Type == "" {
		opts.Type = domain.TypeAll
	}
	if opts.Sort == "" {
		opts.Sort = domain.SortByPublished
	}
	if opts.Order == "" {
		opts.Order = domain.OrderDesc
	}

	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		opts.Page = n
	}
	if n, err := strconv.Atoi(q.Get("per_page")); err == nil && n > 0 {
		opts.PerPage = n
	}
	if prev, err := strconv.Atoi(q.Get("prev_per_page")); err == nil && prev > 0 && prev != opts.PerPage {
		opts.Page = 0
	}

	return opts
}

// RegisterRoutes registers catalog routes. Auth is optional everywhere: a
// valid token attaches ownership to ingested channels, anonymous requests
// still work.
func (h *CatalogHandler) RegisterRoutes(r chi.Router, optionalAuth func(http.Handler) http.Handler) {
	r.Route("/youtube/channels", func(r chi.Router) {
		if optionalAuth != nil {
			r.Use(optionalAuth)
		}
		r.Get("/", h.List)
		r.Post("/", h.Ingest)
		r.Get("/{id}", h.Get)
		r.Put("/{id}/refresh", h.Refresh)
		r.Delete("/{id}", h.Delete)
		r.Get("/{id}/videos", h.Videos)
		r.Get("/{id}/export", h.Export)
	})
}
