package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"scribe-be/internal/domain"
	"scribe-be/internal/middleware"
	"scribe-be/internal/repository"
	"scribe-be/pkg/errors"
	"scribe-be/pkg/logger"
)

// maxUploadBytes bounds the audio payload forwarded to the transcriber.
const maxUploadBytes = 200 << 20

// TranscriptionHandler proxies audio uploads to the transcriber service and
// manages saved transcription records.
type TranscriptionHandler struct {
	transcriberURL string
	client         *http.Client
	records        repository.TranscriptionRepository
	logger         *logger.Logger
}

// NewTranscriptionHandler creates a new transcription handler. The timeout
// covers the whole proxied transcription run, so it is much longer than a
// normal request timeout.
func NewTranscriptionHandler(transcriberURL string, timeout time.Duration, records repository.TranscriptionRepository, log *logger.Logger) *TranscriptionHandler {
	return &TranscriptionHandler{
		transcriberURL: transcriberURL,
		client:         &http.Client{Timeout: timeout},
		records:        records,
		logger:         log,
	}
}

// Transcribe handles POST /api/transcribe. The multipart body streams to the
// transcriber unchanged and the transcriber's JSON response streams back.
func (h *TranscriptionHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	upstream, err := http.NewRequestWithContext(r.Context(), http.MethodPost, h.transcriberURL+"/transcribe", r.Body)
	if err != nil {
		writeError(w, errors.NewInternalError("Failed to build transcriber request", err), h.logger)
		return
	}
	upstream.Header.Set("Content-Type", r.Header.Get("Content-Type"))
	upstream.ContentLength = r.ContentLength

	start := time.Now()
	resp, err := h.client.Do(upstream)
	if err != nil {
		h.logger.WithError(err).Error("Transcriber request failed")
		writeError(w, errors.NewExternalError("Transcription service unavailable", err), h.logger)
		return
	}
	defer resp.Body.Close()

	h.logger.WithFields(map[string]interface{}{
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}).Info("Transcriber responded")

	w.Header().Set("Content-Type", resp.Header.Get("Content-Type"))
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		h.logger.WithError(err).Error("Failed to relay transcriber response")
	}
}

// Save handles POST /api/transcriptions
func (h *TranscriptionHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req domain.SaveTranscriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}
	if req.Name == "" || req.OriginalText == "" {
		writeError(w, errors.NewValidationError("name and original_text are required", nil), h.logger)
		return
	}

	record := &domain.Transcription{
		Name:            req.Name,
		OriginalText:    req.OriginalText,
		FormattedText:   req.FormattedText,
		Language:        req.Language,
		ModelUsed:       req.ModelUsed,
		FileName:        req.FileName,
		DurationSeconds: req.DurationSeconds,
		Tags:            req.Tags,
	}
	if profile := middleware.UserFromContext(r.Context()); profile != nil {
		record.UserID = &profile.Sub
	}

	saved, err := h.records.Create(r.Context(), record)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusCreated, saved, h.logger)
}

// List handles GET /api/transcriptions
func (h *TranscriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	var userID *string
	if profile := middleware.UserFromContext(r.Context()); profile != nil {
		userID = &profile.Sub
	}

	records, err := h.records.List(r.Context(), userID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if records == nil {
		records = []domain.Transcription{}
	}

	writeData(w, http.StatusOK, records, h.logger)
}

// Get handles GET /api/transcriptions/{id}
func (h *TranscriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	record, err := h.loadOwned(r, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, record, h.logger)
}

// Delete handles DELETE /api/transcriptions/{id}
func (h *TranscriptionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	record, err := h.loadOwned(r, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.records.Delete(r.Context(), record.ID); err != nil {
		if err == pgx.ErrNoRows {
			writeError(w, errors.NewNotFoundError("Transcription not found"), h.logger)
			return
		}
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Transcription deleted"}, h.logger)
}

// UpdateTags handles PATCH /api/transcriptions/{id}/tags
func (h *TranscriptionHandler) UpdateTags(w http.ResponseWriter, r *http.Request) {
	record, err := h.loadOwned(r, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req domain.UpdateTagsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	updated, err := h.records.UpdateTags(r.Context(), record.ID, req.Tags)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if updated == nil {
		writeError(w, errors.NewNotFoundError("Transcription not found"), h.logger)
		return
	}

	writeData(w, http.StatusOK, updated, h.logger)
}

// loadOwned fetches a record and checks the caller may touch it. Anonymous
// records are open; owned records require the matching user.
func (h *TranscriptionHandler) loadOwned(r *http.Request, id string) (*domain.Transcription, error) {
	record, err := h.records.Get(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errors.NewNotFoundError("Transcription not found")
	}

	if record.UserID != nil {
		profile := middleware.UserFromContext(r.Context())
		if profile == nil || profile.Sub != *record.UserID {
			return nil, errors.NewAuthorizationError("Not your transcription")
		}
	}
	return record, nil
}

// RegisterRoutes registers transcription routes. The record routes require
// auth; the proxy stays open so the UI works without an account.
func (h *TranscriptionHandler) RegisterRoutes(r chi.Router, requireAuth, optionalAuth func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		if optionalAuth != nil {
			r.Use(optionalAuth)
		}
		r.Post("/transcribe", h.Transcribe)
	})

	r.Route("/transcriptions", func(r chi.Router) {
		if requireAuth != nil {
			r.Use(requireAuth)
		}
		r.Post("/", h.Save)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Delete("/{id}", h.Delete)
		r.Patch("/{id}/tags", h.UpdateTags)
	})
}
