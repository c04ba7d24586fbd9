package handler

import (
	"net/http"
	"time"

	"scribe-be/pkg/database"
	"scribe-be/pkg/logger"
	"scribe-be/pkg/redis"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	db     *database.PostgresDB
	redis  *redis.Client
	logger *logger.Logger
}

// NewHealthHandler creates a new health handler. db and redis may be nil
// when the corresponding backend is disabled.
func NewHealthHandler(db *database.PostgresDB, redisClient *redis.Client, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		redis:  redisClient,
		logger: log,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Service   string            `json:"service"`
	Checks    map[string]string `json:"checks"`
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	checks := make(map[string]string)
	status := "healthy"
	code := http.StatusOK

	if h.db != nil {
		if err := h.db.Health(ctx); err != nil {
			h.logger.WithError(err).Error("Database health check failed")
			checks["database"] = "unhealthy"
			status = "degraded"
			code = http.StatusServiceUnavailable
		} else {
			checks["database"] = "healthy"
		}
	}

	if h.redis != nil {
		if err := h.redis.Health(ctx); err != nil {
			h.logger.WithError(err).Warn("Redis health check failed")
			checks["redis"] = "unhealthy"
			if status == "healthy" {
				status = "degraded"
			}
		} else {
			checks["redis"] = "healthy"
		}
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Service:   "scribe-be",
		Checks:    checks,
	}

	writeJSON(w, code, response, h.logger)
}
