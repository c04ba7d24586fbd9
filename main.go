package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"scribe-be/internal/config"
	"scribe-be/internal/container"
	"scribe-be/internal/handler"
	"scribe-be/internal/middleware"
	"scribe-be/pkg/database"
	"scribe-be/pkg/logger"
	"scribe-be/pkg/redis"
)

// Resources holds all resources that need cleanup
type Resources struct {
	db          *database.PostgresDB
	redisClient *redis.Client
	server      *http.Server
	log         *logger.Logger
	mu          sync.Mutex
	closed      bool
}

// Cleanup gracefully closes all resources
func (r *Resources) Cleanup(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var errs []error

	r.log.Info("Starting graceful shutdown...")

	// Stop accepting new requests before tearing down backends
	if r.server != nil {
		if err := r.server.Shutdown(ctx); err != nil {
			r.log.WithError(err).Error("Failed to shutdown HTTP server")
			errs = append(errs, fmt.Errorf("HTTP server shutdown: %w", err))
		} else {
			r.log.Info("HTTP server shutdown complete")
		}
	}

	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			r.log.WithError(err).Error("Failed to close Redis connection")
			errs = append(errs, fmt.Errorf("Redis close: %w", err))
		} else {
			r.log.Info("Redis connection closed")
		}
	}

	if r.db != nil {
		r.db.Close()
		r.log.Info("Database connection pool closed")
	}

	if len(errs) > 0 {
		return fmt.Errorf("cleanup completed with %d errors: %v", len(errs), errs)
	}

	r.log.Info("Graceful shutdown completed")
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.WithFields(map[string]interface{}{
		"port":        cfg.Port,
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
	}).Info("Starting scribe-be server")

	ctx := context.Background()
	deps, err := container.New(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create container")
	}

	router := setupRouter(deps)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
		// WriteTimeout must outlast the transcribe proxy, which waits on the
		// speech-to-text backend for the whole run.
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   cfg.TranscribeTimeout + time.Minute,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	resources := &Resources{
		db:          deps.DB,
		redisClient: deps.RedisClient,
		server:      server,
		log:         log,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := resources.Cleanup(cleanupCtx); err != nil {
			log.WithError(err).Error("Cleanup completed with errors")
		}
	}()

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info("Server listening on port " + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-serverErrChan:
		log.WithError(err).Error("Server failed, initiating shutdown")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := resources.Cleanup(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown completed with errors")
		os.Exit(1)
	}

	log.Info("Application shutdown complete")
}

// setupRouter configures and returns the HTTP router
func setupRouter(deps *container.Container) *chi.Mux {
	cfg := deps.Config
	log := deps.Logger

	r := chi.NewRouter()

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.AllowedOrigins

	r.Use(middleware.CORS(corsConfig, log))
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Compress(5))

	requireAuth := middleware.Auth(deps.AuthService, log)
	optionalAuth := middleware.OptionalAuth(deps.AuthService, log)

	healthHandler := handler.NewHealthHandler(deps.DB, deps.RedisClient, log)
	catalogHandler := handler.NewCatalogHandler(deps.IngestService, deps.Channels, deps.Videos, deps.CacheService, log)
	transcriptionHandler := handler.NewTranscriptionHandler(cfg.TranscriberURL, cfg.TranscribeTimeout, deps.Transcriptions, log)

	r.Get("/health", healthHandler.Check)

	r.Route("/api", func(r chi.Router) {
		// Catalog routes get a bounded timeout; the transcribe proxy manages
		// its own much longer deadline.
		r.Group(func(r chi.Router) {
			r.Use(chiMiddleware.Timeout(60 * time.Second))
			catalogHandler.RegisterRoutes(r, optionalAuth)
		})

		transcriptionHandler.RegisterRoutes(r, requireAuth, optionalAuth)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"error":{"type":"not_found","message":"Endpoint not found"}}`))
	})

	log.Info("Router configured")
	return r
}
