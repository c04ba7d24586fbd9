package container

import (
	"context"
	"fmt"

	"scribe-be/internal/config"
	"scribe-be/internal/repository"
	"scribe-be/internal/service"
	"scribe-be/internal/service/auth"
	"scribe-be/internal/service/youtube"
	"scribe-be/pkg/database"
	"scribe-be/pkg/logger"
	"scribe-be/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          *database.PostgresDB
	RedisClient *redis.Client

	Channels       repository.ChannelRepository
	Videos         repository.VideoRepository
	Stubs          repository.StubRepository
	Transcriptions repository.TranscriptionRepository

	AuthService   service.AuthService
	CatalogSource service.CatalogSource
	CacheService  *service.CacheService
	IngestService *service.IngestService
}

// New wires the full dependency graph. The database is required; Redis is
// optional and its absence just disables caching.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, log.Logger)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			log.Info("Redis client initialized")
		}
	} else {
		log.Info("Redis URL not configured, proceeding without caching")
	}

	channels := repository.NewChannelRepository(db)
	videos := repository.NewVideoRepository(db)
	stubs := repository.NewVideoStubRepository(db)
	transcriptions := repository.NewTranscriptionRepository(db)

	catalogSource, err := youtube.NewService(ctx, cfg.YouTubeAPIKey, log.Named("youtube"))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize catalog source: %w", err)
	}

	var cacheService *service.CacheService
	if redisClient != nil {
		cacheService = service.NewCacheService(redisClient, log.Named("cache"))
	}

	ingestService := service.NewIngestService(catalogSource, channels, videos, stubs, cacheService, log.Named("ingest"))
	authService := auth.NewService(cfg.SupabaseJWTSecret, log.Named("auth"))

	return &Container{
		Config:         cfg,
		Logger:         log,
		DB:             db,
		RedisClient:    redisClient,
		Channels:       channels,
		Videos:         videos,
		Stubs:          stubs,
		Transcriptions: transcriptions,
		AuthService:    authService,
		CatalogSource:  catalogSource,
		CacheService:   cacheService,
		IngestService:  ingestService,
	}, nil
}

// HasRedis reports whether caching is available
func (c *Container) HasRedis() bool {
	return c.RedisClient != nil
}
