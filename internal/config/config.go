package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application
type Config struct {
	Port              string
	AllowedOrigins    []string
	YouTubeAPIKey     string
	LogLevel          string
	DatabaseURL       string
	RedisURL          string
	SupabaseJWTSecret string
	TranscriberURL    string
	TranscribeTimeout time.Duration
	Environment       string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:              getEnv("PORT", "8080"),
		AllowedOrigins:    parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		YouTubeAPIKey:     getEnv("YOUTUBE_API_KEY", ""),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		RedisURL:          getEnv("REDIS_URL", ""),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),
		TranscriberURL:    getEnv("TRANSCRIBER_URL", "http://127.0.0.1:5001"),
		TranscribeTimeout: getDurationEnv("TRANSCRIBE_TIMEOUT", 30*time.Minute),
		Environment:       getEnv("ENVIRONMENT", "production"),
	}, nil
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getDurationEnv gets a duration environment variable (seconds) with a fallback
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return fallback
}

// parseOrigins parses comma-separated origins into a slice
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
