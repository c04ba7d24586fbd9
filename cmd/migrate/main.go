package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: go run main.go [drop|up|seed]")
		os.Exit(1)
	}
	command := os.Args[1]

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	switch command {
	case "drop":
		if err := dropTables(ctx, conn); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		fmt.Println("✅ All tables dropped successfully")

	case "up":
		if err := createTables(ctx, conn); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		fmt.Println("✅ All tables created successfully")

	case "seed":
		if err := seedData(ctx, conn); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
		fmt.Println("✅ Data seeded successfully")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Usage: go run main.go [drop|up|seed]")
		os.Exit(1)
	}
}

func dropTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`DROP TABLE IF EXISTS transcriptions CASCADE`,
		`DROP TABLE IF EXISTS video_stubs CASCADE`,
		`DROP TABLE IF EXISTS videos CASCADE`,
		`DROP TABLE IF EXISTS channels CASCADE`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
		fmt.Printf("  Dropped: %s\n", query)
	}

	return nil
}

func createTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS channels (
			id UUID PRIMARY KEY,
			channel_id TEXT NOT NULL UNIQUE,
			url TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			thumbnail_url TEXT NOT NULL DEFAULT '',
			subscriber_count BIGINT NOT NULL DEFAULT 0,
			video_count BIGINT NOT NULL DEFAULT 0,
			user_id TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS videos (
			id UUID PRIMARY KEY,
			video_id TEXT NOT NULL UNIQUE,
			channel_id UUID NOT NULL REFERENCES channels(id) ON DELETE CASCADE,
			title TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			published_at TIMESTAMPTZ,
			thumbnail_url TEXT NOT NULL DEFAULT '',
			duration TEXT NOT NULL DEFAULT '',
			view_count BIGINT NOT NULL DEFAULT 0,
			like_count BIGINT,
			comment_count BIGINT NOT NULL DEFAULT 0,
			tags TEXT[],
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_videos_channel_id ON videos(channel_id)`,
		`CREATE INDEX IF NOT EXISTS idx_videos_published_at ON videos(channel_id, published_at DESC)`,

		`CREATE TABLE IF NOT EXISTS video_stubs (
			id UUID PRIMARY KEY,
			video_id TEXT NOT NULL UNIQUE,
			channel_id UUID NOT NULL REFERENCES channels(id) ON DELETE CASCADE,
			title TEXT NOT NULL DEFAULT '',
			thumbnail_url TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_video_stubs_channel_id ON video_stubs(channel_id)`,

		`CREATE TABLE IF NOT EXISTS transcriptions (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			original_text TEXT NOT NULL,
			formatted_text TEXT NOT NULL DEFAULT '',
			language TEXT,
			model_used TEXT,
			file_name TEXT,
			duration_seconds DOUBLE PRECISION,
			tags TEXT[],
			user_id TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transcriptions_user_id ON transcriptions(user_id, created_at DESC)`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	fmt.Println("  Created: channels, videos, video_stubs, transcriptions")

	return nil
}

func seedData(ctx context.Context, conn *pgx.Conn) error {
	query := `
		INSERT INTO channels (id, channel_id, url, title, description, subscriber_count, video_count)
		VALUES (
			gen_random_uuid(),
			'UCBJycsmduvYEL83R_U4JriQ',
			'https://www.youtube.com/channel/UCBJycsmduvYEL83R_U4JriQ',
			'Sample Channel',
			'Seeded channel for local development',
			1000,
			0
		)
		ON CONFLICT (channel_id) DO NOTHING
	`

	if _, err := conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to seed channels: %w", err)
	}
	fmt.Println("  Seeded: sample channel")

	return nil
}
