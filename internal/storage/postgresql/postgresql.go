package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

type Storage struct {
	db *pgxpool.Pool
}

const (
	// tables
	recipesTable         = "recipes"
	blogPostsTable       = "blog_posts"
	contactMessagesTable = "contact_messages"
)

func New(ctx context.Context, dsn string) (*Storage, error) {
	const op = "storage.postgresql.New"

	db, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// Pool отдает пул соединений репозиториям
func (s *Storage) Pool() *pgxpool.Pool {
	return s.db
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Storage) Stop() {
	s.db.Close()
}

// Migrate создает таблицы, если их еще нет
func (s *Storage) Migrate(ctx context.Context) error {
	return Migrate(ctx, s.db)
}

func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	const op = "storage.postgresql.Migrate"

	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
	`CREATE TABLE IF NOT EXISTS ` + recipesTable + ` (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title TEXT NOT NULL,
		description TEXT,
		content JSONB,
		category TEXT,
		tags TEXT[] NOT NULL DEFAULT '{}',
		image_url TEXT,
		video_url TEXT,
		media_urls TEXT[] NOT NULL DEFAULT '{}',
		published BOOLEAN NOT NULL DEFAULT FALSE,
		featured BOOLEAN NOT NULL DEFAULT FALSE,
		ingredients TEXT[] NOT NULL DEFAULT '{}',
		instructions TEXT[] NOT NULL DEFAULT '{}',
		prep_time INTEGER CHECK (prep_time >= 0),
		cook_time INTEGER CHECK (cook_time >= 0),
		servings INTEGER CHECK (servings > 0),
		difficulty TEXT CHECK (difficulty IN ('easy', 'medium', 'hard')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_recipes_published_created ON ` + recipesTable + ` (published, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS ` + blogPostsTable + ` (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title TEXT NOT NULL,
		description TEXT,
		content JSONB,
		category TEXT,
		tags TEXT[] NOT NULL DEFAULT '{}',
		image_url TEXT,
		video_url TEXT,
		media_urls TEXT[] NOT NULL DEFAULT '{}',
		published BOOLEAN NOT NULL DEFAULT FALSE,
		featured BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_blog_posts_published_created ON ` + blogPostsTable + ` (published, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS ` + contactMessagesTable + ` (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		subject TEXT,
		message TEXT NOT NULL,
		remote_ip TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}
