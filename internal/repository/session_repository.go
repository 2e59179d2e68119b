package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"recipe_journal/internal/domain/models"
	"recipe_journal/internal/storage"
	redisapp "recipe_journal/internal/storage/redis"
)

type RedisSessionRepo struct {
	Client *redisapp.Client
}

func NewRedisSessionRepo(client *redisapp.Client) *RedisSessionRepo {
	return &RedisSessionRepo{Client: client}
}

// Get возвращает сессию или storage.ErrSessionNotFound
func (r *RedisSessionRepo) Get(ctx context.Context, id string) (models.AdminSession, error) {
	const op = "repository.RedisSessionRepo.Get"

	val, err := r.Client.Get(ctx, sessionKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return models.AdminSession{}, fmt.Errorf("%s: %w", op, storage.ErrSessionNotFound)
	}
	if err != nil {
		return models.AdminSession{}, fmt.Errorf("%s: %w", op, err)
	}

	loginAt, err := time.Parse(time.RFC3339Nano, val)
	if err != nil {
		return models.AdminSession{}, fmt.Errorf("%s: corrupted session: %w", op, err)
	}

	return models.AdminSession{ID: id, LoginAt: loginAt}, nil
}

func (r *RedisSessionRepo) Set(ctx context.Context, s models.AdminSession, ttl time.Duration) error {
	return r.Client.Set(ctx, sessionKey(s.ID), s.LoginAt.UTC().Format(time.RFC3339Nano), ttl).Err()
}

func (r *RedisSessionRepo) Clear(ctx context.Context, id string) error {
	return r.Client.Del(ctx, sessionKey(id)).Err()
}

// MemorySessionRepo хранит сессии в памяти процесса, для локального запуска и тестов
type MemorySessionRepo struct {
	cache *cache.Cache
}

func NewMemorySessionRepo(defaultTTL time.Duration) *MemorySessionRepo {
	return &MemorySessionRepo{
		cache: cache.New(defaultTTL, 10*time.Minute),
	}
}

func (m *MemorySessionRepo) Get(_ context.Context, id string) (models.AdminSession, error) {
	const op = "repository.MemorySessionRepo.Get"

	v, ok := m.cache.Get(sessionKey(id))
	if !ok {
		return models.AdminSession{}, fmt.Errorf("%s: %w", op, storage.ErrSessionNotFound)
	}

	s, ok := v.(models.AdminSession)
	if !ok {
		return models.AdminSession{}, fmt.Errorf("%s: corrupted session", op)
	}

	return s, nil
}

func (m *MemorySessionRepo) Set(_ context.Context, s models.AdminSession, ttl time.Duration) error {
	m.cache.Set(sessionKey(s.ID), s, ttl)
	return nil
}

func (m *MemorySessionRepo) Clear(_ context.Context, id string) error {
	m.cache.Delete(sessionKey(id))
	return nil
}

func sessionKey(id string) string {
	return "admin_session:" + id
}
