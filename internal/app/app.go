package app

import (
	"context"
	"fmt"
	"log/slog"

	httpapp "recipe_journal/internal/app/http"
	"recipe_journal/internal/config"
	"recipe_journal/internal/lib/logger/sl"
	"recipe_journal/internal/middleware"
	"recipe_journal/internal/repository"
	"recipe_journal/internal/services/auth"
	catalog "recipe_journal/internal/services/catalog_service"
	contact "recipe_journal/internal/services/contact_service"
	content "recipe_journal/internal/services/content_service"
	media "recipe_journal/internal/services/media_service"
	"recipe_journal/internal/storage/filestorage"
	"recipe_journal/internal/storage/postgresql"
	redisapp "recipe_journal/internal/storage/redis"
	httprouters "recipe_journal/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server

	log     *slog.Logger
	storage *postgresql.Storage
	redis   *redisapp.Client
}

func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	storage, err := postgresql.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := storage.Migrate(ctx); err != nil {
		storage.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	repo := repository.NewRepository(storage.Pool())

	a := &App{log: log, storage: storage}

	var sessions repository.SessionRepository
	switch cfg.Admin.SessionBackend {
	case config.SessionBackendRedis:
		a.redis = redisapp.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)
		if err := a.redis.HealthCheck(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		sessions = repository.NewRedisSessionRepo(a.redis)
	default:
		sessions = repository.NewMemorySessionRepo(cfg.Admin.SessionTTL)
	}

	fileStorage, staticDir, err := newFileStorage(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	mediaService := media.NewMediaService(log, fileStorage, cfg.FileStorage.MaxSize, cfg.Media.Timeout)

	routers := httprouters.NewRouter(
		log,
		catalog.NewCatalogService(log, repo.Content, cfg.Storage.Timeout),
		content.NewContentService(log, repo.Content, mediaService, cfg.Storage.Timeout),
		mediaService,
		auth.New(log, sessions, cfg.Admin.PasswordHash, cfg.Admin.TokenSecret, cfg.Admin.SessionTTL),
		contact.NewContactService(log, repo.Contact, cfg.Storage.Timeout),
	)

	a.HTTPServer = httpapp.New(log, httpapp.Options{
		Host:         cfg.HTTP.Host,
		Port:         cfg.HTTP.Port,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		TokenSecret:  cfg.Admin.TokenSecret,
		CookieSecret: cfg.Admin.CookieSecret,
		StaticDir:    staticDir,
		StaticPrefix: cfg.FileStorage.BaseURL,
	}, routers, middleware.NewIPRateLimiter(cfg.Contact.RequestsPerMinute, cfg.Contact.Burst))

	a.HTTPServer.BuildRouters()

	return a, nil
}

// newFileStorage возвращает хранилище медиа и каталог для раздачи статики,
// у S3 каталога нет
func newFileStorage(ctx context.Context, cfg *config.Config) (filestorage.FileStorage, string, error) {
	if cfg.Media.Backend == config.MediaBackendS3 {
		fs, err := filestorage.NewS3FileStorage(ctx, filestorage.S3Config{
			Region:        cfg.S3.Region,
			Bucket:        cfg.S3.Bucket,
			Endpoint:      cfg.S3.Endpoint,
			AccessKey:     cfg.S3.AccessKey,
			SecretKey:     cfg.S3.SecretKey,
			PublicBaseURL: cfg.S3.PublicBaseURL,
		})
		return fs, "", err
	}

	fs, err := filestorage.NewLocalFileStorage(cfg.FileStorage.BaseDir, cfg.FileStorage.BaseURL)
	if err != nil {
		return nil, "", err
	}
	return fs, fs.GetBaseDir(), nil
}

func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error("failed to close redis", sl.Err(err))
		}
	}
	a.storage.Stop()
}
