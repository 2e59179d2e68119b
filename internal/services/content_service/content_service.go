package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"time"

	"recipe_journal/internal/domain/models"
	"recipe_journal/internal/editor"
	"recipe_journal/internal/lib/logger/sl"
	"recipe_journal/internal/repository"
	"recipe_journal/internal/storage"
	"recipe_journal/internal/transport/http/dto"
)

type ContentService struct {
	log      *slog.Logger
	repo     repository.ContentRepository
	uploader editor.Uploader
	timeout  time.Duration
	opts     []editor.Option
}

func NewContentService(
	log *slog.Logger,
	repo repository.ContentRepository,
	uploader editor.Uploader,
	timeout time.Duration,
	opts ...editor.Option,
) *ContentService {
	return &ContentService{
		log:      log,
		repo:     repo,
		uploader: uploader,
		timeout:  timeout,
		opts:     opts,
	}
}

func (s *ContentService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// List все записи коллекции, включая неопубликованные, новые сверху
func (s *ContentService) List(ctx context.Context, mode editor.Mode) ([]editor.Draft, error) {
	const op = "content_service.List"

	log := s.log.With(
		slog.String("op", op),
		slog.String("mode", string(mode)),
	)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	drafts := make([]editor.Draft, 0)

	switch mode {
	case editor.ModeRecipe:
		recipes, err := s.repo.ListRecipes(ctx, repository.ListQuery{})
		if err != nil {
			log.Error("failed to list recipes", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, &models.FetchError{Collection: mode.Collection(), Err: err})
		}
		for _, r := range recipes {
			drafts = append(drafts, editor.RecipeDraftFrom(r))
		}
	case editor.ModeBlog:
		posts, err := s.repo.ListBlogPosts(ctx, repository.ListQuery{})
		if err != nil {
			log.Error("failed to list blog posts", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, &models.FetchError{Collection: mode.Collection(), Err: err})
		}
		for _, p := range posts {
			drafts = append(drafts, editor.BlogDraftFrom(p))
		}
	default:
		return nil, fmt.Errorf("%s: %w", op, editor.ErrInvalidMode)
	}

	return drafts, nil
}

// Get загружает запись из хранилища как черновик
func (s *ContentService) Get(ctx context.Context, mode editor.Mode, id string) (editor.Draft, error) {
	const op = "content_service.Get"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.load(ctx, mode, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return d, nil
}

// Create создает запись через редактор и перечитывает ее из хранилища
func (s *ContentService) Create(ctx context.Context, mode editor.Mode, req dto.ContentRequest) (editor.Draft, error) {
	const op = "content_service.Create"

	log := s.log.With(
		slog.String("op", op),
		slog.String("mode", string(mode)),
	)

	ed, err := editor.New(mode, s.repo, s.opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := apply(ed, req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.submit(ctx, log, op, ed)
}

// Update открывает сохраненную запись в редакторе, применяет изменения и сохраняет
func (s *ContentService) Update(ctx context.Context, mode editor.Mode, id string, req dto.ContentRequest) (editor.Draft, error) {
	const op = "content_service.Update"

	log := s.log.With(
		slog.String("op", op),
		slog.String("mode", string(mode)),
		slog.String("id", id),
	)

	ed, err := s.open(ctx, mode, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := apply(ed, req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.submit(ctx, log, op, ed)
}

// SetPublished переключает флаг публикации
func (s *ContentService) SetPublished(ctx context.Context, mode editor.Mode, id string, published bool) (editor.Draft, error) {
	const op = "content_service.SetPublished"

	log := s.log.With(
		slog.String("op", op),
		slog.String("mode", string(mode)),
		slog.String("id", id),
		slog.Bool("published", published),
	)

	ed, err := s.open(ctx, mode, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := ed.SetField("published", published); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.submit(ctx, log, op, ed)
}

// AttachUpload загружает файл, привязывает URL к записи и сохраняет ее.
// Если загрузка не удалась, запись не меняется.
func (s *ContentService) AttachUpload(ctx context.Context, mode editor.Mode, id string, file *multipart.FileHeader, kind models.MediaKind) (string, editor.Draft, error) {
	const op = "content_service.AttachUpload"

	log := s.log.With(
		slog.String("op", op),
		slog.String("mode", string(mode)),
		slog.String("id", id),
	)

	ed, err := s.open(ctx, mode, id)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	url, err := ed.Upload(ctx, s.uploader, file, kind)
	if err != nil {
		log.Error("upload failed", sl.Err(err))
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	d, err := s.submit(ctx, log, op, ed)
	if err != nil {
		return "", nil, err
	}

	return url, d, nil
}

func (s *ContentService) Delete(ctx context.Context, mode editor.Mode, id string) error {
	const op = "content_service.Delete"

	log := s.log.With(
		slog.String("op", op),
		slog.String("mode", string(mode)),
		slog.String("id", id),
	)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.repo.Delete(ctx, mode.Collection(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, &models.NotFoundError{Collection: mode.Collection(), ID: id})
		}
		log.Error("failed to delete", sl.Err(err))

		return fmt.Errorf("%s: %w", op, &models.PersistenceError{Op: "delete", Collection: mode.Collection(), Err: err})
	}

	log.Info("content deleted")

	return nil
}

func (s *ContentService) open(ctx context.Context, mode editor.Mode, id string) (*editor.Editor, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.load(ctx, mode, id)
	if err != nil {
		return nil, err
	}
	return editor.Open(d, s.repo, s.opts...), nil
}

func (s *ContentService) load(ctx context.Context, mode editor.Mode, id string) (editor.Draft, error) {
	var (
		d   editor.Draft
		err error
	)

	switch mode {
	case editor.ModeRecipe:
		var r models.Recipe
		r, err = s.repo.GetRecipe(ctx, id)
		d = editor.RecipeDraftFrom(r)
	case editor.ModeBlog:
		var p models.BlogPost
		p, err = s.repo.GetBlogPost(ctx, id)
		d = editor.BlogDraftFrom(p)
	default:
		return nil, editor.ErrInvalidMode
	}

	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, &models.NotFoundError{Collection: mode.Collection(), ID: id}
		}
		return nil, &models.FetchError{Collection: mode.Collection(), Err: err}
	}

	return d, nil
}

// submit сохраняет черновик и возвращает свежую версию из хранилища.
// Если перечитать не удалось, отдается отправленный снимок.
func (s *ContentService) submit(ctx context.Context, log *slog.Logger, op string, ed *editor.Editor) (editor.Draft, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	snapshot, err := ed.Submit(ctx)
	if err != nil {
		if models.IsPersistenceError(err) {
			log.Error("failed to persist draft", sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	id := ed.StoredID()
	log.Info("content saved", slog.String("stored_id", id))

	fresh, err := s.load(ctx, ed.Mode(), id)
	if err != nil {
		log.Warn("failed to refresh saved content", sl.Err(err))
		return snapshot, nil
	}

	return fresh, nil
}

// apply переносит запрос в редактор: простые поля через SetField, теги
// заменяются целиком
func apply(ed *editor.Editor, req dto.ContentRequest) error {
	for field, value := range req.Fields() {
		if err := ed.SetField(field, value); err != nil {
			return err
		}
	}

	if req.Tags != nil {
		for _, tag := range ed.Draft().Item().Tags {
			ed.RemoveTag(tag)
		}
		for _, tag := range req.Tags {
			ed.AddTag(tag)
		}
	}

	return nil
}
