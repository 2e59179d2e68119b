package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"recipe_journal/internal/domain/filter"
	"recipe_journal/internal/domain/models"
	"recipe_journal/internal/domain/seed"
	"recipe_journal/internal/lib/logger/sl"
	"recipe_journal/internal/metrics"
	"recipe_journal/internal/repository"
	"recipe_journal/internal/storage"
)

const (
	collectionRecipes   = "recipes"
	collectionBlogPosts = "blog_posts"
)

// HomePage главная страница: избранное, отфильтрованный список и варианты категорий
type HomePage struct {
	Featured   []models.Recipe
	Recipes    []models.Recipe
	Categories []string
	Total      int
	Fallback   bool
}

type RecipeListing struct {
	Recipes  []models.Recipe
	Total    int
	Fallback bool
}

type CatalogService struct {
	log     *slog.Logger
	repo    repository.ContentRepository
	timeout time.Duration
}

func NewCatalogService(log *slog.Logger, repo repository.ContentRepository, timeout time.Duration) *CatalogService {
	return &CatalogService{
		log:     log,
		repo:    repo,
		timeout: timeout,
	}
}

func (s *CatalogService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Home загружает все опубликованные рецепты и фильтрует их в памяти.
// Если хранилище недоступно или пусто, используются демо-рецепты.
func (s *CatalogService) Home(ctx context.Context, spec filter.Spec) HomePage {
	const op = "catalog_service.Home"

	log := s.log.With(slog.String("op", op))

	items, fallback := s.publishedRecipes(ctx, log, "home")

	filtered := filter.Apply(items, spec)

	featured := make([]models.Recipe, 0)
	for _, r := range items {
		if r.Featured {
			featured = append(featured, r)
		}
	}

	return HomePage{
		Featured:   featured,
		Recipes:    filtered,
		Categories: filter.UniqueCategories(items),
		Total:      len(filtered),
		Fallback:   fallback,
	}
}

// ListRecipes передает в хранилище поиск, категорию и сложность, а ограничение
// по времени применяет к полученным строкам. Демо-рецепты используются, когда
// запрос упал или опубликованных рецептов нет совсем.
func (s *CatalogService) ListRecipes(ctx context.Context, spec filter.Spec) RecipeListing {
	const op = "catalog_service.ListRecipes"

	log := s.log.With(slog.String("op", op))

	qctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.repo.ListRecipes(qctx, repository.ListQuery{
		PublishedOnly: true,
		Filter:        spec.StoreSide(),
	})
	if err != nil {
		s.logFallback(log, "recipes", "error", &models.FetchError{Collection: collectionRecipes, Err: err})
		return seedListing(spec)
	}

	if len(rows) == 0 {
		hasAny, err := s.repo.HasPublished(qctx, collectionRecipes)
		if err != nil {
			s.logFallback(log, "recipes", "error", &models.FetchError{Collection: collectionRecipes, Err: err})
			return seedListing(spec)
		}
		if !hasAny {
			s.logFallback(log, "recipes", "empty", &models.FetchError{Collection: collectionRecipes})
			return seedListing(spec)
		}
	}

	recipes := filter.Apply(rows, spec.ClientSide())

	return RecipeListing{
		Recipes: recipes,
		Total:   len(recipes),
	}
}

func seedListing(spec filter.Spec) RecipeListing {
	recipes := filter.Apply(seed.Recipes(), spec)
	return RecipeListing{
		Recipes:  recipes,
		Total:    len(recipes),
		Fallback: true,
	}
}

// Categories варианты для фильтра категорий
func (s *CatalogService) Categories(ctx context.Context) []string {
	const op = "catalog_service.Categories"

	log := s.log.With(slog.String("op", op))

	items, _ := s.publishedRecipes(ctx, log, "categories")

	return filter.UniqueCategories(items)
}

// GetRecipe ищет опубликованный рецепт в хранилище, затем среди демо-рецептов
func (s *CatalogService) GetRecipe(ctx context.Context, id string) (models.Recipe, error) {
	const op = "catalog_service.GetRecipe"

	log := s.log.With(
		slog.String("op", op),
		slog.String("recipe_id", id),
	)

	qctx, cancel := s.withTimeout(ctx)
	defer cancel()

	recipe, err := s.repo.GetRecipe(qctx, id)
	switch {
	case err == nil && recipe.Published:
		return recipe, nil
	case err != nil && !errors.Is(err, storage.ErrNotFound):
		log.Warn("failed to fetch recipe, trying seeds", sl.Err(err))
	}

	if r, ok := seed.Recipe(id); ok {
		metrics.FallbackTotal.WithLabelValues("recipe", "seed").Inc()
		return r, nil
	}

	return models.Recipe{}, fmt.Errorf("%s: %w", op, &models.NotFoundError{Collection: collectionRecipes, ID: id})
}

// ListPosts опубликованные записи блога. Демо-данных для блога нет, поэтому
// ошибка хранилища возвращается как FetchError.
func (s *CatalogService) ListPosts(ctx context.Context, spec filter.Spec) ([]models.BlogPost, error) {
	const op = "catalog_service.ListPosts"

	log := s.log.With(slog.String("op", op))

	qctx, cancel := s.withTimeout(ctx)
	defer cancel()

	posts, err := s.repo.ListBlogPosts(qctx, repository.ListQuery{PublishedOnly: true})
	if err != nil {
		log.Error("failed to list blog posts", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, &models.FetchError{Collection: collectionBlogPosts, Err: err})
	}

	return filter.Apply(posts, spec), nil
}

func (s *CatalogService) GetPost(ctx context.Context, id string) (models.BlogPost, error) {
	const op = "catalog_service.GetPost"

	log := s.log.With(
		slog.String("op", op),
		slog.String("post_id", id),
	)

	qctx, cancel := s.withTimeout(ctx)
	defer cancel()

	post, err := s.repo.GetBlogPost(qctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.BlogPost{}, fmt.Errorf("%s: %w", op, &models.NotFoundError{Collection: collectionBlogPosts, ID: id})
		}
		log.Error("failed to get blog post", sl.Err(err))

		return models.BlogPost{}, fmt.Errorf("%s: %w", op, &models.FetchError{Collection: collectionBlogPosts, Err: err})
	}

	if !post.Published {
		return models.BlogPost{}, fmt.Errorf("%s: %w", op, &models.NotFoundError{Collection: collectionBlogPosts, ID: id})
	}

	return post, nil
}

// publishedRecipes рабочий набор для фильтрации в памяти
func (s *CatalogService) publishedRecipes(ctx context.Context, log *slog.Logger, listing string) ([]models.Recipe, bool) {
	qctx, cancel := s.withTimeout(ctx)
	defer cancel()

	items, err := s.repo.ListRecipes(qctx, repository.ListQuery{PublishedOnly: true})
	if err != nil {
		s.logFallback(log, listing, "error", &models.FetchError{Collection: collectionRecipes, Err: err})
		return seed.Recipes(), true
	}
	if len(items) == 0 {
		s.logFallback(log, listing, "empty", &models.FetchError{Collection: collectionRecipes})
		return seed.Recipes(), true
	}

	return items, false
}

func (s *CatalogService) logFallback(log *slog.Logger, listing, reason string, err *models.FetchError) {
	metrics.FallbackTotal.WithLabelValues(listing, reason).Inc()

	if reason == "empty" {
		log.Info("store has no published rows, using seed data", slog.String("collection", err.Collection))
		return
	}
	log.Warn("store read failed, using seed data", sl.Err(err))
}
