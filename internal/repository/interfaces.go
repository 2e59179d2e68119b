package repository

import (
	"context"
	"time"

	"recipe_journal/internal/domain/models"
)

type ContentRepository interface {
	ListRecipes(ctx context.Context, q ListQuery) ([]models.Recipe, error)
	ListBlogPosts(ctx context.Context, q ListQuery) ([]models.BlogPost, error)
	HasPublished(ctx context.Context, collection string) (bool, error)
	GetRecipe(ctx context.Context, id string) (models.Recipe, error)
	GetBlogPost(ctx context.Context, id string) (models.BlogPost, error)
	Insert(ctx context.Context, collection string, payload map[string]any) (string, error)
	Update(ctx context.Context, collection, id string, payload map[string]any) error
	Delete(ctx context.Context, collection, id string) error
}

// SessionRepository хранит сессии администратора. Срок жизни проверяет
// вызывающий через models.AdminSession.Expired, ttl здесь только для очистки.
type SessionRepository interface {
	Get(ctx context.Context, id string) (models.AdminSession, error)
	Set(ctx context.Context, s models.AdminSession, ttl time.Duration) error
	Clear(ctx context.Context, id string) error
}

type ContactRepository interface {
	SaveMessage(ctx context.Context, msg models.ContactMessage) (string, error)
}
