package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"recipe_journal/internal/domain/models"
	"recipe_journal/internal/editor"
	"recipe_journal/internal/lib/logger/handlers/slogdiscard"
	"recipe_journal/internal/repository"
	"recipe_journal/internal/storage"
	"recipe_journal/internal/transport/http/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockContentRepository реализация мок-репозитория контента
type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) ListRecipes(ctx context.Context, q repository.ListQuery) ([]models.Recipe, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Recipe), args.Error(1)
}

func (m *MockContentRepository) ListBlogPosts(ctx context.Context, q repository.ListQuery) ([]models.BlogPost, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BlogPost), args.Error(1)
}

func (m *MockContentRepository) HasPublished(ctx context.Context, collection string) (bool, error) {
	args := m.Called(ctx, collection)
	return args.Bool(0), args.Error(1)
}

func (m *MockContentRepository) GetRecipe(ctx context.Context, id string) (models.Recipe, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Recipe), args.Error(1)
}

func (m *MockContentRepository) GetBlogPost(ctx context.Context, id string) (models.BlogPost, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.BlogPost), args.Error(1)
}

func (m *MockContentRepository) Insert(ctx context.Context, collection string, payload map[string]any) (string, error) {
	args := m.Called(ctx, collection, payload)
	return args.String(0), args.Error(1)
}

func (m *MockContentRepository) Update(ctx context.Context, collection, id string, payload map[string]any) error {
	args := m.Called(ctx, collection, id, payload)
	return args.Error(0)
}

func (m *MockContentRepository) Delete(ctx context.Context, collection, id string) error {
	args := m.Called(ctx, collection, id)
	return args.Error(0)
}

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) UploadMedia(ctx context.Context, file *multipart.FileHeader, kind models.MediaKind) (*models.UploadResult, error) {
	args := m.Called(ctx, file, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UploadResult), args.Error(1)
}

const recipeID = "0d8a1e4c-3c1b-4f5e-9b7a-2f6d5c4b3a21"

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func storedRecipe() models.Recipe {
	return models.Recipe{
		ContentItem: models.ContentItem{
			ID:        recipeID,
			Title:     "Shakshuka",
			Category:  "Breakfast",
			Tags:      []string{"eggs", "spicy"},
			MediaURLs: []string{},
		},
		Ingredients:  []string{"eggs", "tomatoes"},
		Instructions: []string{"simmer", "crack eggs"},
		PrepTime:     10,
		CookTime:     20,
		Servings:     2,
		Difficulty:   models.DifficultyEasy,
	}
}

func newService(repo *MockContentRepository, up *MockUploader) *ContentService {
	return NewContentService(slogdiscard.NewDiscardLogger(), repo, up, time.Second,
		editor.WithClock(func() time.Time { return fixedNow }))
}

func TestContentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts recipe and refreshes", func(t *testing.T) {
		repo := new(MockContentRepository)
		service := newService(repo, new(MockUploader))

		repo.On("Insert", mock.Anything, "recipes", mock.MatchedBy(func(p map[string]any) bool {
			_, hasUpdatedAt := p["updated_at"]
			return p["title"] == "Pancakes" &&
				assert.ObjectsAreEqual([]string{"flour", "milk"}, p["ingredients"]) &&
				assert.ObjectsAreEqual([]string{"fluffy"}, p["tags"]) &&
				p["servings"] == 4 &&
				!hasUpdatedAt
		})).Return(recipeID, nil).Once()

		stored := storedRecipe()
		stored.Title = "Pancakes"
		repo.On("GetRecipe", mock.Anything, recipeID).Return(stored, nil).Once()

		d, err := service.Create(ctx, editor.ModeRecipe, dto.ContentRequest{
			Title:       ptr("Pancakes"),
			Ingredients: []string{"flour", "", "milk"},
			Tags:        []string{" fluffy ", "fluffy", ""},
			Servings:    ptr(4),
		})
		require.NoError(t, err)
		assert.Equal(t, recipeID, d.Item().ID)
		assert.Equal(t, "Pancakes", d.Item().Title)
		repo.AssertExpectations(t)
	})

	t.Run("title is required", func(t *testing.T) {
		repo := new(MockContentRepository)
		service := newService(repo, new(MockUploader))

		_, err := service.Create(ctx, editor.ModeBlog, dto.ContentRequest{Category: ptr("News")})
		assert.ErrorIs(t, err, editor.ErrTitleRequired)
		repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("recipe fields are rejected for blog", func(t *testing.T) {
		repo := new(MockContentRepository)
		service := newService(repo, new(MockUploader))

		_, err := service.Create(ctx, editor.ModeBlog, dto.ContentRequest{
			Title:    ptr("Post"),
			CookTime: ptr(10),
		})
		assert.ErrorIs(t, err, editor.ErrFieldNotInMode)
	})

	t.Run("blog payload has no recipe keys", func(t *testing.T) {
		repo := new(MockContentRepository)
		service := newService(repo, new(MockUploader))

		repo.On("Insert", mock.Anything, "blog_posts", mock.MatchedBy(func(p map[string]any) bool {
			_, hasIngredients := p["ingredients"]
			_, hasDifficulty := p["difficulty"]
			return p["title"] == "Post" && !hasIngredients && !hasDifficulty
		})).Return("p1", nil).Once()
		repo.On("GetBlogPost", mock.Anything, "p1").Return(models.BlogPost{}, errors.New("replica lag")).Once()

		d, err := service.Create(ctx, editor.ModeBlog, dto.ContentRequest{Title: ptr("Post")})
		require.NoError(t, err)
		// перечитать не удалось, возвращается отправленный снимок
		assert.Equal(t, "Post", d.Item().Title)
		repo.AssertExpectations(t)
	})
}

func TestContentService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("updates stored item with updated_at", func(t *testing.T) {
		repo := new(MockContentRepository)
		service := newService(repo, new(MockUploader))

		repo.On("GetRecipe", mock.Anything, recipeID).Return(storedRecipe(), nil).Twice()
		repo.On("Update", mock.Anything, "recipes", recipeID, mock.MatchedBy(func(p map[string]any) bool {
			return p["title"] == "Green Shakshuka" &&
				p["updated_at"] == fixedNow &&
				assert.ObjectsAreEqual([]string{"eggs", "spicy"}, p["tags"]) &&
				p["prep_time"] == 10
		})).Return(nil).Once()

		_, err := service.Update(ctx, editor.ModeRecipe, recipeID, dto.ContentRequest{Title: ptr("Green Shakshuka")})
		require.NoError(t, err)
		repo.AssertExpectations(t)
		repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("tags are replaced", func(t *testing.T) {
		repo := new(MockContentRepository)
		service := newService(repo, new(MockUploader))

		repo.On("GetRecipe", mock.Anything, recipeID).Return(storedRecipe(), nil)
		repo.On("Update", mock.Anything, "recipes", recipeID, mock.MatchedBy(func(p map[string]any) bool {
			return assert.ObjectsAreEqual([]string{"vegetarian"}, p["tags"])
		})).Return(nil).Once()

		_, err := service.Update(ctx, editor.ModeRecipe, recipeID, dto.ContentRequest{Tags: []string{"vegetarian"}})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("missing item", func(t *testing.T) {
		repo := new(MockContentRepository)
		service := newService(repo, new(MockUploader))
		repo.On("GetRecipe", mock.Anything, "nope").Return(models.Recipe{}, storage.ErrNotFound).Once()

		_, err := service.Update(ctx, editor.ModeRecipe, "nope", dto.ContentRequest{Title: ptr("x")})
		assert.True(t, models.IsNotFoundError(err))
	})

	t.Run("store failure is a persistence error", func(t *testing.T) {
		repo := new(MockContentRepository)
		service := newService(repo, new(MockUploader))
		repo.On("GetRecipe", mock.Anything, recipeID).Return(storedRecipe(), nil).Once()
		repo.On("Update", mock.Anything, "recipes", recipeID, mock.Anything).Return(errors.New("deadlock")).Once()

		_, err := service.Update(ctx, editor.ModeRecipe, recipeID, dto.ContentRequest{Title: ptr("x")})

		var perr *models.PersistenceError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "update", perr.Op)
		assert.Equal(t, "recipes", perr.Collection)
	})
}

func TestContentService_SetPublished(t *testing.T) {
	ctx := context.Background()
	repo := new(MockContentRepository)
	service := newService(repo, new(MockUploader))

	published := storedRecipe()
	published.Published = true

	repo.On("GetRecipe", mock.Anything, recipeID).Return(storedRecipe(), nil).Once()
	repo.On("Update", mock.Anything, "recipes", recipeID, mock.MatchedBy(func(p map[string]any) bool {
		return p["published"] == true
	})).Return(nil).Once()
	repo.On("GetRecipe", mock.Anything, recipeID).Return(published, nil).Once()

	d, err := service.SetPublished(ctx, editor.ModeRecipe, recipeID, true)
	require.NoError(t, err)
	assert.True(t, d.Item().Published)
	repo.AssertExpectations(t)
}

func TestContentService_AttachUpload(t *testing.T) {
	ctx := context.Background()
	file := &multipart.FileHeader{Filename: "cover.jpg"}

	t.Run("attaches url and saves", func(t *testing.T) {
		repo := new(MockContentRepository)
		up := new(MockUploader)
		service := newService(repo, up)

		up.On("UploadMedia", mock.Anything, file, models.MediaKindImage).
			Return(&models.UploadResult{URL: "https://cdn.test/cover.jpg", Kind: models.MediaKindImage}, nil).Once()
		repo.On("GetRecipe", mock.Anything, recipeID).Return(storedRecipe(), nil)
		repo.On("Update", mock.Anything, "recipes", recipeID, mock.MatchedBy(func(p map[string]any) bool {
			return p["image_url"] == "https://cdn.test/cover.jpg" &&
				assert.ObjectsAreEqual([]string{"https://cdn.test/cover.jpg"}, p["media_urls"])
		})).Return(nil).Once()

		url, _, err := service.AttachUpload(ctx, editor.ModeRecipe, recipeID, file, models.MediaKindImage)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.test/cover.jpg", url)
		repo.AssertExpectations(t)
	})

	t.Run("failed upload saves nothing", func(t *testing.T) {
		repo := new(MockContentRepository)
		up := new(MockUploader)
		service := newService(repo, up)

		up.On("UploadMedia", mock.Anything, file, models.MediaKindVideo).
			Return(nil, errors.New("bucket gone")).Once()
		repo.On("GetRecipe", mock.Anything, recipeID).Return(storedRecipe(), nil).Once()

		_, _, err := service.AttachUpload(ctx, editor.ModeRecipe, recipeID, file, models.MediaKindVideo)
		assert.True(t, models.IsUploadError(err))
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestContentService_ListAndDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("list includes unpublished", func(t *testing.T) {
		repo := new(MockContentRepository)
		service := newService(repo, new(MockUploader))
		repo.On("ListBlogPosts", mock.Anything, repository.ListQuery{}).Return([]models.BlogPost{
			{ContentItem: models.ContentItem{ID: "p2", Title: "Draft"}},
			{ContentItem: models.ContentItem{ID: "p1", Title: "Live", Published: true}},
		}, nil).Once()

		drafts, err := service.List(ctx, editor.ModeBlog)
		require.NoError(t, err)
		require.Len(t, drafts, 2)
		assert.Equal(t, editor.ModeBlog, drafts[0].Mode())
		assert.Equal(t, "p2", drafts[0].Item().ID)
	})

	t.Run("list failure", func(t *testing.T) {
		repo := new(MockContentRepository)
		service := newService(repo, new(MockUploader))
		repo.On("ListRecipes", mock.Anything, repository.ListQuery{}).Return(nil, errors.New("down")).Once()

		_, err := service.List(ctx, editor.ModeRecipe)
		assert.True(t, models.IsFetchError(err))
	})

	t.Run("delete", func(t *testing.T) {
		repo := new(MockContentRepository)
		service := newService(repo, new(MockUploader))
		repo.On("Delete", mock.Anything, "recipes", recipeID).Return(nil).Once()
		repo.On("Delete", mock.Anything, "blog_posts", "gone").Return(storage.ErrNotFound).Once()
		repo.On("Delete", mock.Anything, "blog_posts", "p1").Return(errors.New("fk violation")).Once()

		require.NoError(t, service.Delete(ctx, editor.ModeRecipe, recipeID))
		assert.True(t, models.IsNotFoundError(service.Delete(ctx, editor.ModeBlog, "gone")))
		assert.True(t, models.IsPersistenceError(service.Delete(ctx, editor.ModeBlog, "p1")))
	})
}
