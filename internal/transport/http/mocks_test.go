package http

import (
	"context"
	"mime/multipart"
	"time"

	"recipe_journal/internal/domain/filter"
	"recipe_journal/internal/domain/models"
	"recipe_journal/internal/editor"
	catalog "recipe_journal/internal/services/catalog_service"
	"recipe_journal/internal/transport/http/dto"

	"github.com/stretchr/testify/mock"
)

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Home(ctx context.Context, spec filter.Spec) catalog.HomePage {
	args := m.Called(ctx, spec)
	return args.Get(0).(catalog.HomePage)
}

func (m *MockCatalogService) ListRecipes(ctx context.Context, spec filter.Spec) catalog.RecipeListing {
	args := m.Called(ctx, spec)
	return args.Get(0).(catalog.RecipeListing)
}

func (m *MockCatalogService) Categories(ctx context.Context) []string {
	args := m.Called(ctx)
	return args.Get(0).([]string)
}

func (m *MockCatalogService) GetRecipe(ctx context.Context, id string) (models.Recipe, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Recipe), args.Error(1)
}

func (m *MockCatalogService) ListPosts(ctx context.Context, spec filter.Spec) ([]models.BlogPost, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BlogPost), args.Error(1)
}

func (m *MockCatalogService) GetPost(ctx context.Context, id string) (models.BlogPost, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.BlogPost), args.Error(1)
}

type MockContentService struct {
	mock.Mock
}

func (m *MockContentService) List(ctx context.Context, mode editor.Mode) ([]editor.Draft, error) {
	args := m.Called(ctx, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]editor.Draft), args.Error(1)
}

func (m *MockContentService) Get(ctx context.Context, mode editor.Mode, id string) (editor.Draft, error) {
	args := m.Called(ctx, mode, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(editor.Draft), args.Error(1)
}

func (m *MockContentService) Create(ctx context.Context, mode editor.Mode, req dto.ContentRequest) (editor.Draft, error) {
	args := m.Called(ctx, mode, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(editor.Draft), args.Error(1)
}

func (m *MockContentService) Update(ctx context.Context, mode editor.Mode, id string, req dto.ContentRequest) (editor.Draft, error) {
	args := m.Called(ctx, mode, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(editor.Draft), args.Error(1)
}

func (m *MockContentService) SetPublished(ctx context.Context, mode editor.Mode, id string, published bool) (editor.Draft, error) {
	args := m.Called(ctx, mode, id, published)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(editor.Draft), args.Error(1)
}

func (m *MockContentService) AttachUpload(ctx context.Context, mode editor.Mode, id string, file *multipart.FileHeader, kind models.MediaKind) (string, editor.Draft, error) {
	args := m.Called(ctx, mode, id, file, kind)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(editor.Draft), args.Error(2)
}

func (m *MockContentService) Delete(ctx context.Context, mode editor.Mode, id string) error {
	args := m.Called(ctx, mode, id)
	return args.Error(0)
}

type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) UploadMedia(ctx context.Context, file *multipart.FileHeader, kind models.MediaKind) (*models.UploadResult, error) {
	args := m.Called(ctx, file, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UploadResult), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, password string) (string, models.AdminSession, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Get(1).(models.AdminSession), args.Error(2)
}

func (m *MockAuthService) Authorize(ctx context.Context, sessionID string) (models.AdminSession, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(models.AdminSession), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockAuthService) TTL() time.Duration {
	return 24 * time.Hour
}

type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) Submit(ctx context.Context, req dto.ContactRequest, remoteIP string) (string, error) {
	args := m.Called(ctx, req, remoteIP)
	return args.String(0), args.Error(1)
}
