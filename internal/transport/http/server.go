package http

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"recipe_journal/internal/domain/filter"
	"recipe_journal/internal/domain/models"
	"recipe_journal/internal/editor"
	"recipe_journal/internal/lib/logger/sl"
	"recipe_journal/internal/services/auth"
	catalog "recipe_journal/internal/services/catalog_service"
	contact "recipe_journal/internal/services/contact_service"
	media "recipe_journal/internal/services/media_service"
	"recipe_journal/internal/storage"
	"recipe_journal/internal/transport/http/dto"
	"recipe_journal/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"

	_ "recipe_journal/docs"
)

type CatalogService interface {
	Home(ctx context.Context, spec filter.Spec) catalog.HomePage
	ListRecipes(ctx context.Context, spec filter.Spec) catalog.RecipeListing
	Categories(ctx context.Context) []string
	GetRecipe(ctx context.Context, id string) (models.Recipe, error)
	ListPosts(ctx context.Context, spec filter.Spec) ([]models.BlogPost, error)
	GetPost(ctx context.Context, id string) (models.BlogPost, error)
}

type ContentService interface {
	List(ctx context.Context, mode editor.Mode) ([]editor.Draft, error)
	Get(ctx context.Context, mode editor.Mode, id string) (editor.Draft, error)
	Create(ctx context.Context, mode editor.Mode, req dto.ContentRequest) (editor.Draft, error)
	Update(ctx context.Context, mode editor.Mode, id string, req dto.ContentRequest) (editor.Draft, error)
	SetPublished(ctx context.Context, mode editor.Mode, id string, published bool) (editor.Draft, error)
	AttachUpload(ctx context.Context, mode editor.Mode, id string, file *multipart.FileHeader, kind models.MediaKind) (string, editor.Draft, error)
	Delete(ctx context.Context, mode editor.Mode, id string) error
}

type MediaService interface {
	UploadMedia(ctx context.Context, file *multipart.FileHeader, kind models.MediaKind) (*models.UploadResult, error)
}

type AuthService interface {
	Login(ctx context.Context, password string) (string, models.AdminSession, error)
	Authorize(ctx context.Context, sessionID string) (models.AdminSession, error)
	Logout(ctx context.Context, sessionID string) error
	TTL() time.Duration
}

type ContactService interface {
	Submit(ctx context.Context, req dto.ContactRequest, remoteIP string) (string, error)
}

type Routers struct {
	log            *slog.Logger
	CatalogService CatalogService
	ContentService ContentService
	MediaService   MediaService
	AuthService    AuthService
	ContactService ContactService
}

func NewRouter(
	log *slog.Logger,
	catalogService CatalogService,
	contentService ContentService,
	mediaService MediaService,
	authService AuthService,
	contactService ContactService,
) *Routers {
	return &Routers{
		log:            log,
		CatalogService: catalogService,
		ContentService: contentService,
		MediaService:   mediaService,
		AuthService:    authService,
		ContactService: contactService,
	}
}

// Health godoc
// @Summary Проверка доступности
// @Tags system
// @Produce json
// @Success 200 {object} response.Response
// @Router /health [get]
func (r *Routers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, response.Response{Status: "success", Message: "ok"})
}

var editorInputErrors = []error{
	editor.ErrTitleRequired,
	editor.ErrInvalidMode,
	editor.ErrUnknownField,
	editor.ErrFieldNotInMode,
	editor.ErrFieldNotSettable,
	editor.ErrInvalidValue,
	editor.ErrIndexOutOfRange,
}

// writeError переводит ошибку сервиса в ответ клиенту, внутренние детали
// не уходят наружу
func (r *Routers) writeError(c echo.Context, log *slog.Logger, err error) error {
	for _, target := range editorInputErrors {
		if errors.Is(err, target) {
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", target.Error()))
		}
	}

	var notFound *models.NotFoundError

	switch {
	case errors.As(err, &notFound):
		return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails(response.ErrNotFound.Error, notFound.Error()))
	case errors.Is(err, auth.ErrUnauthorized), errors.Is(err, auth.ErrSessionExpired):
		return c.JSON(http.StatusUnauthorized, response.ErrUnauthorized)
	case errors.Is(err, editor.ErrSubmitInProgress), errors.Is(err, editor.ErrClosed):
		return c.JSON(http.StatusConflict, response.ErrorResponseWithDetails("conflict", "Draft is already being saved"))
	case errors.Is(err, media.ErrFileRequired):
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "No file uploaded"))
	case errors.Is(err, storage.ErrFileTooLarge):
		return c.JSON(http.StatusRequestEntityTooLarge, response.ErrorResponseWithDetails("file_too_large", storage.ErrFileTooLarge.Error()))
	case errors.Is(err, storage.ErrInvalidFileType):
		return c.JSON(http.StatusUnsupportedMediaType, response.ErrorResponseWithDetails("invalid_file_type", storage.ErrInvalidFileType.Error()))
	case errors.Is(err, contact.ErrEmptyMessage):
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", contact.ErrEmptyMessage.Error()))
	case models.IsUploadError(err):
		log.Error("upload failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrUploadFailed)
	case models.IsPersistenceError(err):
		log.Error("persistence failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrPersistenceFailed)
	case models.IsFetchError(err):
		log.Error("fetch failed", sl.Err(err))
		return c.JSON(http.StatusServiceUnavailable, response.ErrServiceUnavailable)
	case errors.Is(err, context.DeadlineExceeded):
		log.Error("request timed out", sl.Err(err))
		return c.JSON(http.StatusGatewayTimeout, response.ErrorResponseWithDetails("timeout", "Request timed out"))
	}

	log.Error("internal error", sl.Err(err))

	return c.JSON(http.StatusInternalServerError, response.ErrInternal)
}

// bind разбирает и валидирует тело запроса, nil означает успех
func bind(c echo.Context, req any) *response.ErrorResponse {
	if err := c.Bind(req); err != nil {
		resp := response.ErrInvalidRequestFormat
		return &resp
	}
	if err := c.Validate(req); err != nil {
		resp := response.ErrorResponseWithDetails(response.ErrInvalidRequestFormat.Error, err.Error())
		return &resp
	}
	return nil
}
