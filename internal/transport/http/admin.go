package http

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"recipe_journal/internal/domain/models"
	"recipe_journal/internal/editor"
	libjwt "recipe_journal/internal/lib/jwt"
	"recipe_journal/internal/lib/logger/sl"
	"recipe_journal/internal/services/auth"
	"recipe_journal/internal/transport/http/dto"
	"recipe_journal/internal/transport/http/dto/request"
	"recipe_journal/internal/transport/http/dto/response"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	// SessionCookie имя cookie с токеном администратора
	SessionCookie = "admin_session"
	// JWTContextKey ключ, под которым echo-jwt кладет разобранный токен
	JWTContextKey = "admin_token"

	sessionTokenKey = "token"
	sessionIDKey    = "admin_session_id"
)

// TokenFromSession достает токен из cookie-сессии, для echo-jwt TokenLookupFuncs
func TokenFromSession(c echo.Context) ([]string, error) {
	sess, err := session.Get(SessionCookie, c)
	if err != nil {
		return nil, err
	}
	token, ok := sess.Values[sessionTokenKey].(string)
	if !ok || token == "" {
		return nil, errors.New("no token in session")
	}
	return []string{token}, nil
}

// RequireAdmin проверяет сессию из уже разобранного echo-jwt токена
func (r *Routers) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get(JWTContextKey).(*jwt.Token)
		if !ok {
			return c.JSON(http.StatusUnauthorized, response.ErrUnauthorized)
		}
		claims, ok := token.Claims.(*libjwt.Claims)
		if !ok {
			return c.JSON(http.StatusUnauthorized, response.ErrUnauthorized)
		}

		s, err := r.AuthService.Authorize(c.Request().Context(), claims.SessionID)
		if err != nil {
			if errors.Is(err, auth.ErrUnauthorized) || errors.Is(err, auth.ErrSessionExpired) {
				return c.JSON(http.StatusUnauthorized, response.ErrUnauthorized)
			}
			r.log.Error("failed to authorize admin", sl.Err(err))
			return c.JSON(http.StatusInternalServerError, response.ErrInternal)
		}

		c.Set(sessionIDKey, s.ID)

		return next(c)
	}
}

// AdminLogin godoc
// @Summary Вход администратора
// @Description Проверяет пароль, создает сессию на 24 часа. Токен возвращается в ответе и в cookie.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Пароль"
// @Success 200 {object} response.Response{data=map[string]string} "Успешный вход (токен)"
// @Failure 400 {object} response.ErrorResponse "Неверный формат запроса"
// @Failure 401 {object} response.ErrorResponse "Ошибка аутентификации"
// @Router /api/v1/admin/login [post]
func (r *Routers) AdminLogin(c echo.Context) error {
	const op = "http.routers.AdminLogin"

	log := r.log.With(slog.String("op", op))

	var req request.LoginRequest
	if errResp := bind(c, &req); errResp != nil {
		return c.JSON(http.StatusBadRequest, errResp)
	}

	token, s, err := r.AuthService.Login(c.Request().Context(), req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Warn("admin login failed", slog.String("remote_ip", c.RealIP()))
			return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
		}
		return r.writeError(c, log, err)
	}

	ttl := r.AuthService.TTL()

	sess, err := session.Get(SessionCookie, c)
	if err != nil {
		log.Warn("failed to read session cookie", sl.Err(err))
	}
	if sess != nil {
		sess.Options = &sessions.Options{
			Path:     "/",
			MaxAge:   int(ttl.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		}
		sess.Values[sessionTokenKey] = token
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			log.Warn("failed to save session cookie", sl.Err(err))
		}
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]string{
		"token":      token,
		"session_id": s.ID,
		"expires_at": s.ExpiresAt(ttl).Format(time.RFC3339),
	}))
}

// AdminLogout godoc
// @Summary Выход администратора
// @Tags admin
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse "Нет сессии"
// @Security ApiKeyAuth
// @Router /api/v1/admin/logout [post]
func (r *Routers) AdminLogout(c echo.Context) error {
	const op = "http.routers.AdminLogout"

	log := r.log.With(slog.String("op", op))

	sessionID, _ := c.Get(sessionIDKey).(string)

	if err := r.AuthService.Logout(c.Request().Context(), sessionID); err != nil {
		return r.writeError(c, log, err)
	}

	if sess, err := session.Get(SessionCookie, c); err == nil {
		sess.Options = &sessions.Options{Path: "/", MaxAge: -1, HttpOnly: true}
		delete(sess.Values, sessionTokenKey)
		_ = sess.Save(c.Request(), c.Response())
	}

	return c.JSON(http.StatusOK, response.Response{Status: "success", Message: "logged out"})
}

// AdminSession godoc
// @Summary Текущая сессия администратора
// @Tags admin
// @Produce json
// @Success 200 {object} response.Response{data=map[string]string}
// @Failure 401 {object} response.ErrorResponse "Нет сессии"
// @Security ApiKeyAuth
// @Router /api/v1/admin/session [get]
func (r *Routers) AdminSession(c echo.Context) error {
	const op = "http.routers.AdminSession"

	log := r.log.With(slog.String("op", op))

	sessionID, _ := c.Get(sessionIDKey).(string)

	s, err := r.AuthService.Authorize(c.Request().Context(), sessionID)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]string{
		"session_id": s.ID,
		"login_at":   s.LoginAt.Format(time.RFC3339),
		"expires_at": s.ExpiresAt(r.AuthService.TTL()).Format(time.RFC3339),
	}))
}

func (r *Routers) mode(c echo.Context) (editor.Mode, error) {
	return editor.ParseMode(c.Param("mode"))
}

// ListContent godoc
// @Summary Все записи раздела
// @Description Включая неопубликованные, новые сверху.
// @Tags admin
// @Produce json
// @Param mode path string true "Раздел" Enums(recipe, blog)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Неизвестный раздел"
// @Security ApiKeyAuth
// @Router /api/v1/admin/content/{mode} [get]
func (r *Routers) ListContent(c echo.Context) error {
	const op = "http.routers.ListContent"

	log := r.log.With(slog.String("op", op))

	mode, err := r.mode(c)
	if err != nil {
		return r.writeError(c, log, err)
	}

	drafts, err := r.ContentService.List(c.Request().Context(), mode)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(drafts))
}

// GetContent godoc
// @Summary Запись для редактирования
// @Tags admin
// @Produce json
// @Param mode path string true "Раздел" Enums(recipe, blog)
// @Param id path string true "ID записи"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Security ApiKeyAuth
// @Router /api/v1/admin/content/{mode}/{id} [get]
func (r *Routers) GetContent(c echo.Context) error {
	const op = "http.routers.GetContent"

	log := r.log.With(
		slog.String("op", op),
		slog.String("id", c.Param("id")),
	)

	mode, err := r.mode(c)
	if err != nil {
		return r.writeError(c, log, err)
	}

	d, err := r.ContentService.Get(c.Request().Context(), mode, c.Param("id"))
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(d))
}

// CreateContent godoc
// @Summary Создание записи
// @Tags admin
// @Accept json
// @Produce json
// @Param mode path string true "Раздел" Enums(recipe, blog)
// @Param request body dto.ContentRequest true "Поля записи"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Неверные данные"
// @Failure 500 {object} response.ErrorResponse "Не удалось сохранить"
// @Security ApiKeyAuth
// @Router /api/v1/admin/content/{mode} [post]
func (r *Routers) CreateContent(c echo.Context) error {
	const op = "http.routers.CreateContent"

	log := r.log.With(slog.String("op", op))

	mode, err := r.mode(c)
	if err != nil {
		return r.writeError(c, log, err)
	}

	var req dto.ContentRequest
	if errResp := bind(c, &req); errResp != nil {
		return c.JSON(http.StatusBadRequest, errResp)
	}

	d, err := r.ContentService.Create(c.Request().Context(), mode, req)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(d))
}

// UpdateContent godoc
// @Summary Изменение записи
// @Description Переданные поля заменяют текущие, теги заменяются списком целиком.
// @Tags admin
// @Accept json
// @Produce json
// @Param mode path string true "Раздел" Enums(recipe, blog)
// @Param id path string true "ID записи"
// @Param request body dto.ContentRequest true "Изменяемые поля"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Неверные данные"
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Failure 500 {object} response.ErrorResponse "Не удалось сохранить"
// @Security ApiKeyAuth
// @Router /api/v1/admin/content/{mode}/{id} [put]
func (r *Routers) UpdateContent(c echo.Context) error {
	const op = "http.routers.UpdateContent"

	log := r.log.With(
		slog.String("op", op),
		slog.String("id", c.Param("id")),
	)

	mode, err := r.mode(c)
	if err != nil {
		return r.writeError(c, log, err)
	}

	var req dto.ContentRequest
	if errResp := bind(c, &req); errResp != nil {
		return c.JSON(http.StatusBadRequest, errResp)
	}

	d, err := r.ContentService.Update(c.Request().Context(), mode, c.Param("id"), req)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(d))
}

// PublishContent godoc
// @Summary Публикация или снятие с публикации
// @Tags admin
// @Accept json
// @Produce json
// @Param mode path string true "Раздел" Enums(recipe, blog)
// @Param id path string true "ID записи"
// @Param request body dto.PublishRequest true "Флаг публикации"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Security ApiKeyAuth
// @Router /api/v1/admin/content/{mode}/{id}/publish [patch]
func (r *Routers) PublishContent(c echo.Context) error {
	const op = "http.routers.PublishContent"

	log := r.log.With(
		slog.String("op", op),
		slog.String("id", c.Param("id")),
	)

	mode, err := r.mode(c)
	if err != nil {
		return r.writeError(c, log, err)
	}

	var req dto.PublishRequest
	if errResp := bind(c, &req); errResp != nil {
		return c.JSON(http.StatusBadRequest, errResp)
	}

	d, err := r.ContentService.SetPublished(c.Request().Context(), mode, c.Param("id"), *req.Published)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(d))
}

// DeleteContent godoc
// @Summary Удаление записи
// @Tags admin
// @Param mode path string true "Раздел" Enums(recipe, blog)
// @Param id path string true "ID записи"
// @Success 204
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Security ApiKeyAuth
// @Router /api/v1/admin/content/{mode}/{id} [delete]
func (r *Routers) DeleteContent(c echo.Context) error {
	const op = "http.routers.DeleteContent"

	log := r.log.With(
		slog.String("op", op),
		slog.String("id", c.Param("id")),
	)

	mode, err := r.mode(c)
	if err != nil {
		return r.writeError(c, log, err)
	}

	if err := r.ContentService.Delete(c.Request().Context(), mode, c.Param("id")); err != nil {
		return r.writeError(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UploadMedia godoc
// @Summary Загрузка медиафайла
// @Description Сохраняет файл в медиа-хранилище и возвращает публичный URL.
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Файл"
// @Param type formData string false "Тип медиа, по умолчанию определяется по Content-Type" Enums(image, video)
// @Success 200 {object} dto.UploadResponse
// @Failure 400 {object} response.ErrorResponse "Файл не передан"
// @Failure 413 {object} response.ErrorResponse "Превышен максимальный размер файла"
// @Failure 415 {object} response.ErrorResponse "Неподдерживаемый тип файла"
// @Failure 500 {object} response.ErrorResponse "Загрузка не удалась"
// @Security ApiKeyAuth
// @Router /api/v1/admin/upload [post]
func (r *Routers) UploadMedia(c echo.Context) error {
	const op = "http.routers.UploadMedia"

	log := r.log.With(slog.String("op", op))

	file, kind, errResp := uploadInput(c)
	if errResp != nil {
		return c.JSON(http.StatusBadRequest, errResp)
	}

	res, err := r.MediaService.UploadMedia(c.Request().Context(), file, kind)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, dto.UploadResponse{URL: res.URL, Type: string(res.Kind)})
}

// AttachMedia godoc
// @Summary Загрузка медиа в запись
// @Description Загружает файл, ставит его основным изображением или видео и сохраняет запись. При ошибке загрузки запись не меняется.
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param mode path string true "Раздел" Enums(recipe, blog)
// @Param id path string true "ID записи"
// @Param file formData file true "Файл"
// @Param type formData string false "Тип медиа" Enums(image, video)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Файл не передан"
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Failure 500 {object} response.ErrorResponse "Загрузка не удалась"
// @Security ApiKeyAuth
// @Router /api/v1/admin/content/{mode}/{id}/media [post]
func (r *Routers) AttachMedia(c echo.Context) error {
	const op = "http.routers.AttachMedia"

	log := r.log.With(
		slog.String("op", op),
		slog.String("id", c.Param("id")),
	)

	mode, err := r.mode(c)
	if err != nil {
		return r.writeError(c, log, err)
	}

	file, kind, errResp := uploadInput(c)
	if errResp != nil {
		return c.JSON(http.StatusBadRequest, errResp)
	}

	url, d, err := r.ContentService.AttachUpload(c.Request().Context(), mode, c.Param("id"), file, kind)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]any{
		"url":  url,
		"item": d,
	}))
}

func uploadInput(c echo.Context) (*multipart.FileHeader, models.MediaKind, *response.ErrorResponse) {
	file, err := c.FormFile("file")
	if err != nil {
		resp := response.ErrorResponseWithDetails("invalid_request", "No file uploaded")
		return nil, "", &resp
	}

	var input dto.MediaUploadInput
	if errResp := bind(c, &input); errResp != nil {
		return nil, "", errResp
	}

	if input.Type != "" {
		kind, err := models.ParseMediaKind(input.Type)
		if err != nil {
			resp := response.ErrorResponseWithDetails("invalid_request", err.Error())
			return nil, "", &resp
		}
		return file, kind, nil
	}

	if strings.HasPrefix(file.Header.Get("Content-Type"), models.MediaKindVideo.MimePrefix()) {
		return file, models.MediaKindVideo, nil
	}
	return file, models.MediaKindImage, nil
}
