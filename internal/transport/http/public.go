package http

import (
	"errors"
	"log/slog"
	"net/http"

	"recipe_journal/internal/domain/filter"
	"recipe_journal/internal/lib/sanitize"
	"recipe_journal/internal/transport/http/dto"
	"recipe_journal/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

func parseSpec(c echo.Context) (filter.Spec, error) {
	return filter.ParseSpec(
		c.QueryParam("search"),
		c.QueryParam("category"),
		c.QueryParam("difficulty"),
		c.QueryParam("maxCookTime"),
	)
}

func invalidSpec(c echo.Context, err error) error {
	if errors.Is(err, filter.ErrInvalidMaxCookTime) {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}
	return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
}

// Home godoc
// @Summary Главная страница
// @Description Опубликованные рецепты с фильтрацией в памяти. Если хранилище недоступно или пусто, отдаются демо-рецепты.
// @Tags public
// @Produce json
// @Param search query string false "Поиск по названию, описанию, категории и тегам"
// @Param category query string false "Категория (подстрока, all - без фильтра)"
// @Param difficulty query string false "Сложность" Enums(all, easy, medium, hard)
// @Param maxCookTime query string false "Максимальное общее время в минутах (all - без фильтра)"
// @Success 200 {object} response.Response{data=dto.HomeResponse}
// @Failure 400 {object} response.ErrorResponse "Неверный параметр"
// @Router /api/v1/home [get]
func (r *Routers) Home(c echo.Context) error {
	spec, err := parseSpec(c)
	if err != nil {
		return invalidSpec(c, err)
	}

	page := r.CatalogService.Home(c.Request().Context(), spec)

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.HomeResponse{
		Featured:   dto.NewRecipeResponses(page.Featured),
		Recipes:    dto.NewRecipeResponses(page.Recipes),
		Categories: page.Categories,
		Total:      page.Total,
	}))
}

// ListRecipes godoc
// @Summary Список рецептов
// @Description Поиск, категория и сложность фильтруются в хранилище, время приготовления - после выборки.
// @Tags public
// @Produce json
// @Param search query string false "Поиск по названию, описанию, категории и тегам"
// @Param category query string false "Категория (подстрока, all - без фильтра)"
// @Param difficulty query string false "Сложность" Enums(all, easy, medium, hard)
// @Param maxCookTime query string false "Максимальное общее время в минутах (all - без фильтра)"
// @Success 200 {object} response.Response{data=dto.RecipeListResponse}
// @Failure 400 {object} response.ErrorResponse "Неверный параметр"
// @Router /api/v1/recipes [get]
func (r *Routers) ListRecipes(c echo.Context) error {
	spec, err := parseSpec(c)
	if err != nil {
		return invalidSpec(c, err)
	}

	listing := r.CatalogService.ListRecipes(c.Request().Context(), spec)

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.RecipeListResponse{
		Recipes: dto.NewRecipeResponses(listing.Recipes),
		Total:   listing.Total,
	}))
}

// Categories godoc
// @Summary Варианты категорий
// @Tags public
// @Produce json
// @Success 200 {object} response.Response{data=dto.CategoriesResponse}
// @Router /api/v1/recipes/categories [get]
func (r *Routers) Categories(c echo.Context) error {
	categories := r.CatalogService.Categories(c.Request().Context())

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.CategoriesResponse{Categories: categories}))
}

// GetRecipe godoc
// @Summary Рецепт по ID
// @Description Сначала ищется в хранилище, затем среди демо-рецептов.
// @Tags public
// @Produce json
// @Param id path string true "ID рецепта"
// @Success 200 {object} response.Response{data=dto.RecipeResponse}
// @Failure 404 {object} response.ErrorResponse "Рецепт не найден"
// @Router /api/v1/recipes/{id} [get]
func (r *Routers) GetRecipe(c echo.Context) error {
	const op = "http.routers.GetRecipe"

	log := r.log.With(
		slog.String("op", op),
		slog.String("id", c.Param("id")),
	)

	recipe, err := r.CatalogService.GetRecipe(c.Request().Context(), c.Param("id"))
	if err != nil {
		return r.writeError(c, log, err)
	}

	recipe.Content = sanitize.Content(recipe.Content)

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.NewRecipeResponse(recipe)))
}

// ListPosts godoc
// @Summary Записи блога
// @Tags public
// @Produce json
// @Param search query string false "Поиск по названию, описанию, категории и тегам"
// @Param category query string false "Категория (подстрока)"
// @Success 200 {object} response.Response{data=dto.BlogPostListResponse}
// @Failure 400 {object} response.ErrorResponse "Неверный параметр"
// @Failure 503 {object} response.ErrorResponse "Хранилище недоступно"
// @Router /api/v1/posts [get]
func (r *Routers) ListPosts(c echo.Context) error {
	const op = "http.routers.ListPosts"

	log := r.log.With(slog.String("op", op))

	spec, err := filter.ParseSpec(c.QueryParam("search"), c.QueryParam("category"), "", "")
	if err != nil {
		return invalidSpec(c, err)
	}

	posts, err := r.CatalogService.ListPosts(c.Request().Context(), spec)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.BlogPostListResponse{
		Posts: posts,
		Total: len(posts),
	}))
}

// GetPost godoc
// @Summary Запись блога по ID
// @Tags public
// @Produce json
// @Param id path string true "ID записи"
// @Success 200 {object} response.Response{data=models.BlogPost}
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Router /api/v1/posts/{id} [get]
func (r *Routers) GetPost(c echo.Context) error {
	const op = "http.routers.GetPost"

	log := r.log.With(
		slog.String("op", op),
		slog.String("id", c.Param("id")),
	)

	post, err := r.CatalogService.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return r.writeError(c, log, err)
	}

	post.Content = sanitize.Content(post.Content)

	return c.JSON(http.StatusOK, response.SuccessResponse(post))
}

// Contact godoc
// @Summary Форма обратной связи
// @Tags public
// @Accept json
// @Produce json
// @Param request body dto.ContactRequest true "Сообщение"
// @Success 201 {object} response.Response{data=map[string]string}
// @Failure 400 {object} response.ErrorResponse "Неверный формат запроса"
// @Failure 429 {object} response.ErrorResponse "Слишком много запросов"
// @Router /api/v1/contact [post]
func (r *Routers) Contact(c echo.Context) error {
	const op = "http.routers.Contact"

	log := r.log.With(slog.String("op", op))

	var req dto.ContactRequest
	if errResp := bind(c, &req); errResp != nil {
		return c.JSON(http.StatusBadRequest, errResp)
	}

	id, err := r.ContactService.Submit(c.Request().Context(), req, c.RealIP())
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(map[string]string{"id": id}))
}
