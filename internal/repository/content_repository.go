package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lib/pq"

	"recipe_journal/internal/domain/filter"
	"recipe_journal/internal/domain/models"
	"recipe_journal/internal/storage"
)

const (
	recipesTable   = "recipes"
	blogPostsTable = "blog_posts"
)

var baseColumns = []string{
	"id::text",
	"title",
	"description",
	"content",
	"category",
	"tags",
	"image_url",
	"video_url",
	"media_urls",
	"published",
	"featured",
	"created_at",
	"updated_at",
}

var recipeColumns = append(slices.Clone(baseColumns),
	"ingredients",
	"instructions",
	"prep_time",
	"cook_time",
	"servings",
	"difficulty",
)

// writable перечисляет колонки, которые можно писать в каждую коллекцию
var writable = map[string]map[string]bool{
	recipesTable: {
		"title": true, "description": true, "content": true, "category": true,
		"tags": true, "image_url": true, "video_url": true, "media_urls": true,
		"published": true, "featured": true, "updated_at": true,
		"ingredients": true, "instructions": true, "prep_time": true,
		"cook_time": true, "servings": true, "difficulty": true,
	},
	blogPostsTable: {
		"title": true, "description": true, "content": true, "category": true,
		"tags": true, "image_url": true, "video_url": true, "media_urls": true,
		"published": true, "featured": true, "updated_at": true,
	},
}

// ListQuery описывает выборку для списков. Из Filter в SQL уходят только
// предикаты StoreSide, время приготовления считается в памяти.
type ListQuery struct {
	PublishedOnly bool
	Filter        filter.Spec
}

type ContentRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewContentRepository(db *pgxpool.Pool) *ContentRepo {
	return &ContentRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ListRecipes возвращает рецепты, новые сверху
func (r *ContentRepo) ListRecipes(ctx context.Context, q ListQuery) ([]models.Recipe, error) {
	const op = "repository.ContentRepo.ListRecipes"

	query, args, err := r.listQuery(recipesTable, q).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	recipes := make([]models.Recipe, 0)
	for rows.Next() {
		var rec models.RecipeRecord
		if err := rows.Scan(recipeTargets(&rec)...); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		recipes = append(recipes, rec.Recipe())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return recipes, nil
}

// ListBlogPosts возвращает посты, новые сверху
func (r *ContentRepo) ListBlogPosts(ctx context.Context, q ListQuery) ([]models.BlogPost, error) {
	const op = "repository.ContentRepo.ListBlogPosts"

	query, args, err := r.listQuery(blogPostsTable, q).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	posts := make([]models.BlogPost, 0)
	for rows.Next() {
		var rec models.ContentRecord
		if err := rows.Scan(contentTargets(&rec)...); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		posts = append(posts, rec.BlogPost())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return posts, nil
}

// HasPublished проверяет, есть ли в коллекции хоть одна опубликованная запись
func (r *ContentRepo) HasPublished(ctx context.Context, collection string) (bool, error) {
	const op = "repository.ContentRepo.HasPublished"

	if _, ok := writable[collection]; !ok {
		return false, fmt.Errorf("%s: %w: %s", op, storage.ErrUnknownCollection, collection)
	}

	query, args, err := r.sb.Select("1").
		From(collection).
		Where(sq.Eq{"published": true}).
		Limit(1).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

func (r *ContentRepo) GetRecipe(ctx context.Context, id string) (models.Recipe, error) {
	const op = "repository.ContentRepo.GetRecipe"

	if _, err := uuid.Parse(id); err != nil {
		return models.Recipe{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	query, args, err := r.sb.Select(recipeColumns...).
		From(recipesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Recipe{}, fmt.Errorf("%s: %w", op, err)
	}

	var rec models.RecipeRecord
	if err := r.db.QueryRow(ctx, query, args...).Scan(recipeTargets(&rec)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Recipe{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.Recipe{}, fmt.Errorf("%s: %w", op, err)
	}

	return rec.Recipe(), nil
}

func (r *ContentRepo) GetBlogPost(ctx context.Context, id string) (models.BlogPost, error) {
	const op = "repository.ContentRepo.GetBlogPost"

	if _, err := uuid.Parse(id); err != nil {
		return models.BlogPost{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	query, args, err := r.sb.Select(baseColumns...).
		From(blogPostsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.BlogPost{}, fmt.Errorf("%s: %w", op, err)
	}

	var rec models.ContentRecord
	if err := r.db.QueryRow(ctx, query, args...).Scan(contentTargets(&rec)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.BlogPost{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.BlogPost{}, fmt.Errorf("%s: %w", op, err)
	}

	return rec.BlogPost(), nil
}

// Insert создает запись и возвращает сгенерированный id
func (r *ContentRepo) Insert(ctx context.Context, collection string, payload map[string]any) (string, error) {
	const op = "repository.ContentRepo.Insert"

	query, args, err := r.insertQuery(collection, payload)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var id string
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// Update перезаписывает переданные поля записи по id
func (r *ContentRepo) Update(ctx context.Context, collection, id string, payload map[string]any) error {
	const op = "repository.ContentRepo.Update"

	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	query, args, err := r.updateQuery(collection, id, payload)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (r *ContentRepo) Delete(ctx context.Context, collection, id string) error {
	const op = "repository.ContentRepo.Delete"

	if _, ok := writable[collection]; !ok {
		return fmt.Errorf("%s: %w: %s", op, storage.ErrUnknownCollection, collection)
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	query, args, err := r.sb.Delete(collection).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (r *ContentRepo) listQuery(table string, q ListQuery) sq.SelectBuilder {
	columns := baseColumns
	if table == recipesTable {
		columns = recipeColumns
	}

	b := r.sb.Select(columns...).From(table)

	if q.PublishedOnly {
		b = b.Where(sq.Eq{"published": true})
	}

	spec := q.Filter.StoreSide()

	if spec.Search != "" {
		pattern := containsPattern(spec.Search)
		b = b.Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"description": pattern},
			sq.ILike{"category": pattern},
			sq.Expr("EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE ?)", pattern),
		})
	}

	if spec.Category != "" {
		b = b.Where(sq.ILike{"category": containsPattern(spec.Category)})
	}

	if spec.Difficulty != "" {
		if table == recipesTable {
			b = b.Where(sq.Eq{"difficulty": spec.Difficulty})
		} else {
			// у постов нет сложности, фильтр по ней ничего не пропускает
			b = b.Where("FALSE")
		}
	}

	return b.OrderBy("created_at DESC")
}

func (r *ContentRepo) insertQuery(collection string, payload map[string]any) (string, []any, error) {
	columns, values, err := columnValues(collection, payload)
	if err != nil {
		return "", nil, err
	}

	return r.sb.Insert(collection).
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING id::text").
		ToSql()
}

func (r *ContentRepo) updateQuery(collection, id string, payload map[string]any) (string, []any, error) {
	columns, values, err := columnValues(collection, payload)
	if err != nil {
		return "", nil, err
	}

	b := r.sb.Update(collection)
	for i, column := range columns {
		b = b.Set(column, values[i])
	}

	return b.Where(sq.Eq{"id": id}).ToSql()
}

// columnValues проверяет поля по белому списку и приводит значения к типам,
// понятным драйверу. Порядок колонок стабильный.
func columnValues(collection string, payload map[string]any) ([]string, []any, error) {
	allowed, ok := writable[collection]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", storage.ErrUnknownCollection, collection)
	}
	if len(payload) == 0 {
		return nil, nil, storage.ErrNothingToUpdate
	}

	columns := make([]string, 0, len(payload))
	for column := range payload {
		if !allowed[column] {
			return nil, nil, fmt.Errorf("field '%s' is not allowed for %s", column, collection)
		}
		columns = append(columns, column)
	}
	slices.Sort(columns)

	values := make([]any, 0, len(columns))
	for _, column := range columns {
		values = append(values, dbValue(payload[column]))
	}

	return columns, values, nil
}

func dbValue(v any) any {
	switch val := v.(type) {
	case []string:
		if val == nil {
			val = []string{}
		}
		return pq.Array(val)
	case json.RawMessage:
		if len(val) == 0 {
			return nil
		}
		return []byte(val)
	}
	return v
}

// containsPattern экранирует спецсимволы LIKE и оборачивает строку в %...%
func containsPattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

func contentTargets(rec *models.ContentRecord) []any {
	return []any{
		&rec.ID,
		&rec.Title,
		&rec.Description,
		&rec.Content,
		&rec.Category,
		&rec.Tags,
		&rec.ImageURL,
		&rec.VideoURL,
		&rec.MediaURLs,
		&rec.Published,
		&rec.Featured,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	}
}

func recipeTargets(rec *models.RecipeRecord) []any {
	return append(contentTargets(&rec.ContentRecord),
		&rec.Ingredients,
		&rec.Instructions,
		&rec.PrepTime,
		&rec.CookTime,
		&rec.Servings,
		&rec.Difficulty,
	)
}
