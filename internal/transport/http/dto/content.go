package dto

import (
	"encoding/json"

	"recipe_journal/internal/domain/models"
)

// ContentRequest тело запроса на создание или изменение записи.
// Отсутствующие поля не трогают черновик.
type ContentRequest struct {
	Title       *string         `json:"title,omitempty" validate:"omitempty,max=300"`
	Description *string         `json:"description,omitempty"`
	Content     json.RawMessage `json:"content,omitempty"`
	Category    *string         `json:"category,omitempty" validate:"omitempty,max=100"`
	Tags        []string        `json:"tags,omitempty" validate:"omitempty,dive,max=50"`
	ImageURL    *string         `json:"image_url,omitempty" validate:"omitempty,url"`
	VideoURL    *string         `json:"video_url,omitempty" validate:"omitempty,url"`
	Published   *bool           `json:"published,omitempty"`
	Featured    *bool           `json:"featured,omitempty"`

	// Поля рецепта
	Ingredients  []string `json:"ingredients,omitempty"`
	Instructions []string `json:"instructions,omitempty"`
	PrepTime     *int     `json:"prep_time,omitempty" validate:"omitempty,min=0"`
	CookTime     *int     `json:"cook_time,omitempty" validate:"omitempty,min=0"`
	Servings     *int     `json:"servings,omitempty" validate:"omitempty,min=1"`
	Difficulty   *string  `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
}

// Fields поля для Editor.SetField. Теги меняются отдельно через AddTag/RemoveTag.
func (r ContentRequest) Fields() map[string]any {
	fields := make(map[string]any)

	setString := func(name string, v *string) {
		if v != nil {
			fields[name] = *v
		}
	}
	setString("title", r.Title)
	setString("description", r.Description)
	setString("category", r.Category)
	setString("image_url", r.ImageURL)
	setString("video_url", r.VideoURL)
	setString("difficulty", r.Difficulty)

	if r.Content != nil {
		fields["content"] = r.Content
	}
	if r.Published != nil {
		fields["published"] = *r.Published
	}
	if r.Featured != nil {
		fields["featured"] = *r.Featured
	}
	if r.Ingredients != nil {
		fields["ingredients"] = r.Ingredients
	}
	if r.Instructions != nil {
		fields["instructions"] = r.Instructions
	}
	if r.PrepTime != nil {
		fields["prep_time"] = *r.PrepTime
	}
	if r.CookTime != nil {
		fields["cook_time"] = *r.CookTime
	}
	if r.Servings != nil {
		fields["servings"] = *r.Servings
	}

	return fields
}

type PublishRequest struct {
	Published *bool `json:"published" validate:"required"`
}

// RecipeResponse рецепт с вычисленным общим временем
type RecipeResponse struct {
	models.Recipe
	TotalTime int `json:"total_time"`
}

func NewRecipeResponse(r models.Recipe) RecipeResponse {
	return RecipeResponse{Recipe: r, TotalTime: r.TotalTime()}
}

func NewRecipeResponses(recipes []models.Recipe) []RecipeResponse {
	out := make([]RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, NewRecipeResponse(r))
	}
	return out
}

type HomeResponse struct {
	Featured   []RecipeResponse `json:"featured"`
	Recipes    []RecipeResponse `json:"recipes"`
	Categories []string         `json:"categories"`
	Total      int              `json:"total"`
}

type RecipeListResponse struct {
	Recipes []RecipeResponse `json:"recipes"`
	Total   int              `json:"total"`
}

type BlogPostListResponse struct {
	Posts []models.BlogPost `json:"posts"`
	Total int               `json:"total"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}
