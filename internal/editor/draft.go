package editor

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"recipe_journal/internal/domain/models"
)

type Mode string

const (
	ModeRecipe Mode = "recipe"
	ModeBlog   Mode = "blog"
)

const (
	CollectionRecipes   = "recipes"
	CollectionBlogPosts = "blog_posts"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeRecipe, ModeBlog:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Collection is the store collection a mode reads and writes.
func (m Mode) Collection() string {
	if m == ModeBlog {
		return CollectionBlogPosts
	}
	return CollectionRecipes
}

// Payload is the column/value map sent to the store in one call.
type Payload = map[string]any

// Draft is the in-memory working copy. Each variant decides on its own which
// fields go into the payload.
type Draft interface {
	Mode() Mode
	Item() models.ContentItem
	Payload() Payload

	base() *models.ContentItem
	set(field string, value any) error
	list(field string) (*[]string, error)
	clone() Draft
}

type RecipeDraft struct {
	models.Recipe
}

type BlogDraft struct {
	models.BlogPost
}

// NewRecipeDraft returns a blank recipe with editor defaults.
func NewRecipeDraft() *RecipeDraft {
	return &RecipeDraft{Recipe: models.Recipe{
		ContentItem:  blankItem(),
		Ingredients:  []string{""},
		Instructions: []string{""},
		Servings:     1,
		Difficulty:   models.DifficultyEasy,
	}}
}

func NewBlogDraft() *BlogDraft {
	return &BlogDraft{BlogPost: models.BlogPost{ContentItem: blankItem()}}
}

func blankItem() models.ContentItem {
	return models.ContentItem{
		Tags:      []string{},
		MediaURLs: []string{},
	}
}

// RecipeDraftFrom seeds a draft from a stored recipe.
func RecipeDraftFrom(r models.Recipe) *RecipeDraft {
	return &RecipeDraft{Recipe: r.Clone()}
}

func BlogDraftFrom(p models.BlogPost) *BlogDraft {
	return &BlogDraft{BlogPost: p.Clone()}
}

func (d *RecipeDraft) Mode() Mode { return ModeRecipe }

func (d *BlogDraft) Mode() Mode { return ModeBlog }

func (d *RecipeDraft) Item() models.ContentItem { return d.ContentItem.Clone() }

func (d *BlogDraft) Item() models.ContentItem { return d.ContentItem.Clone() }

func (d *RecipeDraft) base() *models.ContentItem { return &d.ContentItem }

func (d *BlogDraft) base() *models.ContentItem { return &d.ContentItem }

func (d *RecipeDraft) clone() Draft { return &RecipeDraft{Recipe: d.Recipe.Clone()} }

func (d *BlogDraft) clone() Draft { return &BlogDraft{BlogPost: d.BlogPost.Clone()} }

func (d *RecipeDraft) Payload() Payload {
	p := basePayload(d.ContentItem)
	p["ingredients"] = stripBlank(d.Ingredients)
	p["instructions"] = stripBlank(d.Instructions)
	p["prep_time"] = d.PrepTime
	p["cook_time"] = d.CookTime
	p["servings"] = d.Servings
	p["difficulty"] = nil
	if d.Difficulty != "" {
		p["difficulty"] = string(d.Difficulty)
	}
	return p
}

func (d *BlogDraft) Payload() Payload {
	return basePayload(d.ContentItem)
}

func basePayload(item models.ContentItem) Payload {
	var content json.RawMessage
	if len(item.Content) > 0 {
		content = slices.Clone(item.Content)
	}

	return Payload{
		"title":       item.Title,
		"description": item.Description,
		"content":     content,
		"category":    item.Category,
		"tags":        nonNil(slices.Clone(item.Tags)),
		"image_url":   item.ImageURL,
		"video_url":   item.VideoURL,
		"media_urls":  nonNil(slices.Clone(item.MediaURLs)),
		"published":   item.Published,
		"featured":    item.Featured,
	}
}

// stripBlank drops whitespace-only entries and keeps the order of the rest.
func stripBlank(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e) != "" {
			out = append(out, e)
		}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

var recipeFields = map[string]struct{}{
	"ingredients":  {},
	"instructions": {},
	"prep_time":    {},
	"cook_time":    {},
	"servings":     {},
	"difficulty":   {},
}

func isRecipeField(field string) bool {
	_, ok := recipeFields[field]
	return ok
}

func (d *RecipeDraft) set(field string, value any) error {
	var err error
	switch field {
	case "ingredients":
		d.Ingredients, err = asStrings(field, value)
	case "instructions":
		d.Instructions, err = asStrings(field, value)
	case "prep_time":
		d.PrepTime, err = asInt(field, value)
	case "cook_time":
		d.CookTime, err = asInt(field, value)
	case "servings":
		d.Servings, err = asInt(field, value)
	case "difficulty":
		var s string
		s, err = asString(field, value)
		d.Difficulty = models.Difficulty(s)
	default:
		return setBase(&d.ContentItem, field, value)
	}
	return err
}

func (d *BlogDraft) set(field string, value any) error {
	if isRecipeField(field) {
		return fmt.Errorf("%w: %s", ErrFieldNotInMode, field)
	}
	return setBase(&d.ContentItem, field, value)
}

func (d *RecipeDraft) list(field string) (*[]string, error) {
	switch field {
	case "ingredients":
		return &d.Ingredients, nil
	case "instructions":
		return &d.Instructions, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
}

func (d *BlogDraft) list(field string) (*[]string, error) {
	if field == "ingredients" || field == "instructions" {
		return nil, fmt.Errorf("%w: %s", ErrFieldNotInMode, field)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
}

func setBase(item *models.ContentItem, field string, value any) error {
	var err error
	switch field {
	case "title":
		item.Title, err = asString(field, value)
	case "description":
		item.Description, err = asString(field, value)
	case "category":
		item.Category, err = asString(field, value)
	case "image_url":
		item.ImageURL, err = asString(field, value)
	case "video_url":
		item.VideoURL, err = asString(field, value)
	case "published":
		item.Published, err = asBool(field, value)
	case "featured":
		item.Featured, err = asBool(field, value)
	case "content":
		item.Content, err = asContent(value)
	case "id", "created_at", "updated_at", "tags", "media_urls":
		return fmt.Errorf("%w: %s", ErrFieldNotSettable, field)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return err
}

func asString(field string, value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case models.Difficulty:
		return string(v), nil
	}
	return "", invalidValue(field, "string", value)
}

func asBool(field string, value any) (bool, error) {
	if v, ok := value.(bool); ok {
		return v, nil
	}
	return false, invalidValue(field, "bool", value)
}

func asInt(field string, value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		if v == float64(int(v)) {
			return int(v), nil
		}
	}
	return 0, invalidValue(field, "integer", value)
}

func asStrings(field string, value any) ([]string, error) {
	if v, ok := value.([]string); ok {
		return slices.Clone(v), nil
	}
	return nil, invalidValue(field, "list of strings", value)
}

func asContent(value any) (json.RawMessage, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		if len(v) > 0 && !json.Valid(v) {
			return nil, invalidValue("content", "JSON document", value)
		}
		return slices.Clone(v), nil
	case []byte:
		return asContent(json.RawMessage(v))
	case string:
		return asContent(json.RawMessage(v))
	}
	return nil, invalidValue("content", "JSON document", value)
}

func invalidValue(field, want string, got any) error {
	return fmt.Errorf("%w: %s expects %s, got %T", ErrInvalidValue, field, want, got)
}
