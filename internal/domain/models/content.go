package models

import (
	"encoding/json"
	"slices"
	"time"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// ContentItem holds the fields shared by recipes and blog posts.
type ContentItem struct {
	ID          string          `json:"id,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Content     json.RawMessage `json:"content,omitempty"`
	Category    string          `json:"category"`
	Tags        []string        `json:"tags"`
	ImageURL    string          `json:"image_url"`
	VideoURL    string          `json:"video_url"`
	MediaURLs   []string        `json:"media_urls"`
	Published   bool            `json:"published"`
	Featured    bool            `json:"featured"`
	CreatedAt   *time.Time      `json:"created_at,omitempty"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

// Recipe extends ContentItem with the cooking fields.
type Recipe struct {
	ContentItem
	Ingredients  []string   `json:"ingredients"`
	Instructions []string   `json:"instructions"`
	PrepTime     int        `json:"prep_time"`
	CookTime     int        `json:"cook_time"`
	Servings     int        `json:"servings"`
	Difficulty   Difficulty `json:"difficulty"`
}

type BlogPost struct {
	ContentItem
}

// Listing is anything the filter engine and the category deriver can work on.
// Blog posts report no difficulty and zero total time.
type Listing interface {
	Base() ContentItem
	Level() Difficulty
	TotalTime() int
}

func (c ContentItem) Base() ContentItem { return c }

func (c ContentItem) Level() Difficulty { return "" }

func (c ContentItem) TotalTime() int { return 0 }

func (r Recipe) Level() Difficulty { return r.Difficulty }

// TotalTime is prep plus cook time in minutes. It is never stored.
func (r Recipe) TotalTime() int {
	return max(r.PrepTime, 0) + max(r.CookTime, 0)
}

// Clone returns a copy that shares no slices with c.
func (c ContentItem) Clone() ContentItem {
	out := c
	out.Content = slices.Clone(c.Content)
	out.Tags = slices.Clone(c.Tags)
	out.MediaURLs = slices.Clone(c.MediaURLs)
	return out
}

func (r Recipe) Clone() Recipe {
	out := r
	out.ContentItem = r.ContentItem.Clone()
	out.Ingredients = slices.Clone(r.Ingredients)
	out.Instructions = slices.Clone(r.Instructions)
	return out
}

func (p BlogPost) Clone() BlogPost {
	return BlogPost{ContentItem: p.ContentItem.Clone()}
}

// ContentRecord is the nullable row shape shared by both tables.
type ContentRecord struct {
	ID          string
	Title       string
	Description *string
	Content     []byte
	Category    *string
	Tags        []string
	ImageURL    *string
	VideoURL    *string
	MediaURLs   []string
	Published   *bool
	Featured    *bool
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
}

// RecipeRecord is a recipes row as it comes out of the store.
type RecipeRecord struct {
	ContentRecord
	Ingredients  []string
	Instructions []string
	PrepTime     *int
	CookTime     *int
	Servings     *int
	Difficulty   *string
}

// Item fills defaults for every missing optional field.
func (r ContentRecord) Item() ContentItem {
	item := ContentItem{
		ID:          r.ID,
		Title:       r.Title,
		Description: deref(r.Description),
		Category:    deref(r.Category),
		Tags:        nonNil(r.Tags),
		ImageURL:    deref(r.ImageURL),
		VideoURL:    deref(r.VideoURL),
		MediaURLs:   nonNil(r.MediaURLs),
		Published:   deref(r.Published),
		Featured:    deref(r.Featured),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if len(r.Content) > 0 && json.Valid(r.Content) {
		item.Content = json.RawMessage(r.Content)
	}
	return item
}

// Recipe converts the record; a NULL difficulty stays empty and servings
// default to one.
func (r RecipeRecord) Recipe() Recipe {
	servings := 1
	if r.Servings != nil && *r.Servings > 0 {
		servings = *r.Servings
	}
	return Recipe{
		ContentItem:  r.ContentRecord.Item(),
		Ingredients:  nonNil(r.Ingredients),
		Instructions: nonNil(r.Instructions),
		PrepTime:     max(deref(r.PrepTime), 0),
		CookTime:     max(deref(r.CookTime), 0),
		Servings:     servings,
		Difficulty:   Difficulty(deref(r.Difficulty)),
	}
}

func (r ContentRecord) BlogPost() BlogPost {
	return BlogPost{ContentItem: r.Item()}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
