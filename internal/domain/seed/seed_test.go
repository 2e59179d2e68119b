package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe_journal/internal/domain/models"
)

func TestRecipes_Deterministic(t *testing.T) {
	first := Recipes()
	second := Recipes()

	require.Len(t, first, 6)
	assert.Equal(t, first, second)

	ids := make([]string, 0, len(first))
	for _, r := range first {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, ids)
}

func TestRecipes_ReturnsCopy(t *testing.T) {
	got := Recipes()
	got[0].Title = "changed"
	got[0].Tags[0] = "changed"
	got[0].Ingredients = append(got[0].Ingredients[:0], "changed")

	fresh := Recipes()
	assert.Equal(t, "Classic Margherita Pizza", fresh[0].Title)
	assert.Equal(t, "pizza", fresh[0].Tags[0])
	assert.Equal(t, "2 cups all-purpose flour", fresh[0].Ingredients[0])
}

func TestRecipes_FullyPopulated(t *testing.T) {
	for _, r := range Recipes() {
		t.Run(r.Title, func(t *testing.T) {
			assert.NotEmpty(t, r.Description)
			assert.NotEmpty(t, r.Category)
			assert.NotEmpty(t, r.Tags)
			assert.NotEmpty(t, r.ImageURL)
			assert.NotEmpty(t, r.Ingredients)
			assert.NotEmpty(t, r.Instructions)
			assert.True(t, r.Published)
			assert.True(t, r.Difficulty.Valid())
			assert.Positive(t, r.Servings)
			assert.GreaterOrEqual(t, r.PrepTime, 0)
			assert.GreaterOrEqual(t, r.CookTime, 0)
		})
	}
}

func TestRecipes_Fields(t *testing.T) {
	tests := []struct {
		id         string
		title      string
		category   string
		difficulty models.Difficulty
		total      int
	}{
		{"1", "Classic Margherita Pizza", "Italian", models.DifficultyMedium, 30},
		{"2", "Creamy Mushroom Risotto", "Italian", models.DifficultyMedium, 45},
		{"3", "Chocolate Lava Cake", "Dessert", models.DifficultyEasy, 25},
		{"4", "Fresh Garden Salad", "Healthy", models.DifficultyEasy, 15},
		{"5", "Beef Bourguignon", "French", models.DifficultyHard, 180},
		{"6", "Lemon Herb Salmon", "Seafood", models.DifficultyEasy, 20},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			r, ok := Recipe(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.title, r.Title)
			assert.Equal(t, tt.category, r.Category)
			assert.Equal(t, tt.difficulty, r.Difficulty)
			assert.Equal(t, tt.total, r.TotalTime())
		})
	}
}

func TestRecipe_Unknown(t *testing.T) {
	_, ok := Recipe("7")
	assert.False(t, ok)
	assert.False(t, IsSeedID(""))
	assert.True(t, IsSeedID("3"))
}
