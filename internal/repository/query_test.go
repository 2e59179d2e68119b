package repository

import (
	"encoding/json"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe_journal/internal/domain/filter"
	"recipe_journal/internal/storage"
)

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"pizza", "%pizza%"},
		{"100%", `%100\%%`},
		{"a_b", `%a\_b%`},
		{`c:\x`, `%c:\\x%`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, containsPattern(tt.in))
		})
	}
}

func TestListQuery(t *testing.T) {
	repo := NewContentRepository(nil)
	maxTime := 30

	t.Run("published only, no filter", func(t *testing.T) {
		query, args, err := repo.listQuery(recipesTable, ListQuery{PublishedOnly: true}).ToSql()
		require.NoError(t, err)

		assert.Contains(t, query, "FROM recipes WHERE published = $1 ORDER BY created_at DESC")
		assert.Contains(t, query, "difficulty")
		assert.Equal(t, []any{true}, args)
	})

	t.Run("every store predicate", func(t *testing.T) {
		q := ListQuery{
			PublishedOnly: true,
			Filter:        filter.Spec{Search: "Pizza", Category: "ital", Difficulty: "medium", MaxTotalTime: &maxTime},
		}
		query, args, err := repo.listQuery(recipesTable, q).ToSql()
		require.NoError(t, err)

		assert.Contains(t, query, "title ILIKE $2")
		assert.Contains(t, query, "description ILIKE $3")
		assert.Contains(t, query, "category ILIKE $4")
		assert.Contains(t, query, "unnest(tags)")
		assert.Contains(t, query, "category ILIKE $6")
		assert.Contains(t, query, "difficulty = $7")
		assert.NotContains(t, query, "prep_time +")
		assert.Equal(t, []any{true, "%Pizza%", "%Pizza%", "%Pizza%", "%Pizza%", "%ital%", "medium"}, args)
	})

	t.Run("blog posts never match a difficulty", func(t *testing.T) {
		query, _, err := repo.listQuery(blogPostsTable, ListQuery{Filter: filter.Spec{Difficulty: "easy"}}).ToSql()
		require.NoError(t, err)

		assert.Contains(t, query, "FROM blog_posts WHERE FALSE")
		assert.NotContains(t, query, "ingredients")
	})
}

func TestInsertQuery(t *testing.T) {
	repo := NewContentRepository(nil)

	query, args, err := repo.insertQuery(recipesTable, map[string]any{
		"title":       "Bread",
		"tags":        []string{"baking"},
		"content":     json.RawMessage(nil),
		"difficulty":  "easy",
		"ingredients": []string{"Flour"},
	})
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO recipes (content,difficulty,ingredients,tags,title) VALUES ($1,$2,$3,$4,$5) RETURNING id::text",
		query,
	)
	require.Len(t, args, 5)
	assert.Nil(t, args[0])
	assert.Equal(t, "easy", args[1])
	assert.Equal(t, pq.Array([]string{"Flour"}), args[2])
	assert.Equal(t, pq.Array([]string{"baking"}), args[3])
}

func TestInsertQuery_Rejects(t *testing.T) {
	repo := NewContentRepository(nil)

	_, _, err := repo.insertQuery(blogPostsTable, map[string]any{"title": "x", "servings": 2})
	assert.ErrorContains(t, err, "servings")

	_, _, err = repo.insertQuery("users", map[string]any{"title": "x"})
	assert.ErrorIs(t, err, storage.ErrUnknownCollection)

	_, _, err = repo.insertQuery(recipesTable, map[string]any{})
	assert.ErrorIs(t, err, storage.ErrNothingToUpdate)
}

func TestUpdateQuery(t *testing.T) {
	repo := NewContentRepository(nil)

	query, args, err := repo.updateQuery(blogPostsTable, "5f0c6a8e-7f51-4a8f-9d0a-4c4f0f7a1b2c", map[string]any{
		"title":     "New",
		"published": true,
	})
	require.NoError(t, err)

	assert.Equal(t, "UPDATE blog_posts SET published = $1, title = $2 WHERE id = $3", query)
	assert.Equal(t, []any{true, "New", "5f0c6a8e-7f51-4a8f-9d0a-4c4f0f7a1b2c"}, args)
}
