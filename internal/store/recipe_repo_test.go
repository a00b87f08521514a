package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxxcyber/recipe-box/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestCreateAndGetRecipe(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateRecipe(&models.CreateRecipeRequest{
		Name:        "Pancakes",
		Ingredients: []string{"2 cups flour", "2 eggs", "1.5 cups milk"},
		Tags:        []string{"breakfast"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := s.GetRecipe(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", got.Name)
	assert.Len(t, got.Ingredients, 3)

	// One JSON file per recipe, named by ID
	_, err = os.Stat(filepath.Join(s.Dir(), created.ID+".json"))
	assert.NoError(t, err)
}

func TestCreateRecipeRequiresName(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateRecipe(&models.CreateRecipeRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestGetRecipeNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetRecipe("nope")
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestUpdateRecipePartial(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateRecipe(&models.CreateRecipeRequest{
		Name:        "Soup",
		Description: "Plain soup",
		Ingredients: []string{"1 onion"},
	})
	require.NoError(t, err)

	newName := "Better Soup"
	updated, err := s.UpdateRecipe(created.ID, &models.UpdateRecipeRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Better Soup", updated.Name)
	assert.Equal(t, "Plain soup", updated.Description, "unset fields stay unchanged")
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))
}

func TestDeleteRecipeRemovesFile(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateRecipe(&models.CreateRecipeRequest{Name: "Toast"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteRecipe(created.ID))

	_, err = s.GetRecipe(created.ID)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
	_, err = os.Stat(filepath.Join(s.Dir(), created.ID+".json"))
	assert.True(t, os.IsNotExist(err))

	assert.ErrorIs(t, s.DeleteRecipe(created.ID), ErrRecipeNotFound)
}

func TestSetRating(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateRecipe(&models.CreateRecipeRequest{Name: "Curry"})
	require.NoError(t, err)

	rated, err := s.SetRating(created.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, rated.Rating)

	_, err = s.SetRating(created.ID, 6)
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = s.SetRating(created.ID, -1)
	assert.ErrorIs(t, err, ErrInvalidRating)

	cleared, err := s.SetRating(created.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, cleared.Rating)
}

func TestListRecipesFilterAndPagination(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"Waffles", "apple pie", "Banana Bread"} {
		_, err := s.CreateRecipe(&models.CreateRecipeRequest{
			Name: name,
			Tags: []string{"dessert"},
		})
		require.NoError(t, err)
	}
	_, err := s.CreateRecipe(&models.CreateRecipeRequest{Name: "Chili", Tags: []string{"dinner"}})
	require.NoError(t, err)

	all, total := s.ListRecipes(nil)
	assert.Equal(t, 4, total)
	require.Len(t, all, 4)
	assert.Equal(t, "apple pie", all[0].Name, "sorted case-insensitively by name")

	desserts, total := s.ListRecipes(&models.RecipeListParams{Tag: "Dessert"})
	assert.Equal(t, 3, total)
	assert.Len(t, desserts, 3)

	page, total := s.ListRecipes(&models.RecipeListParams{Limit: 2, Offset: 2})
	assert.Equal(t, 4, total)
	require.Len(t, page, 2)
	assert.Equal(t, "Chili", page[0].Name)

	search, _ := s.ListRecipes(&models.RecipeListParams{Search: "banana"})
	require.Len(t, search, 1)
	assert.Equal(t, "Banana Bread", search[0].Name)
}

func TestListTags(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateRecipe(&models.CreateRecipeRequest{Name: "A", Tags: []string{"Dinner", "quick"}})
	require.NoError(t, err)
	_, err = s.CreateRecipe(&models.CreateRecipeRequest{Name: "B", Tags: []string{"dinner"}})
	require.NoError(t, err)

	tags := s.ListTags()
	require.Len(t, tags, 2, "tags dedupe case-insensitively")
}

func TestReopenLoadsPersistedRecipes(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	created, err := s.CreateRecipe(&models.CreateRecipeRequest{
		Name:        "Pizza",
		Ingredients: []string{"1 ball dough"},
	})
	require.NoError(t, err)

	reopened, err := Open(dir)
	require.NoError(t, err)
	got, err := reopened.GetRecipe(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pizza", got.Name)
}

func TestReloadPicksUpExternalFile(t *testing.T) {
	s := newTestStore(t)

	external := models.Recipe{ID: "synced-1", Name: "Synced Salad", Ingredients: []string{"1 head lettuce"}}
	data, err := json.Marshal(external)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "synced-1.json"), data, 0o644))

	require.NoError(t, s.Reload())

	got, err := s.GetRecipe("synced-1")
	require.NoError(t, err)
	assert.Equal(t, "Synced Salad", got.Name)
}

func TestReloadSkipsCorruptFiles(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateRecipe(&models.CreateRecipeRequest{Name: "Good"})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "bad.json"), []byte("{not json"), 0o644))

	require.NoError(t, s.Reload())
	assert.Equal(t, 1, s.Count())
}

// Externally created files without an embedded ID take it from the
// file name so they stay addressable.
func TestExternalFileWithoutID(t *testing.T) {
	s := newTestStore(t)

	data := []byte(`{"name":"Hand-written","ingredients":["Salt"]}`)
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "hand-written.json"), data, 0o644))
	require.NoError(t, s.Reload())

	got, err := s.GetRecipe("hand-written")
	require.NoError(t, err)
	assert.Equal(t, "Hand-written", got.Name)
}
