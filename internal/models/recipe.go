package models

import (
	"time"
)

// Recipe is a single recipe document. Each recipe is persisted as one JSON
// file in the configured recipes folder so that an external sync tool
// (iCloud Drive, Syncthing, Dropbox) can move it between devices.
type Recipe struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Ingredients  []string  `json:"ingredients"`
	Instructions []string  `json:"instructions,omitempty"`
	Servings     int       `json:"servings,omitempty"`
	PrepMinutes  int       `json:"prep_minutes,omitempty"`
	CookMinutes  int       `json:"cook_minutes,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	Rating       int       `json:"rating"` // 0 = unrated, 1-5 stars
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RecipeSummary is a compact representation for list views
type RecipeSummary struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Tags            []string  `json:"tags,omitempty"`
	Rating          int       `json:"rating"`
	IngredientCount int       `json:"ingredient_count"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Summary converts a recipe into its list-view form
func (r *Recipe) Summary() RecipeSummary {
	return RecipeSummary{
		ID:              r.ID,
		Name:            r.Name,
		Tags:            r.Tags,
		Rating:          r.Rating,
		IngredientCount: len(r.Ingredients),
		UpdatedAt:       r.UpdatedAt,
	}
}

// CreateRecipeRequest is the request body for creating a recipe
type CreateRecipeRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions,omitempty"`
	Servings     int      `json:"servings,omitempty"`
	PrepMinutes  int      `json:"prep_minutes,omitempty"`
	CookMinutes  int      `json:"cook_minutes,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Notes        string   `json:"notes,omitempty"`
}

// UpdateRecipeRequest is the request body for updating a recipe.
// Nil fields are left unchanged.
type UpdateRecipeRequest struct {
	Name         *string   `json:"name,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Ingredients  *[]string `json:"ingredients,omitempty"`
	Instructions *[]string `json:"instructions,omitempty"`
	Servings     *int      `json:"servings,omitempty"`
	PrepMinutes  *int      `json:"prep_minutes,omitempty"`
	CookMinutes  *int      `json:"cook_minutes,omitempty"`
	Tags         *[]string `json:"tags,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
}

// RateRecipeRequest sets a recipe's star rating
type RateRecipeRequest struct {
	Rating int `json:"rating"`
}

// RecipeListParams are the filters for listing recipes
type RecipeListParams struct {
	Search string
	Tag    string
	Limit  int
	Offset int
}
