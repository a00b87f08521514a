package models

import (
	"time"
)

// GroceryCategory represents a store section on the shopping list
type GroceryCategory string

const (
	CategoryProduce        GroceryCategory = "Produce"
	CategoryDairy          GroceryCategory = "Dairy"
	CategoryMeatAndSeafood GroceryCategory = "Meat & Seafood"
	CategoryPantry         GroceryCategory = "Pantry"
	CategoryBakery         GroceryCategory = "Bakery"
	CategoryFrozen         GroceryCategory = "Frozen"
	CategoryBeverages      GroceryCategory = "Beverages"
	CategoryOther          GroceryCategory = "Other"
)

// CategoryOrder is the aisle walk order used when a list is grouped by
// category. Other always sorts last.
var CategoryOrder = []GroceryCategory{
	CategoryProduce,
	CategoryDairy,
	CategoryMeatAndSeafood,
	CategoryPantry,
	CategoryBakery,
	CategoryFrozen,
	CategoryBeverages,
	CategoryOther,
}

// Ingredient is one parsed free-text ingredient line
type Ingredient struct {
	Name     string          `json:"name"`
	Quantity float64         `json:"quantity"`
	Unit     string          `json:"unit"`
	Category GroceryCategory `json:"category"`
}

// GroceryItem is one merged entry on a shopping list. Ingredients from
// different recipes that share a merge key collapse into a single item
// with their quantities summed.
type GroceryItem struct {
	Ingredient
	Key           string   `json:"key"` // lowercase(name) + "-" + lowercase(unit)
	Checked       bool     `json:"checked"`
	AlreadyHave   bool     `json:"already_have"`
	SourceRecipes []string `json:"source_recipes"` // one entry per contributing recipe, insertion order
}

// RecipeIngredients is the aggregator's view of a recipe: the display
// name plus its raw ingredient lines.
type RecipeIngredients struct {
	RecipeName string   `json:"recipe_name"`
	Lines      []string `json:"lines"`
}

// GrocerySortMode selects the display ordering of a shopping list
type GrocerySortMode string

const (
	GrocerySortCategory GrocerySortMode = "category"
	GrocerySortName     GrocerySortMode = "name"
	GrocerySortRecipe   GrocerySortMode = "recipe"
)

// BuildGroceryListRequest is the request body for generating a shopping list
type BuildGroceryListRequest struct {
	RecipeIDs  []string        `json:"recipe_ids"`
	ExtraLines []string        `json:"extra_lines,omitempty"` // one-off items not tied to a recipe
	Sort       GrocerySortMode `json:"sort,omitempty"`
}

// GroceryListSession is an in-memory shopping list. Checked/already-have
// state lives only here for the duration of the session; it is never
// written back into recipe files.
type GroceryListSession struct {
	ID          string        `json:"id"`
	RecipeNames []string      `json:"recipe_names"`
	Items       []GroceryItem `json:"items"`
	CreatedAt   time.Time     `json:"created_at"`
}

// ToBuyCount returns the number of items still to pick up
func (s *GroceryListSession) ToBuyCount() int {
	n := 0
	for _, item := range s.Items {
		if !item.Checked && !item.AlreadyHave {
			n++
		}
	}
	return n
}

// GroceryListResponse is the API response for a generated shopping list
type GroceryListResponse struct {
	SessionID   string        `json:"session_id"`
	RecipeNames []string      `json:"recipe_names"`
	Items       []GroceryItem `json:"items"`
	ToBuy       int           `json:"to_buy"`
	Sort        GrocerySortMode `json:"sort"`
}
