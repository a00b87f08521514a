package services

import (
	"sort"
	"strings"

	"github.com/foxxcyber/recipe-box/internal/models"
)

// GroceryAggregator builds a deduplicated shopping list from the raw
// ingredient lines of one or more recipes.
type GroceryAggregator struct {
	parser *IngredientParser
}

// NewGroceryAggregator creates a new aggregator instance
func NewGroceryAggregator() *GroceryAggregator {
	return &GroceryAggregator{parser: NewIngredientParser()}
}

// MergeKey is the identity of a shopping-list line. Two parsed ingredients
// merge iff their lowercased name and unit match exactly: "cup" and "cups"
// stay separate lines because units are taken verbatim from the input.
func MergeKey(name, unit string) string {
	return strings.ToLower(name) + "-" + strings.ToLower(unit)
}

// Aggregate parses every ingredient line of every recipe in input order
// and merges lines that share a merge key, summing quantities and
// recording each contributing recipe's name. The item's category is fixed
// by the first line parsed under a key; later merges do not re-categorize.
//
// Output order is insertion order (first appearance of each key); callers
// apply one of the Sort functions for display. Aggregation is pure: the
// same recipes always produce the same items.
func (a *GroceryAggregator) Aggregate(recipes []models.RecipeIngredients) []models.GroceryItem {
	index := make(map[string]int)
	items := []models.GroceryItem{}

	for _, recipe := range recipes {
		for _, line := range recipe.Lines {
			ing := a.parser.Parse(line)
			key := MergeKey(ing.Name, ing.Unit)

			if i, ok := index[key]; ok {
				items[i].Quantity += ing.Quantity
				items[i].SourceRecipes = append(items[i].SourceRecipes, recipe.RecipeName)
				continue
			}

			index[key] = len(items)
			items = append(items, models.GroceryItem{
				Ingredient:    ing,
				Key:           key,
				SourceRecipes: []string{recipe.RecipeName},
			})
		}
	}

	return items
}

// categoryRank returns the aisle walk position of a category
func categoryRank(c models.GroceryCategory) int {
	for i, cat := range models.CategoryOrder {
		if cat == c {
			return i
		}
	}
	return len(models.CategoryOrder)
}

// SortItems orders a shopping list in place for display. All orderings
// are stable; ties keep aggregation (insertion) order.
func SortItems(items []models.GroceryItem, mode models.GrocerySortMode) {
	switch mode {
	case models.GrocerySortName:
		SortByName(items)
	case models.GrocerySortRecipe:
		SortByRecipe(items)
	default:
		SortByCategory(items)
	}
}

// SortByCategory groups items by store section, alphabetical within each
func SortByCategory(items []models.GroceryItem) {
	sort.SliceStable(items, func(i, j int) bool {
		ri, rj := categoryRank(items[i].Category), categoryRank(items[j].Category)
		if ri != rj {
			return ri < rj
		}
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
}

// SortByName orders items case-insensitively by name
func SortByName(items []models.GroceryItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
}

// SortByRecipe groups items by the first recipe that contributed them,
// alphabetical within each group
func SortByRecipe(items []models.GroceryItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := firstRecipe(items[i]), firstRecipe(items[j])
		if a != b {
			return strings.ToLower(a) < strings.ToLower(b)
		}
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
}

func firstRecipe(item models.GroceryItem) string {
	if len(item.SourceRecipes) == 0 {
		return ""
	}
	return item.SourceRecipes[0]
}
