package services

import (
	"strings"

	"github.com/foxxcyber/recipe-box/internal/models"
)

// categoryKeywords maps one store section to the keywords that select it
type categoryKeywords struct {
	category models.GroceryCategory
	keywords []string
}

// categoryTable is evaluated top to bottom; the first list containing a
// keyword that appears in the name wins. Order matters: "pepper" is in
// both the Produce and Pantry lists, and Produce is checked first, so
// "black pepper" lands in Produce.
var categoryTable = []categoryKeywords{
	{models.CategoryProduce, []string{
		"lettuce", "tomato", "onion", "garlic", "carrot", "celery",
		"potato", "apple", "banana", "orange", "lemon", "lime", "pepper",
		"cucumber", "spinach", "kale", "broccoli", "cauliflower",
	}},
	{models.CategoryDairy, []string{
		"milk", "cream", "cheese", "yogurt", "butter", "sour cream",
		"cottage cheese", "mozzarella", "cheddar", "parmesan",
	}},
	{models.CategoryMeatAndSeafood, []string{
		"chicken", "beef", "pork", "fish", "salmon", "shrimp", "bacon",
		"sausage", "ground", "steak", "turkey", "ham",
	}},
	{models.CategoryPantry, []string{
		"flour", "sugar", "salt", "pepper", "oil", "vinegar", "rice",
		"pasta", "beans", "sauce", "spice", "seasoning", "baking powder",
		"baking soda",
	}},
	{models.CategoryBakery, []string{
		"bread", "rolls", "bagel", "muffin", "croissant", "tortilla",
		"pita",
	}},
}

// Categorize assigns a store section to an ingredient name using
// case-insensitive substring matching against the keyword table.
// Names that match nothing fall back to Other.
func Categorize(name string) models.GroceryCategory {
	lower := strings.ToLower(name)
	for _, entry := range categoryTable {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.category
			}
		}
	}
	return models.CategoryOther
}
