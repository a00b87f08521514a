package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foxxcyber/recipe-box/internal/models"
)

func TestParseIngredient(t *testing.T) {
	p := NewIngredientParser()

	tests := []struct {
		name     string
		line     string
		quantity float64
		unit     string
		wantName string
		category models.GroceryCategory
	}{
		{
			name:     "quantity unit name",
			line:     "2 cups flour",
			quantity: 2,
			unit:     "cups",
			wantName: "flour",
			category: models.CategoryPantry,
		},
		{
			name:     "quantity and name only",
			line:     "2 eggs",
			quantity: 2,
			unit:     "",
			wantName: "eggs",
			category: models.CategoryOther,
		},
		{
			name:     "bare name",
			line:     "Salt",
			quantity: 1,
			unit:     "",
			wantName: "Salt",
			category: models.CategoryPantry,
		},
		{
			name:     "decimal quantity",
			line:     "1.5 cups milk",
			quantity: 1.5,
			unit:     "cups",
			wantName: "milk",
			category: models.CategoryDairy,
		},
		{
			name:     "multi-word name keeps remainder intact",
			line:     "3 cloves garlic, minced",
			quantity: 3,
			unit:     "cloves",
			wantName: "garlic, minced",
			category: models.CategoryProduce,
		},
		{
			name:     "non-numeric first token",
			line:     "a pinch of saffron",
			quantity: 1,
			unit:     "",
			wantName: "a pinch of saffron",
			category: models.CategoryOther,
		},
		{
			name:     "empty line",
			line:     "",
			quantity: 1,
			unit:     "",
			wantName: "",
			category: models.CategoryOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ing := p.Parse(tt.line)
			assert.Equal(t, tt.quantity, ing.Quantity)
			assert.Equal(t, tt.unit, ing.Unit)
			assert.Equal(t, tt.wantName, ing.Name)
			assert.Equal(t, tt.category, ing.Category)
		})
	}
}

// Mixed fractions written as two tokens are not understood: the first
// token "1" is numeric on its own, so the highest-priority branch wins
// and "1/2" is taken as the unit. Locked in here on purpose.
func TestParseMixedFractionTakenAsUnit(t *testing.T) {
	p := NewIngredientParser()

	ing := p.Parse("1 1/2 cups flour")
	assert.Equal(t, float64(1), ing.Quantity)
	assert.Equal(t, "1/2", ing.Unit)
	assert.Equal(t, "cups flour", ing.Name)
	assert.Equal(t, models.CategoryPantry, ing.Category)
}

// The input is not trimmed before splitting. A leading space yields an
// empty first token, which the concatenation step merges away ("" + "2"
// parses as 2), so the line is still recovered.
func TestParseLeadingWhitespaceNotTrimmed(t *testing.T) {
	p := NewIngredientParser()

	ing := p.Parse(" 2 cups flour")
	assert.Equal(t, float64(2), ing.Quantity)
	assert.Equal(t, "cups", ing.Unit)
	assert.Equal(t, "flour", ing.Name)
}

func TestParseAllKeepsOrder(t *testing.T) {
	p := NewIngredientParser()

	parsed := p.ParseAll([]string{"2 cups flour", "Salt"})
	assert.Len(t, parsed, 2)
	assert.Equal(t, "flour", parsed[0].Name)
	assert.Equal(t, "Salt", parsed[1].Name)
}
