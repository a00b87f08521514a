package services

import (
	"strconv"
	"strings"

	"github.com/foxxcyber/recipe-box/internal/models"
)

// IngredientParser turns free-text ingredient lines into structured
// ingredients. Parsing is best-effort and never fails: a line that cannot
// be understood comes back as quantity 1 with the whole line as the name.
type IngredientParser struct{}

// NewIngredientParser creates a new parser instance
func NewIngredientParser() *IngredientParser {
	return &IngredientParser{}
}

// Parse parses a single ingredient line of the form "[qty] [unit] [name]".
// The line is split on spaces into at most three parts; the remainder is
// kept as-is, not re-split. The input is not trimmed, so leading or
// trailing whitespace shifts the tokens exactly as authored.
//
// Mixed fractions are not understood: in "1 1/2 cups flour" the first
// token "1" is already numeric, so the highest-priority branch wins and
// the line parses as quantity 1 with "1/2" as the unit. The two-token
// concatenation branch below never sees such lines; it only fires when
// the first token alone is not numeric — notably, a single leading space
// yields an empty first token that concatenates away, so " 2 cups flour"
// still parses. Covered by tests; do not reorder the branches without
// changing the documented contract.
func (p *IngredientParser) Parse(line string) models.Ingredient {
	parts := strings.SplitN(line, " ", 3)

	var ing models.Ingredient
	switch {
	case len(parts) >= 3 && parseQuantity(parts[0], &ing.Quantity):
		ing.Unit = parts[1]
		ing.Name = parts[2]

	case len(parts) >= 3 && parseQuantity(parts[0]+parts[1], &ing.Quantity):
		// First token alone was not numeric but the first two concatenate
		// to a number; the rest of the line supplies unit and name.
		rest := strings.SplitN(parts[2], " ", 2)
		ing.Unit = rest[0]
		if len(rest) > 1 {
			ing.Name = rest[1]
		}

	case len(parts) == 2 && parseQuantity(parts[0], &ing.Quantity):
		ing.Name = parts[1]

	default:
		ing.Quantity = 1
		ing.Name = line
	}

	ing.Category = Categorize(ing.Name)
	return ing
}

// ParseAll parses every line in order
func (p *IngredientParser) ParseAll(lines []string) []models.Ingredient {
	parsed := make([]models.Ingredient, len(lines))
	for i, line := range lines {
		parsed[i] = p.Parse(line)
	}
	return parsed
}

// parseQuantity attempts a numeric parse, storing the result on success
func parseQuantity(token string, out *float64) bool {
	qty, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return false
	}
	*out = qty
	return true
}
