package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/foxxcyber/recipe-box/internal/models"
)

// recipeRecord ties a loaded recipe to the file it came from
type recipeRecord struct {
	recipe *models.Recipe
	path   string
}

// readRecipeFile loads and validates one recipe document
func readRecipeFile(path string) (*recipeRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var recipe models.Recipe
	if err := json.Unmarshal(data, &recipe); err != nil {
		return nil, fmt.Errorf("invalid recipe JSON: %w", err)
	}
	if recipe.ID == "" {
		// Externally created files may omit the ID; derive it from the
		// file name so the document stays addressable.
		recipe.ID = strings.TrimSuffix(filepath.Base(path), ".json")
	}
	if recipe.Name == "" {
		return nil, fmt.Errorf("recipe file has no name")
	}

	return &recipeRecord{recipe: &recipe, path: path}, nil
}

// writeRecipe persists a recipe atomically: write to a temp file in the
// same folder, then rename over the target. Sync tools see exactly one
// complete document.
func (s *Store) writeRecipe(recipe *models.Recipe) error {
	data, err := json.MarshalIndent(recipe, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}

	path := s.recipePath(recipe.ID)
	tmp, err := os.CreateTemp(s.dir, ".recipe-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write recipe: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	s.markSelfWrite(path)
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to rename recipe file: %w", err)
	}
	return nil
}

// ListRecipes returns recipe summaries matching the given filters,
// sorted case-insensitively by name. Total is the match count before
// limit/offset are applied.
func (s *Store) ListRecipes(params *models.RecipeListParams) ([]models.RecipeSummary, int) {
	s.mu.RLock()
	matched := make([]*models.Recipe, 0, len(s.recipes))
	for _, rec := range s.recipes {
		if matchesParams(rec.recipe, params) {
			matched = append(matched, rec.recipe)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return strings.ToLower(matched[i].Name) < strings.ToLower(matched[j].Name)
	})

	total := len(matched)
	if params != nil {
		if params.Offset > 0 {
			if params.Offset >= len(matched) {
				matched = nil
			} else {
				matched = matched[params.Offset:]
			}
		}
		if params.Limit > 0 && params.Limit < len(matched) {
			matched = matched[:params.Limit]
		}
	}

	summaries := make([]models.RecipeSummary, len(matched))
	for i, r := range matched {
		summaries[i] = r.Summary()
	}
	return summaries, total
}

// matchesParams applies the list filters to one recipe
func matchesParams(r *models.Recipe, params *models.RecipeListParams) bool {
	if params == nil {
		return true
	}
	if params.Tag != "" {
		found := false
		for _, tag := range r.Tags {
			if strings.EqualFold(tag, params.Tag) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if params.Search != "" {
		needle := strings.ToLower(params.Search)
		if !strings.Contains(strings.ToLower(r.Name), needle) &&
			!strings.Contains(strings.ToLower(r.Description), needle) {
			return false
		}
	}
	return true
}

// GetRecipe returns a copy of the recipe with the given ID
func (s *Store) GetRecipe(id string) (*models.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.recipes[id]
	if !ok {
		return nil, ErrRecipeNotFound
	}
	recipe := *rec.recipe
	return &recipe, nil
}

// CreateRecipe creates a new recipe file and returns the stored recipe
func (s *Store) CreateRecipe(req *models.CreateRecipeRequest) (*models.Recipe, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	now := time.Now().UTC()
	recipe := &models.Recipe{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		Servings:     req.Servings,
		PrepMinutes:  req.PrepMinutes,
		CookMinutes:  req.CookMinutes,
		Tags:         req.Tags,
		Notes:        req.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if recipe.Ingredients == nil {
		recipe.Ingredients = []string{}
	}

	if err := s.writeRecipe(recipe); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.recipes[recipe.ID] = &recipeRecord{recipe: recipe, path: s.recipePath(recipe.ID)}
	s.mu.Unlock()

	out := *recipe
	return &out, nil
}

// UpdateRecipe applies a partial update and persists the result
func (s *Store) UpdateRecipe(id string, req *models.UpdateRecipeRequest) (*models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.recipes[id]
	if !ok {
		return nil, ErrRecipeNotFound
	}

	updated := *rec.recipe
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		updated.Name = *req.Name
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Ingredients != nil {
		updated.Ingredients = *req.Ingredients
	}
	if req.Instructions != nil {
		updated.Instructions = *req.Instructions
	}
	if req.Servings != nil {
		updated.Servings = *req.Servings
	}
	if req.PrepMinutes != nil {
		updated.PrepMinutes = *req.PrepMinutes
	}
	if req.CookMinutes != nil {
		updated.CookMinutes = *req.CookMinutes
	}
	if req.Tags != nil {
		updated.Tags = *req.Tags
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := s.writeRecipe(&updated); err != nil {
		return nil, err
	}
	rec.recipe = &updated

	out := updated
	return &out, nil
}

// DeleteRecipe removes the recipe and its file
func (s *Store) DeleteRecipe(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.recipes[id]
	if !ok {
		return ErrRecipeNotFound
	}

	s.markSelfWrite(rec.path)
	if err := os.Remove(rec.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete recipe file: %w", err)
	}
	delete(s.recipes, id)
	return nil
}

// SetRating sets the star rating (0 clears it)
func (s *Store) SetRating(id string, rating int) (*models.Recipe, error) {
	if rating < 0 || rating > 5 {
		return nil, ErrInvalidRating
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.recipes[id]
	if !ok {
		return nil, ErrRecipeNotFound
	}

	updated := *rec.recipe
	updated.Rating = rating
	updated.UpdatedAt = time.Now().UTC()

	if err := s.writeRecipe(&updated); err != nil {
		return nil, err
	}
	rec.recipe = &updated

	out := updated
	return &out, nil
}

// ListTags returns every distinct tag across all recipes, sorted
func (s *Store) ListTags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var tags []string
	for _, rec := range s.recipes {
		for _, tag := range rec.recipe.Tags {
			key := strings.ToLower(tag)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			tags = append(tags, tag)
		}
	}
	sort.Slice(tags, func(i, j int) bool {
		return strings.ToLower(tags[i]) < strings.ToLower(tags[j])
	})
	return tags
}
