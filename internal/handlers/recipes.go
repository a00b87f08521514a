package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/recipe-box/internal/models"
	"github.com/foxxcyber/recipe-box/internal/store"
)

// ListRecipes returns recipe summaries, filtered and paginated
func (h *Handler) ListRecipes(c *fiber.Ctx) error {
	params := &models.RecipeListParams{
		Search: c.Query("search"),
		Tag:    c.Query("tag"),
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}

	// Validate limits
	if params.Limit < 1 || params.Limit > 200 {
		params.Limit = 50
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	recipes, total := h.store.ListRecipes(params)
	return SuccessWithMeta(c, recipes, total, params.Limit, params.Offset)
}

// GetRecipe returns a single recipe
func (h *Handler) GetRecipe(c *fiber.Ctx) error {
	recipe, err := h.store.GetRecipe(c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrRecipeNotFound) {
			return Error(c, fiber.StatusNotFound, "recipe not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get recipe")
	}

	return Success(c, recipe)
}

// CreateRecipe creates a new recipe
func (h *Handler) CreateRecipe(c *fiber.Ctx) error {
	var req models.CreateRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	recipe, err := h.store.CreateRecipe(&req)
	if err != nil {
		if errors.Is(err, store.ErrNameRequired) {
			return Error(c, fiber.StatusBadRequest, "name is required")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to create recipe")
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data:    recipe,
	})
}

// UpdateRecipe applies a partial update to a recipe
func (h *Handler) UpdateRecipe(c *fiber.Ctx) error {
	var req models.UpdateRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	recipe, err := h.store.UpdateRecipe(c.Params("id"), &req)
	if err != nil {
		if errors.Is(err, store.ErrRecipeNotFound) {
			return Error(c, fiber.StatusNotFound, "recipe not found")
		}
		if errors.Is(err, store.ErrNameRequired) {
			return Error(c, fiber.StatusBadRequest, "name cannot be empty")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to update recipe")
	}

	return Success(c, recipe)
}

// DeleteRecipe deletes a recipe and its file
func (h *Handler) DeleteRecipe(c *fiber.Ctx) error {
	if err := h.store.DeleteRecipe(c.Params("id")); err != nil {
		if errors.Is(err, store.ErrRecipeNotFound) {
			return Error(c, fiber.StatusNotFound, "recipe not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to delete recipe")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "recipe deleted successfully",
	})
}

// RateRecipe sets a recipe's star rating (0 clears it)
func (h *Handler) RateRecipe(c *fiber.Ctx) error {
	var req models.RateRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	recipe, err := h.store.SetRating(c.Params("id"), req.Rating)
	if err != nil {
		if errors.Is(err, store.ErrRecipeNotFound) {
			return Error(c, fiber.StatusNotFound, "recipe not found")
		}
		if errors.Is(err, store.ErrInvalidRating) {
			return Error(c, fiber.StatusBadRequest, "rating must be between 0 and 5")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to rate recipe")
	}

	return Success(c, recipe)
}

// ListTags returns every distinct tag across recipes
func (h *Handler) ListTags(c *fiber.Ctx) error {
	return Success(c, h.store.ListTags())
}
