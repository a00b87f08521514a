package handlers

import (
	"errors"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/foxxcyber/recipe-box/internal/models"
	"github.com/foxxcyber/recipe-box/internal/services"
	"github.com/foxxcyber/recipe-box/internal/store"
)

// extraItemsLabel attributes one-off lines that were typed straight into
// the list rather than coming from a recipe
const extraItemsLabel = "Extra items"

// BuildGroceryList generates a shopping list from the selected recipes
// and opens an in-memory session holding its checked/already-have state
func (h *Handler) BuildGroceryList(c *fiber.Ctx) error {
	var req models.BuildGroceryListRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.RecipeIDs) == 0 && len(req.ExtraLines) == 0 {
		return Error(c, fiber.StatusBadRequest, "select at least one recipe")
	}

	var input []models.RecipeIngredients
	var names []string
	for _, id := range req.RecipeIDs {
		recipe, err := h.store.GetRecipe(id)
		if err != nil {
			if errors.Is(err, store.ErrRecipeNotFound) {
				return Error(c, fiber.StatusNotFound, "recipe not found: "+id)
			}
			return Error(c, fiber.StatusInternalServerError, "failed to load recipe")
		}
		input = append(input, models.RecipeIngredients{
			RecipeName: recipe.Name,
			Lines:      recipe.Ingredients,
		})
		names = append(names, recipe.Name)
	}
	if len(req.ExtraLines) > 0 {
		input = append(input, models.RecipeIngredients{
			RecipeName: extraItemsLabel,
			Lines:      req.ExtraLines,
		})
	}

	session := &models.GroceryListSession{
		ID:          uuid.NewString(),
		RecipeNames: names,
		Items:       h.aggregator.Aggregate(input),
		CreatedAt:   time.Now().UTC(),
	}

	h.sessionsMu.Lock()
	h.sessions[session.ID] = session
	h.sessionsMu.Unlock()

	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data:    h.sessionResponse(session, req.Sort),
	})
}

// GetGroceryList returns a session's items in the requested order
func (h *Handler) GetGroceryList(c *fiber.Ctx) error {
	session, err := h.getSession(c.Params("session"))
	if err != nil {
		return Error(c, fiber.StatusNotFound, "grocery list not found")
	}

	return Success(c, h.sessionResponse(session, models.GrocerySortMode(c.Query("sort"))))
}

// ToggleItemChecked flips an item's purchased state
func (h *Handler) ToggleItemChecked(c *fiber.Ctx) error {
	return h.toggleItem(c, func(item *models.GroceryItem) {
		item.Checked = !item.Checked
	})
}

// ToggleItemHave flips an item's already-in-the-pantry state
func (h *Handler) ToggleItemHave(c *fiber.Ctx) error {
	return h.toggleItem(c, func(item *models.GroceryItem) {
		item.AlreadyHave = !item.AlreadyHave
	})
}

func (h *Handler) toggleItem(c *fiber.Ctx, flip func(*models.GroceryItem)) error {
	h.sessionsMu.Lock()
	defer h.sessionsMu.Unlock()

	session, ok := h.sessions[c.Params("session")]
	if !ok {
		return Error(c, fiber.StatusNotFound, "grocery list not found")
	}

	// Keys are derived from free-text names and may contain characters
	// that must be percent-encoded in the path, "/" included.
	key := c.Params("key")
	if unescaped, err := url.PathUnescape(key); err == nil {
		key = unescaped
	}
	for i := range session.Items {
		if session.Items[i].Key == key {
			flip(&session.Items[i])
			return Success(c, session.Items[i])
		}
	}
	return Error(c, fiber.StatusNotFound, "item not found in list")
}

// getSession returns a snapshot-safe reference to a session
func (h *Handler) getSession(id string) (*models.GroceryListSession, error) {
	h.sessionsMu.RLock()
	defer h.sessionsMu.RUnlock()

	session, ok := h.sessions[id]
	if !ok {
		return nil, store.ErrRecipeNotFound
	}
	return session, nil
}

// sessionResponse builds the API view of a session with items sorted for
// display. The session's own slice keeps aggregation order so that sort
// stability is reproducible.
func (h *Handler) sessionResponse(session *models.GroceryListSession, sortMode models.GrocerySortMode) models.GroceryListResponse {
	if sortMode == "" {
		sortMode = models.GrocerySortCategory
	}

	h.sessionsMu.RLock()
	items := make([]models.GroceryItem, len(session.Items))
	copy(items, session.Items)
	toBuy := session.ToBuyCount()
	h.sessionsMu.RUnlock()

	services.SortItems(items, sortMode)

	return models.GroceryListResponse{
		SessionID:   session.ID,
		RecipeNames: session.RecipeNames,
		Items:       items,
		ToBuy:       toBuy,
		Sort:        sortMode,
	}
}
