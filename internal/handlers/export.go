package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/recipe-box/internal/services"
	"github.com/foxxcyber/recipe-box/internal/store"
)

// parseFormat maps the ?format= query to an export format, defaulting to
// plain text
func parseFormat(c *fiber.Ctx) (services.ExportFormat, bool) {
	switch services.ExportFormat(c.Query("format", string(services.FormatText))) {
	case services.FormatText:
		return services.FormatText, true
	case services.FormatMarkdown:
		return services.FormatMarkdown, true
	case services.FormatHTML:
		return services.FormatHTML, true
	default:
		return "", false
	}
}

// ExportRecipe renders a recipe as text, markdown or HTML
func (h *Handler) ExportRecipe(c *fiber.Ctx) error {
	format, ok := parseFormat(c)
	if !ok {
		return Error(c, fiber.StatusBadRequest, "format must be text, markdown or html")
	}

	recipe, err := h.store.GetRecipe(c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrRecipeNotFound) {
			return Error(c, fiber.StatusNotFound, "recipe not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to load recipe")
	}

	rendered, err := h.exporter.Recipe(recipe, format)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to render recipe")
	}

	c.Set(fiber.HeaderContentType, format.ContentType())
	return c.SendString(rendered)
}

// ExportGroceryList renders a grocery-list session as text, markdown or
// HTML
func (h *Handler) ExportGroceryList(c *fiber.Ctx) error {
	format, ok := parseFormat(c)
	if !ok {
		return Error(c, fiber.StatusBadRequest, "format must be text, markdown or html")
	}

	session, err := h.getSession(c.Params("session"))
	if err != nil {
		return Error(c, fiber.StatusNotFound, "grocery list not found")
	}

	rendered, err := h.exporter.GroceryList(session, format)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to render list")
	}

	c.Set(fiber.HeaderContentType, format.ContentType())
	return c.SendString(rendered)
}
