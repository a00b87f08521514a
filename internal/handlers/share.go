package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/recipe-box/internal/middleware"
	"github.com/foxxcyber/recipe-box/internal/services"
	"github.com/foxxcyber/recipe-box/internal/store"
)

// ShareLink is the response body for a newly created share link
type ShareLink struct {
	Token     string `json:"token"`
	URL       string `json:"url"`
	ExpiresIn string `json:"expires_in"`
}

// ShareRecipe issues a share link for a recipe
func (h *Handler) ShareRecipe(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := h.store.GetRecipe(id); err != nil {
		if errors.Is(err, store.ErrRecipeNotFound) {
			return Error(c, fiber.StatusNotFound, "recipe not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to load recipe")
	}

	return h.issueShareLink(c, services.ShareKindRecipe, id)
}

// ShareGroceryList issues a share link for a grocery-list session.
// The link stays valid only as long as the session lives in memory.
func (h *Handler) ShareGroceryList(c *fiber.Ctx) error {
	id := c.Params("session")
	if _, err := h.getSession(id); err != nil {
		return Error(c, fiber.StatusNotFound, "grocery list not found")
	}

	return h.issueShareLink(c, services.ShareKindList, id)
}

func (h *Handler) issueShareLink(c *fiber.Ctx, kind, refID string) error {
	token, err := h.shares.IssueToken(kind, refID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to create share link")
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data: ShareLink{
			Token:     token,
			URL:       h.cfg.BaseURL + "/share/" + token,
			ExpiresIn: h.cfg.ShareExpiry.String(),
		},
	})
}

// GetShared renders the shared recipe or list as a standalone HTML page.
// Mounted behind the share-token middleware; no other authentication.
func (h *Handler) GetShared(c *fiber.Ctx) error {
	kind := middleware.GetShareKind(c)
	refID := middleware.GetShareRef(c)

	var rendered string
	switch kind {
	case services.ShareKindRecipe:
		recipe, err := h.store.GetRecipe(refID)
		if err != nil {
			return Error(c, fiber.StatusGone, "the shared recipe no longer exists")
		}
		rendered, err = h.exporter.Recipe(recipe, services.FormatHTML)
		if err != nil {
			return Error(c, fiber.StatusInternalServerError, "failed to render recipe")
		}

	case services.ShareKindList:
		session, err := h.getSession(refID)
		if err != nil {
			return Error(c, fiber.StatusGone, "the shared list has expired")
		}
		rendered, err = h.exporter.GroceryList(session, services.FormatHTML)
		if err != nil {
			return Error(c, fiber.StatusInternalServerError, "failed to render list")
		}

	default:
		return Error(c, fiber.StatusBadRequest, "unknown share type")
	}

	c.Set(fiber.HeaderContentType, services.FormatHTML.ContentType())
	return c.SendString(rendered)
}
