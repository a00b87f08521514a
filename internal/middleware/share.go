package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/recipe-box/internal/services"
)

// ShareTokenRequired validates the :token path parameter as a signed
// share token and stores its claims in the request context. Routes behind
// it serve shared recipes and lists to anyone holding a valid link.
func ShareTokenRequired(shares *services.ShareService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Params("token")
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing share token",
			})
		}

		claims, err := shares.VerifyToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired share link",
			})
		}

		c.Locals("share_kind", claims.Kind)
		c.Locals("share_ref", claims.RefID)

		return c.Next()
	}
}

// GetShareKind extracts the share kind from the context
func GetShareKind(c *fiber.Ctx) string {
	if kind, ok := c.Locals("share_kind").(string); ok {
		return kind
	}
	return ""
}

// GetShareRef extracts the shared object's ID from the context
func GetShareRef(c *fiber.Ctx) string {
	if ref, ok := c.Locals("share_ref").(string); ok {
		return ref
	}
	return ""
}
