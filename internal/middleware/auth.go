package middleware

import (
	"strings"

	"storefront-backend/internal/auth"

	"github.com/gofiber/fiber/v2"
)

// Protected middleware validates the access token (signature, kind and
// blacklist) and stores the claims in the request context
func Protected(authService *auth.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractAccessToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authorization",
			})
		}

		claims, err := authService.Authenticate(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		c.Locals("user", claims)
		return c.Next()
	}
}

// extractAccessToken pulls the token from the Authorization header, falling
// back to the access_token cookie for browser clients
func extractAccessToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
			return authHeader[7:]
		}
		return authHeader
	}

	return c.Cookies("access_token")
}
