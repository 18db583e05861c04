package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/token"
)

const claimsKey = "claims"

// RequireAuth validates the bearer token and attaches the decoded claims to
// the request context. A missing or malformed header is 401; a token that
// fails verification is 403.
func RequireAuth(tokens *token.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Unauthorised access! Please login first.",
			})
		}

		claims, err := tokens.Verify(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Forbidden access! Invalid or expired token.",
			})
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// ClaimsFrom returns the claims attached by RequireAuth, or nil when the
// route is unauthenticated.
func ClaimsFrom(c *fiber.Ctx) *token.Claims {
	claims, _ := c.Locals(claimsKey).(*token.Claims)
	return claims
}
