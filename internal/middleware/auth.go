package middleware

import (
	"strings"

	"github.com/ekalbevoldog/Contesttest-sub007/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

// AuthRequired validates the bearer token and stores user_id and role in
// the request locals. The scheme check is case-insensitive so clients
// sending "bearer" are not rejected.
func AuthRequired(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get("Authorization"))
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing or malformed authorization header",
			})
		}

		claims, err := utils.ValidateToken(token, secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
