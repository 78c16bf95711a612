package middlewares

import (
	"strings"

	"megaodds/helpers"

	"github.com/gofiber/fiber/v2"
)

// UserAuth resolves the Bearer token to a user id and stores it in
// c.Locals("user_id"). Requests without a valid token never reach the
// settlement or wallet handlers.
func UserAuth(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "AUTHORIZATION_REQUIRED")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_AUTHORIZATION_FORMAT")
	}

	claims, err := helpers.ParseUserToken(parts[1])
	if err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_OR_EXPIRED_TOKEN")
	}

	c.Locals("user_id", claims.UserID)
	return c.Next()
}
