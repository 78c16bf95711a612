package user

import (
	"megaodds/database"
	"megaodds/helpers"
	"megaodds/models"

	"github.com/gofiber/fiber/v2"
)

func Profile(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "USER_NOT_AUTHENTICATED")
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "USER_NOT_FOUND")
	}

	return helpers.JSONSuccess(c, "Profile retrieved successfully", fiber.Map{
		"id":         user.ID,
		"email":      user.Email,
		"balance":    user.Balance,
		"created_at": user.CreatedAt,
	})
}
