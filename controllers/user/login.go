package user

import (
	"strings"

	"megaodds/database"
	"megaodds/helpers"
	"megaodds/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS")
	}

	token, err := helpers.IssueUserToken(user.ID)
	if err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_ISSUE_TOKEN")
	}

	return helpers.JSONSuccess(c, "Login successful", fiber.Map{
		"access_token": token,
		"user": fiber.Map{
			"id":      user.ID,
			"email":   user.Email,
			"balance": user.Balance,
		},
	})
}
