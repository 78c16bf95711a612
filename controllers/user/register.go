package user

import (
	"os"
	"strings"

	"megaodds/database"
	"megaodds/helpers"
	"megaodds/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// startingBalance is the demo credit granted to new accounts.
func startingBalance() decimal.Decimal {
	if raw := os.Getenv("STARTING_BALANCE"); raw != "" {
		if d, err := decimal.NewFromString(raw); err == nil && !d.IsNegative() {
			return d
		}
	}
	return decimal.NewFromInt(162500)
}

func Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return helpers.JSONError(c, "EMAIL_AND_PASSWORD_REQUIRED")
	}
	if len(req.Password) < 6 {
		return helpers.JSONError(c, "PASSWORD_TOO_SHORT")
	}

	var existing models.User
	if err := database.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return helpers.JSONError(c, "EMAIL_ALREADY_REGISTERED")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_HASH_PASSWORD")
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Balance:      startingBalance(),
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.LeaderboardEntry{UserID: user.ID}).Error
	})
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_REGISTER_USER")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully",
		"data":    fiber.Map{"id": user.ID, "email": user.Email},
	})
}
