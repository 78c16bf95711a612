package wallet

import (
	"megaodds/database"
	"megaodds/helpers"
	"megaodds/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func Deposit(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "USER_NOT_AUTHENTICATED")
	}

	var req AmountRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return helpers.JSONError(c, "INVALID_AMOUNT")
	}

	var newBalance decimal.Decimal
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := database.ForUpdate(tx).First(&user, userID).Error; err != nil {
			return err
		}

		newBalance = user.Balance.Add(req.Amount)
		if err := tx.Model(&user).Update("balance", newBalance).Error; err != nil {
			return err
		}

		return tx.Create(&models.Transaction{
			UserID:    user.ID,
			Type:      models.TrxTypeDeposit,
			Amount:    req.Amount,
			Status:    models.TrxStatusCompleted,
			Reference: uuid.New().String(),
		}).Error
	})
	if err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusServiceUnavailable, "FAILED_TO_PROCESS_DEPOSIT")
	}

	return helpers.JSONSuccess(c, "Deposit successful", fiber.Map{"balance": newBalance})
}
