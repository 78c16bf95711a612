package wallet

import (
	"megaodds/database"
	"megaodds/helpers"
	"megaodds/models"

	"github.com/gofiber/fiber/v2"
)

// Transactions returns the caller's most recent ledger entries.
func Transactions(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "USER_NOT_AUTHENTICATED")
	}

	var rows []models.Transaction
	err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&rows).Error
	if err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_LOAD_TRANSACTIONS")
	}

	out := make([]fiber.Map, 0, len(rows))
	for _, t := range rows {
		out = append(out, fiber.Map{
			"id":         t.ID,
			"type":       t.Type,
			"amount":     t.Amount,
			"status":     t.Status,
			"reference":  t.Reference,
			"created_at": t.CreatedAt,
		})
	}
	return helpers.JSONSuccess(c, "Transactions retrieved successfully", out)
}
