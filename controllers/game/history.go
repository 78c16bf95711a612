package game

import (
	"time"

	"megaodds/database"
	"megaodds/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type betHistoryRow struct {
	ID         uint            `json:"id"`
	GameName   string          `json:"game"`
	Amount     decimal.Decimal `json:"amount"`
	Result     string          `json:"result"`
	Payout     decimal.Decimal `json:"payout"`
	Multiplier decimal.Decimal `json:"multiplier"`
	CreatedAt  time.Time       `json:"created_at"`
}

// History returns the caller's most recent settlement receipts.
func History(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "USER_NOT_AUTHENTICATED")
	}

	var rows []betHistoryRow
	err := database.DB.Table("bets").
		Select("bets.id, COALESCE(games.name, '') AS game_name, bets.amount, bets.result, bets.payout, bets.multiplier, bets.created_at").
		Joins("LEFT JOIN games ON games.id = bets.game_id").
		Where("bets.user_id = ? AND bets.deleted_at IS NULL", userID).
		Order("bets.created_at DESC").
		Limit(50).
		Scan(&rows).Error
	if err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_LOAD_HISTORY")
	}

	return helpers.JSONSuccess(c, "History retrieved successfully", rows)
}
