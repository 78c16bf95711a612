package game

import (
	"errors"

	"megaodds/games"
	"megaodds/helpers"
	"megaodds/settlement"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type PlaceBetRequest struct {
	Game   string          `json:"game"`
	Amount decimal.Decimal `json:"amount"`
	Data   games.Params    `json:"data"`
}

// PlaceBet hands the wager to the settlement core and maps its error
// taxonomy onto HTTP statuses: invalid bets are the caller's fault,
// persistence failures are transient, generator failures are not retried.
func PlaceBet(core *settlement.Core) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("user_id").(uint)
		if !ok {
			return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "USER_NOT_AUTHENTICATED")
		}

		var req PlaceBetRequest
		if err := c.BodyParser(&req); err != nil {
			return helpers.JSONError(c, "INVALID_JSON")
		}
		if req.Game == "" {
			return helpers.JSONError(c, "GAME_REQUIRED")
		}

		res, err := core.Settle(c.UserContext(), userID, req.Game, req.Amount, req.Data)
		switch {
		case err == nil:
		case errors.Is(err, settlement.ErrInvalidBet), errors.Is(err, games.ErrInvalidParams):
			return helpers.JSONError(c, "INVALID_BET_AMOUNT")
		case errors.Is(err, settlement.ErrAccountNotFound):
			return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "USER_NOT_FOUND")
		case errors.Is(err, games.ErrEntropy):
			return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "OUTCOME_GENERATOR_UNAVAILABLE")
		default:
			return helpers.JSONErrorStatus(c, fiber.StatusServiceUnavailable, "SETTLEMENT_FAILED_RETRY")
		}

		return c.JSON(fiber.Map{
			"win":        res.Win,
			"multiplier": res.Multiplier,
			"payout":     res.Payout,
			"balance":    res.NewBalance,
			"result":     res.Detail,
		})
	}
}
