package leaderboard

import (
	"megaodds/helpers"
	"megaodds/services"

	"github.com/gofiber/fiber/v2"
)

// Top returns the ten accounts with the highest cumulative winnings.
func Top(c *fiber.Ctx) error {
	rows, err := services.CachedTopLeaderboard(c.UserContext())
	if err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_LOAD_LEADERBOARD")
	}
	return helpers.JSONSuccess(c, "Leaderboard retrieved successfully", rows)
}
