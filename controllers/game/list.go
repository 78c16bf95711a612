package game

import (
	"megaodds/database"
	"megaodds/helpers"
	"megaodds/models"

	"github.com/gofiber/fiber/v2"
)

func List(c *fiber.Ctx) error {
	var catalog []models.Game
	if err := database.DB.Where("is_active = true").Order("id").Find(&catalog).Error; err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_LOAD_GAMES")
	}

	out := make([]fiber.Map, 0, len(catalog))
	for _, g := range catalog {
		out = append(out, fiber.Map{
			"id":      g.ID,
			"name":    g.Name,
			"min_bet": g.MinBet,
			"max_bet": g.MaxBet,
		})
	}
	return helpers.JSONSuccess(c, "Games retrieved successfully", out)
}
