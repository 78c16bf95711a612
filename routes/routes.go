package routes

import (
	"megaodds/controllers/game"
	"megaodds/controllers/leaderboard"
	"megaodds/controllers/user"
	"megaodds/controllers/wallet"
	"megaodds/database"
	"megaodds/games"
	"megaodds/middlewares"
	"megaodds/settlement"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Setup(app *fiber.App) {
	core := settlement.NewCore(database.DB, games.CryptoSource{})

	app.Post("/register", user.Register)
	app.Post("/login", user.Login)
	app.Get("/games", game.List)
	app.Get("/leaderboard", leaderboard.Top)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	authed := app.Group("/", middlewares.UserAuth)
	authed.Get("/profile", user.Profile)
	authed.Post("/bet", game.PlaceBet(core))
	authed.Get("/history", game.History)
	authed.Post("/deposit", wallet.Deposit)
	authed.Post("/withdraw", wallet.Withdraw)
	authed.Get("/transactions", wallet.Transactions)
}
