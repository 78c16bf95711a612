package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"megaodds/cache"
	"megaodds/database"
	"megaodds/jobs"
	"megaodds/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("no .env file loaded, using environment as-is")
	}

	database.Connect()
	cache.Connect()

	host := os.Getenv("HOST")
	port := os.Getenv("PORT")

	if host == "" {
		host = "127.0.0.1"
	}
	if port == "" {
		port = "3000"
	}

	app := fiber.New()
	routes.Setup(app)
	jobs.StartLeaderboardWarmer()

	addr := fmt.Sprintf("%s:%s", host, port)
	logrus.WithField("addr", addr).Info("server running")

	go func() {
		if err := app.Listen(addr); err != nil {
			logrus.WithError(err).Panic("failed to start server")
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	logrus.Info("gracefully shutting down")
	if err := app.Shutdown(); err != nil {
		logrus.WithError(err).Fatal("server forced to shutdown")
	}
	logrus.Info("server exited cleanly")
}
