package database

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"megaodds/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var DB *gorm.DB

func Connect() {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")
	sslmode := os.Getenv("DB_SSLMODE")

	var dialector gorm.Dialector
	switch os.Getenv("DB_DRIVER") {
	case "mysql":
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			user, pass, host, port, name,
		)
		dialector = mysql.Open(dsn)
	default:
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			host, user, pass, name, port, sslmode,
		)
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	DB = db
	logrus.Info("connected to database")

	autoMigrate, err := strconv.ParseBool(os.Getenv("DB_AUTO_MIGRATE"))
	if err == nil && autoMigrate {
		if err := Migrate(DB); err != nil {
			logrus.WithError(err).Fatal("failed to auto-migrate database")
		}
		logrus.Info("auto migration completed")
	}

	if err := SeedGames(DB); err != nil {
		logrus.WithError(err).Fatal("failed to seed game catalog")
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Game{},
		&models.Bet{},
		&models.Transaction{},
		&models.LeaderboardEntry{},
	)
}

// defaultGames is the catalog created on first boot. Dice Roll, Coin Flip,
// Roulette, Aviator, Plinko and Mines have dedicated rules; the rest settle
// with the default rule.
var defaultGames = []string{
	"Dice Roll", "Coin Flip", "Roulette", "Blackjack", "Slots",
	"Sports Betting", "Penalty Kick", "Aviator", "Plinko", "Mines", "Wheel Spin",
}

func SeedGames(db *gorm.DB) error {
	for _, name := range defaultGames {
		var existing models.Game
		err := db.Where("name = ?", name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		game := models.Game{
			Name:     name,
			IsActive: true,
			MinBet:   decimal.NewFromInt(1),
			MaxBet:   decimal.NewFromInt(10000),
		}
		if err := db.Create(&game).Error; err != nil {
			return err
		}
	}
	return nil
}

// ForUpdate locks the selected rows for the duration of the enclosing
// transaction. SQLite has no row locks and rejects the clause; its writes
// are serialized by the engine itself, so the clause is skipped there.
func ForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
