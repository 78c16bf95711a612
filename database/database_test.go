package database

import (
	"fmt"
	"testing"

	"megaodds/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, Migrate(db))
	return db
}

func TestSeedGamesIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, SeedGames(db))
	require.NoError(t, SeedGames(db))

	var count int64
	require.NoError(t, db.Model(&models.Game{}).Count(&count).Error)
	assert.Equal(t, int64(len(defaultGames)), count)

	var dice models.Game
	require.NoError(t, db.Where("name = ?", "Dice Roll").First(&dice).Error)
	assert.True(t, dice.IsActive)
	assert.True(t, dice.MinBet.Equal(decimal.NewFromInt(1)))
	assert.True(t, dice.MaxBet.Equal(decimal.NewFromInt(10000)))
}

func TestForUpdateSkipsSQLite(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, SeedGames(db))

	// The locking clause is dropped for sqlite, so this must not error.
	var game models.Game
	err := db.Transaction(func(tx *gorm.DB) error {
		return ForUpdate(tx).Where("name = ?", "Roulette").First(&game).Error
	})
	require.NoError(t, err)
	assert.Equal(t, "Roulette", game.Name)
}
