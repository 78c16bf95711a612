package settlement_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"megaodds/database"
	"megaodds/games"
	"megaodds/models"
	"megaodds/settlement"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// lossGen forces a losing draw for every rule (dice roll 1, fraction 0.1).
type lossGen struct{}

func (lossGen) Float() (float64, error) { return 0.1, nil }
func (lossGen) IntN(n int) (int, error) { return 0, nil }

// winGen forces a winning draw for every rule (dice roll 6, fraction 0.9).
type winGen struct{}

func (winGen) Float() (float64, error) { return 0.9, nil }
func (winGen) IntN(n int) (int, error) { return n - 1, nil }

// deadGen simulates an unavailable entropy source.
type deadGen struct{}

func (deadGen) Float() (float64, error) { return 0, fmt.Errorf("%w: closed", games.ErrEntropy) }
func (deadGen) IntN(n int) (int, error) { return 0, fmt.Errorf("%w: closed", games.ErrEntropy) }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection serializes writers the way the row lock does
	// on postgres.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedGames(db))
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, balance int64) models.User {
	t.Helper()
	user := models.User{
		Email:        fmt.Sprintf("%s@example.com", uuid.NewString()[:8]),
		PasswordHash: "x",
		Balance:      decimal.NewFromInt(balance),
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func reloadUser(t *testing.T, db *gorm.DB, id uint) models.User {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, id).Error)
	return user
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(decimal.RequireFromString(want)), "want %s, got %s", want, got)
}

func TestSettleLoss(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, 100)
	core := settlement.NewCore(db, lossGen{})

	res, err := core.Settle(context.Background(), user.ID, games.GameDiceRoll, decimal.NewFromInt(30), games.Params{})
	require.NoError(t, err)

	assert.False(t, res.Win)
	assert.True(t, res.Payout.IsZero())
	assertDecimal(t, "70", res.NewBalance)
	assertDecimal(t, "70", reloadUser(t, db, user.ID).Balance)

	var bets []models.Bet
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&bets).Error)
	require.Len(t, bets, 1)
	assert.Equal(t, models.BetResultLoss, bets[0].Result)
	assertDecimal(t, "30", bets[0].Amount)
	assert.True(t, bets[0].Payout.IsZero())
	assert.NotZero(t, bets[0].GameID)

	var trxs []models.Transaction
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&trxs).Error)
	require.Len(t, trxs, 1)
	assert.Equal(t, models.TrxTypeBet, trxs[0].Type)
	assertDecimal(t, "-30", trxs[0].Amount)

	var entry models.LeaderboardEntry
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&entry).Error)
	assert.Equal(t, int64(1), entry.TotalBets)
	assert.True(t, entry.TotalWinnings.IsZero())
	assert.True(t, entry.BiggestWin.IsZero())
}

func TestSettleWin(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, 100)
	core := settlement.NewCore(db, winGen{})

	res, err := core.Settle(context.Background(), user.ID, games.GameDiceRoll, decimal.NewFromInt(30), games.Params{})
	require.NoError(t, err)

	assert.True(t, res.Win)
	assertDecimal(t, "2", res.Multiplier)
	assertDecimal(t, "60", res.Payout)
	assertDecimal(t, "130", res.NewBalance)
	assertDecimal(t, "130", reloadUser(t, db, user.ID).Balance)

	var trxs []models.Transaction
	require.NoError(t, db.Where("user_id = ?", user.ID).Order("id").Find(&trxs).Error)
	require.Len(t, trxs, 2)
	assert.Equal(t, models.TrxTypeBet, trxs[0].Type)
	assertDecimal(t, "-30", trxs[0].Amount)
	assert.Equal(t, models.TrxTypeWin, trxs[1].Type)
	assertDecimal(t, "60", trxs[1].Amount)
	assert.NotEqual(t, trxs[0].Reference, trxs[1].Reference)

	var entry models.LeaderboardEntry
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&entry).Error)
	assert.Equal(t, int64(1), entry.TotalBets)
	assertDecimal(t, "60", entry.TotalWinnings)
	assertDecimal(t, "60", entry.BiggestWin)
}

func TestSettleRejectsInvalidWagers(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, 100)
	core := settlement.NewCore(db, lossGen{})

	for _, amount := range []decimal.Decimal{
		decimal.Zero,
		decimal.NewFromInt(-5),
		decimal.NewFromInt(101),
	} {
		_, err := core.Settle(context.Background(), user.ID, games.GameDiceRoll, amount, games.Params{})
		assert.ErrorIs(t, err, settlement.ErrInvalidBet, "amount %s", amount)
	}

	// Nothing was written.
	assertDecimal(t, "100", reloadUser(t, db, user.ID).Balance)
	var count int64
	require.NoError(t, db.Model(&models.Bet{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.Transaction{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSettleEnforcesBetBounds(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, 50000)
	core := settlement.NewCore(db, lossGen{})

	// Catalog max for every seeded game is 10000.
	_, err := core.Settle(context.Background(), user.ID, games.GameDiceRoll, decimal.NewFromInt(20000), games.Params{})
	assert.ErrorIs(t, err, settlement.ErrInvalidBet)

	require.NoError(t, db.Model(&models.Game{}).Where("name = ?", games.GameDiceRoll).Update("is_active", false).Error)
	_, err = core.Settle(context.Background(), user.ID, games.GameDiceRoll, decimal.NewFromInt(10), games.Params{})
	assert.ErrorIs(t, err, settlement.ErrInvalidBet)
}

func TestSettleUnknownGameFallsBack(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, 100)
	core := settlement.NewCore(db, winGen{})

	res, err := core.Settle(context.Background(), user.ID, "Mystery Box", decimal.NewFromInt(10), games.Params{})
	require.NoError(t, err)
	assert.True(t, res.Win)
	assertDecimal(t, "2", res.Multiplier)

	var bet models.Bet
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&bet).Error)
	assert.Zero(t, bet.GameID)
}

func TestSettleAccountNotFound(t *testing.T) {
	db := newTestDB(t)
	core := settlement.NewCore(db, lossGen{})

	_, err := core.Settle(context.Background(), 9999, games.GameDiceRoll, decimal.NewFromInt(10), games.Params{})
	assert.ErrorIs(t, err, settlement.ErrAccountNotFound)
}

func TestSettleGeneratorFailureLeavesNoState(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, 100)
	core := settlement.NewCore(db, deadGen{})

	_, err := core.Settle(context.Background(), user.ID, games.GameDiceRoll, decimal.NewFromInt(10), games.Params{})
	assert.ErrorIs(t, err, games.ErrEntropy)

	assertDecimal(t, "100", reloadUser(t, db, user.ID).Balance)
	var count int64
	require.NoError(t, db.Model(&models.Bet{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.Transaction{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLeaderboardAggregates(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, 10000)

	winner := settlement.NewCore(db, winGen{})
	loser := settlement.NewCore(db, lossGen{})
	ctx := context.Background()

	// Three wins at stakes 10, 50, 20 (x2 payouts) and two losses.
	var payouts []decimal.Decimal
	for _, stake := range []int64{10, 50, 20} {
		res, err := winner.Settle(ctx, user.ID, games.GameDiceRoll, decimal.NewFromInt(stake), games.Params{})
		require.NoError(t, err)
		require.True(t, res.Win)
		payouts = append(payouts, res.Payout)
	}
	for _, stake := range []int64{15, 25} {
		res, err := loser.Settle(ctx, user.ID, games.GameDiceRoll, decimal.NewFromInt(stake), games.Params{})
		require.NoError(t, err)
		require.False(t, res.Win)
	}

	total := decimal.Zero
	biggest := decimal.Zero
	for _, p := range payouts {
		total = total.Add(p)
		if p.GreaterThan(biggest) {
			biggest = p
		}
	}

	var entry models.LeaderboardEntry
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&entry).Error)
	assert.Equal(t, int64(5), entry.TotalBets)
	assert.True(t, entry.TotalWinnings.Equal(total), "want %s got %s", total, entry.TotalWinnings)
	assert.True(t, entry.BiggestWin.Equal(biggest), "want %s got %s", biggest, entry.BiggestWin)
}

// Two simultaneous full-balance wagers must never both pass the funds
// check: exactly one settles and one is rejected as unaffordable.
func TestConcurrentFullBalanceWagers(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, 100)
	core := settlement.NewCore(db, lossGen{})

	stake := decimal.NewFromInt(100)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = core.Settle(context.Background(), user.ID, games.GameDiceRoll, stake, games.Params{})
		}(i)
	}
	wg.Wait()

	var ok, rejected int
	for _, err := range errs {
		if err == nil {
			ok++
		} else if assert.ErrorIs(t, err, settlement.ErrInvalidBet) {
			rejected++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, rejected)

	assertDecimal(t, "0", reloadUser(t, db, user.ID).Balance)
	var count int64
	require.NoError(t, db.Model(&models.Bet{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
