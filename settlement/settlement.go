package settlement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"megaodds/database"
	"megaodds/games"
	"megaodds/metrics"
	"megaodds/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Result is returned to the request layer after a committed settlement.
type Result struct {
	Win        bool            `json:"win"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Payout     decimal.Decimal `json:"payout"`
	NewBalance decimal.Decimal `json:"balance"`
	Detail     map[string]any  `json:"result"`
}

// Core settles bets. The database handle and outcome generator are
// injected so the whole unit runs against a fixed generator in tests.
type Core struct {
	db  *gorm.DB
	gen games.Generator
	log *logrus.Entry
}

func NewCore(db *gorm.DB, gen games.Generator) *Core {
	return &Core{
		db:  db,
		gen: gen,
		log: logrus.WithField("component", "settlement"),
	}
}

// Settle resolves one bet for the given account: it validates funds,
// draws the outcome, and commits the balance update together with the
// bet receipt, ledger entries and leaderboard delta as one transaction.
// Settlements for the same account serialize on the locked user row, so
// two concurrent full-balance wagers can never both pass the funds check.
func (s *Core) Settle(ctx context.Context, userID uint, gameName string, amount decimal.Decimal, p games.Params) (*Result, error) {
	if err := p.Validate(gameName); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBet, err)
	}

	var res *Result
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := database.ForUpdate(tx).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}

		if amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidBet, amount)
		}
		if amount.GreaterThan(user.Balance) {
			return fmt.Errorf("%w: amount %s exceeds balance %s", ErrInvalidBet, amount, user.Balance)
		}

		game, err := s.resolveGame(tx, gameName)
		if err != nil {
			return err
		}
		var gameID uint
		if game != nil {
			if !game.IsActive {
				return fmt.Errorf("%w: game %q is not active", ErrInvalidBet, gameName)
			}
			if amount.LessThan(game.MinBet) || (game.MaxBet.IsPositive() && amount.GreaterThan(game.MaxBet)) {
				return fmt.Errorf("%w: amount %s outside bet bounds [%s, %s]",
					ErrInvalidBet, amount, game.MinBet, game.MaxBet)
			}
			gameID = game.ID
		}

		outcome, err := games.Evaluate(s.gen, gameName, p)
		if err != nil {
			return err
		}

		payout := decimal.Zero
		if outcome.Win {
			payout = amount.Mul(outcome.Multiplier).Round(2)
		}
		newBalance := user.Balance.Sub(amount).Add(payout)

		if err := tx.Model(&user).Update("balance", newBalance).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}

		detail, err := json.Marshal(outcome.Detail)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		result := models.BetResultLoss
		if outcome.Win {
			result = models.BetResultWin
		}
		bet := models.Bet{
			UserID:     user.ID,
			GameID:     gameID,
			Amount:     amount,
			Multiplier: outcome.Multiplier,
			Result:     result,
			Payout:     payout,
			GameData:   datatypes.JSON(detail),
		}
		if err := tx.Create(&bet).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}

		if err := tx.Create(&models.Transaction{
			UserID:    user.ID,
			Type:      models.TrxTypeBet,
			Amount:    amount.Neg(),
			Status:    models.TrxStatusCompleted,
			Reference: uuid.New().String(),
		}).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}

		if outcome.Win {
			if err := tx.Create(&models.Transaction{
				UserID:    user.ID,
				Type:      models.TrxTypeWin,
				Amount:    payout,
				Status:    models.TrxStatusCompleted,
				Reference: uuid.New().String(),
			}).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrPersistence, err)
			}
		}

		if err := s.applyLeaderboard(tx, user.ID, outcome.Win, payout); err != nil {
			return err
		}

		res = &Result{
			Win:        outcome.Win,
			Multiplier: outcome.Multiplier,
			Payout:     payout,
			NewBalance: newBalance,
			Detail:     outcome.Detail,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordSettlement(gameName, res.Win, res.Payout)
	s.log.WithFields(logrus.Fields{
		"user_id": userID,
		"game":    gameName,
		"amount":  amount,
		"win":     res.Win,
		"payout":  res.Payout,
	}).Info("bet settled")

	return res, nil
}

// resolveGame looks up the catalog row for the named game. A missing row
// is not an error: the bet settles with the default rule and no bounds.
func (s *Core) resolveGame(tx *gorm.DB, gameName string) (*models.Game, error) {
	var game models.Game
	err := tx.Where("name = ?", gameName).First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &game, nil
}

// applyLeaderboard upserts the account's aggregates under the enclosing
// transaction. TotalBets counts every settlement; winnings and the
// biggest-win mark only move on a win.
func (s *Core) applyLeaderboard(tx *gorm.DB, userID uint, win bool, payout decimal.Decimal) error {
	var entry models.LeaderboardEntry
	err := database.ForUpdate(tx).Where("user_id = ?", userID).First(&entry).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		entry = models.LeaderboardEntry{UserID: userID}
	}

	entry.TotalBets++
	if win {
		entry.TotalWinnings = entry.TotalWinnings.Add(payout)
		if payout.GreaterThan(entry.BiggestWin) {
			entry.BiggestWin = payout
		}
	}

	if err := tx.Save(&entry).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
