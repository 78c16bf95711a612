package services

import (
	"context"
	"encoding/json"
	"time"

	"megaodds/cache"
	"megaodds/database"

	"github.com/shopspring/decimal"
)

const (
	leaderboardCacheKey = "leaderboard:top"
	leaderboardCacheTTL = 30 * time.Second
)

type LeaderboardRow struct {
	Email         string          `json:"email"`
	TotalWinnings decimal.Decimal `json:"total_winnings"`
	TotalBets     int64           `json:"total_bets"`
	BiggestWin    decimal.Decimal `json:"biggest_win"`
}

func maskEmail(email string) string {
	if len(email) <= 3 {
		return email + "***"
	}
	return email[:3] + "***"
}

// TopLeaderboard returns the ten accounts with the highest cumulative
// winnings, with emails masked for public display.
func TopLeaderboard(ctx context.Context) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow
	err := database.DB.WithContext(ctx).Table("leaderboards").
		Select("users.email, leaderboards.total_winnings, leaderboards.total_bets, leaderboards.biggest_win").
		Joins("JOIN users ON users.id = leaderboards.user_id").
		Where("leaderboards.deleted_at IS NULL").
		Order("leaderboards.total_winnings DESC").
		Limit(10).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Email = maskEmail(rows[i].Email)
	}
	return rows, nil
}

// CachedTopLeaderboard serves the leaderboard from redis when available,
// falling back to the database and refilling the cache on a miss.
func CachedTopLeaderboard(ctx context.Context) ([]LeaderboardRow, error) {
	if cache.Client != nil {
		if payload, err := cache.Client.Get(ctx, leaderboardCacheKey).Bytes(); err == nil {
			var rows []LeaderboardRow
			if json.Unmarshal(payload, &rows) == nil {
				return rows, nil
			}
		}
	}

	rows, err := TopLeaderboard(ctx)
	if err != nil {
		return nil, err
	}
	storeLeaderboard(ctx, rows)
	return rows, nil
}

// RefreshLeaderboardCache recomputes the leaderboard and replaces the
// cached copy. No-op without redis.
func RefreshLeaderboardCache(ctx context.Context) error {
	if cache.Client == nil {
		return nil
	}
	rows, err := TopLeaderboard(ctx)
	if err != nil {
		return err
	}
	storeLeaderboard(ctx, rows)
	return nil
}

func storeLeaderboard(ctx context.Context, rows []LeaderboardRow) {
	if cache.Client == nil {
		return
	}
	if payload, err := json.Marshal(rows); err == nil {
		cache.Client.Set(ctx, leaderboardCacheKey, payload, leaderboardCacheTTL)
	}
}
