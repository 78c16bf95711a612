package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LeaderboardEntry aggregates per-user winnings. TotalBets and
// TotalWinnings only ever grow; BiggestWin is a running maximum.
type LeaderboardEntry struct {
	gorm.Model

	UserID        uint            `gorm:"uniqueIndex" json:"user_id"`
	TotalWinnings decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"total_winnings"`
	TotalBets     int64           `gorm:"default:0" json:"total_bets"`
	BiggestWin    decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"biggest_win"`
}

func (LeaderboardEntry) TableName() string {
	return "leaderboards"
}
