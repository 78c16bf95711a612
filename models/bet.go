package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	BetResultWin  = "win"
	BetResultLoss = "loss"
)

// Bet is a settlement receipt. Rows are created inside the settlement
// transaction and never updated afterwards.
type Bet struct {
	gorm.Model

	UserID     uint            `gorm:"index" json:"user_id"`
	GameID     uint            `gorm:"index" json:"game_id"`
	Amount     decimal.Decimal `gorm:"type:numeric(18,2)" json:"amount"`
	Multiplier decimal.Decimal `gorm:"type:numeric(10,2);default:1" json:"multiplier"`
	Result     string          `gorm:"size:20" json:"result"`
	Payout     decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"payout"`
	GameData   datatypes.JSON  `json:"game_data"`
}
