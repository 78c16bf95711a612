package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Game struct {
	gorm.Model

	Name     string          `gorm:"uniqueIndex;size:50" json:"name"`
	IsActive bool            `gorm:"default:true" json:"is_active"`
	MinBet   decimal.Decimal `gorm:"type:numeric(18,2);default:1" json:"min_bet"`
	MaxBet   decimal.Decimal `gorm:"type:numeric(18,2);default:10000" json:"max_bet"`

	Bets []Bet `gorm:"foreignKey:GameID"`
}
