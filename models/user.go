package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	Email        string          `gorm:"uniqueIndex;size:120" json:"email"`
	PasswordHash string          `gorm:"size:128" json:"-"`
	Balance      decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"balance"`
	IsAdmin      bool            `gorm:"default:false" json:"is_admin"`

	Bets         []Bet         `gorm:"foreignKey:UserID"`
	Transactions []Transaction `gorm:"foreignKey:UserID"`
}
