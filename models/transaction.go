package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TrxTypeDeposit    = "deposit"
	TrxTypeWithdrawal = "withdrawal"
	TrxTypeBet        = "bet"
	TrxTypeWin        = "win"

	TrxStatusCompleted = "completed"
)

// Transaction is an append-only ledger entry. Amount is signed: debits
// (bet, withdrawal) are negative, credits (deposit, win) positive.
type Transaction struct {
	gorm.Model

	UserID    uint            `gorm:"index" json:"user_id"`
	Type      string          `gorm:"size:20" json:"type"`
	Amount    decimal.Decimal `gorm:"type:numeric(18,2)" json:"amount"`
	Status    string          `gorm:"size:20;default:completed" json:"status"`
	Reference string          `gorm:"uniqueIndex;size:64" json:"reference"`
}
