package games

import (
	"errors"
	"fmt"
)

var ErrInvalidParams = errors.New("invalid bet parameters")

// Params carries the caller-supplied inputs a game rule may consume.
// Zero values mean "not provided"; each rule applies its own defaults,
// matching what the clients send per game.
type Params struct {
	Choice       string  `json:"choice"`        // Coin Flip: heads | tails
	BetType      string  `json:"type"`          // Roulette: red | black | even | odd
	CashOut      float64 `json:"cash_out"`      // Aviator: chosen cash-out multiplier
	Mines        int     `json:"mines"`         // Mines: mine count on the board
	RevealedSafe int     `json:"revealed_safe"` // Mines: safe tiles revealed before cash-out
}

// Validate rejects malformed parameters before any draw happens, so a
// bad request can never reach the settlement writes.
func (p Params) Validate(gameName string) error {
	switch gameName {
	case GameCoinFlip:
		switch p.Choice {
		case "", "heads", "tails":
		default:
			return fmt.Errorf("%w: coin flip choice must be heads or tails, got %q", ErrInvalidParams, p.Choice)
		}
	case GameRoulette:
		switch p.BetType {
		case "", "red", "black", "even", "odd":
		default:
			return fmt.Errorf("%w: roulette bet type must be red, black, even or odd, got %q", ErrInvalidParams, p.BetType)
		}
	case GameAviator:
		if p.CashOut < 0 {
			return fmt.Errorf("%w: aviator cash-out must not be negative, got %v", ErrInvalidParams, p.CashOut)
		}
	case GameMines:
		if p.Mines < 0 || p.Mines > 24 {
			return fmt.Errorf("%w: mines count must be between 0 and 24, got %d", ErrInvalidParams, p.Mines)
		}
		if p.RevealedSafe < 0 || p.RevealedSafe > 24 {
			return fmt.Errorf("%w: revealed safe tiles must be between 0 and 24, got %d", ErrInvalidParams, p.RevealedSafe)
		}
	}
	return nil
}
