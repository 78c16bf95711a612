package settlement

import "errors"

var (
	// ErrInvalidBet covers non-positive, unaffordable or out-of-bounds
	// wagers and malformed game parameters. Nothing is written.
	ErrInvalidBet = errors.New("invalid bet")

	// ErrAccountNotFound means the settling account does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrPersistence means the settlement transaction could not commit.
	// All writes were rolled back; the bet is safe to retry.
	ErrPersistence = errors.New("settlement could not be persisted")
)
