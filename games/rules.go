package games

import (
	"github.com/shopspring/decimal"
)

const (
	GameDiceRoll = "Dice Roll"
	GameCoinFlip = "Coin Flip"
	GameRoulette = "Roulette"
	GameAviator  = "Aviator"
	GamePlinko   = "Plinko"
	GameMines    = "Mines"
)

// Outcome is the result of one rule evaluation. Multiplier is the payout
// factor applied to the wager on a win; Detail is the game-specific data
// recorded on the bet and echoed to the client.
type Outcome struct {
	Win        bool
	Multiplier decimal.Decimal
	Detail     map[string]any
}

var (
	zero = decimal.Zero
	one  = decimal.NewFromInt(1)
	two  = decimal.NewFromInt(2)
)

// European single-zero wheel colors. Zero belongs to neither set and is
// also excluded from the even-bet win set.
var rouletteRed = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

var rouletteBlack = map[int]bool{
	2: true, 4: true, 6: true, 8: true, 10: true, 11: true,
	13: true, 15: true, 17: true, 20: true, 22: true, 24: true,
	26: true, 28: true, 29: true, 31: true, 33: true, 35: true,
}

var plinkoMultipliers = []decimal.Decimal{
	decimal.RequireFromString("0.2"),
	decimal.RequireFromString("0.5"),
	decimal.RequireFromString("1.0"),
	decimal.RequireFromString("1.5"),
	decimal.RequireFromString("2.0"),
	decimal.RequireFromString("3.0"),
	decimal.RequireFromString("5.0"),
	decimal.RequireFromString("3.0"),
	decimal.RequireFromString("2.0"),
	decimal.RequireFromString("1.5"),
	decimal.RequireFromString("1.0"),
	decimal.RequireFromString("0.5"),
	decimal.RequireFromString("0.2"),
}

var minesStep = decimal.RequireFromString("0.3")

// Evaluate resolves one bet for the named game. Unknown game names settle
// with the default 50/50 double-or-nothing rule rather than erroring.
// The only error sources are parameter validation and the generator.
func Evaluate(gen Generator, gameName string, p Params) (Outcome, error) {
	if err := p.Validate(gameName); err != nil {
		return Outcome{}, err
	}

	switch gameName {
	case GameDiceRoll:
		return evaluateDiceRoll(gen)
	case GameCoinFlip:
		return evaluateCoinFlip(gen, p)
	case GameRoulette:
		return evaluateRoulette(gen, p)
	case GameAviator:
		return evaluateAviator(gen, p)
	case GamePlinko:
		return evaluatePlinko(gen)
	case GameMines:
		return evaluateMines(p)
	default:
		return evaluateDefault(gen)
	}
}

func evaluateDiceRoll(gen Generator) (Outcome, error) {
	n, err := gen.IntN(6)
	if err != nil {
		return Outcome{}, err
	}
	roll := n + 1
	win := roll >= 4
	multiplier := zero
	if win {
		multiplier = two
	}
	return Outcome{
		Win:        win,
		Multiplier: multiplier,
		Detail:     map[string]any{"roll": roll},
	}, nil
}

func evaluateCoinFlip(gen Generator, p Params) (Outcome, error) {
	f, err := gen.Float()
	if err != nil {
		return Outcome{}, err
	}
	result := "tails"
	if f < 0.5 {
		result = "heads"
	}
	choice := p.Choice
	if choice == "" {
		choice = "heads"
	}
	win := result == choice
	multiplier := zero
	if win {
		multiplier = one
	}
	return Outcome{
		Win:        win,
		Multiplier: multiplier,
		Detail:     map[string]any{"result": result, "choice": choice},
	}, nil
}

func evaluateRoulette(gen Generator, p Params) (Outcome, error) {
	number, err := gen.IntN(37)
	if err != nil {
		return Outcome{}, err
	}
	betType := p.BetType
	if betType == "" {
		betType = "red"
	}

	var win bool
	switch betType {
	case "red":
		win = rouletteRed[number]
	case "black":
		win = rouletteBlack[number]
	case "even":
		win = number > 0 && number%2 == 0
	case "odd":
		win = number%2 == 1
	}

	multiplier := zero
	if win {
		multiplier = two
	}
	return Outcome{
		Win:        win,
		Multiplier: multiplier,
		Detail:     map[string]any{"number": number, "bet_type": betType},
	}, nil
}

func evaluateAviator(gen Generator, p Params) (Outcome, error) {
	f, err := gen.Float()
	if err != nil {
		return Outcome{}, err
	}
	crashPoint := 1.0 + f*10
	cashOut := p.CashOut
	if cashOut == 0 {
		cashOut = 1.0
	}
	win := cashOut < crashPoint
	multiplier := zero
	if win {
		multiplier = decimal.NewFromFloat(cashOut).Round(2)
	}
	return Outcome{
		Win:        win,
		Multiplier: multiplier,
		Detail:     map[string]any{"crash_point": crashPoint, "cash_out": cashOut},
	}, nil
}

func evaluatePlinko(gen Generator) (Outcome, error) {
	slot, err := gen.IntN(len(plinkoMultipliers))
	if err != nil {
		return Outcome{}, err
	}
	multiplier := plinkoMultipliers[slot]
	win := multiplier.GreaterThanOrEqual(one)
	return Outcome{
		Win:        win,
		Multiplier: multiplier,
		Detail:     map[string]any{"slot": slot, "multiplier": multiplier.InexactFloat64()},
	}, nil
}

// Mines settles the cash-out of a finished round: the board state arrives
// with the bet, so every settlement is a win at 1.0 + 0.3 per revealed
// safe tile. Hitting a mine never reaches settlement.
func evaluateMines(p Params) (Outcome, error) {
	mines := p.Mines
	if mines == 0 {
		mines = 3
	}
	multiplier := one.Add(minesStep.Mul(decimal.NewFromInt(int64(p.RevealedSafe))))
	return Outcome{
		Win:        true,
		Multiplier: multiplier,
		Detail:     map[string]any{"mines": mines, "safe_tiles": p.RevealedSafe},
	}, nil
}

func evaluateDefault(gen Generator) (Outcome, error) {
	f, err := gen.Float()
	if err != nil {
		return Outcome{}, err
	}
	win := f > 0.5
	multiplier := zero
	if win {
		multiplier = two
	}
	return Outcome{
		Win:        win,
		Multiplier: multiplier,
		Detail:     map[string]any{},
	}, nil
}
