package games

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
)

// ErrEntropy marks a failed read from the system entropy source. Callers
// must treat it as fatal for the request: a wagering outcome is never
// produced from a degraded generator.
var ErrEntropy = errors.New("entropy source unavailable")

// Generator yields unpredictable draws for game outcomes. Implementations
// hold no state between calls and are safe for concurrent use.
type Generator interface {
	// Float returns a uniform draw in [0, 1).
	Float() (float64, error)
	// IntN returns a uniform draw in [0, n) for n > 0.
	IntN(n int) (int, error)
}

// CryptoSource draws from crypto/rand. It is the only Generator used
// outside of tests.
type CryptoSource struct{}

func (CryptoSource) Float() (float64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEntropy, err)
	}
	// Top 53 bits give the full precision of a float64 mantissa.
	return float64(binary.BigEndian.Uint64(b[:])>>11) / (1 << 53), nil
}

func (CryptoSource) IntN(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("IntN bound must be positive, got %d", n)
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEntropy, err)
	}
	return int(v.Int64()), nil
}
