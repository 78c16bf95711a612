package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCryptoSourceFloatRange(t *testing.T) {
	src := CryptoSource{}
	for i := 0; i < 1000; i++ {
		f, err := src.Float()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}

func TestCryptoSourceIntNRange(t *testing.T) {
	src := CryptoSource{}
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		n, err := src.IntN(6)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 6)
		seen[n] = true
	}
	// 1000 draws over 6 buckets: every value shows up.
	assert.Len(t, seen, 6)
}

func TestCryptoSourceIntNRejectsBadBound(t *testing.T) {
	src := CryptoSource{}
	_, err := src.IntN(0)
	assert.Error(t, err)
	_, err = src.IntN(-3)
	assert.Error(t, err)

	n, err := src.IntN(1)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
