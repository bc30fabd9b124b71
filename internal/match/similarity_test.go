package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity_Contract(t *testing.T) {
	t.Run("reflexive", func(t *testing.T) {
		assert.Equal(t, 100, Similarity("Asha Rao", "Asha Rao"))
	})

	t.Run("case folding and trimming", func(t *testing.T) {
		assert.Equal(t, 100, Similarity("  ANNA lee ", "anna Lee"))
	})

	t.Run("empty input scores zero", func(t *testing.T) {
		assert.Equal(t, 0, Similarity("", "anna"))
		assert.Equal(t, 0, Similarity("anna", "   "))
		assert.Equal(t, 0, Similarity("", ""))
	})

	t.Run("symmetric", func(t *testing.T) {
		pairs := [][2]string{
			{"ann", "anna lee"},
			{"joanna patel", "ann"},
			{"kitten", "sitting"},
		}
		for _, p := range pairs {
			assert.Equal(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]), "%q vs %q", p[0], p[1])
		}
	})

	t.Run("bounded", func(t *testing.T) {
		pairs := [][2]string{
			{"a", "zzzzzzzzzzzz"},
			{"marianne cole", "ann"},
			{"x", "y"},
		}
		for _, p := range pairs {
			got := Similarity(p[0], p[1])
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		}
	})
}

func TestSimilarity_KnownRatios(t *testing.T) {
	// Ratio = 100*(la+lb-dist)/(la+lb) with substitution cost 2, rounded.
	assert.Equal(t, 62, Similarity("kitten", "sitting"))
	assert.Equal(t, 55, Similarity("ann", "anna lee"))

	// A single substitution costs 2, so one differing rune out of three
	// scores 67, not the 83 a unit-cost distance would give.
	assert.Equal(t, 67, Similarity("abc", "abd"))
}

func TestSimilarity_Monotonic(t *testing.T) {
	// Closer strings score strictly higher here.
	closer := Similarity("ann", "anna")
	further := Similarity("ann", "marianne cole")
	assert.Greater(t, closer, further)
}
