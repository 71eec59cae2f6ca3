package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"exact", "apple", "apple", 1},
		{"empty query", "", "apple", 0},
		{"empty candidate", "apple", "", 0},
		{"single deletion", "aple", "apple", 0.8},
		{"transposition", "appel", "apple", 0.8},
		{"unrelated", "xyz123", "apple", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSimilarityPrefix(t *testing.T) {
	// "app" covers 3 of 5 runes of "apple"; the prefix score (0.9 * 3/5)
	// and edit score (1 - 2/5) compete and the better one wins.
	assert.InDelta(t, 0.6, Similarity("app", "apple"), 1e-9)

	// For very short prefixes of long terms the edit score takes over.
	assert.InDelta(t, 0.1, Similarity("c", "comparable"), 1e-9)

	// Symmetric: candidate being a prefix of the query scores the same.
	assert.InDelta(t, Similarity("app", "apple"), Similarity("apple", "app"), 1e-9)
}

func TestSimilarityTransposition(t *testing.T) {
	// OSA counts an adjacent swap as one operation, not two.
	swap := Similarity("ab", "ba")
	assert.InDelta(t, 0.5, swap, 1e-9)
}

func TestRelevance(t *testing.T) {
	assert.InDelta(t, 1, Relevance([]string{"apple"}, []string{"apple", "pie"}), 1e-9)
	assert.InDelta(t, 0.8, Relevance([]string{"aple"}, []string{"apple", "pie"}), 1e-9)

	// Every query term contributes; a dead term drags the mean down.
	both := Relevance([]string{"apple", "pie"}, []string{"apple", "pie"})
	one := Relevance([]string{"apple", "zzzzzz"}, []string{"apple", "pie"})
	assert.InDelta(t, 1, both, 1e-9)
	assert.Less(t, one, both)

	assert.Zero(t, Relevance(nil, []string{"apple"}))
	assert.Zero(t, Relevance([]string{"apple"}, nil))
}

func TestMatch(t *testing.T) {
	ok, score := Match([]string{"apple"}, []string{"apple", "pie"}, DefaultThreshold)
	assert.True(t, ok)
	assert.InDelta(t, 1, score, 1e-9)

	ok, score = Match([]string{"xyz123"}, []string{"apple", "pie"}, DefaultThreshold)
	assert.False(t, ok)
	assert.InDelta(t, 0, score, 1e-9)

	// threshold <= 0 falls back to the default rather than matching everything
	ok, _ = Match([]string{"xyz123"}, []string{"apple"}, 0)
	assert.False(t, ok)
}
