package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpretSinglePart(t *testing.T) {
	cands := Interpret("Bohemian Rhapsody")
	require.NotEmpty(t, cands)

	assert.Contains(t, cands, Candidate{Title: "bohemian rhapsody"})
	assert.Contains(t, cands, Candidate{Artist: "bohemian rhapsody"})
}

func TestInterpretByDelimiter(t *testing.T) {
	cands := Interpret("Bohemian Rhapsody by Queen")
	require.NotEmpty(t, cands)

	// "by" gives the conventional title/artist reading first.
	assert.Equal(t, Candidate{Title: "bohemian rhapsody", Artist: "queen"}, cands[0])
	// The whole string stays available as a title-only fallback.
	assert.Contains(t, cands, Candidate{Title: "bohemian rhapsody by queen"})
}

func TestInterpretSeparatorBothOrders(t *testing.T) {
	cands := Interpret("Bohemian Rhapsody - Queen")

	assert.Contains(t, cands, Candidate{Title: "bohemian rhapsody", Artist: "queen"})
	assert.Contains(t, cands, Candidate{Title: "queen", Artist: "bohemian rhapsody"})
}

func TestInterpretMultipleSeparators(t *testing.T) {
	cands := Interpret("a - b - c")

	// Every split point, both orderings.
	assert.Contains(t, cands, Candidate{Title: "a", Artist: "b c"})
	assert.Contains(t, cands, Candidate{Title: "b c", Artist: "a"})
	assert.Contains(t, cands, Candidate{Title: "a b", Artist: "c"})
	assert.Contains(t, cands, Candidate{Title: "c", Artist: "a b"})
}

func TestInterpretDeduplicates(t *testing.T) {
	cands := Interpret("Queen - Queen")
	seen := make(map[Candidate]int)
	for _, c := range cands {
		seen[c]++
		assert.Equal(t, 1, seen[c], "duplicate candidate %+v", c)
	}
}

func TestInterpretNeverEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "?!", "just words"} {
		assert.NotEmpty(t, Interpret(in), "input %q", in)
	}
}

func TestInterpretDeterministic(t *testing.T) {
	a := Interpret("Hotel California - Eagles")
	b := Interpret("Hotel California - Eagles")
	assert.Equal(t, a, b)
}
