package score

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, cosine([]float64{1, 2, 3}, []float64{2, 4, 6}), 1e-9)
	assert.InDelta(t, 0.0, cosine([]float64{1, 0}, []float64{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, cosine([]float64{1, 0}, []float64{-1, 0}), 1e-9)
	assert.Equal(t, 0.0, cosine(nil, []float64{1}))
	assert.Equal(t, 0.0, cosine([]float64{0, 0}, []float64{1, 1}))
}

func TestSemanticScoreComboDominates(t *testing.T) {
	emb := &fakeEmbedder{vecs: [][]float64{
		{1, 0},
		{1, 0},   // combo identical to the guess
		{0, 1},   // artist orthogonal
		{0.5, 0}, // title aligned but shorter
	}}
	e := New(emb, &fakeJudge{})

	base, simCombo, simArtist, simTitle, err := e.semanticScore(context.Background(), "g", "t", "a", matchOutcome{Verdict: -1, BestTitleDist: 0.2, BestArtistDist: 0.2})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, simCombo, 1e-9)
	assert.InDelta(t, 0.0, simArtist, 1e-9)
	assert.InDelta(t, 1.0, simTitle, 1e-9)
	assert.Equal(t, 850, base)
}

func TestSemanticScoreNegativeSimilarityClipped(t *testing.T) {
	emb := &fakeEmbedder{vecs: [][]float64{
		{1, 0},
		{-1, 0},
		{-1, 0},
		{-1, 0},
	}}
	e := New(emb, &fakeJudge{})

	base, simCombo, _, _, err := e.semanticScore(context.Background(), "g", "t", "a", matchOutcome{Verdict: -1, BestTitleDist: 0.2, BestArtistDist: 0.2})
	require.NoError(t, err)
	assert.Equal(t, 0.0, simCombo)
	assert.Equal(t, 0, base)
}

func TestSemanticScoreExponentSuppressesWeakSignal(t *testing.T) {
	// frac 0.4 raised to 1.25 should land under the linear value.
	frac := 0.4
	want := int(math.Round(850 * math.Pow(frac, 1.25)))
	assert.Less(t, want, int(850*frac))
}

func TestSemanticScoreFarMissGuardrail(t *testing.T) {
	vec := func(x, y float64) []float64 { return []float64{x, y} }
	emb := &fakeEmbedder{vecs: [][]float64{
		vec(1, 0), vec(0.1, 0.995), vec(0.05, 0.999), vec(0.08, 0.997),
	}}
	e := New(emb, &fakeJudge{})

	m := matchOutcome{Verdict: -1, BestTitleDist: 0.9, BestArtistDist: 0.9}
	base, _, _, _, err := e.semanticScore(context.Background(), "g", "t", "a", m)
	require.NoError(t, err)
	assert.LessOrEqual(t, base, 180)
}

func TestSemanticScoreKeepsDeterministicFloor(t *testing.T) {
	emb := &fakeEmbedder{vecs: [][]float64{
		{1, 0}, {0, 1}, {0, 1}, {0, 1},
	}}
	e := New(emb, &fakeJudge{})

	m := matchOutcome{Verdict: -1, BestExact: 995, BestTitleDist: 0.05, BestArtistDist: 0.9}
	base, _, _, _, err := e.semanticScore(context.Background(), "g", "t", "a", m)
	require.NoError(t, err)
	assert.Equal(t, 995, base)
}
