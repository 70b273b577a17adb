package score

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	calls int
	vecs  [][]float64
	err   error
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.vecs != nil {
		return f.vecs, nil
	}
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = []float64{1, 0, 0}
	}
	return out, nil
}

type fakeJudge struct {
	calls   int
	verdict Verdict
	err     error
}

func (f *fakeJudge) Judge(context.Context, JudgeInput) (Verdict, error) {
	f.calls++
	if f.err != nil {
		return Verdict{}, f.err
	}
	return f.verdict, nil
}

func TestScoreExactMatch(t *testing.T) {
	emb := &fakeEmbedder{}
	jdg := &fakeJudge{}
	e := New(emb, jdg)

	got, err := e.Score(context.Background(), "Bohemian Rhapsody", "Bohemian Rhapsody", "Queen")
	require.NoError(t, err)
	assert.Equal(t, 1000, got)
	// The fast path never touches the external services.
	assert.Zero(t, emb.calls)
	assert.Zero(t, jdg.calls)
}

func TestScoreTypoToleranceStillExact(t *testing.T) {
	emb := &fakeEmbedder{}
	e := New(emb, &fakeJudge{})

	got, err := e.Score(context.Background(), "Bohemiann Rapsody", "Bohemian Rhapsody", "Queen")
	require.NoError(t, err)
	assert.Equal(t, 1000, got)
	assert.Zero(t, emb.calls)
}

func TestScoreArtistOnlyTier(t *testing.T) {
	emb := &fakeEmbedder{}
	jdg := &fakeJudge{}
	e := New(emb, jdg)

	got, err := e.Score(context.Background(), "Queen", "Bohemian Rhapsody", "Queen")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, got, 900)
	assert.LessOrEqual(t, got, 980)
	assert.Zero(t, emb.calls)
	assert.Zero(t, jdg.calls)
}

func TestScoreFastPathsDeterministic(t *testing.T) {
	e := New(&fakeEmbedder{}, &fakeJudge{})
	for i := 0; i < 5; i++ {
		got, err := e.Score(context.Background(), "Queen", "Bohemian Rhapsody", "Queen")
		require.NoError(t, err)
		assert.Equal(t, 911, got)
	}
}

func TestScoreFarMissCapped(t *testing.T) {
	// Orthogonal probe vectors: every similarity is zero. A wildly generous
	// judge cannot lift a far miss over the cap.
	emb := &fakeEmbedder{vecs: [][]float64{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}}
	jdg := &fakeJudge{verdict: Verdict{MatchType: "exact", Score: 999}}
	e := New(emb, jdg)

	got, err := e.Score(context.Background(), "xyz completely unrelated text", "Bohemian Rhapsody", "Queen")
	require.NoError(t, err)
	assert.LessOrEqual(t, got, 200)
	assert.Equal(t, 1, emb.calls)
	assert.Equal(t, 1, jdg.calls)
}

func TestScoreTitleExactWrongArtist(t *testing.T) {
	emb := &fakeEmbedder{}
	jdg := &fakeJudge{verdict: Verdict{MatchType: "correct_title_wrong_artist", Score: 950}}
	e := New(emb, jdg)

	got, err := e.Score(context.Background(), "Bohemian Rhapsody by Freddie", "Bohemian Rhapsody", "Queen")
	require.NoError(t, err)
	// The exact title forces the top override through fusion.
	assert.GreaterOrEqual(t, got, 900)
	assert.LessOrEqual(t, got, 1000)
	assert.Equal(t, 1000, got)
}

func TestScoreJudgeFailureIsAdvisory(t *testing.T) {
	emb := &fakeEmbedder{vecs: [][]float64{
		{1, 0},
		{0.9, 0.1},
		{0.5, 0.5},
		{0.7, 0.3},
	}}
	jdg := &fakeJudge{err: errors.New("judge timeout")}
	e := New(emb, jdg)

	got, err := e.Score(context.Background(), "some half remembered tune", "Bohemian Rhapsody", "Queen")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, got, 0)
	assert.LessOrEqual(t, got, 1000)
	assert.Equal(t, 1, jdg.calls)
}

func TestScoreEmbedderFailureIsHard(t *testing.T) {
	emb := &fakeEmbedder{err: errors.New("similarity service down")}
	e := New(emb, &fakeJudge{})

	_, err := e.Score(context.Background(), "some guess", "Bohemian Rhapsody", "Queen")
	require.Error(t, err)
}

func TestScoreDegenerateInputs(t *testing.T) {
	e := New(&fakeEmbedder{}, &fakeJudge{})
	for _, guess := range []string{"", "   ", "?!...", "a"} {
		got, err := e.Score(context.Background(), guess, "Bohemian Rhapsody", "Queen")
		require.NoError(t, err, "guess %q", guess)
		assert.GreaterOrEqual(t, got, 0, "guess %q", guess)
		assert.LessOrEqual(t, got, 1000, "guess %q", guess)
	}
}
