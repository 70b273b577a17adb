package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tuneguess/api/internal/score"
)

func TestParseVerdict(t *testing.T) {
	v, err := ParseVerdict(`{"match_type":"exact","score":1000,"reasoning":"same song"}`)
	require.NoError(t, err)
	assert.Equal(t, "exact", v.MatchType)
	assert.Equal(t, 1000, v.Score)
	assert.Equal(t, "same song", v.Reasoning)
}

func TestParseVerdictCodeFences(t *testing.T) {
	v, err := ParseVerdict("```json\n{\"match_type\":\"weak\",\"score\":300,\"reasoning\":\"x\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, 300, v.Score)
}

func TestParseVerdictClampsOutOfRange(t *testing.T) {
	v, err := ParseVerdict(`{"match_type":"exact","score":5000,"reasoning":""}`)
	require.NoError(t, err)
	assert.Equal(t, 1000, v.Score)

	v, err = ParseVerdict(`{"match_type":"unrelated","score":-3,"reasoning":""}`)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Score)
}

func TestParseVerdictMissingScoreIsZero(t *testing.T) {
	v, err := ParseVerdict(`{"match_type":"weak","reasoning":"no number"}`)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Score)
}

func TestParseVerdictNonNumericScoreIsZero(t *testing.T) {
	v, err := ParseVerdict(`{"match_type":"weak","score":"high","reasoning":""}`)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Score)
}

func TestParseVerdictRejectsGarbage(t *testing.T) {
	_, err := ParseVerdict("not json at all")
	require.Error(t, err)
	_, err = ParseVerdict("")
	require.Error(t, err)
}

func TestUserMessageCarriesSignals(t *testing.T) {
	msg := UserMessage(score.JudgeInput{
		Guess:  "queen",
		Title:  "Bohemian Rhapsody",
		Artist: "Queen",
		Signals: score.Signals{
			BestTitleDist:  0.818,
			BestArtistDist: 0.0,
			ArtistExact:    true,
			SimCombo:       0.42,
		},
	})
	assert.True(t, strings.Contains(msg, `"Bohemian Rhapsody"`))
	assert.True(t, strings.Contains(msg, "artist_exact: true"))
	assert.True(t, strings.Contains(msg, "0.818"))
	assert.True(t, strings.Contains(msg, "0.420"))
}

func TestGetJudge(t *testing.T) {
	e := &Engines{Gemini: nil, OpenAI: nil}
	_, err := e.GetJudge("gemini")
	require.Error(t, err)
	_, err = e.GetJudge("something-else")
	require.Error(t, err)
}
