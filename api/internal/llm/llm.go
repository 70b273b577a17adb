// Package llm holds the judge engines and the rubric contract they share.
package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tuneguess/api/internal/score"
)

// Engines selects the judge provider by name, "gemini" being the default.
type Engines struct {
	Gemini score.Judge
	OpenAI score.Judge
}

func (e *Engines) GetJudge(name string) (score.Judge, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "gemini":
		if e.Gemini == nil {
			return nil, errors.New("gemini judge is not configured")
		}
		return e.Gemini, nil
	case "gpt", "openai":
		if e.OpenAI == nil {
			return nil, errors.New("openai judge is not configured")
		}
		return e.OpenAI, nil
	default:
		return nil, fmt.Errorf("unknown judge engine %q; use 'gemini' or 'gpt'", name)
	}
}

// SystemPrompt is the fixed rubric every judge engine transmits. The bands
// mirror the deterministic rules so the judge's opinion reinforces rather
// than contradicts them.
const SystemPrompt = `You are a strict song-guess evaluator for a daily music-guessing game. Follow the rubric exactly.

Rubric (score bands):
- exact song (typos tolerated): 1000
- correct artist, wrong title: 900-980
- same song, wrong artist: 850-930
- similar artist, era or genre: 700-880
- weak cues (right language, vague stylistic link): 400-699
- weak relation only: 200-399
- unrelated: 0-199

Output ONLY valid JSON: {"match_type": "...", "score": <0-1000>, "reasoning": "..."}`

// UserMessage renders the guess, the correct answer and the precomputed
// signals into the judge's user turn.
func UserMessage(in score.JudgeInput) string {
	return fmt.Sprintf(`Correct song:
- title: %q
- artist: %q

User guess (raw): %q

Precomputed signals:
- title_edit_distance_norm: %.3f
- artist_edit_distance_norm: %.3f
- title_exact: %t
- artist_exact: %t
- sim_guess_vs_combo: %.3f
- sim_guess_vs_artist: %.3f
- sim_guess_vs_title: %.3f

Return only the JSON object.`,
		in.Title, in.Artist, in.Guess,
		in.Signals.BestTitleDist, in.Signals.BestArtistDist,
		in.Signals.TitleExact, in.Signals.ArtistExact,
		in.Signals.SimCombo, in.Signals.SimArtist, in.Signals.SimTitle)
}

// ParseVerdict decodes a judge reply, tolerating code fences and out-of-range
// scores. A missing or non-numeric score decodes to 0 rather than an error so
// the engine can keep going.
func ParseVerdict(raw string) (score.Verdict, error) {
	raw = StripCodeFences(raw)
	if raw == "" {
		return score.Verdict{}, errors.New("empty judge reply")
	}
	var v struct {
		MatchType string          `json:"match_type"`
		Score     json.RawMessage `json:"score"`
		Reasoning string          `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return score.Verdict{}, fmt.Errorf("judge reply is not JSON: %w", err)
	}
	out := score.Verdict{MatchType: v.MatchType, Reasoning: v.Reasoning}
	var n float64
	if len(v.Score) > 0 && json.Unmarshal(v.Score, &n) == nil {
		out.Score = int(n)
	}
	if out.Score < 0 {
		out.Score = 0
	}
	if out.Score > score.MaxScore {
		out.Score = score.MaxScore
	}
	return out, nil
}

func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
