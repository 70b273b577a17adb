package score

import "context"

// JudgeInput is everything the external judge gets to see: the raw guess,
// the correct answer, and the precomputed evidence.
type JudgeInput struct {
	Guess   string
	Title   string
	Artist  string
	Signals Signals
}

// Verdict is the judge's structured opinion. It arrives from an external
// service and is untrusted until bounds-checked.
type Verdict struct {
	MatchType string `json:"match_type"`
	Score     int    `json:"score"`
	Reasoning string `json:"reasoning"`
}

// Judge consults an external natural-language judgment service with a fixed
// rubric. The judge is advisory: callers substitute a zero verdict on any
// failure and keep going.
type Judge interface {
	Judge(ctx context.Context, in JudgeInput) (Verdict, error)
}
