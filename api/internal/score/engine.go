package score

import (
	"context"
	"log"
)

// Engine scores how close a free-text guess is to a (title, artist) answer.
// It holds no mutable state: concurrent Score calls are independent.
type Engine struct {
	embedder Embedder
	judge    Judge
}

func New(embedder Embedder, judge Judge) *Engine {
	return &Engine{embedder: embedder, judge: judge}
}

// Score resolves a guess to a confidence in [0,1000]. Malformed guess text
// never errors; it just drifts toward 0. The only hard failure is the
// embedding call, which has no safe fallback.
func (e *Engine) Score(ctx context.Context, guess, correctTitle, correctArtist string) (int, error) {
	nTitle := Normalize(correctTitle)
	nArtist := Normalize(correctArtist)

	cands := Interpret(guess)
	m := match(cands, nTitle, nArtist)
	if m.Verdict >= 0 {
		return m.Verdict, nil
	}

	base, simCombo, simArtist, simTitle, err := e.semanticScore(ctx, guess, correctTitle, correctArtist, m)
	if err != nil {
		return 0, err
	}

	signals := Signals{
		BestTitleDist:  m.BestTitleDist,
		BestArtistDist: m.BestArtistDist,
		TitleExact:     m.TitleExact,
		ArtistExact:    m.ArtistExact,
		SimCombo:       simCombo,
		SimArtist:      simArtist,
		SimTitle:       simTitle,
	}

	judgeScore := 0
	verdict, err := e.judge.Judge(ctx, JudgeInput{
		Guess:   guess,
		Title:   correctTitle,
		Artist:  correctArtist,
		Signals: signals,
	})
	if err != nil {
		// Advisory signal only: fusion tolerates a missing judge.
		log.Printf("judge unavailable, scoring without it: %v", err)
	} else {
		judgeScore = clampInt(verdict.Score, 0, MaxScore)
	}

	return fuse(base, judgeScore, signals), nil
}
