package score

import (
	"context"
	"fmt"
	"math"
)

// Embedder turns texts into fixed-dimension vectors, one per input,
// order-preserving. A failure here is a hard error: there is no safe
// zero-fallback for a missing embedding.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

const semanticCeiling = 850

func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// semanticScore embeds the raw guess next to three probes of the correct
// answer ("{title} by {artist}", artist alone, title alone) in one batched
// call, and turns the cosine similarities into a coarse base score in
// [0,850]. Invoked only when the deterministic stage found no verdict.
func (e *Engine) semanticScore(ctx context.Context, guess, title, artist string, m matchOutcome) (int, float64, float64, float64, error) {
	probes := []string{
		guess,
		fmt.Sprintf("%s by %s", title, artist),
		artist,
		title,
	}
	vecs, err := e.embedder.Embed(ctx, probes)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("embed probes: %w", err)
	}
	if len(vecs) < len(probes) {
		return 0, 0, 0, 0, fmt.Errorf("embed probes: got %d vectors for %d inputs", len(vecs), len(probes))
	}

	// Only positive alignment is rewarded.
	simCombo := clamp01(cosine(vecs[0], vecs[1]))
	simArtist := clamp01(cosine(vecs[0], vecs[2]))
	simTitle := clamp01(cosine(vecs[0], vecs[3]))

	// The combo probe captures the full song identity and dominates; the
	// artist/title blend is a fallback. The exponent suppresses weak, noisy
	// similarity instead of letting it accumulate credit.
	frac := math.Max(simCombo, 0.65*simArtist+0.35*simTitle)
	base := int(math.Round(semanticCeiling * math.Pow(frac, 1.25)))

	// Embedding noise must not inflate a guess that every deterministic
	// signal already called wrong.
	if m.BestTitleDist > farMissDist && m.BestArtistDist > farMissDist && frac < farMissSim && base > 180 {
		base = 180
	}

	if m.BestExact > base {
		base = m.BestExact
	}
	return base, simCombo, simArtist, simTitle, nil
}
