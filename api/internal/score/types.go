package score

// Request carries one guess against the correct answer for one scoring call.
// Inputs are raw user/catalog text; normalization happens inside the engine.
type Request struct {
	Guess         string `json:"guess"`
	CorrectTitle  string `json:"correct_title"`
	CorrectArtist string `json:"correct_artist"`
}

// Signals is the full evidence set computed once per request and handed
// read-only to both the base-score heuristic and the judge. Distances and
// similarities are already clamped to [0,1].
type Signals struct {
	BestTitleDist  float64 `json:"best_title_edit_distance"`
	BestArtistDist float64 `json:"best_artist_edit_distance"`
	TitleExact     bool    `json:"title_exact"`
	ArtistExact    bool    `json:"artist_exact"`
	SimCombo       float64 `json:"sim_guess_vs_combo"`
	SimArtist      float64 `json:"sim_guess_vs_artist"`
	SimTitle       float64 `json:"sim_guess_vs_title"`
}

const (
	// The whole scale: 0 = unrelated, 1000 = the exact song.
	MaxScore = 1000

	titleExactDist    = 0.08
	artistExactDist   = 0.08
	titleOverlapMin   = 0.95
	artistOverlapMin  = 0.90
	artistCloseDist   = 0.12
	farMissDist       = 0.35
	farMissSim        = 0.12
	titleOnlyFloor    = 995
	artistOnlyBase    = 900
	artistOnlyCeiling = 980
)

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
