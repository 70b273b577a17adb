package score

import (
	"math"
	"strings"

	"github.com/hbollon/go-edlib"
)

// matchOutcome is what the deterministic stage hands downstream: either an
// immediate verdict (Verdict >= 0) or the best-case evidence for the
// semantic and judgment stages.
type matchOutcome struct {
	Verdict   int // final score when >= 0, no short-circuit when -1
	BestExact int // floor carried into the semantic stage

	BestTitleDist  float64
	BestArtistDist float64
	TitleExact     bool
	ArtistExact    bool
}

// editDistance is the normalized edit distance in [0,1], 0 identical.
// LCS edit distance over the combined length keeps single-letter typos with
// an adjacent transposition under the exact threshold and tops out at
// exactly 1 for disjoint strings. Distance against an empty string on
// either side is 1.0 by definition.
func editDistance(a, b string) float64 {
	if a == "" || b == "" {
		return 1.0
	}
	n := len([]rune(a)) + len([]rune(b))
	d := float64(edlib.LCSEditDistance(a, b)) / float64(n)
	return clamp01(d)
}

// tokenOverlap is |A∩B| / max(|A|,|B|) over whitespace-delimited word sets,
// 0 when either side has no tokens.
func tokenOverlap(a, b string) float64 {
	as := strings.Fields(a)
	bs := strings.Fields(b)
	if len(as) == 0 || len(bs) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(as))
	for _, t := range as {
		set[t] = struct{}{}
	}
	inter := 0
	seen := make(map[string]struct{}, len(bs))
	for _, t := range bs {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := set[t]; ok {
			inter++
		}
	}
	larger := len(set)
	if len(seen) > larger {
		larger = len(seen)
	}
	return float64(inter) / float64(larger)
}

// match runs the edit-distance and token-overlap fast paths over every
// candidate interpretation against the normalized correct answer.
func match(cands []Candidate, nTitle, nArtist string) matchOutcome {
	out := matchOutcome{
		Verdict:        -1,
		BestTitleDist:  1.0,
		BestArtistDist: 1.0,
	}

	for _, c := range cands {
		tdist := editDistance(c.Title, nTitle)
		adist := editDistance(c.Artist, nArtist)
		tover := tokenOverlap(c.Title, nTitle)
		aover := tokenOverlap(c.Artist, nArtist)

		if tdist < out.BestTitleDist {
			out.BestTitleDist = tdist
		}
		if adist < out.BestArtistDist {
			out.BestArtistDist = adist
		}

		titleExact := tdist <= titleExactDist || tover >= titleOverlapMin
		artistExact := adist <= artistExactDist || aover >= artistOverlapMin
		if titleExact {
			out.TitleExact = true
		}
		if artistExact {
			out.ArtistExact = true
		}

		if titleExact {
			// Artist matching, absent, or close enough: the song is named.
			if adist <= artistCloseDist || c.Artist == "" || aover >= artistOverlapMin {
				out.Verdict = MaxScore
				return out
			}
			// Title right, artist clearly wrong. Keep scanning: another
			// interpretation of the same text may pair the artist correctly.
			if out.BestExact < titleOnlyFloor {
				out.BestExact = titleOnlyFloor
			}
		}
	}

	// Only the artist was ever right. That lands in a fixed
	// high-confidence-but-not-perfect tier no matter what the semantic or
	// judgment stages would have said.
	if out.ArtistExact && !out.TitleExact {
		v := artistOnlyBase + int(math.Round(60*(1-out.BestTitleDist)))
		out.Verdict = clampInt(v, artistOnlyBase, artistOnlyCeiling)
	}

	return out
}
