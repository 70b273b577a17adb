package score

import "math"

// fuse blends the semantic base with the judge's opinion and then applies the
// business-rule overrides, later rules winning. The result is always in
// [0,1000]; callers never need to clamp.
func fuse(base, judge int, s Signals) int {
	v := int(math.Round(0.6*float64(base) + 0.4*float64(judge)))

	if s.TitleExact {
		v = MaxScore
	}
	if s.ArtistExact && !s.TitleExact {
		v = clampInt(v, artistOnlyBase, artistOnlyCeiling)
	}
	maxSim := math.Max(s.SimCombo, math.Max(s.SimArtist, s.SimTitle))
	if s.BestTitleDist > farMissDist && s.BestArtistDist > farMissDist && maxSim < farMissSim && v > 200 {
		v = 200
	}

	return clampInt(v, 0, MaxScore)
}
