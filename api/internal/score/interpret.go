package score

import (
	"regexp"
	"strings"
)

// Candidate is one hypothesis for how free text splits into a (title, artist)
// pair. Either side may be empty.
type Candidate struct {
	Title  string
	Artist string
}

// Separator runs survive only a partial normalization, so splitting happens on
// the folded-but-unpunctuated text and each fragment is normalized afterwards.
var sepRe = regexp.MustCompile(`[-–—|:/]+`)

// Interpret enumerates plausible (title, artist) decompositions of a guess.
// Free text carries no reliable separator semantics, so every hypothesis is
// kept and the matcher gets to evaluate them all: "Title - Artist" and
// "Artist - Title" conventions both come out, "by" is tried as a delimiter,
// and the whole string is always included as a title-only fallback. The
// result is finite, non-empty and deduplicated in generation order.
func Interpret(guess string) []Candidate {
	var out []Candidate

	whole := Normalize(guess)

	if before, after, ok := strings.Cut(whole, " by "); ok {
		out = append(out, Candidate{Title: strings.TrimSpace(before), Artist: strings.TrimSpace(after)})
	}

	parts := splitSeparators(guess)
	if len(parts) == 1 {
		out = append(out,
			Candidate{Title: parts[0]},
			Candidate{Artist: parts[0]},
		)
	} else {
		for i := 0; i < len(parts)-1; i++ {
			left := strings.Join(parts[:i+1], " ")
			right := strings.Join(parts[i+1:], " ")
			out = append(out,
				Candidate{Title: left, Artist: right},
				Candidate{Title: right, Artist: left},
			)
		}
	}

	out = append(out, Candidate{Title: whole})

	return dedupe(out)
}

func splitSeparators(guess string) []string {
	var parts []string
	for _, p := range sepRe.Split(guess, -1) {
		if n := Normalize(p); n != "" {
			parts = append(parts, n)
		}
	}
	if len(parts) == 0 {
		parts = append(parts, Normalize(guess))
	}
	return parts
}

func dedupe(cands []Candidate) []Candidate {
	seen := make(map[Candidate]struct{}, len(cands))
	out := cands[:0]
	for _, c := range cands {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
