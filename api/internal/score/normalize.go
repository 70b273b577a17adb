package score

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	bracketRe = regexp.MustCompile(`\(.*?\)|\[.*?\]`)
	// Production annotations that players routinely omit: removing them on both
	// sides keeps "Hotel California (Live)" and "hotel california" comparable.
	stopwordRe = regexp.MustCompile(`\b(remaster(?:ed)?|live|acoustic|feat\.?|ft\.?|version|edit|mix|rmx)\b`)
	punctRe    = regexp.MustCompile(`[^a-z0-9\s]`)
	spaceRe    = regexp.MustCompile(`\s+`)

	// NFKD decomposition, then drop the combining marks. "Beyoncé" -> "beyonce".
	accentFolder = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Normalize canonicalizes free text for comparison. The step order matters:
// brackets go before the stopword pass so the stopwords inside parentheticals
// disappear with the whole span, and punctuation is collapsed last so the
// word-boundary regexes above still see dots in "feat." and "ft.".
func Normalize(text string) string {
	s, _, err := transform.String(accentFolder, text)
	if err != nil {
		s = text
	}
	s = strings.ToLower(s)
	s = bracketRe.ReplaceAllString(s, " ")
	s = stopwordRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "&", " and ")
	s = punctRe.ReplaceAllString(s, " ")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
