package project

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonWord = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// ValidateName turns a candidate repository name into a slug containing only
// [a-z0-9_-]. Accented characters fold to their ASCII base, anything else
// non-word becomes a hyphen separator. An empty result means the candidate
// had no usable characters.
func ValidateName(name string) string {
	// NFKD splits accented runes into base + combining marks, which are then
	// dropped together with everything still outside ASCII.
	fold := transform.Chain(
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)

	ascii, _, err := transform.String(fold, name)
	if err != nil {
		ascii = name
	}

	spaced := nonWord.ReplaceAllString(ascii, " ")

	return strings.ToLower(strings.Join(strings.Fields(spaced), "-"))
}
