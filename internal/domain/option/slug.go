// Where: internal/domain/option/slug.go
// What: Slug normalization for option labels.
// Why: Deduplication and backend keys depend on stable, deterministic slugs.
package option

import (
	"strings"
	"unicode"
)

var separatorReplacer = strings.NewReplacer(" ", "_", "-", "_", ".", "_", "/", "_")

// Slugify turns free text into a lower-case, hyphen-delimited token.
// Example: Slugify("Rock & Roll / 90's") returns "rock-roll-90s".
func Slugify(text string) string {
	s := strings.ToLower(text)
	s = separatorReplacer.Replace(s)
	s = strings.Map(func(r rune) rune {
		if isWordRune(r) {
			return r
		}
		return -1
	}, s)
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, " ", "-")
}

// isWordRune matches letters, numbers, and underscore in the Unicode sense.
// Combining marks, punctuation, symbols, and whitespace are not word runes.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
