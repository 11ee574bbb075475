// Package slug builds URL and identifier slugs from free text.
package slug

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

const MaxLength = 200

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9]+`)
	validSlug = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Make converts s into a lowercase, hyphen separated ASCII slug.
// Non-Latin text is transliterated first ("지포스 RTX" -> "jiposeu-rtx").
func Make(s string) string {
	return build(s, "-")
}

// Key is Make with underscores, for identifiers such as spec field keys
func Key(s string) string {
	return build(s, "_")
}

// IsValid reports whether s is already a canonical slug
func IsValid(s string) bool {
	return len(s) <= MaxLength && validSlug.MatchString(s)
}

func build(s, sep string) string {
	out := strings.ToLower(unidecode.Unidecode(s))
	out = nonSlug.ReplaceAllString(out, sep)
	out = strings.Trim(out, sep)
	if len(out) > MaxLength {
		out = strings.TrimRight(out[:MaxLength], sep)
	}
	return out
}
