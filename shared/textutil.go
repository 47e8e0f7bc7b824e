package shared

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// RepairEncoding fixes common mojibake in portal text (UTF-8 content that
// was read as Latin-1 somewhere upstream). Detection is heuristic: the
// damage always leaves "Ã" or "Â" sequences behind. Anything else passes
// through unchanged, so the repair is safe to apply to every field.
func RepairEncoding(s string) string {
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "Ã") && !strings.Contains(s, "Â") {
		return s
	}

	// Undo the bad decode: map each rune back to its Latin-1 byte, then
	// read the byte sequence as UTF-8 again.
	encoded, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil || !utf8.ValidString(encoded) {
		// Runes outside Latin-1, or the bytes aren't UTF-8 after all:
		// not the kind of mojibake we repair.
		return s
	}
	return encoded
}

// NormalizeWhitespace collapses runs of whitespace to single spaces and
// trims the result.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// Deref returns the pointed-to string or "" for nil, after encoding repair.
// Used when lifting optional portal fields into the normalization pipeline.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return RepairEncoding(*s)
}
