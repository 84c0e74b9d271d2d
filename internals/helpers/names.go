package helper

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName: NFKC, whitespace runs collapsed to one space, trimmed.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}

// NameKey is the comparison form of a display name: case and diacritics
// folded ("Die Füchse" == "die fuchse").
func NameKey(s string) string {
	s = strings.ToLower(NormalizeName(s))
	var b strings.Builder
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}

// NormalizeEmail trims and lowercases.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
