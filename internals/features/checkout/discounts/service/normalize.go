package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeCode canonicalizes a voucher the way customers paste it:
// NFKC, typographic dashes folded to '-', every whitespace rune dropped.
func NormalizeCode(raw string) string {
	s := norm.NFKC.String(raw)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			continue
		case isDashVariant(r):
			b.WriteByte('-')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isDashVariant(r rune) bool {
	switch {
	case r >= '\u2010' && r <= '\u2015':
		return true
	case r == '\u2212', r == '\ufe58', r == '\ufe63', r == '\uff0d':
		return true
	}
	return false
}
