package catalog

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizePhone reduces a raw phone string to its ASCII digit sequence:
// "+971 50 123-4567" becomes "971501234567", with every separator, prefix
// symbol and letter removed.
//
// The input is NFC-normalized first so composed and decomposed forms of the
// same text cannot produce different keys. Non-ASCII digits are dropped,
// not transliterated; the directory key space is ASCII digits only.
//
// Idempotent: NormalizePhone(NormalizePhone(s)) == NormalizePhone(s).
func NormalizePhone(raw string) string {
	s := norm.NFC.String(raw)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
