package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeTag trims and uppercases a make/model/year value before it
// enters a contact's tag sets. Uppercasing goes through x/text so Cyrillic
// and other non-ASCII input folds correctly, not just [a-z].
func NormalizeTag(s string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(s))
}

// AppendTag adds the normalized form of raw to the set, preserving
// insertion order. Already-present values are not duplicated; empty
// values are ignored.
func AppendTag(set []string, raw string) []string {
	tag := NormalizeTag(raw)
	if tag == "" {
		return set
	}
	for _, existing := range set {
		if existing == tag {
			return set
		}
	}
	return append(set, tag)
}
