package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldAccents lower-cases s and strips diacritics, so "Parque Rodó" and
// "parque rodo" compare equal. ñ is folded to n as well.
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// CollapseSpaces trims s and replaces runs of whitespace with one space
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// AliasMatch reports the canonical name whose alias list contains term.
// Both sides are compared accent-folded; the first table entry wins.
func AliasMatch(term string, table []Alias) (string, bool) {
	folded := CollapseSpaces(FoldAccents(term))
	if folded == "" {
		return "", false
	}
	for _, entry := range table {
		for _, a := range entry.Aliases {
			if folded == FoldAccents(a) {
				return entry.Canonical, true
			}
		}
	}
	return "", false
}

// Alias maps spelling variants to one canonical name
type Alias struct {
	Canonical string
	Aliases   []string
}
