// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package identifier derives the URL-safe identifiers that key people,
// authorship lists, and whitelist/blacklist filters.
package identifier

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// umlauts folds German special characters into their ASCII transcriptions.
var umlauts = strings.NewReplacer(
	" ", "-",
	"ö", "oe",
	"ä", "ae",
	"ü", "ue",
	"ß", "sz",
)

// Normalize lower-cases name, replaces spaces with hyphens, transcribes
// umlauts and ß, and drops any remaining whitespace. Normalize is
// idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(name string) string {
	s := cases.Lower(language.German).String(name)
	s = umlauts.Replace(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Set normalizes every name and returns the resulting identifier set.
func Set(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[Normalize(n)] = true
	}
	return set
}
