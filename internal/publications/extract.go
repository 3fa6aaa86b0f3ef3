// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publications

import (
	"regexp"
	"strings"
)

// Only the export's literal <br> and <br/> breaks and generic angle-bracket
// tags are handled here; none of these helpers is an HTML parser.
var (
	brTagRegex      = regexp.MustCompile(`<br/?>`)
	htmlTagRegex    = regexp.MustCompile(`<[^<]+?>`)
	multiSpaceRegex = regexp.MustCompile(` {2,}`)

	// venueRegex captures the citation tail between the first ';' and the
	// first literal <br><br>.
	venueRegex = regexp.MustCompile(`;(.*?)<br><br>`)
)

// StripLineBreaks removes <br> and <br/> tags.
func StripLineBreaks(s string) string {
	return brTagRegex.ReplaceAllString(s, "")
}

// NormalizeTitle strips leading and trailing dots.
func NormalizeTitle(title string) string {
	return strings.Trim(title, ".")
}

// ExtractVenue pulls the free-text fragment following the first ';' of a
// citation string up to the first <br><br>. Tags are stripped, runs of
// spaces collapsed, the result trimmed, and one trailing dot removed. ok
// is false when the citation has no such fragment.
func ExtractVenue(reference string) (venue string, ok bool) {
	m := venueRegex.FindStringSubmatch(reference)
	if m == nil {
		return "", false
	}
	s := htmlTagRegex.ReplaceAllString(m[1], "")
	s = multiSpaceRegex.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	return strings.TrimSuffix(s, "."), true
}

// RewriteLanguage switches an info link from the German to the English page.
func RewriteLanguage(link string) string {
	return strings.ReplaceAll(link, "&lang=1", "&lang=2")
}
