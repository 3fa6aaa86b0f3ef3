// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bib parses the BibTeX export and cross-references its entries
// with publication records by citation key.
package bib

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/nickng/bibtex"
)

// DefaultAcademicType is the ordinal used for unknown entry types and for
// publications without a matching entry.
const DefaultAcademicType = 0

// academicTypes maps BibTeX entry types to the site's publication type ordinals.
var academicTypes = map[string]int{
	"article":       2,
	"book":          5,
	"inbook":        6,
	"incollection":  6,
	"inproceedings": 1,
	"manual":        4,
	"mastersthesis": 7,
	"misc":          0,
	"phdthesis":     7,
	"proceedings":   0,
	"techreport":    4,
	"unpublished":   3,
	"patent":        8,
}

// Database is an ordered list of BibTeX entries. Databases read by Parse
// also keep the source text of every entry, keyed by lower-case citation key.
type Database struct {
	Entries []*bibtex.BibEntry

	source map[string]string
}

// Parse reads a BibTeX document.
func Parse(r io.Reader) (*Database, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading bibtex: %w", err)
	}
	parsed, err := bibtex.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing bibtex: %w", err)
	}
	return &Database{Entries: parsed.Entries, source: splitEntries(string(data))}, nil
}

// splitEntries cuts src into the text of its entries. Comment, string and
// preamble blocks are passed over. The first entry of a key wins.
func splitEntries(src string) map[string]string {
	out := make(map[string]string)
	for i := 0; i < len(src); {
		at := strings.IndexByte(src[i:], '@')
		if at < 0 {
			break
		}
		start := i + at
		open := strings.IndexAny(src[start:], "{(")
		if open < 0 {
			break
		}
		open += start

		kind := strings.ToLower(strings.TrimSpace(src[start+1 : open]))
		if kind == "comment" {
			i = open + 1
			continue
		}
		end := closing(src, open)
		if end < 0 {
			break
		}
		i = end + 1
		if kind == "string" || kind == "preamble" {
			continue
		}

		body := src[open+1 : end]
		comma := strings.IndexByte(body, ',')
		if comma < 0 {
			continue
		}
		key := citeKey(body[:comma])
		if _, seen := out[key]; !seen {
			out[key] = src[start:end+1] + "\n"
		}
	}
	return out
}

// closing returns the index of the delimiter that closes the one at open,
// or -1 when the entry is unterminated.
func closing(src string, open int) int {
	depth := 0
	for j := open + 1; j < len(src); j++ {
		switch src[j] {
		case '{':
			depth++
		case '}':
			if depth == 0 && src[open] == '{' {
				return j
			}
			depth--
		case ')':
			if depth == 0 && src[open] == '(' {
				return j
			}
		}
	}
	return -1
}

func citeKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// Find returns the first entry whose citation key equals id, ignoring
// case, or nil when there is none.
func (db *Database) Find(id string) *bibtex.BibEntry {
	if db == nil {
		return nil
	}
	for _, e := range db.Entries {
		if strings.EqualFold(e.CiteName, id) {
			return e
		}
	}
	return nil
}

// AcademicType returns the ordinal for entry's type. A nil entry or an
// entry type outside the table yields DefaultAcademicType.
func AcademicType(entry *bibtex.BibEntry) int {
	if entry == nil {
		return DefaultAcademicType
	}
	if n, ok := academicTypes[strings.ToLower(entry.Type)]; ok {
		return n
	}
	return DefaultAcademicType
}

// Lookup finds the entry for id and derives its academic type in one step.
func (db *Database) Lookup(id string) (*bibtex.BibEntry, int) {
	entry := db.Find(id)
	return entry, AcademicType(entry)
}

// Single returns a BibTeX document containing only entry. Entries read by
// Parse are written exactly as they appeared in the source. Others are
// formatted with every value brace-delimited, fields in key order.
func (db *Database) Single(entry *bibtex.BibEntry) string {
	if db != nil {
		if text, ok := db.source[citeKey(entry.CiteName)]; ok {
			return text
		}
	}

	keys := make([]string, 0, len(entry.Fields))
	for k := range entry.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s", entry.Type, entry.CiteName)
	for _, k := range keys {
		fmt.Fprintf(&b, ",\n  %s = {%s}", k, entry.Fields[k].String())
	}
	b.WriteString("\n}\n")
	return b.String()
}

// CleanExport drops the banner and comment lines the publication export
// wraps around every per-person BibTeX document: empty lines, lines
// starting with "BibTeX-Export:" or "@comment", and lines ending with
// "ausgegeben". The remaining lines are newline-terminated.
func CleanExport(r io.Reader) (string, error) {
	var b strings.Builder
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" ||
			strings.HasPrefix(line, "BibTeX-Export:") ||
			strings.HasPrefix(line, "@comment") ||
			strings.HasSuffix(line, "ausgegeben") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading bibtex export: %w", err)
	}
	return b.String(), nil
}
