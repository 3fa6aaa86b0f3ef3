// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bib

import (
	"strings"
	"testing"

	"github.com/nickng/bibtex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBib = `@article{Smith20,
  title = {Model-Driven Everything},
  author = {Jane Smith},
  year = {2020}
}

@inproceedings{Doe19,
  title = {Proceedings Paper},
  author = {John Doe},
  year = {2019}
}

@Article{smith20,
  title = {Shadowed Duplicate},
  year = {2020}
}
`

func entry(entryType, key string) *bibtex.BibEntry {
	return bibtex.NewBibEntry(entryType, key)
}

func TestParseAndFind(t *testing.T) {
	db, err := Parse(strings.NewReader(sampleBib))
	require.NoError(t, err)
	require.Len(t, db.Entries, 3)

	got := db.Find("SMITH20")
	require.NotNil(t, got)
	assert.Equal(t, "Smith20", got.CiteName)
	assert.Equal(t, "Model-Driven Everything", got.Fields["title"].String())

	assert.Nil(t, db.Find("nobody99"))
}

func TestFindFirstMatchWins(t *testing.T) {
	first := entry("article", "Key1")
	second := entry("book", "key1")
	db := &Database{Entries: []*bibtex.BibEntry{first, second}}

	assert.Same(t, first, db.Find("KEY1"))
}

func TestFindNilDatabase(t *testing.T) {
	var db *Database
	assert.Nil(t, db.Find("anything"))
}

func TestAcademicType(t *testing.T) {
	tests := []struct {
		entryType string
		want      int
	}{
		{"article", 2},
		{"book", 5},
		{"inbook", 6},
		{"incollection", 6},
		{"inproceedings", 1},
		{"manual", 4},
		{"mastersthesis", 7},
		{"misc", 0},
		{"phdthesis", 7},
		{"proceedings", 0},
		{"techreport", 4},
		{"unpublished", 3},
		{"patent", 8},
		{"online", 0},
		{"software", 0},
	}
	for _, tt := range tests {
		t.Run(tt.entryType, func(t *testing.T) {
			assert.Equal(t, tt.want, AcademicType(entry(tt.entryType, "k")))
		})
	}
	assert.Equal(t, DefaultAcademicType, AcademicType(nil))
}

func TestLookup(t *testing.T) {
	db := &Database{Entries: []*bibtex.BibEntry{entry("inproceedings", "Doe19")}}

	e, n := db.Lookup("doe19")
	assert.NotNil(t, e)
	assert.Equal(t, 1, n)

	e, n = db.Lookup("missing")
	assert.Nil(t, e)
	assert.Equal(t, 0, n)
}

func TestSingle(t *testing.T) {
	db, err := Parse(strings.NewReader(sampleBib))
	require.NoError(t, err)

	out := db.Single(db.Find("doe19"))
	assert.Contains(t, out, "Doe19")
	assert.Contains(t, out, "Proceedings Paper")
	assert.NotContains(t, out, "Smith20")

	// The isolated entry parses back to a one-entry database.
	reparsed, err := Parse(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, reparsed.Entries, 1)
	assert.Equal(t, "Doe19", reparsed.Entries[0].CiteName)
}

func TestSingleKeepsSourceText(t *testing.T) {
	src := "@inproceedings{TUW-1,\n" +
		"  booktitle = \"Proc. of {MODELS}\",\n" +
		"  title = {Model-{D}riven {UML} Engineering}\n" +
		"}\n\n" +
		"@Article{TUW-2,\n  title = \"Second\"\n}\n"
	db, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, db.Entries, 2)

	out := db.Single(db.Find("tuw-1"))
	assert.Equal(t, "@inproceedings{TUW-1,\n"+
		"  booktitle = \"Proc. of {MODELS}\",\n"+
		"  title = {Model-{D}riven {UML} Engineering}\n"+
		"}\n", out)

	assert.Equal(t, "@Article{TUW-2,\n  title = \"Second\"\n}\n", db.Single(db.Find("TUW-2")))
}

func TestSplitEntries(t *testing.T) {
	src := "@comment{unbalanced { here\n" +
		"@string{venue = \"MODELS\"}\n" +
		"@misc{A 1, note = {x}}\n" +
		"@book(B2, title = {(T)})\n" +
		"@misc{a1, note = {shadowed}}\n"

	got := splitEntries(src)
	assert.Equal(t, map[string]string{
		"a1": "@misc{A 1, note = {x}}\n",
		"b2": "@book(B2, title = {(T)})\n",
	}, got)
}

func TestSingleWithoutSource(t *testing.T) {
	e := entry("article", "Key1")
	e.AddField("title", bibtex.NewBibConst("A {B} C"))
	e.AddField("author", bibtex.NewBibConst("Jane Smith"))
	db := &Database{Entries: []*bibtex.BibEntry{e}}

	want := "@article{Key1,\n  author = {Jane Smith},\n  title = {A {B} C}\n}\n"
	assert.Equal(t, want, db.Single(e))
}

func TestCleanExport(t *testing.T) {
	raw := "BibTeX-Export: Publikationsdatenbank\r\n" +
		"@comment{generated}\n" +
		"\n" +
		"@article{Smith20,\n" +
		"  title = {T}\n" +
		"}\n" +
		"am 01.01.2024 ausgegeben\n"

	got, err := CleanExport(strings.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "@article{Smith20,\n  title = {T}\n}\n", got)
}
