// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// AuthorInfo is one structured author of an exported publication.
type AuthorInfo struct {
	GivenName string `xml:"vorname_lang" json:"vorname_lang"`
	Surname   string `xml:"nachname" json:"nachname"`
}

// Name composes "given-name surname".
func (a AuthorInfo) Name() string {
	return a.GivenName + " " + a.Surname
}

// RawPublication is one record of the publication export. Details holds the
// type-specific sub-records keyed by element name (the canonical type key),
// each mapping field names such as "datum_von" or "jahr" to their text.
type RawPublication struct {
	PubID        string       `json:"pub_id"`
	Type         string       `json:"type"`
	Title        string       `json:"titel"`
	Abstract     string       `json:"abstract_englisch,omitempty"`
	AuthorInfo   []AuthorInfo `json:"autor_info"`
	AuthorsClean string       `json:"autoren_clean"`
	PDFLink      string       `json:"link_pdf,omitempty"`
	InfoLink     string       `json:"infolink"`
	Reference    string       `json:"reference"`

	Details map[string]map[string]string `json:"details,omitempty"`
}

// Link is a named external link shown on a publication page.
type Link struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// Publication is the canonical record of one publication. The yaml-tagged
// fields form the front matter of the publication's metadata document; ID,
// CanonicalType and AcademicType travel alongside for persistence and
// indexing.
type Publication struct {
	// ID is the lower-cased upstream pub_id and names the content directory.
	ID string `json:"id" yaml:"-"`

	// CanonicalType is the mapped type key (e.g. "zeitschriftenartikel").
	CanonicalType string `json:"canonical_type" yaml:"-"`

	// AcademicType is the ordinal derived from the matching BibTeX entry type.
	AcademicType int `json:"academic_type" yaml:"-"`

	Title            string   `json:"title" yaml:"title"`
	Authors          []string `json:"authors" yaml:"authors"`
	Date             string   `json:"date" yaml:"date"`
	PublishDate      string   `json:"publishDate" yaml:"publishDate"`
	PublicationTypes []string `json:"publication_types" yaml:"publication_types"`
	Abstract         string   `json:"abstract" yaml:"abstract"`
	Featured         bool     `json:"featured" yaml:"featured"`
	URLPDF           string   `json:"url_pdf" yaml:"url_pdf"`

	// Venue is the free-text fragment extracted from the citation string.
	Venue string `json:"publication,omitempty" yaml:"publication,omitempty"`

	Links []Link `json:"links" yaml:"links"`
}
