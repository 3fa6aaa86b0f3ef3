// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publications

import "github.com/pdiddy/sitefetch/internal/errs"

// Canonical type keys. Each key also names the type-specific sub-record of
// an exported publication.
const (
	TypeThesis                  = "diss_dipl"
	TypeReport                  = "bericht"
	TypeJournalArticle          = "zeitschriftenartikel"
	TypeTalkWithProceedings     = "vortrag_poster_mit_tagungsband"
	TypeTalkWithoutProceedings  = "vortrag_poster_ohne_tagungsband"
	TypeTalkWithWebProceedings  = "vortrag_poster_mit_cd_tagungsband"
	TypeEditedBook              = "buch_herausgabe"
	TypeBook                    = "buch"
	TypeElectronicJournal       = "elektron_zeitschrift"
	TypeBookChapter             = "buchbeitrag"
	TypeProceedingsContribution = "beitrag_tagungsband"
	TypeWebProceedingsContrib   = "beitrag_cd_tagungsband"
	TypeEditedSeriesVolume      = "herausgabe_buchreihe"
)

// typeLabels maps the export's type labels onto canonical keys. Keynotes
// and posters collapse onto the plain talk keys.
var typeLabels = map[string]string{
	"Dissertation":                                    TypeThesis,
	"Diplom- oder Master-Arbeit":                      TypeThesis,
	"Wissenschaftlicher Bericht":                      TypeReport,
	"Zeitschriftenartikel":                            TypeJournalArticle,
	"Beitrag in elektron. Zeitschrift":                TypeElectronicJournal,
	"Vortrag mit Tagungsband":                         TypeTalkWithProceedings,
	"Haupt-(Keynote-)Vortrag mit Tagungsband":         TypeTalkWithProceedings,
	"Posterpräsentation mit Tagungsband":              TypeTalkWithProceedings,
	"Vortrag ohne Tagungsband":                        TypeTalkWithoutProceedings,
	"Haupt-(Keynote-)Vortrag ohne Tagungsband":        TypeTalkWithoutProceedings,
	"Posterpräsentation ohne Tagungsband":             TypeTalkWithoutProceedings,
	"Vortrag mit CD- oder Web-Tagungsband":            TypeTalkWithWebProceedings,
	"Posterpräsentation mit CD- oder Web-Tagungsband": TypeTalkWithWebProceedings,
	"Buch-Herausgabe":                                 TypeEditedBook,
	"Herausgabe eines Bandes einer Buchreihe":         TypeEditedSeriesVolume,
	"Monographie (Erstauflage)":                       TypeBook,
	"Monographie (Folgeauflage)":                      TypeBook,
	"Buchbeitrag":                                     TypeBookChapter,
	"Beitrag in Tagungsband":                          TypeProceedingsContribution,
	"Beitrag in CD- oder Web-Tagungsband":             TypeWebProceedingsContrib,
}

// MapType returns the canonical key for an export type label. Labels
// outside the vocabulary yield an *errs.UnmappedTypeError naming pubID.
func MapType(pubID, label string) (string, error) {
	if key, ok := typeLabels[label]; ok {
		return key, nil
	}
	return "", &errs.UnmappedTypeError{PubID: pubID, Label: label}
}

// Labels returns every label MapType accepts.
func Labels() []string {
	labels := make([]string, 0, len(typeLabels))
	for l := range typeLabels {
		labels = append(labels, l)
	}
	return labels
}
