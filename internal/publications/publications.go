// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package publications turns publication export records into canonical
// publication records: it maps type labels onto a closed vocabulary,
// cross-references the BibTeX export, derives dates, renames authors, and
// extracts the venue fragment of the citation string.
package publications

import (
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/sitefetch/internal/bib"
	"github.com/pdiddy/sitefetch/internal/errs"
	"github.com/pdiddy/sitefetch/pkg/types"
)

// infoLinkName labels the link back to the export's publication page.
const infoLinkName = "Publik"

// Summary holds the counts of a normalization run.
type Summary struct {
	Normalized int
	Unmapped   int
	Duplicates int
}

// Total returns the number of records processed.
func (s Summary) Total() int {
	return s.Normalized + s.Unmapped + s.Duplicates
}

// Normalizer builds canonical publications. Bib may be nil, in which case
// every publication gets the default academic type.
type Normalizer struct {
	Bib     *bib.Database
	Renames map[string]string
	Logger  zerolog.Logger
}

// Normalize converts every record it can. Records with an unmapped type
// label are skipped with a warning; records whose lower-cased pub_id was
// already produced earlier in raw are dropped. Output order follows raw.
func (n *Normalizer) Normalize(raw []types.RawPublication) ([]types.Publication, Summary) {
	var summary Summary
	seen := make(map[string]bool, len(raw))
	out := make([]types.Publication, 0, len(raw))

	for _, r := range raw {
		id := strings.ToLower(r.PubID)
		if seen[id] {
			n.Logger.Debug().Str("pub_id", id).Msg("duplicate publication")
			summary.Duplicates++
			continue
		}

		pub, err := n.NormalizeOne(r)
		if err != nil {
			var unmapped *errs.UnmappedTypeError
			if errors.As(err, &unmapped) {
				n.Logger.Warn().
					Str("pub_id", unmapped.PubID).
					Str("label", unmapped.Label).
					Msg("skipping publication with unknown type")
			}
			summary.Unmapped++
			continue
		}

		seen[id] = true
		out = append(out, pub)
		summary.Normalized++
	}

	n.Logger.Info().
		Int("normalized", summary.Normalized).
		Int("unmapped", summary.Unmapped).
		Int("duplicates", summary.Duplicates).
		Msg("publications normalized")
	return out, summary
}

// NormalizeOne builds the canonical record for r. The only failure is an
// unmapped type label.
func (n *Normalizer) NormalizeOne(r types.RawPublication) (types.Publication, error) {
	id := strings.ToLower(r.PubID)

	canonical, err := MapType(id, r.Type)
	if err != nil {
		return types.Publication{}, err
	}

	_, academic := n.Bib.Lookup(id)
	date := DeriveDate(r.Details[canonical])

	pub := types.Publication{
		ID:               id,
		CanonicalType:    canonical,
		AcademicType:     academic,
		Title:            NormalizeTitle(r.Title),
		Authors:          n.authors(r),
		Date:             date,
		PublishDate:      date,
		PublicationTypes: []string{strconv.Itoa(academic)},
		Abstract:         StripLineBreaks(r.Abstract),
		Featured:         false,
		URLPDF:           r.PDFLink,
		Links:            []types.Link{{Name: infoLinkName, URL: RewriteLanguage(r.InfoLink)}},
	}
	if venue, ok := ExtractVenue(r.Reference); ok {
		pub.Venue = venue
	}
	return pub, nil
}

// authors lists every structured author when the clean author string
// names several people (it contains a comma), and only the first one
// otherwise. Names found in the rename table are replaced.
func (n *Normalizer) authors(r types.RawPublication) []string {
	infos := r.AuthorInfo
	if !strings.Contains(r.AuthorsClean, ",") && len(infos) > 1 {
		infos = infos[:1]
	}

	names := make([]string, 0, len(infos))
	for _, a := range infos {
		name := a.Name()
		if to, ok := n.Renames[name]; ok {
			name = to
		}
		names = append(names, name)
	}
	return names
}

// DeriveDate builds a YYYY-MM-DD date from a type-specific sub-record. A
// "datum_von" field in D.M.Y form supplies all three parts; a "datum_von"
// without dots, or a "jahr" field, supplies the year only. Missing month
// and day default to "01"; a missing year stays empty.
func DeriveDate(sub map[string]string) string {
	year, month, day := "", "01", "01"
	if from, ok := sub["datum_von"]; ok {
		parts := strings.Split(from, ".")
		if len(parts) >= 3 {
			day, month, year = parts[0], parts[1], parts[2]
		} else {
			year = parts[0]
		}
	} else if y, ok := sub["jahr"]; ok {
		year = y
	}
	return year + "-" + month + "-" + day
}
