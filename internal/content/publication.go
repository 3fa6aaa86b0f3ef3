// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import (
	"fmt"

	"github.com/pdiddy/sitefetch/internal/bib"
	"github.com/pdiddy/sitefetch/pkg/types"
)

// File names inside a publication's content unit.
const (
	IndexFile    = "index.md"
	CitationFile = "cite.bib"
)

// PublicationUnit builds the content unit of pub: the front matter document
// and, when db holds an entry for pub.ID, that entry alone as a citation
// file. Without a match the citation file is marked absent.
func PublicationUnit(pub types.Publication, db *bib.Database) (Unit, error) {
	index, err := Encode(pub, "")
	if err != nil {
		return Unit{}, fmt.Errorf("encoding %s: %w", pub.ID, err)
	}

	citation := File{Name: CitationFile}
	if entry := db.Find(pub.ID); entry != nil {
		citation.Data = []byte(db.Single(entry))
	}

	return Unit{
		ID: pub.ID,
		Files: []File{
			citation,
			{Name: IndexFile, Data: index},
		},
	}, nil
}

// PutPublications stores every publication in order.
func (s *Store) PutPublications(pubs []types.Publication, db *bib.Database) (Summary, error) {
	units := make([]Unit, 0, len(pubs))
	for _, p := range pubs {
		u, err := PublicationUnit(p, db)
		if err != nil {
			return Summary{}, err
		}
		units = append(units, u)
	}
	return s.PutAll(units)
}
