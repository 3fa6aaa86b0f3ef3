// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/sitefetch/internal/bib"
	"github.com/pdiddy/sitefetch/pkg/types"
)

// xmlNode captures an element generically. The export nests the
// type-specific fields of a publication under an element named after its
// canonical type, so the record layout is not known up front.
type xmlNode struct {
	XMLName xml.Name
	Content string    `xml:",chardata"`
	Nodes   []xmlNode `xml:",any"`
}

type exportDocument struct {
	XMLName      xml.Name
	Publications []xmlNode `xml:"publikation"`
}

// Publications returns the export records of every person, in person
// order. The same publication appears once per co-author; deduplication is
// left to the normalizer.
func (c *Client) Publications(ctx context.Context, people []types.Person) ([]types.RawPublication, error) {
	var out []types.RawPublication
	for _, p := range people {
		data, err := c.get(ctx, SourceExport, c.exportURL("pubexport.php", p), "application/xml")
		if err != nil {
			return nil, err
		}

		pubs, err := decodeExport(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parsing publications of %s: %w", p.Identifier, err)
		}
		c.Logger.Debug().Str("person", p.Identifier).Int("publications", len(pubs)).Msg("fetched publications")
		out = append(out, pubs...)
	}
	c.Logger.Info().Int("publications", len(out)).Msg("fetched publication export")
	return out, nil
}

// BibTeX returns the concatenated BibTeX export of every person with the
// export's banner and comment lines removed.
func (c *Client) BibTeX(ctx context.Context, people []types.Person) (string, error) {
	var b strings.Builder
	for _, p := range people {
		data, err := c.get(ctx, SourceBibTeX, c.exportURL("pubbibtex.php", p), "text/plain")
		if err != nil {
			return "", err
		}
		cleaned, err := bib.CleanExport(latin1(bytes.NewReader(data)))
		if err != nil {
			return "", fmt.Errorf("reading BibTeX of %s: %w", p.Identifier, err)
		}
		b.WriteString(cleaned)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// decodeExport reads an ISO-8859-1 export document. An empty body or a
// document without publication elements yields no records.
func decodeExport(r io.Reader) ([]types.RawPublication, error) {
	dec := xml.NewDecoder(latin1(r))
	// The body is already transcoded; the declared charset only needs to
	// be accepted.
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	var doc exportDocument
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	out := make([]types.RawPublication, 0, len(doc.Publications))
	for _, n := range doc.Publications {
		out = append(out, rawPublication(n))
	}
	return out, nil
}

func rawPublication(n xmlNode) types.RawPublication {
	var r types.RawPublication
	for _, child := range n.Nodes {
		text := strings.TrimSpace(child.Content)
		switch child.XMLName.Local {
		case "pub_id":
			r.PubID = text
		case "type":
			r.Type = text
		case "titel":
			r.Title = text
		case "abstract_englisch":
			r.Abstract = text
		case "autoren_clean":
			r.AuthorsClean = text
		case "link_pdf":
			r.PDFLink = text
		case "infolink":
			r.InfoLink = text
		case "reference":
			r.Reference = text
		case "autor_info":
			fields := child.fields()
			r.AuthorInfo = append(r.AuthorInfo, types.AuthorInfo{
				GivenName: fields["vorname_lang"],
				Surname:   fields["nachname"],
			})
		default:
			if len(child.Nodes) > 0 {
				if r.Details == nil {
					r.Details = make(map[string]map[string]string)
				}
				r.Details[child.XMLName.Local] = child.fields()
			}
		}
	}
	return r
}

// fields maps the names of n's child elements to their trimmed text.
func (n xmlNode) fields() map[string]string {
	m := make(map[string]string, len(n.Nodes))
	for _, c := range n.Nodes {
		m[c.XMLName.Local] = strings.TrimSpace(c.Content)
	}
	return m
}
