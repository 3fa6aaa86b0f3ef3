// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"

	"github.com/pdiddy/sitefetch/pkg/types"
)

// courseDocument is the root of a lecturer's course listing. Elements are
// matched by local name, so the schema namespaces are ignored.
type courseDocument struct {
	XMLName xml.Name
	Courses []types.RawCourse `xml:"course"`
}

// Courses returns the courses every lecturer teaches in semester, in
// lecturer order. Lecturers whose response has no "tuvienna" root or no
// course elements contribute nothing. Duplicates are kept.
func (c *Client) Courses(ctx context.Context, lecturers []types.Person, semester string) ([]types.RawCourse, error) {
	var out []types.RawCourse
	for _, l := range lecturers {
		data, err := c.get(ctx, SourceCourses, c.lecturerURL(l.OID, semester), "application/xml")
		if err != nil {
			return nil, err
		}

		courses, err := decodeCourses(data)
		if err != nil {
			return nil, fmt.Errorf("parsing courses of %s: %w", l.Identifier, err)
		}
		if len(courses) == 0 {
			c.Logger.Debug().Str("lecturer", l.Identifier).Str("semester", semester).Msg("no courses")
			continue
		}
		out = append(out, courses...)
	}
	c.Logger.Info().Int("courses", len(out)).Str("semester", semester).Msg("fetched courses")
	return out, nil
}

func decodeCourses(data []byte) ([]types.RawCourse, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var doc courseDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.XMLName.Local != "tuvienna" {
		return nil, nil
	}
	return doc.Courses, nil
}
