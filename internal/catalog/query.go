// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/sitefetch/pkg/types"
)

// QueryOptions filters publication queries. Zero values match everything.
type QueryOptions struct {
	// Query is an FTS5 expression matched against titles.
	Query string

	// Author matches publications with an author containing the substring.
	Author string

	// AcademicType restricts results to one ordinal when non-nil.
	AcademicType *int

	// MaxResults limits the result count. Zero uses the store default.
	MaxResults int
}

// Entry is one recorded publication.
type Entry struct {
	ID            string   `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	Authors       []string `json:"authors" yaml:"authors"`
	Date          string   `json:"date" yaml:"date"`
	AcademicType  int      `json:"academic_type" yaml:"academic_type"`
	CanonicalType string   `json:"canonical_type" yaml:"canonical_type"`
	Venue         string   `json:"venue,omitempty" yaml:"venue,omitempty"`
	URLPDF        string   `json:"url_pdf,omitempty" yaml:"url_pdf,omitempty"`
	RecordedAt    string   `json:"recorded_at" yaml:"recorded_at"`
}

// Query returns recorded publications. Full-text queries are ranked by
// relevance; otherwise results are ordered newest first.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]Entry, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT p.id, p.title, p.authors, p.date, p.academic_type, p.canonical_type,
				p.venue, p.url_pdf, p.recorded_at
			FROM publications_fts
			JOIN publications p ON p.rowid = publications_fts.rowid
			WHERE publications_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT p.id, p.title, p.authors, p.date, p.academic_type, p.canonical_type,
				p.venue, p.url_pdf, p.recorded_at
			FROM publications p
			WHERE 1=1`)
	}

	if opts.Author != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM json_each(p.authors) WHERE value LIKE ?)`)
		args = append(args, "%"+opts.Author+"%")
	}

	if opts.AcademicType != nil {
		qb.WriteString(` AND p.academic_type = ?`)
		args = append(args, *opts.AcademicType)
	}

	if useFTS {
		qb.WriteString(` ORDER BY publications_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY p.date DESC, p.id`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var results []Entry
	for rows.Next() {
		var (
			e           Entry
			authorsJSON string
		)
		if err := rows.Scan(
			&e.ID, &e.Title, &authorsJSON, &e.Date, &e.AcademicType, &e.CanonicalType,
			&e.Venue, &e.URLPDF, &e.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		json.Unmarshal([]byte(authorsJSON), &e.Authors)
		results = append(results, e)
	}
	return results, rows.Err()
}

// CourseEntry is one recorded course.
type CourseEntry struct {
	Semester string             `json:"semester" yaml:"semester"`
	Bucket   types.CourseBucket `json:"bucket" yaml:"bucket"`

	types.Course `yaml:",inline"`
}

// Courses returns the courses recorded for semester ordered by bucket and
// course number.
func (s *Store) Courses(ctx context.Context, semester string) ([]CourseEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT semester, bucket, number, type, title, url, authors
		 FROM courses WHERE semester = ? ORDER BY bucket, number`, semester)
	if err != nil {
		return nil, fmt.Errorf("querying courses: %w", err)
	}
	defer rows.Close()

	var results []CourseEntry
	for rows.Next() {
		var (
			c           CourseEntry
			bucket      string
			authorsJSON string
		)
		if err := rows.Scan(&c.Semester, &bucket, &c.Number, &c.Type, &c.Title, &c.URL, &authorsJSON); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		c.Bucket = types.CourseBucket(bucket)
		json.Unmarshal([]byte(authorsJSON), &c.Authors)
		results = append(results, c)
	}
	return results, rows.Err()
}
