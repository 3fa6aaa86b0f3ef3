// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the fetch stages against one upstream snapshot:
// member profiles, course data files, and publication content. Stages run
// in order and the first collaborator failure aborts the run.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/sitefetch/internal/bib"
	"github.com/pdiddy/sitefetch/internal/catalog"
	"github.com/pdiddy/sitefetch/internal/content"
	"github.com/pdiddy/sitefetch/internal/courses"
	"github.com/pdiddy/sitefetch/internal/people"
	"github.com/pdiddy/sitefetch/internal/publications"
	"github.com/pdiddy/sitefetch/internal/semester"
	"github.com/pdiddy/sitefetch/pkg/types"
)

// Directories below the site base.
const (
	DataDir        = "data"
	PeopleDir      = "people"
	PublicationDir = "content/publication"
	CoursesDir     = "data/teaching/courses"
)

// Upstream is the set of upstream calls the stages need.
type Upstream interface {
	People(ctx context.Context) ([]types.Person, error)
	Picture(ctx context.Context, uri string) ([]byte, error)
	Courses(ctx context.Context, lecturers []types.Person, semester string) ([]types.RawCourse, error)
	Publications(ctx context.Context, people []types.Person) ([]types.RawPublication, error)
	BibTeX(ctx context.Context, people []types.Person) (string, error)
}

// Options selects the stages of a run.
type Options struct {
	Members      bool
	Courses      bool
	Publications bool

	// Override rewrites existing content units.
	Override bool

	// Debug dumps the fetched people and publication records to the data
	// directory.
	Debug bool

	// At is the reference time for the semester calculation. Zero means now.
	At time.Time
}

// Any reports whether at least one stage is selected.
func (o Options) Any() bool {
	return o.Members || o.Courses || o.Publications
}

// Report summarizes a run.
type Report struct {
	People       int
	Profiles     content.Summary
	Semesters    []string
	Courses      map[string]int
	Publications publications.Summary
	Stored       content.Summary
}

// Pipeline wires the stages to their collaborators. Catalog is optional.
type Pipeline struct {
	Config   types.Config
	Upstream Upstream
	Catalog  *catalog.Store
	Logger   zerolog.Logger
}

// Run executes the selected stages.
func (p *Pipeline) Run(ctx context.Context, opts Options) (Report, error) {
	var report Report
	if !opts.Any() {
		p.Logger.Info().Msg("nothing to do: select at least one of members, courses, publications")
		return report, nil
	}
	if !opts.Override {
		p.Logger.Info().Msg("override is disabled, existing content will not be touched")
	}

	members, err := p.members(ctx)
	if err != nil {
		return report, err
	}
	report.People = len(members)

	if opts.Members {
		report.Profiles, err = p.profiles(ctx, members, opts)
		if err != nil {
			return report, fmt.Errorf("members stage: %w", err)
		}
	}

	if opts.Courses {
		report.Semesters, report.Courses, err = p.courses(ctx, members, opts)
		if err != nil {
			return report, fmt.Errorf("courses stage: %w", err)
		}
	}

	if opts.Publications {
		report.Publications, report.Stored, err = p.publications(ctx, members, opts)
		if err != nil {
			return report, fmt.Errorf("publications stage: %w", err)
		}
	}
	return report, nil
}

// path joins elem below the configured base directory.
func (p *Pipeline) path(elem ...string) string {
	return filepath.Join(append([]string{p.Config.Layout.BaseDir}, elem...)...)
}

// members fetches the organisational unit and applies the whitelist.
func (p *Pipeline) members(ctx context.Context) ([]types.Person, error) {
	all, err := p.Upstream.People(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching people: %w", err)
	}
	members := people.Whitelist(people.Identify(all), p.Config.People.Whitelist)
	p.Logger.Info().Int("fetched", len(all)).Int("whitelisted", len(members)).Msg("people selected")
	return members, nil
}

func (p *Pipeline) profiles(ctx context.Context, members []types.Person, opts Options) (content.Summary, error) {
	tmpl, err := people.LoadTemplate(p.Config.Layout.TemplateDir)
	if err != nil {
		return content.Summary{}, err
	}

	w := &people.Writer{
		Store:    &content.Store{Root: p.path(PeopleDir), Override: opts.Override, Logger: p.Logger},
		Template: tmpl,
		Pictures: p.Upstream,
		Logger:   p.Logger,
	}
	summary, err := w.Write(ctx, members)
	if err != nil {
		return summary, err
	}

	if opts.Debug {
		if err := writeJSON(p.path(DataDir, "people.json"), members); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

// courses writes one data file per semester. Data files are regenerated on
// every run regardless of the override flag.
func (p *Pipeline) courses(ctx context.Context, members []types.Person, opts Options) ([]string, map[string]int, error) {
	at := opts.At
	if at.IsZero() {
		at = time.Now()
	}
	current, previous := semester.CurrentAndPrevious(at, p.Config.Semester)
	semesters := []string{current, previous}
	lecturers := people.Exclude(members, p.Config.Courses.Blacklist)

	counts := make(map[string]int, len(semesters))
	for _, sem := range semesters {
		raw, err := p.Upstream.Courses(ctx, lecturers, sem)
		if err != nil {
			return nil, nil, fmt.Errorf("fetching courses for %s: %w", sem, err)
		}
		unique, dups := courses.Dedup(raw)
		buckets := courses.Classify(unique, lecturers)

		if err := writeJSON(p.path(CoursesDir, sem+".json"), buckets); err != nil {
			return nil, nil, err
		}
		if p.Catalog != nil {
			if err := p.Catalog.RecordCourses(ctx, sem, buckets); err != nil {
				return nil, nil, err
			}
		}

		counts[sem] = len(unique)
		p.Logger.Info().
			Str("semester", sem).
			Int("courses", len(unique)).
			Int("duplicates", dups).
			Int("lectures_exercises", len(buckets[types.BucketLecturesExercises])).
			Int("seminars_projects", len(buckets[types.BucketSeminarsProjects])).
			Int("other", len(buckets[types.BucketOther])).
			Msg("courses classified")
	}
	return semesters, counts, nil
}

func (p *Pipeline) publications(ctx context.Context, members []types.Person, opts Options) (publications.Summary, content.Summary, error) {
	publishers := people.Exclude(members, p.Config.Publications.Blacklist)

	bibText, err := p.Upstream.BibTeX(ctx, publishers)
	if err != nil {
		return publications.Summary{}, content.Summary{}, fmt.Errorf("fetching BibTeX: %w", err)
	}
	db, err := bib.Parse(strings.NewReader(bibText))
	if err != nil {
		return publications.Summary{}, content.Summary{}, err
	}
	p.Logger.Info().Int("entries", len(db.Entries)).Msg("BibTeX export parsed")

	raw, err := p.Upstream.Publications(ctx, publishers)
	if err != nil {
		return publications.Summary{}, content.Summary{}, fmt.Errorf("fetching publications: %w", err)
	}
	if opts.Debug {
		if err := writeJSON(p.path(DataDir, "publications.json"), raw); err != nil {
			return publications.Summary{}, content.Summary{}, err
		}
	}

	n := &publications.Normalizer{
		Bib:     db,
		Renames: p.Config.Publications.RenameMap(),
		Logger:  p.Logger,
	}
	pubs, normalized := n.Normalize(raw)

	store := &content.Store{Root: p.path(PublicationDir), Override: opts.Override, Logger: p.Logger}
	stored, err := store.PutPublications(pubs, db)
	if err != nil {
		return normalized, stored, err
	}

	if p.Catalog != nil {
		if err := p.Catalog.RecordPublications(ctx, pubs); err != nil {
			return normalized, stored, err
		}
	}
	return normalized, stored, nil
}

// writeJSON writes v as indented JSON, creating parent directories.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".sitefetch-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(append(data, '\n'))
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
