// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package content persists entities as content units: one directory per
// entity identifier holding a metadata document and optional auxiliary
// files, laid out for the static site generator.
//
// A unit whose directory already exists is left untouched unless the store
// runs in override mode, in which case every file of the unit is rewritten.
package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/pdiddy/sitefetch/internal/errs"
)

// Outcome reports what Put did with a unit.
type Outcome int

const (
	Skipped Outcome = iota
	Created
	Overwritten
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Overwritten:
		return "overwritten"
	default:
		return "skipped"
	}
}

// File is one file of a content unit. A nil Data marks an optional file
// the unit does not have; Put removes any stale copy of it.
type File struct {
	Name string
	Data []byte
}

// Unit is one entity's directory and its files.
type Unit struct {
	ID    string
	Files []File
}

// Summary holds the counts of a batch of Put calls.
type Summary struct {
	Created     int
	Overwritten int
	Skipped     int
}

// Total returns the number of units processed.
func (s Summary) Total() int {
	return s.Created + s.Overwritten + s.Skipped
}

// Add counts one outcome.
func (s *Summary) Add(o Outcome) {
	switch o {
	case Created:
		s.Created++
	case Overwritten:
		s.Overwritten++
	default:
		s.Skipped++
	}
}

// Store writes units below Root. The existence check assumes a single
// writer; concurrent runs against the same root race on it.
type Store struct {
	Root     string
	Override bool
	Logger   zerolog.Logger
}

// Dir returns the directory of the unit with the given identifier.
func (s *Store) Dir(id string) string {
	return filepath.Join(s.Root, id)
}

// Writes reports whether Put would write the unit with the given
// identifier: its directory is missing or the store runs in override mode.
// A directory that cannot be checked is an error, as it is for Put.
func (s *Store) Writes(id string) (bool, error) {
	if s.Override {
		return true, nil
	}
	_, err := os.Stat(s.Dir(id))
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, os.ErrNotExist):
		return true, nil
	default:
		return false, fmt.Errorf("checking directory %s: %w", s.Dir(id), err)
	}
}

// Put writes u unless its directory already exists and the store is not in
// override mode. All files are staged as temporary files before any of
// them replaces its target, so a failed write leaves the previous content
// in place.
func (s *Store) Put(u Unit) (Outcome, error) {
	if u.ID == "" {
		return Skipped, fmt.Errorf("%w: content unit has no identifier", errs.ErrInvalidInput)
	}
	dir := s.Dir(u.ID)

	outcome := Overwritten
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Skipped, fmt.Errorf("creating directory %s: %w", dir, err)
		}
		outcome = Created
	} else if err != nil {
		return Skipped, fmt.Errorf("checking directory %s: %w", dir, err)
	} else if !s.Override {
		s.Logger.Debug().Str("id", u.ID).Msg("skipped existing content")
		return Skipped, nil
	}

	if err := writeUnit(dir, u.Files); err != nil {
		if outcome == Created {
			os.RemoveAll(dir)
		}
		return Skipped, fmt.Errorf("writing %s: %w", u.ID, err)
	}

	s.Logger.Info().Str("id", u.ID).Str("outcome", outcome.String()).Msg("content written")
	return outcome, nil
}

// PutAll writes every unit in order and stops at the first error.
func (s *Store) PutAll(units []Unit) (Summary, error) {
	var summary Summary
	for _, u := range units {
		o, err := s.Put(u)
		if err != nil {
			return summary, err
		}
		summary.Add(o)
	}
	s.Logger.Info().
		Int("created", summary.Created).
		Int("overwritten", summary.Overwritten).
		Int("skipped", summary.Skipped).
		Str("root", s.Root).
		Msg("content units stored")
	return summary, nil
}

// writeUnit stages each file as a temporary file in dir, then renames them
// into place and removes the files marked absent.
func writeUnit(dir string, files []File) error {
	staged := make(map[string]string, len(files))
	cleanup := func() {
		for _, tmp := range staged {
			os.Remove(tmp)
		}
	}

	for _, f := range files {
		if f.Data == nil {
			continue
		}
		tmp, err := stage(dir, f.Data)
		if err != nil {
			cleanup()
			return fmt.Errorf("staging %s: %w", f.Name, err)
		}
		staged[f.Name] = tmp
	}

	for _, f := range files {
		if f.Data == nil {
			continue
		}
		if err := os.Rename(staged[f.Name], filepath.Join(dir, f.Name)); err != nil {
			cleanup()
			return fmt.Errorf("renaming %s: %w", f.Name, err)
		}
		delete(staged, f.Name)
	}

	for _, f := range files {
		if f.Data != nil {
			continue
		}
		err := os.Remove(filepath.Join(dir, f.Name))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing stale %s: %w", f.Name, err)
		}
	}
	return nil
}

func stage(dir string, data []byte) (string, error) {
	tmpFile, err := os.CreateTemp(dir, ".content-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return "", writeErr
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", closeErr
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return "", err
	}
	return tmpPath, nil
}
