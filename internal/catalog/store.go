// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog records every fetched publication and course in a SQLite
// database so that past runs can be queried without touching the content
// tree. Publication titles are indexed with FTS5.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/sitefetch/pkg/types"
)

// DBFile is the database file name inside the data directory.
const DBFile = "catalog.db"

// Store manages the catalog database.
type Store struct {
	db         *sql.DB
	path       string
	maxResults int
	now        func() time.Time
}

// Open opens or creates dataDir/catalog.db and its schema.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	path := filepath.Join(dataDir, DBFile)
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: path, maxResults: 20, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS publications (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			authors TEXT,
			date TEXT,
			academic_type INTEGER,
			canonical_type TEXT,
			venue TEXT,
			url_pdf TEXT,
			recorded_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_publications_academic_type ON publications(academic_type)`,
		`CREATE TABLE IF NOT EXISTS courses (
			semester TEXT NOT NULL,
			number TEXT NOT NULL,
			type TEXT,
			bucket TEXT,
			title TEXT,
			url TEXT,
			authors TEXT,
			PRIMARY KEY (semester, number)
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='publications_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists > 0 {
		return nil
	}

	ftsStatements := []string{
		`CREATE VIRTUAL TABLE publications_fts USING fts5(title, content=publications, content_rowid=rowid)`,
		`CREATE TRIGGER publications_ai AFTER INSERT ON publications BEGIN
			INSERT INTO publications_fts(rowid, title) VALUES (new.rowid, new.title);
		END`,
		`CREATE TRIGGER publications_ad AFTER DELETE ON publications BEGIN
			INSERT INTO publications_fts(publications_fts, rowid, title) VALUES('delete', old.rowid, old.title);
		END`,
		`CREATE TRIGGER publications_au AFTER UPDATE ON publications BEGIN
			INSERT INTO publications_fts(publications_fts, rowid, title) VALUES('delete', old.rowid, old.title);
			INSERT INTO publications_fts(rowid, title) VALUES (new.rowid, new.title);
		END`,
	}
	for _, stmt := range ftsStatements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating FTS infrastructure: %w", err)
		}
	}
	return nil
}

// RecordPublications upserts every publication in one transaction. A
// publication seen in an earlier run keeps its row and gets the new values.
func (s *Store) RecordPublications(ctx context.Context, pubs []types.Publication) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO publications (id, title, authors, date, academic_type, canonical_type, venue, url_pdf, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, authors=excluded.authors, date=excluded.date,
			academic_type=excluded.academic_type, canonical_type=excluded.canonical_type,
			venue=excluded.venue, url_pdf=excluded.url_pdf, recorded_at=excluded.recorded_at`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	recordedAt := s.now().UTC().Format(time.RFC3339)
	for _, p := range pubs {
		authorsJSON, _ := json.Marshal(p.Authors)
		_, err := stmt.ExecContext(ctx,
			p.ID, p.Title, string(authorsJSON), p.Date, p.AcademicType,
			p.CanonicalType, p.Venue, p.URLPDF, recordedAt,
		)
		if err != nil {
			return fmt.Errorf("recording publication %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// RecordCourses replaces the courses recorded for semester with buckets.
func (s *Store) RecordCourses(ctx context.Context, semester string, buckets types.CourseBuckets) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM courses WHERE semester = ?`, semester); err != nil {
		return fmt.Errorf("clearing semester %s: %w", semester, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO courses (semester, number, type, bucket, title, url, authors)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	names := make([]string, 0, len(buckets))
	for b := range buckets {
		names = append(names, string(b))
	}
	sort.Strings(names)

	for _, name := range names {
		for _, c := range buckets[types.CourseBucket(name)] {
			authorsJSON, _ := json.Marshal(c.Authors)
			_, err := stmt.ExecContext(ctx,
				semester, c.Number, c.Type, name, c.Title, c.URL, string(authorsJSON),
			)
			if err != nil {
				return fmt.Errorf("recording course %s: %w", c.Number, err)
			}
		}
	}
	return tx.Commit()
}
