// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/sitefetch/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatal(err)
	}
	store.now = func() time.Time { return time.Date(2024, 11, 5, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { store.Close() })
	return store
}

func samplePublications() []types.Publication {
	return []types.Publication{
		{
			ID:            "smith20",
			CanonicalType: "zeitschriftenartikel",
			AcademicType:  2,
			Title:         "Model Transformations in Practice",
			Authors:       []string{"Jane Smith", "John Doe"},
			Date:          "2020-06-15",
			Venue:         "Journal of Things",
		},
		{
			ID:            "doe19",
			CanonicalType: "vortrag_poster_mit_tagungsband",
			AcademicType:  1,
			Title:         "Graph Grammars for Everyone",
			Authors:       []string{"John Doe"},
			Date:          "2019-01-01",
		},
		{
			ID:            "lovelace21",
			CanonicalType: "bericht",
			AcademicType:  4,
			Title:         "A Report on Model Repair",
			Authors:       []string{"Ada Lovelace"},
			Date:          "2021-01-01",
		},
	}
}

func ids(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func intPtr(v int) *int { return &v }

func record(t *testing.T, store *Store) {
	t.Helper()
	if err := store.RecordPublications(context.Background(), samplePublications()); err != nil {
		t.Fatal(err)
	}
}

// --- schema tests ---

func TestOpenCreatesDBFile(t *testing.T) {
	store := testStore(t)
	if _, err := os.Stat(store.Path()); err != nil {
		t.Fatalf("database file not created: %v", err)
	}
	if filepath.Base(store.Path()) != DBFile {
		t.Errorf("database file = %s, want %s", filepath.Base(store.Path()), DBFile)
	}
}

func TestOpenIsReentrant(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	for i := 0; i < 2; i++ {
		store, err := Open(dir)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		store.Close()
	}
}

// --- publication tests ---

func TestRecordAndQueryAll(t *testing.T) {
	store := testStore(t)
	record(t, store)

	got, err := store.Query(context.Background(), QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"lovelace21", "smith20", "doe19"}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Errorf("entry %d = %s, want %s", i, got[i].ID, want[i])
		}
	}

	smith := got[1]
	if smith.Title != "Model Transformations in Practice" || smith.AcademicType != 2 ||
		smith.Venue != "Journal of Things" || len(smith.Authors) != 2 ||
		smith.RecordedAt != "2024-11-05T12:00:00Z" {
		t.Errorf("unexpected entry: %+v", smith)
	}
}

func TestRecordUpsertsExisting(t *testing.T) {
	store := testStore(t)
	record(t, store)

	changed := samplePublications()[:1]
	changed[0].Title = "Model Transformations Revisited"
	if err := store.RecordPublications(context.Background(), changed); err != nil {
		t.Fatal(err)
	}

	all, err := store.Query(context.Background(), QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d entries, want 3", len(all))
	}

	got, err := store.Query(context.Background(), QueryOptions{Query: "revisited"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "smith20" {
		t.Errorf("full-text after update = %v, want [smith20]", ids(got))
	}

	got, err = store.Query(context.Background(), QueryOptions{Query: "practice"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("old title still indexed: %v", ids(got))
	}
}

func TestQueryFilters(t *testing.T) {
	store := testStore(t)
	record(t, store)

	tests := []struct {
		name string
		opts QueryOptions
		want []string
	}{
		{"full text", QueryOptions{Query: "model"}, nil},
		{"author substring", QueryOptions{Author: "Doe"}, []string{"smith20", "doe19"}},
		{"academic type", QueryOptions{AcademicType: intPtr(4)}, []string{"lovelace21"}},
		{"academic type zero", QueryOptions{AcademicType: intPtr(0)}, []string{}},
		{"combined", QueryOptions{Query: "model", Author: "Lovelace"}, []string{"lovelace21"}},
		{"limit", QueryOptions{MaxResults: 1}, []string{"lovelace21"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Query(context.Background(), tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if tt.want == nil {
				if len(got) != 2 {
					t.Errorf("got %v, want two matches", ids(got))
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", ids(got), tt.want)
			}
			for i := range tt.want {
				if got[i].ID != tt.want[i] {
					t.Errorf("got %v, want %v", ids(got), tt.want)
				}
			}
		})
	}
}

// --- course tests ---

func TestRecordCoursesReplacesSemester(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	first := types.CourseBuckets{
		types.BucketLecturesExercises: {{Number: "194.001", Type: "VU", Title: "Programming", Authors: []string{"a"}}},
		types.BucketSeminarsProjects:  {{Number: "194.002", Type: "SE", Title: "Seminar", Authors: []string{}}},
		types.BucketOther:             {},
	}
	if err := store.RecordCourses(ctx, "2024W", first); err != nil {
		t.Fatal(err)
	}
	if err := store.RecordCourses(ctx, "2024S", first); err != nil {
		t.Fatal(err)
	}

	second := types.CourseBuckets{
		types.BucketOther: {{Number: "194.099", Type: "UE", Title: "Exercise"}},
	}
	if err := store.RecordCourses(ctx, "2024W", second); err != nil {
		t.Fatal(err)
	}

	got, err := store.Courses(ctx, "2024W")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Number != "194.099" || got[0].Bucket != types.BucketOther {
		t.Errorf("2024W courses = %+v, want only 194.099", got)
	}

	got, err = store.Courses(ctx, "2024S")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("2024S courses = %d, want 2", len(got))
	}
	if got[0].Bucket != types.BucketLecturesExercises || got[0].Authors[0] != "a" {
		t.Errorf("unexpected first course: %+v", got[0])
	}
}

// --- export tests ---

func TestExportJSON(t *testing.T) {
	store := testStore(t)
	record(t, store)

	var buf bytes.Buffer
	if err := store.Export(context.Background(), &buf, QueryOptions{Author: "Smith"}, FormatJSON); err != nil {
		t.Fatal(err)
	}

	var entries []Entry
	if err := json.Unmarshal(buf.Bytes(), &entries); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "smith20" {
		t.Errorf("exported %v, want [smith20]", ids(entries))
	}
}

func TestExportYAML(t *testing.T) {
	store := testStore(t)
	record(t, store)

	var buf bytes.Buffer
	if err := store.Export(context.Background(), &buf, QueryOptions{}, FormatYAML); err != nil {
		t.Fatal(err)
	}

	var entries []Entry
	if err := yaml.Unmarshal(buf.Bytes(), &entries); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("exported %d entries, want 3", len(entries))
	}
}

func TestExportEmptyAndUnknownFormat(t *testing.T) {
	store := testStore(t)

	var buf bytes.Buffer
	if err := store.Export(context.Background(), &buf, QueryOptions{}, FormatJSON); err != nil {
		t.Fatal(err)
	}
	if got := bytes.TrimSpace(buf.Bytes()); string(got) != "[]" {
		t.Errorf("empty export = %q, want []", got)
	}

	if err := store.Export(context.Background(), &buf, QueryOptions{}, "csv"); err == nil {
		t.Error("expected error for unknown format")
	}
}
