// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package courses deduplicates raw course records and sorts them into the
// lecture/exercise, seminar/project, and other buckets shown on the site.
package courses

import (
	"strconv"

	"github.com/pdiddy/sitefetch/pkg/types"
)

// Course type codes per bucket. Codes in neither set go to BucketOther.
var (
	LectureExerciseTypes = map[string]bool{"VO": true, "VU": true}
	SeminarProjectTypes  = map[string]bool{"SE": true, "PV": true, "PR": true}
)

// Bucket returns the partition a course type code belongs to.
func Bucket(courseType string) types.CourseBucket {
	switch {
	case LectureExerciseTypes[courseType]:
		return types.BucketLecturesExercises
	case SeminarProjectTypes[courseType]:
		return types.BucketSeminarsProjects
	default:
		return types.BucketOther
	}
}

// Dedup drops records whose "{courseNumber}-{semesterCode}" key was already
// seen earlier in the input. The first occurrence wins. It returns the kept
// records in input order and the number removed.
func Dedup(raw []types.RawCourse) ([]types.RawCourse, int) {
	seen := make(map[string]bool, len(raw))
	kept := make([]types.RawCourse, 0, len(raw))
	removed := 0
	for _, c := range raw {
		key := c.Key()
		if seen[key] {
			removed++
			continue
		}
		seen[key] = true
		kept = append(kept, c)
	}
	return kept, removed
}

// Classify projects each raw course into a Course and places it in exactly
// one bucket. All three buckets are always present in the result, possibly
// empty. Authors are the identifiers of people whose OID appears in the
// course's lecturer list, ordered as in people.
func Classify(raw []types.RawCourse, people []types.Person) types.CourseBuckets {
	buckets := types.CourseBuckets{
		types.BucketLecturesExercises: {},
		types.BucketSeminarsProjects:  {},
		types.BucketOther:             {},
	}
	for _, c := range raw {
		b := Bucket(c.CourseType)
		buckets[b] = append(buckets[b], project(c, people))
	}
	return buckets
}

func project(c types.RawCourse, people []types.Person) types.Course {
	lecturers := make(map[string]bool, len(c.Lecturers))
	for _, oid := range c.Lecturers {
		lecturers[oid] = true
	}

	authors := []string{}
	for _, p := range people {
		if lecturers[strconv.Itoa(p.OID)] {
			authors = append(authors, p.Identifier)
		}
	}

	return types.Course{
		Authors: authors,
		Number:  c.CourseNumber,
		URL:     c.URL,
		Type:    c.CourseType,
		Title:   c.Title.En,
	}
}
