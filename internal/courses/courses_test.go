// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package courses

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/sitefetch/pkg/types"
)

func rawCourse(number, semester, courseType string, lecturers ...string) types.RawCourse {
	return types.RawCourse{
		CourseNumber: number,
		SemesterCode: semester,
		CourseType:   courseType,
		Title:        types.LocalizedText{De: "Titel " + number, En: "Title " + number},
		URL:          "https://example.org/course/" + number,
		Lecturers:    lecturers,
	}
}

func samplePeople() []types.Person {
	return []types.Person{
		{Identifier: "ada-lovelace", OID: 11},
		{Identifier: "alan-turing", OID: 22},
		{Identifier: "grace-hopper", OID: 33},
	}
}

func TestBucket(t *testing.T) {
	tests := []struct {
		code string
		want types.CourseBucket
	}{
		{"VO", types.BucketLecturesExercises},
		{"VU", types.BucketLecturesExercises},
		{"SE", types.BucketSeminarsProjects},
		{"PV", types.BucketSeminarsProjects},
		{"PR", types.BucketSeminarsProjects},
		{"UE", types.BucketOther},
		{"", types.BucketOther},
		{"vo", types.BucketOther},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, Bucket(tt.code))
		})
	}
}

func TestDedupFirstSeenWins(t *testing.T) {
	first := rawCourse("188.001", "2024S", "VU", "11")
	first.URL = "first"
	dup := rawCourse("188.001", "2024S", "VU", "22")
	dup.URL = "second"
	otherSemester := rawCourse("188.001", "2023W", "VU", "11")

	kept, removed := Dedup([]types.RawCourse{first, otherSemester, dup})

	require.Len(t, kept, 2)
	assert.Equal(t, 1, removed)
	assert.Equal(t, "first", kept[0].URL)
	assert.Equal(t, "2023W", kept[1].SemesterCode)
}

func TestClassifyPartitionsAreDisjointAndExhaustive(t *testing.T) {
	raw := []types.RawCourse{
		rawCourse("1", "2024S", "VO", "11"),
		rawCourse("2", "2024S", "SE", "22"),
		rawCourse("3", "2024S", "UE", "33"),
		rawCourse("4", "2024S", "PR"),
		rawCourse("5", "2024S", "VU", "11", "22"),
		rawCourse("6", "2024S", "EX"),
	}

	buckets := Classify(raw, samplePeople())

	require.Len(t, buckets, 3)
	seen := map[string]int{}
	for _, courses := range buckets {
		for _, c := range courses {
			seen[c.Number]++
		}
	}
	assert.Len(t, seen, len(raw))
	for number, n := range seen {
		assert.Equal(t, 1, n, "course %s appears in %d buckets", number, n)
	}

	assert.Len(t, buckets[types.BucketLecturesExercises], 2)
	assert.Len(t, buckets[types.BucketSeminarsProjects], 2)
	assert.Len(t, buckets[types.BucketOther], 2)
}

func TestClassifyProjectsCourse(t *testing.T) {
	// Lecturer order is reversed relative to the people list.
	raw := []types.RawCourse{rawCourse("188.999", "2024S", "VU", "33", "99", "11")}

	buckets := Classify(raw, samplePeople())

	got := buckets[types.BucketLecturesExercises]
	require.Len(t, got, 1)
	assert.Equal(t, types.Course{
		Authors: []string{"ada-lovelace", "grace-hopper"},
		Number:  "188.999",
		URL:     "https://example.org/course/188.999",
		Type:    "VU",
		Title:   "Title 188.999",
	}, got[0])
}

func TestClassifyNoResolvableAuthors(t *testing.T) {
	buckets := Classify([]types.RawCourse{rawCourse("1", "2024S", "SE", "404")}, samplePeople())

	got := buckets[types.BucketSeminarsProjects]
	require.Len(t, got, 1)
	assert.NotNil(t, got[0].Authors)
	assert.Empty(t, got[0].Authors)
}

func TestClassifyEmptyInput(t *testing.T) {
	buckets := Classify(nil, samplePeople())
	for _, b := range []types.CourseBucket{types.BucketLecturesExercises, types.BucketSeminarsProjects, types.BucketOther} {
		assert.NotNil(t, buckets[b], "bucket %s", b)
		assert.Empty(t, buckets[b])
	}
}
