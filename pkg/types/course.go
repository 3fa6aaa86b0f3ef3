// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"sort"
)

// LocalizedText holds a German and an English rendering of the same text.
type LocalizedText struct {
	De string `xml:"de" json:"de"`
	En string `xml:"en" json:"en"`
}

// RawCourse is one course record from the course API.
type RawCourse struct {
	CourseNumber string        `xml:"courseNumber" json:"courseNumber"`
	SemesterCode string        `xml:"semesterCode" json:"semesterCode"`
	CourseType   string        `xml:"courseType" json:"courseType"`
	Title        LocalizedText `xml:"title" json:"title"`
	URL          string        `xml:"url" json:"url"`

	// Lecturers lists the upstream person ids (Person.OID) teaching the course.
	Lecturers []string `xml:"lecturers>oid" json:"lecturers"`
}

// Key returns the dedup key "{courseNumber}-{semesterCode}".
func (c RawCourse) Key() string {
	return c.CourseNumber + "-" + c.SemesterCode
}

// Course is the normalized course record written to the teaching data files.
type Course struct {
	// Authors lists the identifiers of the lecturers known to the run, in Person order.
	Authors []string `json:"authors" yaml:"authors"`
	Number  string   `json:"number" yaml:"number"`
	URL     string   `json:"url" yaml:"url"`
	Type    string   `json:"type" yaml:"type"`
	Title   string   `json:"title" yaml:"title"`
}

// CourseBucket names one of the three course partitions.
type CourseBucket string

const (
	BucketLecturesExercises CourseBucket = "lectures_exercises"
	BucketSeminarsProjects  CourseBucket = "seminars_projects"
	BucketOther             CourseBucket = "other"
)

// Buckets lists the partitions in the order the teaching pages show them.
var Buckets = []CourseBucket{BucketLecturesExercises, BucketSeminarsProjects, BucketOther}

// CourseBuckets maps each partition to its courses.
type CourseBuckets map[CourseBucket][]Course

// MarshalJSON writes the partitions in Buckets order, each as a list even
// when empty. Partitions outside Buckets follow in name order.
func (b CourseBuckets) MarshalJSON() ([]byte, error) {
	keys := append([]CourseBucket(nil), Buckets...)
	var extra []CourseBucket
	for k := range b {
		switch k {
		case BucketLecturesExercises, BucketSeminarsProjects, BucketOther:
		default:
			extra = append(extra, k)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	keys = append(keys, extra...)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(string(k))
		if err != nil {
			return nil, err
		}
		courses := b[k]
		if courses == nil {
			courses = []Course{}
		}
		list, err := json.Marshal(courses)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(list)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
