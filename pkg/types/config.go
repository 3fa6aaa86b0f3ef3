// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the sitefetch pipeline:
// configuration, upstream records (people, courses, publications), and the
// canonical records written to the content store.
package types

import "time"

// HTTPConfig holds shared HTTP settings used by every upstream client.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// UpstreamConfig locates the directory/course API and the publication export.
type UpstreamConfig struct {
	// DirectoryBase is the base URL of the directory and course API (e.g. "https://tiss.tuwien.ac.at").
	DirectoryBase string `json:"directory_base" yaml:"directory_base" mapstructure:"directory_base"`

	// PublicationBase is the base URL of the publication export (e.g. "https://publik.tuwien.ac.at").
	PublicationBase string `json:"publication_base" yaml:"publication_base" mapstructure:"publication_base"`

	// OrgUnitID is the organisational unit whose members are fetched.
	OrgUnitID int `json:"org_unit_id" yaml:"org_unit_id" mapstructure:"org_unit_id"`

	// Institute and Department are the export query codes (e.g. "E194" and "03").
	Institute  string `json:"institute" yaml:"institute" mapstructure:"institute"`
	Department string `json:"department" yaml:"department" mapstructure:"department"`
}

// SemesterConfig holds the month thresholds of the academic terms.
type SemesterConfig struct {
	// SummerStart is the first month of the summer term (default 3).
	SummerStart int `json:"summer_start" yaml:"summer_start" mapstructure:"summer_start"`

	// WinterStart is the first month of the winter term (default 10).
	WinterStart int `json:"winter_start" yaml:"winter_start" mapstructure:"winter_start"`
}

// PeopleConfig selects the people the pipeline works on.
type PeopleConfig struct {
	// Whitelist lists display names; only matching people are processed.
	Whitelist []string `json:"whitelist" yaml:"whitelist" mapstructure:"whitelist"`
}

// CoursesConfig holds settings for the courses stage.
type CoursesConfig struct {
	// Blacklist lists display names excluded from course lookups.
	Blacklist []string `json:"blacklist" yaml:"blacklist" mapstructure:"blacklist"`
}

// NameTransform maps several author spellings onto one display name.
type NameTransform struct {
	From []string `json:"from" yaml:"from" mapstructure:"from"`
	To   string   `json:"to" yaml:"to" mapstructure:"to"`
}

// PublicationsConfig holds settings for the publications stage.
type PublicationsConfig struct {
	// Blacklist lists display names excluded from publication lookups.
	Blacklist []string `json:"blacklist" yaml:"blacklist" mapstructure:"blacklist"`

	// Transform lists author rename rules.
	Transform []NameTransform `json:"transform" yaml:"transform" mapstructure:"transform"`
}

// RenameMap flattens the transform rules into a one-to-one lookup table.
// A later rule wins when two rules claim the same source spelling.
func (c PublicationsConfig) RenameMap() map[string]string {
	m := make(map[string]string)
	for _, t := range c.Transform {
		for _, from := range t.From {
			m[from] = t.To
		}
	}
	return m
}

// LayoutConfig names the directories of the site project, relative to its base.
type LayoutConfig struct {
	// BaseDir is the site project root (default "../..").
	BaseDir string `json:"base_dir" yaml:"base_dir" mapstructure:"base_dir"`

	// TemplateDir holds the author profile template (default "templates").
	TemplateDir string `json:"template_dir" yaml:"template_dir" mapstructure:"template_dir"`
}

// Config groups every setting read from config.yml.
type Config struct {
	HTTP         HTTPConfig         `json:"http" yaml:"http" mapstructure:"http"`
	Upstream     UpstreamConfig     `json:"upstream" yaml:"upstream" mapstructure:"upstream"`
	Semester     SemesterConfig     `json:"semester" yaml:"semester" mapstructure:"semester"`
	Layout       LayoutConfig       `json:"layout" yaml:"layout" mapstructure:"layout"`
	People       PeopleConfig       `json:"people" yaml:"people" mapstructure:"people"`
	Courses      CoursesConfig      `json:"courses" yaml:"courses" mapstructure:"courses"`
	Publications PublicationsConfig `json:"publications" yaml:"publications" mapstructure:"publications"`
}

// DefaultConfig returns the settings used when config.yml leaves a value unset.
func DefaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			Timeout:   60 * time.Second,
			UserAgent: "sitefetch/0.1",
		},
		Upstream: UpstreamConfig{
			DirectoryBase:   "https://tiss.tuwien.ac.at",
			PublicationBase: "https://publik.tuwien.ac.at",
			OrgUnitID:       4760,
			Institute:       "E194",
			Department:      "03",
		},
		Semester: SemesterConfig{
			SummerStart: 3,
			WinterStart: 10,
		},
		Layout: LayoutConfig{
			BaseDir:     "../..",
			TemplateDir: "templates",
		},
	}
}
