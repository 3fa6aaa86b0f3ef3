// Package main contains Mage build targets for sitefetch developer tooling.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// siteDirs lists the site project directories the fetch stages write into,
// relative to the base directory.
var siteDirs = []string{
	"people",
	"content/publication",
	"data/teaching/courses",
}

// baseDir returns the site project base directory: $SITEFETCH_BASE or "../..".
func baseDir() string {
	if b := os.Getenv("SITEFETCH_BASE"); b != "" {
		return b
	}
	return filepath.Join("..", "..")
}

// Init creates the site directory structure the fetch stages expect.
func Init() error {
	base := baseDir()
	for _, dir := range siteDirs {
		path := filepath.Join(base, dir)
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		fmt.Println("  ", path)
	}
	fmt.Println("Site directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "sitefetch"
	cmdPkg  = "./cmd/sitefetch"
)

// buildTags enables the SQLite full-text index used by the catalog.
const buildTags = "sqlite_fts5"

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-tags", buildTags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests with the catalog build tags.
func Test() error {
	return sh.RunV("go", "test", "-tags", buildTags, "./...")
}

// Fetch runs all fetch stages without overriding existing content.
func Fetch() error {
	mg.Deps(Build, Init)
	return sh.RunV(filepath.Join(binDir, binName), "fetch", "-m", "-c", "-p", "-b", baseDir())
}

// Refresh runs all fetch stages and overwrites existing content.
func Refresh() error {
	mg.Deps(Build, Init)
	return sh.RunV(filepath.Join(binDir, binName), "fetch", "-m", "-c", "-p", "-o", "-b", baseDir())
}

// Stats prints what the fetch stages have produced under the site base:
// profile and publication units, citation files and course data files,
// followed by the Go line counts of this repository.
func Stats() error {
	base := baseDir()

	profiles, err := units(filepath.Join(base, "people"), "")
	if err != nil {
		return err
	}
	pubs, err := units(filepath.Join(base, "content/publication"), "")
	if err != nil {
		return err
	}
	cited, err := units(filepath.Join(base, "content/publication"), "cite.bib")
	if err != nil {
		return err
	}
	courseFiles, err := filepath.Glob(filepath.Join(base, "data/teaching/courses", "*.json"))
	if err != nil {
		return err
	}

	prod, tests, err := goLines(".")
	if err != nil {
		return err
	}

	fmt.Printf("Site base:            %s\n", base)
	fmt.Printf("Profiles:             %d\n", profiles)
	fmt.Printf("Publications:         %d (%d with cite.bib)\n", pubs, cited)
	fmt.Printf("Course data files:    %d\n", len(courseFiles))
	fmt.Printf("Go lines (prod/test): %d/%d\n", prod, tests)
	return nil
}

// units counts the content unit directories below root. A non-empty marker
// counts only units holding that file. A missing root counts as zero.
func units(root, marker string) (int, error) {
	entries, err := os.ReadDir(root)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", root, err)
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if marker != "" {
			if _, err := os.Stat(filepath.Join(root, e.Name(), marker)); err != nil {
				continue
			}
		}
		n++
	}
	return n, nil
}

// goLines counts non-blank lines of production and test Go files, skipping
// directories the Go tool ignores.
func goLines(root string) (prod, tests int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.ContainsAny(d.Name()[:1], "._") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := 0
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				n++
			}
		}
		if strings.HasSuffix(path, "_test.go") {
			tests += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, tests, err
}
