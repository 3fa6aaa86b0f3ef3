// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sitefetch/internal/catalog"
	"github.com/pdiddy/sitefetch/internal/fetch"
	"github.com/pdiddy/sitefetch/internal/logging"
	"github.com/pdiddy/sitefetch/internal/pipeline"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch members, courses, and publications into the site project",
	Long: `Fetch downloads the organisational unit's members and runs the selected
stages:

  --members       write a profile page and avatar per whitelisted member
  --courses       write course data files for the current and previous semester
  --publications  write a page and citation file per publication

Profile and publication directories that already exist are skipped unless
--override is given. Course data files are always regenerated.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().BoolP("members", "m", false, "fetch member profiles")
	fetchCmd.Flags().BoolP("courses", "c", false, "fetch courses of the current and previous semester")
	fetchCmd.Flags().BoolP("publications", "p", false, "fetch publications of the members")
	fetchCmd.Flags().BoolP("override", "o", false, "overwrite existing content")
	fetchCmd.Flags().StringP("base", "b", "", "site project base directory (default from config, \"../..\")")
	fetchCmd.Flags().BoolP("debug", "d", false, "dump fetched records to the data directory")
	fetchCmd.Flags().String("at", "", "reference date for the semester calculation (YYYY-MM-DD, default today)")
	fetchCmd.Flags().Bool("no-catalog", false, "do not record results in the catalog database")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	logger := logging.FromContext(cmd.Context())

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if base, _ := cmd.Flags().GetString("base"); base != "" {
		cfg.Layout.BaseDir = base
	}

	opts := pipeline.Options{}
	opts.Members, _ = cmd.Flags().GetBool("members")
	opts.Courses, _ = cmd.Flags().GetBool("courses")
	opts.Publications, _ = cmd.Flags().GetBool("publications")
	opts.Override, _ = cmd.Flags().GetBool("override")
	opts.Debug, _ = cmd.Flags().GetBool("debug")

	if at, _ := cmd.Flags().GetString("at"); at != "" {
		t, err := time.ParseInLocation(time.DateOnly, at, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --at date %q: %w", at, err)
		}
		opts.At = t
	}

	if !opts.Any() {
		fmt.Fprintln(os.Stderr, "Nothing to do: pass --members, --courses, or --publications. Run with -h for help.")
		return nil
	}

	p := &pipeline.Pipeline{
		Config:   cfg,
		Upstream: fetch.New(cfg, logger),
		Logger:   logger,
	}

	if noCatalog, _ := cmd.Flags().GetBool("no-catalog"); !noCatalog && (opts.Courses || opts.Publications) {
		store, err := catalog.Open(filepath.Join(cfg.Layout.BaseDir, pipeline.DataDir))
		if err != nil {
			return err
		}
		defer store.Close()
		p.Catalog = store
	}

	report, err := p.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}
	printReport(report, opts)
	return nil
}

func printReport(r pipeline.Report, opts pipeline.Options) {
	fmt.Printf("\nPeople selected: %d\n", r.People)
	if opts.Members {
		fmt.Printf("Profiles: %d created, %d overwritten, %d skipped (total: %d)\n",
			r.Profiles.Created, r.Profiles.Overwritten, r.Profiles.Skipped, r.Profiles.Total())
	}
	if opts.Courses {
		sems := append([]string(nil), r.Semesters...)
		sort.Strings(sems)
		for _, s := range sems {
			fmt.Printf("Courses %s: %d\n", s, r.Courses[s])
		}
	}
	if opts.Publications {
		fmt.Printf("Publications: %d normalized, %d unmapped, %d duplicates\n",
			r.Publications.Normalized, r.Publications.Unmapped, r.Publications.Duplicates)
		fmt.Printf("Publication pages: %d created, %d overwritten, %d skipped (total: %d)\n",
			r.Stored.Created, r.Stored.Overwritten, r.Stored.Skipped, r.Stored.Total())
	}
}
