// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sitefetch/internal/catalog"
	"github.com/pdiddy/sitefetch/internal/pipeline"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [query]",
	Short: "Query the catalog of fetched publications and courses",
	Long: `Catalog searches the SQLite catalog that fetch maintains in the data
directory. Publication titles support FTS5 full-text queries; --author and
--type narrow the result. Use --semester to list the courses recorded for a
semester instead, or --format to export the matching publications.`,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringP("base", "b", "", "site project base directory (default from config, \"../..\")")
	catalogCmd.Flags().String("author", "", "filter by author name substring")
	catalogCmd.Flags().Int("type", -1, "filter by academic type ordinal (0-8)")
	catalogCmd.Flags().Int("limit", 0, "maximum results (0 = default 20)")
	catalogCmd.Flags().String("semester", "", "list the courses of a semester (e.g. 2024W)")
	catalogCmd.Flags().String("format", "", "export matching publications as yaml or json")

	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if base, _ := cmd.Flags().GetString("base"); base != "" {
		cfg.Layout.BaseDir = base
	}

	store, err := catalog.Open(filepath.Join(cfg.Layout.BaseDir, pipeline.DataDir))
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()

	if sem, _ := cmd.Flags().GetString("semester"); sem != "" {
		courses, err := store.Courses(ctx, sem)
		if err != nil {
			return err
		}
		if len(courses) == 0 {
			fmt.Printf("No courses recorded for %s.\n", sem)
			return nil
		}
		fmt.Fprintf(os.Stdout, "%-10s  %-4s  %-20s  %s\n", "Number", "Type", "Bucket", "Title")
		fmt.Fprintln(os.Stdout, strings.Repeat("-", 80))
		for _, c := range courses {
			fmt.Fprintf(os.Stdout, "%-10s  %-4s  %-20s  %s\n", c.Number, c.Type, c.Bucket, c.Title)
		}
		return nil
	}

	opts := catalog.QueryOptions{Query: strings.Join(args, " ")}
	opts.Author, _ = cmd.Flags().GetString("author")
	opts.MaxResults, _ = cmd.Flags().GetInt("limit")
	if t, _ := cmd.Flags().GetInt("type"); t >= 0 {
		opts.AcademicType = &t
	}

	if format, _ := cmd.Flags().GetString("format"); format != "" {
		return store.Export(ctx, os.Stdout, opts, catalog.Format(format))
	}

	entries, err := store.Query(ctx, opts)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-20s  %-10s  %-4s  %s\n", "Rank", "ID", "Date", "Type", "Title")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for i, e := range entries {
		title := e.Title
		if len(title) > 55 {
			title = title[:52] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-20s  %-10s  %-4d  %s\n", i+1, e.ID, e.Date, e.AcademicType, title)
	}
	fmt.Fprintf(os.Stdout, "\n%d results\n", len(entries))
	return nil
}
