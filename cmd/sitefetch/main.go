// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the sitefetch CLI. It pulls member,
// course, and publication data from the university APIs into the content
// tree of the group website.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/sitefetch/internal/logging"
	"github.com/pdiddy/sitefetch/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// envFiles are loaded before the configuration; earlier files win and the
// process environment wins over both.
var envFiles = []string{".env.local", ".env"}

// rootCmd is the base command for the sitefetch CLI.
var rootCmd = &cobra.Command{
	Use:   "sitefetch",
	Short: "Fetch people, courses, and publications for the group website",
	Long: `sitefetch pulls data from the directory and course API and from the
publication export, normalizes it, and writes it into the site project as
content units (one directory per person or publication) and data files.

Existing content is never touched unless --override is given, so manual edits
to generated pages survive later runs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		logger := logging.NewConsole(os.Stderr, logging.ParseLevel(level))
		cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "C", "", "config file (default: ./config.yml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default: $LOG_LEVEL or info)")
}

func initConfig() {
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "sitefetch"))
		}
	}

	viper.SetEnvPrefix("SITEFETCH")
	viper.AutomaticEnv()
}

// loadConfig reads the configuration file over the defaults. A missing
// file leaves the defaults in place; an unreadable one is an error.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	}
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
