// Package main provides the CLI entry point for neoscout.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/neoscout/neoscout/internal/config"
	"github.com/neoscout/neoscout/internal/database"
	"github.com/neoscout/neoscout/internal/extract"
	"github.com/neoscout/neoscout/internal/logger"
	"github.com/neoscout/neoscout/internal/settings"
)

// Exit codes
const (
	ExitSuccess         = 0
	ExitValidationError = 1
	ExitParseError      = 2
	ExitRuntimeError    = 3
)

var (
	// Global flags
	verbose bool
	quiet   bool

	// Dataset path overrides (default paths come from settings)
	neoFile string
	cadFile string

	// Build information (set via ldflags during build)
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitRuntimeError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "neoscout",
	Short: "Neoscout - Near-Earth object close approach explorer",
	Long: `Neoscout explores NASA's near-Earth object datasets.

It loads the NEO catalog (CSV) and the close approach table (JSON),
links them, and answers queries over the linked records: filter by
date, distance, velocity, diameter, and hazard flag, or inspect a
single object.

Examples:
  # Show an object by designation
  neoscout inspect --pdes 433

  # Close approaches in 2030 nearer than 0.1 au
  neoscout query --start-date 2030-01-01 --end-date 2030-12-31 --max-distance 0.1

  # Run a saved query file
  neoscout run queries/hazardous.yaml`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// Configure logger level based on flags
		if verbose {
			logger.SetLevel(slog.LevelDebug)
		} else if quiet {
			logger.SetLevel(slog.LevelError)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print version, commit hash, and build date information.",
	Run:   runVersion,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&neoFile, "neofile", "", "Path to the NEO CSV dataset (overrides settings)")
	rootCmd.PersistentFlags().StringVar(&cadFile, "cadfile", "", "Path to the close approach JSON dataset (overrides settings)")

	// Add commands
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(versionCmd)
}

func runVersion(_ *cobra.Command, _ []string) {
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Commit: %s\n", commit)
	fmt.Printf("Build Date: %s\n", buildDate)
}

// loadDatabase resolves dataset paths from settings and flag overrides,
// loads both datasets, and links them.
func loadDatabase() (*database.NEODatabase, *settings.Settings, error) {
	s, err := settings.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading settings: %w", err)
	}
	// Flags win over the configured log level.
	if !verbose && !quiet {
		logger.SetLevel(s.SlogLevel())
	}

	neosPath := s.Data.NEOs
	if neoFile != "" {
		neosPath = neoFile
	}
	cadPath := s.Data.Approaches
	if cadFile != "" {
		cadPath = cadFile
	}

	neos, err := extract.LoadNEOs(neosPath)
	if err != nil {
		return nil, nil, err
	}
	approaches, err := extract.LoadApproaches(cadPath)
	if err != nil {
		return nil, nil, err
	}

	db, err := database.New(neos, approaches)
	if err != nil {
		return nil, nil, err
	}
	return db, s, nil
}

func printParseErrors(errors []config.ParseError) {
	fmt.Fprintln(os.Stderr, "✗ Parse errors:")
	for _, err := range errors {
		var location string
		if err.Path != "" {
			location = err.Path
			if err.Line > 0 {
				location += fmt.Sprintf(":%d", err.Line)
				if err.Column > 0 {
					location += fmt.Sprintf(":%d", err.Column)
				}
			}
		}

		if location != "" {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", location, err.Message)
		} else {
			fmt.Fprintf(os.Stderr, "  %s\n", err.Message)
		}

		if verbose && err.Type != "" {
			fmt.Fprintf(os.Stderr, "    Type: %s\n", err.Type)
		}
	}
}

func printValidationErrors(errors []config.ValidationError) {
	fmt.Fprintln(os.Stderr, "✗ Validation errors:")
	for _, err := range errors {
		path := err.Path
		if path == "" {
			path = "/"
		}

		msg := err.Message
		if len(msg) > 80 && !verbose {
			msg = msg[:77] + "..."
		}
		fmt.Fprintf(os.Stderr, "  %s: %s\n", path, msg)
	}

	if !quiet {
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Hint: Use --verbose for detailed error information")
	}
}
