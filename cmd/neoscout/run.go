package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/neoscout/neoscout/internal/config"
)

var runCmd = &cobra.Command{
	Use:   "run <query-file>",
	Short: "Run a saved query from a file",
	Long: `Run a query stored in a JSON or YAML file.

The file is validated against the query schema before execution. A
saved query holds the same criteria the query command takes as flags,
plus an optional where-expression, limit, and output file.

Exit codes:
  0 - Query executed successfully
  1 - Validation errors (schema violations)
  2 - Parse errors (invalid JSON/YAML syntax)
  3 - Runtime errors

Examples:
  neoscout run queries/hazardous.yaml
  neoscout run --verbose close-pass.json`,
	Args: cobra.ExactArgs(1),
	Run:  runSavedQuery,
}

func runSavedQuery(_ *cobra.Command, args []string) {
	queryPath := args[0]

	if !quiet {
		fmt.Printf("Loading query: %s\n", queryPath)
	}

	result := config.ParseQueryFile(queryPath)

	if len(result.ParseErrors) > 0 {
		printParseErrors(result.ParseErrors)
		os.Exit(ExitParseError)
	}
	if len(result.ValidationErrors) > 0 {
		printValidationErrors(result.ValidationErrors)
		os.Exit(ExitValidationError)
	}

	query, err := config.ConvertToQuery(result.Data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ Failed to convert query: %v\n", err)
		os.Exit(ExitRuntimeError)
	}

	if verbose {
		if query.Name != "" {
			fmt.Printf("  Query: %s\n", query.Name)
		}
		if query.Description != "" {
			fmt.Printf("  Description: %s\n", query.Description)
		}
	}

	db, s, err := loadDatabase()
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(ExitRuntimeError)
	}

	limit := query.Limit
	if limit == 0 && query.Outfile == "" {
		limit = s.DefaultLimit
	}

	if err := executeQuery(db, query.Criteria, query.Where, limit, query.Outfile); err != nil {
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		if isUserError(err) {
			os.Exit(ExitValidationError)
		}
		os.Exit(ExitRuntimeError)
	}

	os.Exit(ExitSuccess)
}
