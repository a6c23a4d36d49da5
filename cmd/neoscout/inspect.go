package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	inspectPdes string
	inspectName string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspect a single near-Earth object",
	Long: `Look up one near-Earth object by primary designation or by name.

Exactly one of --pdes or --name must be given. With --verbose the
object's close approaches are listed as well.

Examples:
  neoscout inspect --pdes 433
  neoscout inspect --name Halley --verbose`,
	Run: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectPdes, "pdes", "", "Primary designation of the object")
	inspectCmd.Flags().StringVar(&inspectName, "name", "", "IAU name of the object")
}

func runInspect(_ *cobra.Command, _ []string) {
	if (inspectPdes == "") == (inspectName == "") {
		fmt.Fprintln(os.Stderr, "✗ Exactly one of --pdes or --name is required")
		os.Exit(ExitValidationError)
	}

	db, _, err := loadDatabase()
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(ExitRuntimeError)
	}

	neo := db.GetByDesignation(inspectPdes)
	if inspectName != "" {
		neo = db.GetByName(inspectName)
	}
	if neo == nil {
		fmt.Fprintln(os.Stderr, "✗ No matching NEO found; try another designation or name")
		os.Exit(ExitRuntimeError)
	}

	fmt.Println(neo)
	if verbose {
		for _, ca := range neo.Approaches {
			fmt.Printf("- %v\n", ca)
		}
	}

	os.Exit(ExitSuccess)
}
