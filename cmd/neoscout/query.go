package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/neoscout/neoscout/internal/database"
	"github.com/neoscout/neoscout/internal/filters"
	"github.com/neoscout/neoscout/internal/timeutil"
	"github.com/neoscout/neoscout/internal/write"
)

var (
	// Query command flags. Pointer-valued criteria are derived from
	// cmd.Flags().Changed so unset and zero stay distinguishable.
	queryDate        string
	queryStartDate   string
	queryEndDate     string
	queryMinDistance float64
	queryMaxDistance float64
	queryMinVelocity float64
	queryMaxVelocity float64
	queryMinDiameter float64
	queryMaxDiameter float64
	queryHazardous   bool
	queryWhere       string
	queryLimit       int
	queryOutfile     string
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query close approaches matching a set of criteria",
	Long: `Query the close approach table for records matching all given criteria.

Every flag is optional; omitted flags do not constrain the results.
Boolean criteria accept an explicit value, so --hazardous=false selects
non-hazardous objects while omitting the flag selects both.

Without --outfile the first matches print to stdout (capped at the
configured default limit). With --outfile, results are written in the
format chosen by the file extension (.csv, .json, .xlsx).

Exit codes:
  0 - Query executed successfully
  1 - Invalid criteria or expression
  3 - Dataset load or write errors

Examples:
  neoscout query --date 2030-04-13
  neoscout query --max-distance 0.05 --min-velocity 20 --hazardous
  neoscout query --where 'velocity > 2 * distance' --limit 5
  neoscout query --start-date 2030-01-01 --outfile results.xlsx`,
	Run: runQuery,
}

func init() {
	f := queryCmd.Flags()
	f.StringVar(&queryDate, "date", "", "Only approaches on this date (YYYY-MM-DD)")
	f.StringVar(&queryStartDate, "start-date", "", "Only approaches on or after this date (YYYY-MM-DD)")
	f.StringVar(&queryEndDate, "end-date", "", "Only approaches on or before this date (YYYY-MM-DD)")
	f.Float64Var(&queryMinDistance, "min-distance", 0, "Minimum approach distance in au")
	f.Float64Var(&queryMaxDistance, "max-distance", 0, "Maximum approach distance in au")
	f.Float64Var(&queryMinVelocity, "min-velocity", 0, "Minimum relative velocity in km/s")
	f.Float64Var(&queryMaxVelocity, "max-velocity", 0, "Maximum relative velocity in km/s")
	f.Float64Var(&queryMinDiameter, "min-diameter", 0, "Minimum object diameter in km")
	f.Float64Var(&queryMaxDiameter, "max-diameter", 0, "Maximum object diameter in km")
	f.BoolVar(&queryHazardous, "hazardous", false, "Only (non-)hazardous objects; use --hazardous=false for non-hazardous")
	f.StringVar(&queryWhere, "where", "", "Expression predicate over the record fields")
	f.IntVar(&queryLimit, "limit", 0, "Maximum number of results (0 = unbounded when writing to a file)")
	f.StringVar(&queryOutfile, "outfile", "", "Write results to this file (.csv, .json, .xlsx)")
}

func runQuery(cmd *cobra.Command, _ []string) {
	crit, err := criteriaFromFlags(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ Invalid criteria: %v\n", err)
		os.Exit(ExitValidationError)
	}

	db, s, err := loadDatabase()
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(ExitRuntimeError)
	}

	limit := queryLimit
	if !cmd.Flags().Changed("limit") && queryOutfile == "" {
		limit = s.DefaultLimit
	}

	if err := executeQuery(db, crit, queryWhere, limit, queryOutfile); err != nil {
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		if isUserError(err) {
			os.Exit(ExitValidationError)
		}
		os.Exit(ExitRuntimeError)
	}

	os.Exit(ExitSuccess)
}

// criteriaFromFlags translates the query flags into criteria, setting only
// the options whose flag was actually given.
func criteriaFromFlags(cmd *cobra.Command) (filters.Criteria, error) {
	var crit filters.Criteria
	f := cmd.Flags()

	dates := []struct {
		name   string
		raw    string
		target **time.Time
	}{
		{"date", queryDate, &crit.Date},
		{"start-date", queryStartDate, &crit.StartDate},
		{"end-date", queryEndDate, &crit.EndDate},
	}
	for _, d := range dates {
		if !f.Changed(d.name) {
			continue
		}
		t, err := timeutil.ParseDate(d.raw)
		if err != nil {
			return filters.Criteria{}, fmt.Errorf("--%s: %w", d.name, err)
		}
		*d.target = &t
	}

	numbers := []struct {
		name   string
		val    float64
		target **float64
	}{
		{"min-distance", queryMinDistance, &crit.DistanceMin},
		{"max-distance", queryMaxDistance, &crit.DistanceMax},
		{"min-velocity", queryMinVelocity, &crit.VelocityMin},
		{"max-velocity", queryMaxVelocity, &crit.VelocityMax},
		{"min-diameter", queryMinDiameter, &crit.DiameterMin},
		{"max-diameter", queryMaxDiameter, &crit.DiameterMax},
	}
	for _, n := range numbers {
		if !f.Changed(n.name) {
			continue
		}
		v := n.val
		*n.target = &v
	}

	if f.Changed("hazardous") {
		h := queryHazardous
		crit.Hazardous = &h
	}

	return crit, nil
}

// executeQuery runs the shared criteria → predicates → query → limit →
// output pipeline used by the query, run, and interactive commands.
func executeQuery(db *database.NEODatabase, crit filters.Criteria, where string, limit int, outfile string) error {
	fs, _, err := crit.Build()
	if err != nil {
		return err
	}
	preds := filters.Predicates(fs)

	if where != "" {
		ep, err := filters.NewExprPredicate(where)
		if err != nil {
			return err
		}
		preds = append(preds, ep)
	}

	results := filters.Limit(db.Query(preds), limit)

	if outfile != "" {
		if err := write.ToFile(results, outfile); err != nil {
			return err
		}
		if !quiet {
			fmt.Printf("✓ Results written to %s\n", outfile)
		}
		return nil
	}

	count := 0
	for ca := range results {
		fmt.Println(ca)
		count++
	}
	if count == 0 && !quiet {
		fmt.Println("No matching close approaches found.")
	}
	return nil
}

// isUserError reports whether the failure came from the caller's criteria
// or expression rather than from the datasets or the filesystem.
func isUserError(err error) bool {
	var unsupported *filters.UnsupportedCriterionError
	return errors.As(err, &unsupported) || errors.Is(err, filters.ErrInvalidExpression)
}
