package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/neoscout/neoscout/internal/database"
	"github.com/neoscout/neoscout/internal/filters"
	"github.com/neoscout/neoscout/internal/settings"
	"github.com/neoscout/neoscout/internal/timeutil"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Start an interactive query session",
	Long: `Start an interactive session over the loaded datasets.

Both datasets are loaded and linked once at startup, so repeated
queries and inspections skip the parse cost.

Session commands:
  inspect <pdes-or-name>         Show one object (designation tried first)
  query [key=value ...]          Query close approaches, e.g.
                                 query max-distance=0.1 hazardous=true limit=5
  help                           Show the command summary
  quit | exit                    Leave the session`,
	Run: runInteractive,
}

var replCommands = []string{"inspect", "query", "help", "quit", "exit"}

func runInteractive(_ *cobra.Command, _ []string) {
	db, s, err := loadDatabase()
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(ExitRuntimeError)
	}

	if !quiet {
		fmt.Printf("Loaded %d NEOs and %d close approaches. Type 'help' for commands.\n",
			len(db.NEOs()), len(db.Approaches()))
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(prefix string) (out []string) {
		for _, c := range replCommands {
			if strings.HasPrefix(c, prefix) {
				out = append(out, c)
			}
		}
		return out
	})

	for {
		input, err := line.Prompt("neoscout> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println()
				return
			}
			fmt.Fprintf(os.Stderr, "✗ Reading input: %v\n", err)
			return
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if done := dispatchREPL(db, s, input); done {
			return
		}
	}
}

// dispatchREPL executes one session command; it returns true when the
// session should end.
func dispatchREPL(db *database.NEODatabase, s *settings.Settings, input string) bool {
	tokens, err := splitQuoted(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		return false
	}

	switch tokens[0] {
	case "quit", "exit":
		return true
	case "help":
		fmt.Println("Commands:")
		fmt.Println("  inspect <pdes-or-name>   Show one object (designation tried first)")
		fmt.Println("  query [key=value ...]    Query close approaches")
		fmt.Println("    keys: date, start-date, end-date, min-distance, max-distance,")
		fmt.Println("          min-velocity, max-velocity, min-diameter, max-diameter,")
		fmt.Println("          hazardous, where, limit, outfile")
		fmt.Println("  quit | exit              Leave the session")
	case "inspect":
		if len(tokens) < 2 {
			fmt.Fprintln(os.Stderr, "✗ Usage: inspect <pdes-or-name>")
			return false
		}
		key := strings.Join(tokens[1:], " ")
		neo := db.GetByDesignation(key)
		if neo == nil {
			neo = db.GetByName(key)
		}
		if neo == nil {
			fmt.Fprintf(os.Stderr, "✗ No NEO with designation or name %q\n", key)
			return false
		}
		fmt.Println(neo)
		for _, ca := range neo.Approaches {
			fmt.Printf("- %v\n", ca)
		}
	case "query":
		crit, where, limit, outfile, err := parseREPLQuery(tokens[1:])
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %v\n", err)
			return false
		}
		if limit == 0 && outfile == "" {
			limit = s.DefaultLimit
		}
		if err := executeQuery(db, crit, where, limit, outfile); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		}
	default:
		fmt.Fprintf(os.Stderr, "✗ Unknown command %q; type 'help'\n", tokens[0])
	}
	return false
}

// parseREPLQuery translates key=value pairs into criteria plus the
// query options that sit outside the criteria set.
func parseREPLQuery(pairs []string) (crit filters.Criteria, where string, limit int, outfile string, err error) {
	dateTargets := map[string]**time.Time{
		"date":       &crit.Date,
		"start-date": &crit.StartDate,
		"end-date":   &crit.EndDate,
	}
	numberTargets := map[string]**float64{
		"min-distance": &crit.DistanceMin,
		"max-distance": &crit.DistanceMax,
		"min-velocity": &crit.VelocityMin,
		"max-velocity": &crit.VelocityMax,
		"min-diameter": &crit.DiameterMin,
		"max-diameter": &crit.DiameterMax,
	}

	for _, pair := range pairs {
		key, val, found := strings.Cut(pair, "=")
		if !found || val == "" {
			return crit, "", 0, "", fmt.Errorf("expected key=value, got %q", pair)
		}

		if target, ok := dateTargets[key]; ok {
			t, perr := timeutil.ParseDate(val)
			if perr != nil {
				return crit, "", 0, "", fmt.Errorf("%s: %w", key, perr)
			}
			*target = &t
			continue
		}
		if target, ok := numberTargets[key]; ok {
			v, perr := strconv.ParseFloat(val, 64)
			if perr != nil {
				return crit, "", 0, "", fmt.Errorf("%s: not a number: %q", key, val)
			}
			*target = &v
			continue
		}

		switch key {
		case "hazardous":
			h, perr := strconv.ParseBool(val)
			if perr != nil {
				return crit, "", 0, "", fmt.Errorf("hazardous: not a boolean: %q", val)
			}
			crit.Hazardous = &h
		case "where":
			where = val
		case "limit":
			limit, err = strconv.Atoi(val)
			if err != nil || limit < 0 {
				return crit, "", 0, "", fmt.Errorf("limit: not a non-negative integer: %q", val)
			}
		case "outfile":
			outfile = val
		default:
			return crit, "", 0, "", fmt.Errorf("unknown query key %q", key)
		}
	}
	return crit, where, limit, outfile, nil
}

// splitQuoted splits on whitespace while keeping double-quoted spans
// intact, so where="velocity > 20" arrives as one token.
func splitQuoted(s string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	inQuote := false

	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
		case !inQuote && (r == ' ' || r == '\t'):
			if cur.Len() > 0 {
				tokens = append(tokens, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unterminated quote in %q", s)
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	return tokens, nil
}
