package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/neoscout/neoscout/internal/database"
	"github.com/neoscout/neoscout/internal/filters"
	"github.com/neoscout/neoscout/internal/models"
)

func testDatabase(t *testing.T) *database.NEODatabase {
	t.Helper()

	mk := func(designation, name, diameter, hazardous string) *models.NearEarthObject {
		neo, err := models.NewNearEarthObject(designation, name, diameter, hazardous)
		if err != nil {
			t.Fatalf("NewNearEarthObject(%s): %v", designation, err)
		}
		return neo
	}
	ca := func(designation, calendar, distance, velocity string) *models.CloseApproach {
		approach, err := models.NewCloseApproach(designation, calendar, distance, velocity)
		if err != nil {
			t.Fatalf("NewCloseApproach(%s): %v", designation, err)
		}
		return approach
	}

	neos := []*models.NearEarthObject{
		mk("433", "Eros", "16.84", "N"),
		mk("99942", "Apophis", "0.34", "Y"),
	}
	approaches := []*models.CloseApproach{
		ca("433", "2025-Nov-30 02:18", "0.397", "3.72"),
		ca("99942", "2029-Apr-13 21:46", "0.000254", "7.42"),
	}

	db, err := database.New(neos, approaches)
	if err != nil {
		t.Fatalf("database.New: %v", err)
	}
	return db
}

func TestCriteriaFromFlags(t *testing.T) {
	f := queryCmd.Flags()
	for name, value := range map[string]string{
		"start-date":   "2029-01-01",
		"max-distance": "0.5",
		"hazardous":    "false",
	} {
		if err := f.Set(name, value); err != nil {
			t.Fatalf("set --%s: %v", name, err)
		}
	}

	crit, err := criteriaFromFlags(queryCmd)
	if err != nil {
		t.Fatalf("criteriaFromFlags: %v", err)
	}

	if crit.StartDate == nil || crit.StartDate.Format("2006-01-02") != "2029-01-01" {
		t.Errorf("StartDate not set from flag: %v", crit.StartDate)
	}
	if crit.DistanceMax == nil || *crit.DistanceMax != 0.5 {
		t.Errorf("DistanceMax not set from flag: %v", crit.DistanceMax)
	}
	if crit.Hazardous == nil || *crit.Hazardous != false {
		t.Error("explicit --hazardous=false must set the option to false")
	}
	if crit.Date != nil || crit.DistanceMin != nil || crit.DiameterMax != nil {
		t.Error("untouched flags must leave their options unset")
	}
}

func TestCriteriaFromFlagsBadDate(t *testing.T) {
	f := queryCmd.Flags()
	if err := f.Set("date", "30/11/2025"); err != nil {
		t.Fatalf("set --date: %v", err)
	}
	defer func() {
		queryDate = ""
	}()

	if _, err := criteriaFromFlags(queryCmd); err == nil {
		t.Error("expected error for malformed --date value")
	}
}

func TestParseREPLQuery(t *testing.T) {
	crit, where, limit, outfile, err := parseREPLQuery([]string{
		"max-distance=0.1",
		"hazardous=true",
		"where=velocity > 5",
		"limit=3",
		"outfile=out.csv",
	})
	if err != nil {
		t.Fatalf("parseREPLQuery: %v", err)
	}
	if crit.DistanceMax == nil || *crit.DistanceMax != 0.1 {
		t.Errorf("DistanceMax = %v, want 0.1", crit.DistanceMax)
	}
	if crit.Hazardous == nil || !*crit.Hazardous {
		t.Error("hazardous=true not applied")
	}
	if where != "velocity > 5" {
		t.Errorf("where = %q", where)
	}
	if limit != 3 || outfile != "out.csv" {
		t.Errorf("limit = %d, outfile = %q", limit, outfile)
	}
}

func TestParseREPLQueryErrors(t *testing.T) {
	tests := []struct {
		name  string
		pairs []string
	}{
		{"unknown key", []string{"min-mass=3"}},
		{"missing value", []string{"max-distance="}},
		{"bare word", []string{"hazardous"}},
		{"bad number", []string{"min-velocity=fast"}},
		{"bad date", []string{"date=13/04/2029"}},
		{"negative limit", []string{"limit=-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, _, _, err := parseREPLQuery(tt.pairs); err == nil {
				t.Errorf("expected error for %v", tt.pairs)
			}
		})
	}
}

func TestSplitQuoted(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"inspect 433", []string{"inspect", "433"}},
		{`query where="velocity > 20" limit=5`, []string{"query", "where=velocity > 20", "limit=5"}},
		{"  query   max-distance=0.1 ", []string{"query", "max-distance=0.1"}},
	}
	for _, tt := range tests {
		got, err := splitQuoted(tt.input)
		if err != nil {
			t.Fatalf("splitQuoted(%q): %v", tt.input, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitQuoted(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	if _, err := splitQuoted(`query where="velocity > 20`); err == nil {
		t.Error("expected error for unterminated quote")
	}
	if _, err := splitQuoted("   "); err == nil {
		t.Error("expected error for empty command")
	}
}

func TestExecuteQueryWritesFile(t *testing.T) {
	db := testDatabase(t)
	outfile := filepath.Join(t.TempDir(), "results.csv")

	err := executeQuery(db, filters.Criteria{}, "", 0, outfile)
	if err != nil {
		t.Fatalf("executeQuery: %v", err)
	}

	data, err := os.ReadFile(outfile)
	if err != nil {
		t.Fatalf("reading outfile: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "433") || !strings.Contains(content, "99942") {
		t.Errorf("outfile missing expected rows:\n%s", content)
	}
}

func TestExecuteQueryRejectsBadExpression(t *testing.T) {
	db := testDatabase(t)
	if err := executeQuery(db, filters.Criteria{}, "velocity >", 0, ""); err == nil {
		t.Error("expected error for malformed where-expression")
	} else if !isUserError(err) {
		t.Errorf("malformed expression should classify as a user error, got %v", err)
	}
}

func TestExecuteQueryUnsupportedOutputFormat(t *testing.T) {
	db := testDatabase(t)
	outfile := filepath.Join(t.TempDir(), "results.txt")
	if err := executeQuery(db, filters.Criteria{}, "", 0, outfile); err == nil {
		t.Error("expected error for unsupported outfile extension")
	}
}
