package database

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/neoscout/neoscout/internal/filters"
	"github.com/neoscout/neoscout/internal/models"
)

func neo(t *testing.T, designation, name, diameter, pha string) *models.NearEarthObject {
	t.Helper()
	n, err := models.NewNearEarthObject(designation, name, diameter, pha)
	if err != nil {
		t.Fatalf("fixture object %s: %v", designation, err)
	}
	return n
}

func approach(t *testing.T, designation, calendar, dist, vel string) *models.CloseApproach {
	t.Helper()
	ca, err := models.NewCloseApproach(designation, calendar, dist, vel)
	if err != nil {
		t.Fatalf("fixture approach %s: %v", designation, err)
	}
	return ca
}

func testDB(t *testing.T) *NEODatabase {
	t.Helper()
	neos := []*models.NearEarthObject{
		neo(t, "433", "Eros", "16.84", "N"),
		neo(t, "99942", "Apophis", "0.34", "Y"),
		neo(t, "2020 AB", "", "", "N"),
	}
	approaches := []*models.CloseApproach{
		approach(t, "433", "2020-Jan-01 12:00", "0.39", "3.72"),
		approach(t, "99942", "2020-Mar-15 06:30", "0.0002", "7.42"),
		approach(t, "433", "2020-Jun-01 00:00", "0.45", "5.10"),
		approach(t, "2020 AB", "2021-Dec-24 18:00", "0.12", "12.30"),
	}
	db, err := New(neos, approaches)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return db
}

func TestLinkingIsTotal(t *testing.T) {
	db := testDB(t)

	for i, ca := range db.Approaches() {
		if ca.NEO == nil {
			t.Errorf("approach %d is unlinked", i)
			continue
		}
		if ca.NEO.Designation != ca.Designation {
			t.Errorf("approach %d linked to %q, expected %q", i, ca.NEO.Designation, ca.Designation)
		}
	}

	// Each object's approach list holds exactly its own approaches, in order.
	eros := db.GetByDesignation("433")
	if len(eros.Approaches) != 2 {
		t.Fatalf("Eros has %d approaches, want 2", len(eros.Approaches))
	}
	if !eros.Approaches[0].Time.Before(eros.Approaches[1].Time) {
		t.Error("Eros approaches lost input order")
	}
	for _, ca := range eros.Approaches {
		if ca.Designation != "433" {
			t.Errorf("foreign approach %q in Eros's list", ca.Designation)
		}
	}
}

func TestNewRejectsDanglingReference(t *testing.T) {
	neos := []*models.NearEarthObject{neo(t, "433", "Eros", "16.84", "N")}
	approaches := []*models.CloseApproach{
		approach(t, "433", "2020-Jan-01 12:00", "0.39", "3.72"),
		approach(t, "99942", "2020-Mar-15 06:30", "0.0002", "7.42"),
	}

	_, err := New(neos, approaches)
	var linkErr *LinkError
	if !errors.As(err, &linkErr) {
		t.Fatalf("expected *LinkError, got %v", err)
	}
	if linkErr.Code != ErrCodeLinkUnresolved || linkErr.Designation != "99942" || linkErr.Index != 1 {
		t.Errorf("unexpected link error: %+v", linkErr)
	}
}

func TestNewRejectsDuplicateDesignation(t *testing.T) {
	neos := []*models.NearEarthObject{
		neo(t, "433", "Eros", "16.84", "N"),
		neo(t, "433", "", "", "N"),
	}

	_, err := New(neos, nil)
	var linkErr *LinkError
	if !errors.As(err, &linkErr) {
		t.Fatalf("expected *LinkError, got %v", err)
	}
	if linkErr.Code != ErrCodeDuplicateDesignation {
		t.Errorf("code = %q, want %q", linkErr.Code, ErrCodeDuplicateDesignation)
	}
}

func TestLookups(t *testing.T) {
	db := testDB(t)

	if db.GetByDesignation("99942") == nil {
		t.Error("GetByDesignation missed Apophis")
	}
	if db.GetByDesignation("1") != nil {
		t.Error("GetByDesignation returned an object for an unknown designation")
	}
	if got := db.GetByName("Eros"); got == nil || got.Designation != "433" {
		t.Errorf("GetByName(Eros) = %v", got)
	}
	if db.GetByName("") != nil {
		t.Error("GetByName(\"\") must not resolve unnamed objects")
	}
}

func TestQueryEmptyPredicatesReturnsAllInOrder(t *testing.T) {
	db := testDB(t)

	got := filters.Collect(db.Query(nil))
	if len(got) != len(db.Approaches()) {
		t.Fatalf("got %d records, want %d", len(got), len(db.Approaches()))
	}
	for i := range got {
		if got[i] != db.Approaches()[i] {
			t.Fatalf("record %d out of order", i)
		}
	}
}

func TestQueryConjunction(t *testing.T) {
	db := testDB(t)

	// distance <= 0.5 AND velocity >= 4.0 keeps only the second Eros approach
	// and the unnamed object's approach.
	c := filters.Criteria{}
	distMax := 0.5
	velMin := 4.0
	c.DistanceMax = &distMax
	c.VelocityMin = &velMin

	built, _, err := c.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var designations []string
	var times []string
	for ca := range db.Query(filters.Predicates(built)) {
		designations = append(designations, ca.Designation)
		times = append(times, ca.TimeStr())
	}
	if !slices.Equal(designations, []string{"99942", "433", "2020 AB"}) {
		t.Errorf("unexpected matches: %v at %v", designations, times)
	}
}

func TestQueryStartDateScenario(t *testing.T) {
	db := testDB(t)

	start := time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC)
	built, _, err := filters.Criteria{StartDate: &start}.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got := filters.Collect(db.Query(filters.Predicates(built)))
	if len(got) != 3 {
		t.Fatalf("got %d matches, want 3", len(got))
	}
	for _, ca := range got {
		if ca.Time.Before(start) {
			t.Errorf("approach at %s predates the start date", ca.TimeStr())
		}
	}
}

func TestQueryHazardousScenario(t *testing.T) {
	db := testDB(t)

	hazardous := true
	built, _, err := filters.Criteria{Hazardous: &hazardous}.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got := filters.Collect(db.Query(filters.Predicates(built)))
	if len(got) != 1 || got[0].Designation != "99942" {
		t.Errorf("hazardous query returned %d records", len(got))
	}
}

func TestQueryIsLazyAndIdempotent(t *testing.T) {
	db := testDB(t)

	seq := filters.Limit(db.Query(nil), 2)
	first := filters.Collect(seq)
	second := filters.Collect(seq)

	if len(first) != 2 {
		t.Fatalf("limited query returned %d records", len(first))
	}
	if !slices.Equal(first, second) {
		t.Error("re-running the same query/limit produced different results")
	}
}

func TestQueryLimitPipeline(t *testing.T) {
	db := testDB(t)

	got := filters.Collect(filters.Limit(db.Query(nil), 3))
	if len(got) != 3 {
		t.Fatalf("got %d records, want 3", len(got))
	}
	for i := range got {
		if got[i] != db.Approaches()[i] {
			t.Errorf("record %d out of order", i)
		}
	}

	all := filters.Collect(filters.Limit(db.Query(nil), 0))
	if len(all) != len(db.Approaches()) {
		t.Errorf("unlimited pipeline returned %d records", len(all))
	}
}
