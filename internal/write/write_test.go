package write

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/neoscout/neoscout/internal/models"
)

func fixtureResults(t *testing.T) iter.Seq[*models.CloseApproach] {
	t.Helper()

	eros, err := models.NewNearEarthObject("433", "Eros", "16.84", "N")
	if err != nil {
		t.Fatalf("fixture object: %v", err)
	}
	unnamed, err := models.NewNearEarthObject("2020 AB", "", "", "Y")
	if err != nil {
		t.Fatalf("fixture object: %v", err)
	}

	first, err := models.NewCloseApproach("433", "2025-Nov-30 02:18", "0.39", "3.72")
	if err != nil {
		t.Fatalf("fixture approach: %v", err)
	}
	first.NEO = eros

	second, err := models.NewCloseApproach("2020 AB", "2021-Dec-24 18:00", "0.12", "12.3")
	if err != nil {
		t.Fatalf("fixture approach: %v", err)
	}
	second.NEO = unnamed

	approaches := []*models.CloseApproach{first, second}
	return func(yield func(*models.CloseApproach) bool) {
		for _, ca := range approaches {
			if !yield(ca) {
				return
			}
		}
	}
}

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := ToCSV(fixtureResults(t), path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if !slices.Equal(rows[0], Fieldnames) {
		t.Errorf("header = %v", rows[0])
	}

	want := []string{"2025-11-30 02:18", "0.39", "3.72", "433", "Eros", "16.84", "false"}
	if !slices.Equal(rows[1], want) {
		t.Errorf("row 1 = %v, want %v", rows[1], want)
	}

	// Unknown diameter stringifies as NaN, missing name as empty.
	want = []string{"2021-12-24 18:00", "0.12", "12.3", "2020 AB", "", "NaN", "true"}
	if !slices.Equal(rows[2], want) {
		t.Errorf("row 2 = %v, want %v", rows[2], want)
	}
}

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := ToJSON(fixtureResults(t), path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	first := records[0]
	if first["datetime_utc"] != "2025-11-30 02:18" || first["distance_au"] != 0.39 {
		t.Errorf("unexpected first record: %v", first)
	}

	// The nested object carries all four NEO fields.
	neo, ok := first["neo"].(map[string]any)
	if !ok {
		t.Fatalf("first record has no nested neo object")
	}
	for _, key := range []string{"designation", "name", "diameter_km", "potentially_hazardous"} {
		if _, present := neo[key]; !present {
			t.Errorf("nested neo object is missing %q", key)
		}
	}
	if neo["designation"] != "433" || neo["name"] != "Eros" || neo["diameter_km"] != 16.84 {
		t.Errorf("unexpected nested neo: %v", neo)
	}

	// Unknown diameter is null, missing name is the empty string.
	secondNEO := records[1]["neo"].(map[string]any)
	if secondNEO["diameter_km"] != nil {
		t.Errorf("unknown diameter = %v, want null", secondNEO["diameter_km"])
	}
	if secondNEO["name"] != "" {
		t.Errorf("missing name = %v, want empty string", secondNEO["name"])
	}
}

func TestToJSONEmptyStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	empty := func(yield func(*models.CloseApproach) bool) {}
	if err := ToJSON(empty, path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var records []any
	if err := json.Unmarshal(raw, &records); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("empty stream must serialize as [], got %s", raw)
	}
}

func TestToXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := ToXLSX(fixtureResults(t), path); err != nil {
		t.Fatalf("ToXLSX: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if !slices.Equal(rows[0], Fieldnames) {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][3] != "433" || rows[1][4] != "Eros" {
		t.Errorf("row 1 = %v", rows[1])
	}
}

func TestToFileDispatch(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"out.csv", "out.json", "out.xlsx", "OUT.CSV"} {
		if err := ToFile(fixtureResults(t), filepath.Join(dir, name)); err != nil {
			t.Errorf("ToFile(%s): %v", name, err)
		}
	}

	err := ToFile(fixtureResults(t), filepath.Join(dir, "out.txt"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}
