// Package write serializes result streams of linked close approaches.
//
// Three formats are supported, selected by output file extension: CSV (one
// flat row per approach, header first, all values stringified), JSON (a list
// of objects, each with the approach's own fields plus a nested object for
// the linked NEO), and XLSX (the flat row layout in a workbook sheet).
package write

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/neoscout/neoscout/internal/models"
	"github.com/neoscout/neoscout/internal/pathutil"
)

// Fieldnames is the flat output schema, in column order.
var Fieldnames = []string{
	"datetime_utc",
	"distance_au",
	"velocity_km_s",
	"designation",
	"name",
	"diameter_km",
	"potentially_hazardous",
}

// ErrUnsupportedFormat is returned for output paths whose extension maps to
// no serializer.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// ToFile serializes the result stream to the given path, choosing the format
// from the file extension (.csv, .json, .xlsx).
func ToFile(results iter.Seq[*models.CloseApproach], path string) error {
	if err := pathutil.ValidateOutputPath(path); err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ToCSV(results, path)
	case ".json":
		return ToJSON(results, path)
	case ".xlsx":
		return ToXLSX(results, path)
	default:
		return fmt.Errorf("%w: %q (want .csv, .json, or .xlsx)", ErrUnsupportedFormat, path)
	}
}

// flatRow renders one linked approach as stringified values in Fieldnames
// order. An unknown diameter renders as "NaN"; a missing name as the empty
// string.
func flatRow(ca *models.CloseApproach) []string {
	return []string{
		ca.TimeStr(),
		formatFloat(ca.Distance),
		formatFloat(ca.Velocity),
		ca.NEO.Designation,
		ca.NEO.Name,
		formatFloat(ca.NEO.Diameter),
		strconv.FormatBool(ca.NEO.Hazardous),
	}
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
