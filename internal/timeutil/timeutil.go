// Package timeutil converts between the compact calendar format used by the
// close approach dataset and UTC timestamps at minute precision.
//
// The input format looks like "2025-Nov-30 02:18" (abbreviated month name).
// The output format drops the month abbreviation and reads "2025-11-30 02:18";
// it deliberately carries no seconds because the source data has none.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	// calendarLayout matches the dataset's "cd" field, e.g. "2025-Nov-30 02:18".
	calendarLayout = "2006-Jan-02 15:04"

	// displayLayout is the fixed human-readable form, e.g. "2025-11-30 02:18".
	displayLayout = "2006-01-02 15:04"

	// dateLayout parses bare dates from command-line options, e.g. "2020-03-01".
	dateLayout = "2006-01-02"
)

// ParseCalendar parses a compact calendar string into a UTC timestamp.
// Leading and trailing whitespace is tolerated.
func ParseCalendar(s string) (time.Time, error) {
	t, err := time.ParseInLocation(calendarLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid calendar timestamp %q: %w", s, err)
	}
	return t, nil
}

// FormatDisplay renders a timestamp in the fixed human-readable form.
func FormatDisplay(t time.Time) string {
	return t.UTC().Format(displayLayout)
}

// ParseDate parses a bare "YYYY-MM-DD" date into a UTC timestamp at midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// DateOnly truncates a timestamp to its UTC date component.
func DateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
