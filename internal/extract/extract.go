// Package extract loads near-Earth objects and close approaches from the
// flat dataset files.
//
// NEOs come from a CSV file whose columns are addressed by header name, so
// column order and extra columns do not matter. Close approaches come from a
// JSON document of the form {"fields": [...], "data": [[...], ...]} where
// each data row is positional against the fields list.
package extract

import (
	"fmt"
	"strconv"
)

// Error codes for dataset loading.
const (
	ErrCodeIO            = "IO_ERROR"
	ErrCodeMissingColumn = "MISSING_COLUMN"
	ErrCodeMissingField  = "MISSING_FIELD"
	ErrCodeParseFailed   = "PARSE_FAILED"
)

// LoadError carries structured context for dataset loading failures.
type LoadError struct {
	// Code is one of the ErrCode constants above.
	Code string
	// Path is the dataset file that failed to load.
	Path string
	// Row is the 1-based data row where the failure occurred, 0 if not row-specific.
	Row int
	// Message is the human-readable error message.
	Message string
	// Err is the underlying error, if any.
	Err error
}

func (e *LoadError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%s: %s (row %d): %s", e.Code, e.Path, e.Row, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Message)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *LoadError) Unwrap() error {
	return e.Err
}

func newLoadError(code, path string, row int, message string, err error) *LoadError {
	return &LoadError{Code: code, Path: path, Row: row, Message: message, Err: err}
}

// stringify renders a positional JSON value as the raw string the record
// constructors expect. The dataset delivers strings, but numbers appear in
// some mirrors of the data, so both are accepted.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", t)
	}
}
