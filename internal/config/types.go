// Package config parses and validates saved query files (JSON/YAML).
//
// A saved query captures everything the query command takes on the command
// line: the filter criteria, an optional where-expression, a result limit,
// and an output file. Files are validated against an embedded JSON schema
// before conversion.
package config

import (
	"fmt"
	"strings"
)

// Error type categories for parse errors.
const (
	ErrorTypeSyntax = "syntax"
	ErrorTypeFormat = "format"
	ErrorTypeIO     = "io"
)

// ParseError represents a parsing error with location information.
type ParseError struct {
	// Path is the file path where the error occurred.
	Path string
	// Line is the line number (1-based, 0 if unknown).
	Line int
	// Column is the column number (1-based, 0 if unknown).
	Column int
	// Message is the error message.
	Message string
	// Type categorizes the error (syntax, io, format).
	Type string
}

// Error implements the error interface.
func (e ParseError) Error() string {
	var sb strings.Builder
	if e.Path != "" {
		sb.WriteString(e.Path)
		sb.WriteString(": ")
	}
	if e.Line > 0 {
		sb.WriteString(fmt.Sprintf("line %d", e.Line))
		if e.Column > 0 {
			sb.WriteString(fmt.Sprintf(", column %d", e.Column))
		}
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	return sb.String()
}

// ValidationError represents a schema validation error.
type ValidationError struct {
	// Path is the JSON path where the error occurred (e.g., "/criteria/date").
	Path string
	// Message is the error message.
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// Result contains the combined outcome of parsing and validating a saved
// query file.
type Result struct {
	// Data is the parsed document.
	Data map[string]any
	// ParseErrors contains parsing errors.
	ParseErrors []ParseError
	// ValidationErrors contains schema violations.
	ValidationErrors []ValidationError
	// FilePath is the path to the query file.
	FilePath string
	// Format is the detected format (json, yaml).
	Format string
}

// IsValid reports whether parsing and validation both succeeded.
func (r *Result) IsValid() bool {
	return len(r.ParseErrors) == 0 && len(r.ValidationErrors) == 0
}
