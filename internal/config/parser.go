package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseQueryFile parses and validates a saved query file. The format is
// detected from the file extension (.json, .yaml, .yml) or, failing that,
// from the content itself. Validation runs only when parsing succeeds.
func ParseQueryFile(filepath string) *Result {
	result := &Result{FilePath: filepath}

	content, err := os.ReadFile(filepath)
	if err != nil {
		result.ParseErrors = append(result.ParseErrors, ParseError{
			Path:    filepath,
			Message: fmt.Sprintf("failed to read file: %v", err),
			Type:    ErrorTypeIO,
		})
		return result
	}

	format := DetectFormat(filepath)
	if format == "" {
		if strings.HasPrefix(strings.TrimSpace(string(content)), "{") {
			format = "json"
		} else {
			format = "yaml"
		}
	}
	result.Format = format

	switch format {
	case "json":
		result.Data, result.ParseErrors = parseJSON(string(content))
	case "yaml":
		result.Data, result.ParseErrors = parseYAML(string(content))
	}
	for i := range result.ParseErrors {
		if result.ParseErrors[i].Path == "" {
			result.ParseErrors[i].Path = filepath
		}
	}
	if len(result.ParseErrors) > 0 {
		return result
	}

	result.ValidationErrors = Validate(result.Data)
	return result
}

// DetectFormat infers the file format from its extension.
// Returns "json", "yaml", or empty string when the extension is unknown.
func DetectFormat(filepath string) string {
	switch strings.ToLower(path.Ext(filepath)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

func parseJSON(content string) (map[string]any, []ParseError) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, []ParseError{{Message: "empty content: expected JSON object", Type: ErrorTypeSyntax}}
	}

	var data any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		parseErr := ParseError{Message: err.Error(), Type: ErrorTypeSyntax}
		if syntaxErr, ok := err.(*json.SyntaxError); ok {
			parseErr.Line, parseErr.Column = offsetToLineColumn(content, syntaxErr.Offset)
			parseErr.Message = fmt.Sprintf("JSON syntax error: %s", syntaxErr.Error())
		}
		return nil, []ParseError{parseErr}
	}

	dataMap, ok := data.(map[string]any)
	if !ok {
		return nil, []ParseError{{
			Message: fmt.Sprintf("invalid query file: expected JSON object, got %T", data),
			Type:    ErrorTypeFormat,
		}}
	}
	return dataMap, nil
}

func parseYAML(content string) (map[string]any, []ParseError) {
	if strings.TrimSpace(content) == "" {
		return nil, []ParseError{{Message: "empty content: expected YAML document", Type: ErrorTypeSyntax}}
	}

	var data any
	if err := yaml.Unmarshal([]byte(content), &data); err != nil {
		parseErr := ParseError{Message: err.Error(), Type: ErrorTypeSyntax}
		// yaml.v3 encodes the position in the message as "yaml: line X: ...".
		if strings.Contains(err.Error(), "yaml: line ") {
			var line int
			if _, scanErr := fmt.Sscanf(err.Error(), "yaml: line %d:", &line); scanErr == nil {
				parseErr.Line = line
			}
		}
		return nil, []ParseError{parseErr}
	}

	dataMap, ok := data.(map[string]any)
	if !ok {
		return nil, []ParseError{{
			Message: fmt.Sprintf("invalid query file: expected YAML mapping, got %T", data),
			Type:    ErrorTypeFormat,
		}}
	}

	// Round-trip through JSON so the schema validator and converter see
	// uniform JSON types (float64 numbers) regardless of source format.
	normalized, err := normalize(dataMap)
	if err != nil {
		return nil, []ParseError{{Message: err.Error(), Type: ErrorTypeFormat}}
	}
	return normalized, nil
}

func normalize(data map[string]any) (map[string]any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("query file contains values that cannot be represented as JSON: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// offsetToLineColumn converts a byte offset to line and column numbers (1-based).
func offsetToLineColumn(content string, offset int64) (line, column int) {
	line = 1
	column = 1
	for i := int64(0); i < offset && i < int64(len(content)); i++ {
		if content[i] == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return line, column
}
