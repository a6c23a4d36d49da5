package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema/query-schema.json
var embeddedSchema []byte

const schemaURL = "https://neoscout.io/schemas/query/v1.0.0/query-schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaInitErr  error
)

// getCompiledSchema returns the compiled query schema, compiling it on first
// use. Thread-safe via sync.Once.
func getCompiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(embeddedSchema))
		if err != nil {
			schemaInitErr = fmt.Errorf("failed to parse embedded schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, doc); err != nil {
			schemaInitErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		compiledSchema, schemaInitErr = compiler.Compile(schemaURL)
	})
	if schemaInitErr != nil {
		return nil, schemaInitErr
	}
	return compiledSchema, nil
}

// Validate checks a parsed query document against the embedded schema and
// returns every violation found. A nil slice means the document is valid.
func Validate(data map[string]any) []ValidationError {
	if data == nil {
		return []ValidationError{{Path: "/", Message: "query document is empty"}}
	}

	schema, err := getCompiledSchema()
	if err != nil {
		return []ValidationError{{Path: "/", Message: fmt.Sprintf("failed to load schema: %v", err)}}
	}

	// The validator wants plain JSON values; data was normalized at parse time.
	validationErr := schema.Validate(toAny(data))
	if validationErr == nil {
		return nil
	}

	if detailed, ok := validationErr.(*jsonschema.ValidationError); ok {
		return flattenValidationErrors(detailed)
	}
	return []ValidationError{{Path: "/", Message: validationErr.Error()}}
}

func toAny(data map[string]any) any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}

// flattenValidationErrors walks the nested cause tree into a flat list.
func flattenValidationErrors(err *jsonschema.ValidationError) []ValidationError {
	var out []ValidationError

	if err.ErrorKind != nil && len(err.Causes) == 0 {
		out = append(out, ValidationError{
			Path:    formatInstanceLocation(err.InstanceLocation),
			Message: err.Error(),
		})
	}
	for _, cause := range err.Causes {
		out = append(out, flattenValidationErrors(cause)...)
	}
	return out
}

// formatInstanceLocation formats the instance location as a JSON path.
func formatInstanceLocation(loc []string) string {
	if len(loc) == 0 {
		return "/"
	}
	return "/" + strings.Join(loc, "/")
}
