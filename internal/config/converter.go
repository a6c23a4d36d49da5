package config

import (
	"fmt"
	"math"
	"time"

	"github.com/neoscout/neoscout/internal/filters"
	"github.com/neoscout/neoscout/internal/timeutil"
)

// Query is a saved query converted to the forms the pipeline consumes.
type Query struct {
	// Name and Description identify the query in logs and listings.
	Name        string
	Description string

	// Criteria are the structured filter options.
	Criteria filters.Criteria

	// Where is an optional free-form expression, empty when absent.
	Where string

	// Limit is the maximum result count, 0 for unbounded.
	Limit int

	// Outfile is the output path, empty to print to stdout.
	Outfile string
}

// ConvertToQuery converts a parsed and validated query document into a Query.
// It assumes schema validation already ran; type assertions that fail here
// indicate a schema/converter mismatch and surface as errors.
func ConvertToQuery(data map[string]any) (*Query, error) {
	q := &Query{}

	var err error
	if q.Name, err = optionalString(data, "name"); err != nil {
		return nil, err
	}
	if q.Description, err = optionalString(data, "description"); err != nil {
		return nil, err
	}
	if q.Where, err = optionalString(data, "where"); err != nil {
		return nil, err
	}
	if q.Outfile, err = optionalString(data, "outfile"); err != nil {
		return nil, err
	}

	if raw, ok := data["limit"]; ok {
		n, ok := raw.(float64)
		if !ok || n != math.Trunc(n) || n < 0 {
			return nil, fmt.Errorf("limit must be a non-negative integer, got %v", raw)
		}
		q.Limit = int(n)
	}

	if raw, ok := data["criteria"]; ok {
		criteria, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("criteria must be an object, got %T", raw)
		}
		if err := convertCriteria(criteria, &q.Criteria); err != nil {
			return nil, err
		}
	}

	return q, nil
}

func convertCriteria(data map[string]any, out *filters.Criteria) error {
	for key, target := range map[string]**float64{
		"minDistance": &out.DistanceMin,
		"maxDistance": &out.DistanceMax,
		"minVelocity": &out.VelocityMin,
		"maxVelocity": &out.VelocityMax,
		"minDiameter": &out.DiameterMin,
		"maxDiameter": &out.DiameterMax,
	} {
		raw, ok := data[key]
		if !ok {
			continue
		}
		n, ok := raw.(float64)
		if !ok {
			return fmt.Errorf("criteria.%s must be a number, got %T", key, raw)
		}
		*target = &n
	}

	for key, target := range map[string]**time.Time{
		"date":      &out.Date,
		"startDate": &out.StartDate,
		"endDate":   &out.EndDate,
	} {
		raw, ok := data[key]
		if !ok {
			continue
		}
		s, ok := raw.(string)
		if !ok {
			return fmt.Errorf("criteria.%s must be a date string, got %T", key, raw)
		}
		t, err := timeutil.ParseDate(s)
		if err != nil {
			return fmt.Errorf("criteria.%s: %w", key, err)
		}
		*target = &t
	}

	if raw, ok := data["hazardous"]; ok {
		b, ok := raw.(bool)
		if !ok {
			return fmt.Errorf("criteria.hazardous must be a boolean, got %T", raw)
		}
		out.Hazardous = &b
	}

	return nil
}

func optionalString(data map[string]any, key string) (string, error) {
	raw, ok := data[key]
	if !ok {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", key, raw)
	}
	return s, nil
}
