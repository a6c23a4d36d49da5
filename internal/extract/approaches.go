package extract

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/neoscout/neoscout/internal/logger"
	"github.com/neoscout/neoscout/internal/models"
)

// Fields the approach loader needs from the JSON "fields" list.
const (
	fieldDesignation = "des"
	fieldCalendar    = "cd"
	fieldDistance    = "dist"
	fieldVelocity    = "v_rel"
)

// approachDocument is the shape of the close approach dataset: a positional
// schema in "fields" and one array per approach in "data".
type approachDocument struct {
	Fields []string `json:"fields"`
	Data   [][]any  `json:"data"`
}

// LoadApproaches reads close approaches from a JSON file.
// The returned slice preserves file order. The approaches are not yet linked
// to their objects; that is the database constructor's job.
func LoadApproaches(path string) ([]*models.CloseApproach, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newLoadError(ErrCodeIO, path, 0, "failed to open approach dataset", err)
	}
	defer f.Close()

	var doc approachDocument
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return nil, newLoadError(ErrCodeParseFailed, path, 0, "failed to decode JSON document", err)
	}

	index := make(map[string]int, len(doc.Fields))
	for i, field := range doc.Fields {
		index[field] = i
	}
	wanted := []string{fieldDesignation, fieldCalendar, fieldDistance, fieldVelocity}
	for _, field := range wanted {
		if _, ok := index[field]; !ok {
			return nil, newLoadError(ErrCodeMissingField, path, 0,
				fmt.Sprintf("JSON fields list is missing %q", field), nil)
		}
	}

	approaches := make([]*models.CloseApproach, 0, len(doc.Data))
	for i, row := range doc.Data {
		if len(row) < len(doc.Fields) {
			return nil, newLoadError(ErrCodeParseFailed, path, i+1,
				fmt.Sprintf("data row has %d values, schema has %d fields", len(row), len(doc.Fields)), nil)
		}

		ca, err := models.NewCloseApproach(
			stringify(row[index[fieldDesignation]]),
			stringify(row[index[fieldCalendar]]),
			stringify(row[index[fieldDistance]]),
			stringify(row[index[fieldVelocity]]),
		)
		if err != nil {
			return nil, newLoadError(ErrCodeParseFailed, path, i+1, err.Error(), err)
		}
		approaches = append(approaches, ca)
	}

	logger.WithDataset("approaches", path).Debug("loaded close approaches",
		slog.Int("count", len(approaches)),
	)
	return approaches, nil
}
