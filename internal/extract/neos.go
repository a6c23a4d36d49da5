package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/neoscout/neoscout/internal/logger"
	"github.com/neoscout/neoscout/internal/models"
)

// Columns the NEO loader needs from the CSV header.
const (
	colDesignation = "pdes"
	colName        = "name"
	colDiameter    = "diameter"
	colHazardous   = "pha"
)

// LoadNEOs reads near-Earth objects from a CSV file.
// The returned slice preserves file order.
func LoadNEOs(path string) ([]*models.NearEarthObject, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newLoadError(ErrCodeIO, path, 0, "failed to open NEO dataset", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	// NEO rows never contain embedded record separators; keep the reader strict.
	reader.FieldsPerRecord = 0

	header, err := reader.Read()
	if err != nil {
		return nil, newLoadError(ErrCodeParseFailed, path, 0, "failed to read CSV header", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[col] = i
	}
	for _, col := range []string{colDesignation, colName, colDiameter, colHazardous} {
		if _, ok := index[col]; !ok {
			return nil, newLoadError(ErrCodeMissingColumn, path, 0,
				fmt.Sprintf("CSV header is missing column %q", col), nil)
		}
	}

	var neos []*models.NearEarthObject
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, newLoadError(ErrCodeParseFailed, path, row, "failed to read CSV row", err)
		}

		neo, err := models.NewNearEarthObject(
			record[index[colDesignation]],
			record[index[colName]],
			record[index[colDiameter]],
			record[index[colHazardous]],
		)
		if err != nil {
			return nil, newLoadError(ErrCodeParseFailed, path, row, err.Error(), err)
		}
		neos = append(neos, neo)
	}

	logger.WithDataset("neos", path).Debug("loaded near-Earth objects",
		slog.Int("count", len(neos)),
	)
	return neos, nil
}
