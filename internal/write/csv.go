package write

import (
	"encoding/csv"
	"fmt"
	"iter"
	"os"

	"github.com/neoscout/neoscout/internal/models"
)

// ToCSV writes the result stream as a flat CSV file: a header row followed by
// one row per approach, in stream order.
func ToCSV(results iter.Seq[*models.CloseApproach], path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Fieldnames); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for ca := range results {
		if err := w.Write(flatRow(ca)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV output: %w", err)
	}
	return nil
}
