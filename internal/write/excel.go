package write

import (
	"fmt"
	"iter"

	"github.com/xuri/excelize/v2"

	"github.com/neoscout/neoscout/internal/models"
)

const sheetName = "Close Approaches"

// ToXLSX writes the result stream as an Excel workbook with a single sheet
// holding the flat row layout: header row first, one row per approach.
func ToXLSX(results iter.Seq[*models.CloseApproach], path string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for i, header := range Fieldnames {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	row := 2
	for ca := range results {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", row, err)
		}
		values := flatRow(ca)
		cells := make([]any, len(values))
		for i, v := range values {
			cells[i] = v
		}
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
		row++
	}

	for i := 1; i <= len(Fieldnames); i++ {
		col, err := excelize.ColumnNumberToName(i)
		if err != nil {
			return fmt.Errorf("failed to size column %d: %w", i, err)
		}
		if err := f.SetColWidth(sheetName, col, col, 20); err != nil {
			return fmt.Errorf("failed to size column %s: %w", col, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}
