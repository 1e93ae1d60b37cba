package tabular

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/kestrelworks/uspsbatch/internal/record"
)

const defaultSheet = "Sheet1"

// Excel reads and writes .xlsx workbooks. Reading uses the first sheet;
// writing produces a single-sheet workbook.
type Excel struct{}

// Read loads the first sheet of a workbook. The first row is the header;
// empty cells are skipped, matching the CSV backend.
func (Excel) Read(path string) ([]*record.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%s has no sheets", path)
	}

	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s of %s: %w", sheet, path, err)
	}
	if len(cells) == 0 {
		return nil, nil
	}

	header := cells[0]
	var rows []*record.Record
	for _, line := range cells[1:] {
		rec := record.New()
		for i, cell := range line {
			if i >= len(header) || cell == "" {
				continue
			}
			rec.Set(header[i], cell)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// Write persists rows as a single-sheet workbook with the union of their
// columns as the header row.
func (Excel) Write(path string, rows []*record.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	cols := Columns(rows)
	if err := setRow(f, 1, cols); err != nil {
		return fmt.Errorf("writing header of %s: %w", path, err)
	}
	for i, row := range rows {
		if err := setRow(f, i+2, cellValues(cols, row)); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func setRow(f *excelize.File, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(defaultSheet, cell, &cells)
}
