package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kestrelworks/uspsbatch/internal/record"
)

// CSV reads and writes comma-separated files. The first row is the header;
// rows may be ragged (shorter than the header).
type CSV struct{}

// Read loads a CSV file. Empty cells are skipped so the resulting record
// carries only the fields the row actually has.
func (CSV) Read(path string) ([]*record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}

	var rows []*record.Record
	for {
		cells, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		rec := record.New()
		for i, cell := range cells {
			if i >= len(header) || cell == "" {
				continue
			}
			rec.Set(header[i], cell)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// Write persists rows as CSV with the union of their columns as header.
func (CSV) Write(path string, rows []*record.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	cols := Columns(rows)
	if err := w.Write(cols); err != nil {
		return fmt.Errorf("writing header of %s: %w", path, err)
	}
	for _, row := range rows {
		if err := w.Write(cellValues(cols, row)); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return f.Close()
}
