// Package tabular reads input rows from and writes output rows to tabular
// files. Field presence is row-dependent, not schema-fixed: an empty cell is
// an absent field, so presence semantics survive a round trip.
package tabular

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kestrelworks/uspsbatch/internal/record"
)

// Reader loads a file into records, one per data row.
type Reader interface {
	Read(path string) ([]*record.Record, error)
}

// Writer persists records to a file, one row per record, preserving order.
type Writer interface {
	Write(path string, rows []*record.Record) error
}

// ReadWriter combines both directions for one format.
type ReadWriter interface {
	Reader
	Writer
}

// ForPath selects a format implementation by file extension.
func ForPath(path string) (ReadWriter, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return CSV{}, nil
	case ".xlsx", ".xlsm":
		return Excel{}, nil
	default:
		return nil, fmt.Errorf("unsupported file format %q (want .csv or .xlsx)", ext)
	}
}

// OutputPath derives the output location for an input file:
// <base>_validated<ext> next to the original.
func OutputPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_validated" + ext
}

// Columns returns the union of column names across rows in first-appearance
// order, so input columns lead and enrichment columns follow.
func Columns(rows []*record.Record) []string {
	var cols []string
	seen := make(map[string]bool)
	for _, row := range rows {
		for _, key := range row.Keys() {
			if !seen[key] {
				seen[key] = true
				cols = append(cols, key)
			}
		}
	}
	return cols
}

// cellValues renders one record against the full column set; absent fields
// render as empty cells.
func cellValues(cols []string, row *record.Record) []string {
	out := make([]string, len(cols))
	for i, col := range cols {
		if v, ok := row.Get(col); ok {
			out[i] = record.Stringify(v)
		}
	}
	return out
}
