package tabular_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelworks/uspsbatch/internal/record"
	"github.com/kestrelworks/uspsbatch/internal/tabular"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"addresses.xlsx", "addresses_validated.xlsx"},
		{"/data/batch.csv", "/data/batch_validated.csv"},
		{"dir.with.dots/input.csv", "dir.with.dots/input_validated.csv"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tabular.OutputPath(tt.in))
	}
}

func TestForPath(t *testing.T) {
	rw, err := tabular.ForPath("input.csv")
	require.NoError(t, err)
	assert.IsType(t, tabular.CSV{}, rw)

	rw, err = tabular.ForPath("input.XLSX")
	require.NoError(t, err)
	assert.IsType(t, tabular.Excel{}, rw)

	_, err = tabular.ForPath("input.pdf")
	assert.Error(t, err)
}

func TestColumns_UnionInFirstAppearanceOrder(t *testing.T) {
	a := record.New()
	a.Set("streetAddress", "123 Main St")
	a.Set("state", "MO")

	b := record.New()
	b.Set("streetAddress", "456 Oak Ave")
	b.Set("ValidationError", "HTTP 400: bad request")

	c := record.New()
	c.Set("state", "WA")
	c.Set("Standardized_City", "SEATTLE")

	cols := tabular.Columns([]*record.Record{a, b, c})
	assert.Equal(t, []string{"streetAddress", "state", "ValidationError", "Standardized_City"}, cols)
}

func TestCSV_Roundtrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "input.csv")

	content := "streetAddress,city,state,ZIPCode\n" +
		"123 Main St,Saint Louis,MO,63146\n" +
		"456 Oak Ave,,WA,\n"
	require.NoError(t, os.WriteFile(in, []byte(content), 0o644))

	rows, err := tabular.CSV{}.Read(in)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Saint Louis", rows[0].GetString("city"))

	// Empty cells read back as absent fields, not empty strings.
	assert.False(t, rows[1].Has("city"))
	assert.False(t, rows[1].Has("ZIPCode"))
	assert.Equal(t, "WA", rows[1].GetString("state"))

	// Enrich one row and write everything back out.
	rows[0].Set("Standardized_City", "SAINT LOUIS")
	rows[1].Set("ValidationError", "HTTP 400: bad request")

	out := filepath.Join(dir, "output.csv")
	require.NoError(t, tabular.CSV{}.Write(out, rows))

	back, err := tabular.CSV{}.Read(out)
	require.NoError(t, err)
	require.Len(t, back, 2)
	assert.Equal(t, "SAINT LOUIS", back[0].GetString("Standardized_City"))
	assert.Equal(t, "HTTP 400: bad request", back[1].GetString("ValidationError"))
	assert.False(t, back[0].Has("ValidationError"))
	assert.False(t, back[1].Has("Standardized_City"))
}

func TestCSV_Read_MissingFile(t *testing.T) {
	_, err := tabular.CSV{}.Read(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestCSV_Write_RowOrderMatchesInput(t *testing.T) {
	dir := t.TempDir()

	var rows []*record.Record
	for _, id := range []string{"r-1", "r-2", "r-3", "r-4"} {
		rec := record.New()
		rec.Set("RecordID", id)
		rows = append(rows, rec)
	}

	out := filepath.Join(dir, "ordered.csv")
	require.NoError(t, tabular.CSV{}.Write(out, rows))

	back, err := tabular.CSV{}.Read(out)
	require.NoError(t, err)
	require.Len(t, back, 4)
	for i, id := range []string{"r-1", "r-2", "r-3", "r-4"} {
		assert.Equal(t, id, back[i].GetString("RecordID"))
	}
}

func TestExcel_Roundtrip(t *testing.T) {
	dir := t.TempDir()

	a := record.New()
	a.Set("streetAddress", "123 Main St")
	a.Set("state", "MO")
	a.Set("ZIPCode", "63146")

	b := record.New()
	b.Set("streetAddress", "456 Oak Ave")
	b.Set("state", "WA")
	b.Set("ValidationError", "RequestException: timeout")

	path := filepath.Join(dir, "batch.xlsx")
	require.NoError(t, tabular.Excel{}.Write(path, []*record.Record{a, b}))

	back, err := tabular.Excel{}.Read(path)
	require.NoError(t, err)
	require.Len(t, back, 2)

	assert.Equal(t, "123 Main St", back[0].GetString("streetAddress"))
	assert.Equal(t, "63146", back[0].GetString("ZIPCode"))
	assert.False(t, back[0].Has("ValidationError"), "empty cell must read back as absent")

	assert.Equal(t, "RequestException: timeout", back[1].GetString("ValidationError"))
	assert.False(t, back[1].Has("ZIPCode"))
}

func TestExcel_Read_MissingFile(t *testing.T) {
	_, err := tabular.Excel{}.Read(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}
