package record_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kestrelworks/uspsbatch/internal/record"
)

func TestRecord_InsertionOrder(t *testing.T) {
	rec := record.New()
	rec.Set("streetAddress", "123 Main St")
	rec.Set("state", "MO")
	rec.Set("RecordID", "r-1")

	assert.Equal(t, []string{"streetAddress", "state", "RecordID"}, rec.Keys())

	// Overwriting a key keeps its original position.
	rec.Set("state", "WA")
	assert.Equal(t, []string{"streetAddress", "state", "RecordID"}, rec.Keys())
	assert.Equal(t, "WA", rec.GetString("state"))
}

func TestRecord_PresenceVsEmpty(t *testing.T) {
	rec := record.New()
	rec.Set("city", "")

	_, present := rec.Get("city")
	assert.True(t, present, "empty value should still count as present")

	_, present = rec.Get("ZIPCode")
	assert.False(t, present)
	assert.Equal(t, "", rec.GetString("ZIPCode"))
}

func TestRecord_SetDefault(t *testing.T) {
	rec := record.New()
	rec.Set("RecordID", "r-42")

	rec.SetDefault("RecordID", "")
	rec.SetDefault("CustomerID", "")

	assert.Equal(t, "r-42", rec.GetString("RecordID"), "SetDefault must not overwrite")
	v, ok := rec.Get("CustomerID")
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestRecord_GetString_Rendering(t *testing.T) {
	rec := record.New()
	rec.Set("padded", "  63146  ")
	rec.Set("zipFloat", 63146.0)
	rec.Set("count", 7)

	assert.Equal(t, "63146", rec.GetString("padded"))
	assert.Equal(t, "63146", rec.GetString("zipFloat"))
	assert.Equal(t, "7", rec.GetString("count"))
}

func TestRecord_Clone_Independent(t *testing.T) {
	rec := record.New()
	rec.Set("streetAddress", "123 Main St")

	clone := rec.Clone()
	clone.Set("streetAddress", "456 Oak Ave")
	clone.Set("Warnings", "corrected")

	assert.Equal(t, "123 Main St", rec.GetString("streetAddress"))
	assert.False(t, rec.Has("Warnings"))
	assert.Equal(t, 1, rec.Len())
	assert.Equal(t, 2, clone.Len())
}

func TestEnsureIdentifiers(t *testing.T) {
	rec := record.New()
	rec.Set("streetAddress", "123 Main St")
	rec.Set("CustomerID", "c-9")

	record.EnsureIdentifiers(rec)

	for _, key := range []string{"RecordID", "CustomerID", "OtherID"} {
		assert.True(t, rec.Has(key), key)
	}
	assert.Equal(t, "c-9", rec.GetString("CustomerID"), "existing identifier must be preserved")
	assert.Equal(t, "", rec.GetString("RecordID"))
}
