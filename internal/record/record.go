package record

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Recognized address fields submitted to the standardization API.
const (
	KeyStreetAddress    = "streetAddress"
	KeyState            = "state"
	KeyCity             = "city"
	KeyZIPCode          = "ZIPCode"
	KeyZIPPlus4         = "ZIPPlus4"
	KeyFirm             = "firm"
	KeySecondaryAddress = "secondaryAddress"
	KeyUrbanization     = "urbanization"
)

// Caller-defined identifier fields. Opaque to validation, carried through
// unchanged, and defaulted to empty string when a row arrives without them.
const (
	KeyRecordID   = "RecordID"
	KeyCustomerID = "CustomerID"
	KeyOtherID    = "OtherID"
)

// Output-only fields added during enrichment.
const (
	KeyValidationError = "ValidationError"
	KeyWarnings        = "Warnings"
)

var identifierKeys = []string{KeyRecordID, KeyCustomerID, KeyOtherID}

// Record is one row of tabular input: an insertion-ordered mapping of field
// name to scalar value. Rows are schema-free; any column not recognized above
// is passthrough and survives validation untouched.
type Record struct {
	keys   []string
	values map[string]any
}

// New returns an empty record.
func New() *Record {
	return &Record{values: make(map[string]any)}
}

// Set stores a value under key. A key keeps its original position in the
// column order; new keys append to the end.
func (r *Record) Set(key string, value any) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// SetDefault stores value only when key is absent.
func (r *Record) SetDefault(key string, value any) {
	if _, ok := r.values[key]; !ok {
		r.Set(key, value)
	}
}

// Get returns the raw value for key and whether the key is present.
// A present-but-empty value is distinct from an absent key.
func (r *Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// GetString returns the value for key rendered as a string with surrounding
// whitespace trimmed, or "" when the key is absent.
func (r *Record) GetString(key string) string {
	v, ok := r.values[key]
	if !ok {
		return ""
	}
	return strings.TrimSpace(Stringify(v))
}

// Has reports whether key is present.
func (r *Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Keys returns the column names in insertion order.
func (r *Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of columns.
func (r *Record) Len() int {
	return len(r.keys)
}

// Clone returns an independent copy of the record.
func (r *Record) Clone() *Record {
	out := &Record{
		keys:   make([]string, len(r.keys)),
		values: make(map[string]any, len(r.values)),
	}
	copy(out.keys, r.keys)
	for k, v := range r.values {
		out.values[k] = v
	}
	return out
}

// EnsureIdentifiers defaults the three identifier columns to empty string so
// downstream joins never lose them, even when the input omits the column.
func EnsureIdentifiers(r *Record) {
	for _, key := range identifierKeys {
		r.SetDefault(key, "")
	}
}

// Stringify renders a scalar cell value as a string. Numeric values render
// without a trailing ".0" artifact; nil and NaN render as "".
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if math.IsNaN(val) {
			return ""
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		if math.IsNaN(float64(val)) {
			return ""
		}
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
