package record

import (
	"math"
	"strconv"
	"strings"
)

// CleanZIP renders a ZIP-like cell value as a digit string suitable for the
// standardization API. Spreadsheet sources frequently deliver ZIP codes as
// floats (63146.0) or as strings carrying the float artifact ("63146.0");
// both normalize to "63146". Absent, nil, and NaN values normalize to "".
// The function is idempotent: cleaning an already-clean value is a no-op.
func CleanZIP(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case float64:
		if math.IsNaN(val) {
			return ""
		}
		return strconv.FormatInt(int64(val), 10)
	case float32:
		if math.IsNaN(float64(val)) {
			return ""
		}
		return strconv.FormatInt(int64(val), 10)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case string:
		s := strings.TrimSpace(val)
		return strings.TrimSuffix(s, ".0")
	default:
		return strings.TrimSuffix(strings.TrimSpace(Stringify(v)), ".0")
	}
}
