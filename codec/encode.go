// Package codec converts coerced values back into the raw form
// representation, the inverse of formcoerce coercion.
package codec

import (
	"math"
	"strconv"
	"time"
)

// Encode renders a coerced value as raw form input: numbers and dates become
// text, true becomes "on", false and NaN become "", nil stays nil and records
// are encoded field by field into a new map. Coercing the result with the
// same shape yields the original value again for every truthy conversion
// (non-empty text, true, non-NaN numbers, valid dates).
func Encode(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return t
	case bool:
		if t {
			return "on"
		}
		return ""
	case float64:
		switch {
		case math.IsNaN(t):
			return ""
		case math.IsInf(t, 1):
			return "Infinity"
		case math.IsInf(t, -1):
			return "-Infinity"
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return (&DateCodec{}).Encode(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = Encode(e)
		}
		return out
	}
	return v
}
