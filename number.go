package formcoerce

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"mime/multipart"
	"strconv"
	"strings"
)

// toNumber converts a raw value with the semantics of a loose numeric cast:
// text is parsed, booleans map to 0/1, anything else is NaN.
func toNumber(v any) float64 {
	switch t := v.(type) {
	case string:
		return parseNumber(t)
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case int32:
		return float64(t)
	case uint:
		return float64(t)
	case uint64:
		return float64(t)
	case json.Number:
		return parseNumber(string(t))
	case bool:
		if t {
			return 1
		}
		return 0
	}
	return math.NaN()
}

// wideInteger converts integer literals wider than 64 bits, rounding to the
// nearest float64 (+Inf beyond its range).
func wideInteger(digits string, base int) float64 {
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return math.NaN()
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	return f
}

// parseNumber parses decimal literals (with optional sign and exponent),
// 0x/0o/0b integer literals and the Infinity keyword. Surrounding whitespace
// is ignored and blank text is 0. Anything else is NaN.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			switch {
			case err == nil:
				return float64(n)
			case errors.Is(err, strconv.ErrRange):
				return wideInteger(s[2:], base)
			}
			return math.NaN()
		}
	}
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9', c == '.', c == '+', c == '-', c == 'e', c == 'E':
		default:
			return math.NaN()
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
			return f
		}
		return math.NaN()
	}
	return f
}

// toText renders a raw value as a string.
func toText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case *multipart.FileHeader:
		return t.Filename
	case FileHandle:
		return t.Name()
	case float64:
		return formatNumber(t)
	case float32:
		return formatNumber(float64(t))
	case json.Number:
		return string(t)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			if e != nil {
				parts[i] = toText(e)
			}
		}
		return strings.Join(parts, ",")
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
