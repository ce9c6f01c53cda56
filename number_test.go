package formcoerce

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestParseNumber(t *testing.T) {
	cases := map[string]float64{
		"0":                             0,
		"  12  ":                        12,
		"-3.5":                          -3.5,
		"+4":                            4,
		".5":                            0.5,
		"5.":                            5,
		"1e3":                           1000,
		"0x10":                          16,
		"0o17":                          15,
		"0b101":                         5,
		"Infinity":                      math.Inf(1),
		"-Infinity":                     math.Inf(-1),
		"1e400":                         math.Inf(1),
		"":                              0,
		"0x100000000000000000":          math.Ldexp(1, 68),
		"0b1" + strings.Repeat("0", 70): math.Ldexp(1, 70),
		"0x" + strings.Repeat("f", 300): math.Inf(1),
	}
	for in, want := range cases {
		if got := parseNumber(in); got != want {
			t.Fatalf("parseNumber(%q) = %v, want %v", in, got, want)
		}
	}
	for _, in := range []string{"abc", "1,000", "0x", "0xZZ", "NaN", "infinity", "1e", "--1", "0x1p3"} {
		if got := parseNumber(in); !math.IsNaN(got) {
			t.Fatalf("parseNumber(%q) = %v, want NaN", in, got)
		}
	}
}

func TestToNumber_NonText(t *testing.T) {
	if got := toNumber(json.Number("2.5")); got != 2.5 {
		t.Fatalf("json.Number: got %v", got)
	}
	if got := toNumber(true); got != 1 {
		t.Fatalf("bool: got %v", got)
	}
	if got := toNumber(map[string]any{}); !math.IsNaN(got) {
		t.Fatalf("record: got %v", got)
	}
}

func TestToText(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{"a", "a"},
		{3.0, "3"},
		{math.NaN(), "NaN"},
		{true, "true"},
		{[]any{"a", nil, 2.0}, "a,,2"},
	}
	for _, tc := range cases {
		if got := toText(tc.in); got != tc.want {
			t.Fatalf("toText(%#v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
