package codec_test

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	formcoerce "github.com/reoring/formcoerce"
	"github.com/reoring/formcoerce/codec"
	"github.com/reoring/formcoerce/dsl"
)

func TestFormDate_Decode(t *testing.T) {
	c := codec.FormDate(time.UTC)
	got, err := c.Decode("2024-02-29")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if got := c.Encode(got); got != "2024-02-29" {
		t.Fatalf("encode: %q", got)
	}
}

func TestFormDate_DecodeInvalid(t *testing.T) {
	c := codec.FormDate(time.UTC)
	for _, in := range []string{"", "garbage", "2024-xx-01"} {
		_, err := c.Decode(in)
		iss, ok := formcoerce.AsIssues(err)
		if !ok || len(iss) != 1 || iss[0].Code != formcoerce.CodeParseError {
			t.Fatalf("%q: expected parse_error issue, got %v", in, err)
		}
	}
	if got := c.Encode(formcoerce.InvalidDate); got != "" {
		t.Fatalf("invalid date should encode empty, got %q", got)
	}
}

func TestFormDate_FirstDayOfYearOne(t *testing.T) {
	c := codec.FormDate(time.UTC)
	got, err := c.Decode("0001-01-01")
	if err != nil {
		t.Fatalf("0001-01-01 is a valid date: %v", err)
	}
	if got := c.Encode(got); got != "0001-01-01" {
		t.Fatalf("encode: %q", got)
	}
}

func TestEncode_Primitives(t *testing.T) {
	cases := []struct {
		in   any
		want any
	}{
		{nil, nil},
		{"abc", "abc"},
		{true, "on"},
		{false, ""},
		{42.5, "42.5"},
		{1e21, "1000000000000000000000"},
		{math.NaN(), ""},
		{math.Inf(-1), "-Infinity"},
		{time.Date(2023, 7, 4, 0, 0, 0, 0, time.UTC), "2023-07-04"},
	}
	for _, tc := range cases {
		if got := codec.Encode(tc.in); !cmp.Equal(got, tc.want) {
			t.Errorf("Encode(%v) = %#v, want %#v", tc.in, got, tc.want)
		}
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	shape := dsl.Object().
		Field("name", dsl.String()).
		Field("age", dsl.Number()).
		Field("agree", dsl.Bool()).
		Field("born", dsl.Date()).
		Field("address", dsl.Object().Field("zip", dsl.String()))
	c := formcoerce.New(formcoerce.Options{Location: time.UTC})

	raw := map[string]any{
		"name":    "Ada",
		"age":     "36",
		"agree":   "on",
		"born":    "1815-12-10",
		"address": map[string]any{"zip": "02139"},
	}
	first, _ := c.Coerce(raw, shape)
	second, ok := c.Coerce(codec.Encode(first), shape)
	if !ok {
		t.Fatal("re-coerced record omitted")
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("round trip mismatch (-first +second):\n%s", diff)
	}
}
