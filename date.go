package formcoerce

import (
	"math"
	"strings"
	"time"
)

// maxDateComponent bounds each component so time.Date cannot overflow.
const maxDateComponent = 1e8

// invalidDateLoc tags the invalid date so it cannot collide with a parsed
// 0001-01-01 in UTC.
var invalidDateLoc = time.FixedZone("Invalid Date", 0)

// InvalidDate is the date produced for malformed text. It is a zero
// time.Time (IsZero reports true) carrying a private location; test for it
// with IsInvalidDate.
var InvalidDate = time.Time{}.In(invalidDateLoc)

// IsInvalidDate reports whether t is InvalidDate.
func IsInvalidDate(t time.Time) bool {
	return t.IsZero() && t.Location() == invalidDateLoc
}

// toDate parses "YYYY-MM-DD" into a calendar date at midnight in loc.
//
// Only text is accepted; any other value yields nil. Components are parsed
// like numbers and out-of-range months/days roll over. A missing or
// non-numeric component yields InvalidDate. Components are truncated toward
// zero after the month is shifted to its zero-based index.
func toDate(v any, loc *time.Location) any {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	if loc == nil {
		loc = time.Local
	}
	parts := strings.Split(s, "-")
	var comp [3]int
	for i := range comp {
		if i >= len(parts) {
			return InvalidDate
		}
		f := parseNumber(parts[i])
		if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > maxDateComponent {
			return InvalidDate
		}
		if i == 1 {
			f--
		}
		comp[i] = int(math.Trunc(f))
	}
	return time.Date(comp[0], time.Month(comp[1]+1), comp[2], 0, 0, 0, 0, loc)
}
