package codec

import (
	"fmt"
	"time"

	formcoerce "github.com/reoring/formcoerce"
)

// dateLayout is the wire format of <input type="date">.
const dateLayout = time.DateOnly

// FormDate returns a codec between YYYY-MM-DD text and time.Time in loc
// (time.Local when nil).
func FormDate(loc *time.Location) *DateCodec {
	return &DateCodec{strategy: formcoerce.DateStrategy(loc)}
}

// DateCodec converts calendar dates in both directions. Unlike the lenient
// coercion path, Decode reports malformed text as an error.
type DateCodec struct {
	strategy formcoerce.Strategy[any]
}

// Decode parses wire text into a date.
func (c *DateCodec) Decode(s string) (time.Time, error) {
	v, _ := c.strategy.Apply(s, false, false)
	t, ok := v.(time.Time)
	if !ok || formcoerce.IsInvalidDate(t) {
		return time.Time{}, formcoerce.Issues{{Path: "/", Code: formcoerce.CodeParseError, Message: fmt.Sprintf("invalid calendar date %q", s)}}
	}
	return t, nil
}

// Encode renders t as wire text. InvalidDate renders as "".
func (c *DateCodec) Encode(t time.Time) string {
	if formcoerce.IsInvalidDate(t) {
		return ""
	}
	return t.Format(dateLayout)
}
