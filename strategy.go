package formcoerce

import "time"

// Strategy applies the shared fallback policy around a conversion function.
// It is stateless and safe for concurrent use.
type Strategy[T any] struct {
	convert func(any) T
	empty   any
}

// MakeStrategy builds a Strategy from a conversion and the type's empty value.
func MakeStrategy[T any](convert func(any) T, empty any) Strategy[T] {
	return Strategy[T]{convert: convert, empty: empty}
}

// Apply coerces value. ok is false when the field should be omitted.
//
// The order is fixed: a truthy value is converted, then nullable yields nil,
// then optional yields omission, then the empty value is returned. A field
// that is both optional and nullable therefore becomes nil.
func (s Strategy[T]) Apply(value any, optional, nullable bool) (v any, ok bool) {
	v, p := s.apply(value, optional, nullable)
	return v, p != PresenceOmitted
}

func (s Strategy[T]) apply(value any, optional, nullable bool) (any, Presence) {
	if Truthy(value) {
		return s.convert(value), PresenceSeen
	}
	if nullable {
		return nil, PresenceWasNull
	}
	if optional {
		return nil, PresenceOmitted
	}
	return s.empty, PresenceDefaultApplied
}

var (
	// TextStrategy renders values as strings; empty is "".
	TextStrategy = MakeStrategy(toText, "")
	// NumberStrategy parses numbers (NaN when unparseable); empty is nil.
	NumberStrategy = MakeStrategy(toNumber, nil)
	// BooleanStrategy maps any submitted value to true; empty is false.
	BooleanStrategy = MakeStrategy(Truthy, false)
)

// DateStrategy parses YYYY-MM-DD text into a time.Time in loc (time.Local
// when nil); empty is nil.
func DateStrategy(loc *time.Location) Strategy[any] {
	return MakeStrategy(func(v any) any { return toDate(v, loc) }, nil)
}
