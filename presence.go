package formcoerce

import "strings"

// Presence records which branch of the fallback policy produced a value.
type Presence uint8

const (
	PresenceSeen           Presence = 1 << iota // A truthy raw value was converted.
	PresenceWasNull                             // Nullable fallback produced nil.
	PresenceDefaultApplied                      // The type's empty value was applied.
	PresenceOmitted                             // Optional fallback dropped the field.
	PresencePassthrough                         // No rule applied; raw value kept.
)

func (p Presence) String() string {
	if p == 0 {
		return "none"
	}
	var parts []string
	for _, f := range []struct {
		bit  Presence
		name string
	}{
		{PresenceSeen, "seen"},
		{PresenceWasNull, "null"},
		{PresenceDefaultApplied, "default"},
		{PresenceOmitted, "omitted"},
		{PresencePassthrough, "passthrough"},
	} {
		if p&f.bit != 0 {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "|")
}

// MarshalText renders the flags for JSON/YAML output.
func (p Presence) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// PresenceMap maps JSON Pointers to Presence flags.
type PresenceMap map[string]Presence

// Has reports whether every bit of want is set at path.
func (pm PresenceMap) Has(path string, want Presence) bool {
	return pm[path]&want == want
}

// Decoded carries a coerced value along with presence metadata. Omitted is
// set when the root field resolved to "not present".
type Decoded struct {
	Value    any
	Omitted  bool
	Presence PresenceMap
}

func (pm PresenceMap) mark(p PathRef, flag Presence) {
	if pm == nil {
		return
	}
	pm[p.Pointer()] |= flag
}
