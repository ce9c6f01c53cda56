package formcoerce

import (
	"fmt"
	"sort"
	"strings"
)

// TypeTag identifies the coercion rule applied to a field.
type TypeTag int

const (
	TagOther      TypeTag = iota // Pass the raw value through unchanged.
	TagBoolean                   // Truthiness.
	TagNumber                    // Numeric parse; NaN when unparseable.
	TagDate                      // YYYY-MM-DD calendar date.
	TagText                      // Plain string.
	TagEnum                      // String enum; membership is not enforced.
	TagNativeEnum                // Host-language enum; coerced like TagEnum.
	TagComposite                 // Record of named child fields.
)

var _tagNames = [...]string{
	TagOther:      "other",
	TagBoolean:    "boolean",
	TagNumber:     "number",
	TagDate:       "date",
	TagText:       "text",
	TagEnum:       "enum",
	TagNativeEnum: "nativeEnum",
	TagComposite:  "composite",
}

func (t TypeTag) String() string {
	if t < 0 || int(t) >= len(_tagNames) {
		return fmt.Sprintf("TypeTag(%d)", int(t))
	}
	return _tagNames[t]
}

// MarshalText renders the tag by name.
func (t TypeTag) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText accepts the names produced by MarshalText (case-insensitive).
func (t *TypeTag) UnmarshalText(b []byte) error {
	tag, err := ParseTypeTag(string(b))
	if err != nil {
		return err
	}
	*t = tag
	return nil
}

// ParseTypeTag resolves a tag name.
func ParseTypeTag(name string) (TypeTag, error) {
	for i, n := range _tagNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return TypeTag(i), nil
		}
	}
	return TagOther, Issues{{Path: "/", Code: CodeInvalidShape, Message: "unknown type tag " + fmt.Sprintf("%q", name)}}
}

// Describer is the shape description collaborator. Implementations resolve a
// schema reference into its Shape on demand.
type Describer interface {
	Describe() Shape
}

// Shape describes the expected type of one field.
//
// Children is non-nil iff Tag == TagComposite. Child describers are resolved
// lazily, so recursive schemas are fine as long as the input is finite.
type Shape struct {
	Tag      TypeTag
	Optional bool
	Nullable bool
	Children map[string]Describer
}

// Describe makes Shape a Describer of itself.
func (s Shape) Describe() Shape { return s }

// Describe resolves d. A nil describer yields the pass-through shape
// (TagOther, required, non-nullable).
func Describe(d Describer) Shape {
	if d == nil {
		return Shape{}
	}
	return d.Describe()
}

// Validate reports a violation of the Children/Tag invariant.
func (s Shape) Validate() error {
	switch {
	case s.Tag == TagComposite && s.Children == nil:
		return Issues{{Path: "/", Code: CodeInvalidShape, Message: "composite shape without children"}}
	case s.Tag != TagComposite && s.Children != nil:
		return Issues{{Path: "/", Code: CodeInvalidShape, Message: fmt.Sprintf("%s shape must not carry children", s.Tag)}}
	}
	return nil
}

// ChildNames returns the declared child field names in sorted order.
func (s Shape) ChildNames() []string {
	if len(s.Children) == 0 {
		return nil
	}
	names := make([]string, 0, len(s.Children))
	for k := range s.Children {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
