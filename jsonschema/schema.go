package jsonschema

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// Schema is the subset of JSON Schema needed to describe form shapes. It is
// both the export target of dsl builders and the input of FromSchema.
type Schema struct {
	// Core
	Ref      string `json:"$ref,omitempty"`
	Type     Types  `json:"type,omitempty"`
	Format   string `json:"format,omitempty"`
	Enum     []any  `json:"enum,omitempty"`
	Nullable bool   `json:"nullable,omitempty"` // OpenAPI 3.0 style.

	// Object
	Properties map[string]*Schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Composition
	AllOf []*Schema `json:"allOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty"`

	// Definitions
	Defs        map[string]*Schema `json:"$defs,omitempty"`
	Definitions map[string]*Schema `json:"definitions,omitempty"`
}

// Types holds the "type" keyword, which may be a single name or a list.
type Types []string

// Has reports whether name is listed.
func (t Types) Has(name string) bool {
	for _, v := range t {
		if v == name {
			return true
		}
	}
	return false
}

// MarshalJSON writes a single type as a bare string.
func (t Types) MarshalJSON() ([]byte, error) {
	if len(t) == 1 {
		return json.Marshal(t[0])
	}
	return json.Marshal([]string(t))
}

// UnmarshalJSON accepts a string or an array of strings.
func (t *Types) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Types{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*t = list
	return nil
}
