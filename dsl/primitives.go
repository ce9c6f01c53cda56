package dsl

import (
	formcoerce "github.com/reoring/formcoerce"
	js "github.com/reoring/formcoerce/jsonschema"
)

// Schema describes a non-composite field.
type Schema struct {
	tag      formcoerce.TypeTag
	optional bool
	nullable bool
	enum     []any
}

// String describes a text field.
func String() Schema { return Schema{tag: formcoerce.TagText} }

// Number describes a numeric field.
func Number() Schema { return Schema{tag: formcoerce.TagNumber} }

// Bool describes a checkbox-like field.
func Bool() Schema { return Schema{tag: formcoerce.TagBoolean} }

// Date describes a YYYY-MM-DD calendar date field.
func Date() Schema { return Schema{tag: formcoerce.TagDate} }

// Any describes a field that is passed through unchanged.
func Any() Schema { return Schema{tag: formcoerce.TagOther} }

// Enum describes a string enum. Membership is not enforced during coercion;
// the values are kept for JSON Schema export.
func Enum(values ...string) Schema {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = v
	}
	return Schema{tag: formcoerce.TagEnum, enum: enum}
}

// NativeEnum describes a field backed by a Go enum type.
func NativeEnum[T ~string | ~int](values ...T) Schema {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = v
	}
	return Schema{tag: formcoerce.TagNativeEnum, enum: enum}
}

func (s Schema) Optional() Schema { s.optional = true; return s }
func (s Schema) Nullable() Schema { s.nullable = true; return s }

// Nullish marks the field both optional and nullable.
func (s Schema) Nullish() Schema { return s.Optional().Nullable() }

// Required clears the optional flag.
func (s Schema) Required() Schema { s.optional = false; return s }

// Values returns the enum values, if any.
func (s Schema) Values() []any { return append([]any(nil), s.enum...) }

func (s Schema) Describe() formcoerce.Shape {
	return formcoerce.Shape{Tag: s.tag, Optional: s.optional, Nullable: s.nullable}
}

// JSONSchema projects the field into JSON Schema.
func (s Schema) JSONSchema() *js.Schema {
	out := &js.Schema{}
	switch s.tag {
	case formcoerce.TagText:
		out.Type = js.Types{"string"}
	case formcoerce.TagNumber:
		out.Type = js.Types{"number"}
	case formcoerce.TagBoolean:
		out.Type = js.Types{"boolean"}
	case formcoerce.TagDate:
		out.Type = js.Types{"string"}
		out.Format = "date"
	case formcoerce.TagEnum, formcoerce.TagNativeEnum:
		out.Enum = s.Values()
		if s.tag == formcoerce.TagEnum {
			out.Type = js.Types{"string"}
		}
	}
	if s.nullable {
		if len(out.Type) > 0 {
			out.Type = append(out.Type, "null")
		} else {
			out.Nullable = true
		}
	}
	return out
}

// Lazy defers building a describer until it is first described, which lets
// a shape refer to itself.
func Lazy(f func() formcoerce.Describer) formcoerce.Describer { return lazy(f) }

type lazy func() formcoerce.Describer

func (l lazy) Describe() formcoerce.Shape { return formcoerce.Describe(l()) }

// JSONSchema exports a lazy field as an unconstrained schema so recursive
// shapes terminate.
func (l lazy) JSONSchema() *js.Schema { return &js.Schema{} }
