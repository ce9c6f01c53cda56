package openapi

import (
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	formcoerce "github.com/reoring/formcoerce"
)

// typeNull is the OpenAPI 3.1 null type name.
const typeNull = "null"

// FromSchemaRef describes a loaded schema. References must already be
// resolved (Value populated), which openapi3.Loader guarantees.
func FromSchemaRef(ref *openapi3.SchemaRef) formcoerce.Describer {
	return &node{ref: ref}
}

type node struct {
	ref      *openapi3.SchemaRef
	optional bool

	once  sync.Once
	shape formcoerce.Shape
}

func (n *node) Describe() formcoerce.Shape {
	n.once.Do(func() { n.shape = shapeOf(n.ref, n.optional) })
	return n.shape
}

func shapeOf(ref *openapi3.SchemaRef, optional bool) formcoerce.Shape {
	shape := formcoerce.Shape{Optional: optional}
	s, nullable := unwrap(ref)
	shape.Nullable = nullable
	if s == nil {
		return shape
	}
	types := nonNullTypes(s.Type)
	switch {
	case (len(types) == 0 && len(s.Properties) > 0) || (len(types) == 1 && types[0] == openapi3.TypeObject):
		required := make(map[string]bool, len(s.Required))
		for _, name := range s.Required {
			required[name] = true
		}
		shape.Tag = formcoerce.TagComposite
		shape.Children = make(map[string]formcoerce.Describer, len(s.Properties))
		for name, prop := range s.Properties {
			shape.Children[name] = &node{ref: prop, optional: !required[name]}
		}
	case len(types) == 0 && len(s.Enum) > 0:
		shape.Tag = formcoerce.TagEnum
	case len(types) != 1:
	case types[0] == openapi3.TypeString:
		switch {
		case s.Format == "date":
			shape.Tag = formcoerce.TagDate
		case len(s.Enum) > 0:
			shape.Tag = formcoerce.TagEnum
		default:
			shape.Tag = formcoerce.TagText
		}
	case types[0] == openapi3.TypeNumber || types[0] == openapi3.TypeInteger:
		shape.Tag = formcoerce.TagNumber
	case types[0] == openapi3.TypeBoolean:
		shape.Tag = formcoerce.TagBoolean
	}
	return shape
}

// unwrap follows single-member allOf and nullable anyOf/oneOf wrappers.
func unwrap(ref *openapi3.SchemaRef) (*openapi3.Schema, bool) {
	nullable := false
	for hops := 0; ref != nil && ref.Value != nil && hops < 32; hops++ {
		s := ref.Value
		nullable = nullable || s.Nullable || (s.Type != nil && s.Type.Includes(typeNull))
		switch {
		case len(s.AllOf) == 1 && s.Type == nil && len(s.Properties) == 0:
			ref = s.AllOf[0]
		case s.Type == nil && (len(s.AnyOf) > 0 || len(s.OneOf) > 0):
			variants := append(append(openapi3.SchemaRefs(nil), s.AnyOf...), s.OneOf...)
			var rest openapi3.SchemaRefs
			for _, v := range variants {
				if v != nil && v.Value != nil && !isNullOnly(v.Value) {
					rest = append(rest, v)
				}
			}
			if len(rest) != 1 {
				return s, nullable
			}
			nullable = nullable || len(rest) < len(variants)
			ref = rest[0]
		default:
			return s, nullable
		}
	}
	return nil, nullable
}

func isNullOnly(s *openapi3.Schema) bool {
	return s.Type != nil && len(s.Type.Slice()) == 1 && s.Type.Is(typeNull)
}

func nonNullTypes(types *openapi3.Types) []string {
	if types == nil {
		return nil
	}
	var out []string
	for _, t := range types.Slice() {
		if t != typeNull {
			out = append(out, t)
		}
	}
	return out
}
