package dsl

import (
	"sort"

	formcoerce "github.com/reoring/formcoerce"
	js "github.com/reoring/formcoerce/jsonschema"
)

// ObjectSchema describes a composite field. Field returns a new builder; the
// receiver is left untouched.
type ObjectSchema struct {
	fields   map[string]formcoerce.Describer
	order    []string
	optional bool
	nullable bool
}

// Object starts an empty composite shape.
func Object() ObjectSchema { return ObjectSchema{} }

// Shape builds a composite shape from a field map.
func Shape(fields map[string]formcoerce.Describer) ObjectSchema {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	o := Object()
	for _, name := range names {
		o = o.Field(name, fields[name])
	}
	return o
}

// Field adds or replaces a child field.
func (o ObjectSchema) Field(name string, d formcoerce.Describer) ObjectSchema {
	fields := make(map[string]formcoerce.Describer, len(o.fields)+1)
	for k, v := range o.fields {
		fields[k] = v
	}
	order := append([]string(nil), o.order...)
	if _, exists := fields[name]; !exists {
		order = append(order, name)
	}
	fields[name] = d
	o.fields = fields
	o.order = order
	return o
}

func (o ObjectSchema) Optional() ObjectSchema { o.optional = true; return o }
func (o ObjectSchema) Nullable() ObjectSchema { o.nullable = true; return o }
func (o ObjectSchema) Nullish() ObjectSchema  { return o.Optional().Nullable() }
func (o ObjectSchema) Required() ObjectSchema { o.optional = false; return o }

// Fields returns the field names in declaration order.
func (o ObjectSchema) Fields() []string { return append([]string(nil), o.order...) }

func (o ObjectSchema) Describe() formcoerce.Shape {
	children := make(map[string]formcoerce.Describer, len(o.fields))
	for k, v := range o.fields {
		children[k] = v
	}
	return formcoerce.Shape{
		Tag:      formcoerce.TagComposite,
		Optional: o.optional,
		Nullable: o.nullable,
		Children: children,
	}
}

// maxExportDepth bounds how deep composite shapes are projected. Recursive
// shapes from other sources are cut there with an empty schema.
const maxExportDepth = 32

// JSONSchema projects the object into JSON Schema. Non-optional fields are
// listed in required.
func (o ObjectSchema) JSONSchema() *js.Schema { return o.jsonSchema(maxExportDepth) }

func (o ObjectSchema) jsonSchema(depth int) *js.Schema {
	if depth <= 0 {
		return &js.Schema{}
	}
	out := &js.Schema{Type: js.Types{"object"}, Properties: map[string]*js.Schema{}}
	for _, name := range o.order {
		d := o.fields[name]
		out.Properties[name] = toJSONSchema(d, depth-1)
		if !formcoerce.Describe(d).Optional {
			out.Required = append(out.Required, name)
		}
	}
	if o.nullable {
		out.Type = append(out.Type, "null")
	}
	return out
}

type jsonSchemer interface {
	JSONSchema() *js.Schema
}

// toJSONSchema exports any describer with depth levels of composite nesting
// left; foreign describers are projected from their Shape.
func toJSONSchema(d formcoerce.Describer, depth int) *js.Schema {
	switch s := d.(type) {
	case ObjectSchema:
		return s.jsonSchema(depth)
	case jsonSchemer:
		return s.JSONSchema()
	}
	shape := formcoerce.Describe(d)
	if shape.Tag == formcoerce.TagComposite {
		if shape.Children == nil {
			return &js.Schema{}
		}
		o := Shape(shape.Children)
		o.optional, o.nullable = shape.Optional, shape.Nullable
		return o.jsonSchema(depth)
	}
	return Schema{tag: shape.Tag, optional: shape.Optional, nullable: shape.Nullable}.JSONSchema()
}
