package jsonschema

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	formcoerce "github.com/reoring/formcoerce"
)

// maxRefHops bounds $ref chains so reference cycles are reported instead of
// looping.
const maxRefHops = 32

// FromSchema checks every reference reachable from root and returns the
// describer for root. Problems are reported as formcoerce.Issues pointing
// into the document.
func FromSchema(root *Schema) (formcoerce.Describer, error) {
	if root == nil {
		return nil, formcoerce.Issues{formcoerce.NewIssue("/", formcoerce.CodeInvalidShape, "nil schema", nil)}
	}
	r := &resolver{root: root}
	var iss formcoerce.Issues
	r.check(root, formcoerce.RootPath(), map[*Schema]bool{}, &iss)
	if len(iss) > 0 {
		return nil, iss
	}
	return r.node(root, false), nil
}

type resolver struct {
	root *Schema
}

var _pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

func (r *resolver) lookup(ref string) (*Schema, bool) {
	var defs map[string]*Schema
	var name string
	switch {
	case ref == "#":
		return r.root, true
	case strings.HasPrefix(ref, "#/$defs/"):
		defs, name = r.root.Defs, strings.TrimPrefix(ref, "#/$defs/")
	case strings.HasPrefix(ref, "#/definitions/"):
		defs, name = r.root.Definitions, strings.TrimPrefix(ref, "#/definitions/")
	default:
		return nil, false
	}
	s, ok := defs[_pointerUnescaper.Replace(name)]
	return s, ok && s != nil
}

// deref follows $ref chains and unwraps single-member allOf and nullable
// anyOf/oneOf wrappers. nullable accumulates along the way.
func (r *resolver) deref(s *Schema) (target *Schema, nullable bool, err error) {
	for hops := 0; s != nil; hops++ {
		if hops > maxRefHops {
			return nil, false, fmt.Errorf("reference chain longer than %d hops", maxRefHops)
		}
		nullable = nullable || isNullable(s)
		switch {
		case s.Ref != "":
			t, ok := r.lookup(s.Ref)
			if !ok {
				return nil, false, fmt.Errorf("cannot resolve %q", s.Ref)
			}
			s = t
		case len(s.AllOf) == 1 && len(s.Type) == 0 && len(s.Properties) == 0:
			s = s.AllOf[0]
		case len(s.Type) == 0 && (len(s.AnyOf) > 0 || len(s.OneOf) > 0):
			variants := append(append([]*Schema(nil), s.AnyOf...), s.OneOf...)
			var rest []*Schema
			for _, v := range variants {
				if v != nil && !isNullOnly(v) {
					rest = append(rest, v)
				}
			}
			if len(rest) != 1 {
				return s, nullable, nil
			}
			nullable = nullable || len(rest) < len(variants)
			s = rest[0]
		default:
			return s, nullable, nil
		}
	}
	return nil, nullable, nil
}

func isNullable(s *Schema) bool { return s.Nullable || s.Type.Has("null") }

func isNullOnly(s *Schema) bool {
	return len(s.Type) == 1 && s.Type[0] == "null"
}

func (r *resolver) check(s *Schema, path formcoerce.PathRef, seen map[*Schema]bool, iss *formcoerce.Issues) {
	if s == nil || seen[s] {
		return
	}
	seen[s] = true
	if _, _, err := r.deref(s); err != nil {
		*iss = formcoerce.AppendIssues(*iss, path.Field("$ref").Issue(formcoerce.CodeUnresolvedRef, err.Error(), err))
		return
	}
	if s.Ref != "" {
		t, _ := r.lookup(s.Ref)
		r.check(t, formcoerce.PathAt(strings.TrimPrefix(s.Ref, "#")), seen, iss)
	}
	for _, name := range sortedKeys(s.Properties) {
		r.check(s.Properties[name], path.Field("properties").Field(name), seen, iss)
	}
	r.check(s.Items, path.Field("items"), seen, iss)
	for _, group := range []struct {
		kw   string
		list []*Schema
	}{{"allOf", s.AllOf}, {"anyOf", s.AnyOf}, {"oneOf", s.OneOf}} {
		for i, sub := range group.list {
			r.check(sub, path.Field(group.kw).Index(i), seen, iss)
		}
	}
}

func (r *resolver) node(s *Schema, optional bool) *node {
	return &node{r: r, s: s, optional: optional}
}

// node describes one schema location. Shapes are computed on first use, so
// recursive documents are only expanded as deep as the input goes.
type node struct {
	r        *resolver
	s        *Schema
	optional bool

	once  sync.Once
	shape formcoerce.Shape
}

func (n *node) Describe() formcoerce.Shape {
	n.once.Do(func() { n.shape = n.r.shapeOf(n.s, n.optional) })
	return n.shape
}

func (r *resolver) shapeOf(s *Schema, optional bool) formcoerce.Shape {
	target, nullable, err := r.deref(s)
	shape := formcoerce.Shape{Optional: optional, Nullable: nullable}
	if err != nil || target == nil {
		return shape
	}
	var types []string
	for _, t := range target.Type {
		if t != "null" {
			types = append(types, t)
		}
	}
	switch {
	case (len(types) == 0 && len(target.Properties) > 0) || (len(types) == 1 && types[0] == "object"):
		required := make(map[string]bool, len(target.Required))
		for _, name := range target.Required {
			required[name] = true
		}
		shape.Tag = formcoerce.TagComposite
		shape.Children = make(map[string]formcoerce.Describer, len(target.Properties))
		for name, prop := range target.Properties {
			shape.Children[name] = r.node(prop, !required[name])
		}
	case len(types) == 0 && len(target.Enum) > 0:
		shape.Tag = formcoerce.TagEnum
	case len(types) != 1:
		shape.Tag = formcoerce.TagOther
	case types[0] == "string":
		switch {
		case target.Format == "date":
			shape.Tag = formcoerce.TagDate
		case len(target.Enum) > 0:
			shape.Tag = formcoerce.TagEnum
		default:
			shape.Tag = formcoerce.TagText
		}
	case types[0] == "number" || types[0] == "integer":
		shape.Tag = formcoerce.TagNumber
	case types[0] == "boolean":
		shape.Tag = formcoerce.TagBoolean
	}
	return shape
}

func sortedKeys(m map[string]*Schema) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
