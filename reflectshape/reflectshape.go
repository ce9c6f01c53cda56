// Package reflectshape derives form shapes from Go struct types.
//
// The struct is reflected into JSON Schema with invopop/jsonschema and then
// described through the jsonschema package. Field rules:
//   - a field without `omitempty` is required, otherwise optional;
//   - pointer fields are nullable;
//   - time.Time fields are calendar dates;
//   - `jsonschema:"enum=a,enum=b"` makes a string field an enum.
//
// Results are cached per type.
package reflectshape

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	ij "github.com/invopop/jsonschema"

	formcoerce "github.com/reoring/formcoerce"
	js "github.com/reoring/formcoerce/jsonschema"
)

var (
	cache    sync.Map // map[reflect.Type]formcoerce.Describer
	timeType = reflect.TypeOf(time.Time{})
)

// Of describes the struct type T.
func Of[T any]() (formcoerce.Describer, error) {
	return For(reflect.TypeOf((*T)(nil)).Elem())
}

// MustOf is like Of but panics on error. Intended for package-level vars.
func MustOf[T any]() formcoerce.Describer {
	d, err := Of[T]()
	if err != nil {
		panic(err)
	}
	return d
}

// For describes the struct type t (or a pointer to one).
func For(t reflect.Type) (formcoerce.Describer, error) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, formcoerce.Issues{formcoerce.NewIssue("/", formcoerce.CodeInvalidType, fmt.Sprintf("reflectshape: type must be struct kind, got %v", t), nil)}
	}
	if v, ok := cache.Load(t); ok {
		return v.(formcoerce.Describer), nil
	}
	root, err := Reflect(t)
	if err != nil {
		return nil, err
	}
	d, err := js.FromSchema(root)
	if err != nil {
		return nil, err
	}
	actual, _ := cache.LoadOrStore(t, d)
	return actual.(formcoerce.Describer), nil
}

// Reflect returns the JSON Schema for t with nullability applied.
func Reflect(t reflect.Type) (*js.Schema, error) {
	r := &ij.Reflector{
		ExpandedStruct: true, // put struct at root
		Mapper:         mapType,
	}
	reflected := r.ReflectFromType(t)
	b, err := json.Marshal(reflected)
	if err != nil {
		return nil, formcoerce.Issues{formcoerce.NewIssue("/", formcoerce.CodeParseError, "", err)}
	}
	var root js.Schema
	if err := json.Unmarshal(b, &root); err != nil {
		return nil, formcoerce.Issues{formcoerce.NewIssue("/", formcoerce.CodeParseError, "", err)}
	}
	markNullable(&root, &root, t, map[reflect.Type]bool{})
	return &root, nil
}

func mapType(t reflect.Type) *ij.Schema {
	if t == timeType {
		return &ij.Schema{Type: "string", Format: "date"}
	}
	return nil
}

// markNullable flags pointer fields, descending into nested structs through
// their $defs entries.
func markNullable(root, s *js.Schema, t reflect.Type, seen map[reflect.Type]bool) {
	if s == nil || seen[t] {
		return
	}
	seen[t] = true
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, skip := jsonName(f)
		if skip {
			continue
		}
		ft := f.Type
		if f.Anonymous && name == "" {
			for ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				markNullable(root, s, ft, seen)
			}
			continue
		}
		if name == "" {
			name = f.Name
		}
		prop := s.Properties[name]
		if prop == nil {
			continue
		}
		for ft.Kind() == reflect.Pointer {
			prop.Nullable = true
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct && ft != timeType {
			markNullable(root, definition(root, prop), ft, seen)
		}
	}
}

func definition(root, prop *js.Schema) *js.Schema {
	if name, ok := strings.CutPrefix(prop.Ref, "#/$defs/"); ok {
		return root.Defs[name]
	}
	return prop
}

func jsonName(f reflect.StructField) (name string, skip bool) {
	tag, ok := f.Tag.Lookup("json")
	if !ok {
		return "", false
	}
	name, _, _ = strings.Cut(tag, ",")
	if name == "-" {
		return "", true
	}
	return name, false
}
