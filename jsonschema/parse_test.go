package jsonschema_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	formcoerce "github.com/reoring/formcoerce"
	"github.com/reoring/formcoerce/jsonschema"
)

const signupJSON = `{
  "type": "object",
  "required": ["email", "age", "plan", "agree", "address"],
  "properties": {
    "email":    {"type": "string"},
    "age":      {"type": "integer"},
    "nickname": {"type": "string"},
    "birthday": {"type": ["string", "null"], "format": "date"},
    "plan":     {"enum": ["free", "pro"]},
    "agree":    {"type": "boolean"},
    "tags":     {"type": "array", "items": {"type": "string"}},
    "address":  {"$ref": "#/$defs/Address"}
  },
  "$defs": {
    "Address": {
      "type": "object",
      "required": ["zip"],
      "properties": {
        "zip":  {"type": "string"},
        "city": {"anyOf": [{"type": "string"}, {"type": "null"}]}
      }
    }
  }
}`

func TestParse_JSONDocument(t *testing.T) {
	d, err := jsonschema.Parse([]byte(signupJSON))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	root := d.Describe()
	if root.Tag != formcoerce.TagComposite {
		t.Fatalf("expected composite root, got %v", root.Tag)
	}
	type flags struct {
		Tag      formcoerce.TypeTag
		Optional bool
		Nullable bool
	}
	got := map[string]flags{}
	for name, child := range root.Children {
		s := child.Describe()
		got[name] = flags{s.Tag, s.Optional, s.Nullable}
	}
	want := map[string]flags{
		"email":    {formcoerce.TagText, false, false},
		"age":      {formcoerce.TagNumber, false, false},
		"nickname": {formcoerce.TagText, true, false},
		"birthday": {formcoerce.TagDate, true, true},
		"plan":     {formcoerce.TagEnum, false, false},
		"agree":    {formcoerce.TagBoolean, false, false},
		"tags":     {formcoerce.TagOther, true, false},
		"address":  {formcoerce.TagComposite, false, false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	city := root.Children["address"].Describe().Children["city"].Describe()
	if city.Tag != formcoerce.TagText || !city.Nullable || !city.Optional {
		t.Fatalf("unexpected city shape: %+v", city)
	}
}

func TestParse_CoerceEndToEnd(t *testing.T) {
	d, err := jsonschema.Parse([]byte(signupJSON))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	raw := map[string]any{
		"email":    "a@example.com",
		"age":      "31",
		"nickname": "",
		"birthday": "1993-07-04",
		"plan":     "pro",
		"agree":    "",
		"address":  map[string]any{"zip": "", "city": ""},
	}
	got, _ := formcoerce.CoerceValue(raw, d)
	want := map[string]any{
		"email":    "a@example.com",
		"age":      31.0,
		"birthday": time.Date(1993, time.July, 4, 0, 0, 0, 0, time.Local),
		"plan":     "pro",
		"agree":    false,
		"address":  map[string]any{"zip": "", "city": nil},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestParse_YAMLDocument(t *testing.T) {
	doc := `
type: object
required: [count]
properties:
  count:
    type: number
  note:
    type: string
    nullable: true
`
	d, err := jsonschema.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got, _ := formcoerce.CoerceValue(map[string]any{"count": "2", "note": ""}, d)
	if diff := cmp.Diff(map[string]any{"count": 2.0, "note": nil}, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestParse_RecursiveDefinitions(t *testing.T) {
	doc := `{
  "$ref": "#/definitions/Node",
  "definitions": {
    "Node": {
      "type": "object",
      "properties": {
        "value": {"type": "number"},
        "next":  {"$ref": "#/definitions/Node"}
      }
    }
  }
}`
	d, err := jsonschema.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	raw := map[string]any{"value": "1", "next": map[string]any{"value": "2", "next": map[string]any{"value": "x"}}}
	got, _ := formcoerce.CoerceValue(raw, d)
	next := got.(map[string]any)["next"].(map[string]any)
	if next["value"] != 2.0 {
		t.Fatalf("unexpected nested value: %#v", next)
	}
	if _, ok := next["next"].(map[string]any)["value"].(float64); !ok {
		t.Fatalf("expected number at depth 3, got %#v", next["next"])
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		code string
		path string
	}{
		{"empty", "  ", formcoerce.CodeParseError, "/"},
		{"bad json", `{"type": `, formcoerce.CodeParseError, "/"},
		{"scalar yaml", "- a\n- b\n", formcoerce.CodeInvalidType, "/"},
		{"missing ref", `{"properties": {"a": {"$ref": "#/$defs/Nope"}}}`, formcoerce.CodeUnresolvedRef, "/properties/a/$ref"},
		{"ref cycle", `{"$ref": "#/$defs/A", "$defs": {"A": {"$ref": "#/$defs/B"}, "B": {"$ref": "#/$defs/A"}}}`, formcoerce.CodeUnresolvedRef, "/$ref"},
	}
	for _, tc := range cases {
		_, err := jsonschema.Parse([]byte(tc.doc))
		iss, ok := formcoerce.AsIssues(err)
		if !ok || len(iss) == 0 {
			t.Fatalf("%s: expected Issues, got %v", tc.name, err)
		}
		if iss[0].Code != tc.code || iss[0].Path != tc.path {
			t.Fatalf("%s: got %s at %s, want %s at %s", tc.name, iss[0].Code, iss[0].Path, tc.code, tc.path)
		}
	}
}

func TestTypes_UnmarshalForms(t *testing.T) {
	s, err := jsonschema.Decode([]byte(`{"type": "string", "properties": {"x": {"type": ["integer", "null"]}}}`))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if diff := cmp.Diff(jsonschema.Types{"string"}, s.Type); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if !s.Properties["x"].Type.Has("null") {
		t.Fatalf("expected null in %v", s.Properties["x"].Type)
	}
}
