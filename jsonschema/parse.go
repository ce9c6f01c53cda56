package jsonschema

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	formcoerce "github.com/reoring/formcoerce"
)

// Parse decodes a JSON Schema document (JSON or YAML) and returns the
// describer for its root.
func Parse(data []byte) (formcoerce.Describer, error) {
	root, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return FromSchema(root)
}

// Decode reads a JSON or YAML document into a Schema. JSON is detected by a
// leading '{'.
func Decode(data []byte) (*Schema, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, formcoerce.Issues{formcoerce.NewIssue("/", formcoerce.CodeParseError, "empty schema document", nil)}
	}
	if trimmed[0] != '{' {
		var node any
		if err := yaml.Unmarshal(trimmed, &node); err != nil {
			return nil, formcoerce.Issues{formcoerce.NewIssue("/", formcoerce.CodeParseError, "", err)}
		}
		m := yamlAnyToStringMap(node)
		if m == nil {
			return nil, formcoerce.Issues{formcoerce.NewIssue("/", formcoerce.CodeInvalidType, "schema root must be a mapping", nil)}
		}
		b, err := json.Marshal(m)
		if err != nil {
			return nil, formcoerce.Issues{formcoerce.NewIssue("/", formcoerce.CodeParseError, "", err)}
		}
		trimmed = b
	}
	var s Schema
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return nil, formcoerce.Issues{formcoerce.NewIssue("/", formcoerce.CodeParseError, "", err)}
	}
	return &s, nil
}

// yamlAnyToStringMap converts YAML-decoded values (which may contain map[any]any)
// into JSON-like map[string]any recursively. Non-map roots return nil.
func yamlAnyToStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprint(k)] = yamlNormalizeValue(vv)
		}
		return out
	default:
		return nil
	}
}

func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return yamlAnyToStringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}
