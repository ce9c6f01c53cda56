package main

import (
	"math"
	"time"

	formcoerce "github.com/reoring/formcoerce"
	"github.com/reoring/formcoerce/codec"
)

var formDate = codec.FormDate(nil)

// metaResult is the --meta output document.
type metaResult struct {
	Value    any               `json:"value"`
	Omitted  bool              `json:"omitted,omitempty"`
	Presence map[string]string `json:"presence"`
}

func renderResult(d formcoerce.Decoded, withMeta bool) any {
	value := jsonSafe(d.Value)
	if !withMeta {
		return value
	}
	presence := make(map[string]string, len(d.Presence))
	for path, p := range d.Presence {
		presence[path] = p.String()
	}
	return metaResult{Value: value, Omitted: d.Omitted, Presence: presence}
}

// jsonSafe replaces values JSON cannot carry: non-finite numbers become their
// textual form and the invalid date becomes "Invalid Date".
func jsonSafe(v any) any {
	switch t := v.(type) {
	case float64:
		switch {
		case math.IsNaN(t):
			return "NaN"
		case math.IsInf(t, 1):
			return "Infinity"
		case math.IsInf(t, -1):
			return "-Infinity"
		}
		return t
	case time.Time:
		if formcoerce.IsInvalidDate(t) {
			return "Invalid Date"
		}
		return formDate.Encode(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = jsonSafe(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = jsonSafe(e)
		}
		return out
	}
	return v
}

// shapeTree is the describe output for one node.
type shapeTree struct {
	Tag       formcoerce.TypeTag    `json:"tag"`
	Optional  bool                  `json:"optional,omitempty"`
	Nullable  bool                  `json:"nullable,omitempty"`
	Children  map[string]*shapeTree `json:"children,omitempty"`
	Truncated bool                  `json:"truncated,omitempty"`
}

func describeTree(d formcoerce.Describer, depth int) *shapeTree {
	s := formcoerce.Describe(d)
	node := &shapeTree{Tag: s.Tag, Optional: s.Optional, Nullable: s.Nullable}
	if s.Tag != formcoerce.TagComposite || s.Children == nil {
		return node
	}
	if depth <= 0 {
		node.Truncated = true
		return node
	}
	names := s.ChildNames()
	node.Children = make(map[string]*shapeTree, len(names))
	for _, name := range names {
		node.Children[name] = describeTree(s.Children[name], depth-1)
	}
	return node
}
