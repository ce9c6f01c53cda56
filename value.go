package formcoerce

import (
	"encoding/json"
	"math"
	"mime/multipart"
	"net/url"
	"reflect"
)

// FileHandle is a submitted file. *os.File satisfies it; *multipart.FileHeader
// is recognized separately.
type FileHandle interface {
	Name() string
}

// Truthy reports whether v counts as a submitted value. Strings must be
// non-empty, numbers non-zero and not NaN; records, slices and file handles
// are always truthy unless they are nil.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case float32:
		return t != 0 && !math.IsNaN(float64(t))
	case int:
		return t != 0
	case int64:
		return t != 0
	case int32:
		return t != 0
	case uint:
		return t != 0
	case uint64:
		return t != 0
	case json.Number:
		f := parseNumber(string(t))
		return f != 0 && !math.IsNaN(f)
	case map[string]any:
		return t != nil
	case *multipart.FileHeader:
		return t != nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	return true
}

// asRecord returns v as a field record when it has one of the record forms a
// form pipeline produces.
func asRecord(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case map[string]string:
		out := make(map[string]any, len(t))
		for k, s := range t {
			out[k] = s
		}
		return out, true
	case url.Values:
		return multiValues(t), true
	case map[string][]string:
		return multiValues(t), true
	}
	return nil, false
}

// multiValues keeps single values as strings and repeated ones as []any.
func multiValues(m map[string][]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, vs := range m {
		switch len(vs) {
		case 0:
			out[k] = nil
		case 1:
			out[k] = vs[0]
		default:
			arr := make([]any, len(vs))
			for i := range vs {
				arr[i] = vs[i]
			}
			out[k] = arr
		}
	}
	return out
}
