package formcoerce

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/formcoerce/i18n"
)

// Issue codes reported by shape sources and configuration loading. The
// coercion engine itself never reports issues.
const (
	CodeInvalidType   = "invalid_type"
	CodeParseError    = "parse_error"
	CodeInvalidShape  = "invalid_shape"
	CodeUnresolvedRef = "unresolved_ref"
	CodeUnsupported   = "unsupported"
	CodeInvalidOption = "invalid_option"
)

// Issue is a single problem found while building a shape or options.
type Issue struct {
	Path    string // JSON Pointer into the source document.
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional underlying error.
}

// Issues is a collection of problems that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. unresolved_ref at /properties/user: ...
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Message != "" {
			b.WriteString(": ")
			b.WriteString(it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the underlying causes to errors.Is/As.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// NewIssue builds an Issue whose message comes from the current translator
// when msg is empty.
func NewIssue(path, code, msg string, cause error) Issue {
	if msg == "" {
		msg = i18n.T(code, nil)
	}
	return Issue{Path: path, Code: code, Message: msg, Cause: cause}
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
