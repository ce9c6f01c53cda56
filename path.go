package formcoerce

import (
	"strconv"
	"strings"
)

// PathRef builds JSON Pointer paths in a chain-safe way and creates Issues.
type PathRef interface {
	Field(name string) PathRef
	Index(i int) PathRef
	Pointer() string
	Issue(code, msg string, cause error) Issue
}

// RootPath returns the PathRef for "/".
func RootPath() PathRef { return &pathRef{} }

// PathAt parses a JSON Pointer into a PathRef. Segments are kept escaped.
func PathAt(pointer string) PathRef {
	if pointer == "" || pointer == "/" {
		return RootPath()
	}
	parts := []string{}
	for _, p := range strings.Split(pointer, "/") {
		if p == "" {
			continue
		}
		parts = append(parts, p)
	}
	return &pathRef{parts: parts}
}

type pathRef struct {
	parts []string
}

func (p *pathRef) Field(name string) PathRef {
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return &pathRef{parts: append(append([]string{}, p.parts...), esc)}
}

func (p *pathRef) Index(i int) PathRef {
	return &pathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

func (p *pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

func (p *pathRef) Issue(code, msg string, cause error) Issue {
	return NewIssue(p.Pointer(), code, msg, cause)
}
