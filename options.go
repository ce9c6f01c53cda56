package formcoerce

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"
)

// CompositeEmptyPolicy selects the value a required, non-nullable composite
// field receives when nothing was submitted.
type CompositeEmptyPolicy int

const (
	CompositeEmptyFalse  CompositeEmptyPolicy = iota // false (historical behavior).
	CompositeEmptyRecord                             // A new empty map[string]any.
)

func (p CompositeEmptyPolicy) String() string {
	if p == CompositeEmptyRecord {
		return "record"
	}
	return "false"
}

// ParseCompositeEmptyPolicy accepts "false" or "record".
func ParseCompositeEmptyPolicy(s string) (CompositeEmptyPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "false":
		return CompositeEmptyFalse, nil
	case "record", "object", "map":
		return CompositeEmptyRecord, nil
	}
	return CompositeEmptyFalse, Issues{NewIssue("/compositeEmpty", CodeInvalidOption, fmt.Sprintf("unknown composite empty policy %q", s), nil)}
}

// Options configures a Coercer.
type Options struct {
	// CompositeEmpty is the empty value for required, non-nullable composites.
	CompositeEmpty CompositeEmptyPolicy
	// FillAbsent also visits schema-declared children missing from the input,
	// so their per-field fallback applies.
	FillAbsent bool
	// Location for calendar dates; nil means time.Local.
	Location *time.Location
	// TrimText trims surrounding whitespace from text input before the
	// truthiness check, so blank-looking fields count as empty.
	TrimText bool
}

// DefaultOptions reproduces the historical behavior: composite empty value
// false, input-driven composite iteration, local dates, no trimming.
func DefaultOptions() Options { return Options{} }

// optionsSpec is the serialized form of Options, shared by YAML and the
// environment.
type optionsSpec struct {
	CompositeEmpty string `yaml:"compositeEmpty" env:"FORMCOERCE_COMPOSITE_EMPTY,default=false"`
	FillAbsent     bool   `yaml:"fillAbsent" env:"FORMCOERCE_FILL_ABSENT,default=false"`
	Location       string `yaml:"location" env:"FORMCOERCE_LOCATION,default=Local"`
	TrimText       bool   `yaml:"trimText" env:"FORMCOERCE_TRIM_TEXT,default=false"`
}

func (s optionsSpec) resolve() (Options, error) {
	var opt Options
	policy, err := ParseCompositeEmptyPolicy(s.CompositeEmpty)
	if err != nil {
		return opt, err
	}
	opt.CompositeEmpty = policy
	opt.FillAbsent = s.FillAbsent
	opt.TrimText = s.TrimText
	switch name := strings.TrimSpace(s.Location); name {
	case "", "Local", "local":
	default:
		loc, err := time.LoadLocation(name)
		if err != nil {
			return opt, Issues{NewIssue("/location", CodeInvalidOption, fmt.Sprintf("unknown location %q", name), err)}
		}
		opt.Location = loc
	}
	return opt, nil
}

// LoadOptionsYAML decodes Options from a YAML (or JSON) document. Unknown
// keys are rejected.
func LoadOptionsYAML(data []byte) (Options, error) {
	var spec optionsSpec
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, Issues{NewIssue("/", CodeParseError, "", err)}
	}
	return spec.resolve()
}

// OptionsFromEnv reads Options from FORMCOERCE_* environment variables.
func OptionsFromEnv() (Options, error) {
	var spec optionsSpec
	if err := envdecode.Decode(&spec); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Options{}, Issues{NewIssue("/", CodeInvalidOption, "", err)}
	}
	return spec.resolve()
}
