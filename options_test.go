package formcoerce_test

import (
	"testing"
	"time"

	formcoerce "github.com/reoring/formcoerce"
)

func TestDefaultOptions(t *testing.T) {
	opt := formcoerce.DefaultOptions()
	if opt.CompositeEmpty != formcoerce.CompositeEmptyFalse || opt.FillAbsent || opt.TrimText || opt.Location != nil {
		t.Fatalf("unexpected defaults: %+v", opt)
	}
}

func TestLoadOptionsYAML(t *testing.T) {
	opt, err := formcoerce.LoadOptionsYAML([]byte("compositeEmpty: record\nfillAbsent: true\nlocation: UTC\ntrimText: true\n"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if opt.CompositeEmpty != formcoerce.CompositeEmptyRecord || !opt.FillAbsent || !opt.TrimText || opt.Location != time.UTC {
		t.Fatalf("unexpected options: %+v", opt)
	}

	empty, err := formcoerce.LoadOptionsYAML(nil)
	if err != nil {
		t.Fatalf("empty document should load defaults, err=%v", err)
	}
	if empty != formcoerce.DefaultOptions() {
		t.Fatalf("unexpected options: %+v", empty)
	}
}

func TestLoadOptionsYAML_Errors(t *testing.T) {
	cases := map[string]string{
		"unknown key":    "nope: 1\n",
		"bad policy":     "compositeEmpty: maybe\n",
		"bad location":   "location: Mars/Olympus\n",
		"malformed yaml": "compositeEmpty: [\n",
	}
	for name, doc := range cases {
		_, err := formcoerce.LoadOptionsYAML([]byte(doc))
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		if _, ok := formcoerce.AsIssues(err); !ok {
			t.Fatalf("%s: expected Issues, got %T", name, err)
		}
	}
}

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("FORMCOERCE_COMPOSITE_EMPTY", "record")
	t.Setenv("FORMCOERCE_FILL_ABSENT", "true")
	t.Setenv("FORMCOERCE_LOCATION", "UTC")
	opt, err := formcoerce.OptionsFromEnv()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if opt.CompositeEmpty != formcoerce.CompositeEmptyRecord || !opt.FillAbsent || opt.Location != time.UTC || opt.TrimText {
		t.Fatalf("unexpected options: %+v", opt)
	}
}

func TestOptionsFromEnv_Defaults(t *testing.T) {
	opt, err := formcoerce.OptionsFromEnv()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if opt != formcoerce.DefaultOptions() {
		t.Fatalf("unexpected options: %+v", opt)
	}
}
