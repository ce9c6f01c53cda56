package reflectshape_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	formcoerce "github.com/reoring/formcoerce"
	"github.com/reoring/formcoerce/reflectshape"
)

type address struct {
	Zip  string `json:"zip"`
	City string `json:"city,omitempty"`
}

type audit struct {
	Note string `json:"note,omitempty"`
}

type signup struct {
	audit
	Email    string    `json:"email"`
	Age      int       `json:"age"`
	Plan     string    `json:"plan" jsonschema:"enum=free,enum=pro"`
	Agree    bool      `json:"agree,omitempty"`
	Born     time.Time `json:"born,omitempty"`
	Nickname *string   `json:"nickname,omitempty"`
	Address  *address  `json:"address,omitempty"`
	Secret   string    `json:"-"`
	internal string
}

func leaf(d formcoerce.Describer) formcoerce.Shape {
	s := formcoerce.Describe(d)
	s.Children = nil
	return s
}

func TestOf_FieldRules(t *testing.T) {
	d, err := reflectshape.Of[signup]()
	if err != nil {
		t.Fatalf("Of: %v", err)
	}
	s := formcoerce.Describe(d)
	if s.Tag != formcoerce.TagComposite {
		t.Fatalf("root tag = %v", s.Tag)
	}
	want := map[string]formcoerce.Shape{
		"email":    {Tag: formcoerce.TagText},
		"age":      {Tag: formcoerce.TagNumber},
		"plan":     {Tag: formcoerce.TagEnum},
		"agree":    {Tag: formcoerce.TagBoolean, Optional: true},
		"born":     {Tag: formcoerce.TagDate, Optional: true},
		"nickname": {Tag: formcoerce.TagText, Optional: true, Nullable: true},
		"note":     {Tag: formcoerce.TagText, Optional: true},
	}
	for name, w := range want {
		if got := leaf(s.Children[name]); !cmp.Equal(got, w) {
			t.Errorf("%s: got %+v want %+v", name, got, w)
		}
	}
	for _, hidden := range []string{"Secret", "internal"} {
		if _, ok := s.Children[hidden]; ok {
			t.Errorf("%s should not be described", hidden)
		}
	}
	addr := formcoerce.Describe(s.Children["address"])
	if addr.Tag != formcoerce.TagComposite || !addr.Optional || !addr.Nullable {
		t.Fatalf("address: %+v", addr)
	}
	if got := leaf(addr.Children["city"]); !cmp.Equal(got, formcoerce.Shape{Tag: formcoerce.TagText, Optional: true}) {
		t.Fatalf("address.city: %+v", got)
	}
}

func TestOf_Coerce(t *testing.T) {
	d := reflectshape.MustOf[signup]()
	got, ok := formcoerce.New(formcoerce.Options{Location: time.UTC}).Coerce(map[string]any{
		"email":    "a@example.com",
		"age":      "7",
		"plan":     "free",
		"born":     "2000-01-02",
		"nickname": "",
		"address":  map[string]any{"zip": "100-0001"},
	}, d)
	if !ok {
		t.Fatal("omitted")
	}
	want := map[string]any{
		"email":    "a@example.com",
		"age":      7.0,
		"plan":     "free",
		"born":     time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC),
		"nickname": nil,
		"address":  map[string]any{"zip": "100-0001"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestFor_Cached(t *testing.T) {
	a, err := reflectshape.For(reflect.TypeOf(&signup{}))
	if err != nil {
		t.Fatal(err)
	}
	b, err := reflectshape.For(reflect.TypeOf(signup{}))
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatal("expected cached describer for pointer and value type")
	}
}

func TestFor_NotStruct(t *testing.T) {
	_, err := reflectshape.For(reflect.TypeOf(42))
	iss, ok := formcoerce.AsIssues(err)
	if !ok || iss[0].Code != formcoerce.CodeInvalidType {
		t.Fatalf("expected invalid_type, got %v", err)
	}
}
