package types

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name  string
		parts []any
		want  Path
	}{
		{name: "dotted", parts: []any{"books.1.title"}, want: Path{"books", 1, "title"}},
		{name: "variadic", parts: []any{"books", 1, "title"}, want: Path{"books", 1, "title"}},
		{name: "nested path", parts: []any{Path{"a", "b"}, 2, "c"}, want: Path{"a", "b", 2, "c"}},
		{name: "any slice", parts: []any{[]any{"a", float64(3)}}, want: Path{"a", 3}},
		{name: "string slice", parts: []any{[]string{"a", "b"}}, want: Path{"a", "b"}},
		{name: "int64 index", parts: []any{"a", int64(4)}, want: Path{"a", 4}},
		{name: "empty", parts: nil, want: nil},
		{name: "empty string", parts: []any{""}, want: nil},
		{name: "stray dots", parts: []any{".a..b."}, want: Path{"a", "b"}},
		{name: "fractional float kept", parts: []any{"a", 1.5}, want: Path{"a", 1.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePath(tt.parts...)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParsePath mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPathAppendDoesNotAlias(t *testing.T) {
	base := make(Path, 1, 4)
	base[0] = "books"

	a := base.Append(0)
	b := base.Append(1)

	if a[1] != 0 || b[1] != 1 {
		t.Fatalf("appends share storage: a=%v b=%v", a, b)
	}
	if len(base) != 1 {
		t.Errorf("base modified: %v", base)
	}
}

func TestPathString(t *testing.T) {
	if got := (Path{"books", 1, "title"}).String(); got != "books.1.title" {
		t.Errorf("expected books.1.title, got %s", got)
	}
}

func TestPathJSON(t *testing.T) {
	var entries ErrorList
	input := `[{"path":["books",1,"title"],"code":400},{"path":["name"],"code":422}]`
	if err := json.Unmarshal([]byte(input), &entries); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := ErrorList{
		{Path: Path{"books", 1, "title"}, Code: 400},
		{Path: Path{"name"}, Code: 422},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("decoded entries mismatch (-want +got):\n%s", diff)
	}

	out, err := json.Marshal(entries)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != input {
		t.Errorf("round trip changed encoding:\n got %s\nwant %s", out, input)
	}
}

func TestErrorListFor(t *testing.T) {
	list := ErrorList{
		{Path: Path{"name"}, Code: 1},
		{Path: Path{"books", 0, "title"}, Code: 2},
		{Path: Path{"name"}, Code: 3},
	}

	if diff := cmp.Diff([]int{1, 3}, list.For("name")); diff != "" {
		t.Errorf("For(name) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2}, list.For("books.0.title")); diff != "" {
		t.Errorf("For(books.0.title) mismatch (-want +got):\n%s", diff)
	}
	if got := list.For("missing"); got != nil {
		t.Errorf("expected no codes, got %v", got)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, list.Codes()); diff != "" {
		t.Errorf("Codes mismatch (-want +got):\n%s", diff)
	}
}

func TestPathEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Path
		want bool
	}{
		{name: "same names and indexes", a: Path{"books", 1}, b: Path{"books", 1}, want: true},
		{name: "different index", a: Path{"books", 1}, b: Path{"books", 2}, want: false},
		{name: "index against name", a: Path{"books", 1}, b: Path{"books", "1"}, want: false},
		{name: "different length", a: Path{"books"}, b: Path{"books", 1}, want: false},
		{name: "slice segments", a: Path{[]int{1}}, b: Path{[]int{1}}, want: false},
		{name: "map segments", a: Path{map[string]int{}}, b: Path{map[string]int{}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("%v.Equal(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestErrorListForUncomparableSegment(t *testing.T) {
	list := ErrorList{
		{Path: Path{"tags", []string{"a"}}, Code: 1},
		{Path: Path{"name"}, Code: 2},
	}

	if got := list.For("tags", []int{0}); got != nil {
		t.Errorf("expected no codes, got %v", got)
	}
	if diff := cmp.Diff([]int{2}, list.For("name")); diff != "" {
		t.Errorf("For(name) mismatch (-want +got):\n%s", diff)
	}
}

func TestTagSetAllows(t *testing.T) {
	tests := []struct {
		name     string
		set      TagSet
		strategy string
		want     bool
	}{
		{name: "nil set allows all", set: nil, strategy: "public", want: true},
		{name: "wildcard caller", set: Tags("admin"), strategy: "", want: true},
		{name: "member", set: Tags("admin", "public"), strategy: "public", want: true},
		{name: "non member", set: Tags("admin"), strategy: "public", want: false},
		{name: "empty set blocks", set: Tags(), strategy: "public", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.set.Allows(tt.strategy); got != tt.want {
				t.Errorf("Allows(%q) = %v, want %v", tt.strategy, got, tt.want)
			}
		})
	}
}
