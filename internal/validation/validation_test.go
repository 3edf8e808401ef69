package validation_test

import (
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/nanomodel/internal/validation"
)

func known(name string) bool { return name == "string" || name == "integer" }

func TestSchema(t *testing.T) {
	tests := []struct {
		name    string
		schema  string
		fields  []validation.Field
		wantErr string
	}{
		{
			name:   "valid",
			schema: "Book",
			fields: []validation.Field{
				{Name: "title", Converter: "string"},
				{Name: "pages", Converter: "integer", Values: map[string]any{"default": 0}},
				{Name: "tags", Values: map[string]any{"default": []any{"a"}, "empty": []string{}}},
			},
		},
		{name: "empty schema name", schema: "", wantErr: "schema name cannot be empty"},
		{
			name:    "empty property name",
			schema:  "Book",
			fields:  []validation.Field{{Name: ""}},
			wantErr: "property name cannot be empty",
		},
		{
			name:    "duplicate",
			schema:  "Book",
			fields:  []validation.Field{{Name: "title"}, {Name: "title"}},
			wantErr: "duplicate property name: title",
		},
		{
			name:    "unknown converter",
			schema:  "Book",
			fields:  []validation.Field{{Name: "title", Converter: "uppercase"}},
			wantErr: `unknown converter "uppercase"`,
		},
		{
			name:    "struct default",
			schema:  "Book",
			fields:  []validation.Field{{Name: "title", Values: map[string]any{"default": struct{ A int }{1}}}},
			wantErr: "title default cannot be a struct type",
		},
		{
			name:    "channel in slice",
			schema:  "Book",
			fields:  []validation.Field{{Name: "title", Values: map[string]any{"fake": []any{make(chan int)}}}},
			wantErr: "title fake must be plain data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Schema(tt.schema, tt.fields, known)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestIsValidPropName(t *testing.T) {
	valid := []string{"title", "_id", "createdAt", "book-2", "a1"}
	invalid := []string{"", "1st", "books.title", "with space", "-x", "ümlaut"}

	for _, name := range valid {
		if !validation.IsValidPropName(name) {
			t.Errorf("expected %q to be valid", name)
		}
	}
	for _, name := range invalid {
		if validation.IsValidPropName(name) {
			t.Errorf("expected %q to be invalid", name)
		}
	}
}

func TestStaticValue(t *testing.T) {
	ok := []any{nil, "x", 1, 2.5, true, time.Now(), []string{"a"}, map[string]any{"a": []any{1}}}
	for _, v := range ok {
		if err := validation.StaticValue(v, "f"); err != nil {
			t.Errorf("StaticValue(%#v): unexpected error %v", v, err)
		}
	}

	bad := []any{func() {}, map[int]string{1: "a"}, struct{}{}}
	for _, v := range bad {
		if err := validation.StaticValue(v, "f"); err == nil {
			t.Errorf("StaticValue(%T): expected error", v)
		}
	}
}
