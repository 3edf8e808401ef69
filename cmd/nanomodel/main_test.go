package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/nanomodel/samples/library"
	"github.com/arthur-debert/nanomodel/testutil"
	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp(&out)
	app.SetArgs(args)
	err := app.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestTypesCommand(t *testing.T) {
	out, err := run(t, "types", "-o", "json")
	if err != nil {
		t.Fatalf("types failed: %v", err)
	}

	var got []schemaInfo
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	var names []string
	for _, s := range got {
		names = append(names, s.Name)
	}
	if diff := cmp.Diff(library.Names(), names); diff != "" {
		t.Errorf("schema names mismatch (-want +got):\n%s", diff)
	}

	for _, s := range got {
		if s.Name != "Library" {
			continue
		}
		want := []propInfo{
			{Name: "name", Cast: "string"},
			{Name: "opened", Cast: "date"},
			{Name: "books", Cast: "[]Book"},
			{Name: "members", Cast: "[]User"},
		}
		if diff := cmp.Diff(want, s.Props); diff != "" {
			t.Errorf("Library props mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestValidateCommand(t *testing.T) {
	fixture := testutil.FixturePath(t, testutil.LibraryFixture)

	t.Run("invalid document", func(t *testing.T) {
		out, err := run(t, "validate", fixture, "--type", "Library", "-o", "json")
		if !errors.Is(err, errSilentExit) {
			t.Fatalf("expected silent exit, got %v", err)
		}

		var reports []struct {
			Valid  bool `json:"valid"`
			Errors []struct {
				Path []any `json:"path"`
				Code int   `json:"code"`
			} `json:"errors"`
		}
		if err := json.Unmarshal([]byte(out), &reports); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, out)
		}
		if len(reports) != 1 || reports[0].Valid {
			t.Fatalf("expected one invalid report, got %+v", reports)
		}

		var codes []int
		for _, e := range reports[0].Errors {
			codes = append(codes, e.Code)
		}
		want := []int{library.CodeBadEmail, library.CodeRequired, library.CodeBadYear}
		if diff := cmp.Diff(want, codes); diff != "" {
			t.Errorf("codes mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("valid document", func(t *testing.T) {
		path := writeFile(t, "book.json", `{"title": "Solaris", "isbn": "0-15-602760-7", "year": 1961}`)
		out, err := run(t, "validate", path, "--type", "Book")
		if err != nil {
			t.Fatalf("validate failed: %v", err)
		}
		if !strings.Contains(out, "valid: true") {
			t.Errorf("expected a valid report, got:\n%s", out)
		}
	})

	t.Run("type from environment", func(t *testing.T) {
		t.Setenv("NANOMODEL_TYPE", "Book")
		path := writeFile(t, "book.yaml", "title: Solaris\nyear: 1961\n")
		if _, err := run(t, "validate", path); err != nil {
			t.Fatalf("validate failed: %v", err)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := run(t, "validate", fixture, "--type", "Magazine")
		var cliErr *CLIError
		if !errors.As(err, &cliErr) {
			t.Fatalf("expected CLIError, got %v", err)
		}
		if !strings.Contains(cliErr.Error(), "Book, Library, User") {
			t.Errorf("expected known types in suggestions, got:\n%s", cliErr.Error())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := run(t, "validate", filepath.Join(t.TempDir(), "missing.json"), "--type", "Book")
		var cliErr *CLIError
		if !errors.As(err, &cliErr) {
			t.Fatalf("expected CLIError, got %v", err)
		}
	})
}

func TestNormalizeCommand(t *testing.T) {
	const doc = `{"email": "ada@example.org", "extra": true, "name": "  Ada   Lovelace "}`

	t.Run("print with strategy", func(t *testing.T) {
		path := writeFile(t, "user.json", doc)
		out, err := run(t, "normalize", path, "--type", "User", "--strategy", library.Public, "-o", "json")
		if err != nil {
			t.Fatalf("normalize failed: %v", err)
		}
		if strings.Contains(out, "ada@example.org") {
			t.Errorf("public output should leave out the email:\n%s", out)
		}
		var got map[string]any
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, out)
		}
		if got["name"] != "Ada Lovelace" {
			t.Errorf("expected collapsed name, got %v", got["name"])
		}
		if _, ok := got["extra"]; ok {
			t.Error("unknown keys should be dropped")
		}
		if strings.Index(out, `"name"`) > strings.Index(out, `"role"`) {
			t.Errorf("expected declaration order, got:\n%s", out)
		}
	})

	t.Run("write in place", func(t *testing.T) {
		path := writeFile(t, "user.json", doc)
		if _, err := run(t, "normalize", path, "--type", "User", "--write"); err != nil {
			t.Fatalf("normalize failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read result: %v", err)
		}
		var got map[string]any
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("result is not JSON: %v", err)
		}
		want := map[string]any{
			"name":  "Ada Lovelace",
			"email": "ada@example.org",
			"role":  "member",
			"book":  nil,
			"books": nil,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("normalized document mismatch (-want +got):\n%s", diff)
		}
		if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
			t.Error("temp file should be gone")
		}
	})
}

func TestDiffCommand(t *testing.T) {
	left := writeFile(t, "left.yaml", "title: Solaris\nyear: 1961\n")

	t.Run("equal", func(t *testing.T) {
		right := writeFile(t, "right.json", `{"year": "1961", "title": "Solaris", "unknown": 1}`)
		out, err := run(t, "diff", left, right, "--type", "Book")
		if err != nil {
			t.Fatalf("diff failed: %v", err)
		}
		if strings.TrimSpace(out) != "documents are equal" {
			t.Errorf("unexpected output: %q", out)
		}
	})

	t.Run("different", func(t *testing.T) {
		right := writeFile(t, "right.yaml", "title: Solaris\nyear: 1972\ntags: [film]\n")
		out, err := run(t, "diff", left, right, "--type", "Book")
		if !errors.Is(err, errSilentExit) {
			t.Fatalf("expected silent exit, got %v", err)
		}
		if diff := cmp.Diff("~ year\n~ tags\n", out); diff != "" {
			t.Errorf("output mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := run(t, "types", "--log-level", "chatty")
	var cliErr *CLIError
	if !errors.As(err, &cliErr) {
		t.Fatalf("expected CLIError, got %v", err)
	}
}
