package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/arthur-debert/nanomodel/formats"
	"github.com/arthur-debert/nanomodel/nanomodel"
	"github.com/arthur-debert/nanomodel/samples/library"
	"github.com/arthur-debert/nanomodel/types"
)

// LibraryFixture is the name of the library document under testdata.
const LibraryFixture = "library.yaml"

// LibraryData provides typed access to the library fixture
type LibraryData struct {
	Library *nanomodel.Model

	// Catalog
	Dispossessed *nanomodel.Model // books.0 - valid, has tags
	Solaris      *nanomodel.Model // books.1 - year given as a string

	// Members
	Genly  *nanomodel.Model // members.0 - valid, name needs collapsing
	Shevek *nanomodel.Model // members.1 - bad email, nested book with empty title and year 3000
}

// FixturePath returns the absolute path of a file under testutil/testdata.
func FixturePath(t *testing.T, name string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot locate testutil sources")
	}
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

// LoadDocument decodes a fixture file with the format matching its extension.
func LoadDocument(t *testing.T, name string) map[string]any {
	t.Helper()

	path := FixturePath(t, name)
	format, err := formats.ForPath(path)
	if err != nil {
		t.Fatalf("failed to detect fixture format: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read fixture file: %v", err)
	}
	doc, err := format.Decode(data)
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return doc
}

// LoadLibrary builds a Library model from the fixture document.
func LoadLibrary(t *testing.T, opts ...nanomodel.Option) *LibraryData {
	t.Helper()

	lib := library.Library.New(LoadDocument(t, LibraryFixture), opts...)
	return &LibraryData{
		Library:      lib,
		Dispossessed: nested(t, lib, "books.0"),
		Solaris:      nested(t, lib, "books.1"),
		Genly:        nested(t, lib, "members.0"),
		Shevek:       nested(t, lib, "members.1"),
	}
}

// nested returns the model at an indexed path such as "books.0".
func nested(t *testing.T, m *nanomodel.Model, path string) *nanomodel.Model {
	t.Helper()

	segs := types.ParsePath(path)
	idx, ok := segs[len(segs)-1].(int)
	if !ok {
		t.Fatalf("fixture path %s does not end with an index", path)
	}
	p := m.GetProp(segs[:len(segs)-1])
	if p == nil {
		t.Fatalf("fixture has no prop %s", segs[:len(segs)-1])
	}
	elems, ok := p.Value().([]any)
	if !ok {
		t.Fatalf("fixture prop %s is not a list", segs[:len(segs)-1])
	}
	if idx >= len(elems) {
		t.Fatalf("fixture has no element %s", path)
	}
	n, ok := elems[idx].(*nanomodel.Model)
	if !ok {
		t.Fatalf("fixture element %s is %T", path, elems[idx])
	}
	return n
}
