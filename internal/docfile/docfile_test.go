package docfile_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/nanomodel/internal/docfile"
	"github.com/gofrs/flock"
	"github.com/google/go-cmp/cmp"
)

func TestSaveAndLoad(t *testing.T) {
	for _, ext := range []string{".json", ".yaml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "user"+ext)
			f, err := docfile.Open(path, "")
			if err != nil {
				t.Fatalf("Open: %v", err)
			}

			doc := map[string]any{"name": "John", "books": []any{map[string]any{"title": "Dune"}}}
			if err := f.Save(context.Background(), doc); err != nil {
				t.Fatalf("Save: %v", err)
			}
			if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
				t.Error("temp file left behind")
			}

			got, err := f.Load(context.Background())
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if diff := cmp.Diff(doc, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.json")
	if err := os.WriteFile(path, []byte(`{"name":"John"}`), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := docfile.Open(path, "")
	if err != nil {
		t.Fatal(err)
	}

	err = f.Update(context.Background(), func(doc map[string]any) (any, error) {
		doc["name"] = "Jane"
		return doc, nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := f.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got["name"] != "Jane" {
		t.Errorf("name = %v, want Jane", got["name"])
	}

	boom := errors.New("boom")
	err = f.Update(context.Background(), func(map[string]any) (any, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Errorf("expected callback error, got %v", err)
	}
}

func TestOpenErrors(t *testing.T) {
	if _, err := docfile.Open("doc.txt", ""); err == nil {
		t.Error("expected error for unknown extension")
	}
	if _, err := docfile.Open("doc.txt", "nope"); err == nil {
		t.Error("expected error for unknown format")
	}
	f, err := docfile.Open("doc.txt", "yaml")
	if err != nil {
		t.Fatalf("explicit format: %v", err)
	}
	if f.Format().Name != "yaml" {
		t.Errorf("format = %s, want yaml", f.Format().Name)
	}
}

func TestLoadMissingFile(t *testing.T) {
	f, err := docfile.Open(filepath.Join(t.TempDir(), "missing.json"), "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Load(context.Background()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestLoadWaitsForLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.json")
	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := docfile.Open(path, "")
	if err != nil {
		t.Fatal(err)
	}

	other := flock.New(path + ".lock")
	if err := other.Lock(); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = other.Unlock() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.Load(ctx); err == nil {
		t.Error("expected lock failure while another holder has the lock")
	}
}
