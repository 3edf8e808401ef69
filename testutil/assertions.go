package testutil

import (
	"testing"

	"github.com/arthur-debert/nanomodel/nanomodel"
	"github.com/arthur-debert/nanomodel/types"
	"github.com/google/go-cmp/cmp"
)

// AssertValid checks that no property of the tree carries an error code
func AssertValid(t *testing.T, m *nanomodel.Model) {
	t.Helper()
	if !m.IsValid() {
		t.Errorf("expected a valid model, got errors:\n%s", m.CollectErrors())
	}
}

// AssertErrors compares the collected error list with want
func AssertErrors(t *testing.T, m *nanomodel.Model, want types.ErrorList) {
	t.Helper()
	if diff := cmp.Diff(want, m.CollectErrors()); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

// AssertCodes checks the error codes of the property at path
func AssertCodes(t *testing.T, m *nanomodel.Model, path string, want ...int) {
	t.Helper()
	p := m.GetProp(path)
	if p == nil {
		t.Fatalf("no property at %s", path)
	}
	if diff := cmp.Diff(want, p.ErrorCodes()); diff != "" {
		t.Errorf("codes at %s mismatch (-want +got):\n%s", path, diff)
	}
}

// AssertValue checks the value of the property at path
func AssertValue(t *testing.T, m *nanomodel.Model, path string, want any) {
	t.Helper()
	p := m.GetProp(path)
	if p == nil {
		t.Fatalf("no property at %s", path)
	}
	if !p.IsEqual(want) {
		t.Errorf("value at %s = %#v, want %#v", path, p.Value(), want)
	}
}

// AssertSerialized compares the serialized model with want
func AssertSerialized(t *testing.T, m *nanomodel.Model, want map[string]any) {
	t.Helper()
	if diff := cmp.Diff(want, m.Serialize()); diff != "" {
		t.Errorf("serialized mismatch (-want +got):\n%s", diff)
	}
}
