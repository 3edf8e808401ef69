// Package formats holds the document formats model data can be read from and
// written to.
package formats

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// DocumentFormat defines how documents are encoded and decoded
type DocumentFormat struct {
	// Name is the format identifier (alphanumeric, dashes, underscores, lowercase)
	Name string

	// Extension is the file extension including the dot (e.g., ".json")
	Extension string

	// Aliases are further extensions recognized by ForPath
	Aliases []string

	// Encode renders a value, usually a *nanomodel.Model or its serialized
	// map, as a document
	Encode func(v any) ([]byte, error)

	// Decode parses a document into plain data. The top level must be an
	// object.
	Decode func(data []byte) (map[string]any, error)
}

// registry holds all available document formats
var registry = make(map[string]*DocumentFormat)

// Register adds a new document format to the registry
func Register(format *DocumentFormat) error {
	// Validate format name (alphanumeric, dashes, underscores, lowercase)
	if !isValidFormatName(format.Name) {
		return fmt.Errorf("invalid format name %q: must be lowercase alphanumeric with dashes and underscores only", format.Name)
	}

	// Normalize extensions
	format.Extension = normalizeExtension(format.Extension)
	for i, alias := range format.Aliases {
		format.Aliases[i] = normalizeExtension(alias)
	}

	if _, exists := registry[format.Name]; exists {
		return fmt.Errorf("format %q already registered", format.Name)
	}

	registry[format.Name] = format
	return nil
}

// Get returns a document format by name
func Get(name string) (*DocumentFormat, error) {
	format, exists := registry[name]
	if !exists {
		return nil, fmt.Errorf("unknown format %q", name)
	}
	return format, nil
}

// ForPath picks the format whose extension matches path
func ForPath(path string) (*DocumentFormat, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil, fmt.Errorf("cannot detect format of %q: no extension", path)
	}
	for _, name := range List() {
		format := registry[name]
		if format.Extension == ext {
			return format, nil
		}
		for _, alias := range format.Aliases {
			if alias == ext {
				return format, nil
			}
		}
	}
	return nil, fmt.Errorf("no format registered for extension %q", ext)
}

// List returns all registered format names, sorted
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeExtension(ext string) string {
	if ext == "" || strings.HasPrefix(ext, ".") {
		return strings.ToLower(ext)
	}
	return "." + strings.ToLower(ext)
}

// isValidFormatName checks if a format name is valid
func isValidFormatName(name string) bool {
	if name == "" {
		return false
	}

	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' && r != '_' {
			return false
		}
	}
	return true
}
