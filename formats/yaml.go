package formats

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAML encodes documents as block-style YAML mappings
var YAML = &DocumentFormat{
	Name:      "yaml",
	Extension: ".yaml",
	Aliases:   []string{".yml"},
	Encode: func(v any) ([]byte, error) {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	},
	Decode: func(data []byte) (map[string]any, error) {
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		if doc == nil {
			return nil, fmt.Errorf("decode yaml: document is not a mapping")
		}
		return doc, nil
	},
}

func init() {
	if err := Register(YAML); err != nil {
		panic(fmt.Sprintf("failed to register YAML format: %v", err))
	}
}
