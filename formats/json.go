package formats

import (
	"fmt"

	"github.com/goccy/go-json"
)

// JSON encodes documents as indented JSON objects
var JSON = &DocumentFormat{
	Name:      "json",
	Extension: ".json",
	Encode: func(v any) ([]byte, error) {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	},
	Decode: func(data []byte) (map[string]any, error) {
		var doc map[string]any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		if doc == nil {
			return nil, fmt.Errorf("decode json: document is not an object")
		}
		return doc, nil
	},
}

func init() {
	if err := Register(JSON); err != nil {
		panic(fmt.Sprintf("failed to register JSON format: %v", err))
	}
}
