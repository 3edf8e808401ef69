package nanomodel

import (
	"bytes"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// field is one entry of an orderedMap.
type field struct {
	key   string
	value any
}

// orderedMap is the serialized form of a model that keeps declaration order
// when encoded.
type orderedMap []field

func (m *Model) ordered(strategy []string) orderedMap {
	out := make(orderedMap, 0, len(m.props))
	for _, p := range m.props {
		if !p.IsSerializable(strategy...) {
			continue
		}
		out = append(out, field{key: p.name, value: orderedValue(p.Value(), strategy)})
	}
	return out
}

func orderedValue(v any, strategy []string) any {
	switch t := v.(type) {
	case *Model:
		if t == nil {
			return nil
		}
		return t.ordered(strategy)
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = orderedValue(el, strategy)
		}
		return out
	}
	return v
}

func (o orderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.value)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", f.key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (o orderedMap) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, f := range o {
		var value yaml.Node
		if err := value.Encode(f.value); err != nil {
			return nil, fmt.Errorf("encode %s: %w", f.key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.key},
			&value,
		)
	}
	return node, nil
}

// View returns Serialize(strategy...) as a value that JSON and YAML encoders
// render with keys in declaration order.
func (m *Model) View(strategy ...string) any {
	return m.ordered(strategy)
}

// MarshalJSON encodes Serialize() with keys in declaration order.
func (m *Model) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.ordered(nil))
}

// UnmarshalJSON populates the model from a JSON object. The model must
// already have its properties, so decode into one built by Schema.New.
func (m *Model) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode model: %w", err)
	}
	return m.Populate(raw)
}

// MarshalYAML encodes Serialize() as a mapping in declaration order.
func (m *Model) MarshalYAML() (any, error) {
	return m.ordered(nil).MarshalYAML()
}

// UnmarshalYAML populates the model from a YAML mapping.
func (m *Model) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]any
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("decode model: %w", err)
	}
	return m.Populate(raw)
}

// Fingerprint hashes the canonical JSON encoding of Serialize(). Models that
// are IsEqual have the same fingerprint.
func (m *Model) Fingerprint() (uint64, error) {
	data, err := json.Marshal(m.Serialize())
	if err != nil {
		return 0, fmt.Errorf("fingerprint: %w", err)
	}
	return xxhash.Sum64(data), nil
}
