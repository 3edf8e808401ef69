package nanomodel

import (
	"fmt"

	"github.com/arthur-debert/nanomodel/internal/validation"
	"github.com/arthur-debert/nanomodel/nanomodel/convert"
)

// Schema is a named, ordered list of property declarations. Models built
// from a schema all share its property set.
type Schema struct {
	name  string
	props []schemaProp
}

type schemaProp struct {
	name string
	cfg  PropConfig
}

// SchemaBuilder collects property declarations for a Schema.
type SchemaBuilder struct {
	name  string
	props []schemaProp
}

// NewSchema starts a schema named name.
func NewSchema(name string) *SchemaBuilder {
	return &SchemaBuilder{name: name}
}

// Prop declares a property. Declaration order is kept everywhere: in
// serialization, traversal and error lists.
func (b *SchemaBuilder) Prop(name string, cfg PropConfig) *SchemaBuilder {
	b.props = append(b.props, schemaProp{name: name, cfg: cfg})
	return b
}

// Build checks the declarations and returns the schema.
func (b *SchemaBuilder) Build() (*Schema, error) {
	fields := make([]validation.Field, len(b.props))
	for i, p := range b.props {
		fields[i] = validation.Field{
			Name:      p.name,
			Converter: p.cfg.Cast.Converter(),
			Values:    staticValues(p.cfg),
		}
	}

	known := func(name string) bool {
		_, ok := convert.Lookup(name)
		return ok
	}
	if err := validation.Schema(b.name, fields, known); err != nil {
		return nil, err
	}

	return &Schema{
		name:  b.name,
		props: append([]schemaProp(nil), b.props...),
	}, nil
}

// MustBuild is Build for package-level schema variables. It panics on an
// invalid declaration.
func (b *SchemaBuilder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

func staticValues(cfg PropConfig) map[string]any {
	values := make(map[string]any, 3)
	for role, v := range map[string]any{
		"default": cfg.DefaultValue,
		"empty":   cfg.EmptyValue,
		"fake":    cfg.FakeValue,
	} {
		if v != nil && !isFactory(v) {
			values[role] = v
		}
	}
	return values
}

// Name returns the schema name.
func (s *Schema) Name() string {
	return s.name
}

// PropNames returns the declared property names in order.
func (s *Schema) PropNames() []string {
	names := make([]string, len(s.props))
	for i, p := range s.props {
		names[i] = p.name
	}
	return names
}

// PropConfig returns the declaration of the named property.
func (s *Schema) PropConfig(name string) (PropConfig, bool) {
	for _, p := range s.props {
		if p.name == name {
			return p.cfg, true
		}
	}
	return PropConfig{}, false
}

// New builds a model and populates it with data, which may be nil.
func (s *Schema) New(data map[string]any, opts ...Option) *Model {
	o := buildOptions(opts)
	m := newModel(s, o)
	for _, p := range s.props {
		prop, err := newProp(p.name, m, p.cfg)
		if err != nil {
			// Build checked every converter and the registry only grows.
			panic(fmt.Sprintf("schema %s: %v", s.name, err))
		}
		m.props = append(m.props, prop)
		m.index[p.name] = prop
	}
	if data != nil {
		// A fresh model has no frozen property, so population cannot fail.
		_ = m.Populate(data, o.strategy)
	}
	return m
}
