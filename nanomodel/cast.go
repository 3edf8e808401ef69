package nanomodel

import (
	"fmt"

	"github.com/arthur-debert/nanomodel/nanomodel/convert"
)

type castKind int

const (
	castNone castKind = iota
	castFunc
	castNamed
	castModel
)

// Cast converts every value written to a property. It holds exactly one of a
// function, the name of a handler registered in package convert, or a nested
// model schema. The zero Cast stores values unchanged.
type Cast struct {
	kind     castKind
	fn       func(any) any
	name     string
	schema   *Schema
	schemaFn func() *Schema
	array    bool
}

// CastWith converts values with fn. fn should return nil for values it cannot
// convert.
func CastWith(fn func(value any) any) Cast {
	return Cast{kind: castFunc, fn: fn}
}

// CastTo converts values with the named handler from package convert.
func CastTo(name string) Cast {
	return Cast{kind: castNamed, name: name}
}

// CastModel builds nested models of schema from map values.
func CastModel(schema *Schema) Cast {
	return Cast{kind: castModel, schema: schema}
}

// CastModelFunc is CastModel with the schema resolved on use. It allows a
// schema to nest itself.
func CastModelFunc(fn func() *Schema) Cast {
	return Cast{kind: castModel, schemaFn: fn}
}

// Array marks the cast as applying to every element of a slice value.
func (c Cast) Array() Cast {
	c.array = true
	return c
}

// IsArray reports whether the array flag is set.
func (c Cast) IsArray() bool {
	return c.array
}

// IsModel reports whether the cast builds nested models.
func (c Cast) IsModel() bool {
	return c.kind == castModel
}

// Converter returns the handler name for casts built with CastTo.
func (c Cast) Converter() string {
	if c.kind != castNamed {
		return ""
	}
	return c.name
}

func (c Cast) String() string {
	var s string
	switch c.kind {
	case castFunc:
		s = "func"
	case castNamed:
		s = c.name
	case castModel:
		if schema := c.modelSchema(); schema != nil {
			s = schema.Name()
		} else {
			s = "model"
		}
	default:
		s = "any"
	}
	if c.array {
		return "[]" + s
	}
	return s
}

func (c Cast) modelSchema() *Schema {
	if c.schemaFn != nil {
		return c.schemaFn()
	}
	return c.schema
}

// resolve checks that a named handler exists. It is called once when the
// property is defined.
func (c Cast) resolve() (Cast, error) {
	if c.kind != castNamed {
		return c, nil
	}
	fn, ok := convert.Lookup(c.name)
	if !ok {
		return c, fmt.Errorf("unknown converter %q", c.name)
	}
	c.fn = fn
	return c, nil
}

// apply converts value for a property owned by owner. strategy and opts are
// forwarded to the construction of nested models.
func (c Cast) apply(owner *Model, value any, strategy string, opts ...Option) any {
	if value == nil {
		return nil
	}
	if !c.array {
		return c.one(owner, value, strategy, opts)
	}

	elems, ok := asSlice(value)
	if !ok {
		elems = []any{value}
	}
	out := make([]any, len(elems))
	for i, el := range elems {
		if el == nil {
			continue
		}
		out[i] = c.one(owner, el, strategy, opts)
	}
	return out
}

func (c Cast) one(owner *Model, value any, strategy string, opts []Option) any {
	switch c.kind {
	case castFunc, castNamed:
		if c.fn == nil {
			return value
		}
		return c.fn(value)
	case castModel:
		return c.model(owner, value, strategy, opts)
	default:
		return value
	}
}

func (c Cast) model(owner *Model, value any, strategy string, opts []Option) any {
	switch v := value.(type) {
	case *Model:
		if v == nil {
			return nil
		}
		v.parent = owner
		return v
	case map[string]any:
		schema := c.modelSchema()
		if schema == nil {
			return nil
		}
		return schema.New(v, append([]Option{WithParent(owner), WithStrategy(strategy)}, opts...)...)
	default:
		return nil
	}
}
