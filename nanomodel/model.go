package nanomodel

import (
	"context"
	"fmt"

	"dario.cat/mergo"
	"github.com/arthur-debert/nanomodel/internal/validation"
	"github.com/arthur-debert/nanomodel/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Model is an ordered set of properties forming a node in a model tree.
type Model struct {
	id     uuid.UUID
	schema *Schema
	props  []*Prop
	index  map[string]*Prop

	parent     *Model
	context    any
	hasContext bool
	logger     *zap.Logger

	// declared is set on models built from a default or empty value.
	declared bool
}

// New returns an empty model. Properties are added with DefineProp; models
// with a fixed property set are usually built from a Schema instead.
func New(opts ...Option) *Model {
	return newModel(nil, buildOptions(opts))
}

func newModel(schema *Schema, o options) *Model {
	return &Model{
		id:         uuid.New(),
		schema:     schema,
		index:      make(map[string]*Prop),
		parent:     o.parent,
		context:    o.context,
		hasContext: o.hasContext,
		logger:     o.logger,
		declared:   o.declared,
	}
}

// declaredBy reports whether m or one of its ancestors was built from a
// declared value of schema.
func (m *Model) declaredBy(schema *Schema) bool {
	if schema == nil {
		return false
	}
	for n := m; n != nil; n = n.parent {
		if n.declared && n.schema == schema {
			return true
		}
	}
	return false
}

// DefineProp adds a property. Names must be unique and usable as a path
// segment.
func (m *Model) DefineProp(name string, cfg PropConfig) (*Prop, error) {
	if err := validation.PropName(name); err != nil {
		return nil, err
	}
	if _, exists := m.index[name]; exists {
		return nil, fmt.Errorf("duplicate property name: %s", name)
	}

	p, err := newProp(name, m, cfg)
	if err != nil {
		return nil, err
	}
	m.props = append(m.props, p)
	m.index[name] = p
	return p, nil
}

// ID returns the identity of this instance. Clones get a new one.
func (m *Model) ID() uuid.UUID {
	return m.id
}

// Schema returns the schema the model was built from, nil for ad-hoc models.
func (m *Model) Schema() *Schema {
	return m.schema
}

// Props returns the properties in declaration order.
func (m *Model) Props() []*Prop {
	return append([]*Prop(nil), m.props...)
}

// Populate writes every key of data that names a property. Unknown keys are
// ignored. With a strategy, properties whose Populatable set excludes it are
// skipped.
func (m *Model) Populate(data map[string]any, strategy ...string) error {
	for _, p := range m.props {
		value, ok := data[p.name]
		if !ok {
			continue
		}
		if err := p.SetValue(value, strategy...); err != nil {
			return fmt.Errorf("populate %s: %w", p.name, err)
		}
	}
	return nil
}

// Serialize returns the values as plain data: nested models become maps and
// arrays keep their nil elements. With a strategy, properties whose
// Serializable set excludes it are left out.
func (m *Model) Serialize(strategy ...string) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m.props))
	for _, p := range m.props {
		if !p.IsSerializable(strategy...) {
			continue
		}
		out[p.name] = serializeValue(p.Value(), strategy)
	}
	return out
}

func serializeValue(v any, strategy []string) any {
	switch t := v.(type) {
	case *Model:
		if t == nil {
			return nil
		}
		return t.Serialize(strategy...)
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = serializeValue(el, strategy)
		}
		return out
	}
	return copyValue(v)
}

// GetParent returns the model this one is attached to, nil at a root.
func (m *Model) GetParent() *Model {
	return m.parent
}

// GetAncestors returns the chain from the root down to the parent.
func (m *Model) GetAncestors() []*Model {
	var chain []*Model
	for p := m.parent; p != nil; p = p.parent {
		chain = append(chain, p)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// GetContext returns the context given at construction or, failing that, the
// context of the nearest ancestor that has one.
func (m *Model) GetContext() any {
	for n := m; n != nil; n = n.parent {
		if n.hasContext {
			return n.context
		}
	}
	return nil
}

// Logger returns the logger the model reports to.
func (m *Model) Logger() *zap.Logger {
	return m.logger
}

// ApplyErrors adds each entry's code to the property its path addresses.
// Entries whose path does not resolve are skipped.
func (m *Model) ApplyErrors(entries types.ErrorList) {
	for _, e := range entries {
		p := m.GetProp(e.Path)
		if p == nil {
			m.logger.Debug("skipping error for unknown path", zap.Stringer("path", e.Path), zap.Int("code", e.Code))
			continue
		}
		p.AddErrorCode(e.Code)
	}
}

// CollectErrors returns the error codes of the whole tree, depth-first in
// declaration order. A property's own codes come before those of the models
// it holds; elements of an array property get an index segment.
func (m *Model) CollectErrors() types.ErrorList {
	var out types.ErrorList
	for _, f := range m.Flatten() {
		for _, code := range f.Prop.errorCodes {
			out = append(out, types.ErrorEntry{Path: f.Path, Code: code})
		}
	}
	return out
}

// FlatProp is a property together with its path from the model it was
// listed from.
type FlatProp struct {
	Path types.Path
	Prop *Prop
}

// Flatten lists every property of the tree depth-first.
func (m *Model) Flatten() []FlatProp {
	var out []FlatProp
	m.flatten(nil, &out)
	return out
}

func (m *Model) flatten(prefix types.Path, out *[]FlatProp) {
	for _, p := range m.props {
		path := prefix.Append(p.name)
		*out = append(*out, FlatProp{Path: path, Prop: p})

		switch v := p.current().(type) {
		case *Model:
			if v != nil {
				v.flatten(path, out)
			}
		case []any:
			for i, el := range v {
				if n, ok := el.(*Model); ok && n != nil {
					n.flatten(path.Append(i), out)
				}
			}
		}
	}
}

// IsValid reports whether no property in the tree has an error code.
func (m *Model) IsValid() bool {
	for _, f := range m.Flatten() {
		if !f.Prop.IsValid() {
			return false
		}
	}
	return true
}

// Invalidate clears the error codes of the whole tree.
func (m *Model) Invalidate() {
	for _, f := range m.Flatten() {
		f.Prop.Invalidate()
	}
}

// IsChanged reports whether any property of the tree changed since the last
// commit.
func (m *Model) IsChanged() bool {
	for _, p := range m.props {
		if p.IsChanged() {
			return true
		}
	}
	return false
}

// IsEqual reports whether both models serialize to the same data.
func (m *Model) IsEqual(other *Model) bool {
	if m == nil || other == nil {
		return m == other
	}
	return valuesEqual(m.Serialize(), other.Serialize())
}

// Clone builds an independent copy of the model from its serialized data
// with overrides merged on top. The clone has the same properties, context
// and logger but no parent, and shares no model with the original.
func (m *Model) Clone(overrides map[string]any) (*Model, error) {
	data := m.Serialize()
	if len(overrides) > 0 {
		if err := mergo.Merge(&data, overrides, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merge clone overrides: %w", err)
		}
	}

	o := options{logger: m.logger}
	if ctx := m.GetContext(); ctx != nil {
		o.context = ctx
		o.hasContext = true
	}
	clone := newModel(m.schema, o)
	for _, p := range m.props {
		if _, err := clone.DefineProp(p.name, p.cfg); err != nil {
			return nil, fmt.Errorf("clone: %w", err)
		}
	}
	if err := clone.Populate(data); err != nil {
		return nil, fmt.Errorf("clone: %w", err)
	}
	return clone, nil
}

// walk applies op to every property, then descends into the models the
// property holds once op is done when op asks for it.
func (m *Model) walk(op func(*Prop) (descend bool, err error)) error {
	for _, p := range m.props {
		descend, err := op(p)
		if err != nil {
			return err
		}
		if !descend {
			continue
		}
		for _, n := range p.nested() {
			if err := n.walk(op); err != nil {
				return err
			}
		}
	}
	return nil
}

// always adapts a property operation that applies to every nested model.
func always(op func(*Prop) error) func(*Prop) (bool, error) {
	return func(p *Prop) (bool, error) {
		return true, op(p)
	}
}

// Commit records the current values of the whole tree as the new baseline.
func (m *Model) Commit() {
	_ = m.walk(always(func(p *Prop) error {
		p.Commit()
		return nil
	}))
}

// Rollback restores the committed values of the whole tree, including the
// nested models a property held at commit time.
func (m *Model) Rollback() error {
	return m.walk(always((*Prop).Rollback))
}

// Reset restores the declared defaults of the whole tree. Nested models are
// rebuilt from their property's declared default.
func (m *Model) Reset() error {
	return m.walk(func(p *Prop) (bool, error) {
		return false, p.Reset()
	})
}

// Empty sets the whole tree to its declared empty values. Nested models are
// rebuilt from their property's declared empty value.
func (m *Model) Empty() error {
	return m.walk(func(p *Prop) (bool, error) {
		return false, p.Empty()
	})
}

// Fake sets the whole tree to its declared fake values. A model property
// without a fake value keeps its nested models and fakes them in turn.
func (m *Model) Fake() error {
	return m.walk(func(p *Prop) (bool, error) {
		return p.IsModel() && p.cfg.FakeValue == nil, p.Fake()
	})
}

// Freeze makes every property of the tree read-only for good.
func (m *Model) Freeze() {
	_ = m.walk(always(func(p *Prop) error {
		p.Freeze()
		return nil
	}))
}

// IsFrozen reports whether every property of the tree is frozen.
func (m *Model) IsFrozen() bool {
	for _, f := range m.Flatten() {
		if !f.Prop.IsFrozen() {
			return false
		}
	}
	return true
}

// ValidateOptions tune Model.Validate.
type ValidateOptions struct {
	// Quiet suppresses the ValidationError; callers inspect IsValid and
	// CollectErrors instead.
	Quiet bool

	// Code overrides DefaultValidationCode.
	Code int
}

// Validate clears previous errors and runs the validate recipes of the whole
// tree depth-first. Unless Quiet is set, a tree left with errors yields a
// *ValidationError. A failing resolver aborts the run and its error is
// returned as is.
func (m *Model) Validate(ctx context.Context, opts ValidateOptions) error {
	m.Invalidate()
	m.logger.Debug("validate started", zap.Stringer("id", m.id))

	err := m.walk(always(func(p *Prop) error {
		return p.Validate(ctx)
	}))
	if err != nil {
		return err
	}

	errs := m.CollectErrors()
	m.logger.Debug("validate finished", zap.Stringer("id", m.id), zap.Int("errors", len(errs)))
	if opts.Quiet || len(errs) == 0 {
		return nil
	}
	return &ValidationError{Code: codeOr(opts.Code), Errors: errs}
}

// HandleOptions tune Model.Handle.
type HandleOptions struct {
	// Quiet suppresses every returned error except resolver failures.
	Quiet bool

	// Code overrides DefaultValidationCode.
	Code int
}

// Handle clears previous errors and classifies err with the handle recipes
// of the whole tree. When some recipe matched, the codes are left on the
// matching properties and a *ValidationError is returned. When none matched,
// err itself is returned. Quiet suppresses both.
func (m *Model) Handle(ctx context.Context, err error, opts HandleOptions) error {
	if err == nil {
		return nil
	}
	m.Invalidate()
	m.logger.Debug("handle started", zap.Stringer("id", m.id), zap.Error(err))

	if werr := m.walk(always(func(p *Prop) error {
		return p.Handle(ctx, err)
	})); werr != nil {
		return werr
	}

	errs := m.CollectErrors()
	m.logger.Debug("handle finished", zap.Stringer("id", m.id), zap.Int("errors", len(errs)))
	if opts.Quiet {
		return nil
	}
	if len(errs) == 0 {
		return err
	}
	return &ValidationError{Code: codeOr(opts.Code), Errors: errs}
}

func codeOr(code int) int {
	if code == 0 {
		return DefaultValidationCode
	}
	return code
}
