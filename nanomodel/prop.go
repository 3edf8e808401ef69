package nanomodel

import (
	"context"
	"fmt"

	"github.com/arthur-debert/nanomodel/nanomodel/recipe"
	"github.com/arthur-debert/nanomodel/types"
	"go.uber.org/zap"
)

// PropConfig declares a property.
type PropConfig struct {
	// Getter transforms the stored value on every read.
	Getter func(value any) any

	// Setter transforms a written value before it is cast.
	Setter func(value any) any

	// DefaultValue, EmptyValue and FakeValue are static values or a Factory.
	DefaultValue any
	EmptyValue   any
	FakeValue    any

	// Populatable and Serializable restrict the property to the listed
	// strategies. Nil means every strategy.
	Populatable  types.TagSet
	Serializable types.TagSet

	Cast Cast

	// Validate recipes report their code when the resolver returns false.
	Validate []recipe.Recipe

	// Handle recipes report their code when the resolver matches an error.
	Handle []recipe.Recipe
}

type valueState int

const (
	stateDefault valueState = iota
	stateEmpty
	stateSet
)

func (s valueState) String() string {
	switch s {
	case stateDefault:
		return "default"
	case stateEmpty:
		return "empty"
	default:
		return "set"
	}
}

// Prop is a single property of a Model.
type Prop struct {
	name  string
	model *Model
	cfg   PropConfig

	value        any
	state        valueState
	built        bool
	initial      any
	initialState valueState
	initialBuilt bool

	errorCodes []int
	frozen     bool
}

func newProp(name string, model *Model, cfg PropConfig) (*Prop, error) {
	c, err := cfg.Cast.resolve()
	if err != nil {
		return nil, fmt.Errorf("property %s: %w", name, err)
	}
	cfg.Cast = c

	p := &Prop{name: name, model: model, cfg: cfg}
	p.materialize(stateDefault)
	p.initialState = p.state
	return p, nil
}

// Name returns the declared name.
func (p *Prop) Name() string {
	return p.name
}

// Model returns the owning model.
func (p *Prop) Model() *Model {
	return p.model
}

// Config returns the declaration the property was defined with.
func (p *Prop) Config() PropConfig {
	return p.cfg
}

// materialize moves the property to the default or empty state. The declared
// value is evaluated when it is first read.
func (p *Prop) materialize(state valueState) {
	p.state = state
	p.value = nil
	p.built = false
}

// build evaluates the declared value of a model property once per state
// transition, so the nested node keeps a stable identity between reads.
// A declared node is not built under an ancestor of the same schema that
// was itself built from a declared value, as that tree would never end.
func (p *Prop) build() {
	p.built = true

	declared := p.cfg.DefaultValue
	if p.state == stateEmpty {
		declared = p.cfg.EmptyValue
	}
	if p.model.declaredBy(p.cfg.Cast.modelSchema()) {
		if declared != nil {
			p.logger().Warn("not building recursive declared value", zap.String("prop", p.name), zap.Stringer("state", p.state))
		}
		p.value = nil
	} else {
		p.value = p.cfg.Cast.apply(p.model, evaluate(declared), "", asDeclared())
	}

	// The committed state still names this declared value, so the node just
	// built is the baseline.
	if p.state == p.initialState && !p.initialBuilt {
		p.initial = p.value
		p.initialBuilt = true
	}
}

// current returns the stored value, resolving default and empty states.
func (p *Prop) current() any {
	if p.IsModel() {
		if p.state != stateSet && !p.built {
			p.build()
		}
		return p.value
	}
	if p.state == stateSet {
		return p.value
	}
	if p.state == stateEmpty {
		return evaluate(p.cfg.EmptyValue)
	}
	return evaluate(p.cfg.DefaultValue)
}

// Value returns the current value as seen through the getter.
func (p *Prop) Value() any {
	v := p.current()
	if p.cfg.Getter != nil {
		return p.cfg.Getter(v)
	}
	return v
}

// RawValue returns the current value without applying the getter.
func (p *Prop) RawValue() any {
	return p.current()
}

// InitialValue returns the value recorded by the last Commit. For a model
// property whose committed default was never read, it is nil unless the
// property is still in that state.
func (p *Prop) InitialValue() any {
	if p.IsModel() && !p.initialBuilt && p.state == p.initialState {
		p.current()
	}
	switch p.initialState {
	case stateEmpty:
		if !p.IsModel() {
			return evaluate(p.cfg.EmptyValue)
		}
	case stateDefault:
		if !p.IsModel() {
			return evaluate(p.cfg.DefaultValue)
		}
	}
	return p.initial
}

// SetValue writes value through the setter and the cast. When a strategy is
// given and Populatable excludes it, the call does nothing.
func (p *Prop) SetValue(value any, strategy ...string) error {
	if p.frozen {
		return p.frozenError("set")
	}
	s := strategyOf(strategy)
	if !p.IsPopulatable(s) {
		return nil
	}

	if p.cfg.Setter != nil {
		value = p.cfg.Setter(value)
	}
	p.value = p.cfg.Cast.apply(p.model, value, s)
	p.state = stateSet
	p.built = true
	return nil
}

// Commit records the current value as the new baseline for Rollback and
// IsChanged. Nested models keep their identity; their own properties are
// committed by Model.Commit.
func (p *Prop) Commit() {
	p.initial = p.snapshot()
	p.initialState = p.state
	p.initialBuilt = p.built
}

// Rollback restores the value recorded by the last Commit.
func (p *Prop) Rollback() error {
	if p.frozen {
		return p.frozenError("rollback")
	}
	p.value = copyValue(p.initial)
	p.state = p.initialState
	p.built = p.initialBuilt
	p.reattach()
	return nil
}

// Reset restores the declared default.
func (p *Prop) Reset() error {
	if p.frozen {
		return p.frozenError("reset")
	}
	p.materialize(stateDefault)
	return nil
}

// Empty switches to the declared empty value.
func (p *Prop) Empty() error {
	if p.frozen {
		return p.frozenError("empty")
	}
	p.materialize(stateEmpty)
	return nil
}

// Fake assigns the declared fake value. Model properties without a fake
// value keep their nested models so Model.Fake can descend into them.
func (p *Prop) Fake() error {
	if p.frozen {
		return p.frozenError("fake")
	}
	if p.IsModel() && p.cfg.FakeValue == nil {
		p.current()
		p.state = stateSet
		return nil
	}
	p.value = p.cfg.Cast.apply(p.model, evaluate(p.cfg.FakeValue), "")
	p.state = stateSet
	p.built = true
	return nil
}

// snapshot copies the stored value for Commit. Array slices are copied so
// later writes to the slice do not leak into the baseline.
func (p *Prop) snapshot() any {
	if p.state != stateSet && !p.IsModel() {
		return nil
	}
	return copyValue(p.value)
}

// reattach points restored nested models back at the owner.
func (p *Prop) reattach() {
	for _, m := range p.nested() {
		m.parent = p.model
	}
}

// nested returns the models held by the property, skipping nil elements.
func (p *Prop) nested() []*Model {
	switch v := p.current().(type) {
	case *Model:
		if v != nil {
			return []*Model{v}
		}
	case []any:
		var out []*Model
		for _, el := range v {
			if m, ok := el.(*Model); ok && m != nil {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

// IsChanged reports whether the value differs from the last committed one.
// Model properties compare the nested nodes they hold by identity and also
// report changes made inside those nodes.
func (p *Prop) IsChanged() bool {
	if !p.IsModel() {
		// Both sides evaluate the same declared value.
		if p.state == p.initialState && p.state != stateSet {
			return false
		}
		return !valuesEqual(p.current(), p.InitialValue())
	}

	if p.state != p.initialState {
		return true
	}
	if !sameModels(p.current(), p.initial) {
		return true
	}
	for _, m := range p.nested() {
		if m.IsChanged() {
			return true
		}
	}
	return false
}

// sameModels compares nested model references.
func sameModels(a, b any) bool {
	as, aok := a.([]any)
	bs, bok := b.([]any)
	if aok != bok {
		return false
	}
	if !aok {
		am, _ := a.(*Model)
		bm, _ := b.(*Model)
		return am == bm
	}
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		am, _ := as[i].(*Model)
		bm, _ := bs[i].(*Model)
		if am != bm {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the value is nil, "" or an empty collection.
func (p *Prop) IsEmpty() bool {
	return isEmptyValue(p.Value())
}

// IsEqual compares the value structurally with other. Nested models compare
// by their serialized form; another *Prop compares by its value.
func (p *Prop) IsEqual(other any) bool {
	if o, ok := other.(*Prop); ok {
		other = o.Value()
	}
	return valuesEqual(p.Value(), other)
}

// Validate runs the validate recipes against the value and appends the codes
// of the failing ones. Nested models are not visited.
func (p *Prop) Validate(ctx context.Context) error {
	codes, err := recipe.Validate(ctx, p.cfg.Validate, p.model, p.Value())
	if err != nil {
		p.logger().Error("validate recipe failed", zap.String("prop", p.name), zap.Error(err))
		return fmt.Errorf("validate %s: %w", p.name, err)
	}
	p.errorCodes = append(p.errorCodes, codes...)
	return nil
}

// Handle runs the handle recipes against err and appends the codes of the
// matching ones.
func (p *Prop) Handle(ctx context.Context, err error) error {
	codes, rerr := recipe.Handle(ctx, p.cfg.Handle, p.model, err)
	if rerr != nil {
		p.logger().Error("handle recipe failed", zap.String("prop", p.name), zap.Error(rerr))
		return fmt.Errorf("handle %s: %w", p.name, rerr)
	}
	p.errorCodes = append(p.errorCodes, codes...)
	return nil
}

// ErrorCode returns the first error code, or 0 when there is none.
func (p *Prop) ErrorCode() int {
	if len(p.errorCodes) == 0 {
		return 0
	}
	return p.errorCodes[0]
}

// ErrorCodes returns a copy of the error codes in the order they were added.
func (p *Prop) ErrorCodes() []int {
	if len(p.errorCodes) == 0 {
		return nil
	}
	return append([]int(nil), p.errorCodes...)
}

// SetErrorCode replaces the error codes with code.
func (p *Prop) SetErrorCode(code int) {
	p.errorCodes = []int{code}
}

// SetErrorCodes replaces the error codes.
func (p *Prop) SetErrorCodes(codes ...int) {
	p.errorCodes = append([]int(nil), codes...)
}

// AddErrorCode appends code.
func (p *Prop) AddErrorCode(code int) {
	p.errorCodes = append(p.errorCodes, code)
}

// IsValid reports whether the property has no error codes.
func (p *Prop) IsValid() bool {
	return len(p.errorCodes) == 0
}

// Invalidate clears the error codes. Values are untouched.
func (p *Prop) Invalidate() {
	p.errorCodes = nil
}

// IsModel reports whether the property holds nested models.
func (p *Prop) IsModel() bool {
	return p.cfg.Cast.IsModel()
}

// IsArray reports whether the property holds a list.
func (p *Prop) IsArray() bool {
	return p.cfg.Cast.IsArray()
}

// IsPopulatable reports whether Populate writes the property for strategy.
func (p *Prop) IsPopulatable(strategy ...string) bool {
	return p.cfg.Populatable.Allows(strategyOf(strategy))
}

// IsSerializable reports whether Serialize includes the property for
// strategy.
func (p *Prop) IsSerializable(strategy ...string) bool {
	return p.cfg.Serializable.Allows(strategyOf(strategy))
}

// Freeze makes the property read-only for good.
func (p *Prop) Freeze() {
	p.frozen = true
}

// IsFrozen reports whether Freeze was called.
func (p *Prop) IsFrozen() bool {
	return p.frozen
}

func (p *Prop) frozenError(op string) error {
	p.logger().Warn("write rejected on frozen property", zap.String("prop", p.name), zap.String("op", op))
	return &FrozenError{Prop: p.name}
}

func (p *Prop) logger() *zap.Logger {
	if p.model == nil || p.model.logger == nil {
		return zap.NewNop()
	}
	return p.model.logger
}
