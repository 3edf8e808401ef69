package nanomodel

import "go.uber.org/zap"

// Option configures a Model at construction.
type Option func(*options)

type options struct {
	parent     *Model
	context    any
	hasContext bool
	logger     *zap.Logger
	strategy   string
	declared   bool
}

// WithParent attaches the new model under parent. Nested models built by a
// cast get this automatically.
func WithParent(parent *Model) Option {
	return func(o *options) {
		o.parent = parent
	}
}

// WithContext sets the opaque context value. Without it a model reports the
// context of its nearest ancestor.
func WithContext(ctx any) Option {
	return func(o *options) {
		o.context = ctx
		o.hasContext = true
	}
}

// WithLogger sets the logger. Nested models and clones inherit it.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger.Named("nanomodel")
		}
	}
}

// WithStrategy sets the populate strategy used for the initial data passed to
// Schema.New.
func WithStrategy(strategy string) Option {
	return func(o *options) {
		o.strategy = strategy
	}
}

// asDeclared marks a model built from a property's default or empty value.
func asDeclared() Option {
	return func(o *options) {
		o.declared = true
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		if o.parent != nil {
			o.logger = o.parent.logger
		} else {
			o.logger = zap.NewNop()
		}
	}
	return o
}

func strategyOf(strategy []string) string {
	if len(strategy) == 0 {
		return ""
	}
	return strategy[0]
}
