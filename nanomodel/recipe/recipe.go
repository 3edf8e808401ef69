// Package recipe evaluates ordered lists of {code, resolver} recipes against a
// single value. The same pipeline serves property validation, where a recipe
// reports its code when the check fails, and error handling, where a recipe
// reports its code when the classifier matches.
//
// Recipes run one at a time in declaration order. A resolver may block (for
// example while waiting on a lookup); the pipeline waits for it before moving
// to the next recipe, so the resulting code order is always reproducible.
package recipe

import (
	"context"
	"fmt"
)

// Mode selects the polarity of a run.
type Mode int

const (
	// ModeValidate collects the codes of recipes whose resolver returns false.
	ModeValidate Mode = iota
	// ModeHandle collects the codes of recipes whose resolver returns true.
	ModeHandle
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeValidate:
		return "validate"
	case ModeHandle:
		return "handle"
	default:
		return "unknown"
	}
}

// Resolver decides a single recipe. scope is the shared value every recipe of
// a run sees (the owning model for property recipes), value is the subject
// being checked and r is the recipe being evaluated.
type Resolver func(ctx context.Context, scope any, value any, r Recipe) (bool, error)

// Recipe pairs an error code with the resolver that decides it.
type Recipe struct {
	Code     int
	Resolver Resolver
}

// New returns a recipe for code decided by resolver.
func New(code int, resolver Resolver) Recipe {
	return Recipe{Code: code, Resolver: resolver}
}

// Error wraps a resolver failure with the code of the recipe that failed.
type Error struct {
	Mode Mode
	Code int
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s recipe %d: %v", e.Mode, e.Code, e.Err)
}

// Unwrap returns the resolver error.
func (e *Error) Unwrap() error {
	return e.Err
}
