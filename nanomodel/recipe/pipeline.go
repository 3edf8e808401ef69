package recipe

import (
	"context"
	"errors"
)

// errNoResolver is reported for recipes declared without a resolver.
var errNoResolver = errors.New("recipe has no resolver")

// Run evaluates recipes in order and returns the collected codes.
//
// A resolver error, or a cancelled ctx observed before a recipe starts, aborts
// the run: the remaining recipes are not evaluated and no codes are returned.
// Callers decide whether to retry; the pipeline never imposes a timeout.
func Run(ctx context.Context, mode Mode, recipes []Recipe, scope any, value any) ([]int, error) {
	var codes []int
	for _, r := range recipes {
		if err := ctx.Err(); err != nil {
			return nil, &Error{Mode: mode, Code: r.Code, Err: err}
		}
		if r.Resolver == nil {
			return nil, &Error{Mode: mode, Code: r.Code, Err: errNoResolver}
		}

		ok, err := r.Resolver(ctx, scope, value, r)
		if err != nil {
			return nil, &Error{Mode: mode, Code: r.Code, Err: err}
		}

		switch mode {
		case ModeValidate:
			if !ok {
				codes = append(codes, r.Code)
			}
		case ModeHandle:
			if ok {
				codes = append(codes, r.Code)
			}
		}
	}
	return codes, nil
}

// Validate is Run in ModeValidate.
func Validate(ctx context.Context, recipes []Recipe, scope any, value any) ([]int, error) {
	return Run(ctx, ModeValidate, recipes, scope, value)
}

// Handle is Run in ModeHandle with the error as subject.
func Handle(ctx context.Context, recipes []Recipe, scope any, err error) ([]int, error) {
	return Run(ctx, ModeHandle, recipes, scope, err)
}
