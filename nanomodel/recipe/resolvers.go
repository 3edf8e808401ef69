package recipe

import "context"

// Check adapts a plain predicate over the subject value.
func Check(fn func(value any) bool) Resolver {
	return func(_ context.Context, _ any, value any, _ Recipe) (bool, error) {
		return fn(value), nil
	}
}

// Match adapts an error classifier for handle recipes. Subjects that are not
// errors never match.
func Match(fn func(err error) bool) Resolver {
	return func(_ context.Context, _ any, value any, _ Recipe) (bool, error) {
		err, ok := value.(error)
		if !ok || err == nil {
			return false, nil
		}
		return fn(err), nil
	}
}

// Outcome is the settled result of a deferred resolver.
type Outcome struct {
	OK  bool
	Err error
}

// Async adapts a resolver that hands back its decision on a channel. The
// pipeline suspends until the outcome arrives or ctx is done; a channel that
// is closed without a value counts as false.
func Async(start func(ctx context.Context, scope any, value any) <-chan Outcome) Resolver {
	return func(ctx context.Context, scope any, value any, _ Recipe) (bool, error) {
		select {
		case out, ok := <-start(ctx, scope, value):
			if !ok {
				return false, nil
			}
			return out.OK, out.Err
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
}
