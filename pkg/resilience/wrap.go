package resilience

import "context"

// Wrap composes policies into one, outermost first: Wrap(fallback, retry)
// returns a policy whose Execute runs fallback around retry around the
// operation. The order is load-bearing — with the fallback outermost, the
// inner retries are exhausted before recovery is considered, so the fallback
// is a terminal safety net rather than a per-attempt handler.
//
// Wrapping a single policy returns it unchanged; wrapping none returns a
// policy that executes the operation directly.
func Wrap[T any](policies ...Policy[T]) Policy[T] {
	switch len(policies) {
	case 0:
		return passthrough[T]{}
	case 1:
		return policies[0]
	}

	composed := policies[len(policies)-1]
	for i := len(policies) - 2; i >= 0; i-- {
		composed = &wrapped[T]{outer: policies[i], inner: composed}
	}
	return composed
}

// wrapped nests one policy inside another: the inner policy's execution is
// the outer policy's operation.
type wrapped[T any] struct {
	outer Policy[T]
	inner Policy[T]
}

func (w *wrapped[T]) Execute(ctx context.Context, op Operation[T]) (T, error) {
	return w.outer.Execute(ctx, func(ctx context.Context) (T, error) {
		return w.inner.Execute(ctx, op)
	})
}

// passthrough executes the operation with no policy applied.
type passthrough[T any] struct{}

func (passthrough[T]) Execute(ctx context.Context, op Operation[T]) (T, error) {
	return op(ctx)
}
