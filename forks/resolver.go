package forks

import "context"

// Pattern: Strategy -- swap the hosting API without
// changing the resolution loop.

// ChangeResolver turns a pull-request number in the
// owner/repo project into a concrete Change.
type ChangeResolver interface {
	ResolveChange(
		ctx context.Context,
		owner string,
		repo string,
		number int,
	) (Change, error)
}

// ChangeResolverFunc adapts a plain function to the
// ChangeResolver interface.
type ChangeResolverFunc func(
	ctx context.Context,
	owner string,
	repo string,
	number int,
) (Change, error)

// ResolveChange delegates to the wrapped function.
func (f ChangeResolverFunc) ResolveChange(
	ctx context.Context,
	owner string,
	repo string,
	number int,
) (Change, error) {
	return f(ctx, owner, repo, number)
}
