package forks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// UpdateOptions tunes Config.Update.
type UpdateOptions struct {
	// Parallelism bounds the number of concurrent
	// resolver calls within one fork. Values below 2
	// resolve sequentially.
	Parallelism int
}

// Update resolves every pull-request placeholder through
// res and then fills defaults, fork by fork. The first
// failure aborts the whole update.
func (c *Config) Update(
	ctx context.Context,
	res ChangeResolver,
	opts UpdateOptions,
) error {
	const errCtx = "updating configuration"

	for i := range c.Forks {
		fork := &c.Forks[i]

		if err := fork.ResolveChanges(
			ctx, res, opts.Parallelism,
		); err != nil {
			return fmt.Errorf(
				"%s: fork %s: %w",
				errCtx, fork.Name, err,
			)
		}

		fork.Fill()
	}

	return nil
}

// ResolveChanges replaces each pull-request placeholder
// with the Change returned by res. The upstream URL is
// only parsed when there is something to resolve.
// Changes keep their position regardless of parallelism.
func (f *Fork) ResolveChanges(
	ctx context.Context,
	res ChangeResolver,
	parallelism int,
) error {
	const errCtx = "resolving changes"

	pending := f.pendingChanges()
	if len(pending) == 0 {
		slog.Debug("nothing to resolve", "fork", f.Name)

		return nil
	}

	owner, repo, err := f.ParseGitHub()
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if parallelism < 2 {
		for _, idx := range pending {
			if err := f.resolveAt(
				ctx, res, owner, repo, idx,
			); err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}
		}

		return nil
	}

	// Worker pool with bounded concurrency. Each
	// worker owns one slot of f.Changes and errs.
	var wg sync.WaitGroup

	errs := make([]error, len(f.Changes))
	sem := make(chan struct{}, parallelism)

	for _, idx := range pending {
		if ctx.Err() != nil {
			errs[idx] = ctx.Err()

			break
		}

		wg.Add(1)
		sem <- struct{}{}

		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			errs[i] = f.resolveAt(
				ctx, res, owner, repo, i,
			)
		}(idx)
	}

	wg.Wait()

	for _, e := range errs {
		if e != nil {
			return fmt.Errorf("%s: %w", errCtx, e)
		}
	}

	return nil
}

// pendingChanges returns the indexes of unresolved
// changes.
func (f *Fork) pendingChanges() []int {
	var idx []int

	for i, ref := range f.Changes {
		if ref.PullRequest != nil {
			idx = append(idx, i)
		}
	}

	return idx
}

func (f *Fork) resolveAt(
	ctx context.Context,
	res ChangeResolver,
	owner string,
	repo string,
	idx int,
) error {
	number := f.Changes[idx].PullRequest.Number

	ch, err := res.ResolveChange(ctx, owner, repo, number)
	if err != nil {
		return fmt.Errorf(
			"pull request #%d: %w", number, err,
		)
	}

	if ch.Branch == "" {
		return fmt.Errorf(
			"pull request #%d: %w", number, ErrEmptyBranch,
		)
	}

	slog.Info(
		"resolved pull request",
		"fork", f.Name,
		"number", number,
		"branch", ch.Branch,
	)

	f.Changes[idx] = Resolved(ch)

	return nil
}
