package forks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/byte4ever/fork_manager/forks"
)

func TestFill_upstream_branch_from_target(t *testing.T) {
	t.Parallel()

	fork := forks.Fork{
		Target:   forks.RepoRef{URL: "a", Branch: "release-2"},
		Upstream: forks.RepoRef{URL: "b"},
	}

	fork.Fill()

	assert.Equal(t, "release-2", fork.Upstream.Branch)
}

func TestFill_upstream_branch_kept(t *testing.T) {
	t.Parallel()

	fork := forks.Fork{
		Target:   forks.RepoRef{URL: "a", Branch: "release-2"},
		Upstream: forks.RepoRef{URL: "b", Branch: "main"},
	}

	fork.Fill()

	assert.Equal(t, "main", fork.Upstream.Branch)
}

func TestFill_no_branches_tracks_default(t *testing.T) {
	t.Parallel()

	fork := forks.Fork{
		Target:   forks.RepoRef{URL: "a"},
		Upstream: forks.RepoRef{URL: "b"},
	}

	fork.Fill()

	assert.Empty(t, fork.Upstream.Branch)
}

func TestFill_change_title_from_branch(t *testing.T) {
	t.Parallel()

	fork := forks.Fork{
		Changes: []forks.ChangeRef{
			forks.Resolved(forks.Change{URL: "c", Branch: "feat-x"}),
			forks.Resolved(forks.Change{
				Title: "Keep", URL: "c", Branch: "feat-y",
			}),
			forks.Unresolved(3),
		},
	}

	fork.Fill()

	assert.Equal(t, "feat-x", fork.Changes[0].Change.Title)
	assert.Equal(t, "Keep", fork.Changes[1].Change.Title)
	assert.Equal(t, forks.Unresolved(3), fork.Changes[2])
}

func TestFill_idempotent(t *testing.T) {
	t.Parallel()

	build := func() forks.Fork {
		return forks.Fork{
			Name:     "w",
			Target:   forks.RepoRef{URL: "a", Branch: "dev"},
			Upstream: forks.RepoRef{URL: "b"},
			Changes: []forks.ChangeRef{
				forks.Resolved(forks.Change{URL: "c", Branch: "x"}),
			},
		}
	}

	once := build()
	once.Fill()

	twice := build()
	twice.Fill()
	twice.Fill()

	assert.Equal(t, once, twice)
}
