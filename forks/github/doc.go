// Package github implements a forks.ChangeResolver that looks pull requests
// up on GitHub (cloud or enterprise) and turns their head branch into a
// forks.Change. The access token is optional; without one the API is used
// unauthenticated and subject to the lower anonymous rate limit.
package github
