package forks

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigRead is returned when the configuration
	// document cannot be opened or decoded.
	ErrConfigRead = errors.New("reading configuration")

	// ErrGitHubAPI wraps failures of the hosting API
	// call itself (network, auth, not found).
	ErrGitHubAPI = errors.New("github api call failed")

	// ErrNoVariant is returned when a change entry
	// matches neither the resolved nor the pull-request
	// shape.
	ErrNoVariant = errors.New(
		"data did not match any change variant",
	)

	// ErrUnresolved is returned when a script is
	// generated from a model that still holds
	// pull-request placeholders.
	ErrUnresolved = errors.New("unresolved pull request")

	// ErrEmptyBranch is returned when a resolver hands
	// back a change without a branch.
	ErrEmptyBranch = errors.New("resolved change has no branch")

	// ErrUnknownFormat is returned by Dump for an
	// unsupported output format.
	ErrUnknownFormat = errors.New("unknown dump format")
)

// Reasons carried by GitHubParseError.
const (
	ReasonMissingHead = "Missing repo head"
	ReasonMissingURL  = "Missing repo html url"
)

// URLParseError reports a repository URL that does not
// point at a GitHub project.
type URLParseError struct {
	URL string
}

func (e *URLParseError) Error() string {
	return fmt.Sprintf("cannot parse github url %q", e.URL)
}

// GitHubParseError reports an API response that lacks a
// field needed to build a change.
type GitHubParseError struct {
	Reason string
}

func (e *GitHubParseError) Error() string {
	return "parsing github response: " + e.Reason
}
