package forks

// RepoRef is a git remote, optionally pinned to a
// branch. An empty Branch means the remote's default
// branch.
type RepoRef struct {
	URL    string `json:"url"              yaml:"url"`
	Branch string `json:"branch,omitempty" yaml:"branch,omitempty"`
}

// Change is a fetchable change: a remote URL and the
// branch to merge from it.
type Change struct {
	Title  string `json:"title,omitempty" yaml:"title,omitempty"`
	URL    string `json:"url"             yaml:"url"`
	Branch string `json:"branch"          yaml:"branch"`
}

// PullRequest references a pull request by number in the
// fork's upstream project. It must be resolved into a
// Change before a script can be generated.
type PullRequest struct {
	Number int `json:"pr" yaml:"pr"`
}

// ChangeRef holds either a resolved Change or an
// unresolved PullRequest. Exactly one of the two is set.
type ChangeRef struct {
	Change      *Change
	PullRequest *PullRequest
}

// Resolved wraps ch in a ChangeRef.
func Resolved(ch Change) ChangeRef {
	return ChangeRef{Change: &ch}
}

// Unresolved wraps a pull-request number in a ChangeRef.
func Unresolved(number int) ChangeRef {
	return ChangeRef{PullRequest: &PullRequest{Number: number}}
}

// IsResolved reports whether the reference carries a
// concrete change.
func (c ChangeRef) IsResolved() bool {
	return c.Change != nil
}

// Fork is a target repository tracked against an
// upstream, with changes merged on top in order.
type Fork struct {
	Name     string      `json:"name"     yaml:"name"`
	Target   RepoRef     `json:"target"   yaml:"target"`
	Upstream RepoRef     `json:"upstream" yaml:"upstream"`
	Changes  []ChangeRef `json:"changes"  yaml:"changes"`
}

// Config is the top-level configuration document. Config
// optionally names the repository holding the document
// itself; it is passed through to the script untouched.
type Config struct {
	Config *RepoRef `json:"config,omitempty" yaml:"config,omitempty"`
	Forks  []Fork   `json:"forks"            yaml:"forks"`
}
