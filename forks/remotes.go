package forks

import (
	"sort"
	"strings"
)

// RemoteSet is the set of distinct remote URLs a
// configuration touches.
type RemoteSet map[string]struct{}

// Remotes collects the target and upstream URL of every
// fork and the URL of every resolved change.
func (c *Config) Remotes() RemoteSet {
	rs := make(RemoteSet)

	for _, fork := range c.Forks {
		rs[fork.Target.URL] = struct{}{}
		rs[fork.Upstream.URL] = struct{}{}

		for _, ref := range fork.Changes {
			if ref.IsResolved() {
				rs[ref.Change.URL] = struct{}{}
			}
		}
	}

	return rs
}

// Sorted returns the URLs in lexical order.
func (rs RemoteSet) Sorted() []string {
	urls := make([]string, 0, len(rs))
	for url := range rs {
		urls = append(urls, url)
	}

	sort.Strings(urls)

	return urls
}

// String joins the sorted URLs with single spaces, the
// form the script template consumes.
func (rs RemoteSet) String() string {
	return strings.Join(rs.Sorted(), " ")
}

// RemoteName turns a remote URL into a git remote name by
// dropping the "https://" or "git@" prefix and replacing
// the remaining ':' separators with '/'.
//
//	https://github.com/acme/widgets -> github.com/acme/widgets
//	git@github.com:acme/widgets     -> github.com/acme/widgets
func RemoteName(url string) string {
	name := strings.ReplaceAll(url, "https://", "")
	name = strings.ReplaceAll(name, "git@", "")

	return strings.ReplaceAll(name, ":", "/")
}

// ShellQuote wraps s in single quotes for safe use as a
// single shell word.
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
