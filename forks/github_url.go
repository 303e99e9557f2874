package forks

import (
	"regexp"
	"strings"
)

var githubURLRe = regexp.MustCompile(
	`github\.com[/:]([^/]+)/([^/]+)`,
)

// ParseGitHub extracts the owner and repository name from
// a GitHub URL in HTTPS ("https://github.com/o/r") or SSH
// ("git@github.com:o/r.git") form. A trailing ".git" on
// the repository segment is dropped so the pair can be
// used against the API.
func ParseGitHub(url string) (string, string, error) {
	caps := githubURLRe.FindStringSubmatch(url)
	if caps == nil {
		return "", "", &URLParseError{URL: url}
	}

	return caps[1], strings.TrimSuffix(caps[2], ".git"), nil
}

// ParseGitHub extracts the owner and repository of the
// fork's upstream.
func (f *Fork) ParseGitHub() (string, string, error) {
	return ParseGitHub(f.Upstream.URL)
}
