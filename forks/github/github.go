package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"github.com/byte4ever/fork_manager/forks"
)

// Config holds the settings for a GitHub resolver.
type Config struct {
	// Token is a personal access token or GitHub App
	// token. Leave empty for anonymous access.
	Token string
	// BaseURL is an optional API root (e.g.
	// "https://git.corp.example.com/api/v3/"). Leave
	// empty for api.github.com.
	BaseURL string
	// HTTPClient is the transport used for API calls.
	// Defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// Resolver resolves pull requests through the GitHub
// REST API. Each call issues one request; nothing is
// cached or retried.
//
// Pattern: Strategy -- implements forks.ChangeResolver.
type Resolver struct {
	client *gh.Client
}

// NewResolver returns a Resolver configured from cfg.
func NewResolver(cfg Config) (*Resolver, error) {
	const errCtx = "creating github resolver"

	httpClient := cfg.HTTPClient

	if cfg.Token != "" {
		ctx := context.Background()
		if httpClient != nil {
			ctx = context.WithValue(
				ctx, oauth2.HTTPClient, httpClient,
			)
		}

		httpClient = oauth2.NewClient(
			ctx,
			oauth2.StaticTokenSource(
				&oauth2.Token{AccessToken: cfg.Token},
			),
		)
	} else {
		slog.Debug("no github token, using anonymous access")
	}

	client := gh.NewClient(httpClient)

	if cfg.BaseURL != "" {
		base := cfg.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}

		parsed, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: base url: %w", errCtx, err,
			)
		}

		client.BaseURL = parsed
	}

	return &Resolver{client: client}, nil
}

// ResolveChange fetches pull request number of
// owner/repo and builds a change from its head: the SSH
// clone URL of the source repository (without ".git"),
// the head branch, and the title, falling back to the
// branch. Closed and merged pull requests resolve the
// same way as open ones.
func (r *Resolver) ResolveChange(
	ctx context.Context,
	owner string,
	repo string,
	number int,
) (forks.Change, error) {
	const errCtx = "resolving github pull request"

	pr, _, err := r.client.PullRequests.Get(
		ctx, owner, repo, number,
	)
	if err != nil {
		return forks.Change{}, fmt.Errorf(
			"%s: %s/%s#%d: %w: %w",
			errCtx, owner, repo, number,
			forks.ErrGitHubAPI, err,
		)
	}

	ch, err := changeFromPullRequest(pr)
	if err != nil {
		return forks.Change{}, fmt.Errorf(
			"%s: %s/%s#%d: %w",
			errCtx, owner, repo, number, err,
		)
	}

	slog.Debug(
		"fetched pull request",
		"repo", owner+"/"+repo,
		"number", number,
		"url", ch.URL,
		"branch", ch.Branch,
	)

	return ch, nil
}

// changeFromPullRequest maps the API record onto a
// change. The head repository is unset when the source
// fork was deleted.
func changeFromPullRequest(
	pr *gh.PullRequest,
) (forks.Change, error) {
	head := pr.GetHead()
	if head == nil || head.Repo == nil {
		return forks.Change{}, &forks.GitHubParseError{
			Reason: forks.ReasonMissingHead,
		}
	}

	if head.Repo.SSHURL == nil {
		return forks.Change{}, &forks.GitHubParseError{
			Reason: forks.ReasonMissingURL,
		}
	}

	branch := head.GetRef()

	title := pr.GetTitle()
	if title == "" {
		title = branch
	}

	return forks.Change{
		Title:  title,
		URL:    strings.TrimSuffix(head.Repo.GetSSHURL(), ".git"),
		Branch: branch,
	}, nil
}
