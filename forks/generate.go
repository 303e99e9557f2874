package forks

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"text/template"

	"github.com/byte4ever/fork_manager/templating"
)

// ScriptTemplate is the name the update script is
// registered under.
const ScriptTemplate = "update.sh"

//go:embed update.sh
var updateScript string

// GenerateOptions tunes the generated script.
type GenerateOptions struct {
	// Push adds a push step for every fork.
	Push bool
}

// scriptFork is the view of a fork handed to the
// template once every change is resolved.
type scriptFork struct {
	Name     string
	Target   RepoRef
	Upstream RepoRef
	Changes  []Change
}

// ScriptFuncs returns the helpers available to the update
// script template.
func ScriptFuncs() template.FuncMap {
	return template.FuncMap{
		"remote_name": RemoteName,
		"quote":       ShellQuote,
	}
}

// NewScriptEngine returns an engine using shell-safe
// delimiters with the update script registered.
func NewScriptEngine() (*templating.Engine, error) {
	const errCtx = "creating script engine"

	en, err := templating.NewEngine(
		templating.ShellSyntax(), ScriptFuncs(),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := en.Add(ScriptTemplate, updateScript); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return en, nil
}

// Generate renders the update script for the resolved
// configuration into out. The template sees the variables
// config, forks, remotes and push. The script ends with
// exactly one newline, and nothing is written when
// rendering fails.
func (c *Config) Generate(
	out io.Writer,
	en *templating.Engine,
	opts GenerateOptions,
) error {
	const errCtx = "generating script"

	view, err := c.scriptForks()
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	var buf bytes.Buffer
	if err := en.Render(&buf, ScriptTemplate, map[string]any{
		"config":  c.Config,
		"forks":   view,
		"remotes": c.Remotes().String(),
		"push":    opts.Push,
	}); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	script := append(bytes.TrimRight(buf.Bytes(), "\n"), '\n')

	if _, err := out.Write(script); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

func (c *Config) scriptForks() ([]scriptFork, error) {
	view := make([]scriptFork, 0, len(c.Forks))

	for _, fork := range c.Forks {
		sf := scriptFork{
			Name:     fork.Name,
			Target:   fork.Target,
			Upstream: fork.Upstream,
			Changes:  make([]Change, 0, len(fork.Changes)),
		}

		for i, ref := range fork.Changes {
			if !ref.IsResolved() {
				number := 0
				if ref.PullRequest != nil {
					number = ref.PullRequest.Number
				}

				return nil, fmt.Errorf(
					"fork %s: pull request #%d: %w",
					fork.Name, number, ErrUnresolved,
				)
			}

			if ref.Change.Branch == "" {
				return nil, fmt.Errorf(
					"fork %s: changes[%d]: %w",
					fork.Name, i, ErrEmptyBranch,
				)
			}

			sf.Changes = append(sf.Changes, *ref.Change)
		}

		view = append(view, sf)
	}

	return view, nil
}
