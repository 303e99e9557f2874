// Package forks models a set of git forks, each tracking an upstream
// repository with a list of changes layered on top, and turns that model
// into a shell script that configures remotes and branches.
//
// The pipeline runs in three steps. Config.Update resolves pull-request
// placeholders into concrete changes through a ChangeResolver and fills
// omitted defaults. Config.Remotes collects the deduplicated set of remote
// URLs. Config.Generate renders the resolved model through a
// templating.Engine configured with shell-safe delimiters.
//
// Load and Parse read the YAML configuration document; Dump writes the
// resolved model back out for inspection.
package forks
