// Command fork_manager resolves a fork configuration and
// prints a bash script that sets up the git remotes and
// branches it describes. With --dry-run it prints the
// resolved configuration instead.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/byte4ever/fork_manager/forks"
	"github.com/byte4ever/fork_manager/forks/github"
)

// tokenEnv names the environment variable holding the
// optional GitHub token.
const tokenEnv = "GITHUB_TOKEN"

// options bundles flag values.
type options struct {
	configFile  string
	dryRun      bool
	format      string
	push        bool
	parallelism int
	apiURL      string
	verbose     bool
}

func main() {
	if err := newRootCmd().ExecuteContext(
		context.Background(),
	); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := options{configFile: defaultConfigFile()}

	cmd := &cobra.Command{
		Use:   "fork_manager",
		Short: "Generate a script keeping forks up to date",
		Long: `fork_manager reads a list of forks, each a target repository
tracking an upstream with pull requests and branches merged on top.
Pull requests given by number are looked up on GitHub. The resulting
bash script is printed on stdout; fork_manager never runs git itself.

Set GITHUB_TOKEN to raise the API rate limit.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			setupLogging(opts.verbose)

			return run(
				cmd.Context(),
				cmd.OutOrStdout(),
				opts,
				os.Getenv(tokenEnv),
			)
		},
	}

	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.AddCommand(newCompletionCmd())

	fl := cmd.Flags()
	fl.StringVarP(
		&opts.configFile, "config-file", "c", opts.configFile,
		"Configuration file",
	)
	fl.BoolVarP(
		&opts.dryRun, "dry-run", "n", false,
		"Print the resolved configuration instead of the script",
	)
	fl.StringVar(
		&opts.format, "format", forks.FormatYAML,
		"Dry-run output format: yaml or json",
	)
	fl.BoolVarP(
		&opts.push, "push", "p", false,
		"Add a push step for every fork",
	)
	fl.IntVarP(
		&opts.parallelism, "parallelism", "j", 1,
		"Number of concurrent GitHub API calls per fork",
	)
	fl.StringVar(
		&opts.apiURL, "github-api-url", "",
		"GitHub Enterprise API root (default api.github.com)",
	)
	fl.BoolVarP(
		&opts.verbose, "verbose", "v", false,
		"Enable debug logging",
	)

	return cmd
}

// run writes the script, or the dry-run dump, to out.
func run(
	ctx context.Context,
	out io.Writer,
	opts options,
	token string,
) error {
	const errCtx = "running fork_manager"

	cfg, err := forks.Load(opts.configFile)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	res, err := github.NewResolver(github.Config{
		Token:   token,
		BaseURL: opts.apiURL,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := cfg.Update(ctx, res, forks.UpdateOptions{
		Parallelism: opts.parallelism,
	}); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if opts.dryRun {
		if err := cfg.Dump(out, opts.format); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		return nil
	}

	en, err := forks.NewScriptEngine()
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := cfg.Generate(out, en, forks.GenerateOptions{
		Push: opts.push,
	}); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "completion bash|zsh|fish|powershell",
		Short:     "Print a shell completion script",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			out := cmd.OutOrStdout()

			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// defaultConfigFile returns fork-manager.yaml in the user
// configuration directory, or in the working directory
// when that is unknown.
func defaultConfigFile() string {
	const name = "fork-manager.yaml"

	dir, err := os.UserConfigDir()
	if err != nil {
		return name
	}

	return filepath.Join(dir, name)
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(
		os.Stderr, &slog.HandlerOptions{Level: level},
	)))
}
