package forks

import (
	"errors"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// Dump formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Load reads and decodes the configuration document at
// path.
func Load(path string) (*Config, error) {
	const errCtx = "loading configuration"

	fi, err := os.Open(path) //nolint:gosec // path from CLI flag
	if err != nil {
		return nil, fmt.Errorf(
			"%s: %w: %w", errCtx, ErrConfigRead, err,
		)
	}

	defer fi.Close() //nolint:errcheck // read-only file

	cfg, err := Parse(fi)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", errCtx, path, err)
	}

	return cfg, nil
}

// Parse decodes a configuration document from in.
// Entries missing a required field are rejected here
// rather than deep in the pipeline.
func Parse(in io.Reader) (*Config, error) {
	const errCtx = "parsing configuration"

	var cfg Config
	if err := yaml.NewDecoder(in).Decode(&cfg); err != nil {
		return nil, fmt.Errorf(
			"%s: %w: %w", errCtx, ErrConfigRead, err,
		)
	}

	if err := cfg.checkShape(); err != nil {
		return nil, fmt.Errorf(
			"%s: %w: %w", errCtx, ErrConfigRead, err,
		)
	}

	return &cfg, nil
}

func (c *Config) checkShape() error {
	if c.Config != nil && c.Config.URL == "" {
		return errors.New("config: missing url")
	}

	for i, fork := range c.Forks {
		switch {
		case fork.Name == "":
			return fmt.Errorf("forks[%d]: missing name", i)
		case fork.Target.URL == "":
			return fmt.Errorf(
				"fork %s: target: missing url", fork.Name,
			)
		case fork.Upstream.URL == "":
			return fmt.Errorf(
				"fork %s: upstream: missing url", fork.Name,
			)
		}

		for j, ref := range fork.Changes {
			if ref.IsResolved() && ref.Change.Branch == "" {
				return fmt.Errorf(
					"fork %s: changes[%d]: missing branch",
					fork.Name, j,
				)
			}
		}
	}

	return nil
}

// Dump writes the model to out in the given format
// ("yaml" when empty, or "json").
func (c *Config) Dump(out io.Writer, format string) error {
	const errCtx = "dumping configuration"

	var (
		buf []byte
		err error
	)

	switch format {
	case "", FormatYAML:
		buf, err = yaml.Marshal(c)
	case FormatJSON:
		buf, err = json.MarshalIndent(c, "", "  ")
		buf = append(buf, '\n')
	default:
		return fmt.Errorf(
			"%s: %w: %q", errCtx, ErrUnknownFormat, format,
		)
	}

	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if _, err := out.Write(buf); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
