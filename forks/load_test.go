package forks_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/fork_manager/forks"
)

const sampleConfig = `
config:
  url: git@github.com:me/dotfiles
forks:
  - name: widgets
    target:
      url: git@github.com:me/widgets
      branch: release-2
    upstream:
      url: https://github.com/acme/widgets
    changes:
      - pr: 12
      - url: git@github.com:bob/widgets
        branch: feat-x
      - title: Fix
        url: git@github.com:eve/widgets
        branch: fix
        pr: 99
`

func TestParse_sample(t *testing.T) {
	t.Parallel()

	cfg, err := forks.Parse(strings.NewReader(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, &forks.Config{
		Config: &forks.RepoRef{URL: "git@github.com:me/dotfiles"},
		Forks: []forks.Fork{{
			Name: "widgets",
			Target: forks.RepoRef{
				URL:    "git@github.com:me/widgets",
				Branch: "release-2",
			},
			Upstream: forks.RepoRef{
				URL: "https://github.com/acme/widgets",
			},
			Changes: []forks.ChangeRef{
				forks.Unresolved(12),
				forks.Resolved(forks.Change{
					URL:    "git@github.com:bob/widgets",
					Branch: "feat-x",
				}),
				// Both shapes match: the resolved
				// one wins.
				forks.Resolved(forks.Change{
					Title:  "Fix",
					URL:    "git@github.com:eve/widgets",
					Branch: "fix",
				}),
			},
		}},
	}, cfg)
}

func TestParse_partial_change_falls_back_to_pr(
	t *testing.T,
) {
	t.Parallel()

	cfg, err := forks.Parse(strings.NewReader(`
forks:
  - name: w
    target: {url: a}
    upstream: {url: b}
    changes:
      - {url: c, pr: 4}
`))
	require.NoError(t, err)
	assert.Equal(
		t,
		[]forks.ChangeRef{forks.Unresolved(4)},
		cfg.Forks[0].Changes,
	)
}

func TestParse_errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		msg  string
	}{
		{
			name: "no variant",
			doc: `
forks:
  - name: w
    target: {url: a}
    upstream: {url: b}
    changes:
      - {title: only}
`,
			msg: "did not match any change variant",
		},
		{
			name: "missing name",
			doc: `
forks:
  - target: {url: a}
    upstream: {url: b}
`,
			msg: "missing name",
		},
		{
			name: "missing upstream url",
			doc: `
forks:
  - name: w
    target: {url: a}
    upstream: {branch: main}
`,
			msg: "upstream: missing url",
		},
		{
			name: "empty change branch",
			doc: `
forks:
  - name: w
    target: {url: a}
    upstream: {url: b}
    changes:
      - {url: "git@github.com:x/w", branch: ""}
`,
			msg: "fork w: changes[0]: missing branch",
		},
		{
			name: "quoted pr number",
			doc: `
forks:
  - name: w
    target: {url: a}
    upstream: {url: b}
    changes:
      - pr: "12"
`,
			msg: "did not match any change variant",
		},
		{
			name: "negative pr number",
			doc: `
forks:
  - name: w
    target: {url: a}
    upstream: {url: b}
    changes:
      - pr: -3
`,
			msg: "did not match any change variant",
		},
		{
			name: "not yaml",
			doc:  "forks: [",
		},
		{
			name: "empty",
			doc:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := forks.Parse(strings.NewReader(tt.doc))
			assert.Nil(t, cfg)
			require.ErrorIs(t, err, forks.ErrConfigRead)

			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	pa := filepath.Join(t.TempDir(), "forks.yaml")
	require.NoError(
		t, os.WriteFile(pa, []byte(sampleConfig), 0o600),
	)

	cfg, err := forks.Load(pa)
	require.NoError(t, err)
	assert.Len(t, cfg.Forks, 1)
}

func TestLoad_missing_file(t *testing.T) {
	t.Parallel()

	cfg, err := forks.Load("/nonexistent/forks.yaml")
	assert.Nil(t, cfg)
	require.ErrorIs(t, err, forks.ErrConfigRead)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDump_round_trip(t *testing.T) {
	t.Parallel()

	for _, format := range []string{
		"", forks.FormatYAML, forks.FormatJSON,
	} {
		t.Run("format="+format, func(t *testing.T) {
			t.Parallel()

			cfg, err := forks.Parse(
				strings.NewReader(sampleConfig),
			)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, cfg.Dump(&buf, format))

			// JSON is valid YAML, so Parse reads
			// both back.
			back, err := forks.Parse(&buf)
			require.NoError(t, err)
			assert.Equal(t, cfg, back)
		})
	}
}

func TestDump_omits_unset_fields(t *testing.T) {
	t.Parallel()

	cfg := &forks.Config{
		Forks: []forks.Fork{{
			Name:     "w",
			Target:   forks.RepoRef{URL: "a"},
			Upstream: forks.RepoRef{URL: "b"},
			Changes: []forks.ChangeRef{
				forks.Resolved(forks.Change{URL: "c", Branch: "d"}),
			},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, cfg.Dump(&buf, forks.FormatJSON))

	out := buf.String()
	assert.NotContains(t, out, "config")
	assert.NotContains(t, out, "title")
	assert.Contains(t, out, `"d"`)
}

func TestDump_unknown_format(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := (&forks.Config{}).Dump(&buf, "toml")
	require.ErrorIs(t, err, forks.ErrUnknownFormat)
	assert.Zero(t, buf.Len())
}
