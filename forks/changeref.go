package forks

import (
	"fmt"
	"math"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// resolvedShape mirrors Change with presence tracking so
// a missing url or branch can be told apart from an
// empty one.
type resolvedShape struct {
	Title  *string `yaml:"title"`
	URL    *string `yaml:"url"`
	Branch *string `yaml:"branch"`
}

// unresolvedShape keeps pr untyped so that only a YAML
// integer matches; a quoted "12" does not.
type unresolvedShape struct {
	PR any `yaml:"pr"`
}

// prNumber accepts the integer kinds the decoder yields
// for a plain scalar and rejects negative values.
func prNumber(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, n >= 0
	case int64:
		return int(n), n >= 0 && n <= math.MaxInt
	case uint64:
		return int(n), n <= math.MaxInt
	default:
		return 0, false
	}
}

// UnmarshalYAML decodes the first variant whose shape
// matches: a resolved change (url and branch present)
// takes precedence over a pull-request reference.
func (c *ChangeRef) UnmarshalYAML(data []byte) error {
	const errCtx = "decoding change"

	var rs resolvedShape
	if err := yaml.Unmarshal(data, &rs); err == nil &&
		rs.URL != nil && rs.Branch != nil {
		ch := Change{URL: *rs.URL, Branch: *rs.Branch}
		if rs.Title != nil {
			ch.Title = *rs.Title
		}

		*c = Resolved(ch)

		return nil
	}

	var us unresolvedShape
	if err := yaml.Unmarshal(data, &us); err == nil {
		if number, ok := prNumber(us.PR); ok {
			*c = Unresolved(number)

			return nil
		}
	}

	return fmt.Errorf(
		"%s: %w: %s", errCtx, ErrNoVariant, data,
	)
}

// MarshalYAML encodes whichever variant is set.
func (c ChangeRef) MarshalYAML() (interface{}, error) {
	if c.Change != nil {
		return c.Change, nil
	}

	return c.PullRequest, nil
}

// MarshalJSON encodes whichever variant is set.
func (c ChangeRef) MarshalJSON() ([]byte, error) {
	if c.Change != nil {
		return json.Marshal(c.Change)
	}

	return json.Marshal(c.PullRequest)
}
