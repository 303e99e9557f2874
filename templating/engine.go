package templating

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"text/template"
	"unicode"

	"github.com/valyala/fasttemplate"
)

var (
	// ErrConfig is returned when the delimiter syntax,
	// helper functions or a template source are invalid.
	ErrConfig = errors.New("invalid template configuration")

	// ErrLookup is returned when rendering a template
	// name that was never registered.
	ErrLookup = errors.New("template not found")
)

// Delims is a start/end delimiter pair.
type Delims struct {
	Start string
	End   string
}

func (d Delims) isZero() bool {
	return d.Start == "" && d.End == ""
}

// Syntax configures the delimiters an Engine recognises.
// A zero Block falls back to "{{" and "}}". A zero
// Variable or Comment disables that form.
type Syntax struct {
	Block    Delims
	Variable Delims
	Comment  Delims
}

// ShellSyntax returns delimiters that read as comments
// or quoted words to a shell linter:
//
//	#{ range .items }# ... #{ end }#   blocks
//	'{ .name }'                        variables
//	#/* note #*/                       comments
func ShellSyntax() Syntax {
	return Syntax{
		Block:    Delims{Start: "#{", End: "}#"},
		Variable: Delims{Start: "'{", End: "}'"},
		Comment:  Delims{Start: "#/*", End: "#*/"},
	}
}

// Engine holds a delimiter syntax, helper functions and
// a set of named templates.
type Engine struct {
	syntax Syntax
	root   *template.Template
}

// NewEngine validates syntax and funcs and returns an
// Engine with no templates registered.
func NewEngine(
	syntax Syntax,
	funcs template.FuncMap,
) (*Engine, error) {
	const errCtx = "creating template engine"

	if syntax.Block.isZero() {
		syntax.Block = Delims{Start: "{{", End: "}}"}
	}

	if err := syntax.validate(); err != nil {
		return nil, fmt.Errorf(
			"%s: %w: %w", errCtx, ErrConfig, err,
		)
	}

	if err := validateFuncs(funcs); err != nil {
		return nil, fmt.Errorf(
			"%s: %w: %w", errCtx, ErrConfig, err,
		)
	}

	root := template.New("").
		Delims(syntax.Block.Start, syntax.Block.End).
		Option("missingkey=error").
		Funcs(funcs)

	return &Engine{syntax: syntax, root: root}, nil
}

// Add parses src and registers it under name, replacing
// any template previously registered with that name.
func (en *Engine) Add(name string, src string) error {
	const errCtx = "adding template"

	if _, err := en.root.New(name).Parse(
		en.translate(src),
	); err != nil {
		return fmt.Errorf(
			"%s: %s: %w: %w", errCtx, name, ErrConfig, err,
		)
	}

	return nil
}

// Names returns the registered template names in
// lexical order.
func (en *Engine) Names() []string {
	var names []string

	for _, tpl := range en.root.Templates() {
		if tpl.Name() != "" {
			names = append(names, tpl.Name())
		}
	}

	sort.Strings(names)

	return names
}

// Render executes the template registered under name
// with data and writes the result to out.
func (en *Engine) Render(
	out io.Writer,
	name string,
	data any,
) error {
	const errCtx = "rendering template"

	tpl := en.root.Lookup(name)
	if tpl == nil || tpl.Tree == nil {
		return fmt.Errorf(
			"%s: %w: %q (registered: %s)",
			errCtx, ErrLookup, name,
			strings.Join(en.Names(), ", "),
		)
	}

	if err := tpl.Execute(out, data); err != nil {
		return fmt.Errorf("%s: %s: %w", errCtx, name, err)
	}

	return nil
}

// translate strips comments, then rewrites variable
// delimiters into block actions. Unterminated tags are
// left as they are.
func (en *Engine) translate(src string) string {
	cm := en.syntax.Comment
	if !cm.isZero() {
		src = fasttemplate.ExecuteFuncString(
			src, cm.Start, cm.End,
			func(io.Writer, string) (int, error) {
				return 0, nil
			},
		)
	}

	vr := en.syntax.Variable
	if !vr.isZero() {
		bl := en.syntax.Block
		src = fasttemplate.ExecuteFuncString(
			src, vr.Start, vr.End,
			func(w io.Writer, tag string) (int, error) {
				return io.WriteString(
					w, bl.Start+tag+bl.End,
				)
			},
		)
	}

	return src
}

// validate rejects half-set pairs and start delimiters
// shared between two forms.
func (sx Syntax) validate() error {
	pairs := []struct {
		kind string
		d    Delims
	}{
		{"block", sx.Block},
		{"variable", sx.Variable},
		{"comment", sx.Comment},
	}

	seen := make(map[string]string, len(pairs))

	for _, pr := range pairs {
		if pr.d.isZero() {
			continue
		}

		if pr.d.Start == "" || pr.d.End == "" {
			return fmt.Errorf(
				"%s delimiters must both be set", pr.kind,
			)
		}

		if other, ok := seen[pr.d.Start]; ok {
			return fmt.Errorf(
				"%s and %s share start delimiter %q",
				other, pr.kind, pr.d.Start,
			)
		}

		seen[pr.d.Start] = pr.kind
	}

	return nil
}

func validateFuncs(funcs template.FuncMap) error {
	for name, fn := range funcs {
		if !isIdentifier(name) {
			return fmt.Errorf(
				"function name %q is not an identifier", name,
			)
		}

		if fn == nil || reflect.TypeOf(fn).Kind() != reflect.Func {
			return fmt.Errorf(
				"value for %q is not a function", name,
			)
		}

		if !goodResults(reflect.TypeOf(fn)) {
			return fmt.Errorf(
				"function %q must return one value "+
					"and an optional error", name,
			)
		}
	}

	return nil
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}

	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}

	return true
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func goodResults(ty reflect.Type) bool {
	switch ty.NumOut() {
	case 1:
		return true
	case 2:
		return ty.Out(1) == errorType
	default:
		return false
	}
}
