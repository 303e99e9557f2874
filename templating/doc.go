// Package templating renders named text templates whose delimiters are
// chosen to stay out of the way of the generated language's own syntax.
//
// A Syntax declares three delimiter pairs: block delimiters for actions
// (range, if, pipelines), variable delimiters for printing a single
// expression, and comment delimiters for text dropped from the output.
// Variable and comment delimiters are rewritten with valyala/fasttemplate
// into block actions before the source is handed to text/template, so a
// template can read as plausible shell ('{ .Name }' looks like a quoted
// word, #{ range .forks }# like a comment).
//
// Engine is an explicit value: create one with NewEngine, register
// templates with Add, and call Render.
package templating
