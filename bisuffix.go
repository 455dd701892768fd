// Package bisuffix conditionally appends a suffix to method names in .await
// expressions, so that a single piece of call-site source can compile against
// both an asynchronous-style API variant (suffixed method names) and a
// blocking-style variant (unsuffixed method names).
//
// The pipeline is Parse -> Resolve -> Rewrite -> Emit: expression source text
// is parsed to an AST, the active mode is resolved from a build-configuration
// snapshot, call sites under await markers are conditionally renamed, and the
// (possibly rewritten) tree is serialized back to source text for the host
// compiler. Each expansion is a pure function of its inputs: there is no
// shared state across invocations and expansions may run concurrently.
//
//	out, err := bisuffix.Expand(ctx, "_async", "conn.read().await",
//		bisuffix.WithFlags(mode.Flags{"suffixed": true}))
//	// out == "conn.read_async().await"
//
// Await markers themselves are never removed or rewritten here; stripping
// them for the blocking variant is the job of a companion transformation that
// runs after this one.
package bisuffix

import (
	"context"

	"github.com/deepnoodle-ai/bisuffix/ast"
	"github.com/deepnoodle-ai/bisuffix/emit"
	"github.com/deepnoodle-ai/bisuffix/mode"
	"github.com/deepnoodle-ai/bisuffix/parser"
	"github.com/deepnoodle-ai/bisuffix/rewrite"
)

// Transformer modifies an expression AST before emission. Transformers must
// not mutate the input tree; they return a (possibly new) tree.
type Transformer interface {
	// Transform processes the expression and returns the result.
	Transform(expr ast.Expr) (ast.Expr, error)
}

// TransformerFunc is an adapter to use a function as a Transformer.
type TransformerFunc func(ast.Expr) (ast.Expr, error)

// Transform implements the Transformer interface.
func (f TransformerFunc) Transform(expr ast.Expr) (ast.Expr, error) {
	return f(expr)
}

// Option configures an expansion.
type Option func(*options)

type options struct {
	flags    mode.Flags
	mode     mode.Mode
	filename string
}

func collectOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// WithFlags provides the ambient build-configuration snapshot from which the
// mode is resolved. Exactly one of the "suffixed" or "blocking" flags must
// be set.
func WithFlags(flags mode.Flags) Option {
	return func(o *options) {
		o.flags = flags
	}
}

// WithMode provides a pre-resolved mode, bypassing flag resolution. Useful
// when the caller resolves the configuration once and expands many
// expressions.
func WithMode(m mode.Mode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithFilename sets the filename used in parse error positions.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}

// Expand runs a single expansion: it parses source as one expression,
// resolves the active mode, rewrites eligible await call sites with the
// given suffix, and emits the resulting expression text.
//
// Errors are surfaced immediately and no partial output is produced: a parse
// error, an invalid configuration, an invalid suffix, or an emitter contract
// violation each abort the expansion.
func Expand(ctx context.Context, suffix, source string, opts ...Option) (string, error) {
	o := collectOptions(opts...)

	m := o.mode
	if !m.IsValid() {
		var err error
		m, err = mode.Resolve(o.flags)
		if err != nil {
			return "", err
		}
	}

	var parserOpts []parser.Option
	if o.filename != "" {
		parserOpts = append(parserOpts, parser.WithFilename(o.filename))
	}
	expr, err := parser.Parse(ctx, source, parserOpts...)
	if err != nil {
		return "", err
	}

	rewritten, err := rewrite.Rewrite(expr, m, suffix)
	if err != nil {
		return "", err
	}

	return emit.Emit(rewritten)
}

// ExpandExpr is the AST-level equivalent of Expand, for callers that already
// hold a parsed expression: it rewrites eligible await call sites and returns
// the new tree. The input tree is left untouched.
func ExpandExpr(expr ast.Expr, m mode.Mode, suffix string) (ast.Expr, error) {
	return rewrite.Rewrite(expr, m, suffix)
}
