// Package rewrite implements the await-aware suffix rewrite.
//
// Given an expression tree, a mode, and a suffix string, the rewriter renames
// the callee identifier of every call that is the direct operand of an await
// marker, appending the suffix verbatim when the mode is Suffixed. All other
// identifiers are never touched: this scoping rule is what distinguishes the
// rewrite from a blind find-and-replace. The rewrite is a deterministic pure
// function; input trees are never mutated.
//
// The rewriter performs no detection of a previously applied suffix, so
// applying it twice under Suffixed mode double-suffixes eligible callees.
package rewrite

import (
	"fmt"
	"unicode"

	"github.com/deepnoodle-ai/bisuffix/ast"
	"github.com/deepnoodle-ai/bisuffix/mode"
)

// Error indicates invalid rewriter inputs: a malformed suffix or an
// unresolved mode. These are programmer-facing, never operational.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return "rewrite error: " + e.Message
}

// ValidateSuffix checks that the suffix is non-empty and contains only
// characters valid in an identifier continuation, so that appending it to a
// method identifier always yields a valid identifier.
func ValidateSuffix(suffix string) error {
	if suffix == "" {
		return &Error{Message: "suffix must not be empty"}
	}
	for _, r := range suffix {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return &Error{Message: fmt.Sprintf(
				"suffix %q contains character %q, which is not valid in an identifier",
				suffix, r)}
		}
	}
	return nil
}

// Suffixer rewrites await call sites according to a mode and suffix, both
// fixed at construction time. It is stateless across calls and safe for
// concurrent use.
type Suffixer struct {
	mode   mode.Mode
	suffix string
}

// NewSuffixer returns a Suffixer for the given mode and suffix. The suffix
// must be a valid identifier continuation and the mode must be resolved.
func NewSuffixer(m mode.Mode, suffix string) (*Suffixer, error) {
	if !m.IsValid() {
		return nil, &Error{Message: "mode is not resolved"}
	}
	if err := ValidateSuffix(suffix); err != nil {
		return nil, err
	}
	return &Suffixer{mode: m, suffix: suffix}, nil
}

// Rewrite returns a new expression tree, structurally isomorphic to the
// input except for renamed identifiers at eligible await call sites. The
// input tree is left untouched.
func Rewrite(expr ast.Expr, m mode.Mode, suffix string) (ast.Expr, error) {
	s, err := NewSuffixer(m, suffix)
	if err != nil {
		return nil, err
	}
	return s.Rewrite(expr), nil
}

// Rewrite applies the suffix rewrite to the given expression, returning a
// new tree. A nil expression yields nil.
func (s *Suffixer) Rewrite(expr ast.Expr) ast.Expr {
	return s.rewriteExpr(expr)
}

// Transform applies the rewrite, satisfying the Transformer interface used
// by code-generation pipelines.
func (s *Suffixer) Transform(expr ast.Expr) (ast.Expr, error) {
	return s.Rewrite(expr), nil
}

func (s *Suffixer) rewriteExpr(expr ast.Expr) ast.Expr {
	switch n := expr.(type) {
	case nil:
		return nil
	case *ast.Await:
		return s.rewriteAwait(n)
	case *ast.Ident:
		return &ast.Ident{NamePos: n.NamePos, Name: n.Name}
	case *ast.Int:
		return &ast.Int{ValuePos: n.ValuePos, Literal: n.Literal, Value: n.Value}
	case *ast.Float:
		return &ast.Float{ValuePos: n.ValuePos, Literal: n.Literal, Value: n.Value}
	case *ast.String:
		return &ast.String{ValuePos: n.ValuePos, Value: n.Value}
	case *ast.Bool:
		return &ast.Bool{ValuePos: n.ValuePos, Literal: n.Literal, Value: n.Value}
	case *ast.Nil:
		return &ast.Nil{NilPos: n.NilPos}
	case *ast.Prefix:
		return &ast.Prefix{OpPos: n.OpPos, Op: n.Op, X: s.rewriteExpr(n.X)}
	case *ast.Infix:
		return &ast.Infix{
			X:     s.rewriteExpr(n.X),
			OpPos: n.OpPos,
			Op:    n.Op,
			Y:     s.rewriteExpr(n.Y),
		}
	case *ast.Group:
		return &ast.Group{Lparen: n.Lparen, X: s.rewriteExpr(n.X), Rparen: n.Rparen}
	case *ast.Call:
		return s.rewriteCall(n, false)
	case *ast.ObjectCall:
		return s.rewriteObjectCall(n, false)
	case *ast.GetAttr:
		return &ast.GetAttr{
			X:      s.rewriteExpr(n.X),
			Period: n.Period,
			Attr:   &ast.Ident{NamePos: n.Attr.NamePos, Name: n.Attr.Name},
		}
	case *ast.Index:
		return &ast.Index{
			X:      s.rewriteExpr(n.X),
			Lbrack: n.Lbrack,
			Index:  s.rewriteExpr(n.Index),
			Rbrack: n.Rbrack,
		}
	case *ast.Try:
		return &ast.Try{X: s.rewriteExpr(n.X), Question: n.Question}
	default:
		// Unknown node kinds pass through unchanged; the emitter rejects
		// anything it cannot serialize.
		return expr
	}
}

// rewriteAwait handles an await marker. The direct inner expression is the
// only rewrite-eligible site: a method call or a call with a plain identifier
// callee. Anything else is deliberately passed through unchanged (after its
// subexpressions are rewritten), since not every awaited expression is a
// direct call.
func (s *Suffixer) rewriteAwait(n *ast.Await) *ast.Await {
	var inner ast.Expr
	switch c := n.X.(type) {
	case *ast.ObjectCall:
		inner = s.rewriteObjectCall(c, s.mode == mode.Suffixed)
	case *ast.Call:
		inner = s.rewriteCall(c, s.mode == mode.Suffixed)
	default:
		inner = s.rewriteExpr(n.X)
	}
	return &ast.Await{X: inner, AwaitPos: n.AwaitPos}
}

// rewriteCall rebuilds a call with its callee and arguments rewritten.
// When rename is true and the callee is a plain identifier, the suffix is
// appended to it; calls with computed callees are never renamed.
func (s *Suffixer) rewriteCall(n *ast.Call, rename bool) *ast.Call {
	var fun ast.Expr
	if ident, ok := n.Fun.(*ast.Ident); ok {
		name := ident.Name
		if rename {
			name += s.suffix
		}
		fun = &ast.Ident{NamePos: ident.NamePos, Name: name}
	} else {
		fun = s.rewriteExpr(n.Fun)
	}
	var args []ast.Expr
	if n.Args != nil {
		args = make([]ast.Expr, len(n.Args))
		for i, arg := range n.Args {
			args[i] = s.rewriteExpr(arg)
		}
	}
	return &ast.Call{Fun: fun, Lparen: n.Lparen, Args: args, Rparen: n.Rparen}
}

// rewriteObjectCall rebuilds a method call with its receiver and arguments
// rewritten, renaming the method identifier when requested.
func (s *Suffixer) rewriteObjectCall(n *ast.ObjectCall, rename bool) *ast.ObjectCall {
	return &ast.ObjectCall{
		X:      s.rewriteExpr(n.X),
		Period: n.Period,
		Call:   s.rewriteCall(n.Call, rename),
	}
}
