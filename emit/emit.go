// Package emit serializes expression trees back into source text.
//
// The output, when parsed again by a compatible parser, yields a tree that is
// structurally equivalent to the input: method names, operators, argument
// order, and nesting are preserved exactly. Whitespace and formatting are not
// guaranteed to match the original source.
package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/deepnoodle-ai/bisuffix/ast"
)

// EmitError indicates a tree the emitter cannot serialize. It always points
// to a contract violation between the parser or rewriter and the emitter, so
// it is a bug in this program rather than a user-facing error.
type EmitError struct {
	// NodeKind names the offending node type, e.g. "*ast.BadExpr".
	NodeKind string
}

func (e *EmitError) Error() string {
	return fmt.Sprintf("emit error: cannot serialize node of kind %s", e.NodeKind)
}

// Emit serializes the given expression tree to source text. It fails with an
// EmitError only on malformed trees (nil subexpressions or node kinds with no
// defined serialization).
func Emit(expr ast.Expr) (string, error) {
	var b strings.Builder
	if err := emitExpr(&b, expr); err != nil {
		return "", err
	}
	return b.String(), nil
}

func emitExpr(b *strings.Builder, expr ast.Expr) error {
	switch n := expr.(type) {
	case *ast.Ident:
		b.WriteString(n.Name)
	case *ast.Int:
		b.WriteString(n.Literal)
	case *ast.Float:
		b.WriteString(n.Literal)
	case *ast.String:
		b.WriteString(strconv.Quote(n.Value))
	case *ast.Bool:
		b.WriteString(n.Literal)
	case *ast.Nil:
		b.WriteString("nil")
	case *ast.Prefix:
		b.WriteString(n.Op)
		return emitExpr(b, n.X)
	case *ast.Infix:
		if err := emitExpr(b, n.X); err != nil {
			return err
		}
		b.WriteString(" " + n.Op + " ")
		return emitExpr(b, n.Y)
	case *ast.Group:
		b.WriteString("(")
		if err := emitExpr(b, n.X); err != nil {
			return err
		}
		b.WriteString(")")
	case *ast.Call:
		if err := emitExpr(b, n.Fun); err != nil {
			return err
		}
		return emitArgs(b, n.Args)
	case *ast.ObjectCall:
		if err := emitExpr(b, n.X); err != nil {
			return err
		}
		b.WriteString(".")
		if n.Call == nil {
			return &EmitError{NodeKind: nodeKind(n)}
		}
		if err := emitExpr(b, n.Call.Fun); err != nil {
			return err
		}
		return emitArgs(b, n.Call.Args)
	case *ast.GetAttr:
		if err := emitExpr(b, n.X); err != nil {
			return err
		}
		if n.Attr == nil {
			return &EmitError{NodeKind: nodeKind(n)}
		}
		b.WriteString("." + n.Attr.Name)
	case *ast.Index:
		if err := emitExpr(b, n.X); err != nil {
			return err
		}
		b.WriteString("[")
		if err := emitExpr(b, n.Index); err != nil {
			return err
		}
		b.WriteString("]")
	case *ast.Await:
		if err := emitExpr(b, n.X); err != nil {
			return err
		}
		b.WriteString(".await")
	case *ast.Try:
		if err := emitExpr(b, n.X); err != nil {
			return err
		}
		b.WriteString("?")
	default:
		return &EmitError{NodeKind: nodeKind(expr)}
	}
	return nil
}

func emitArgs(b *strings.Builder, args []ast.Expr) error {
	b.WriteString("(")
	for i, arg := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		if err := emitExpr(b, arg); err != nil {
			return err
		}
	}
	b.WriteString(")")
	return nil
}

func nodeKind(expr ast.Expr) string {
	if expr == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T", expr)
}
