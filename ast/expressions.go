package ast

import (
	"bytes"
	"strings"

	"github.com/deepnoodle-ai/bisuffix/internal/token"
)

// Ident is an expression node that refers to a variable or method by name.
type Ident struct {
	NamePos token.Position // position of identifier
	Name    string         // identifier name
}

func (x *Ident) exprNode() {}

func (x *Ident) Pos() token.Position { return x.NamePos }
func (x *Ident) End() token.Position { return x.NamePos.Advance(len(x.Name)) }

func (x *Ident) String() string { return x.Name }

// Prefix is an operator expression where the operator precedes the operand.
// Examples include "!ready" and "-x".
type Prefix struct {
	OpPos token.Position // position of operator
	Op    string         // operator: "!", "-"
	X     Expr           // operand
}

func (x *Prefix) exprNode() {}

func (x *Prefix) Pos() token.Position { return x.OpPos }
func (x *Prefix) End() token.Position { return x.X.End() }

func (x *Prefix) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.Op)
	out.WriteString(x.X.String())
	out.WriteString(")")
	return out.String()
}

// Infix is an operator expression where the operator is between the operands.
// Examples include "x + y" and "5 - 1".
type Infix struct {
	X     Expr           // left operand
	OpPos token.Position // position of operator
	Op    string         // operator: "+", "-", "*", "/", etc.
	Y     Expr           // right operand
}

func (x *Infix) exprNode() {}

func (x *Infix) Pos() token.Position { return x.X.Pos() }
func (x *Infix) End() token.Position { return x.Y.End() }

func (x *Infix) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.X.String())
	out.WriteString(" " + x.Op + " ")
	out.WriteString(x.Y.String())
	out.WriteString(")")
	return out.String()
}

// Group is an explicitly parenthesized expression. It is kept as its own
// node so that emitted output preserves the grouping written in the source.
type Group struct {
	Lparen token.Position // position of "("
	X      Expr           // grouped expression
	Rparen token.Position // position of ")"
}

func (x *Group) exprNode() {}

func (x *Group) Pos() token.Position { return x.Lparen }
func (x *Group) End() token.Position { return x.Rparen.Advance(1) }

func (x *Group) String() string {
	// Infix, Prefix, and Group print their own parentheses already; wrapping
	// them again would nest one more pair on every String/parse cycle.
	switch x.X.(type) {
	case *Infix, *Prefix, *Group:
		return x.X.String()
	}
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.X.String())
	out.WriteString(")")
	return out.String()
}

// Call is an expression node that describes the invocation of a function.
type Call struct {
	Fun    Expr           // function expression
	Lparen token.Position // position of "("
	Args   []Expr         // function arguments
	Rparen token.Position // position of ")"
}

func (x *Call) exprNode() {}

func (x *Call) Pos() token.Position { return x.Fun.Pos() }
func (x *Call) End() token.Position { return x.Rparen.Advance(1) }

func (x *Call) String() string {
	var out bytes.Buffer
	args := make([]string, 0, len(x.Args))
	for _, a := range x.Args {
		args = append(args, a.String())
	}
	out.WriteString(x.Fun.String())
	out.WriteString("(")
	out.WriteString(strings.Join(args, ", "))
	out.WriteString(")")
	return out.String()
}

// GetAttr is an expression node that describes the access of an attribute on
// an object.
type GetAttr struct {
	X      Expr           // object expression
	Period token.Position // position of "."
	Attr   *Ident         // attribute name
}

func (x *GetAttr) exprNode() {}

func (x *GetAttr) Pos() token.Position { return x.X.Pos() }
func (x *GetAttr) End() token.Position { return x.Attr.End() }

func (x *GetAttr) String() string {
	var out bytes.Buffer
	out.WriteString(x.X.String())
	out.WriteString(".")
	out.WriteString(x.Attr.Name)
	return out.String()
}

// ObjectCall is an expression node that describes the invocation of a method
// on an object.
type ObjectCall struct {
	X      Expr           // object expression
	Period token.Position // position of "."
	Call   *Call          // method call
}

func (x *ObjectCall) exprNode() {}

func (x *ObjectCall) Pos() token.Position { return x.X.Pos() }
func (x *ObjectCall) End() token.Position { return x.Call.End() }

func (x *ObjectCall) String() string {
	var out bytes.Buffer
	out.WriteString(x.X.String())
	out.WriteString(".")
	out.WriteString(x.Call.String())
	return out.String()
}

// Index is an expression node that describes indexing on an object.
type Index struct {
	X      Expr           // object expression
	Lbrack token.Position // position of "["
	Index  Expr           // index expression
	Rbrack token.Position // position of "]"
}

func (x *Index) exprNode() {}

func (x *Index) Pos() token.Position { return x.X.Pos() }
func (x *Index) End() token.Position { return x.Rbrack.Advance(1) }

func (x *Index) String() string {
	var out bytes.Buffer
	out.WriteString(x.X.String())
	out.WriteString("[")
	out.WriteString(x.Index.String())
	out.WriteString("]")
	return out.String()
}

// Await is an expression node marking that the enclosing expression suspends
// on the result of its inner expression. Written as a postfix ".await".
type Await struct {
	X        Expr           // the expression being suspended on
	AwaitPos token.Position // position of the "await" keyword
}

func (x *Await) exprNode() {}

func (x *Await) Pos() token.Position { return x.X.Pos() }
func (x *Await) End() token.Position { return x.AwaitPos.Advance(5) } // len("await")

func (x *Await) String() string {
	var out bytes.Buffer
	out.WriteString(x.X.String())
	out.WriteString(".await")
	return out.String()
}

// Try is an expression node marking error propagation on the result of its
// inner expression. Written as a postfix "?".
type Try struct {
	X        Expr           // the fallible expression
	Question token.Position // position of "?"
}

func (x *Try) exprNode() {}

func (x *Try) Pos() token.Position { return x.X.Pos() }
func (x *Try) End() token.Position { return x.Question.Advance(1) }

func (x *Try) String() string {
	var out bytes.Buffer
	out.WriteString(x.X.String())
	out.WriteString("?")
	return out.String()
}
