package ast

import "iter"

// Visitor defines the interface for AST traversal. If Visit returns nil,
// children of the node are not visited. Otherwise, the returned Visitor
// is used to visit children.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order. It starts by calling
// v.Visit(node); if the returned visitor w is not nil, Walk is invoked
// recursively with visitor w for each of the non-nil children of node.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *BadExpr:
		// No children
	case *Ident:
		// No children
	case *Int:
		// No children
	case *Float:
		// No children
	case *String:
		// No children
	case *Bool:
		// No children
	case *Nil:
		// No children
	case *Prefix:
		if n.X != nil {
			Walk(v, n.X)
		}
	case *Infix:
		if n.X != nil {
			Walk(v, n.X)
		}
		if n.Y != nil {
			Walk(v, n.Y)
		}
	case *Group:
		if n.X != nil {
			Walk(v, n.X)
		}
	case *Call:
		if n.Fun != nil {
			Walk(v, n.Fun)
		}
		for _, arg := range n.Args {
			Walk(v, arg)
		}
	case *GetAttr:
		if n.X != nil {
			Walk(v, n.X)
		}
		if n.Attr != nil {
			Walk(v, n.Attr)
		}
	case *ObjectCall:
		if n.X != nil {
			Walk(v, n.X)
		}
		if n.Call != nil {
			Walk(v, n.Call)
		}
	case *Index:
		if n.X != nil {
			Walk(v, n.X)
		}
		if n.Index != nil {
			Walk(v, n.Index)
		}
	case *Await:
		if n.X != nil {
			Walk(v, n.X)
		}
	case *Try:
		if n.X != nil {
			Walk(v, n.X)
		}
	}
}

// Inspect traverses an AST in depth-first order. It calls f(node) for each
// node; if f returns true, Inspect invokes f recursively for each of the
// non-nil children of node.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Preorder returns an iterator over all the nodes of the AST rooted at node
// in depth-first preorder.
func Preorder(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		var visit func(Node) bool
		visit = func(n Node) bool {
			if !yield(n) {
				return false
			}
			switch node := n.(type) {
			case *Prefix:
				if node.X != nil && !visit(node.X) {
					return false
				}
			case *Infix:
				if node.X != nil && !visit(node.X) {
					return false
				}
				if node.Y != nil && !visit(node.Y) {
					return false
				}
			case *Group:
				if node.X != nil && !visit(node.X) {
					return false
				}
			case *Call:
				if node.Fun != nil && !visit(node.Fun) {
					return false
				}
				for _, arg := range node.Args {
					if !visit(arg) {
						return false
					}
				}
			case *GetAttr:
				if node.X != nil && !visit(node.X) {
					return false
				}
				if node.Attr != nil && !visit(node.Attr) {
					return false
				}
			case *ObjectCall:
				if node.X != nil && !visit(node.X) {
					return false
				}
				if node.Call != nil && !visit(node.Call) {
					return false
				}
			case *Index:
				if node.X != nil && !visit(node.X) {
					return false
				}
				if node.Index != nil && !visit(node.Index) {
					return false
				}
			case *Await:
				if node.X != nil && !visit(node.X) {
					return false
				}
			case *Try:
				if node.X != nil && !visit(node.X) {
					return false
				}
			}
			return true
		}
		visit(root)
	}
}
