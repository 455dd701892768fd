package emit

import (
	"context"
	"testing"

	"github.com/deepnoodle-ai/bisuffix/ast"
	"github.com/deepnoodle-ai/bisuffix/parser"
	"github.com/stretchr/testify/require"
)

func TestEmit(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "method call under await",
			input:    "conn.read().await",
			expected: "conn.read().await",
		},
		{
			name:     "arguments",
			input:    "buf.write(data,0, n)",
			expected: "buf.write(data, 0, n)",
		},
		{
			name:     "infix without synthetic parens",
			input:    "a + b * c",
			expected: "a + b * c",
		},
		{
			name:     "explicit groups survive",
			input:    "(a + b) * c",
			expected: "(a + b) * c",
		},
		{
			name:     "prefix operators",
			input:    "!done && -x < 0",
			expected: "!done && -x < 0",
		},
		{
			name:     "string escaping",
			input:    `log("a\nb")`,
			expected: `log("a\nb")`,
		},
		{
			name:     "index and try",
			input:    "rows[i].decode()?",
			expected: "rows[i].decode()?",
		},
		{
			name:     "literals",
			input:    "f(1.5, true, nil)",
			expected: "f(1.5, true, nil)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := parser.Parse(context.Background(), tt.input)
			require.NoError(t, err)
			out, err := Emit(expr)
			require.NoError(t, err)
			require.Equal(t, tt.expected, out)
		})
	}
}

// Emitted text must reparse into a structurally equivalent tree.
func TestEmitReparse(t *testing.T) {
	inputs := []string{
		"conn.read().await?",
		"a.open().await.read(n).await",
		"(a + b) * c - d % e",
		"!ok || f(x)[0].get().await",
		`handler("GET", req.body().await)`,
	}
	for _, input := range inputs {
		expr, err := parser.Parse(context.Background(), input)
		require.NoError(t, err)
		out, err := Emit(expr)
		require.NoError(t, err)
		again, err := parser.Parse(context.Background(), out)
		require.NoError(t, err)
		require.Equal(t, expr.String(), again.String(), "input: %s", input)
	}
}

func TestEmitMalformedTrees(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expr
	}{
		{"nil expression", nil},
		{"bad expr", &ast.BadExpr{}},
		{"object call without call", &ast.ObjectCall{X: &ast.Ident{Name: "x"}}},
		{"getattr without attr", &ast.GetAttr{X: &ast.Ident{Name: "x"}}},
		{"call with nil argument", &ast.Call{
			Fun:  &ast.Ident{Name: "f"},
			Args: []ast.Expr{nil},
		}},
		{"infix with nil operand", &ast.Infix{
			X:  &ast.Ident{Name: "a"},
			Op: "+",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Emit(tt.expr)
			require.Error(t, err)
			var emitErr *EmitError
			require.ErrorAs(t, err, &emitErr)
		})
	}
}

func TestEmitErrorMessage(t *testing.T) {
	_, err := Emit(&ast.BadExpr{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot serialize node of kind *ast.BadExpr")
}
