package rewrite

import (
	"context"
	"testing"

	"github.com/deepnoodle-ai/bisuffix/ast"
	"github.com/deepnoodle-ai/bisuffix/mode"
	"github.com/deepnoodle-ai/bisuffix/parser"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, input string) ast.Expr {
	t.Helper()
	expr, err := parser.Parse(context.Background(), input)
	require.NoError(t, err)
	return expr
}

func TestSuffixed(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "method call under await",
			input:    "conn.read().await",
			expected: "conn.read_async().await",
		},
		{
			name:     "free function call under await",
			input:    "fetch(url).await",
			expected: "fetch_async(url).await",
		},
		{
			name:     "awaited identifier is untouched",
			input:    "fut.await",
			expected: "fut.await",
		},
		{
			name:     "non-awaited call is untouched",
			input:    "conn.read()",
			expected: "conn.read()",
		},
		{
			name:     "only the direct operand is renamed",
			input:    "client.get(url).send().await",
			expected: "client.get(url).send_async().await",
		},
		{
			name:     "chained awaits rename independently",
			input:    "a.open().await.read().await",
			expected: "a.open_async().await.read_async().await",
		},
		{
			name:     "await sites inside arguments",
			input:    "log(conn.read().await)",
			expected: "log(conn.read_async().await)",
		},
		{
			name:     "await under try marker",
			input:    "conn.read().await?",
			expected: "conn.read_async().await?",
		},
		{
			name:     "mixed infix operands",
			input:    "a.await + b.open().await",
			expected: "a.await + b.open_async().await",
		},
		{
			name:     "computed callee is never renamed",
			input:    "handlers[0](req).await",
			expected: "handlers[0](req).await",
		},
		{
			name:     "grouped operand is not a direct call",
			input:    "(c.read()).await",
			expected: "(c.read()).await",
		},
		{
			name:     "receiver subexpressions are still visited",
			input:    "pool.get(c.dial().await).close().await",
			expected: "pool.get(c.dial_async().await).close_async().await",
		},
		{
			name:     "await on literal receiver method",
			input:    `"x".encode().await`,
			expected: `"x".encode_async().await`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := mustParse(t, tt.input)
			out, err := Rewrite(expr, mode.Suffixed, "_async")
			require.NoError(t, err)
			// Reparse the expected form so both sides print identically.
			want := mustParse(t, tt.expected)
			require.Equal(t, want.String(), out.String())
		})
	}
}

func TestUnsuffixedIsIdentity(t *testing.T) {
	inputs := []string{
		"conn.read().await",
		"fetch(url).await",
		"a.open().await.read().await",
		"x + y * z.load().await",
	}
	for _, input := range inputs {
		expr := mustParse(t, input)
		out, err := Rewrite(expr, mode.Unsuffixed, "_async")
		require.NoError(t, err)
		require.Equal(t, expr.String(), out.String())
	}
}

func TestInputTreeIsNotMutated(t *testing.T) {
	expr := mustParse(t, "conn.read().await")
	before := expr.String()

	out, err := Rewrite(expr, mode.Suffixed, "_async")
	require.NoError(t, err)

	require.Equal(t, before, expr.String())
	require.NotSame(t, expr, out)

	// The rewritten tree shares no nodes with the input.
	await := expr.(*ast.Await)
	outAwait := out.(*ast.Await)
	require.NotSame(t, await.X, outAwait.X)
}

func TestRewriteIsDeterministic(t *testing.T) {
	expr := mustParse(t, "pool.get(c.dial().await).close().await")
	first, err := Rewrite(expr, mode.Suffixed, "_async")
	require.NoError(t, err)
	second, err := Rewrite(expr, mode.Suffixed, "_async")
	require.NoError(t, err)
	require.Equal(t, first.String(), second.String())
}

func TestDoubleApplicationDoubleSuffixes(t *testing.T) {
	expr := mustParse(t, "conn.read().await")
	once, err := Rewrite(expr, mode.Suffixed, "_async")
	require.NoError(t, err)
	twice, err := Rewrite(once, mode.Suffixed, "_async")
	require.NoError(t, err)
	require.Equal(t, "conn.read_async_async().await", twice.String())
}

func TestCustomSuffix(t *testing.T) {
	expr := mustParse(t, "db.query(q).await")
	out, err := Rewrite(expr, mode.Suffixed, "_blocking")
	require.NoError(t, err)
	require.Equal(t, "db.query_blocking(q).await", out.String())
}

func TestValidateSuffix(t *testing.T) {
	require.NoError(t, ValidateSuffix("_async"))
	require.NoError(t, ValidateSuffix("Async2"))
	require.NoError(t, ValidateSuffix("_"))

	require.Error(t, ValidateSuffix(""))
	require.Error(t, ValidateSuffix("_async!"))
	require.Error(t, ValidateSuffix("a-b"))
	require.Error(t, ValidateSuffix("a b"))
}

func TestRewriteRejectsBadInputs(t *testing.T) {
	expr := mustParse(t, "conn.read().await")

	_, err := Rewrite(expr, mode.Invalid, "_async")
	require.Error(t, err)
	require.Contains(t, err.Error(), "mode is not resolved")

	_, err = Rewrite(expr, mode.Suffixed, "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "suffix must not be empty")
}

func TestNewSuffixer(t *testing.T) {
	s, err := NewSuffixer(mode.Suffixed, "_async")
	require.NoError(t, err)

	out, err := s.Transform(mustParse(t, "conn.read().await"))
	require.NoError(t, err)
	require.Equal(t, "conn.read_async().await", out.String())

	require.Nil(t, s.Rewrite(nil))
}
