package bisuffix

import (
	"context"
	"fmt"
	"testing"

	"github.com/deepnoodle-ai/bisuffix/ast"
	"github.com/deepnoodle-ai/bisuffix/mode"
	"github.com/deepnoodle-ai/bisuffix/parser"
	"github.com/stretchr/testify/require"
)

func TestExpandSuffixed(t *testing.T) {
	out, err := Expand(context.Background(), "_async", "conn.read().await",
		WithFlags(mode.Flags{"suffixed": true}))
	require.NoError(t, err)
	require.Equal(t, "conn.read_async().await", out)
}

func TestExpandUnsuffixed(t *testing.T) {
	out, err := Expand(context.Background(), "_async", "conn.read().await",
		WithFlags(mode.Flags{"blocking": true}))
	require.NoError(t, err)
	require.Equal(t, "conn.read().await", out)
}

func TestExpandMixedOperands(t *testing.T) {
	out, err := Expand(context.Background(), "_async", "a.await + b.open().await",
		WithFlags(mode.Flags{"suffixed": true}))
	require.NoError(t, err)
	require.Equal(t, "a.await + b.open_async().await", out)
}

func TestExpandConflictingFlags(t *testing.T) {
	_, err := Expand(context.Background(), "_async", "conn.read().await",
		WithFlags(mode.Flags{"suffixed": true, "blocking": true}))
	require.Error(t, err)
	require.ErrorIs(t, err, mode.ErrConflictingModes)
}

func TestExpandNoFlags(t *testing.T) {
	_, err := Expand(context.Background(), "_async", "conn.read().await")
	require.Error(t, err)
	require.ErrorIs(t, err, mode.ErrNoModeSelected)
}

func TestExpandWithMode(t *testing.T) {
	// A pre-resolved mode bypasses flag resolution entirely.
	out, err := Expand(context.Background(), "_async", "fetch(url).await",
		WithMode(mode.Suffixed))
	require.NoError(t, err)
	require.Equal(t, "fetch_async(url).await", out)

	// Flags are ignored when a valid mode is supplied.
	out, err = Expand(context.Background(), "_async", "fetch(url).await",
		WithMode(mode.Unsuffixed),
		WithFlags(mode.Flags{"suffixed": true, "blocking": true}))
	require.NoError(t, err)
	require.Equal(t, "fetch(url).await", out)
}

func TestExpandParseError(t *testing.T) {
	_, err := Expand(context.Background(), "_async", "conn.read(.await",
		WithMode(mode.Suffixed), WithFilename("main.bx"))
	require.Error(t, err)

	var parserErrs *parser.Errors
	require.ErrorAs(t, err, &parserErrs)
	require.Equal(t, "main.bx", parserErrs.First().File())
}

func TestExpandInvalidSuffix(t *testing.T) {
	_, err := Expand(context.Background(), "not-valid", "conn.read().await",
		WithMode(mode.Suffixed))
	require.Error(t, err)
	require.Contains(t, err.Error(), "not valid in an identifier")
}

func TestExpandFormattingIsNormalized(t *testing.T) {
	out, err := Expand(context.Background(), "_async", "conn . read( a,b ) . await",
		WithMode(mode.Suffixed))
	require.NoError(t, err)
	require.Equal(t, "conn.read_async(a, b).await", out)
}

func TestExpandExpr(t *testing.T) {
	expr, err := parser.Parse(context.Background(), "conn.read().await")
	require.NoError(t, err)

	out, err := ExpandExpr(expr, mode.Suffixed, "_async")
	require.NoError(t, err)
	require.Equal(t, "conn.read_async().await", out.String())

	// The input tree is untouched.
	require.Equal(t, "conn.read().await", expr.String())
}

func TestTransformerFunc(t *testing.T) {
	var tr Transformer = TransformerFunc(func(expr ast.Expr) (ast.Expr, error) {
		return ExpandExpr(expr, mode.Suffixed, "_async")
	})
	expr, err := parser.Parse(context.Background(), "db.query(q).await")
	require.NoError(t, err)
	out, err := tr.Transform(expr)
	require.NoError(t, err)
	require.Equal(t, "db.query_async(q).await", out.String())
}

func TestExpandConcurrent(t *testing.T) {
	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			out, err := Expand(context.Background(), "_async", "conn.read().await",
				WithMode(mode.Suffixed))
			if err == nil && out != "conn.read_async().await" {
				err = fmt.Errorf("unexpected output %q", out)
			}
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		require.NoError(t, <-done)
	}
}

func ExampleExpand() {
	out, err := Expand(context.Background(), "_async", "client.send(req).await?",
		WithFlags(mode.Flags{"suffixed": true}))
	if err != nil {
		panic(err)
	}
	fmt.Println(out)
	// Output: client.send_async(req).await?
}
