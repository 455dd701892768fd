package parser

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/deepnoodle-ai/bisuffix/ast"
	"github.com/deepnoodle-ai/wonton/assert"
)

func TestIdent(t *testing.T) {
	expr, err := Parse(context.Background(), "conn")
	assert.Nil(t, err)
	ident, ok := expr.(*ast.Ident)
	assert.True(t, ok)
	assert.Equal(t, "conn", ident.Name)
	assert.Equal(t, 1, ident.Pos().LineNumber())
	assert.Equal(t, 1, ident.Pos().ColumnNumber())
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"5", "5"},
		{"1.25", "1.25"},
		{`"hi"`, `"hi"`},
		{"true", "true"},
		{"false", "false"},
		{"nil", "nil"},
	}
	for _, tt := range tests {
		expr, err := Parse(context.Background(), tt.input)
		assert.Nil(t, err)
		assert.Equal(t, tt.expected, expr.String())
	}
}

func TestIntLiteral(t *testing.T) {
	expr, err := Parse(context.Background(), "42")
	assert.Nil(t, err)
	lit, ok := expr.(*ast.Int)
	assert.True(t, ok)
	assert.Equal(t, int64(42), lit.Value)
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"-a * b", "((-a) * b)"},
		{"!ok", "(!ok)"},
		{"a + b + c", "((a + b) + c)"},
		{"a + b * c", "(a + (b * c))"},
		{"a * b % c", "((a * b) % c)"},
		{"a > b == c < d", "((a > b) == (c < d))"},
		{"a <= b || c >= d", "((a <= b) || (c >= d))"},
		{"a && b || c", "((a && b) || c)"},
		{"a != b && c == d", "((a != b) && (c == d))"},
		{"(a + b) * c", "((a + b) * c)"},
		{"-x.load().await", "(-x.load().await)"},
		{"f(a, b + c)", "f(a, (b + c))"},
		{"x[0] + y[1]", "(x[0] + y[1])"},
		{"a.b.c", "a.b.c"},
	}
	for _, tt := range tests {
		expr, err := Parse(context.Background(), tt.input)
		assert.Nil(t, err)
		assert.Equal(t, tt.expected, expr.String())
	}
}

func TestGroupIsPreserved(t *testing.T) {
	expr, err := Parse(context.Background(), "(x)")
	assert.Nil(t, err)
	_, ok := expr.(*ast.Group)
	assert.True(t, ok)
}

func TestAwait(t *testing.T) {
	expr, err := Parse(context.Background(), "conn.read().await")
	assert.Nil(t, err)
	await, ok := expr.(*ast.Await)
	assert.True(t, ok)
	call, ok := await.X.(*ast.ObjectCall)
	assert.True(t, ok)
	fun, ok := call.Call.Fun.(*ast.Ident)
	assert.True(t, ok)
	assert.Equal(t, "read", fun.Name)
}

func TestAwaitOnIdent(t *testing.T) {
	expr, err := Parse(context.Background(), "fut.await")
	assert.Nil(t, err)
	await, ok := expr.(*ast.Await)
	assert.True(t, ok)
	ident, ok := await.X.(*ast.Ident)
	assert.True(t, ok)
	assert.Equal(t, "fut", ident.Name)
}

func TestNestedAwait(t *testing.T) {
	expr, err := Parse(context.Background(), "a.open().await.read().await")
	assert.Nil(t, err)
	outer, ok := expr.(*ast.Await)
	assert.True(t, ok)
	outerCall, ok := outer.X.(*ast.ObjectCall)
	assert.True(t, ok)
	inner, ok := outerCall.X.(*ast.Await)
	assert.True(t, ok)
	_, ok = inner.X.(*ast.ObjectCall)
	assert.True(t, ok)
}

func TestTry(t *testing.T) {
	expr, err := Parse(context.Background(), "conn.read().await?")
	assert.Nil(t, err)
	try, ok := expr.(*ast.Try)
	assert.True(t, ok)
	_, ok = try.X.(*ast.Await)
	assert.True(t, ok)
	assert.Equal(t, "conn.read().await?", expr.String())
}

func TestObjectCallArguments(t *testing.T) {
	expr, err := Parse(context.Background(), "buf.write(data, 0, n)")
	assert.Nil(t, err)
	oc, ok := expr.(*ast.ObjectCall)
	assert.True(t, ok)
	assert.Len(t, oc.Call.Args, 3)
}

func TestGetAttr(t *testing.T) {
	expr, err := Parse(context.Background(), "conn.state")
	assert.Nil(t, err)
	attr, ok := expr.(*ast.GetAttr)
	assert.True(t, ok)
	assert.Equal(t, "state", attr.Attr.Name)
}

func TestIndex(t *testing.T) {
	expr, err := Parse(context.Background(), "rows[i + 1]")
	assert.Nil(t, err)
	idx, ok := expr.(*ast.Index)
	assert.True(t, ok)
	assert.Equal(t, "rows[(i + 1)]", idx.String())
}

func TestEmptyExpression(t *testing.T) {
	_, err := Parse(context.Background(), "")
	assert.NotNil(t, err)
	assert.True(t, strings.Contains(err.Error(), "empty expression"))

	_, err = Parse(context.Background(), "   \n\t ")
	assert.NotNil(t, err)
	assert.True(t, strings.Contains(err.Error(), "empty expression"))
}

func TestTrailingTokens(t *testing.T) {
	_, err := Parse(context.Background(), "a b")
	assert.NotNil(t, err)
	assert.True(t, strings.Contains(err.Error(), "unexpected b after expression"))
}

func TestBadSyntax(t *testing.T) {
	tests := []string{
		"a +",
		"(a",
		"a.",
		"a.1",
		"f(a,",
		"rows[0",
		"* 2",
		`"unterminated`,
		"a = b",
		"a @ b",
	}
	for _, input := range tests {
		_, err := Parse(context.Background(), input)
		if err == nil {
			t.Fatalf("expected error for input %q", input)
		}
	}
}

func TestErrorPositions(t *testing.T) {
	_, err := Parse(context.Background(), "x +", WithFilename("main.bx"))
	assert.NotNil(t, err)
	parserErrs, ok := err.(*Errors)
	assert.True(t, ok)
	assert.Equal(t, 1, parserErrs.Count())
	first := parserErrs.First()
	assert.Equal(t, "main.bx", first.File())
	assert.Equal(t, 1, first.StartPosition().LineNumber())
	assert.Equal(t, "x +", first.SourceCode())
}

func TestFriendlyErrorMessage(t *testing.T) {
	_, err := Parse(context.Background(), "conn.read(].await", WithFilename("main.bx"))
	assert.NotNil(t, err)
	parserErrs, ok := err.(*Errors)
	assert.True(t, ok)
	msg := parserErrs.FriendlyErrorMessage()
	assert.True(t, strings.Contains(msg, "main.bx"))
	assert.True(t, strings.Contains(msg, "conn.read(].await"))
}

func TestMaxDepth(t *testing.T) {
	input := strings.Repeat("(", 40) + "x" + strings.Repeat(")", 40)

	_, err := Parse(context.Background(), input)
	assert.Nil(t, err)

	_, err = Parse(context.Background(), input, WithMaxDepth(10))
	assert.NotNil(t, err)
	assert.True(t, strings.Contains(err.Error(), "maximum nesting depth exceeded"))
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Parse(ctx, "a + b")
	assert.NotNil(t, err)
	assert.True(t, strings.Contains(err.Error(), "context canceled"))
}

func TestMultilineErrorLine(t *testing.T) {
	_, err := Parse(context.Background(), "(a +\n b")
	assert.NotNil(t, err)
	parserErrs, ok := err.(*Errors)
	assert.True(t, ok)
	first := parserErrs.First()
	assert.Equal(t, 2, first.StartPosition().LineNumber())
}

func TestParseFuzzCorpus(t *testing.T) {
	// None of these should panic, whatever error they produce.
	inputs := []string{
		".",
		"..",
		".await",
		"await",
		"()",
		"?",
		"a?.b",
		"((((",
		"))))",
		"a.await.await.await",
		"1.",
		"nil.await",
	}
	for i, input := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("inputs[%d] %q panicked: %v", i, input, r)
				}
			}()
			_, _ = Parse(context.Background(), input)
		}()
	}
}

func TestStringRoundTrip(t *testing.T) {
	inputs := []string{
		"conn.read().await",
		"(a + b) * c",
		"x[0].decode(fmt).await?",
		"!done && retry(n - 1).await",
	}
	for _, input := range inputs {
		expr, err := Parse(context.Background(), input)
		assert.Nil(t, err)
		again, err := Parse(context.Background(), expr.String())
		assert.Nil(t, err)
		assert.Equal(t, expr.String(), again.String())
	}
}

func ExampleParse() {
	expr, err := Parse(context.Background(), "client.fetch(url).await")
	if err != nil {
		panic(err)
	}
	fmt.Println(expr.String())
	// Output: client.fetch(url).await
}
