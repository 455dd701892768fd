package parser

import (
	"github.com/deepnoodle-ai/bisuffix/ast"
	"github.com/deepnoodle-ai/bisuffix/internal/token"
)

// Expression parsing methods for the Parser.
// This file contains methods that parse expression constructs:
// - Identifiers and prefix/infix expressions
// - Grouped expressions
// - Call expressions and argument lists
// - Attribute access, method calls, and await markers
// - Index expressions and the postfix "?" marker

func (p *Parser) parseIdent() ast.Expr {
	if p.curToken.Literal == "" {
		return p.setTokenError(p.curToken, "invalid identifier")
	}
	return p.newIdent(p.curToken)
}

func (p *Parser) parsePrefixExpr() ast.Expr {
	opPos := p.curToken.StartPosition
	op := p.curToken.Literal
	if err := p.nextToken(); err != nil {
		return nil
	}
	// parseExpression records an error whenever it returns nil
	right := p.parseExpression(PREFIX)
	if right == nil {
		return nil
	}
	return &ast.Prefix{OpPos: opPos, Op: op, X: right}
}

func (p *Parser) parseInfixExpr(left ast.Expr) ast.Expr {
	opPos := p.curToken.StartPosition
	op := p.curToken.Literal
	precedence := p.currentPrecedence()
	if err := p.nextToken(); err != nil {
		return nil
	}
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &ast.Infix{X: left, OpPos: opPos, Op: op, Y: right}
}

// currentPrecedence returns the precedence of the current token.
func (p *Parser) currentPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) parseGroupedExpr() ast.Expr {
	lparen := p.curToken.StartPosition
	if err := p.nextToken(); err != nil { // move past '('
		return nil
	}
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if !p.expectPeek("a grouped expression", token.RPAREN) {
		return nil
	}
	rparen := p.curToken.StartPosition
	return &ast.Group{Lparen: lparen, X: expr, Rparen: rparen}
}

func (p *Parser) parseCall(function ast.Expr) ast.Expr {
	lparen := p.curToken.StartPosition
	arguments := p.parseExprList(token.RPAREN)
	if arguments == nil && p.hasErrors() {
		return nil
	}
	rparen := p.curToken.StartPosition
	return &ast.Call{Fun: function, Lparen: lparen, Args: arguments, Rparen: rparen}
}

// parseExprList parses a comma-separated list of expressions up to the given
// end token. The current token should be the list opener; on success the
// current token is the end token.
func (p *Parser) parseExprList(end token.Type) []ast.Expr {
	var list []ast.Expr
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}
	if err := p.nextToken(); err != nil {
		return nil
	}
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}
	list = append(list, first)
	for p.peekTokenIs(token.COMMA) {
		p.nextToken() // move to ','
		if err := p.nextToken(); err != nil { // move past ','
			return nil
		}
		item := p.parseExpression(LOWEST)
		if item == nil {
			return nil
		}
		list = append(list, item)
	}
	if !p.expectPeek("an expression list", end) {
		return nil
	}
	return list
}

func (p *Parser) parseGetAttr(obj ast.Expr) ast.Expr {
	period := p.curToken.StartPosition
	if err := p.nextToken(); err != nil {
		return nil
	}
	// ".await" marks a suspension point on the receiver expression
	if p.curTokenIs(token.AWAIT) {
		return &ast.Await{X: obj, AwaitPos: p.curToken.StartPosition}
	}
	if !p.curTokenIs(token.IDENT) {
		return p.setTokenError(p.curToken, "expected an identifier after %q", ".")
	}
	name := p.newIdent(p.curToken)
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		callExpr := p.parseCall(name)
		if callExpr == nil {
			return nil
		}
		call, ok := callExpr.(*ast.Call)
		if !ok {
			return p.setTokenError(p.curToken, "invalid attribute expression")
		}
		return &ast.ObjectCall{X: obj, Period: period, Call: call}
	}
	return &ast.GetAttr{X: obj, Period: period, Attr: name}
}

func (p *Parser) parseIndex(obj ast.Expr) ast.Expr {
	lbrack := p.curToken.StartPosition
	if err := p.nextToken(); err != nil { // move past '['
		return nil
	}
	index := p.parseExpression(LOWEST)
	if index == nil {
		return nil
	}
	if !p.expectPeek("an index expression", token.RBRACKET) {
		return nil
	}
	rbrack := p.curToken.StartPosition
	return &ast.Index{X: obj, Lbrack: lbrack, Index: index, Rbrack: rbrack}
}

func (p *Parser) parseTry(obj ast.Expr) ast.Expr {
	return &ast.Try{X: obj, Question: p.curToken.StartPosition}
}
