package parser

import "github.com/deepnoodle-ai/bisuffix/internal/token"

// Precedence order for operators
const (
	_ int = iota
	LOWEST
	COND        // || or &&
	EQUALS      // == or !=
	LESSGREATER // > or <
	SUM         // + or -
	PRODUCT     // * or /
	PREFIX      // -x or !x
	CALL        // f(x)
	CHAIN       // x.attr, x.f(), x[i], x.await, x?
)

// Precedences for each token type
var precedences = map[token.Type]int{
	token.OR:        COND,
	token.AND:       COND,
	token.EQ:        EQUALS,
	token.NOT_EQ:    EQUALS,
	token.LT:        LESSGREATER,
	token.LT_EQUALS: LESSGREATER,
	token.GT:        LESSGREATER,
	token.GT_EQUALS: LESSGREATER,
	token.PLUS:      SUM,
	token.MINUS:     SUM,
	token.SLASH:     PRODUCT,
	token.ASTERISK:  PRODUCT,
	token.MOD:       PRODUCT,
	token.LPAREN:    CALL,
	token.PERIOD:    CHAIN,
	token.LBRACKET:  CHAIN,
	token.QUESTION:  CHAIN,
}
