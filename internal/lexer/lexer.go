// Package lexer converts expression source text into a stream of tokens.
//
// A Lexer is created with New() and consumed by calling Next() until an EOF
// token is returned. Lexing is on-demand: no tokens are produced until the
// caller asks for them.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/deepnoodle-ai/bisuffix/internal/token"
)

// Lexer holds the state used while tokenizing an input string.
type Lexer struct {
	// input is the expression source being tokenized
	input string

	// pos is the byte offset of the current character
	pos int

	// readPos is the byte offset of the next character to read
	readPos int

	// ch is the current character
	ch rune

	// line is the 0-indexed line number of the current character
	line int

	// lineStart is the byte offset of the start of the current line
	lineStart int

	// column is the 0-indexed column of the current character
	column int

	// filename is an optional name for the input, used in positions
	filename string
}

// New returns a Lexer for the given input string.
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// SetFilename sets the filename associated with the input.
func (l *Lexer) SetFilename(filename string) {
	l.filename = filename
}

// Filename returns the filename associated with the input.
func (l *Lexer) Filename() string {
	return l.filename
}

// Next returns the next token from the input. Once EOF is reached, Next
// returns an EOF token on every subsequent call.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespace()

	start := l.position()

	switch l.ch {
	case 0:
		return l.emit(token.EOF, "", start), nil
	case '(':
		return l.emitChar(token.LPAREN, start), nil
	case ')':
		return l.emitChar(token.RPAREN, start), nil
	case '[':
		return l.emitChar(token.LBRACKET, start), nil
	case ']':
		return l.emitChar(token.RBRACKET, start), nil
	case ',':
		return l.emitChar(token.COMMA, start), nil
	case '.':
		return l.emitChar(token.PERIOD, start), nil
	case '?':
		return l.emitChar(token.QUESTION, start), nil
	case '+':
		return l.emitChar(token.PLUS, start), nil
	case '-':
		return l.emitChar(token.MINUS, start), nil
	case '*':
		return l.emitChar(token.ASTERISK, start), nil
	case '/':
		return l.emitChar(token.SLASH, start), nil
	case '%':
		return l.emitChar(token.MOD, start), nil
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			return l.emitChar2(token.EQ, "==", start), nil
		}
		tok := l.emitChar(token.ILLEGAL, start)
		return tok, fmt.Errorf("unexpected character %q (did you mean \"==\"?)", "=")
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			return l.emitChar2(token.NOT_EQ, "!=", start), nil
		}
		return l.emitChar(token.BANG, start), nil
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			return l.emitChar2(token.LT_EQUALS, "<=", start), nil
		}
		return l.emitChar(token.LT, start), nil
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			return l.emitChar2(token.GT_EQUALS, ">=", start), nil
		}
		return l.emitChar(token.GT, start), nil
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			return l.emitChar2(token.AND, "&&", start), nil
		}
		tok := l.emitChar(token.ILLEGAL, start)
		return tok, fmt.Errorf("unexpected character %q", "&")
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			return l.emitChar2(token.OR, "||", start), nil
		}
		tok := l.emitChar(token.ILLEGAL, start)
		return tok, fmt.Errorf("unexpected character %q", "|")
	case '"':
		return l.readString(start)
	}

	if isIdentStart(l.ch) {
		literal := l.readIdentifier()
		// Columns count runes while Char counts bytes; the two differ for
		// identifiers containing multi-byte characters.
		end := start.Advance(utf8.RuneCountInString(literal))
		end.Char = start.Char + len(literal)
		return token.Token{
			Type:          token.LookupIdentifier(literal),
			Literal:       literal,
			StartPosition: start,
			EndPosition:   end,
		}, nil
	}

	if isDigit(l.ch) {
		return l.readNumber(start)
	}

	tok := l.emitChar(token.ILLEGAL, start)
	return tok, fmt.Errorf("unexpected character %q", string(tok.Literal))
}

// GetLineText returns the text of the line on which the given token starts.
// Used to show source context in error messages.
func (l *Lexer) GetLineText(tok token.Token) string {
	start := tok.StartPosition.LineStart
	if start < 0 || start > len(l.input) {
		return ""
	}
	end := strings.IndexByte(l.input[start:], '\n')
	if end < 0 {
		return l.input[start:]
	}
	return l.input[start : start+end]
}

func (l *Lexer) position() token.Position {
	return token.Position{
		Char:      l.pos,
		LineStart: l.lineStart,
		Line:      l.line,
		Column:    l.column,
		File:      l.filename,
	}
}

func (l *Lexer) emit(typ token.Type, literal string, start token.Position) token.Token {
	return token.Token{
		Type:          typ,
		Literal:       literal,
		StartPosition: start,
		EndPosition:   start.Advance(len(literal)),
	}
}

// emitChar emits a single-character token for the current character and
// advances past it.
func (l *Lexer) emitChar(typ token.Type, start token.Position) token.Token {
	literal := string(l.ch)
	l.readChar()
	return l.emit(typ, literal, start)
}

// emitChar2 emits a two-character token ending at the current character and
// advances past it.
func (l *Lexer) emitChar2(typ token.Type, literal string, start token.Position) token.Token {
	l.readChar()
	return l.emit(typ, literal, start)
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.lineStart = l.readPos
		l.column = -1
	}
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.pos = l.readPos
		l.column++
		return
	}
	r, width := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.pos = l.readPos
	l.readPos += width
	if l.pos == 0 {
		l.column = 0
	} else {
		l.column++
	}
}

func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isIdentContinue(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func (l *Lexer) readNumber(start token.Position) (token.Token, error) {
	startPos := l.pos
	typ := token.INT
	for isDigit(l.ch) {
		l.readChar()
	}
	// A '.' followed by a digit continues a float literal; a '.' followed by
	// anything else belongs to an attribute access like 1.string()
	if l.ch == '.' && isDigit(l.peekChar()) {
		typ = token.FLOAT
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	literal := l.input[startPos:l.pos]
	return l.emit(typ, literal, start), nil
}

func (l *Lexer) readString(start token.Position) (token.Token, error) {
	var sb strings.Builder
	l.readChar() // move past the opening quote
	for l.ch != '"' {
		if l.ch == 0 {
			tok := l.emit(token.ILLEGAL, sb.String(), start)
			return tok, fmt.Errorf("unterminated string literal")
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 'r':
				sb.WriteRune('\r')
			case '"':
				sb.WriteRune('"')
			case '\\':
				sb.WriteRune('\\')
			case 0:
				tok := l.emit(token.ILLEGAL, sb.String(), start)
				return tok, fmt.Errorf("unterminated string literal")
			default:
				tok := l.emit(token.ILLEGAL, sb.String(), start)
				return tok, fmt.Errorf("invalid escape sequence \\%s", string(l.ch))
			}
			l.readChar()
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	l.readChar() // move past the closing quote
	value := sb.String()
	tok := token.Token{
		Type:          token.STRING,
		Literal:       value,
		StartPosition: start,
		EndPosition:   start.Advance(l.pos - start.Char),
	}
	return tok, nil
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentContinue(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
