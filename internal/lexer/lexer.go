package lexer

import (
	"strconv"

	"github.com/funvibe/blisp/internal/diagnostics"
	"github.com/funvibe/blisp/internal/token"
)

// BLisp source is a byte sequence: chars are bytes and strings are byte
// sequences, so the lexer works on bytes, not runes.
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int  // current line number
	column       int  // current column number

	// Err is set when lexing fails; NextToken returns ILLEGAL alongside.
	Err *diagnostics.DiagnosticError
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func newToken(tokenType token.TokenType, ch byte, line, column int) token.Token {
	return token.Token{Type: tokenType, Lexeme: string(ch), Literal: string(ch), Line: line, Column: column}
}

func (l *Lexer) fail(code string, line, column int, args ...interface{}) token.Token {
	err := diagnostics.NewError(code, token.Token{Line: line, Column: column}, args...)
	l.Err = err
	return token.Token{Type: token.ILLEGAL, Line: line, Column: column}
}

// Tokenize scans the whole input, stopping at the first lexical error.
func (l *Lexer) Tokenize() ([]token.Token, *diagnostics.DiagnosticError) {
	var toks []token.Token
	for {
		tok := l.NextToken()
		if l.Err != nil {
			return nil, l.Err
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks, nil
		}
	}
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()

	line, column := l.line, l.column

	switch {
	case l.ch == 0:
		tok = token.Token{Type: token.EOF, Line: line, Column: column}
		return tok
	case l.ch == '(':
		if l.peekChar() == ')' {
			l.readChar()
			tok = token.Token{Type: token.UNIT, Lexeme: "()", Literal: "()", Line: line, Column: column}
		} else {
			tok = newToken(token.LPAREN, l.ch, line, column)
		}
	case l.ch == ')':
		tok = newToken(token.RPAREN, l.ch, line, column)
	case l.ch == '[':
		tok = newToken(token.LBRACK, l.ch, line, column)
	case l.ch == ']':
		tok = newToken(token.RBRACK, l.ch, line, column)
	case isDigit(l.ch):
		return l.readNumber(false)
	case l.ch == '-':
		// '-' immediately followed by a digit starts a negative literal;
		// otherwise it is the sub operator.
		if isDigit(l.peekChar()) {
			l.readChar()
			return l.readNumber(true)
		}
		tok = l.reservedToken("-", line, column)
	case l.ch == '\'':
		return l.readCharLiteral()
	case l.ch == '"':
		return l.readStringLiteral()
	case l.ch == '.':
		if isDigit(l.peekChar()) {
			// '.1' — float with no integer part
			return l.fail(diagnostics.ErrL004, line, column, "."+string(l.peekChar()))
		}
		tok = l.reservedToken(".", line, column)
	case l.ch == '+':
		if l.peekChar() == '+' {
			l.readChar()
			tok = l.reservedToken("++", line, column)
		} else {
			tok = l.reservedToken("+", line, column)
		}
	case l.ch == '*' || l.ch == '/' || l.ch == '?' || l.ch == ':':
		tok = l.reservedToken(string(l.ch), line, column)
	case l.ch == ',':
		// Position decides the meaning of ',': the parser treats it as the
		// read alias in operator position and as a separator inside lists.
		canonical, _ := token.LookupOperator(",")
		tok = token.Token{Type: token.COMMA, Lexeme: ",", Literal: canonical, Line: line, Column: column}
	case l.ch == '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.reservedToken("==", line, column)
		} else {
			return l.fail(diagnostics.ErrL001, line, column, string(l.ch))
		}
	case l.ch == '<':
		switch l.peekChar() {
		case '>':
			l.readChar()
			tok = l.reservedToken("<>", line, column)
		case '=':
			l.readChar()
			tok = l.reservedToken("<=", line, column)
		default:
			tok = l.reservedToken("<", line, column)
		}
	case l.ch == '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.reservedToken(">=", line, column)
		} else {
			tok = l.reservedToken(">", line, column)
		}
	case l.ch == '&':
		if l.peekChar() == '&' {
			l.readChar()
			tok = l.reservedToken("&&", line, column)
		} else {
			return l.fail(diagnostics.ErrL001, line, column, string(l.ch))
		}
	case l.ch == '|':
		if l.peekChar() == '|' {
			l.readChar()
			tok = l.reservedToken("||", line, column)
		} else {
			return l.fail(diagnostics.ErrL001, line, column, string(l.ch))
		}
	case isLetter(l.ch):
		return l.readIdentifier()
	default:
		return l.fail(diagnostics.ErrL001, line, column, string(l.ch))
	}

	l.readChar()
	return tok
}

func (l *Lexer) reservedToken(sym string, line, column int) token.Token {
	canonical, ok := token.LookupOperator(sym)
	if !ok {
		return l.fail(diagnostics.ErrL001, line, column, sym)
	}
	return token.Token{Type: token.RESERVED, Lexeme: sym, Literal: canonical, Line: line, Column: column}
}

// readNumber scans a numeric literal: digits, at most one '.', then at most
// one suffix (u/f/c). Scanning is maximal-munch but suffix-bounded — a digit
// right after a consumed suffix starts a new token. The caller has already
// consumed a leading '-' when negative is true.
func (l *Lexer) readNumber(negative bool) token.Token {
	line, column := l.line, l.column
	if negative {
		column-- // position of the '-'
	}
	start := l.position

	for isDigit(l.ch) {
		l.readChar()
	}
	hasDot := false
	if l.ch == '.' {
		hasDot = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	var suffix byte
	if l.ch == 'u' || l.ch == 'f' || l.ch == 'c' {
		suffix = l.ch
		l.readChar()
	}
	// A letter here means a second suffix or a stray unit like "1x".
	if isLetter(l.ch) {
		return l.fail(diagnostics.ErrL006, line, column, l.input[start:l.position]+string(l.ch))
	}

	lexeme := l.input[start:l.position]
	if negative {
		lexeme = "-" + lexeme
	}

	// Numeric char form: the byte value must fit. Sign and dot conflicts
	// with the suffix stay syntactically valid here and die in the resolver.
	if suffix == 'c' && !hasDot && !negative {
		digits := lexeme[:len(lexeme)-1]
		if v, err := strconv.ParseUint(digits, 10, 64); err != nil || v > 255 {
			return l.fail(diagnostics.ErrL003, line, column, lexeme)
		}
	}

	return token.Token{Type: token.NUM, Lexeme: lexeme, Literal: lexeme, Line: line, Column: column}
}

func (l *Lexer) readCharLiteral() token.Token {
	line, column := l.line, l.column
	l.readChar() // consume opening quote
	start := l.position
	for l.ch != '\'' {
		if l.ch == 0 {
			return l.fail(diagnostics.ErrL002, line, column, "char")
		}
		l.readChar()
	}
	content := l.input[start:l.position]
	l.readChar() // consume closing quote
	if len(content) != 1 {
		return l.fail(diagnostics.ErrL005, line, column, "'"+content+"'")
	}
	return token.Token{Type: token.CHAR, Lexeme: "'" + content + "'", Literal: content, Line: line, Column: column}
}

func (l *Lexer) readStringLiteral() token.Token {
	line, column := l.line, l.column
	l.readChar() // consume opening quote
	start := l.position
	for l.ch != '"' {
		if l.ch == 0 {
			return l.fail(diagnostics.ErrL002, line, column, "string")
		}
		l.readChar()
	}
	content := l.input[start:l.position]
	l.readChar() // consume closing quote
	return token.Token{Type: token.STRING, Lexeme: `"` + content + `"`, Literal: content, Line: line, Column: column}
}

func (l *Lexer) readIdentifier() token.Token {
	line, column := l.line, l.column
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	word := l.input[start:l.position]
	typ, canonical := token.LookupIdent(word)
	return token.Token{Type: typ, Lexeme: word, Literal: canonical, Line: line, Column: column}
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}
