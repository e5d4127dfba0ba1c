// Package parser implements the recursive-descent parser for BLisp's
// grammar:
//
//	Prog     → Expr
//	Expr     → ( ExprBody )
//	ExprBody → Val | FuncCall
//	Val      → List | Expr | Ident | TypeName | CharLiteral | String
//	         | NumLiteral | UnitLiteral | BoolLiteral
//	List     → [ Val (","? Val)* ]
//	FuncCall → ReservedIdent Val+
//
// Exact operator arity is not checked here; the resolver validates it
// against the builtin signature table.
package parser

import (
	"strings"

	"github.com/funvibe/blisp/internal/ast"
	"github.com/funvibe/blisp/internal/diagnostics"
	"github.com/funvibe/blisp/internal/pipeline"
	"github.com/funvibe/blisp/internal/token"
)

// valFirst is the FIRST set of the Val rule, used for diagnostics.
var valFirst = []string{"'('", "'['", "identifier", "type name", "literal"}

type Parser struct {
	tokens []token.Token
	pos    int
	ctx    *pipeline.PipelineContext
}

func New(tokens []token.Token, ctx *pipeline.PipelineContext) *Parser {
	return &Parser{tokens: tokens, ctx: ctx}
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		if len(p.tokens) > 0 {
			last := p.tokens[len(p.tokens)-1]
			return token.Token{Type: token.EOF, Line: last.Line, Column: last.Column}
		}
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() token.Token {
	tok := p.cur()
	p.pos++
	return tok
}

func (p *Parser) errorf(code string, tok token.Token, args ...interface{}) {
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(code, tok, args...))
}

func (p *Parser) unexpected(tok token.Token, expected ...string) {
	if tok.Type == token.EOF {
		p.errorf(diagnostics.ErrP003, tok, strings.Join(expected, " or "))
		return
	}
	p.errorf(diagnostics.ErrP001, tok, tok.Lexeme, strings.Join(expected, " or "))
}

// ParseProgram parses exactly one expression and requires EOF after it.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	expr := p.parseExpr()
	if expr == nil {
		return nil
	}
	prog.Expr = expr
	if tok := p.cur(); tok.Type != token.EOF {
		p.errorf(diagnostics.ErrP004, tok, tok.Lexeme)
		return nil
	}
	return prog
}

// parseExpr parses ( ExprBody ).
func (p *Parser) parseExpr() ast.Expression {
	tok := p.cur()
	if tok.Type != token.LPAREN {
		p.unexpected(tok, "'('")
		return nil
	}
	p.advance()

	body := p.parseExprBody()
	if body == nil {
		return nil
	}

	if tok := p.cur(); tok.Type != token.RPAREN {
		p.unexpected(tok, "')'")
		return nil
	}
	p.advance()
	return body
}

// parseExprBody parses a single Val or a FuncCall.
func (p *Parser) parseExprBody() ast.Expression {
	tok := p.cur()
	// A ',' in operator position is the read alias.
	if tok.Type == token.RESERVED || tok.Type == token.COMMA {
		return p.parseFuncCall()
	}
	return p.parseVal()
}

// parseFuncCall parses ReservedIdent Val+ (the closing paren stays for the
// caller).
func (p *Parser) parseFuncCall() ast.Expression {
	opTok := p.advance()
	call := &ast.CallExpression{Token: opTok, Operator: opTok.Literal}

	if !p.atValStart() {
		p.unexpected(p.cur(), valFirst...)
		return nil
	}
	for p.atValStart() {
		arg := p.parseVal()
		if arg == nil {
			return nil
		}
		call.Args = append(call.Args, arg)
	}
	return call
}

func (p *Parser) atValStart() bool {
	switch p.cur().Type {
	case token.LBRACK, token.LPAREN, token.IDENT, token.TYPENAME,
		token.CHAR, token.STRING, token.NUM, token.UNIT, token.BOOL:
		return true
	}
	return false
}

func (p *Parser) parseVal() ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case token.LBRACK:
		return p.parseList()
	case token.LPAREN:
		return p.parseExpr()
	case token.IDENT:
		p.advance()
		return &ast.Identifier{Token: tok, Value: tok.Literal}
	case token.TYPENAME:
		p.advance()
		return &ast.TypeName{Token: tok, Value: tok.Literal}
	case token.CHAR:
		p.advance()
		return &ast.CharLiteral{Token: tok, Value: tok.Literal[0]}
	case token.STRING:
		p.advance()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}
	case token.NUM:
		p.advance()
		return p.numberNode(tok)
	case token.UNIT:
		p.advance()
		return &ast.UnitLiteral{Token: tok}
	case token.BOOL:
		p.advance()
		return &ast.BoolLiteral{Token: tok, Value: tok.Literal == "true"}
	}
	p.unexpected(tok, valFirst...)
	return nil
}

// parseList parses [ Val (","? Val)* ]. Elements are separated by
// whitespace or an optional single comma; an empty list is a parse error:
// its element type could never be inferred.
func (p *Parser) parseList() ast.Expression {
	lbrack := p.advance()
	list := &ast.ListLiteral{Token: lbrack}

	if p.cur().Type == token.RBRACK {
		p.errorf(diagnostics.ErrP002, lbrack)
		return nil
	}
	for p.cur().Type != token.RBRACK {
		if !p.atValStart() {
			p.unexpected(p.cur(), append([]string{"']'"}, valFirst...)...)
			return nil
		}
		el := p.parseVal()
		if el == nil {
			return nil
		}
		list.Elements = append(list.Elements, el)
		// A separator must have an element after it.
		if p.cur().Type == token.COMMA {
			p.advance()
			if !p.atValStart() {
				p.unexpected(p.cur(), valFirst...)
				return nil
			}
		}
	}
	p.advance() // consume ']'
	return list
}

// numberNode decomposes a NUM lexeme into the parts the resolver needs:
// sign, integer digits, fractional digits, dot, suffix.
func (p *Parser) numberNode(tok token.Token) ast.Expression {
	text := tok.Lexeme
	node := &ast.NumberLiteral{Token: tok}

	if strings.HasPrefix(text, "-") {
		node.Negative = true
		text = text[1:]
	}
	if n := len(text); n > 0 {
		switch text[n-1] {
		case 'u', 'f', 'c':
			node.Suffix = text[n-1]
			text = text[:n-1]
		}
	}
	if dot := strings.IndexByte(text, '.'); dot >= 0 {
		node.HasDot = true
		node.IntPart = text[:dot]
		node.FracPart = text[dot+1:]
	} else {
		node.IntPart = text
	}
	return node
}
