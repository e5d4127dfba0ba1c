package ast

import (
	"strings"

	"github.com/funvibe/blisp/internal/token"
)

// TokenProvider is an interface for any AST node that can provide its
// primary token. This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// Program is the root node: exactly one expression.
type Program struct {
	File string // Source file path
	Expr Expression
}

func (p *Program) TokenLiteral() string {
	if p.Expr != nil {
		return p.Expr.TokenLiteral()
	}
	return ""
}

// NumberLiteral is a numeric literal, kept in its decomposed surface form.
// The resolver assigns it a lattice or forced type; the evaluator
// materializes the value once the concrete type is known.
type NumberLiteral struct {
	Token    token.Token
	Negative bool
	IntPart  string // digits before the dot
	FracPart string // digits after the dot, "" when HasDot is false
	HasDot   bool
	Suffix   byte // 0, 'u', 'f' or 'c'
}

func (nl *NumberLiteral) expressionNode()      {}
func (nl *NumberLiteral) TokenLiteral() string { return nl.Token.Lexeme }
func (nl *NumberLiteral) GetToken() token.Token {
	if nl == nil {
		return token.Token{}
	}
	return nl.Token
}

// Text reconstructs the digits without sign or suffix, e.g. "12.5".
func (nl *NumberLiteral) Text() string {
	if nl.HasDot {
		return nl.IntPart + "." + nl.FracPart
	}
	return nl.IntPart
}

// CharLiteral is 'a' or the numeric nc form, already decoded to a byte.
type CharLiteral struct {
	Token token.Token
	Value byte
}

func (cl *CharLiteral) expressionNode()      {}
func (cl *CharLiteral) TokenLiteral() string { return cl.Token.Lexeme }
func (cl *CharLiteral) GetToken() token.Token {
	if cl == nil {
		return token.Token{}
	}
	return cl.Token
}

// StringLiteral is a double-quoted byte sequence.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token {
	if sl == nil {
		return token.Token{}
	}
	return sl.Token
}

// BoolLiteral represents true/false.
type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BoolLiteral) expressionNode()      {}
func (bl *BoolLiteral) TokenLiteral() string { return bl.Token.Lexeme }
func (bl *BoolLiteral) GetToken() token.Token {
	if bl == nil {
		return token.Token{}
	}
	return bl.Token
}

// UnitLiteral is ().
type UnitLiteral struct {
	Token token.Token
}

func (ul *UnitLiteral) expressionNode()      {}
func (ul *UnitLiteral) TokenLiteral() string { return ul.Token.Lexeme }
func (ul *UnitLiteral) GetToken() token.Token {
	if ul == nil {
		return token.Token{}
	}
	return ul.Token
}

// Identifier is a variable reference (or the name argument of def/init/set).
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

// TypeName is a type keyword used as a value position argument (init).
// Value is the canonical name (Int, Uint, ..., String).
type TypeName struct {
	Token token.Token
	Value string
}

func (tn *TypeName) expressionNode()      {}
func (tn *TypeName) TokenLiteral() string { return tn.Token.Lexeme }
func (tn *TypeName) GetToken() token.Token {
	if tn == nil {
		return token.Token{}
	}
	return tn.Token
}

// ListLiteral is [ v1 v2 ... ], never empty (the parser rejects []).
type ListLiteral struct {
	Token    token.Token // the '[' token
	Elements []Expression
}

func (ll *ListLiteral) expressionNode()      {}
func (ll *ListLiteral) TokenLiteral() string { return ll.Token.Lexeme }
func (ll *ListLiteral) GetToken() token.Token {
	if ll == nil {
		return token.Token{}
	}
	return ll.Token
}

// CallExpression is ( op arg1 ... argN ). Operator is the canonical builtin
// name; the surface alias survives in the token.
type CallExpression struct {
	Token    token.Token // the operator token
	Operator string
	Args     []Expression
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token {
	if ce == nil {
		return token.Token{}
	}
	return ce.Token
}

// String renders the call back to its surface shape, for diagnostics.
func (ce *CallExpression) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(ce.Operator)
	for _, a := range ce.Args {
		sb.WriteString(" ")
		sb.WriteString(a.TokenLiteral())
	}
	sb.WriteString(")")
	return sb.String()
}
