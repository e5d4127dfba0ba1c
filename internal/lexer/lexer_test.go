package lexer

import (
	"testing"

	"github.com/funvibe/blisp/internal/diagnostics"
	"github.com/funvibe/blisp/internal/token"
)

type expTok struct {
	typ     token.TokenType
	lexeme  string
	literal string
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		toks  []expTok
	}{
		{
			input: `(+ 1 2)`,
			toks: []expTok{
				{token.LPAREN, "(", "("},
				{token.RESERVED, "+", "add"},
				{token.NUM, "1", "1"},
				{token.NUM, "2", "2"},
				{token.RPAREN, ")", ")"},
				{token.EOF, "", ""},
			},
		},
		{
			input: `(? true "yes" "no")`,
			toks: []expTok{
				{token.LPAREN, "(", "("},
				{token.RESERVED, "?", "if"},
				{token.BOOL, "true", "true"},
				{token.STRING, `"yes"`, "yes"},
				{token.STRING, `"no"`, "no"},
				{token.RPAREN, ")", ")"},
				{token.EOF, "", ""},
			},
		},
		{
			// "()" is one token, not two parens.
			input: `(, ())`,
			toks: []expTok{
				{token.LPAREN, "(", "("},
				{token.COMMA, ",", "read"},
				{token.UNIT, "()", "()"},
				{token.RPAREN, ")", ")"},
				{token.EOF, "", ""},
			},
		},
		{
			// ',' is one raw token either way; the parser decides between
			// read alias and list separator by position.
			input: `[1,2]`,
			toks: []expTok{
				{token.LBRACK, "[", "["},
				{token.NUM, "1", "1"},
				{token.COMMA, ",", "read"},
				{token.NUM, "2", "2"},
				{token.RBRACK, "]", "]"},
				{token.EOF, "", ""},
			},
		},
		{
			// Suffix bounds the literal: a digit after the suffix starts a
			// new token.
			input: `12u13`,
			toks: []expTok{
				{token.NUM, "12u", "12u"},
				{token.NUM, "13", "13"},
				{token.EOF, "", ""},
			},
		},
		{
			// '-' before a digit is a sign, before anything else an operator.
			input: `(- -5 x)`,
			toks: []expTok{
				{token.LPAREN, "(", "("},
				{token.RESERVED, "-", "sub"},
				{token.NUM, "-5", "-5"},
				{token.IDENT, "x", "x"},
				{token.RPAREN, ")", ")"},
				{token.EOF, "", ""},
			},
		},
		{
			input: `[1.5 2.0f 97c]`,
			toks: []expTok{
				{token.LBRACK, "[", "["},
				{token.NUM, "1.5", "1.5"},
				{token.NUM, "2.0f", "2.0f"},
				{token.NUM, "97c", "97c"},
				{token.RBRACK, "]", "]"},
				{token.EOF, "", ""},
			},
		},
		{
			input: `(init n int)`,
			toks: []expTok{
				{token.LPAREN, "(", "("},
				{token.RESERVED, "init", "init"},
				{token.IDENT, "n", "n"},
				{token.TYPENAME, "int", "Int"},
				{token.RPAREN, ")", ")"},
				{token.EOF, "", ""},
			},
		},
		{
			input: `(: 'a' "bc")`,
			toks: []expTok{
				{token.LPAREN, "(", "("},
				{token.RESERVED, ":", "prepend"},
				{token.CHAR, "'a'", "a"},
				{token.STRING, `"bc"`, "bc"},
				{token.RPAREN, ")", ")"},
				{token.EOF, "", ""},
			},
		},
		{
			// Word aliases are interchangeable with symbolic forms.
			input: `(add 1 2)`,
			toks: []expTok{
				{token.LPAREN, "(", "("},
				{token.RESERVED, "add", "add"},
				{token.NUM, "1", "1"},
				{token.NUM, "2", "2"},
				{token.RPAREN, ")", ")"},
				{token.EOF, "", ""},
			},
		},
		{
			input: `(&& (== 1 1) (<> 2 3))`,
			toks: []expTok{
				{token.LPAREN, "(", "("},
				{token.RESERVED, "&&", "and"},
				{token.LPAREN, "(", "("},
				{token.RESERVED, "==", "eq"},
				{token.NUM, "1", "1"},
				{token.NUM, "1", "1"},
				{token.RPAREN, ")", ")"},
				{token.LPAREN, "(", "("},
				{token.RESERVED, "<>", "neq"},
				{token.NUM, "2", "2"},
				{token.NUM, "3", "3"},
				{token.RPAREN, ")", ")"},
				{token.RPAREN, ")", ")"},
				{token.EOF, "", ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks, err := New(tt.input).Tokenize()
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if len(toks) != len(tt.toks) {
				t.Fatalf("expected %d tokens, got %d: %v", len(tt.toks), len(toks), toks)
			}
			for i, exp := range tt.toks {
				if toks[i].Type != exp.typ {
					t.Errorf("token %d: expected type %s, got %s", i, exp.typ, toks[i].Type)
				}
				if toks[i].Lexeme != exp.lexeme {
					t.Errorf("token %d: expected lexeme %q, got %q", i, exp.lexeme, toks[i].Lexeme)
				}
				if toks[i].Literal != exp.literal {
					t.Errorf("token %d: expected literal %q, got %q", i, exp.literal, toks[i].Literal)
				}
			}
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		input string
		code  string
	}{
		{`(@ 1 2)`, diagnostics.ErrL001},
		{`(= 1 2)`, diagnostics.ErrL001},
		{`(& true false)`, diagnostics.ErrL001},
		{`(| true false)`, diagnostics.ErrL001},
		{`("abc`, diagnostics.ErrL002},
		{`('x`, diagnostics.ErrL002},
		{`(256c)`, diagnostics.ErrL003},
		{`(.5)`, diagnostics.ErrL004},
		{`('ab')`, diagnostics.ErrL005},
		{`('')`, diagnostics.ErrL005},
		{`(1x)`, diagnostics.ErrL006},
		{`(12uf)`, diagnostics.ErrL006},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := New(tt.input).Tokenize()
			if err == nil {
				t.Fatalf("expected error %s, got none", tt.code)
			}
			if err.Code != tt.code {
				t.Errorf("expected code %s, got %s (%s)", tt.code, err.Code, err.Message)
			}
		})
	}
}

func TestTokenPositions(t *testing.T) {
	toks, err := New("(+ 1\n   2)").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	// The "2" sits on line 2, column 4.
	num := toks[3]
	if num.Lexeme != "2" {
		t.Fatalf("expected token %q, got %q", "2", num.Lexeme)
	}
	if num.Line != 2 || num.Column != 4 {
		t.Errorf("expected position 2:4, got %d:%d", num.Line, num.Column)
	}
}
