// Package diagnostics defines the structured errors reported by every
// pipeline phase. Each error carries a stable code, the source position it
// was raised at, and a human-readable message. Codes are grouped by phase:
// L### lexer, P### parser, T### resolver, R### runtime.
package diagnostics

import (
	"fmt"

	"github.com/funvibe/blisp/internal/token"
)

// Lexer errors
const (
	ErrL001 = "L001" // illegal character
	ErrL002 = "L002" // unterminated literal
	ErrL003 = "L003" // char code out of range
	ErrL004 = "L004" // malformed float
	ErrL005 = "L005" // invalid char literal
	ErrL006 = "L006" // malformed numeric suffix
)

// Parser errors
const (
	ErrP000 = "P000" // internal: missing token stream
	ErrP001 = "P001" // unexpected token
	ErrP002 = "P002" // empty list
	ErrP003 = "P003" // unbalanced brackets / unexpected end of input
	ErrP004 = "P004" // trailing tokens after program expression
)

// Type errors
const (
	ErrT001 = "T001" // list element type mismatch
	ErrT002 = "T002" // branch type mismatch
	ErrT003 = "T003" // no matching signature
	ErrT004 = "T004" // arity mismatch
	ErrT005 = "T005" // undeclared variable
	ErrT006 = "T006" // redeclaration
	ErrT007 = "T007" // literal suffix conflict
	ErrT008 = "T008" // binding type mismatch (set)
	ErrT009 = "T009" // type name used as a value
	ErrT010 = "T010" // identifier expected
	ErrT011 = "T011" // numeric literal out of range
)

// Runtime errors
const (
	ErrR001 = "R001" // division by zero
	ErrR002 = "R002" // end of input
	ErrR003 = "R003" // uninitialized variable
	ErrR004 = "R004" // step limit exceeded
	ErrR005 = "R005" // canceled
)

var messages = map[string]string{
	ErrL001: "illegal character %q",
	ErrL002: "unterminated %s literal",
	ErrL003: "char literal %s is out of range [0, 255]",
	ErrL004: "malformed float literal %q: missing integer part",
	ErrL005: "invalid char literal %s: expected a single character",
	ErrL006: "malformed numeric literal %q",

	ErrP000: "parser: %s",
	ErrP001: "unexpected token %q, expected %s",
	ErrP002: "empty list: element type cannot be inferred",
	ErrP003: "unexpected end of input, expected %s",
	ErrP004: "unexpected token %q after program expression",

	ErrT001: "list elements have incompatible types: %s vs %s",
	ErrT002: "if branches have incompatible types: %s vs %s",
	ErrT003: "no signature of %s matches argument types (%s)",
	ErrT004: "%s expects %d argument(s), got %d",
	ErrT005: "undeclared variable %q",
	ErrT006: "variable %q is already declared",
	ErrT007: "literal %q cannot carry suffix %q",
	ErrT008: "cannot assign %s to variable %q of type %s",
	ErrT009: "type name %q cannot be used as a value",
	ErrT010: "argument %d of %s must be an identifier",
	ErrT011: "numeric literal %q is out of range",

	ErrR001: "division by zero",
	ErrR002: "end of input",
	ErrR003: "variable %q read before initialization",
	ErrR004: "step limit of %d exceeded",
	ErrR005: "evaluation canceled: %s",
}

// DiagnosticError is the error type shared by all phases.
type DiagnosticError struct {
	Code    string
	File    string
	Line    int
	Column  int
	Message string
}

func (e *DiagnosticError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: [%s] %s", e.File, e.Line, e.Column, e.Code, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%d:%d: [%s] %s", e.Line, e.Column, e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewError builds a DiagnosticError positioned at tok. The message template
// is looked up by code; args fill its format verbs. Unknown codes fall back
// to joining the args, so a missing table entry never panics.
func NewError(code string, tok token.Token, args ...interface{}) *DiagnosticError {
	tmpl, ok := messages[code]
	var msg string
	if ok {
		msg = fmt.Sprintf(tmpl, args...)
	} else {
		msg = fmt.Sprint(args...)
	}
	return &DiagnosticError{
		Code:    code,
		Line:    tok.Line,
		Column:  tok.Column,
		Message: msg,
	}
}

// Phase returns which pipeline phase a code belongs to ("lex", "parse",
// "type", "runtime").
func Phase(code string) string {
	if code == "" {
		return ""
	}
	switch code[0] {
	case 'L':
		return "lex"
	case 'P':
		return "parse"
	case 'T':
		return "type"
	case 'R':
		return "runtime"
	}
	return ""
}
