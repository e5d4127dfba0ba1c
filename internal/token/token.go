package token

import "github.com/funvibe/blisp/internal/config"

type TokenType string

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	LPAREN = "("
	RPAREN = ")"
	LBRACK = "["
	RBRACK = "]"

	// IDENT is a user identifier (variable name).
	IDENT = "IDENT"
	// RESERVED is a builtin operator name or one of its aliases.
	RESERVED = "RESERVED"
	// TYPENAME is one of the type keywords (int, uint, ...).
	TYPENAME = "TYPENAME"

	// COMMA is a raw ','. The parser reads it as the read alias in operator
	// position and as a list element separator inside brackets.
	COMMA = ","

	// NUM carries the raw lexeme of a numeric literal, including an optional
	// leading '-', a single '.', and a single trailing suffix (u/f/c).
	NUM    = "NUM"
	CHAR   = "CHAR"
	STRING = "STRING"
	BOOL   = "BOOL"
	// UNIT is the two-character literal "()".
	UNIT = "UNIT"
)

type Token struct {
	Type    TokenType
	Lexeme  string // raw source text
	Literal string // decoded payload (string contents, canonical op name, ...)
	Line    int
	Column  int
}

// reservedIdents maps every surface spelling of a builtin operator to its
// canonical name. Symbolic forms and word aliases are interchangeable.
var reservedIdents = map[string]string{
	"+":        config.AddFuncName,
	"add":      config.AddFuncName,
	"-":        config.SubFuncName,
	"sub":      config.SubFuncName,
	"*":        config.MulFuncName,
	"mul":      config.MulFuncName,
	"/":        config.DivFuncName,
	"div":      config.DivFuncName,
	".":        config.PrintFuncName,
	"print":    config.PrintFuncName,
	",":        config.ReadFuncName,
	"read":     config.ReadFuncName,
	"?":        config.IfFuncName,
	"if":       config.IfFuncName,
	"while":    config.WhileFuncName,
	"==":       config.EqFuncName,
	"eq":       config.EqFuncName,
	"<>":       config.NeqFuncName,
	"neq":      config.NeqFuncName,
	"<=":       config.LeqFuncName,
	"leq":      config.LeqFuncName,
	">=":       config.GeqFuncName,
	"geq":      config.GeqFuncName,
	"<":        config.LtFuncName,
	"lt":       config.LtFuncName,
	">":        config.GtFuncName,
	"gt":       config.GtFuncName,
	"&&":       config.AndFuncName,
	"and":      config.AndFuncName,
	"||":       config.OrFuncName,
	"or":       config.OrFuncName,
	"++":       config.ConcatFuncName,
	"concat":   config.ConcatFuncName,
	":":        config.PrependFuncName,
	"prepend":  config.PrependFuncName,
	"take":     config.TakeFuncName,
	"split":    config.SplitFuncName,
	"def":      config.DefFuncName,
	"init":     config.InitFuncName,
	"set":      config.SetFuncName,
	"tostring": config.ToStringFuncName,
	"eval":     config.EvalFuncName,
}

// typeNames maps the surface type keywords to their canonical names.
// "string" is surface sugar for List<Char> and is expanded by the resolver.
var typeNames = map[string]string{
	"int":    config.IntTypeName,
	"uint":   config.UintTypeName,
	"float":  config.FloatTypeName,
	"bool":   config.BoolTypeName,
	"char":   config.CharTypeName,
	"unit":   config.UnitTypeName,
	"string": "String",
}

// LookupIdent classifies a scanned word as a reserved operator, a type name,
// a boolean literal, or a plain identifier.
func LookupIdent(word string) (TokenType, string) {
	if canonical, ok := reservedIdents[word]; ok {
		return RESERVED, canonical
	}
	if canonical, ok := typeNames[word]; ok {
		return TYPENAME, canonical
	}
	if word == "true" || word == "false" {
		return BOOL, word
	}
	return IDENT, word
}

// LookupOperator resolves a symbolic operator spelling ("+", "<=", ...).
func LookupOperator(sym string) (string, bool) {
	canonical, ok := reservedIdents[sym]
	return canonical, ok
}
