package typesystem

import "github.com/funvibe/blisp/internal/config"

// SigParam describes one parameter (or the return) of a builtin signature.
// Exactly one of Fixed/Var is set: a fixed concrete type, or a constrained
// type variable wrapped in ListDepth levels of List.
type SigParam struct {
	Fixed     Type
	Var       string
	ListDepth int
}

// Signature is one generic call template for a builtin operator. The same
// table drives the resolver's dispatch and the evaluator's arity asserts;
// per-operator typing rules live nowhere else.
type Signature struct {
	Name   string
	Params []SigParam
	Return SigParam
	// Constraints lists the types each variable may take. A nil entry means
	// any concrete type. Order matters: it is the literal-default preference
	// order used when an argument is still flexible.
	Constraints map[string][]Type
	// Special marks forms the resolver types through a dedicated path
	// (argument shapes that are not plain values, or asymmetric rules).
	// The table still carries their arity.
	Special bool
}

func (s Signature) Arity() int { return len(s.Params) }

func fixed(t Type) SigParam       { return SigParam{Fixed: t} }
func tvar(name string) SigParam   { return SigParam{Var: name} }
func tlist(name string) SigParam  { return SigParam{Var: name, ListDepth: 1} }
func tlist2(name string) SigParam { return SigParam{Var: name, ListDepth: 2} }

// numeric is the constraint of the arithmetic operators, in literal-default
// preference order (Int over Uint over Float).
var numeric = []Type{IntType, UintType, FloatType}

// equatable is the constraint of the comparison operators: every default
// scalar type plus String. List comparison beyond String is not in the
// surface.
var equatable = []Type{IntType, UintType, FloatType, BoolType, CharType, UnitType, StringType}

var builtins map[string]Signature

func init() {
	builtins = make(map[string]Signature)

	arith := func(name string) {
		builtins[name] = Signature{
			Name:        name,
			Params:      []SigParam{tvar("T"), tvar("T")},
			Return:      tvar("T"),
			Constraints: map[string][]Type{"T": numeric},
		}
	}
	arith(config.AddFuncName)
	arith(config.SubFuncName)
	arith(config.MulFuncName)
	arith(config.DivFuncName)

	compare := func(name string) {
		builtins[name] = Signature{
			Name:        name,
			Params:      []SigParam{tvar("T"), tvar("T")},
			Return:      fixed(BoolType),
			Constraints: map[string][]Type{"T": equatable},
		}
	}
	compare(config.EqFuncName)
	compare(config.NeqFuncName)
	compare(config.LeqFuncName)
	compare(config.GeqFuncName)
	compare(config.LtFuncName)
	compare(config.GtFuncName)

	logical := func(name string) {
		builtins[name] = Signature{
			Name:   name,
			Params: []SigParam{fixed(BoolType), fixed(BoolType)},
			Return: fixed(BoolType),
		}
	}
	logical(config.AndFuncName)
	logical(config.OrFuncName)

	builtins[config.ConcatFuncName] = Signature{
		Name:        config.ConcatFuncName,
		Params:      []SigParam{tlist("T"), tlist("T")},
		Return:      tlist("T"),
		Constraints: map[string][]Type{"T": nil},
	}
	builtins[config.PrependFuncName] = Signature{
		Name:        config.PrependFuncName,
		Params:      []SigParam{tvar("T"), tlist("T")},
		Return:      tlist("T"),
		Constraints: map[string][]Type{"T": nil},
	}
	builtins[config.TakeFuncName] = Signature{
		Name:        config.TakeFuncName,
		Params:      []SigParam{fixed(UintType), tlist("U")},
		Return:      tlist("U"),
		Constraints: map[string][]Type{"U": nil},
	}
	// Tuple-free design: split yields [taken, remainder] as a nested list.
	builtins[config.SplitFuncName] = Signature{
		Name:        config.SplitFuncName,
		Params:      []SigParam{fixed(UintType), tlist("U")},
		Return:      tlist2("U"),
		Constraints: map[string][]Type{"U": nil},
	}

	builtins[config.PrintFuncName] = Signature{
		Name:   config.PrintFuncName,
		Params: []SigParam{fixed(StringType)},
		Return: fixed(StringType),
	}
	builtins[config.ReadFuncName] = Signature{
		Name:        config.ReadFuncName,
		Params:      []SigParam{tvar("S")},
		Return:      fixed(StringType),
		Constraints: map[string][]Type{"S": {StringType, UnitType}},
	}
	builtins[config.ToStringFuncName] = Signature{
		Name:        config.ToStringFuncName,
		Params:      []SigParam{tvar("T")},
		Return:      fixed(StringType),
		Constraints: map[string][]Type{"T": nil},
	}

	// Special forms: arity is table-driven, typing is resolver-driven.
	builtins[config.IfFuncName] = Signature{
		Name:    config.IfFuncName,
		Params:  []SigParam{fixed(BoolType), tvar("U"), tvar("U")},
		Return:  tvar("U"),
		Special: true,
	}
	builtins[config.WhileFuncName] = Signature{
		Name:    config.WhileFuncName,
		Params:  []SigParam{fixed(BoolType), tvar("U")},
		Return:  fixed(UnitType),
		Special: true,
	}
	builtins[config.DefFuncName] = Signature{
		Name:    config.DefFuncName,
		Params:  []SigParam{tvar("Ident"), tvar("T")},
		Return:  fixed(UnitType),
		Special: true,
	}
	builtins[config.InitFuncName] = Signature{
		Name:    config.InitFuncName,
		Params:  []SigParam{tvar("Ident"), tvar("TypeName")},
		Return:  fixed(UnitType),
		Special: true,
	}
	builtins[config.SetFuncName] = Signature{
		Name:    config.SetFuncName,
		Params:  []SigParam{tvar("Ident"), tvar("T")},
		Return:  fixed(UnitType),
		Special: true,
	}
	builtins[config.EvalFuncName] = Signature{
		Name:    config.EvalFuncName,
		Params:  []SigParam{tvar("T")},
		Return:  fixed(UnitType),
		Special: true,
	}
}

// Lookup returns the signature for a canonical builtin name.
func Lookup(name string) (Signature, bool) {
	sig, ok := builtins[name]
	return sig, ok
}
