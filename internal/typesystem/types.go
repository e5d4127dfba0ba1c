// Package typesystem models BLisp's two-level type system: the flexible
// literal types a numeric literal holds before resolution (the coercion
// lattice) and the concrete types every resolved node and every runtime
// value carries. Once a node or variable has a concrete type it never
// re-enters the lattice.
package typesystem

import (
	"fmt"

	"github.com/funvibe/blisp/internal/config"
)

// Type is the interface for all types in our system.
type Type interface {
	String() string
	// Concrete reports whether the type (including list element types,
	// recursively) has left the literal lattice.
	Concrete() bool
}

// LitClass enumerates the literal lattice.
type LitClass int

const (
	// Num: literal had neither '-' nor '.'; defaults Int, coerces to
	// Int, Uint or Float.
	Num LitClass = iota
	// NegNum: literal had a leading '-' and no '.'; defaults Int, coerces
	// to Int or Float.
	NegNum
	// Flt: literal had a decimal point; defaults Float, coerces to
	// nothing else.
	Flt
)

// TLit is a still-flexible literal type.
type TLit struct {
	Class LitClass
}

func (t TLit) String() string {
	switch t.Class {
	case Num:
		return "Num"
	case NegNum:
		return "NegNum"
	default:
		return "FloatLit"
	}
}

func (t TLit) Concrete() bool { return false }

// TCon is a concrete scalar type constant (Int, Uint, Float, Bool, Char,
// Unit).
type TCon struct {
	Name string
}

func (t TCon) String() string { return t.Name }
func (t TCon) Concrete() bool { return true }

// TList is the homogeneous list type. The element type may still be a TLit
// during resolution; a finished TypeMap only contains concrete lists.
type TList struct {
	Elem Type
}

func (t TList) String() string {
	// List<Char> is displayed as String
	if c, ok := t.Elem.(TCon); ok && c.Name == config.CharTypeName {
		return "String"
	}
	return fmt.Sprintf("%s<%s>", config.ListTypeName, t.Elem.String())
}

func (t TList) Concrete() bool { return t.Elem.Concrete() }

var (
	IntType   = TCon{Name: config.IntTypeName}
	UintType  = TCon{Name: config.UintTypeName}
	FloatType = TCon{Name: config.FloatTypeName}
	BoolType  = TCon{Name: config.BoolTypeName}
	CharType  = TCon{Name: config.CharTypeName}
	UnitType  = TCon{Name: config.UnitTypeName}
)

// StringType is List<Char>; "String" is notation, not a distinct type.
var StringType = TList{Elem: CharType}

// ByName maps a canonical scalar type name (as produced by the lexer's
// TYPENAME lookup) to its type. "String" expands to List<Char>.
func ByName(name string) (Type, bool) {
	switch name {
	case config.IntTypeName:
		return IntType, true
	case config.UintTypeName:
		return UintType, true
	case config.FloatTypeName:
		return FloatType, true
	case config.BoolTypeName:
		return BoolType, true
	case config.CharTypeName:
		return CharType, true
	case config.UnitTypeName:
		return UnitType, true
	case "String":
		return StringType, true
	}
	return nil, false
}

// Equal compares two types structurally.
func Equal(a, b Type) bool {
	switch at := a.(type) {
	case TCon:
		bt, ok := b.(TCon)
		return ok && at.Name == bt.Name
	case TLit:
		bt, ok := b.(TLit)
		return ok && at.Class == bt.Class
	case TList:
		bt, ok := b.(TList)
		return ok && Equal(at.Elem, bt.Elem)
	}
	return false
}

// Default collapses any remaining literal flexibility to the lattice
// default: Num and NegNum become Int, Flt becomes Float. Concrete types are
// returned unchanged; lists default recursively.
func Default(t Type) Type {
	switch tt := t.(type) {
	case TLit:
		if tt.Class == Flt {
			return FloatType
		}
		return IntType
	case TList:
		return TList{Elem: Default(tt.Elem)}
	}
	return t
}

// CoercibleTo reports whether a literal class may narrow to the concrete
// scalar target. These are the only edges of the lattice.
func CoercibleTo(class LitClass, target TCon) bool {
	switch class {
	case Num:
		return target == IntType || target == UintType || target == FloatType
	case NegNum:
		return target == IntType || target == FloatType
	case Flt:
		return target == FloatType
	}
	return false
}

// meetClass combines two literal classes, widening along permitted edges.
// Num+NegNum narrows the pair to NegNum (both still int-or-float capable);
// anything+Flt pins Flt.
func meetClass(a, b LitClass) (LitClass, bool) {
	if a == b {
		return a, true
	}
	if a == Flt || b == Flt {
		// Flt meets Num or NegNum: both can still be Float.
		return Flt, true
	}
	// Num meets NegNum
	return NegNum, true
}

// Combine finds the tightest common type of two (possibly still flexible)
// types, per the list-unification rule: a concrete side pins the result and
// the literal side must coerce to it; two literal sides meet in the
// lattice; two concrete sides must be equal. Lists combine element-wise.
func Combine(a, b Type) (Type, bool) {
	switch at := a.(type) {
	case TLit:
		switch bt := b.(type) {
		case TLit:
			cls, ok := meetClass(at.Class, bt.Class)
			if !ok {
				return nil, false
			}
			return TLit{Class: cls}, true
		case TCon:
			if CoercibleTo(at.Class, bt) {
				return bt, true
			}
			return nil, false
		}
		return nil, false
	case TCon:
		switch bt := b.(type) {
		case TLit:
			if CoercibleTo(bt.Class, at) {
				return at, true
			}
			return nil, false
		case TCon:
			if at.Name == bt.Name {
				return at, true
			}
			return nil, false
		}
		return nil, false
	case TList:
		bt, ok := b.(TList)
		if !ok {
			return nil, false
		}
		elem, ok := Combine(at.Elem, bt.Elem)
		if !ok {
			return nil, false
		}
		return TList{Elem: elem}, true
	}
	return nil, false
}
