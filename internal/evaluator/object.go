package evaluator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/blisp/internal/typesystem"
)

type ObjectType string

const (
	INTEGER_OBJ  = "INTEGER"
	UINTEGER_OBJ = "UINTEGER"
	FLOAT_OBJ    = "FLOAT"
	BOOLEAN_OBJ  = "BOOLEAN"
	CHAR_OBJ     = "CHAR"
	UNIT_OBJ     = "UNIT"
	LIST_OBJ     = "LIST"
)

type Object interface {
	Type() ObjectType
	Inspect() string
	RuntimeType() typesystem.Type // Returns the type system representation
}

// Integer
type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return fmt.Sprintf("%d", i.Value) }
func (i *Integer) RuntimeType() typesystem.Type {
	return typesystem.IntType
}

// UInteger
type UInteger struct {
	Value uint64
}

func (u *UInteger) Type() ObjectType { return UINTEGER_OBJ }
func (u *UInteger) Inspect() string  { return fmt.Sprintf("%d", u.Value) }
func (u *UInteger) RuntimeType() typesystem.Type {
	return typesystem.UintType
}

// Float
type Float struct {
	Value float64
}

func (f *Float) Type() ObjectType { return FLOAT_OBJ }
func (f *Float) Inspect() string {
	s := strconv.FormatFloat(f.Value, 'g', -1, 64)
	// Keep floats visually distinct from ints (4 -> "4.0")
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
func (f *Float) RuntimeType() typesystem.Type {
	return typesystem.FloatType
}

// Boolean
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return fmt.Sprintf("%t", b.Value) }
func (b *Boolean) RuntimeType() typesystem.Type {
	return typesystem.BoolType
}

// Char is a single byte.
type Char struct {
	Value byte
}

func (c *Char) Type() ObjectType { return CHAR_OBJ }
func (c *Char) Inspect() string  { return fmt.Sprintf("'%c'", c.Value) }
func (c *Char) RuntimeType() typesystem.Type {
	return typesystem.CharType
}

// Unit
type Unit struct{}

func (u *Unit) Type() ObjectType { return UNIT_OBJ }
func (u *Unit) Inspect() string  { return "()" }
func (u *Unit) RuntimeType() typesystem.Type {
	return typesystem.UnitType
}

// List holds homogeneous elements; ElemType is fixed at resolution and
// never re-checked at runtime.
type List struct {
	ElemType typesystem.Type
	Elements []Object
}

func (l *List) Type() ObjectType { return LIST_OBJ }
func (l *List) Inspect() string {
	// List<Char> renders as a string literal
	if typesystem.Equal(l.ElemType, typesystem.CharType) {
		var sb strings.Builder
		sb.WriteByte('"')
		for _, el := range l.Elements {
			sb.WriteByte(el.(*Char).Value)
		}
		sb.WriteByte('"')
		return sb.String()
	}
	parts := make([]string, len(l.Elements))
	for i, el := range l.Elements {
		parts[i] = el.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (l *List) RuntimeType() typesystem.Type {
	return typesystem.TList{Elem: l.ElemType}
}

// StringToList builds the runtime representation of a string literal:
// a List<Char> over the raw bytes.
func StringToList(s string) *List {
	elems := make([]Object, len(s))
	for i := 0; i < len(s); i++ {
		elems[i] = &Char{Value: s[i]}
	}
	return &List{ElemType: typesystem.CharType, Elements: elems}
}

// ListToString flattens a List<Char> back to a Go string.
func ListToString(l *List) string {
	var sb strings.Builder
	for _, el := range l.Elements {
		sb.WriteByte(el.(*Char).Value)
	}
	return sb.String()
}
