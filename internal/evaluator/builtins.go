package evaluator

import (
	"io"

	"github.com/funvibe/blisp/internal/ast"
	"github.com/funvibe/blisp/internal/config"
	"github.com/funvibe/blisp/internal/diagnostics"
	"github.com/funvibe/blisp/internal/typesystem"
)

// applyBuiltin executes an ordinary (non-special-form) builtin on already
// evaluated arguments. Argument types were fixed at resolution and are not
// re-checked here; arithmetic on Int/Uint wraps on overflow by design.
func (e *Evaluator) applyBuiltin(call *ast.CallExpression, args []Object) (Object, *diagnostics.DiagnosticError) {
	switch call.Operator {
	case config.AddFuncName, config.SubFuncName, config.MulFuncName, config.DivFuncName:
		return e.evalArith(call, args[0], args[1])

	case config.EqFuncName:
		return &Boolean{Value: objectsEqual(args[0], args[1])}, nil
	case config.NeqFuncName:
		return &Boolean{Value: !objectsEqual(args[0], args[1])}, nil
	case config.LeqFuncName:
		return &Boolean{Value: compareObjects(args[0], args[1]) <= 0}, nil
	case config.GeqFuncName:
		return &Boolean{Value: compareObjects(args[0], args[1]) >= 0}, nil
	case config.LtFuncName:
		return &Boolean{Value: compareObjects(args[0], args[1]) < 0}, nil
	case config.GtFuncName:
		return &Boolean{Value: compareObjects(args[0], args[1]) > 0}, nil

	case config.AndFuncName:
		return &Boolean{Value: args[0].(*Boolean).Value && args[1].(*Boolean).Value}, nil
	case config.OrFuncName:
		return &Boolean{Value: args[0].(*Boolean).Value || args[1].(*Boolean).Value}, nil

	case config.ConcatFuncName:
		a, b := args[0].(*List), args[1].(*List)
		out := e.resultList(call)
		out.Elements = make([]Object, 0, len(a.Elements)+len(b.Elements))
		out.Elements = append(out.Elements, a.Elements...)
		out.Elements = append(out.Elements, b.Elements...)
		return out, nil

	case config.PrependFuncName:
		rest := args[1].(*List)
		out := e.resultList(call)
		out.Elements = make([]Object, 0, len(rest.Elements)+1)
		out.Elements = append(out.Elements, args[0])
		out.Elements = append(out.Elements, rest.Elements...)
		return out, nil

	case config.TakeFuncName:
		n := args[0].(*UInteger).Value
		list := args[1].(*List)
		if n > uint64(len(list.Elements)) {
			n = uint64(len(list.Elements))
		}
		out := e.resultList(call)
		out.Elements = append([]Object{}, list.Elements[:n]...)
		return out, nil

	case config.SplitFuncName:
		n := args[0].(*UInteger).Value
		list := args[1].(*List)
		if n > uint64(len(list.Elements)) {
			n = uint64(len(list.Elements))
		}
		inner := e.TypeMap[call].(typesystem.TList).Elem.(typesystem.TList)
		taken := &List{ElemType: inner.Elem, Elements: append([]Object{}, list.Elements[:n]...)}
		rest := &List{ElemType: inner.Elem, Elements: append([]Object{}, list.Elements[n:]...)}
		return &List{ElemType: inner, Elements: []Object{taken, rest}}, nil

	case config.PrintFuncName:
		l := args[0].(*List)
		if _, err := io.WriteString(e.Out, ListToString(l)); err != nil {
			return nil, diagnostics.NewError(diagnostics.ErrR005, call.Token, err)
		}
		// Identity pass-through enables chaining.
		return l, nil

	case config.ToStringFuncName:
		return StringToList(displayString(args[0])), nil
	}

	return nil, diagnostics.NewError(diagnostics.ErrR005, call.Token, "unknown builtin "+call.Operator)
}

// resultList allocates the result list with the element type the resolver
// pinned for this call.
func (e *Evaluator) resultList(call *ast.CallExpression) *List {
	lt := e.TypeMap[call].(typesystem.TList)
	return &List{ElemType: lt.Elem}
}

func (e *Evaluator) evalArith(call *ast.CallExpression, a, b Object) (Object, *diagnostics.DiagnosticError) {
	op := call.Operator
	switch av := a.(type) {
	case *Integer:
		bv := b.(*Integer).Value
		switch op {
		case config.AddFuncName:
			return &Integer{Value: av.Value + bv}, nil
		case config.SubFuncName:
			return &Integer{Value: av.Value - bv}, nil
		case config.MulFuncName:
			return &Integer{Value: av.Value * bv}, nil
		default:
			if bv == 0 {
				return nil, diagnostics.NewError(diagnostics.ErrR001, call.Token)
			}
			// Truncates toward zero.
			return &Integer{Value: av.Value / bv}, nil
		}
	case *UInteger:
		bv := b.(*UInteger).Value
		switch op {
		case config.AddFuncName:
			return &UInteger{Value: av.Value + bv}, nil
		case config.SubFuncName:
			return &UInteger{Value: av.Value - bv}, nil
		case config.MulFuncName:
			return &UInteger{Value: av.Value * bv}, nil
		default:
			if bv == 0 {
				return nil, diagnostics.NewError(diagnostics.ErrR001, call.Token)
			}
			return &UInteger{Value: av.Value / bv}, nil
		}
	case *Float:
		bv := b.(*Float).Value
		switch op {
		case config.AddFuncName:
			return &Float{Value: av.Value + bv}, nil
		case config.SubFuncName:
			return &Float{Value: av.Value - bv}, nil
		case config.MulFuncName:
			return &Float{Value: av.Value * bv}, nil
		default:
			if bv == 0 {
				return nil, diagnostics.NewError(diagnostics.ErrR001, call.Token)
			}
			return &Float{Value: av.Value / bv}, nil
		}
	}
	return nil, diagnostics.NewError(diagnostics.ErrR005, call.Token, "arithmetic on non-numeric value")
}

// objectsEqual is deep structural equality over same-typed values.
func objectsEqual(a, b Object) bool {
	switch av := a.(type) {
	case *Integer:
		return av.Value == b.(*Integer).Value
	case *UInteger:
		return av.Value == b.(*UInteger).Value
	case *Float:
		return av.Value == b.(*Float).Value
	case *Boolean:
		return av.Value == b.(*Boolean).Value
	case *Char:
		return av.Value == b.(*Char).Value
	case *Unit:
		return true
	case *List:
		bl := b.(*List)
		if len(av.Elements) != len(bl.Elements) {
			return false
		}
		for i := range av.Elements {
			if !objectsEqual(av.Elements[i], bl.Elements[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// compareObjects orders two same-typed values: numerically for numbers and
// chars, false < true for booleans, lexicographically for lists, and all
// units equal.
func compareObjects(a, b Object) int {
	switch av := a.(type) {
	case *Integer:
		return cmpInt64(av.Value, b.(*Integer).Value)
	case *UInteger:
		return cmpUint64(av.Value, b.(*UInteger).Value)
	case *Float:
		bv := b.(*Float).Value
		switch {
		case av.Value < bv:
			return -1
		case av.Value > bv:
			return 1
		}
		return 0
	case *Char:
		return cmpUint64(uint64(av.Value), uint64(b.(*Char).Value))
	case *Boolean:
		bv := b.(*Boolean).Value
		switch {
		case !av.Value && bv:
			return -1
		case av.Value && !bv:
			return 1
		}
		return 0
	case *Unit:
		return 0
	case *List:
		bl := b.(*List)
		n := len(av.Elements)
		if len(bl.Elements) < n {
			n = len(bl.Elements)
		}
		for i := 0; i < n; i++ {
			if c := compareObjects(av.Elements[i], bl.Elements[i]); c != 0 {
				return c
			}
		}
		return cmpInt64(int64(len(av.Elements)), int64(len(bl.Elements)))
	}
	return 0
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// displayString renders a value for tostring: strings flatten to their raw
// bytes, chars to the bare character, everything else to its Inspect form.
func displayString(obj Object) string {
	switch o := obj.(type) {
	case *List:
		if typesystem.Equal(o.ElemType, typesystem.CharType) {
			return ListToString(o)
		}
		return o.Inspect()
	case *Char:
		return string(o.Value)
	}
	return obj.Inspect()
}
