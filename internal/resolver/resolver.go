// Package resolver implements BLisp's static type resolution: a single
// depth-first, left-to-right pass that narrows every literal through the
// coercion lattice to a concrete type, unifies list elements, dispatches
// builtin calls over the constrained signature table, and tracks variable
// bindings in the shared environment without executing any side effects.
// Resolution stops at the first unresolvable node.
package resolver

import (
	"strconv"
	"strings"

	"github.com/funvibe/blisp/internal/ast"
	"github.com/funvibe/blisp/internal/config"
	"github.com/funvibe/blisp/internal/diagnostics"
	"github.com/funvibe/blisp/internal/evaluator"
	"github.com/funvibe/blisp/internal/typesystem"
)

type Resolver struct {
	env     *evaluator.Environment
	typeMap map[ast.Node]typesystem.Type
}

func New(env *evaluator.Environment) *Resolver {
	return &Resolver{
		env:     env,
		typeMap: make(map[ast.Node]typesystem.Type),
	}
}

// Resolve type-checks the program. On success every expression node has a
// concrete type in the returned map; no literal type survives.
func (r *Resolver) Resolve(prog *ast.Program) (map[ast.Node]typesystem.Type, *diagnostics.DiagnosticError) {
	t, err := r.resolveExpr(prog.Expr)
	if err != nil {
		return nil, err
	}
	// Top level is the last forcing point for leftover flexibility.
	r.pin(prog.Expr, typesystem.Default(t))
	r.typeMap[prog] = r.typeMap[prog.Expr]
	return r.typeMap, nil
}

// pin records the final concrete type of a node and descends into children
// whose types were still floating (list elements). Call results and
// variable references are concrete the moment they resolve, so there is
// nothing to descend into.
func (r *Resolver) pin(node ast.Expression, t typesystem.Type) {
	r.typeMap[node] = t
	if list, ok := node.(*ast.ListLiteral); ok {
		lt := t.(typesystem.TList)
		for _, el := range list.Elements {
			r.pin(el, lt.Elem)
		}
	}
}

// resolveExpr returns the node's type, which may still be a flexible
// literal type (or a list of one); the parent decides when to pin.
func (r *Resolver) resolveExpr(node ast.Expression) (typesystem.Type, *diagnostics.DiagnosticError) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return r.resolveNumber(n)
	case *ast.CharLiteral:
		r.typeMap[n] = typesystem.CharType
		return typesystem.CharType, nil
	case *ast.StringLiteral:
		r.typeMap[n] = typesystem.StringType
		return typesystem.StringType, nil
	case *ast.BoolLiteral:
		r.typeMap[n] = typesystem.BoolType
		return typesystem.BoolType, nil
	case *ast.UnitLiteral:
		r.typeMap[n] = typesystem.UnitType
		return typesystem.UnitType, nil
	case *ast.Identifier:
		b, ok := r.env.Lookup(n.Value)
		if !ok {
			return nil, diagnostics.NewError(diagnostics.ErrT005, n.Token, n.Value)
		}
		// A bound variable's type is fixed; it never re-enters the lattice.
		r.typeMap[n] = b.Type
		return b.Type, nil
	case *ast.TypeName:
		return nil, diagnostics.NewError(diagnostics.ErrT009, n.Token, n.Token.Lexeme)
	case *ast.ListLiteral:
		return r.resolveList(n)
	case *ast.CallExpression:
		return r.resolveCall(n)
	}
	return nil, diagnostics.NewError(diagnostics.ErrT003, node.GetToken(), node.TokenLiteral(), "unknown node")
}

// resolveNumber assigns the lattice type, or the forced concrete type when
// a suffix is present. A suffix that conflicts with the literal's shape
// (-1u, 1.0u, 2.5c, -3c) is rejected here: NegNum is not uint-coercible and
// a decimal point pins Float. The digit string is also range-checked here,
// so the evaluator's strconv calls cannot fail.
func (r *Resolver) resolveNumber(n *ast.NumberLiteral) (typesystem.Type, *diagnostics.DiagnosticError) {
	outOfRange := func() *diagnostics.DiagnosticError {
		return diagnostics.NewError(diagnostics.ErrT011, n.Token, n.Token.Lexeme)
	}

	switch n.Suffix {
	case 'u':
		if n.Negative || n.HasDot {
			return nil, diagnostics.NewError(diagnostics.ErrT007, n.Token, n.Token.Lexeme, "u")
		}
		if _, err := strconv.ParseUint(n.IntPart, 10, 64); err != nil {
			return nil, outOfRange()
		}
		r.typeMap[n] = typesystem.UintType
		return typesystem.UintType, nil
	case 'f':
		if _, err := strconv.ParseFloat(n.Text(), 64); err != nil {
			return nil, outOfRange()
		}
		r.typeMap[n] = typesystem.FloatType
		return typesystem.FloatType, nil
	case 'c':
		if n.Negative || n.HasDot {
			return nil, diagnostics.NewError(diagnostics.ErrT007, n.Token, n.Token.Lexeme, "c")
		}
		r.typeMap[n] = typesystem.CharType
		return typesystem.CharType, nil
	}
	if n.HasDot {
		if _, err := strconv.ParseFloat(n.Text(), 64); err != nil {
			return nil, outOfRange()
		}
		return typesystem.TLit{Class: typesystem.Flt}, nil
	}
	if n.Negative {
		if _, err := strconv.ParseInt("-"+n.IntPart, 10, 64); err != nil {
			return nil, outOfRange()
		}
		return typesystem.TLit{Class: typesystem.NegNum}, nil
	}
	if _, err := strconv.ParseInt(n.IntPart, 10, 64); err != nil {
		// Too big for Int. It may still fit Uint, with no flexibility left;
		// past that it fits nothing.
		if _, uerr := strconv.ParseUint(n.IntPart, 10, 64); uerr != nil {
			return nil, outOfRange()
		}
		r.typeMap[n] = typesystem.UintType
		return typesystem.UintType, nil
	}
	return typesystem.TLit{Class: typesystem.Num}, nil
}

// resolveList scans elements left to right, keeping the tightest common
// type. A concrete element pins the running type; literal elements widen
// only along lattice edges.
func (r *Resolver) resolveList(list *ast.ListLiteral) (typesystem.Type, *diagnostics.DiagnosticError) {
	var running typesystem.Type
	for _, el := range list.Elements {
		t, err := r.resolveExpr(el)
		if err != nil {
			return nil, err
		}
		if running == nil {
			running = t
			continue
		}
		combined, ok := typesystem.Combine(running, t)
		if !ok {
			return nil, diagnostics.NewError(diagnostics.ErrT001, el.GetToken(), running.String(), t.String())
		}
		running = combined
	}
	return typesystem.TList{Elem: running}, nil
}

func (r *Resolver) resolveCall(call *ast.CallExpression) (typesystem.Type, *diagnostics.DiagnosticError) {
	sig, ok := typesystem.Lookup(call.Operator)
	if !ok {
		return nil, diagnostics.NewError(diagnostics.ErrT003, call.Token, call.Operator, "unknown operator")
	}
	if len(call.Args) != sig.Arity() {
		return nil, diagnostics.NewError(diagnostics.ErrT004, call.Token, call.Operator, sig.Arity(), len(call.Args))
	}

	if sig.Special {
		return r.resolveSpecialForm(call)
	}
	return r.resolveGenericCall(call, sig)
}

// resolveGenericCall matches the arguments against the signature template:
// fixed parameters demand coercion to their type, variable parameters bind
// and refine a substitution left to right (so the leftmost flexible
// argument's default wins ties), and remaining flexibility defaults in the
// constraint's preference order.
func (r *Resolver) resolveGenericCall(call *ast.CallExpression, sig typesystem.Signature) (typesystem.Type, *diagnostics.DiagnosticError) {
	argTypes := make([]typesystem.Type, len(call.Args))
	for i, arg := range call.Args {
		t, err := r.resolveExpr(arg)
		if err != nil {
			return nil, err
		}
		argTypes[i] = t
	}

	noMatch := func() *diagnostics.DiagnosticError {
		parts := make([]string, len(argTypes))
		for i, t := range argTypes {
			parts[i] = typesystem.Default(t).String()
		}
		return diagnostics.NewError(diagnostics.ErrT003, call.Token, call.Operator, strings.Join(parts, ", "))
	}

	subst := make(map[string]typesystem.Type)
	for i, param := range sig.Params {
		if param.Fixed != nil {
			if _, ok := typesystem.Combine(argTypes[i], param.Fixed); !ok {
				return nil, noMatch()
			}
			continue
		}
		core, ok := peelLists(argTypes[i], param.ListDepth)
		if !ok {
			return nil, noMatch()
		}
		if bound, exists := subst[param.Var]; exists {
			combined, ok := typesystem.Combine(bound, core)
			if !ok {
				return nil, noMatch()
			}
			subst[param.Var] = combined
		} else {
			subst[param.Var] = core
		}
	}

	// Collapse each variable to a concrete type within its constraint.
	for name, bound := range subst {
		final, ok := collapseVar(bound, sig.Constraints[name])
		if !ok {
			return nil, noMatch()
		}
		subst[name] = final
	}

	// Pin every argument to its final parameter type.
	for i, param := range sig.Params {
		r.pin(call.Args[i], instantiate(param, subst))
	}

	ret := instantiate(sig.Return, subst)
	r.typeMap[call] = ret
	return ret, nil
}

// peelLists removes depth levels of List from t; fails if t is not a list
// at some level (a bare literal can never be a list).
func peelLists(t typesystem.Type, depth int) (typesystem.Type, bool) {
	for d := 0; d < depth; d++ {
		lt, ok := t.(typesystem.TList)
		if !ok {
			return nil, false
		}
		t = lt.Elem
	}
	return t, true
}

// collapseVar turns a (possibly flexible) binding into a concrete type
// admitted by the constraint. Constraint order is the literal-default
// preference order; a nil constraint admits any concrete type via the
// lattice default.
func collapseVar(bound typesystem.Type, allowed []typesystem.Type) (typesystem.Type, bool) {
	if bound.Concrete() {
		if allowed == nil {
			return bound, true
		}
		for _, cand := range allowed {
			if typesystem.Equal(bound, cand) {
				return bound, true
			}
		}
		return nil, false
	}
	if lit, ok := bound.(typesystem.TLit); ok {
		if allowed == nil {
			return typesystem.Default(lit), true
		}
		for _, cand := range allowed {
			if con, ok := cand.(typesystem.TCon); ok && typesystem.CoercibleTo(lit.Class, con) {
				return con, true
			}
		}
		return nil, false
	}
	// A list whose element type is still flexible.
	defaulted := typesystem.Default(bound)
	if allowed == nil {
		return defaulted, true
	}
	for _, cand := range allowed {
		if typesystem.Equal(defaulted, cand) {
			return defaulted, true
		}
	}
	return nil, false
}

// instantiate substitutes a signature parameter to a concrete type.
func instantiate(param typesystem.SigParam, subst map[string]typesystem.Type) typesystem.Type {
	if param.Fixed != nil {
		return param.Fixed
	}
	t := subst[param.Var]
	for d := 0; d < param.ListDepth; d++ {
		t = typesystem.TList{Elem: t}
	}
	return t
}

// resolveSpecialForm handles the builtins whose typing deviates from plain
// left-to-right value application: if, while, def, init, set, eval.
func (r *Resolver) resolveSpecialForm(call *ast.CallExpression) (typesystem.Type, *diagnostics.DiagnosticError) {
	switch call.Operator {
	case config.IfFuncName:
		if err := r.resolveCondition(call, call.Args[0]); err != nil {
			return nil, err
		}
		thenT, err := r.resolveExpr(call.Args[1])
		if err != nil {
			return nil, err
		}
		elseT, err := r.resolveExpr(call.Args[2])
		if err != nil {
			return nil, err
		}
		combined, ok := typesystem.Combine(thenT, elseT)
		if !ok {
			return nil, diagnostics.NewError(diagnostics.ErrT002, call.Token, thenT.String(), elseT.String())
		}
		// Branches must agree on one concrete type; two still-flexible
		// branches default here.
		result := typesystem.Default(combined)
		r.pin(call.Args[1], result)
		r.pin(call.Args[2], result)
		r.typeMap[call] = result
		return result, nil

	case config.WhileFuncName:
		if err := r.resolveCondition(call, call.Args[0]); err != nil {
			return nil, err
		}
		bodyT, err := r.resolveExpr(call.Args[1])
		if err != nil {
			return nil, err
		}
		r.pin(call.Args[1], typesystem.Default(bodyT))
		r.typeMap[call] = typesystem.UnitType
		return typesystem.UnitType, nil

	case config.DefFuncName:
		ident, err := r.identArg(call, 0)
		if err != nil {
			return nil, err
		}
		valT, verr := r.resolveExpr(call.Args[1])
		if verr != nil {
			return nil, verr
		}
		t := typesystem.Default(valT)
		r.pin(call.Args[1], t)
		if !r.env.Declare(ident.Value, t) {
			return nil, diagnostics.NewError(diagnostics.ErrT006, ident.Token, ident.Value)
		}
		r.typeMap[ident] = t
		r.typeMap[call] = typesystem.UnitType
		return typesystem.UnitType, nil

	case config.InitFuncName:
		ident, err := r.identArg(call, 0)
		if err != nil {
			return nil, err
		}
		tn, ok := call.Args[1].(*ast.TypeName)
		if !ok {
			return nil, diagnostics.NewError(diagnostics.ErrP001, call.Args[1].GetToken(), call.Args[1].TokenLiteral(), "type name")
		}
		t, ok := typesystem.ByName(tn.Value)
		if !ok {
			return nil, diagnostics.NewError(diagnostics.ErrT009, tn.Token, tn.Value)
		}
		if !r.env.Declare(ident.Value, t) {
			return nil, diagnostics.NewError(diagnostics.ErrT006, ident.Token, ident.Value)
		}
		r.typeMap[ident] = t
		r.typeMap[tn] = t
		r.typeMap[call] = typesystem.UnitType
		return typesystem.UnitType, nil

	case config.SetFuncName:
		ident, err := r.identArg(call, 0)
		if err != nil {
			return nil, err
		}
		b, ok := r.env.Lookup(ident.Value)
		if !ok {
			return nil, diagnostics.NewError(diagnostics.ErrT005, ident.Token, ident.Value)
		}
		valT, verr := r.resolveExpr(call.Args[1])
		if verr != nil {
			return nil, verr
		}
		// The new value coerces to the binding's fixed type or fails.
		combined, ok := typesystem.Combine(valT, b.Type)
		if !ok {
			return nil, diagnostics.NewError(diagnostics.ErrT008, call.Token,
				typesystem.Default(valT).String(), ident.Value, b.Type.String())
		}
		r.pin(call.Args[1], combined)
		r.typeMap[ident] = b.Type
		r.typeMap[call] = typesystem.UnitType
		return typesystem.UnitType, nil

	case config.EvalFuncName:
		t, err := r.resolveExpr(call.Args[0])
		if err != nil {
			return nil, err
		}
		r.pin(call.Args[0], typesystem.Default(t))
		r.typeMap[call] = typesystem.UnitType
		return typesystem.UnitType, nil
	}

	return nil, diagnostics.NewError(diagnostics.ErrT003, call.Token, call.Operator, "unknown special form")
}

// resolveCondition requires the argument to resolve to Bool.
func (r *Resolver) resolveCondition(call *ast.CallExpression, arg ast.Expression) *diagnostics.DiagnosticError {
	t, err := r.resolveExpr(arg)
	if err != nil {
		return err
	}
	if _, ok := typesystem.Combine(t, typesystem.BoolType); !ok {
		return diagnostics.NewError(diagnostics.ErrT003, call.Token, call.Operator,
			typesystem.Default(t).String())
	}
	r.pin(arg, typesystem.BoolType)
	return nil
}

func (r *Resolver) identArg(call *ast.CallExpression, i int) (*ast.Identifier, *diagnostics.DiagnosticError) {
	ident, ok := call.Args[i].(*ast.Identifier)
	if !ok {
		return nil, diagnostics.NewError(diagnostics.ErrT010, call.Args[i].GetToken(), i+1, call.Operator)
	}
	return ident, nil
}
