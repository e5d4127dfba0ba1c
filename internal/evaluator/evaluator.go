package evaluator

import (
	"bufio"
	"context"
	"io"
	"os"
	"strconv"

	"github.com/funvibe/blisp/internal/ast"
	"github.com/funvibe/blisp/internal/config"
	"github.com/funvibe/blisp/internal/diagnostics"
	"github.com/funvibe/blisp/internal/token"
	"github.com/funvibe/blisp/internal/typesystem"
)

// LineReader is the abstract input collaborator behind the read builtin.
// ReadLine blocks until a line is available and returns it without the
// trailing newline; io.EOF signals exhausted input.
type LineReader interface {
	ReadLine() (string, error)
}

// BufioLineReader adapts any io.Reader (normally stdin) to LineReader.
type BufioLineReader struct {
	scanner *bufio.Scanner
}

func NewLineReader(r io.Reader) *BufioLineReader {
	return &BufioLineReader{scanner: bufio.NewScanner(r)}
}

func (b *BufioLineReader) ReadLine() (string, error) {
	if !b.scanner.Scan() {
		if err := b.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return b.scanner.Text(), nil
}

type Evaluator struct {
	// Context for cancellation; checked between while iterations.
	Context context.Context

	Out io.Writer
	In  LineReader

	// TypeMap from the resolver — the concrete type of every node. The
	// evaluator never re-checks types; it only consults the map to
	// materialize literals and list element types.
	TypeMap map[ast.Node]typesystem.Type

	// MaxSteps bounds evaluation when > 0; the step counter advances on
	// every evaluated node. This is the external divergence bound of the
	// while loop — the language itself has none.
	MaxSteps int64

	steps int64
}

func New() *Evaluator {
	return &Evaluator{
		Context: context.Background(),
		Out:     os.Stdout,
		In:      NewLineReader(os.Stdin),
	}
}

// Eval walks the type-annotated AST. Ordinary calls are applicative-order,
// left to right; the special forms deviate as documented on evalCall.
func (e *Evaluator) Eval(node ast.Node, env *Environment) (Object, *diagnostics.DiagnosticError) {
	e.steps++
	if e.MaxSteps > 0 && e.steps > e.MaxSteps {
		return nil, diagnostics.NewError(diagnostics.ErrR004, tokenOf(node), e.MaxSteps)
	}

	switch n := node.(type) {
	case *ast.Program:
		return e.Eval(n.Expr, env)
	case *ast.NumberLiteral:
		return e.evalNumber(n)
	case *ast.CharLiteral:
		return &Char{Value: n.Value}, nil
	case *ast.StringLiteral:
		return StringToList(n.Value), nil
	case *ast.BoolLiteral:
		return &Boolean{Value: n.Value}, nil
	case *ast.UnitLiteral:
		return &Unit{}, nil
	case *ast.Identifier:
		val, ok := env.Value(n.Value)
		if !ok {
			return nil, diagnostics.NewError(diagnostics.ErrR003, n.Token, n.Value)
		}
		return val, nil
	case *ast.ListLiteral:
		return e.evalList(n, env)
	case *ast.CallExpression:
		return e.evalCall(n, env)
	}
	return nil, diagnostics.NewError(diagnostics.ErrR005, tokenOf(node), "unknown node kind")
}

// evalNumber materializes a literal at the concrete type the resolver
// pinned for it. The resolver already range-checked the digits, so a
// strconv failure here is an internal inconsistency.
func (e *Evaluator) evalNumber(n *ast.NumberLiteral) (Object, *diagnostics.DiagnosticError) {
	t := e.TypeMap[n]
	switch {
	case typesystem.Equal(t, typesystem.IntType):
		text := n.IntPart
		if n.Negative {
			text = "-" + text
		}
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, diagnostics.NewError(diagnostics.ErrR005, n.Token, "literal out of range")
		}
		return &Integer{Value: v}, nil
	case typesystem.Equal(t, typesystem.UintType):
		v, err := strconv.ParseUint(n.IntPart, 10, 64)
		if err != nil {
			return nil, diagnostics.NewError(diagnostics.ErrR005, n.Token, "literal out of range")
		}
		return &UInteger{Value: v}, nil
	case typesystem.Equal(t, typesystem.FloatType):
		text := n.Text()
		if n.Negative {
			text = "-" + text
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, diagnostics.NewError(diagnostics.ErrR005, n.Token, "literal out of range")
		}
		return &Float{Value: v}, nil
	case typesystem.Equal(t, typesystem.CharType):
		v, err := strconv.ParseUint(n.IntPart, 10, 8)
		if err != nil {
			return nil, diagnostics.NewError(diagnostics.ErrR005, n.Token, "literal out of range")
		}
		return &Char{Value: byte(v)}, nil
	}
	return nil, diagnostics.NewError(diagnostics.ErrR005, n.Token, "literal left unresolved")
}

func (e *Evaluator) evalList(list *ast.ListLiteral, env *Environment) (Object, *diagnostics.DiagnosticError) {
	lt := e.TypeMap[list].(typesystem.TList)
	elems := make([]Object, len(list.Elements))
	for i, el := range list.Elements {
		v, err := e.Eval(el, env)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return &List{ElemType: lt.Elem, Elements: elems}, nil
}

// evalCall executes a builtin. Special forms deviate from applicative
// order: if evaluates exactly one branch, while re-evaluates its condition
// before each iteration, def/init/set mutate the environment, eval
// discards its argument's value. && and || do NOT short-circuit — both
// operands always evaluate.
func (e *Evaluator) evalCall(call *ast.CallExpression, env *Environment) (Object, *diagnostics.DiagnosticError) {
	switch call.Operator {
	case config.IfFuncName:
		cond, err := e.Eval(call.Args[0], env)
		if err != nil {
			return nil, err
		}
		// The untaken branch is never evaluated (it was still type-checked).
		if cond.(*Boolean).Value {
			return e.Eval(call.Args[1], env)
		}
		return e.Eval(call.Args[2], env)

	case config.WhileFuncName:
		for {
			select {
			case <-e.Context.Done():
				return nil, diagnostics.NewError(diagnostics.ErrR005, call.Token, e.Context.Err())
			default:
			}
			cond, err := e.Eval(call.Args[0], env)
			if err != nil {
				return nil, err
			}
			if !cond.(*Boolean).Value {
				return &Unit{}, nil
			}
			if _, err := e.Eval(call.Args[1], env); err != nil {
				return nil, err
			}
		}

	case config.DefFuncName, config.SetFuncName:
		ident := call.Args[0].(*ast.Identifier)
		val, err := e.Eval(call.Args[1], env)
		if err != nil {
			return nil, err
		}
		// The binding exists with its fixed type: resolution installed it.
		env.SetValue(ident.Value, val)
		return &Unit{}, nil

	case config.InitFuncName:
		// Declaration happened at resolution; nothing to execute.
		return &Unit{}, nil

	case config.EvalFuncName:
		if _, err := e.Eval(call.Args[0], env); err != nil {
			return nil, err
		}
		return &Unit{}, nil

	case config.ReadFuncName:
		arg, err := e.Eval(call.Args[0], env)
		if err != nil {
			return nil, err
		}
		// A String argument is written out as a prompt; () just blocks.
		if l, ok := arg.(*List); ok {
			if _, werr := io.WriteString(e.Out, ListToString(l)); werr != nil {
				return nil, diagnostics.NewError(diagnostics.ErrR005, call.Token, werr)
			}
		}
		line, rerr := e.In.ReadLine()
		if rerr != nil {
			return nil, diagnostics.NewError(diagnostics.ErrR002, call.Token)
		}
		return StringToList(line), nil
	}

	// Ordinary call: all arguments evaluate left to right first.
	args := make([]Object, len(call.Args))
	for i, a := range call.Args {
		v, err := e.Eval(a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return e.applyBuiltin(call, args)
}

func tokenOf(node ast.Node) token.Token {
	if tp, ok := node.(ast.TokenProvider); ok {
		return tp.GetToken()
	}
	return token.Token{}
}
