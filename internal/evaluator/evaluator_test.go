package evaluator_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/funvibe/blisp/internal/diagnostics"
	"github.com/funvibe/blisp/internal/evaluator"
	"github.com/funvibe/blisp/internal/lexer"
	"github.com/funvibe/blisp/internal/parser"
	"github.com/funvibe/blisp/internal/pipeline"
	"github.com/funvibe/blisp/internal/resolver"
)

type scriptedInput struct {
	lines []string
}

func (s *scriptedInput) ReadLine() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

type runOpts struct {
	input    []string
	maxSteps int64
	ctx      context.Context
}

func run(t *testing.T, source string, opts runOpts) (evaluator.Object, string, *diagnostics.DiagnosticError) {
	t.Helper()
	toks, lerr := lexer.New(source).Tokenize()
	if lerr != nil {
		t.Fatalf("lexing %q: %s", source, lerr)
	}
	pctx := pipeline.NewPipelineContext(source)
	prog := parser.New(toks, pctx).ParseProgram()
	if len(pctx.Errors) > 0 {
		t.Fatalf("parsing %q: %s", source, pctx.Errors[0])
	}

	env := evaluator.NewEnvironment()
	typeMap, terr := resolver.New(env).Resolve(prog)
	if terr != nil {
		t.Fatalf("resolving %q: %s", source, terr)
	}

	var out bytes.Buffer
	ev := evaluator.New()
	ev.TypeMap = typeMap
	ev.Out = &out
	ev.In = &scriptedInput{lines: opts.input}
	ev.MaxSteps = opts.maxSteps
	if opts.ctx != nil {
		ev.Context = opts.ctx
	}

	result, err := ev.Eval(prog, env)
	return result, out.String(), err
}

func eval(t *testing.T, source string) evaluator.Object {
	t.Helper()
	result, _, err := run(t, source, runOpts{})
	if err != nil {
		t.Fatalf("evaluating %q: %s", source, err)
	}
	return result
}

func TestEvalValues(t *testing.T) {
	tests := []struct {
		input string
		want  string // Inspect form
	}{
		{`(1)`, "1"},
		{`(-5)`, "-5"},
		{`(3u)`, "3"},
		{`(18446744073709551615)`, "18446744073709551615"},
		{`(-9223372036854775808)`, "-9223372036854775808"},
		{`(1.5)`, "1.5"},
		{`(97c)`, "'a'"},
		{`('z')`, "'z'"},
		{`("hi")`, `"hi"`},
		{`(true)`, "true"},
		{`(())`, "()"},
		{`([1 2 3])`, "[1, 2, 3]"},
		{`([[1.0] [2.5]])`, "[[1.0], [2.5]]"},

		{`(+ 1 2)`, "3"},
		{`(+ 1 2u)`, "3"},
		{`(- 1 3)`, "-2"},
		{`(* 6 7)`, "42"},
		{`(/ 10 3)`, "3"},
		{`(/ -7 2)`, "-3"}, // truncates toward zero
		{`(/ 9.0 2.0)`, "4.5"},
		{`(+ 2.0 2.0)`, "4.0"},

		{`(== 1 1)`, "true"},
		{`(<> 1 2)`, "true"},
		{`(< "abc" "abd")`, "true"},
		{`(<= "ab" "abc")`, "true"},
		{`(> 'b' 'a')`, "true"},
		{`(>= 2u 2u)`, "true"},
		{`(== () ())`, "true"},
		{`(< false true)`, "true"},
		{`(&& true false)`, "false"},
		{`(|| true false)`, "true"},

		{`(++ [1 2] [3])`, "[1, 2, 3]"},
		{`(++ "ab" "cd")`, `"abcd"`},
		{`(: 0 [1 2])`, "[0, 1, 2]"},
		{`(: 'a' "bc")`, `"abc"`},
		{`(take 2u [1 2 3])`, "[1, 2]"},
		{`(take 2 [1,2,3,4,5])`, "[1, 2]"},
		{`(take 5u [1 2])`, "[1, 2]"}, // clamps past the end
		{`(take 0u [1 2])`, "[]"},
		{`(split 1u "abc")`, `["a", "bc"]`},
		{`(split 2 [1 2 3])`, "[[1, 2], [3]]"},
		{`(split 9u [1 2])`, "[[1, 2], []]"},

		{`(tostring 42)`, `"42"`},
		{`(tostring -1.5)`, `"-1.5"`},
		{`(tostring 'a')`, `"a"`},
		{`(tostring "hi")`, `"hi"`},
		{`(tostring true)`, `"true"`},
		{`(tostring [1 2])`, `"[1, 2]"`},
		{`(tostring ())`, `"()"`},

		{`(? true 1 2)`, "1"},
		{`(? false "a" "b")`, `"b"`},
		{`(while false 1)`, "()"},
		{`(def x 1)`, "()"},
		{`(eval (+ 1 2))`, "()"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := eval(t, tt.input)
			if got := result.Inspect(); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestIntegerWraparound(t *testing.T) {
	// Uint subtraction below zero wraps; no overflow error exists.
	result := eval(t, `(- 1u 2u)`)
	u, ok := result.(*evaluator.UInteger)
	if !ok {
		t.Fatalf("expected UInteger, got %T", result)
	}
	if u.Value != ^uint64(0) {
		t.Errorf("expected wraparound to %d, got %d", ^uint64(0), u.Value)
	}
}

func TestDivisionByZero(t *testing.T) {
	for _, src := range []string{`(/ 1 0)`, `(/ 1u 0u)`, `(/ 1.0 0.0)`} {
		t.Run(src, func(t *testing.T) {
			_, _, err := run(t, src, runOpts{})
			if err == nil {
				t.Fatal("expected error, got none")
			}
			if err.Code != diagnostics.ErrR001 {
				t.Errorf("expected %s, got %s", diagnostics.ErrR001, err.Code)
			}
		})
	}
}

func TestIfEvaluatesOneBranch(t *testing.T) {
	// The untaken branch would divide by zero if it ran.
	result := eval(t, `(? true 1 (/ 1 0))`)
	if result.Inspect() != "1" {
		t.Errorf("expected 1, got %s", result.Inspect())
	}
}

func TestLogicalOperatorsEvaluateBothSides(t *testing.T) {
	// && is not short-circuit: the right operand's print must run even
	// though the left is already false.
	result, out, err := run(t, `(&& false (== (. "x") "x"))`, runOpts{})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if result.Inspect() != "false" {
		t.Errorf("expected false, got %s", result.Inspect())
	}
	if out != "x" {
		t.Errorf("right operand did not evaluate, output %q", out)
	}
}

func TestPrintWritesExactBytesAndPassesThrough(t *testing.T) {
	result, out, err := run(t, `(. (. "ab"))`, runOpts{})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	// Inner print writes once, passes its argument to the outer print.
	if out != "abab" {
		t.Errorf("expected output %q, got %q", "abab", out)
	}
	if result.Inspect() != `"ab"` {
		t.Errorf("expected pass-through value, got %s", result.Inspect())
	}
}

func TestReadPromptAndInput(t *testing.T) {
	result, out, err := run(t, `(, "name? ")`, runOpts{input: []string{"Ada"}})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if out != "name? " {
		t.Errorf("expected prompt %q, got %q", "name? ", out)
	}
	if result.Inspect() != `"Ada"` {
		t.Errorf("expected input value, got %s", result.Inspect())
	}

	// A unit argument blocks without a prompt.
	result, out, err = run(t, `(, ())`, runOpts{input: []string{"hi"}})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if out != "" {
		t.Errorf("expected no prompt, got %q", out)
	}
	if result.Inspect() != `"hi"` {
		t.Errorf("expected input value, got %s", result.Inspect())
	}
}

func TestReadEndOfInput(t *testing.T) {
	_, _, err := run(t, `(, ())`, runOpts{})
	if err == nil {
		t.Fatal("expected error, got none")
	}
	if err.Code != diagnostics.ErrR002 {
		t.Errorf("expected %s, got %s", diagnostics.ErrR002, err.Code)
	}
}

func TestVariableLifecycle(t *testing.T) {
	// def binds, the variable reads back in a later position.
	result := eval(t, `(? (== (def x 21) ()) (* x 2) 0)`)
	if result.Inspect() != "42" {
		t.Errorf("expected 42, got %s", result.Inspect())
	}

	// set replaces the value.
	result = eval(t, `(? (== (def x 1) (set x 5)) x 0)`)
	if result.Inspect() != "5" {
		t.Errorf("expected 5, got %s", result.Inspect())
	}
}

func TestUninitializedRead(t *testing.T) {
	// init declares without a value; reading before set is a runtime error.
	_, _, err := run(t, `(? (== (init n int) ()) n 0)`, runOpts{})
	if err == nil {
		t.Fatal("expected error, got none")
	}
	if err.Code != diagnostics.ErrR003 {
		t.Errorf("expected %s, got %s", diagnostics.ErrR003, err.Code)
	}
}

func TestWhileLoop(t *testing.T) {
	src := `(? (== (def i 0) ()) (? (== (while (< i 3) (set i (+ i 1))) ()) i 0) 0)`
	result := eval(t, src)
	if result.Inspect() != "3" {
		t.Errorf("expected 3, got %s", result.Inspect())
	}
}

func TestStepLimit(t *testing.T) {
	_, _, err := run(t, `(while true 1)`, runOpts{maxSteps: 10_000})
	if err == nil {
		t.Fatal("expected error, got none")
	}
	if err.Code != diagnostics.ErrR004 {
		t.Errorf("expected %s, got %s", diagnostics.ErrR004, err.Code)
	}
}

func TestCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := run(t, `(while true 1)`, runOpts{ctx: ctx})
	if err == nil {
		t.Fatal("expected error, got none")
	}
	if err.Code != diagnostics.ErrR005 {
		t.Errorf("expected %s, got %s", diagnostics.ErrR005, err.Code)
	}
}

func TestDeterminism(t *testing.T) {
	src := `(++ (tostring (+ 1 2)) (tostring [1.5 2.5]))`
	first := eval(t, src).Inspect()
	for i := 0; i < 5; i++ {
		if got := eval(t, src).Inspect(); got != first {
			t.Fatalf("run %d diverged: %s vs %s", i, got, first)
		}
	}
}

func TestStringIsListOfChars(t *testing.T) {
	// Prepending a char onto a string stays a string; the result renders
	// with quotes because its element type is Char.
	result := eval(t, `(: 'x' (take 2u "abc"))`)
	list, ok := result.(*evaluator.List)
	if !ok {
		t.Fatalf("expected List, got %T", result)
	}
	if result.Inspect() != `"xab"` {
		t.Errorf("expected %q, got %s", `"xab"`, result.Inspect())
	}
	if len(list.Elements) != 3 {
		t.Errorf("expected 3 chars, got %d", len(list.Elements))
	}
}
