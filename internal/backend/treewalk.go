package backend

import (
	"context"
	"io"

	"github.com/funvibe/blisp/internal/ast"
	"github.com/funvibe/blisp/internal/diagnostics"
	"github.com/funvibe/blisp/internal/evaluator"
	"github.com/funvibe/blisp/internal/pipeline"
	"github.com/funvibe/blisp/internal/token"
)

// TreeWalkBackend interprets the type-annotated AST directly.
type TreeWalkBackend struct {
	// Context cancels long-running evaluation (while loops check it).
	Context context.Context
	// Out receives print/read-prompt output; defaults to stdout.
	Out io.Writer
	// In supplies lines to the read builtin; defaults to stdin.
	In evaluator.LineReader
	// MaxSteps bounds evaluation when > 0.
	MaxSteps int64
}

// NewTreeWalk creates a tree-walk backend with default I/O.
func NewTreeWalk() *TreeWalkBackend {
	return &TreeWalkBackend{}
}

// Run executes the program. The environment must be the one the resolver
// populated; its bindings already carry their fixed types.
func (b *TreeWalkBackend) Run(ctx *pipeline.PipelineContext, env *evaluator.Environment) (evaluator.Object, *diagnostics.DiagnosticError) {
	if ctx.AstRoot == nil {
		return nil, diagnostics.NewError(diagnostics.ErrP000, token.Token{}, "no program to execute")
	}
	if ctx.Failed() {
		return nil, ctx.FirstError()
	}

	eval := evaluator.New()
	eval.TypeMap = ctx.TypeMap
	eval.MaxSteps = b.MaxSteps
	if b.Context != nil {
		eval.Context = b.Context
	}
	if b.Out != nil {
		eval.Out = b.Out
	}
	if b.In != nil {
		eval.In = b.In
	}

	result, err := eval.Eval(ctx.AstRoot.(*ast.Program), env)
	if err != nil {
		if err.File == "" {
			err.File = ctx.FilePath
		}
		return nil, err
	}
	return result, nil
}

// Name returns the backend name.
func (b *TreeWalkBackend) Name() string {
	return "tree-walk"
}
