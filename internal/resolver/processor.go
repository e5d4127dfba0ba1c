package resolver

import (
	"github.com/funvibe/blisp/internal/ast"
	"github.com/funvibe/blisp/internal/diagnostics"
	"github.com/funvibe/blisp/internal/evaluator"
	"github.com/funvibe/blisp/internal/pipeline"
	"github.com/funvibe/blisp/internal/token"
)

// ResolverProcessor runs type resolution as a pipeline stage. Env is shared
// with the evaluator stage: resolution installs typed bindings, evaluation
// fills in their values.
type ResolverProcessor struct {
	Env *evaluator.Environment
}

func (rp *ResolverProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	prog, ok := ctx.AstRoot.(*ast.Program)
	if !ok || prog == nil {
		err := diagnostics.NewError(diagnostics.ErrP000, token.Token{}, "ast root is missing")
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}

	env := rp.Env
	if env == nil {
		env = evaluator.NewEnvironment()
		rp.Env = env
	}

	typeMap, err := New(env).Resolve(prog)
	if err != nil {
		if err.File == "" {
			err.File = ctx.FilePath
		}
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.TypeMap = typeMap
	return ctx
}
