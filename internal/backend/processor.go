package backend

import (
	"github.com/funvibe/blisp/internal/evaluator"
	"github.com/funvibe/blisp/internal/pipeline"
)

// ExecutionProcessor runs a Backend as the final pipeline stage. The result
// value is kept on the processor so the caller (script runner, REPL) can
// render it after Run returns.
type ExecutionProcessor struct {
	Backend Backend
	Env     *evaluator.Environment

	Result evaluator.Object
}

// NewExecutionProcessor creates a pipeline stage for the given backend.
func NewExecutionProcessor(b Backend, env *evaluator.Environment) *ExecutionProcessor {
	return &ExecutionProcessor{Backend: b, Env: env}
}

func (p *ExecutionProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || ctx.Failed() {
		return ctx
	}

	env := p.Env
	if env == nil {
		env = evaluator.NewEnvironment()
	}

	result, err := p.Backend.Run(ctx, env)
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	p.Result = result
	return ctx
}
