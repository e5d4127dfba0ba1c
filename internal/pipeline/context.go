package pipeline

import (
	"github.com/funvibe/blisp/internal/ast"
	"github.com/funvibe/blisp/internal/diagnostics"
	"github.com/funvibe/blisp/internal/token"
	"github.com/funvibe/blisp/internal/typesystem"
)

// Processor is a single pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext is the state shared by all stages of one program run.
type PipelineContext struct {
	SourceCode string
	FilePath   string

	// TokenStream is set by the lexer stage.
	TokenStream []token.Token
	// AstRoot is set by the parser stage.
	AstRoot ast.Node
	// TypeMap is set by the resolver stage: a concrete type for every
	// expression node. No literal type survives into this map.
	TypeMap map[ast.Node]typesystem.Type

	// Errors accumulates diagnostics. A stage that finds Errors non-empty
	// must not run: each phase is fatal to the ones after it.
	Errors []*diagnostics.DiagnosticError
}

func NewPipelineContext(sourceCode string) *PipelineContext {
	return &PipelineContext{SourceCode: sourceCode}
}

// Failed reports whether any stage has recorded an error.
func (ctx *PipelineContext) Failed() bool {
	return len(ctx.Errors) > 0
}

// FirstError returns the first recorded diagnostic, or nil.
func (ctx *PipelineContext) FirstError() *diagnostics.DiagnosticError {
	if len(ctx.Errors) == 0 {
		return nil
	}
	return ctx.Errors[0]
}
