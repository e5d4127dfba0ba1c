package parser

import (
	"github.com/funvibe/blisp/internal/diagnostics"
	"github.com/funvibe/blisp/internal/pipeline"
	"github.com/funvibe/blisp/internal/token"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.TokenStream == nil {
		// This case should ideally not be hit if the lexer runs first, but as a safeguard:
		err := diagnostics.NewError(diagnostics.ErrP000, token.Token{}, "token stream is nil")
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}

	parser := New(ctx.TokenStream, ctx)
	prog := parser.ParseProgram()
	if prog != nil {
		prog.File = ctx.FilePath
		ctx.AstRoot = prog
	}

	for _, err := range ctx.Errors {
		if err.File == "" {
			err.File = ctx.FilePath
		}
	}

	return ctx
}
