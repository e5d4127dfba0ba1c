// Package backend runs a fully resolved program. The only implementation is
// the tree-walk interpreter; the interface keeps the execution stage swappable
// in the pipeline.
package backend

import (
	"github.com/funvibe/blisp/internal/diagnostics"
	"github.com/funvibe/blisp/internal/evaluator"
	"github.com/funvibe/blisp/internal/pipeline"
)

// Backend is the interface for execution backends.
type Backend interface {
	// Run executes the program from the pipeline context using env for
	// variable storage and returns the result value.
	Run(ctx *pipeline.PipelineContext, env *evaluator.Environment) (evaluator.Object, *diagnostics.DiagnosticError)

	// Name returns the backend name for display.
	Name() string
}
