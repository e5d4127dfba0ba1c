package pipeline

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		// Each phase is fatal to the ones after it: a stage that sees
		// recorded errors returns the context untouched.
		if ctx.Failed() {
			return ctx
		}
		ctx = processor.Process(ctx)
	}
	return ctx
}
