package pipeline

import (
	"github.com/weldlang/weld/internal/ast"
	"github.com/weldlang/weld/internal/diagnostics"
)

// PipelineContext carries a source file through the lex/parse stages
// and collects diagnostics from all of them.
type PipelineContext struct {
	Source   string
	FilePath string
	AstRoot  ast.Expression
	Errors   []*diagnostics.Error
}

func NewPipelineContext(source string) *PipelineContext {
	return &PipelineContext{Source: source}
}

// AddError appends a diagnostic, stamping the file path if unset.
func (ctx *PipelineContext) AddError(err *diagnostics.Error) {
	if err.File == "" {
		err.File = ctx.FilePath
	}
	ctx.Errors = append(ctx.Errors, err)
}

// Processor is a single stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

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
		ctx = processor.Process(ctx)
		// Continue on errors to collect diagnostics from all stages.
	}
	return ctx
}
