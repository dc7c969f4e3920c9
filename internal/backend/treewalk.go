package backend

import (
	"github.com/funvibe/basic/internal/diagnostics"
	"github.com/funvibe/basic/internal/evaluator"
	"github.com/funvibe/basic/internal/pipeline"
	"github.com/funvibe/basic/internal/token"
)

// TreeWalkBackend evaluates the AST directly against a root context that
// persists between runs.
type TreeWalkBackend struct {
	Interp *evaluator.Interpreter
	Root   *evaluator.Context
}

// NewTreeWalk creates a tree-walk backend. A nil root gets a fresh program frame.
func NewTreeWalk(interp *evaluator.Interpreter, root *evaluator.Context) *TreeWalkBackend {
	if interp == nil {
		interp = evaluator.New()
	}
	if root == nil {
		root = evaluator.NewRootContext()
	}
	return &TreeWalkBackend{Interp: interp, Root: root}
}

// Run evaluates the tree against the persistent root frame.
func (b *TreeWalkBackend) Run(ctx *pipeline.PipelineContext) (evaluator.Object, *diagnostics.DiagnosticError) {
	if ctx.AstRoot == nil {
		pos := token.NewPosition(ctx.SourceName, ctx.SourceCode)
		return nil, diagnostics.NewError(diagnostics.ErrR001, pos, pos, "no AST to execute")
	}
	if ctx.Failed() {
		return nil, ctx.Err()
	}

	res := b.Interp.Eval(ctx.AstRoot, b.Root)
	if res.Err != nil {
		return nil, res.Err
	}
	return res.Value, nil
}

func (b *TreeWalkBackend) Name() string {
	return "tree-walk"
}
