package parser

import (
	"github.com/funvibe/basic/internal/ast"
	"github.com/funvibe/basic/internal/diagnostics"
)

// ParseResult carries the outcome of one grammar rule along with how many
// tokens it consumed.
type ParseResult struct {
	Node ast.Node
	Err  *diagnostics.DiagnosticError

	Advances               int
	LastRegisteredAdvances int
	// ToReverse is the number of tokens consumed by the last failed TryRegister.
	ToReverse int
}

func (r *ParseResult) RegisterAdvancement() {
	r.LastRegisteredAdvances = 1
	r.Advances++
}

// Register folds a sub-result into r and returns its node.
func (r *ParseResult) Register(res *ParseResult) ast.Node {
	r.LastRegisteredAdvances = res.Advances
	r.Advances += res.Advances
	if res.Err != nil {
		r.Err = res.Err
	}
	return res.Node
}

// TryRegister is Register for speculative parses: a failed sub-result leaves r
// untouched apart from ToReverse and yields nil.
func (r *ParseResult) TryRegister(res *ParseResult) ast.Node {
	if res.Err != nil {
		r.ToReverse = res.Advances
		return nil
	}
	return r.Register(res)
}

func (r *ParseResult) Success(node ast.Node) *ParseResult {
	r.Node = node
	return r
}

// Failure records err unless a more specific error from a rule that made
// progress is already present.
func (r *ParseResult) Failure(err *diagnostics.DiagnosticError) *ParseResult {
	if r.Err == nil || r.LastRegisteredAdvances == 0 {
		r.Err = err
	}
	return r
}
