package evaluator

import "github.com/funvibe/basic/internal/diagnostics"

// RTResult is the outcome of evaluating one node: a value or an error.
type RTResult struct {
	Value Object
	Err   *diagnostics.DiagnosticError
}

// Register adopts res's error, if any, and returns its value.
func (r *RTResult) Register(res *RTResult) Object {
	if res.Err != nil {
		r.Err = res.Err
	}
	return res.Value
}

func (r *RTResult) Success(value Object) *RTResult {
	r.Value = value
	return r
}

// Failure keeps the first error recorded.
func (r *RTResult) Failure(err *diagnostics.DiagnosticError) *RTResult {
	if r.Err == nil {
		r.Err = err
	}
	r.Value = nil
	return r
}

func success(value Object) *RTResult {
	return &RTResult{Value: value}
}

func failure(err *diagnostics.DiagnosticError) *RTResult {
	return &RTResult{Err: err}
}
