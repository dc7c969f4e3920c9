// Package basic embeds the BASIC interpreter in Go programs.
//
//	in := basic.New()
//	in.Set("limit", 10)
//	v, err := in.Eval("FOR i = 0 TO limit THEN i * i")
package basic

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"

	"github.com/funvibe/basic/internal/backend"
	"github.com/funvibe/basic/internal/diagnostics"
	"github.com/funvibe/basic/internal/evaluator"
)

// Interpreter is a persistent program environment. Variables defined by one
// Eval are visible to the next. It is not safe for concurrent use.
type Interpreter struct {
	interp     *evaluator.Interpreter
	root       *evaluator.Context
	marshaller *Marshaller
}

// New creates an interpreter writing PRINT output to stdout and reading
// INPUT from stdin.
func New() *Interpreter {
	return &Interpreter{
		interp:     evaluator.New(),
		root:       evaluator.NewRootContext(),
		marshaller: NewMarshaller(),
	}
}

func (in *Interpreter) SetOutput(w io.Writer) { in.interp.Out = w }
func (in *Interpreter) SetInput(r io.Reader)  { in.interp.In = r }

// SetContext makes later evaluations stop with an error once ctx is done.
func (in *Interpreter) SetContext(ctx context.Context) { in.interp.Context = ctx }

// SetMaxDepth bounds nested evaluation.
func (in *Interpreter) SetMaxDepth(n int) { in.interp.MaxDepth = n }

// Set binds a global variable.
func (in *Interpreter) Set(name string, val interface{}) error {
	obj, err := in.marshaller.ToValue(val)
	if err != nil {
		return fmt.Errorf("setting %s: %w", name, err)
	}
	in.root.SymbolTable.Set(name, obj)
	return nil
}

// Get retrieves a global variable.
func (in *Interpreter) Get(name string) (interface{}, error) {
	obj, ok := in.root.SymbolTable.Get(name)
	if !ok {
		return nil, fmt.Errorf("variable '%s' not found", name)
	}
	return in.marshaller.FromValue(obj, nil)
}

// GetAs retrieves a global variable converted to the type of target, which
// must be a pointer.
func (in *Interpreter) GetAs(name string, target interface{}) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("target must be a non-nil pointer, got %T", target)
	}
	obj, ok := in.root.SymbolTable.Get(name)
	if !ok {
		return fmt.Errorf("variable '%s' not found", name)
	}
	val, err := in.marshaller.FromValue(obj, rv.Elem().Type())
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if val == nil {
		rv.Elem().Set(reflect.Zero(rv.Elem().Type()))
		return nil
	}
	rv.Elem().Set(reflect.ValueOf(val))
	return nil
}

// Call calls a function defined in the program (or a built-in) by name.
func (in *Interpreter) Call(funcName string, args ...interface{}) (interface{}, error) {
	fnObj, ok := in.root.SymbolTable.Get(funcName)
	if !ok {
		return nil, fmt.Errorf("function '%s' not found", funcName)
	}

	objs := make([]evaluator.Object, len(args))
	for i, arg := range args {
		obj, err := in.marshaller.ToValue(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		objs[i] = obj
	}

	res := in.interp.Apply(fnObj, objs, in.root)
	if res.Err != nil {
		return nil, newError(res.Err)
	}
	return in.marshaller.FromValue(res.Value, nil)
}

// Eval runs code and returns the value of its last statement.
func (in *Interpreter) Eval(code string) (interface{}, error) {
	return in.run("<eval>", code)
}

// LoadFile runs a source file for its definitions.
func (in *Interpreter) LoadFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = in.run(filepath.Base(path), string(content))
	return err
}

func (in *Interpreter) run(name, code string) (interface{}, error) {
	_, value, diag := backend.Run(name, code, in.interp, in.root)
	if diag != nil {
		return nil, newError(diag)
	}
	list, ok := value.(*evaluator.List)
	if !ok || list.Len() == 0 {
		return in.marshaller.FromValue(value, nil)
	}
	elems := list.Elements()
	return in.marshaller.FromValue(elems[len(elems)-1], nil)
}

// Error is a lexing, parsing or runtime failure of a script.
type Error struct {
	Kind    string
	Details string
	File    string
	// Line and Column are zero based.
	Line   int
	Column int

	rendered string
}

func newError(d *diagnostics.DiagnosticError) *Error {
	return &Error{
		Kind:     d.Code.Kind(),
		Details:  d.Details,
		File:     d.Start.File,
		Line:     d.Start.Line,
		Column:   d.Start.Column,
		rendered: d.Render(),
	}
}

func (e *Error) Error() string {
	return e.Kind + ": " + e.Details
}

// Render returns the traceback, message and source excerpt.
func (e *Error) Render() string {
	return e.rendered
}
