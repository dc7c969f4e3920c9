package evaluator

import (
	"github.com/funvibe/basic/internal/token"
)

type ObjectType string

const (
	NUMBER_OBJ   = "NUMBER"
	STRING_OBJ   = "STRING"
	LIST_OBJ     = "LIST"
	FUNCTION_OBJ = "FUNCTION"
	BUILTIN_OBJ  = "BUILTIN"
)

// Object is a runtime value. The set of implementations is closed.
//
// Every object carries the span and context it was last produced at.
// WithPos and WithContext return shallow copies, so re-stamping a value on
// read never alters the value stored in a symbol table.
type Object interface {
	Type() ObjectType
	// Inspect is the REPL representation, e.g. strings are quoted.
	Inspect() string
	// String is the PRINT representation.
	String() string
	IsTrue() bool

	Start() token.Position
	End() token.Position
	Context() *Context
	WithPos(start, end token.Position) Object
	WithContext(ctx *Context) Object
}

type provenance struct {
	start token.Position
	end   token.Position
	ctx   *Context
}

func (p provenance) Start() token.Position { return p.start }
func (p provenance) End() token.Position   { return p.end }
func (p provenance) Context() *Context     { return p.ctx }

// TypeName is the user-facing name of an object's kind.
func TypeName(obj Object) string {
	switch obj.Type() {
	case NUMBER_OBJ:
		return "Number"
	case STRING_OBJ:
		return "String"
	case LIST_OBJ:
		return "List"
	case FUNCTION_OBJ, BUILTIN_OBJ:
		return "Function"
	}
	return string(obj.Type())
}

// stamp re-stamps obj with a span and context in one step.
func stamp(obj Object, start, end token.Position, ctx *Context) Object {
	return obj.WithPos(start, end).WithContext(ctx)
}

// ProgramValue unwraps the statement list a program evaluates to when it
// holds a single statement, which is what the REPL shows.
func ProgramValue(obj Object) Object {
	if l, ok := obj.(*List); ok && l.Len() == 1 {
		return l.Elements()[0]
	}
	return obj
}
