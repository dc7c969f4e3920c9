package evaluator

import (
	"github.com/funvibe/basic/internal/ast"
	"github.com/funvibe/basic/internal/token"
)

const AnonymousName = "<anonymous>"

// Function is a user-defined function. Defined is the context the function
// was created in; calls resolve free names through its symbol table.
type Function struct {
	Name    string
	Params  []string
	Body    ast.Node
	Defined *Context
	provenance
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string  { return "<function " + f.Name + ">" }
func (f *Function) String() string   { return f.Inspect() }
func (f *Function) IsTrue() bool     { return true }

func (f *Function) WithPos(start, end token.Position) Object {
	c := *f
	c.start, c.end = start, end
	return &c
}

func (f *Function) WithContext(ctx *Context) Object {
	c := *f
	c.ctx = ctx
	return &c
}

// BuiltinFunction receives its declared parameters bound in ctx.
type BuiltinFunction func(in *Interpreter, ctx *Context) *RTResult

type Builtin struct {
	Name   string
	Params []string
	Fn     BuiltinFunction
	provenance
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "<built-in function " + b.Name + ">" }
func (b *Builtin) String() string   { return b.Inspect() }
func (b *Builtin) IsTrue() bool     { return true }

func (b *Builtin) WithPos(start, end token.Position) Object {
	c := *b
	c.start, c.end = start, end
	return &c
}

func (b *Builtin) WithContext(ctx *Context) Object {
	c := *b
	c.ctx = ctx
	return &c
}
