package evaluator

import (
	"math"

	"github.com/funvibe/basic/internal/config"
	"github.com/funvibe/basic/internal/diagnostics"
	"github.com/funvibe/basic/internal/token"
)

// Context is a call frame. The Parent chain is the dynamic call stack used
// for tracebacks; name resolution goes through SymbolTable instead.
type Context struct {
	DisplayName    string
	Parent         *Context
	ParentEntryPos token.Position
	SymbolTable    *SymbolTable

	// end of the call expression that entered this frame
	entryEnd token.Position
}

func NewContext(name string, parent *Context, entry token.Position) *Context {
	return &Context{DisplayName: name, Parent: parent, ParentEntryPos: entry}
}

// NewRootContext builds a program frame with the constants and built-ins bound.
func NewRootContext() *Context {
	ctx := NewContext(config.ProgramContextName, nil, token.Position{})
	ctx.SymbolTable = NewSymbolTable(nil)
	RegisterGlobals(ctx.SymbolTable)
	return ctx
}

// RegisterGlobals binds NULL, FALSE, TRUE, MATH_PI and the built-in functions.
func RegisterGlobals(st *SymbolTable) {
	st.Set(config.NullName, Null())
	st.Set(config.FalseName, Bool(false))
	st.Set(config.TrueName, Bool(true))
	st.Set(config.MathPiName, NewNumber(math.Pi))
	for _, b := range Builtins() {
		st.Set(b.Name, b)
	}
}

func (c *Context) TraceName() string { return c.DisplayName }

func (c *Context) TraceParent() diagnostics.Traceable {
	if c.Parent == nil {
		return nil
	}
	return c.Parent
}

func (c *Context) TraceEntry() token.Position { return c.ParentEntryPos }
