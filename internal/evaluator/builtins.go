package evaluator

import (
	"github.com/funvibe/basic/internal/config"
	"github.com/funvibe/basic/internal/diagnostics"
)

// Builtins returns a fresh table of the built-in functions.
func Builtins() []*Builtin {
	return []*Builtin{
		{Name: config.PrintFuncName, Params: []string{"value"}, Fn: builtinPrint},
		{Name: config.PrintRetFuncName, Params: []string{"value"}, Fn: builtinPrintRet},
		{Name: config.InputFuncName, Fn: builtinInput},
		{Name: config.InputIntFuncName, Fn: builtinInputInt},
		{Name: config.ClearFuncName, Fn: builtinClear},
		{Name: config.ClsFuncName, Fn: builtinClear},
		{Name: config.IsNumFuncName, Params: []string{"value"}, Fn: isKind(NUMBER_OBJ)},
		{Name: config.IsStrFuncName, Params: []string{"value"}, Fn: isKind(STRING_OBJ)},
		{Name: config.IsListFuncName, Params: []string{"value"}, Fn: isKind(LIST_OBJ)},
		{Name: config.IsFunFuncName, Params: []string{"value"}, Fn: isKind(FUNCTION_OBJ, BUILTIN_OBJ)},
		{Name: config.AppendFuncName, Params: []string{"list", "value"}, Fn: builtinAppend},
		{Name: config.PopFuncName, Params: []string{"list", "index"}, Fn: builtinPop},
		{Name: config.ExtendFuncName, Params: []string{"listA", "listB"}, Fn: builtinExtend},
	}
}

func arg(ctx *Context, name string) Object {
	val, _ := ctx.SymbolTable.Get(name)
	return val
}

func isKind(kinds ...ObjectType) BuiltinFunction {
	return func(in *Interpreter, ctx *Context) *RTResult {
		t := arg(ctx, "value").Type()
		for _, k := range kinds {
			if t == k {
				return success(Bool(true))
			}
		}
		return success(Bool(false))
	}
}

func builtinAppend(in *Interpreter, ctx *Context) *RTResult {
	list, ok := arg(ctx, "list").(*List)
	if !ok {
		return builtinError(diagnostics.ErrR007, ctx, "First argument must be a list")
	}
	list.Append(arg(ctx, "value"))
	return success(Null())
}

func builtinPop(in *Interpreter, ctx *Context) *RTResult {
	list, ok := arg(ctx, "list").(*List)
	if !ok {
		return builtinError(diagnostics.ErrR007, ctx, "First argument must be a list")
	}
	index, ok := arg(ctx, "index").(*Number)
	if !ok {
		return builtinError(diagnostics.ErrR007, ctx, "Second argument must be a number")
	}
	el, ok := list.Remove(index)
	if !ok {
		return builtinError(diagnostics.ErrR004, ctx, "Element at this index could not be removed from list because index is out of bounds")
	}
	return success(el)
}

func builtinExtend(in *Interpreter, ctx *Context) *RTResult {
	listA, ok := arg(ctx, "listA").(*List)
	if !ok {
		return builtinError(diagnostics.ErrR007, ctx, "First argument must be a list")
	}
	listB, ok := arg(ctx, "listB").(*List)
	if !ok {
		return builtinError(diagnostics.ErrR007, ctx, "Second argument must be a list")
	}
	// copy first so EXTEND(a, a) doubles a once
	items := append([]Object(nil), listB.Elements()...)
	listA.Append(items...)
	return success(Null())
}
