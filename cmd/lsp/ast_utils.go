package main

import (
	"sort"

	"github.com/funvibe/basic/internal/ast"
	"github.com/funvibe/basic/internal/token"
)

// tokenAt returns the identifier or keyword under the cursor. A cursor just
// after the last character still counts.
func tokenAt(tokens []token.Token, pos Position) (token.Token, bool) {
	for _, tok := range tokens {
		if tok.Type != token.IDENTIFIER && tok.Type != token.KEYWORD {
			continue
		}
		start, end := toPosition(tok.Start), toPosition(tok.End)
		if start.Line == pos.Line && start.Character <= pos.Character && pos.Character <= end.Character {
			return tok, true
		}
	}
	return token.Token{}, false
}

type defKind int

const (
	defVariable defKind = iota
	defFunction
	defParam
	defLoopVar
)

// definition is a name introduced by VAR, FUN, a parameter list or a FOR
// header. Scope is the function whose body owns the name; nil means the
// program.
type definition struct {
	Name  string
	Kind  defKind
	Tok   token.Token
	Func  *ast.FuncDefNode // the function itself for defFunction
	Scope *ast.FuncDefNode
}

// collectDefinitions lists every definition in source order.
func collectDefinitions(root ast.Node) []definition {
	var defs []definition
	var walk func(n ast.Node, scope *ast.FuncDefNode)
	walk = func(n ast.Node, scope *ast.FuncDefNode) {
		switch n := n.(type) {
		case nil:
			return
		case *ast.VarAssignNode:
			defs = append(defs, definition{Name: n.Name.Lexeme, Kind: defVariable, Tok: n.Name, Scope: scope})
		case *ast.ForNode:
			defs = append(defs, definition{Name: n.Var.Lexeme, Kind: defLoopVar, Tok: n.Var, Scope: scope})
		case *ast.FuncDefNode:
			if n.Name != nil {
				defs = append(defs, definition{Name: n.Name.Lexeme, Kind: defFunction, Tok: *n.Name, Func: n, Scope: scope})
			}
			for _, p := range n.Params {
				defs = append(defs, definition{Name: p.Lexeme, Kind: defParam, Tok: p, Func: n, Scope: n})
			}
			walk(n.Body, n)
			return
		}
		for _, c := range ast.Children(n) {
			walk(c, scope)
		}
	}
	walk(root, nil)

	sort.SliceStable(defs, func(i, j int) bool { return defs[i].Tok.Start.Index < defs[j].Tok.Start.Index })
	return defs
}

// enclosingFuncs returns the functions whose span holds pos, outermost first.
func enclosingFuncs(root ast.Node, pos Position) []*ast.FuncDefNode {
	var out []*ast.FuncDefNode
	ast.Inspect(root, func(n ast.Node) bool {
		if !contains(n, pos) {
			return false
		}
		if fn, ok := n.(*ast.FuncDefNode); ok {
			out = append(out, fn)
		}
		return true
	})
	return out
}

func contains(n ast.Node, pos Position) bool {
	start, end := toPosition(n.Start()), toPosition(n.End())
	return !before(pos, start) && !before(end, pos)
}

func before(a, b Position) bool {
	return a.Line < b.Line || (a.Line == b.Line && a.Character < b.Character)
}

// visible returns the definitions usable at pos, innermost scope first.
// Within a scope the earliest definition of a name wins.
func visible(root ast.Node, pos Position) []definition {
	defs := collectDefinitions(root)
	funcs := enclosingFuncs(root, pos)

	scopes := make([]*ast.FuncDefNode, 0, len(funcs)+1)
	for i := len(funcs) - 1; i >= 0; i-- {
		scopes = append(scopes, funcs[i])
	}
	scopes = append(scopes, nil)

	var out []definition
	seen := make(map[string]bool)
	for _, scope := range scopes {
		for _, d := range defs {
			if d.Scope == scope && !seen[d.Name] {
				seen[d.Name] = true
				out = append(out, d)
			}
		}
	}
	return out
}

// resolve finds the definition a name at pos refers to.
func resolve(root ast.Node, name string, pos Position) (definition, bool) {
	for _, d := range visible(root, pos) {
		if d.Name == name {
			return d, true
		}
	}
	return definition{}, false
}
