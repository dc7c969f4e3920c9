package main

import (
	"fmt"
	"strings"

	"github.com/funvibe/basic/internal/ast"
	"github.com/funvibe/basic/internal/config"
	"github.com/funvibe/basic/internal/evaluator"
	"github.com/funvibe/basic/internal/token"
)

var keywordDocs = map[string]string{
	token.VAR:   "`VAR name = value` binds name in the current scope and yields value.",
	token.AND:   "Logical and. Yields 1 or 0.",
	token.OR:    "Logical or. Yields 1 or 0.",
	token.NOT:   "Logical negation. Yields 1 or 0.",
	token.IF:    "`IF cond THEN expr (ELIF cond THEN expr)* (ELSE expr)?`, or the multi-line form closed by `END`.",
	token.ELIF:  "Further condition of an `IF`.",
	token.ELSE:  "Fallback branch of an `IF`.",
	token.FOR:   "`FOR i = start TO end (STEP n)? THEN body` collects the body values into a list; `end` is exclusive.",
	token.TO:    "Exclusive upper bound of a `FOR` loop.",
	token.STEP:  "Increment of a `FOR` loop, 1 when omitted.",
	token.WHILE: "`WHILE cond THEN body` collects the body values into a list.",
	token.FUN:   "`FUN name(a, b) -> expr` or a multi-line body closed by `END`. The name is optional.",
	token.THEN:  "Starts the body of `IF`, `FOR` and `WHILE`.",
	token.END:   "Closes a multi-line block.",
}

var builtinDocs = map[string]string{
	config.PrintFuncName:    "Writes the value followed by a newline.",
	config.PrintRetFuncName: "Returns the text PRINT would write.",
	config.InputFuncName:    "Reads one line of input as a string.",
	config.InputIntFuncName: "Reads lines until one is an integer.",
	config.ClearFuncName:    "Clears the terminal.",
	config.ClsFuncName:      "Clears the terminal.",
	config.IsNumFuncName:    "1 if the value is a number.",
	config.IsStrFuncName:    "1 if the value is a string.",
	config.IsListFuncName:   "1 if the value is a list.",
	config.IsFunFuncName:    "1 if the value is a function.",
	config.AppendFuncName:   "Adds value to the end of list in place.",
	config.PopFuncName:      "Removes and returns the element at index.",
	config.ExtendFuncName:   "Appends the elements of listB to listA in place.",
}

var constantDocs = map[string]string{
	config.NullName:   "0",
	config.FalseName:  "0",
	config.TrueName:   "1",
	config.MathPiName: "3.141592653589793",
}

func builtinSignatures() map[string]string {
	sigs := make(map[string]string)
	for _, b := range evaluator.Builtins() {
		sigs[b.Name] = b.Name + "(" + strings.Join(b.Params, ", ") + ")"
	}
	return sigs
}

func (s *LanguageServer) handleHover(id interface{}, params TextDocumentPositionParams) error {
	_, ctx, ok := s.snapshot(params.TextDocument.URI)
	if !ok {
		return s.sendResult(id, nil)
	}
	tok, ok := tokenAt(ctx.TokenStream, params.Position)
	if !ok {
		return s.sendResult(id, nil)
	}

	text := hoverText(ctx.AstRoot, tok, params.Position)
	if text == "" {
		return s.sendResult(id, nil)
	}
	r := toRange(tok.Start, tok.End)
	return s.sendResult(id, Hover{
		Contents: MarkupContent{Kind: "markdown", Value: text},
		Range:    &r,
	})
}

// hoverText describes tok. root may be nil when the document does not parse.
func hoverText(root ast.Node, tok token.Token, pos Position) string {
	if tok.Type == token.KEYWORD {
		return keywordDocs[tok.Lexeme]
	}

	if d, found := resolve(root, tok.Lexeme, pos); found {
		return definitionHover(d)
	}
	if sig, ok := builtinSignatures()[tok.Lexeme]; ok {
		return codeBlock(sig) + "\n" + builtinDocs[tok.Lexeme]
	}
	if v, ok := constantDocs[tok.Lexeme]; ok {
		return codeBlock(tok.Lexeme+" = "+v) + "\nBuilt-in constant."
	}
	return ""
}

func definitionHover(d definition) string {
	line := d.Tok.Start.Line + 1
	switch d.Kind {
	case defFunction:
		return codeBlock(fmt.Sprintf("FUN %s(%s)", d.Name, strings.Join(d.Func.ParamNames(), ", "))) +
			fmt.Sprintf("\nDefined on line %d.", line)
	case defParam:
		return codeBlock(d.Name) + "\nParameter of " + funcName(d.Func) + "."
	case defLoopVar:
		return codeBlock(d.Name) + fmt.Sprintf("\nLoop variable, line %d.", line)
	}
	return codeBlock("VAR "+d.Name) + fmt.Sprintf("\nFirst assigned on line %d.", line)
}

func funcName(fn *ast.FuncDefNode) string {
	if fn.Name == nil {
		return "an anonymous function"
	}
	return fn.Name.Lexeme
}

func codeBlock(s string) string {
	return "```basic\n" + s + "\n```"
}
