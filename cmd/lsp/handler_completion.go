package main

import (
	"sort"

	"github.com/funvibe/basic/internal/ast"
)

func (s *LanguageServer) handleCompletion(id interface{}, params TextDocumentPositionParams) error {
	_, ctx, ok := s.snapshot(params.TextDocument.URI)
	if !ok {
		return s.sendResult(id, CompletionList{Items: []CompletionItem{}})
	}
	return s.sendResult(id, CompletionList{Items: completionItems(ctx.AstRoot, params.Position)})
}

// completionItems offers names from the document first, then built-ins and
// keywords. A document name shadows a built-in of the same name.
func completionItems(root ast.Node, pos Position) []CompletionItem {
	var items []CompletionItem
	seen := make(map[string]bool)
	add := func(item CompletionItem) {
		if !seen[item.Label] {
			seen[item.Label] = true
			items = append(items, item)
		}
	}

	for _, d := range visible(root, pos) {
		item := CompletionItem{Label: d.Name, Kind: CompletionItemVariable}
		switch d.Kind {
		case defFunction:
			item.Kind = CompletionItemFunction
			item.Detail = "function"
		case defParam:
			item.Detail = "parameter of " + funcName(d.Func)
		case defLoopVar:
			item.Detail = "loop variable"
		default:
			item.Detail = "variable"
		}
		add(item)
	}

	sigs := builtinSignatures()
	for _, name := range sortedKeys(sigs) {
		add(CompletionItem{Label: name, Kind: CompletionItemFunction, Detail: sigs[name]})
	}
	for _, name := range sortedKeys(constantDocs) {
		add(CompletionItem{Label: name, Kind: CompletionItemConstant, Detail: "= " + constantDocs[name]})
	}
	for _, kw := range sortedKeys(keywordDocs) {
		add(CompletionItem{Label: kw, Kind: CompletionItemKeyword})
	}
	return items
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
