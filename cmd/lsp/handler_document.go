package main

import (
	"fmt"
	"log"
	"path"
	"strings"
	"sync"

	"github.com/funvibe/basic/internal/lexer"
	"github.com/funvibe/basic/internal/parser"
	"github.com/funvibe/basic/internal/pipeline"
)

// DocumentState holds an open document and the result of analysing it.
type DocumentState struct {
	Content string
	Context *pipeline.PipelineContext // tokens, tree and errors
	Mu      sync.RWMutex
}

func (s *LanguageServer) handleDidOpen(params DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	ctx := analyzeDocument(uri, params.TextDocument.Text)

	s.mu.Lock()
	s.documents[uri] = &DocumentState{Content: params.TextDocument.Text, Context: ctx}
	s.mu.Unlock()

	log.Printf("Opened file: %s", uri)
	return s.publishDiagnostics(uri, ctx)
}

func (s *LanguageServer) handleDidChange(params DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	uri := params.TextDocument.URI
	doc := s.document(uri)
	if doc == nil {
		return fmt.Errorf("document %s not found", uri)
	}

	// full sync: the last change holds the whole text
	content := params.ContentChanges[len(params.ContentChanges)-1].Text
	ctx := analyzeDocument(uri, content)
	doc.Mu.Lock()
	doc.Content = content
	doc.Context = ctx
	doc.Mu.Unlock()

	return s.publishDiagnostics(uri, ctx)
}

func (s *LanguageServer) handleDidClose(params DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.documents, params.TextDocument.URI)
	s.mu.Unlock()
	log.Printf("Closed file: %s", params.TextDocument.URI)
	return nil
}

func (s *LanguageServer) document(uri string) *DocumentState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.documents[uri]
}

// snapshot returns the content and analysis of an open document.
func (s *LanguageServer) snapshot(uri string) (string, *pipeline.PipelineContext, bool) {
	doc := s.document(uri)
	if doc == nil {
		return "", nil, false
	}
	doc.Mu.RLock()
	defer doc.Mu.RUnlock()
	return doc.Content, doc.Context, true
}

// analyzeDocument lexes and parses without running anything.
func analyzeDocument(uri, content string) *pipeline.PipelineContext {
	return pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).
		Run(pipeline.NewPipelineContext(sourceName(uri), content))
}

// sourceName is the file name shown in diagnostics.
func sourceName(uri string) string {
	return path.Base(strings.TrimPrefix(uri, "file://"))
}
