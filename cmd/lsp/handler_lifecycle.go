package main

func (s *LanguageServer) handleInitialize(id interface{}, params InitializeParams) error {
	return s.sendResult(id, InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync:           1, // full
			HoverProvider:              true,
			DefinitionProvider:         true,
			CompletionProvider:         &CompletionOptions{},
			DocumentFormattingProvider: true,
		},
		ServerInfo: &ServerInfo{Name: "basic-lsp"},
	})
}

func (s *LanguageServer) handleShutdown(id interface{}) error {
	s.shutdown = true
	return s.sendResult(id, nil)
}
