// Command lsp is a language server for BASIC programs. It reports lexer and
// parser errors, formats documents and answers hover, completion and
// go-to-definition requests over stdio.
package main

import (
	"log"
	"os"
)

func main() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr) // stdout carries the protocol

	server := NewLanguageServer(os.Stdout)
	if err := server.Start(os.Stdin); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
	if !server.ShutdownRequested() {
		os.Exit(1)
	}
}
