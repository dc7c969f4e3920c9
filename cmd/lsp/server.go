package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"sync"
)

// errExit ends the read loop after the client's exit notification.
var errExit = errors.New("exit requested")

// LanguageServer speaks LSP over a byte stream.
type LanguageServer struct {
	documents map[string]*DocumentState // URI -> document state
	mu        sync.RWMutex
	writer    io.Writer
	writeMu   sync.Mutex
	shutdown  bool
}

func NewLanguageServer(writer io.Writer) *LanguageServer {
	return &LanguageServer{
		documents: make(map[string]*DocumentState),
		writer:    writer,
	}
}

// ShutdownRequested reports whether the client sent shutdown before exit.
func (s *LanguageServer) ShutdownRequested() bool {
	return s.shutdown
}

// Start reads Content-Length framed messages from r until EOF or exit.
func (s *LanguageServer) Start(r io.Reader) error {
	reader := bufio.NewReader(r)

	for {
		length, err := readHeaders(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		content := make([]byte, length)
		if _, err := io.ReadFull(reader, content); err != nil {
			return fmt.Errorf("reading content: %w", err)
		}

		if err := s.handleMessage(content); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			log.Printf("Error handling message: %v", err)
		}
	}
}

// readHeaders consumes one header block and returns its Content-Length.
func readHeaders(reader *bufio.Reader) (int, error) {
	length := -1
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return 0, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if length < 0 {
				continue // stray blank line between messages
			}
			return length, nil
		}
		if v, ok := strings.CutPrefix(line, "Content-Length: "); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return 0, fmt.Errorf("parsing Content-Length: %w", err)
			}
			length = n
		}
	}
}

type baseMessage struct {
	Jsonrpc string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

func (s *LanguageServer) handleMessage(content []byte) error {
	var msg baseMessage
	if err := json.Unmarshal(content, &msg); err != nil {
		return s.sendError(nil, codeParseError, err.Error())
	}
	log.Printf("Received %s (id %v)", msg.Method, msg.ID)

	if msg.ID != nil {
		return s.handleRequest(msg)
	}
	return s.handleNotification(msg)
}

func (s *LanguageServer) handleRequest(msg baseMessage) error {
	switch msg.Method {
	case "initialize":
		var params InitializeParams
		if err := decodeParams(msg, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidRequest, err.Error())
		}
		return s.handleInitialize(msg.ID, params)

	case "shutdown":
		return s.handleShutdown(msg.ID)

	case "textDocument/hover":
		var params TextDocumentPositionParams
		if err := decodeParams(msg, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidRequest, err.Error())
		}
		return s.handleHover(msg.ID, params)

	case "textDocument/definition":
		var params TextDocumentPositionParams
		if err := decodeParams(msg, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidRequest, err.Error())
		}
		return s.handleDefinition(msg.ID, params)

	case "textDocument/completion":
		var params TextDocumentPositionParams
		if err := decodeParams(msg, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidRequest, err.Error())
		}
		return s.handleCompletion(msg.ID, params)

	case "textDocument/formatting":
		var params DocumentFormattingParams
		if err := decodeParams(msg, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidRequest, err.Error())
		}
		return s.handleFormatting(msg.ID, params)
	}
	return s.sendError(msg.ID, codeMethodNotFound, "Method not found: "+msg.Method)
}

func (s *LanguageServer) handleNotification(msg baseMessage) error {
	switch msg.Method {
	case "textDocument/didOpen":
		var params DidOpenTextDocumentParams
		if err := decodeParams(msg, &params); err != nil {
			return err
		}
		return s.handleDidOpen(params)

	case "textDocument/didChange":
		var params DidChangeTextDocumentParams
		if err := decodeParams(msg, &params); err != nil {
			return err
		}
		return s.handleDidChange(params)

	case "textDocument/didClose":
		var params DidCloseTextDocumentParams
		if err := decodeParams(msg, &params); err != nil {
			return err
		}
		return s.handleDidClose(params)

	case "exit":
		return errExit
	}
	// initialized and anything unknown
	return nil
}

func decodeParams(msg baseMessage, v interface{}) error {
	if len(msg.Params) == 0 {
		return nil
	}
	return json.Unmarshal(msg.Params, v)
}

func (s *LanguageServer) sendResult(id, result interface{}) error {
	return s.sendMessage(ResponseMessage{Jsonrpc: "2.0", ID: id, Result: result})
}

func (s *LanguageServer) sendError(id interface{}, code int, message string) error {
	return s.sendMessage(ErrorResponse{
		Jsonrpc: "2.0",
		ID:      id,
		Error:   &Error{Code: code, Message: message},
	})
}

func (s *LanguageServer) sendNotification(method string, params interface{}) error {
	return s.sendMessage(NotificationMessage{Jsonrpc: "2.0", Method: method, Params: params})
}

func (s *LanguageServer) sendMessage(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_, err = fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n%s", len(data), data)
	return err
}
