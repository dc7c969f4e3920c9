package diagnostics

import (
	"fmt"
	"strings"

	"github.com/funvibe/basic/internal/token"
)

type ErrorCode string

const (
	ErrL001 ErrorCode = "L001" // illegal character
	ErrL002 ErrorCode = "L002" // expected character

	ErrP001 ErrorCode = "P001" // invalid syntax

	ErrR001 ErrorCode = "R001" // generic runtime error
	ErrR002 ErrorCode = "R002" // type mismatch
	ErrR003 ErrorCode = "R003" // division by zero
	ErrR004 ErrorCode = "R004" // index out of bounds
	ErrR005 ErrorCode = "R005" // wrong number of arguments
	ErrR006 ErrorCode = "R006" // undefined name
	ErrR007 ErrorCode = "R007" // bad built-in argument
	ErrR008 ErrorCode = "R008" // recursion limit or cancellation
)

var kindNames = map[ErrorCode]string{
	ErrL001: "Illegal Character",
	ErrL002: "Expected Character",
	ErrP001: "Invalid Syntax",
}

// Kind is the human readable error name printed before the details.
func (c ErrorCode) Kind() string {
	if name, ok := kindNames[c]; ok {
		return name
	}
	return "Runtime Error"
}

// IsRuntime reports whether the code belongs to the interpreter stage.
func (c ErrorCode) IsRuntime() bool {
	return strings.HasPrefix(string(c), "R")
}

// Traceable is a call frame that can be walked to build a traceback.
type Traceable interface {
	TraceName() string
	// TraceParent returns the calling frame, or nil for the root frame.
	TraceParent() Traceable
	// TraceEntry is the position in the parent frame where this frame was entered.
	TraceEntry() token.Position
}

// DiagnosticError is an error tied to a span of source text.
type DiagnosticError struct {
	Code    ErrorCode
	Details string
	Start   token.Position
	End     token.Position
	// Frame is set for runtime errors only.
	Frame Traceable
}

func NewError(code ErrorCode, start, end token.Position, format string, args ...interface{}) *DiagnosticError {
	details := format
	if len(args) > 0 {
		details = fmt.Sprintf(format, args...)
	}
	return &DiagnosticError{Code: code, Details: details, Start: start, End: end}
}

// NewTokenError spans a single token.
func NewTokenError(code ErrorCode, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return NewError(code, tok.Start, tok.End, format, args...)
}

// NewRuntimeError records the frame the error was raised in.
func NewRuntimeError(code ErrorCode, start, end token.Position, frame Traceable, format string, args ...interface{}) *DiagnosticError {
	err := NewError(code, start, end, format, args...)
	err.Frame = frame
	return err
}

func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.Kind(), e.Details)
}

// Render produces the full report: a traceback for runtime errors, the file
// and line for earlier stages, then the offending source with carets.
func (e *DiagnosticError) Render() string {
	var b strings.Builder
	if e.Code.IsRuntime() {
		b.WriteString(e.Traceback())
		fmt.Fprintf(&b, "%s: %s", e.Code.Kind(), e.Details)
	} else {
		fmt.Fprintf(&b, "%s: %s\n", e.Code.Kind(), e.Details)
		fmt.Fprintf(&b, "File %s, line %d", e.Start.File, e.Start.Line+1)
	}
	b.WriteString("\n\n")
	b.WriteString(RenderCaret(e.Start.Source, e.Start, e.End))
	return b.String()
}

// Traceback lists the frames from the outermost call to the one that failed.
func (e *DiagnosticError) Traceback() string {
	var lines []string
	pos := e.Start
	for frame := e.Frame; frame != nil; frame = frame.TraceParent() {
		lines = append(lines, fmt.Sprintf("  File %s, line %d, in %s\n", pos.File, pos.Line+1, frame.TraceName()))
		pos = frame.TraceEntry()
	}
	var b strings.Builder
	b.WriteString("Traceback (most recent call last):\n")
	for i := len(lines) - 1; i >= 0; i-- {
		b.WriteString(lines[i])
	}
	return b.String()
}
