package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-test/deep"

	"github.com/funvibe/basic/internal/config"
)

func TestIncomplete(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"", false},
		{"VAR x = 1", false},
		{"1 +", true},
		{"PRINT(1", true},
		{"IF 1 THEN", true},
		{"IF 1 THEN\n  1\n", true},
		{"FUN f()\n  1\n", true},
		{"FUN f()\n  1\nEND", false},
		{"1 2", false},
		{`"abc`, false},
	}
	for _, tt := range tests {
		if got := incomplete(tt.src); got != tt.want {
			t.Errorf("incomplete(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestHistoryLine(t *testing.T) {
	if got := historyLine("FUN f()\n1\nEND"); got != "FUN f(); 1; END" {
		t.Errorf("got %q", got)
	}
	if got := historyLine("1 + 1"); got != "1 + 1" {
		t.Errorf("got %q", got)
	}
}

func TestFirstErrorLine(t *testing.T) {
	rendered := "Traceback (most recent call last):\n  File <stdin>, line 1, in <program>\nRuntime Error: Division by zero\n\n1 / 0\n    ^"
	if got := firstErrorLine(rendered); got != "Runtime Error: Division by zero" {
		t.Errorf("got %q", got)
	}
	if got := firstErrorLine("Invalid Syntax: Expected 'END'\nFile x, line 2"); got != "Invalid Syntax: Expected 'END'" {
		t.Errorf("got %q", got)
	}
}

func TestIsSourceFile(t *testing.T) {
	for path, want := range map[string]bool{
		"prog.bas":   true,
		"prog.basic": true,
		"prog.txt":   false,
		"bas":        false,
	} {
		if got := isSourceFile(path); got != want {
			t.Errorf("isSourceFile(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestCollectSources(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.bas", "notes.txt", filepath.Join("sub", "c.basic")} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("1\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := collectSources([]string{dir, filepath.Join(dir, "notes.txt")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{
		filepath.Join(dir, "a.bas"),
		filepath.Join(dir, "sub", "c.basic"),
		filepath.Join(dir, "notes.txt"),
	}
	if diff := deep.Equal(files, expected); diff != nil {
		t.Error(diff)
	}

	if _, err := collectSources([]string{filepath.Join(dir, "missing")}); err == nil {
		t.Error("expected an error for a missing path")
	}
}

func TestFormatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.bas")
	if err := os.WriteFile(path, []byte("VAR   x=1+2"), 0644); err != nil {
		t.Fatal(err)
	}

	changed, err := formatFile(path, false, true)
	if err != nil || !changed {
		t.Fatalf("check: changed=%v err=%v", changed, err)
	}
	if src, _ := os.ReadFile(path); string(src) != "VAR   x=1+2" {
		t.Errorf("check mode modified the file: %q", src)
	}

	if _, err := formatFile(path, true, false); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if src, _ := os.ReadFile(path); string(src) != "VAR x = 1 + 2\n" {
		t.Errorf("unexpected formatted source %q", src)
	}
	changed, err = formatFile(path, false, true)
	if err != nil || changed {
		t.Errorf("formatted file should be stable: changed=%v err=%v", changed, err)
	}

	bad := filepath.Join(filepath.Dir(path), "bad.bas")
	if err := os.WriteFile(bad, []byte("VAR = 1"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := formatFile(bad, false, true); err == nil || !strings.Contains(err.Error(), "Expected identifier") {
		t.Errorf("expected a syntax error, got %v", err)
	}

	commented := filepath.Join(filepath.Dir(path), "commented.bas")
	if err := os.WriteFile(commented, []byte("VAR   x=1 # keep me"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := formatFile(commented, true, false); err == nil || !strings.Contains(err.Error(), "contains comments") {
		t.Errorf("expected comments to block formatting, got %v", err)
	}
	if src, _ := os.ReadFile(commented); string(src) != "VAR   x=1 # keep me" {
		t.Errorf("file with comments was rewritten: %q", src)
	}
}

func TestLocalBackend(t *testing.T) {
	b := newLocalBackend(config.Default())
	ctx := context.Background()

	res, err := b.Eval(ctx, "VAR a = 2")
	if err != nil || res.Value != "2" || res.Error != "" {
		t.Fatalf("unexpected result %+v, %v", res, err)
	}
	res, _ = b.Eval(ctx, "a\na * 3")
	if res.Value != "[2, 6]" {
		t.Errorf("expected [2, 6], got %+v", res)
	}
	res, _ = b.Eval(ctx, "a / 0")
	if res.Value != "" || !strings.Contains(res.Error, "Division by zero") {
		t.Errorf("expected division error, got %+v", res)
	}

	if err := b.Reset(ctx); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	res, _ = b.Eval(ctx, "a")
	if !strings.Contains(res.Error, "a is not defined") {
		t.Errorf("expected a fresh environment, got %+v", res)
	}
	if b.Source() != "repl" {
		t.Errorf("unexpected source %s", b.Source())
	}
}

func TestReplCommands(t *testing.T) {
	var out bytes.Buffer
	r := &repl{cfg: config.Default(), backend: newLocalBackend(config.Default()), out: &out}

	tests := []struct {
		cmd    string
		quit   bool
		output string
	}{
		{":ast", false, "syntax tree display on\n"},
		{":ast", false, "syntax tree display off\n"},
		{":reset", false, "environment reset\n"},
		{":help", false, helpText},
		{":what", false, "unknown command :what. Type :help for commands.\n"},
		{":Q", true, ""},
		{":exit", true, ""},
	}
	for _, tt := range tests {
		out.Reset()
		if quit := r.command(tt.cmd); quit != tt.quit {
			t.Errorf("%s: quit = %v, want %v", tt.cmd, quit, tt.quit)
		}
		if out.String() != tt.output {
			t.Errorf("%s: expected %q, got %q", tt.cmd, tt.output, out.String())
		}
	}
}
