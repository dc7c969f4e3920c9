package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseConfig_Full(t *testing.T) {
	yaml := `
repl:
  prompt: "> "
  color: never
history:
  enabled: false
  path: /tmp/h.db
  limit: 50
server:
  addr: 0.0.0.0:9000
  timeout: 250ms
interpreter:
  max_depth: 500
`
	cfg, err := ParseConfig([]byte(yaml), "basic.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Repl.Prompt != "> " {
		t.Errorf("prompt = %q, want \"> \"", cfg.Repl.Prompt)
	}
	if cfg.Repl.Continuation != DefaultContinuation {
		t.Errorf("continuation = %q, want default", cfg.Repl.Continuation)
	}
	if cfg.Repl.Color != ColorNever {
		t.Errorf("color = %q, want never", cfg.Repl.Color)
	}
	if cfg.HistoryEnabled() {
		t.Error("expected history to be disabled")
	}
	if cfg.History.Path != "/tmp/h.db" {
		t.Errorf("history path = %q", cfg.History.Path)
	}
	if cfg.History.Limit != 50 {
		t.Errorf("history limit = %d, want 50", cfg.History.Limit)
	}
	if cfg.Server.Addr != "0.0.0.0:9000" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.ServerTimeout() != 250*time.Millisecond {
		t.Errorf("timeout = %s, want 250ms", cfg.ServerTimeout())
	}
	if cfg.Interpreter.MaxDepth != 500 {
		t.Errorf("max_depth = %d, want 500", cfg.Interpreter.MaxDepth)
	}
}

func TestParseConfig_Empty(t *testing.T) {
	cfg, err := ParseConfig([]byte(""), "basic.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def := Default()
	if cfg.Repl.Prompt != def.Repl.Prompt || cfg.Server.Addr != def.Server.Addr {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if !cfg.HistoryEnabled() {
		t.Error("history should default to enabled")
	}
	if cfg.ServerTimeout() != DefaultServerTimeout {
		t.Errorf("timeout = %s, want %s", cfg.ServerTimeout(), DefaultServerTimeout)
	}
	if strings.HasPrefix(cfg.History.Path, "~") {
		t.Errorf("history path not expanded: %s", cfg.History.Path)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad color", "repl:\n  color: rainbow\n", "repl.color"},
		{"negative limit", "history:\n  limit: -1\n", "history.limit"},
		{"addr without port", "server:\n  addr: localhost\n", "server.addr"},
		{"bad timeout", "server:\n  timeout: soon\n", "server.timeout"},
		{"zero timeout", "server:\n  timeout: 0s\n", "must be positive"},
		{"negative depth", "interpreter:\n  max_depth: -5\n", "interpreter.max_depth"},
		{"not yaml", "repl: [", "parsing basic.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml), "basic.yaml")
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestFindConfig(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	path, err := FindConfig(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// nothing in the temp tree; anything found must live above it
	if path != "" && strings.HasPrefix(path, root) {
		t.Errorf("unexpected config %s", path)
	}

	cfgPath := filepath.Join(root, "a", ConfigFileNameAltYaml)
	if err := os.WriteFile(cfgPath, []byte("repl:\n  prompt: \"? \"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	path, err = FindConfig(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != cfgPath {
		t.Errorf("found %q, want %q", path, cfgPath)
	}

	cfg, err := Discover(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Repl.Prompt != "? " {
		t.Errorf("prompt = %q, want \"? \"", cfg.Repl.Prompt)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/x.db"); got != filepath.Join(home, "x.db") {
		t.Errorf("got %s", got)
	}
	if got := ExpandHome("/abs/x.db"); got != "/abs/x.db" {
		t.Errorf("got %s", got)
	}
	if got := ExpandHome("~user/x"); got != "~user/x" {
		t.Errorf("got %s", got)
	}
}
