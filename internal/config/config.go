package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the contents of a basic.yaml file.
//
// Example basic.yaml:
//
//	repl:
//	  prompt: "basic > "
//	  color: auto
//	history:
//	  path: ~/.basic_history.db
//	  limit: 1000
//	server:
//	  addr: 127.0.0.1:7878
//	  timeout: 5s
//	interpreter:
//	  max_depth: 10000
type Config struct {
	Repl        ReplConfig        `yaml:"repl"`
	History     HistoryConfig     `yaml:"history"`
	Server      ServerConfig      `yaml:"server"`
	Interpreter InterpreterConfig `yaml:"interpreter"`
}

type ReplConfig struct {
	Prompt       string `yaml:"prompt,omitempty"`
	Continuation string `yaml:"continuation,omitempty"`
	// Color is one of auto, always or never.
	Color string `yaml:"color,omitempty"`
}

type HistoryConfig struct {
	// Enabled is a pointer so an explicit "false" survives setDefaults.
	Enabled *bool  `yaml:"enabled,omitempty"`
	Path    string `yaml:"path,omitempty"`
	// Limit is the number of entries loaded into the REPL and kept after it exits.
	Limit int `yaml:"limit,omitempty"`
}

type ServerConfig struct {
	Addr    string `yaml:"addr,omitempty"`
	Timeout string `yaml:"timeout,omitempty"`

	timeout time.Duration
}

type InterpreterConfig struct {
	MaxDepth int `yaml:"max_depth,omitempty"`
}

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const (
	DefaultPrompt         = "basic > "
	DefaultContinuation   = "....  > "
	DefaultHistoryPath    = "~/.basic_history.db"
	DefaultHistoryLimit   = 1000
	DefaultServerAddr     = "127.0.0.1:7878"
	DefaultServerTimeout  = 5 * time.Second
	DefaultMaxDepth       = 10000
	ConfigFileName        = "basic.yaml"
	ConfigFileNameAltYaml = "basic.yml"
)

// Default returns the configuration used when no basic.yaml is found.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads and parses a basic.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses basic.yaml content. path is used in error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig walks up from dir looking for basic.yaml or basic.yml.
// Returns "" with no error when nothing is found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range []string{ConfigFileName, ConfigFileNameAltYaml} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Discover loads the nearest basic.yaml above dir, or the defaults.
func Discover(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}
	return LoadConfig(path)
}

func (c *Config) validate(path string) error {
	switch c.Repl.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%s: repl.color: must be auto, always or never, got %q", path, c.Repl.Color)
	}

	if c.History.Limit < 0 {
		return fmt.Errorf("%s: history.limit: must not be negative", path)
	}

	if c.Server.Addr != "" {
		if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
			return fmt.Errorf("%s: server.addr: %w", path, err)
		}
	}

	if c.Server.Timeout != "" {
		d, err := time.ParseDuration(c.Server.Timeout)
		if err != nil {
			return fmt.Errorf("%s: server.timeout: %w", path, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s: server.timeout: must be positive", path)
		}
		c.Server.timeout = d
	}

	if c.Interpreter.MaxDepth < 0 {
		return fmt.Errorf("%s: interpreter.max_depth: must not be negative", path)
	}

	return nil
}

func (c *Config) setDefaults() {
	if c.Repl.Prompt == "" {
		c.Repl.Prompt = DefaultPrompt
	}
	if c.Repl.Continuation == "" {
		c.Repl.Continuation = DefaultContinuation
	}
	if c.Repl.Color == "" {
		c.Repl.Color = ColorAuto
	}
	if c.History.Enabled == nil {
		enabled := true
		c.History.Enabled = &enabled
	}
	if c.History.Path == "" {
		c.History.Path = DefaultHistoryPath
	}
	c.History.Path = ExpandHome(c.History.Path)
	if c.History.Limit == 0 {
		c.History.Limit = DefaultHistoryLimit
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	if c.Server.timeout == 0 {
		c.Server.timeout = DefaultServerTimeout
	}
	if c.Interpreter.MaxDepth == 0 {
		c.Interpreter.MaxDepth = DefaultMaxDepth
	}
}

// HistoryEnabled reports whether the REPL should record history.
func (c *Config) HistoryEnabled() bool {
	return c.History.Enabled == nil || *c.History.Enabled
}

// ServerTimeout is the per-request evaluation limit.
func (c *Config) ServerTimeout() time.Duration {
	if c.Server.timeout == 0 {
		return DefaultServerTimeout
	}
	return c.Server.timeout
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
