package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/funvibe/basic/internal/config"
	"github.com/funvibe/basic/internal/evaluator"
)

const appName = "basic"

func main() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	os.Exit(dispatch(os.Args[1:]))
}

func dispatch(args []string) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}

	if len(args) == 0 {
		if evaluator.IsTerminal(os.Stdin) {
			return cmdRepl(cfg)
		}
		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input: %s\n", err)
			return 1
		}
		return runSource(cfg, config.StdinSourceName, string(input), false)
	}

	switch cmd := args[0]; cmd {
	case "repl":
		return cmdRepl(cfg)
	case "fmt":
		return cmdFmt(args[1:])
	case "serve":
		return cmdServe(cfg, args[1:])
	case "remote":
		return cmdRemote(cfg, args[1:])
	case "history":
		return cmdHistory(cfg, args[1:])
	case "-e":
		if len(args) < 2 {
			fmt.Fprintf(os.Stderr, "%s: -e requires an argument\n", appName)
			return 2
		}
		return runSource(cfg, config.StdinSourceName, strings.Join(args[1:], " "), true)
	case "-h", "--help", "help":
		usage(os.Stdout)
		return 0
	default:
		if strings.HasPrefix(cmd, "-") {
			fmt.Fprintf(os.Stderr, "%s: unknown flag %q\n", appName, cmd)
			usage(os.Stderr)
			return 2
		}
		return runFile(cfg, cmd)
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `Usage:
  %[1]s                              Start the REPL (or run stdin when piped).
  %[1]s <file.bas>                   Run a program.
  %[1]s -e <code>                    Run code given on the command line.
  %[1]s fmt [-w] [-check] <file...>  Format programs.
  %[1]s serve [-addr host:port]      Serve the gRPC interpreter.
  %[1]s remote [-addr host:port]     REPL against a running server.
  %[1]s history [-n N] [-session ID] List recorded inputs.
`, appName)
}

// loadConfig reads the nearest basic.yaml; BASIC_CONFIG names one explicitly.
func loadConfig() (*config.Config, error) {
	if path := os.Getenv("BASIC_CONFIG"); path != "" {
		return config.LoadConfig(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.Default(), nil
	}
	return config.Discover(wd)
}

// isSourceFile checks if a file has a recognized source extension
func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
