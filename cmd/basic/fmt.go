package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/funvibe/basic/internal/backend"
	"github.com/funvibe/basic/internal/lexer"
	"github.com/funvibe/basic/internal/prettyprinter"
)

func cmdFmt(args []string) int {
	fset := flag.NewFlagSet("fmt", flag.ContinueOnError)
	write := fset.Bool("w", false, "write result to source file instead of stdout")
	check := fset.Bool("check", false, "check format; exit 1 if any file would change")
	if err := fset.Parse(args); err != nil {
		return 2
	}
	paths := fset.Args()
	if len(paths) == 0 {
		paths = []string{"."}
	}

	files, err := collectSources(paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}

	status := 0
	for _, path := range files {
		changed, err := formatFile(path, *write, *check)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			status = 1
			continue
		}
		if *check && changed {
			fmt.Println(path)
			status = 1
		}
	}
	return status
}

// collectSources expands directories into the source files below them.
func collectSources(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isSourceFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func formatFile(path string, write, check bool) (bool, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	root, diag := backend.ParseOnly(filepath.Base(path), string(src))
	if diag != nil {
		return false, fmt.Errorf("%s:\n%s", path, diag.Render())
	}

	if lexer.HasComments(string(src)) {
		return false, fmt.Errorf("%s: contains comments, which formatting would drop", path)
	}

	out := prettyprinter.Format(root) + "\n"
	changed := out != string(src)
	switch {
	case check:
	case write:
		if changed {
			if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
				return false, err
			}
		}
	default:
		fmt.Print(out)
	}
	return changed, nil
}
