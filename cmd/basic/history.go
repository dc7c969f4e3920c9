package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/funvibe/basic/internal/config"
	"github.com/funvibe/basic/internal/history"
)

func cmdHistory(cfg *config.Config, args []string) int {
	fset := flag.NewFlagSet("history", flag.ContinueOnError)
	n := fset.Int("n", 20, "number of entries to show")
	session := fset.String("session", "", "show every entry of one session")
	if err := fset.Parse(args); err != nil {
		return 2
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}
	defer store.Close()

	ctx := context.Background()
	var entries []history.Entry
	if *session != "" {
		if !history.ValidSessionID(*session) {
			fmt.Fprintf(os.Stderr, "Error: invalid session id %q\n", *session)
			return 2
		}
		entries, err = store.Session(ctx, *session)
	} else {
		entries, err = store.Recent(ctx, *n)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		outcome := e.Result
		if e.Error != "" {
			outcome = firstErrorLine(e.Error)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"), e.Session, e.Source,
			historyLine(e.Input), outcome)
	}
	w.Flush()
	return 0
}

// firstErrorLine picks the "Kind: details" line out of a rendered error.
func firstErrorLine(rendered string) string {
	for _, line := range strings.Split(rendered, "\n") {
		if line != "" && !strings.HasPrefix(line, "Traceback") && !strings.HasPrefix(line, "  File") {
			return line
		}
	}
	return rendered
}
