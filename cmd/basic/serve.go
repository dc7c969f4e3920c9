package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/funvibe/basic/internal/config"
	"github.com/funvibe/basic/internal/history"
	"github.com/funvibe/basic/internal/server"
)

func cmdServe(cfg *config.Config, args []string) int {
	fset := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fset.String("addr", cfg.Server.Addr, "listen address")
	record := fset.Bool("history", false, "record requests in the history database")
	if err := fset.Parse(args); err != nil {
		return 2
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	opts := server.Options{
		Timeout:  cfg.ServerTimeout(),
		MaxDepth: cfg.Interpreter.MaxDepth,
		Logger:   logger,
	}
	if *record {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			return 1
		}
		defer store.Close()
		opts.History = store
	}

	srv, err := server.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}

	lis, err := net.Listen("tcp", *addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.Serve(ctx, lis); err != nil {
		logger.Error("server stopped", "error", err)
		return 1
	}
	return 0
}

// remoteBackend sends REPL inputs to a server.
type remoteBackend struct {
	client *server.Client
}

func (b *remoteBackend) Eval(ctx context.Context, code string) (replResult, error) {
	res, err := b.client.Run(ctx, config.StdinSourceName, code)
	if err != nil {
		return replResult{}, err
	}
	return replResult{Output: res.Output, Value: res.Value, Error: res.Error}, nil
}

func (b *remoteBackend) Reset(ctx context.Context) error {
	_, err := b.client.Reset(ctx)
	return err
}

func (b *remoteBackend) Source() string { return "remote" }

func cmdRemote(cfg *config.Config, args []string) int {
	fset := flag.NewFlagSet("remote", flag.ContinueOnError)
	addr := fset.String("addr", cfg.Server.Addr, "server address")
	code := fset.String("e", "", "run code once and exit")
	if err := fset.Parse(args); err != nil {
		return 2
	}

	client, err := server.Dial(*addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}
	defer client.Close()

	b := &remoteBackend{client: client}
	if *code == "" {
		return runRepl(cfg, b, "BASIC remote REPL ("+*addr+")")
	}

	res, err := b.Eval(context.Background(), *code)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}
	fmt.Print(res.Output)
	if res.Error != "" {
		fmt.Fprintln(os.Stderr, res.Error)
		return 1
	}
	fmt.Println(res.Value)
	return 0
}
