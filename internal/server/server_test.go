package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/funvibe/basic/internal/history"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startServer serves srv over an in-memory listener and returns a dialer for
// new clients.
func startServer(t *testing.T, opts Options) (*Server, func() *Client) {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = quietLogger()
	}
	srv, err := New(opts)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("serve returned %v", err)
		}
	})

	dial := func() *Client {
		t.Helper()
		c, err := Dial("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
		if err != nil {
			t.Fatalf("failed to dial: %v", err)
		}
		t.Cleanup(func() { c.Close() })
		return c
	}
	return srv, dial
}

func run(t *testing.T, c *Client, source string) RunResult {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	res, err := c.Run(ctx, "<remote>", source)
	if err != nil {
		t.Fatalf("run %q failed: %v", source, err)
	}
	return res
}

func TestSessionPersists(t *testing.T) {
	srv, dial := startServer(t, Options{})
	c := dial()

	first := run(t, c, "VAR a = 2")
	if first.SessionID == "" {
		t.Fatal("expected a session id")
	}
	if first.Value != "2" || first.ValueKind != "Number" {
		t.Errorf("unexpected result %+v", first)
	}

	second := run(t, c, "a * 21")
	if second.Value != "42" {
		t.Errorf("expected 42, got %+v", second)
	}
	if second.SessionID != first.SessionID {
		t.Errorf("session changed from %s to %s", first.SessionID, second.SessionID)
	}
	if srv.Sessions() != 1 {
		t.Errorf("expected 1 session, got %d", srv.Sessions())
	}
}

func TestRunResults(t *testing.T) {
	_, dial := startServer(t, Options{})

	tests := []struct {
		source string
		value  string
		kind   string
		output string
		err    string
	}{
		{`PRINT("hi")`, "0", "Number", "hi\n", ""},
		{`"s" + "t"`, `"st"`, "String", "", ""},
		{"1\n2", "[1, 2]", "List", "", ""},
		{"FUN f() -> 1", "<function f>", "Function", "", ""},
		{"PRINT(1)\n1 / 0", "", "", "1\n", "Division by zero"},
		{"INPUT()", "", "", "", "Could not read input: EOF"},
		{"1 +", "", "", "", "Invalid Syntax"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			res := run(t, dial(), tt.source)
			if res.Value != tt.value || res.ValueKind != tt.kind || res.Output != tt.output {
				t.Errorf("unexpected result %+v", res)
			}
			if tt.err == "" && res.Error != "" {
				t.Errorf("unexpected error:\n%s", res.Error)
			}
			if !strings.Contains(res.Error, tt.err) {
				t.Errorf("error %q does not contain %q", res.Error, tt.err)
			}
		})
	}
}

func TestRuntimeErrorHasTraceback(t *testing.T) {
	_, dial := startServer(t, Options{})
	res := run(t, dial(), "FUN f() -> 1 / 0\nf()")
	if !strings.HasPrefix(res.Error, "Traceback (most recent call last):\n") {
		t.Errorf("expected a traceback, got:\n%s", res.Error)
	}
	if !strings.Contains(res.Error, "File <remote>, line 1, in f") {
		t.Errorf("expected frame f in:\n%s", res.Error)
	}
}

func TestReset(t *testing.T) {
	srv, dial := startServer(t, Options{})
	c := dial()
	ctx := context.Background()

	existed, err := c.Reset(ctx)
	if err != nil || existed {
		t.Errorf("reset without session: %v, %v", existed, err)
	}

	run(t, c, "VAR a = 1")
	existed, err = c.Reset(ctx)
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if !existed {
		t.Error("expected the session to exist")
	}
	if c.SessionID != "" {
		t.Errorf("session id not cleared: %s", c.SessionID)
	}
	if srv.Sessions() != 0 {
		t.Errorf("expected no sessions, got %d", srv.Sessions())
	}

	res := run(t, c, "a")
	if !strings.Contains(res.Error, "a is not defined") {
		t.Errorf("expected a fresh session, got %+v", res)
	}
}

func TestSessionErrors(t *testing.T) {
	_, dial := startServer(t, Options{})
	ctx := context.Background()

	tests := []struct {
		id   string
		code codes.Code
	}{
		{history.NewSessionID(), codes.NotFound},
		{"not-a-session", codes.InvalidArgument},
	}
	for _, tt := range tests {
		c := dial()
		c.SessionID = tt.id
		_, err := c.Run(ctx, "", "1")
		if status.Code(err) != tt.code {
			t.Errorf("session %q: expected %s, got %v", tt.id, tt.code, err)
		}
	}
}

func TestTimeout(t *testing.T) {
	_, dial := startServer(t, Options{Timeout: 50 * time.Millisecond})
	res := run(t, dial(), "WHILE 1 THEN 0")
	if !strings.Contains(res.Error, "Execution cancelled") {
		t.Errorf("expected cancellation, got %+v", res)
	}
}

func TestMaxDepth(t *testing.T) {
	_, dial := startServer(t, Options{MaxDepth: 100})
	res := run(t, dial(), "FUN f(n) -> f(n + 1)\nf(0)")
	if !strings.Contains(res.Error, "Maximum recursion depth exceeded") {
		t.Errorf("expected depth error, got %+v", res)
	}
}

func TestHistoryRecording(t *testing.T) {
	store, err := history.Open(filepath.Join(t.TempDir(), "h.db"))
	if err != nil {
		t.Fatalf("failed to open history: %v", err)
	}
	defer store.Close()

	_, dial := startServer(t, Options{History: store})
	c := dial()
	run(t, c, "VAR x = 3")
	run(t, c, "x / 0")

	entries, err := store.Session(context.Background(), c.SessionID)
	if err != nil {
		t.Fatalf("failed to read history: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Source != HistorySource || entries[0].Result != "3" {
		t.Errorf("unexpected first entry %+v", entries[0])
	}
	if !strings.Contains(entries[1].Error, "Division by zero") {
		t.Errorf("unexpected second entry %+v", entries[1])
	}
}

func TestConcurrentSessions(t *testing.T) {
	srv, dial := startServer(t, Options{})

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		c := dial()
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ctx := context.Background()
			if _, err := c.Run(ctx, "", fmt.Sprintf("VAR n = %d", i)); err != nil {
				errs <- err
				return
			}
			res, err := c.Run(ctx, "", "n * 10")
			if err != nil {
				errs <- err
				return
			}
			if want := fmt.Sprint(i * 10); res.Value != want {
				errs <- fmt.Errorf("session %d: expected %s, got %s", i, want, res.Value)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
	if srv.Sessions() != 4 {
		t.Errorf("expected 4 sessions, got %d", srv.Sessions())
	}
}

func TestLoadService(t *testing.T) {
	sd, err := LoadService()
	if err != nil {
		t.Fatalf("failed to load service: %v", err)
	}
	if sd.GetFullyQualifiedName() != ServiceName {
		t.Errorf("unexpected service %s", sd.GetFullyQualifiedName())
	}
	if FullMethod(MethodRun) != "/basic.v1.Interpreter/Run" {
		t.Errorf("unexpected method path %s", FullMethod(MethodRun))
	}
}
