package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-test/deep"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func inputs(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Input
	}
	return out
}

func TestRecordAndRecent(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	session := NewSessionID()

	for _, in := range []string{"VAR a = 1", "a + 1", "1 / 0"} {
		e := Entry{Session: session, Source: "repl", Input: in}
		if in == "1 / 0" {
			e.Error = "Runtime Error: Division by zero"
		} else {
			e.Result = "2"
		}
		got, err := s.Record(ctx, e)
		if err != nil {
			t.Fatalf("record failed: %v", err)
		}
		if got.ID == 0 || got.CreatedAt.IsZero() {
			t.Errorf("expected ID and timestamp, got %+v", got)
		}
	}

	recent, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if diff := deep.Equal(inputs(recent), []string{"a + 1", "1 / 0"}); diff != nil {
		t.Error(diff)
	}
	if recent[1].Error != "Runtime Error: Division by zero" {
		t.Errorf("error not stored: %+v", recent[1])
	}

	all, err := s.Recent(ctx, 100)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 entries, got %d", len(all))
	}

	none, err := s.Recent(ctx, 0)
	if err != nil || none != nil {
		t.Errorf("expected nothing for limit 0, got %v, %v", none, err)
	}
}

func TestSession(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	a, b := NewSessionID(), NewSessionID()

	for i, e := range []Entry{
		{Session: a, Source: "repl", Input: "1"},
		{Session: b, Source: "grpc", Input: "2"},
		{Session: a, Source: "repl", Input: "3"},
	} {
		if _, err := s.Record(ctx, e); err != nil {
			t.Fatalf("record %d failed: %v", i, err)
		}
	}

	entries, err := s.Session(ctx, a)
	if err != nil {
		t.Fatalf("session failed: %v", err)
	}
	if diff := deep.Equal(inputs(entries), []string{"1", "3"}); diff != nil {
		t.Error(diff)
	}

	entries, err = s.Session(ctx, NewSessionID())
	if err != nil {
		t.Fatalf("session failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestPrune(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	session := NewSessionID()
	for _, in := range []string{"1", "2", "3", "4"} {
		if _, err := s.Record(ctx, Entry{Session: session, Source: "repl", Input: in}); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	removed, err := s.Prune(ctx, 1)
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	if removed != 3 {
		t.Errorf("expected 3 removed, got %d", removed)
	}
	rest, _ := s.Recent(ctx, 10)
	if diff := deep.Equal(inputs(rest), []string{"4"}); diff != nil {
		t.Error(diff)
	}
}

func TestTimestampsRoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	if _, err := s.Record(ctx, Entry{Session: NewSessionID(), Source: "repl", Input: "1", CreatedAt: at}); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	got, _ := s.Recent(ctx, 1)
	if !got[0].CreatedAt.Equal(at) {
		t.Errorf("expected %s, got %s", at, got[0].CreatedAt)
	}
}

func TestRecordRequiresSession(t *testing.T) {
	s := openStore(t)
	if _, err := s.Record(context.Background(), Entry{Input: "1"}); err == nil {
		t.Error("expected an error for an entry without session")
	}
}

func TestClosedStore(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if _, err := s.Recent(context.Background(), 1); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second close failed: %v", err)
	}
}

func TestSessionIDs(t *testing.T) {
	id := NewSessionID()
	if !ValidSessionID(id) {
		t.Errorf("%s should be valid", id)
	}
	if ValidSessionID("not-a-session") {
		t.Error("expected invalid id to be rejected")
	}
	if NewSessionID() == id {
		t.Error("session ids repeat")
	}
}
