// Package history records REPL and server inputs in a SQLite database so
// earlier sessions can be listed and replayed.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session    TEXT    NOT NULL,
	source     TEXT    NOT NULL,
	input      TEXT    NOT NULL,
	result     TEXT    NOT NULL DEFAULT '',
	error      TEXT    NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS entries_session ON entries(session, id);
`

// Entry is one evaluated input.
type Entry struct {
	ID        int64
	Session   string
	Source    string
	Input     string
	Result    string
	Error     string
	CreatedAt time.Time
}

// Store is a history database. Its queries are safe for concurrent use;
// Close must not race with them.
type Store struct {
	db *sql.DB
}

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("history: store is closed")

// NewSessionID returns a fresh random session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// ValidSessionID reports whether id looks like a session identifier.
func ValidSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Open opens or creates the database at path. ":memory:" gives a private
// in-memory store.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("history: creating directory for %s: %w", path, err)
		}
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("history: opening %s: %w", path, err)
	}
	// one connection keeps :memory: databases shared and serialises writers
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: connecting to %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Record stores e and returns it with ID and CreatedAt filled in.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if s.db == nil {
		return e, ErrClosed
	}
	if e.Session == "" {
		return e, errors.New("history: entry has no session")
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (session, source, input, result, error, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.Session, e.Source, e.Input, e.Result, e.Error, e.CreatedAt.UnixNano())
	if err != nil {
		return e, fmt.Errorf("history: recording entry: %w", err)
	}
	e.ID, err = res.LastInsertId()
	if err != nil {
		return e, fmt.Errorf("history: reading entry id: %w", err)
	}
	return e, nil
}

// Recent returns up to limit entries, oldest first, ending with the newest.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session, source, input, result, error, created_at FROM
			(SELECT * FROM entries ORDER BY id DESC LIMIT ?) ORDER BY id ASC`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: querying recent entries: %w", err)
	}
	return scanEntries(rows)
}

// Session returns every entry of one session in input order.
func (s *Store) Session(ctx context.Context, session string) ([]Entry, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session, source, input, result, error, created_at FROM entries WHERE session = ? ORDER BY id ASC`,
		session)
	if err != nil {
		return nil, fmt.Errorf("history: querying session %s: %w", session, err)
	}
	return scanEntries(rows)
}

// Prune deletes all but the newest keep entries and reports how many went.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM entries WHERE id NOT IN (SELECT id FROM entries ORDER BY id DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("history: pruning: %w", err)
	}
	return res.RowsAffected()
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created int64
		if err := rows.Scan(&e.ID, &e.Session, &e.Source, &e.Input, &e.Result, &e.Error, &created); err != nil {
			return nil, fmt.Errorf("history: scanning entry: %w", err)
		}
		e.CreatedAt = time.Unix(0, created)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: reading entries: %w", err)
	}
	return entries, nil
}
