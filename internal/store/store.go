// Package store persists graded answers in a local SQLite file.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	_ "modernc.org/sqlite"
)

const dbFileName = "cheesequiz.db"

// sqlitePragmas tune the answer log for one TUI writer and the occasional
// reader from `cheesequiz logs` or `cheesequiz serve`. journal_mode reports
// "memory" instead of "wal" for in-memory databases.
var sqlitePragmas = []struct{ name, value string }{
	{"journal_mode", "WAL"},
	{"busy_timeout", "5000"},
	{"synchronous", "NORMAL"},
	{"foreign_keys", "ON"},
}

// Store wraps the answer log database.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
}

// Open connects to the SQLite database named by dsn, which may be a file
// path or a file: URI, and creates the answer log table when missing.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	for _, p := range sqlitePragmas {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA %s = %s", p.name, p.value)); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", p.name, err)
		}
	}

	s := &Store{db: db, drv: entsql.OpenDB(dialect.SQLite, db)}
	if err := migrate(context.Background(), s.drv); err != nil {
		s.Close()
		return nil, fmt.Errorf("migrate answer log: %w", err)
	}
	return s, nil
}

// DB exposes the connection pool, mainly for tests and ad-hoc inspection.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.drv.Close() }

func (s *Store) AnswerLogRepo() AnswerLogRepo {
	return &answerLogRepo{drv: s.drv}
}

// DefaultDBPath returns $CHEESEQUIZ_DB when set, otherwise cheesequiz.db
// under the XDG data directory. The parent directory is created.
func DefaultDBPath() (string, error) {
	path := os.Getenv("CHEESEQUIZ_DB")
	if path == "" {
		dir, err := dataDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(dir, dbFileName)
	}
	return path, EnsureDir(path)
}

// dataDir is $XDG_DATA_HOME/cheesequiz, falling back to ~/.local/share.
func dataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "cheesequiz"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "cheesequiz"), nil
}

// EnsureDir makes sure the directory holding path exists.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
