package kv

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// SchemaVersion is the latest sqlite schema version.
// Bump this when adding migrations.
const SchemaVersion = 1

// SQLiteFile is the database file name inside the data directory.
const SQLiteFile = "history.db"

// SQLite keeps one row per set member; pos preserves insertion order.
type SQLite struct {
	mu     sync.Mutex
	db     *sql.DB
	closed bool
}

// OpenSQLite opens (or creates) dir/history.db with WAL enabled.
func OpenSQLite(dir string) (*SQLite, error) {
	if dir == "" {
		return nil, fmt.Errorf("kv: sqlite backend needs a directory")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("kv: create directory: %w", err)
	}

	dbPath := filepath.Join(dir, SQLiteFile)
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("kv: open database: %w", err)
	}
	// a single connection keeps PutSet transactions strictly serialized
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	_ = os.Chmod(dbPath, 0600)

	return &SQLite{db: db}, nil
}

// migrate applies schema migrations based on user_version.
func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return fmt.Errorf("kv: get user_version: %w", err)
	}

	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS entries (
		  set_key TEXT    NOT NULL,
		  pos     INTEGER NOT NULL,
		  value   TEXT    NOT NULL,
		  PRIMARY KEY (set_key, pos)
		);
		`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("kv: migration 1 failed: %w", err)
		}
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", 1)); err != nil {
			return fmt.Errorf("kv: set user_version: %w", err)
		}
	}

	return nil
}

func (s *SQLite) GetSet(key string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	rows, err := s.db.Query("SELECT value FROM entries WHERE set_key = ? ORDER BY pos ASC", key)
	if err != nil {
		return nil, fmt.Errorf("kv: query %s: %w", key, err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("kv: scan %s: %w", key, err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (s *SQLite) PutSet(key string, values []string) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("kv: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec("DELETE FROM entries WHERE set_key = ?", key); err != nil {
		return fmt.Errorf("kv: clear %s: %w", key, err)
	}
	for i, v := range values {
		if _, err = tx.Exec("INSERT INTO entries (set_key, pos, value) VALUES (?, ?, ?)", key, i, v); err != nil {
			return fmt.Errorf("kv: insert %s: %w", key, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("kv: commit %s: %w", key, err)
	}
	return nil
}

func (s *SQLite) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	rows, err := s.db.Query("SELECT DISTINCT set_key FROM entries ORDER BY set_key")
	if err != nil {
		return nil, fmt.Errorf("kv: list keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
