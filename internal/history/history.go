// Package history persists REPL input lines in a local sqlite database so a
// new session can recall what earlier ones ran.
package history

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS history (
	id    INTEGER PRIMARY KEY AUTOINCREMENT,
	entry TEXT NOT NULL,
	at    INTEGER NOT NULL
);`

// Store is a REPL history backed by one sqlite file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path. ":memory:"
// gives an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Append records one input line.
func (s *Store) Append(entry string) error {
	_, err := s.db.Exec(`INSERT INTO history (entry, at) VALUES (?, ?)`,
		entry, time.Now().Unix())
	return err
}

// Recent returns up to n entries, oldest first.
func (s *Store) Recent(n int) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT entry FROM (SELECT id, entry FROM history ORDER BY id DESC LIMIT ?) ORDER BY id ASC`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []string
	for rows.Next() {
		var e string
		if err := rows.Scan(&e); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
