package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DBStore persists encrypted tokens as rows of a single SQLite table.
type DBStore struct {
	db *sql.DB
}

// NewDBStore opens (or creates) the SQLite database at path and ensures the
// records table exists.
func NewDBStore(path string) (*DBStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	if err := createTable(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("database %s not usable: %w", path, err)
	}

	return &DBStore{db: db}, nil
}

// createTable creates the records table if it does not exist yet. The
// autoincrement id provides insertion order on read.
func createTable(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		token TEXT NOT NULL
	)`)
	return err
}

// Append inserts one token row.
func (s *DBStore) Append(token string) error {
	if _, err := s.db.Exec(`INSERT INTO records (token) VALUES (?)`, token); err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}
	return nil
}

// ReadAll returns every stored token ordered by insertion.
func (s *DBStore) ReadAll() ([]string, error) {
	rows, err := s.db.Query(`SELECT token FROM records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	return tokens, nil
}

// Close closes the underlying database handle.
func (s *DBStore) Close() error {
	return s.db.Close()
}
