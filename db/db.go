// ABOUTME: SQLite connection setup for the contact store
// ABOUTME: WAL journal, enforced foreign keys, single writer
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// WAL for concurrent reads during writes; foreign_keys so the
// master_profile slot's ON DELETE CASCADE actually fires.
const dsnOptions = "?_journal_mode=WAL&_foreign_keys=on"

// OpenDatabase opens (creating if needed) the contact database at path
// and ensures the schema exists.
func OpenDatabase(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+dsnOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single connection: the store is single-user and this avoids
	// SQLITE_BUSY on interleaved writes.
	db.SetMaxOpenConns(1)

	if err := InitSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}
