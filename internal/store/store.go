// Package store persists each user's data blob and auth records in SQLite.
// The blob is the full serialized UserData document, passed through a Codec
// so it can be stored encrypted at rest.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pulsehq/pulse/internal/habit"
)

// DB wraps the SQLite connection and the blob codec.
type DB struct {
	conn  *sql.DB
	codec Codec
}

// Open opens (or creates) the database at path.
func Open(path string, codec Codec) (*DB, error) {
	conn, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA temp_store=MEMORY",
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	db := &DB{conn: conn, codec: codec}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the raw sql.DB for direct queries.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// migrate runs all schema migrations.
func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			username TEXT PRIMARY KEY,
			blob TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS credentials (
			username TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			expires_at DATETIME NOT NULL
		)`,
	}
	for _, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return fmt.Errorf("applying migration: %w", err)
		}
	}
	return nil
}

// legacyRenames maps old habit names to their current ones. Applied
// best-effort on every load so blobs written by older versions keep
// working without a separate migration step.
var legacyRenames = map[string]string{
	"Sleeping before 12": "Sleep",
}

// Load reads and decodes a user's blob. A user with no stored row gets a
// fresh empty blob. Missing sub-maps are repaired and legacy habit names
// migrated before returning.
func (db *DB) Load(username string) (*habit.UserData, error) {
	var stored []byte
	err := db.conn.QueryRow(`SELECT blob FROM users WHERE username = ?`, username).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return habit.NewUserData(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading data for %s: %w", username, err)
	}

	plaintext, err := db.codec.Decode(stored)
	if err != nil {
		return nil, err
	}

	var u habit.UserData
	if err := json.Unmarshal(plaintext, &u); err != nil {
		return nil, fmt.Errorf("%w: parsing blob JSON: %v", ErrCorruptedBlob, err)
	}
	u.EnsureMaps()
	for from, to := range legacyRenames {
		u.RenameHabit(from, to)
	}
	return &u, nil
}

// Save encodes and upserts a user's blob. Last writer wins.
func (db *DB) Save(username string, u *habit.UserData) error {
	plaintext, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("serializing data for %s: %w", username, err)
	}
	stored, err := db.codec.Encode(plaintext)
	if err != nil {
		return err
	}

	_, err = db.conn.Exec(`
		INSERT INTO users (username, blob, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(username) DO UPDATE SET blob = excluded.blob, updated_at = excluded.updated_at`,
		username, stored, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving data for %s: %w", username, err)
	}
	return nil
}
