// Package sqlite implements repository.SessionRepository on SQLite.
//
// Only browser sessions live here: who is logged in, their favorites, and the
// dark-mode flag. The prompt catalog is an immutable fixture and never touches
// the database.
//
// STORAGE MODES:
//   - ":memory:" (the default) keeps sessions for the life of the process,
//     which is as long as the server can tell a browser session lasts.
//   - A file path such as "data/sessions.db" keeps them across restarts,
//     as long as SESSION_SECRET is fixed so old cookies still verify.
//
// The driver is modernc.org/sqlite, a pure-Go SQLite, so the binary builds
// without cgo.
package sqlite

import (
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// memoryPath is the DSN for a private in-memory database.
const memoryPath = ":memory:"

// schemaVersion is stored in PRAGMA user_version once migrate has run.
const schemaVersion = 1

// DB is the session store. It is safe for concurrent use; database/sql
// serialises access to the single in-memory connection.
type DB struct {
	conn *sql.DB
}

// New opens the database at dbPath and brings its schema up to date.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Each connection to ":memory:" is a separate empty database, so the
	// pool must never hold more than one.
	if dbPath == memoryPath {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets page renders read sessions while a favorite toggle writes.
	// busy_timeout covers the short window where two writers collide.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("sqlite: %s: %w", pragma, err)
		}
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the underlying pool. With ":memory:" every session is gone
// afterwards.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema on a fresh database. A database already at
// schemaVersion is left alone; a newer one is refused.
func (db *DB) migrate() error {
	var version int
	if err := db.conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	switch {
	case version == schemaVersion:
		return nil
	case version > schemaVersion:
		return fmt.Errorf("schema version %d is newer than supported version %d", version, schemaVersion)
	}

	// favorites is a JSON array of prompt ids in the order they were marked.
	// It is only ever read and written whole, so a column beats a join table.
	_, err := db.conn.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS sessions (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL DEFAULT '',
			favorites   TEXT NOT NULL DEFAULT '[]',
			dark_mode   INTEGER NOT NULL DEFAULT 0,
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_updated_at ON sessions(updated_at);
		PRAGMA user_version = %d;
	`, schemaVersion))
	if err != nil {
		return fmt.Errorf("creating sessions table: %w", err)
	}

	return nil
}
