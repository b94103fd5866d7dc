package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection.
// In-memory databases are private to a connection, so the pool is pinned to one.
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

const schema = `
-- Boards: one per dashboard page session
CREATE TABLE IF NOT EXISTS boards (
    id TEXT PRIMARY KEY,
    query TEXT NOT NULL DEFAULT '',
    status_filter TEXT NOT NULL DEFAULT 'all'
        CHECK(status_filter IN ('all', 'active', 'inactive', 'pending')),
    dialog_open INTEGER NOT NULL DEFAULT 0,
    draft TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    last_activity TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Projects, ordered by seq within a board
CREATE TABLE IF NOT EXISTS projects (
    board_id TEXT NOT NULL,
    id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    name TEXT NOT NULL,
    api_key TEXT NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('active', 'inactive', 'pending')),
    created_at TEXT NOT NULL,
    PRIMARY KEY (board_id, id),
    FOREIGN KEY (board_id) REFERENCES boards(id)
);
CREATE INDEX IF NOT EXISTS idx_board_projects ON projects(board_id, seq);

-- Enabled integrations per project
CREATE TABLE IF NOT EXISTS project_integrations (
    board_id TEXT NOT NULL,
    project_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    PRIMARY KEY (board_id, project_id, name),
    FOREIGN KEY (board_id, project_id) REFERENCES projects(board_id, id)
);
`

// RunMigrations creates the schema. It is safe to run more than once.
func (db *DB) RunMigrations() error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
