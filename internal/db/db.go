package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open returns a sqlite-backed snapshot store. The whole application state
// lives in two versioned JSON snapshots; sqlite is only the durable
// key-value layer underneath them.
func Open(path string) (*sql.DB, error) {
	sqldb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	sqldb.SetMaxOpenConns(1)
	if err := sqldb.Ping(); err != nil {
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}
	if _, err := sqldb.Exec(`
CREATE TABLE IF NOT EXISTS snapshots (
  name TEXT PRIMARY KEY,
  version INTEGER NOT NULL,
  payload TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return nil, fmt.Errorf("ensure snapshots table: %w", err)
	}
	return sqldb, nil
}

func loadSnapshot(sqldb *sql.DB, name string) (version int, payload []byte, found bool, err error) {
	var raw string
	err = sqldb.QueryRow(`SELECT version, payload FROM snapshots WHERE name = ?`, name).Scan(&version, &raw)
	if err == sql.ErrNoRows {
		return 0, nil, false, nil
	}
	if err != nil {
		return 0, nil, false, fmt.Errorf("load snapshot %q: %w", name, err)
	}
	return version, []byte(raw), true, nil
}

func saveSnapshot(sqldb *sql.DB, name string, version int, payload []byte) error {
	if _, err := sqldb.Exec(`
INSERT INTO snapshots(name, version, payload, updated_at)
VALUES(?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(name) DO UPDATE SET version=excluded.version, payload=excluded.payload, updated_at=CURRENT_TIMESTAMP
`, name, version, string(payload)); err != nil {
		return fmt.Errorf("save snapshot %q: %w", name, err)
	}
	return nil
}
