package hospitaldb

import (
	"database/sql"
	"fmt"

	"carecompass.healthdata.org/internal/appconf"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// initDB creates a new SQLite database with the hospitals, treatments and
// users tables.
func initDB(config Config) (*sql.DB, error) {
	if config.Env == appconf.Test && config.DBPath != ":memory:" {
		return nil, fmt.Errorf("test environment requires an in-memory database, got %q", config.DBPath)
	}

	db, err := sql.Open("sqlite", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// The pure-Go driver does not support concurrent writers on a single
	// connection pool; serialize access through one connection.
	db.SetMaxOpenConns(1)

	_, err = db.Exec("PRAGMA foreign_keys = ON;")
	if err != nil {
		return nil, fmt.Errorf("error enabling foreign keys: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}

	if err := createTables(tx); err != nil {
		tx.Rollback() // nolint:errcheck
		return nil, err
	}

	_, err = tx.Exec(`
		CREATE INDEX IF NOT EXISTS idx_hospitals_city ON hospitals(city);
		CREATE INDEX IF NOT EXISTS idx_hospitals_coords ON hospitals(lat, lon);
		CREATE INDEX IF NOT EXISTS idx_treatments_hospital_id ON treatments(hospital_id);
	`)
	if err != nil {
		tx.Rollback() // nolint:errcheck
		return nil, fmt.Errorf("error creating indexes: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing transaction: %w", err)
	}

	return db, nil
}

func createTables(tx *sql.Tx) error {
	stmts := []struct {
		table string
		ddl   string
	}{
		{"users", `
			CREATE TABLE IF NOT EXISTS users (
				id TEXT PRIMARY KEY,
				email TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`},
		{"hospitals", `
			CREATE TABLE IF NOT EXISTS hospitals (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				city TEXT NOT NULL,
				address TEXT NOT NULL DEFAULT '',
				lat REAL NOT NULL DEFAULT 0,
				lon REAL NOT NULL DEFAULT 0,
				has_coords INTEGER NOT NULL DEFAULT 0,
				rating REAL NOT NULL DEFAULT 0,
				total_cases INTEGER NOT NULL DEFAULT 0,
				total_cost REAL NOT NULL DEFAULT 0,
				average_cost REAL NOT NULL DEFAULT 0,
				utilization INTEGER NOT NULL DEFAULT 0
			)`},
		{"treatments", `
			CREATE TABLE IF NOT EXISTS treatments (
				hospital_id TEXT NOT NULL REFERENCES hospitals(id) ON DELETE CASCADE,
				description TEXT NOT NULL,
				case_count INTEGER NOT NULL DEFAULT 0,
				total_cost REAL NOT NULL DEFAULT 0,
				average_cost REAL NOT NULL DEFAULT 0,
				PRIMARY KEY (hospital_id, description)
			)`},
	}

	for _, s := range stmts {
		if _, err := tx.Exec(s.ddl); err != nil {
			return fmt.Errorf("error creating table %s: %w", s.table, err)
		}
	}
	return nil
}
