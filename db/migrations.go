package db

import (
	"database/sql"
	"fmt"
	"log/slog"
)

var migrations = map[string][]string{
	DriverPostgres: {
		`CREATE TABLE article (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL,
			published_at TIMESTAMP NOT NULL,
			category TEXT NOT NULL,
			provider TEXT NOT NULL DEFAULT '',
			image_url TEXT
		)`,
		`CREATE INDEX idx_article_category ON article(category)`,
		`CREATE INDEX idx_article_url ON article(url)`,
		`CREATE TABLE category (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			article_count INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE api_usage (
			id BIGSERIAL PRIMARY KEY,
			endpoint TEXT NOT NULL,
			request_count INTEGER NOT NULL DEFAULT 0,
			last_accessed DATE NOT NULL,
			UNIQUE (endpoint, last_accessed)
		)`,
	},
	DriverSQLite: {
		`CREATE TABLE article (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL,
			published_at TIMESTAMP NOT NULL,
			category TEXT NOT NULL,
			provider TEXT NOT NULL DEFAULT '',
			image_url TEXT
		)`,
		`CREATE INDEX idx_article_category ON article(category)`,
		`CREATE INDEX idx_article_url ON article(url)`,
		`CREATE TABLE category (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			article_count INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE api_usage (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			endpoint TEXT NOT NULL,
			request_count INTEGER NOT NULL DEFAULT 0,
			last_accessed DATE NOT NULL,
			UNIQUE (endpoint, last_accessed)
		)`,
	},
}

var migrationTable = map[string]string{
	DriverPostgres: `CREATE TABLE IF NOT EXISTS migration (id SERIAL PRIMARY KEY, query TEXT)`,
	DriverSQLite:   `CREATE TABLE IF NOT EXISTS migration (id INTEGER PRIMARY KEY AUTOINCREMENT, query TEXT)`,
}

// Migrate applies the migrations for driver that are not yet recorded in the
// migration table. Already applied migrations must match the list exactly.
func Migrate(db *sql.DB, driver string) error {
	wanted, ok := migrations[driver]
	if !ok {
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidConfiguration, driver)
	}

	if _, err := db.Exec(migrationTable[driver]); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}

	existing, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	missing, err := compareMigrations(wanted, existing)
	if err != nil {
		return err
	}

	for _, query := range missing {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("%w: %v", ErrStoreFailure, err)
		}
		if _, err := db.Exec(`INSERT INTO migration (query) VALUES ($1)`, query); err != nil {
			return fmt.Errorf("%w: %v", ErrStoreFailure, err)
		}
	}

	if len(missing) > 0 {
		slog.Info("migrations applied", "driver", driver, "count", len(missing))
	}

	return nil
}

// Prepare brings the schema up to date, wiping it first when reset is set.
// Both binaries call it on startup.
func Prepare(db *sql.DB, driver string, reset bool) error {
	if reset {
		if err := Reset(db); err != nil {
			return err
		}
	}
	return Migrate(db, driver)
}

// Reset drops every table owned by the service. Only called when
// RESET_DATABASE is set.
func Reset(db *sql.DB) error {
	for _, table := range []string{"api_usage", "category", "article", "migration"} {
		if _, err := db.Exec(`DROP TABLE IF EXISTS ` + table); err != nil {
			return fmt.Errorf("%w: %v", ErrStoreFailure, err)
		}
	}
	slog.Warn("database reset")
	return nil
}

func appliedMigrations(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT query FROM migration ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}
	defer rows.Close()

	var existing []string
	for rows.Next() {
		var query string
		if err := rows.Scan(&query); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreFailure, err)
		}
		existing = append(existing, query)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}

	return existing, nil
}

func compareMigrations(wanted, existing []string) ([]string, error) {
	if len(wanted) < len(existing) {
		return nil, ErrNotEnoughSQLMigrations
	}

	var needed []string
	for i, want := range wanted {
		switch {
		case i >= len(existing):
			needed = append(needed, want)
		case want != existing[i]:
			return nil, fmt.Errorf("%w: %v", ErrIncompatibleSQLMigration, want)
		}
	}

	return needed, nil
}
