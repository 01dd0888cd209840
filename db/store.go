package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var (
	ErrInvalidConfiguration     = errors.New("invalid configuration")
	ErrStoreFailure             = errors.New("store returned an error")
	ErrNotEnoughSQLMigrations   = errors.New("already more migrations than wanted")
	ErrIncompatibleSQLMigration = errors.New("incompatible migration")
)

// ParseURL maps DATABASE_URL onto a driver name and a DSN. Postgres URLs are
// passed through untouched, anything else is treated as a SQLite file path.
func ParseURL(databaseURL string) (driver, dsn string) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return DriverPostgres, databaseURL
	case strings.HasPrefix(databaseURL, "sqlite://"):
		return DriverSQLite, strings.TrimPrefix(databaseURL, "sqlite://")
	default:
		return DriverSQLite, databaseURL
	}
}

func Open(driver, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%w: empty dsn", ErrInvalidConfiguration)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	switch driver {
	case DriverPostgres:
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	case DriverSQLite:
		// single writer; also keeps ":memory:" databases on one connection
		db.SetMaxOpenConns(1)
	default:
		db.Close()
		return nil, fmt.Errorf("%w: unknown driver %q", ErrInvalidConfiguration, driver)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	return db, nil
}

func Connect(databaseURL string) (*sql.DB, string, error) {
	driver, dsn := ParseURL(databaseURL)
	db, err := Open(driver, dsn)
	return db, driver, err
}
