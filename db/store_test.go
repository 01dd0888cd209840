package db

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/assert/v2"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		in     string
		driver string
		dsn    string
	}{
		{"postgres://u:p@localhost:5432/news?sslmode=disable", DriverPostgres, "postgres://u:p@localhost:5432/news?sslmode=disable"},
		{"postgresql://localhost/news", DriverPostgres, "postgresql://localhost/news"},
		{"sqlite://data/news.db", DriverSQLite, "data/news.db"},
		{"news.db", DriverSQLite, "news.db"},
	}

	for _, tt := range tests {
		driver, dsn := ParseURL(tt.in)
		assert.Equal(t, tt.driver, driver)
		assert.Equal(t, tt.dsn, dsn)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("mysql", "whatever")
	assert.NotEqual(t, nil, err)
}

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open(DriverSQLite, "")
	assert.Equal(t, true, errors.Is(err, ErrInvalidConfiguration))
}

func TestMigrate_Idempotent(t *testing.T) {
	conn, err := Open(DriverSQLite, ":memory:")
	assert.Equal(t, nil, err)
	defer conn.Close()

	assert.Equal(t, nil, Migrate(conn, DriverSQLite))
	assert.Equal(t, nil, Migrate(conn, DriverSQLite))

	var count int
	err = conn.QueryRow(`SELECT COUNT(*) FROM migration`).Scan(&count)
	assert.Equal(t, nil, err)
	assert.Equal(t, len(migrations[DriverSQLite]), count)

	for _, table := range []string{"article", "category", "api_usage"} {
		var n int
		err := conn.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n)
		assert.Equal(t, nil, err)
		assert.Equal(t, 0, n)
	}
}

func TestReset_DropsTables(t *testing.T) {
	conn, err := Open(DriverSQLite, ":memory:")
	assert.Equal(t, nil, err)
	defer conn.Close()

	assert.Equal(t, nil, Migrate(conn, DriverSQLite))
	_, err = conn.Exec(`INSERT INTO category (name, article_count) VALUES ('Science', 4)`)
	assert.Equal(t, nil, err)

	assert.Equal(t, nil, Reset(conn))
	assert.Equal(t, nil, Migrate(conn, DriverSQLite))

	var n int
	err = conn.QueryRow(`SELECT COUNT(*) FROM category`).Scan(&n)
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, n)
}

func TestPrepare(t *testing.T) {
	conn, err := Open(DriverSQLite, ":memory:")
	assert.Equal(t, nil, err)
	defer conn.Close()

	assert.Equal(t, nil, Prepare(conn, DriverSQLite, false))
	_, err = conn.Exec(`INSERT INTO category (name, article_count) VALUES ('Science', 4)`)
	assert.Equal(t, nil, err)

	count := func() int {
		var n int
		err := conn.QueryRow(`SELECT COUNT(*) FROM category`).Scan(&n)
		assert.Equal(t, nil, err)
		return n
	}

	assert.Equal(t, nil, Prepare(conn, DriverSQLite, false))
	assert.Equal(t, 1, count())

	assert.Equal(t, nil, Prepare(conn, DriverSQLite, true))
	assert.Equal(t, 0, count())
}

func TestCompareMigrations(t *testing.T) {
	needed, err := compareMigrations([]string{"a", "b", "c"}, []string{"a"})
	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"b", "c"}, needed)

	_, err = compareMigrations([]string{"a"}, []string{"a", "b"})
	assert.Equal(t, true, errors.Is(err, ErrNotEnoughSQLMigrations))

	_, err = compareMigrations([]string{"a", "x"}, []string{"a", "b"})
	assert.Equal(t, true, errors.Is(err, ErrIncompatibleSQLMigration))
}

func TestConnectRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := ConnectRedis(context.Background(), mr.Addr())
	assert.Equal(t, nil, err)
	defer client.Close()

	client, err = ConnectRedis(context.Background(), "redis://"+mr.Addr()+"/0")
	assert.Equal(t, nil, err)
	client.Close()

	_, err = ConnectRedis(context.Background(), "")
	assert.Equal(t, true, errors.Is(err, ErrInvalidConfiguration))
}
