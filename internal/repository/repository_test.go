package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/dcosodev/news-hub/db"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.Migrate(conn, db.DriverSQLite); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return conn
}

func categoryCounts(t *testing.T, repo *ArticleRepository) map[string]int {
	t.Helper()

	categories, err := repo.ListCategories(context.Background())
	assert.Equal(t, nil, err)

	counts := make(map[string]int, len(categories))
	for _, c := range categories {
		counts[c.Name] = c.ArticleCount
	}
	return counts
}

func strPtr(s string) *string {
	return &s
}
