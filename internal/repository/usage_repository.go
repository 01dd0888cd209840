package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/dcosodev/news-hub/internal/model"
)

type UsageRepository struct {
	db *sql.DB
}

func NewUsageRepository(db *sql.DB) *UsageRepository {
	return &UsageRepository{db: db}
}

// UpsertUsage counts one request to endpoint on day. Only the calendar date
// of day is stored.
func (r *UsageRepository) UpsertUsage(ctx context.Context, endpoint string, day time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO api_usage(endpoint, request_count, last_accessed)
		VALUES($1, 1, $2)
		ON CONFLICT (endpoint, last_accessed) DO UPDATE SET request_count = api_usage.request_count + 1
	`, endpoint, Day(day))
	return err
}

func (r *UsageRepository) ListUsage(ctx context.Context) ([]model.ApiUsage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, endpoint, request_count, last_accessed
		FROM api_usage
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usage []model.ApiUsage
	for rows.Next() {
		var u model.ApiUsage
		if err := rows.Scan(&u.ID, &u.Endpoint, &u.RequestCount, &u.LastAccessed); err != nil {
			return nil, err
		}
		usage = append(usage, u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return usage, nil
}

// Day truncates t to midnight UTC of its local calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
