package repository

import (
	"context"
	"database/sql"

	"github.com/dcosodev/news-hub/internal/model"
)

type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// SaveBatch inserts every article and bumps its category counter inside one
// transaction. Nothing is visible unless the whole batch commits. IDs are
// written back into articles.
func (r *ArticleRepository) SaveBatch(ctx context.Context, articles []model.Article) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i := range articles {
		a := &articles[i]

		err = tx.QueryRowContext(ctx, `
			INSERT INTO article(title, description, url, published_at, category, provider, image_url)
			VALUES($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`, a.Title, a.Description, a.URL, a.PublishedAt, a.Category, a.Provider, a.ImageURL).Scan(&a.ID)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO category(name, article_count)
			VALUES($1, 1)
			ON CONFLICT (name) DO UPDATE SET article_count = category.article_count + 1
		`, a.Category)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *ArticleRepository) FindArticlesByCategory(ctx context.Context, category string) ([]model.Article, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, url, published_at, category, provider, image_url
		FROM article
		WHERE category = $1
		ORDER BY id ASC
	`, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []model.Article
	for rows.Next() {
		var a model.Article
		err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.URL, &a.PublishedAt, &a.Category, &a.Provider, &a.ImageURL)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}

// SeedCategories creates a zero-count row for every name that is missing.
func (r *ArticleRepository) SeedCategories(ctx context.Context, names []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, name := range names {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO category(name, article_count)
			VALUES($1, 0)
			ON CONFLICT (name) DO NOTHING
		`, name)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *ArticleRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, article_count
		FROM category
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ArticleCount); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}
