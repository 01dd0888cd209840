package reconciler

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/dcosodev/news-hub/internal/metrics"
	"github.com/dcosodev/news-hub/internal/model"
	"github.com/dcosodev/news-hub/pkg/news"
)

type ArticleWriter interface {
	SaveBatch(ctx context.Context, articles []model.Article) error
}

type Reconciler struct {
	store  ArticleWriter
	client news.NewsClient
}

func New(store ArticleWriter, client news.NewsClient) *Reconciler {
	return &Reconciler{store: store, client: client}
}

// Reconcile normalizes every article in batch and writes them, together with
// their category counter updates, as a single unit. A normalization or store
// error aborts the whole batch. It returns the number of articles written.
func (r *Reconciler) Reconcile(ctx context.Context, batch map[string][]news.RawArticle) (int, error) {
	var articles []model.Article

	for _, category := range orderedCategories(batch) {
		if !model.IsKnownCategory(category) {
			slog.Info("reconciling category outside the fixed set", "category", category)
		}

		for i, raw := range batch[category] {
			article, err := Normalize(category, raw)
			if err != nil {
				metrics.ReconcileFailures.Inc()
				return 0, fmt.Errorf("normalize %s article %d: %w", category, i, err)
			}
			articles = append(articles, article)
		}
	}

	if len(articles) == 0 {
		return 0, nil
	}

	if err := r.store.SaveBatch(ctx, articles); err != nil {
		metrics.ReconcileFailures.Inc()
		return 0, fmt.Errorf("save batch: %w", err)
	}

	for _, a := range articles {
		metrics.ArticlesReconciled.WithLabelValues(metrics.CategoryLabel(a.Category)).Inc()
	}

	return len(articles), nil
}

// Refresh fetches every fixed category and reconciles the result. The raw
// provider data is returned as fetched.
func (r *Reconciler) Refresh(ctx context.Context) (map[string][]news.RawArticle, error) {
	fetched := news.FetchAllCategories(ctx, r.client)

	saved, err := r.Reconcile(ctx, fetched)
	if err != nil {
		return nil, err
	}

	slog.Info("refresh complete", "source", r.client.Name(), "categories", len(fetched), "saved", saved)
	return fetched, nil
}

// orderedCategories yields the fixed categories first, in their declared
// order, then any other keys sorted by name.
func orderedCategories(batch map[string][]news.RawArticle) []string {
	ordered := make([]string, 0, len(batch))
	for _, c := range model.Categories {
		if _, ok := batch[c]; ok {
			ordered = append(ordered, c)
		}
	}

	var extra []string
	for c := range batch {
		if !model.IsKnownCategory(c) {
			extra = append(extra, c)
		}
	}
	sort.Strings(extra)

	return append(ordered, extra...)
}
