package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dcosodev/news-hub/internal/model"
	"github.com/dcosodev/news-hub/pkg/news"
)

type fakeStore struct {
	articles   map[string][]model.Article
	categories []model.Category
	err        error
}

func (f *fakeStore) FindArticlesByCategory(ctx context.Context, category string) ([]model.Article, error) {
	return f.articles[category], f.err
}

func (f *fakeStore) ListCategories(ctx context.Context) ([]model.Category, error) {
	return f.categories, f.err
}

type fakeRefresher struct {
	fetched map[string][]news.RawArticle
	err     error
	calls   int
}

func (f *fakeRefresher) Refresh(ctx context.Context) (map[string][]news.RawArticle, error) {
	f.calls++
	return f.fetched, f.err
}

type fakeClient struct {
	articles map[string][]news.RawArticle
	calls    []string
}

func (f *fakeClient) Name() string {
	return "Fake"
}

func (f *fakeClient) FetchCategory(ctx context.Context, category string) []news.RawArticle {
	f.calls = append(f.calls, category)
	return f.articles[category]
}

type usageKey struct {
	endpoint string
	day      string
}

type fakeUsageStore struct {
	counts map[usageKey]int
	order  []usageKey
	err    error
}

func newFakeUsageStore() *fakeUsageStore {
	return &fakeUsageStore{counts: map[usageKey]int{}}
}

func (f *fakeUsageStore) UpsertUsage(ctx context.Context, endpoint string, day time.Time) error {
	if f.err != nil {
		return f.err
	}
	key := usageKey{endpoint: endpoint, day: day.Format("2006-01-02")}
	if _, ok := f.counts[key]; !ok {
		f.order = append(f.order, key)
	}
	f.counts[key]++
	return nil
}

func (f *fakeUsageStore) ListUsage(ctx context.Context) ([]model.ApiUsage, error) {
	if f.err != nil {
		return nil, f.err
	}
	var usage []model.ApiUsage
	for i, key := range f.order {
		day, _ := time.Parse("2006-01-02", key.day)
		usage = append(usage, model.ApiUsage{
			ID:           int64(i + 1),
			Endpoint:     key.endpoint,
			RequestCount: f.counts[key],
			LastAccessed: day,
		})
	}
	return usage, nil
}

func newTestRouter(store NewsStore, refresher Refresher, client news.NewsClient, usage UsageStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	usageHandler := NewUsageHandler(usage)
	usageHandler.now = func() time.Time { return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC) }
	Register(r, NewNewsHandler(store, refresher, client), usageHandler)
	return r
}
