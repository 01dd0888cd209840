package news

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"

	"github.com/dcosodev/news-hub/internal/metrics"
)

// FinnHubClient serves market news. Only Business (as Finnhub's "general"
// feed) and Finnhub's own category names return articles.
type FinnHubClient struct {
	client   *finnhub.DefaultApiService
	pageSize int
}

func NewFinnHubClient(cfg ProviderConfig) *FinnHubClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	pageSize := cfg.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	fhCfg := finnhub.NewConfiguration()
	fhCfg.AddDefaultHeader("X-Finnhub-Token", cfg.APIKey)
	fhCfg.HTTPClient = &http.Client{Timeout: timeout}
	client := finnhub.NewAPIClient(fhCfg).DefaultApi
	return &FinnHubClient{client: client, pageSize: pageSize}
}

func (c *FinnHubClient) Name() string {
	return "FinnHub"
}

func (c *FinnHubClient) FetchCategory(ctx context.Context, category string) []RawArticle {
	fhCategory, ok := finnhubCategory(category)
	if !ok {
		slog.Debug("category not served by provider", "source", c.Name(), "category", category)
		return []RawArticle{}
	}

	res, _, err := c.client.MarketNews(ctx).Category(fhCategory).Execute()
	if err != nil {
		slog.Warn("error fetching news", "source", c.Name(), "category", category, "error", err)
		metrics.ProviderFailures.WithLabelValues(c.Name(), metrics.CategoryLabel(category)).Inc()
		return []RawArticle{}
	}

	if len(res) > c.pageSize {
		res = res[:c.pageSize]
	}

	articles := make([]RawArticle, 0, len(res))
	for _, news := range res {
		articles = append(articles, fromMarketNews(news))
	}

	metrics.ArticlesFetched.WithLabelValues(c.Name(), metrics.CategoryLabel(category)).Add(float64(len(articles)))
	return articles
}

func finnhubCategory(category string) (string, bool) {
	switch c := strings.ToLower(category); c {
	case "business", "general":
		return "general", true
	case "forex", "crypto", "merger":
		return c, true
	default:
		return "", false
	}
}

func fromMarketNews(news finnhub.MarketNews) RawArticle {
	a := RawArticle{Provider: []Provider{}}

	if news.Headline != nil {
		a.Name = *news.Headline
	}

	if news.Summary != nil {
		a.Description = *news.Summary
	}

	if news.Url != nil {
		a.URL = *news.Url
	}

	if news.Datetime != nil {
		a.DatePublished = time.Unix(*news.Datetime, 0).UTC().Format("2006-01-02T15:04:05Z")
	}

	if news.Source != nil && *news.Source != "" {
		a.Provider = []Provider{{Name: *news.Source}}
	}

	if news.Image != nil && *news.Image != "" {
		a.Image = &Image{Thumbnail: Thumbnail{ContentURL: *news.Image}}
	}

	return a
}
