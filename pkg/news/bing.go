package news

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dcosodev/news-hub/internal/metrics"
)

type BingClient struct {
	apiKey     string
	endpoint   string
	market     string
	pageSize   int
	httpClient *http.Client
}

func NewBingClient(cfg ProviderConfig) *BingClient {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultBingEndpoint
	}
	market := cfg.Market
	if market == "" {
		market = DefaultMarket
	}
	pageSize := cfg.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &BingClient{
		apiKey:     cfg.APIKey,
		endpoint:   endpoint,
		market:     market,
		pageSize:   pageSize,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *BingClient) Name() string {
	return "Bing"
}

func (c *BingClient) FetchCategory(ctx context.Context, category string) []RawArticle {
	articles, err := c.fetch(ctx, category)
	if err != nil {
		slog.Warn("error fetching news", "source", c.Name(), "category", category, "error", err)
		metrics.ProviderFailures.WithLabelValues(c.Name(), metrics.CategoryLabel(category)).Inc()
		return []RawArticle{}
	}

	metrics.ArticlesFetched.WithLabelValues(c.Name(), metrics.CategoryLabel(category)).Add(float64(len(articles)))
	return articles
}

func (c *BingClient) fetch(ctx context.Context, category string) ([]RawArticle, error) {
	params := url.Values{}
	params.Set("category", category)
	params.Set("count", strconv.Itoa(c.pageSize))
	params.Set("mkt", c.market)
	params.Set("sortBy", "relevance")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("bing request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bing fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bing fetch: unexpected status %d", resp.StatusCode)
	}

	var raw bingResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("bing decode: %w", err)
	}

	if len(raw.Value) > c.pageSize {
		raw.Value = raw.Value[:c.pageSize]
	}

	if raw.Value == nil {
		return []RawArticle{}, nil
	}

	return raw.Value, nil
}

type bingResponse struct {
	Value []RawArticle `json:"value"`
}
