package news

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dcosodev/news-hub/internal/metrics"
)

const fallbackKeyPrefix = "newshub:fallback:"

// CachedClient keeps non-empty FetchCategory results in Redis for ttl. Redis
// errors fall through to the wrapped client.
type CachedClient struct {
	client NewsClient
	rdb    *redis.Client
	ttl    time.Duration
}

func NewCachedClient(client NewsClient, rdb *redis.Client, ttl time.Duration) *CachedClient {
	return &CachedClient{client: client, rdb: rdb, ttl: ttl}
}

func (c *CachedClient) Name() string {
	return c.client.Name()
}

func (c *CachedClient) FetchCategory(ctx context.Context, category string) []RawArticle {
	key := fallbackKeyPrefix + c.client.Name() + ":" + category

	cached, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var articles []RawArticle
		decodeErr := json.Unmarshal(cached, &articles)
		if decodeErr == nil {
			metrics.FallbackCacheHits.WithLabelValues("hit").Inc()
			return articles
		}
		slog.Warn("discarding unreadable cache entry", "key", key, "error", decodeErr)
	case errors.Is(err, redis.Nil):
	default:
		slog.Warn("error reading fallback cache", "key", key, "error", err)
	}

	metrics.FallbackCacheHits.WithLabelValues("miss").Inc()
	articles := c.client.FetchCategory(ctx, category)
	if len(articles) == 0 {
		return articles
	}

	payload, err := json.Marshal(articles)
	if err != nil {
		slog.Warn("error encoding cache entry", "key", key, "error", err)
		return articles
	}

	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		slog.Warn("error writing fallback cache", "key", key, "error", err)
	}

	return articles
}
