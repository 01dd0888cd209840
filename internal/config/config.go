package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dcosodev/news-hub/pkg/news"
)

const (
	defaultPort             = "8080"
	defaultDatabaseURL      = "news.db"
	defaultFallbackCacheTTL = 10 * time.Minute
)

type Config struct {
	Port             string
	DatabaseURL      string
	ResetDatabase    bool
	News             news.ProviderConfig
	RedisURL         string
	FallbackCacheTTL time.Duration
	AllowedOrigins   []string
}

// Load reads the configuration from the environment. Callers are expected to
// have loaded any .env file beforehand.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", defaultPort),
		DatabaseURL:      getEnv("DATABASE_URL", defaultDatabaseURL),
		RedisURL:         os.Getenv("REDIS_URL"),
		FallbackCacheTTL: defaultFallbackCacheTTL,
		AllowedOrigins:   splitList(getEnv("ALLOWED_ORIGINS", "*")),
		News: news.ProviderConfig{
			Provider: strings.ToLower(getEnv("NEWS_PROVIDER", news.ProviderBing)),
			Endpoint: getEnv("BING_NEWS_ENDPOINT", news.DefaultBingEndpoint),
			Market:   getEnv("NEWS_MARKET", news.DefaultMarket),
			PageSize: news.DefaultPageSize,
			Timeout:  news.DefaultTimeout,
		},
	}

	switch cfg.News.Provider {
	case news.ProviderBing:
		cfg.News.APIKey = os.Getenv("BING_NEWS_API_KEY")
	case news.ProviderFinnhub:
		cfg.News.APIKey = os.Getenv("FINNHUB_API_KEY")
	default:
		return nil, fmt.Errorf("unknown NEWS_PROVIDER %q", cfg.News.Provider)
	}

	var err error
	if cfg.ResetDatabase, err = getBool("RESET_DATABASE", false); err != nil {
		return nil, err
	}
	if cfg.News.PageSize, err = getInt("NEWS_PAGE_SIZE", news.DefaultPageSize); err != nil {
		return nil, err
	}
	if cfg.News.PageSize < 1 {
		return nil, fmt.Errorf("NEWS_PAGE_SIZE must be positive, got %d", cfg.News.PageSize)
	}
	if cfg.News.Timeout, err = getDuration("FETCH_TIMEOUT", news.DefaultTimeout); err != nil {
		return nil, err
	}
	if cfg.FallbackCacheTTL, err = getDuration("FALLBACK_CACHE_TTL", defaultFallbackCacheTTL); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return i, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
