package news

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dcosodev/news-hub/internal/model"
)

const (
	ProviderBing    = "bing"
	ProviderFinnhub = "finnhub"

	DefaultBingEndpoint = "https://api.bing.microsoft.com/v7.0/news"
	DefaultMarket       = "en-US"
	DefaultPageSize     = 10
	DefaultTimeout      = 30 * time.Second
)

// RawArticle is the provider's native article shape. Other providers are
// mapped into it so the reconciler only ever sees one shape.
//
// A decoded RawArticle keeps the item exactly as the provider sent it and
// encodes back to those bytes, fields this struct does not name included.
// Values built in code encode from their fields.
type RawArticle struct {
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	URL           string     `json:"url"`
	DatePublished string     `json:"datePublished"`
	Provider      []Provider `json:"provider"`
	Image         *Image     `json:"image,omitempty"`

	raw json.RawMessage
}

type rawArticleFields RawArticle

func (a *RawArticle) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var fields rawArticleFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*a = RawArticle(fields)
	a.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (a RawArticle) MarshalJSON() ([]byte, error) {
	if a.raw != nil {
		return a.raw, nil
	}
	return json.Marshal(rawArticleFields(a))
}

type Provider struct {
	Name string `json:"name"`
}

type Image struct {
	Thumbnail Thumbnail `json:"thumbnail"`
}

type Thumbnail struct {
	ContentURL string `json:"contentUrl"`
}

// NewsClient fetches at most one page of articles for a category. A failed
// provider call yields an empty slice, never an error.
type NewsClient interface {
	FetchCategory(ctx context.Context, category string) []RawArticle
	Name() string
}

type ProviderConfig struct {
	Provider string
	APIKey   string
	Endpoint string
	Market   string
	PageSize int
	Timeout  time.Duration
}

func NewClient(cfg ProviderConfig) (NewsClient, error) {
	switch cfg.Provider {
	case ProviderBing:
		return NewBingClient(cfg), nil
	case ProviderFinnhub:
		return NewFinnHubClient(cfg), nil
	default:
		return nil, fmt.Errorf("unknown news provider %q", cfg.Provider)
	}
}

// FetchAllCategories calls FetchCategory once per fixed category. Every
// category gets an entry, empty when the provider returned nothing.
func FetchAllCategories(ctx context.Context, client NewsClient) map[string][]RawArticle {
	all := make(map[string][]RawArticle, len(model.Categories))
	for _, category := range model.Categories {
		articles := client.FetchCategory(ctx, category)
		if articles == nil {
			articles = []RawArticle{}
		}
		all[category] = articles
	}
	return all
}
