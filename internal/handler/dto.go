package handler

import (
	"github.com/dcosodev/news-hub/internal/model"
	"github.com/dcosodev/news-hub/pkg/news"
)

const publishedLayout = "2006-01-02T15:04:05.999999"

type MessageResponse struct {
	Message string `json:"message"`
}

type FetchNewsResponse struct {
	Message string                       `json:"message"`
	News    map[string][]news.RawArticle `json:"news"`
}

type CategoryNewsResponse struct {
	Category string            `json:"category"`
	News     []news.RawArticle `json:"news"`
}

type UsageResponse struct {
	Endpoint     string `json:"endpoint"`
	RequestCount int    `json:"request_count"`
	LastAccessed string `json:"last_accessed"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// toRawArticle renders a stored article in the provider's shape so stored and
// freshly fetched results look the same to clients.
func toRawArticle(a model.Article) news.RawArticle {
	raw := news.RawArticle{
		Name:          a.Title,
		Description:   a.Description,
		URL:           a.URL,
		DatePublished: a.PublishedAt.UTC().Format(publishedLayout),
		Provider:      []news.Provider{{Name: a.Provider}},
	}

	if a.ImageURL != nil && *a.ImageURL != "" {
		raw.Image = &news.Image{Thumbnail: news.Thumbnail{ContentURL: *a.ImageURL}}
	}

	return raw
}

func toUsageResponse(u model.ApiUsage) UsageResponse {
	return UsageResponse{
		Endpoint:     u.Endpoint,
		RequestCount: u.RequestCount,
		LastAccessed: u.LastAccessed.Format("2006-01-02"),
	}
}
