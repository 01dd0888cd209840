package reconciler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dcosodev/news-hub/internal/model"
	"github.com/dcosodev/news-hub/pkg/news"
)

var ErrInvalidArticle = errors.New("invalid article")

// Layouts tried after the trailing Z is stripped. Parsed values carry no zone
// and are read as UTC.
var publishedLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParsePublished strips any trailing "Z" from the provider timestamp and
// parses the rest as a UTC-naive ISO-8601 value. An explicit offset is
// converted to UTC.
func ParsePublished(value string) (time.Time, error) {
	trimmed := strings.TrimRight(value, "Z")

	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}

	if t, err := time.Parse(time.RFC3339Nano, trimmed); err == nil {
		return t.UTC(), nil
	}

	return time.Time{}, fmt.Errorf("%w: unparseable datePublished %q", ErrInvalidArticle, value)
}

// Normalize maps a provider article into the stored shape for category.
func Normalize(category string, raw news.RawArticle) (model.Article, error) {
	if raw.Name == "" {
		return model.Article{}, fmt.Errorf("%w: missing name", ErrInvalidArticle)
	}
	if raw.URL == "" {
		return model.Article{}, fmt.Errorf("%w: missing url", ErrInvalidArticle)
	}

	publishedAt, err := ParsePublished(raw.DatePublished)
	if err != nil {
		return model.Article{}, err
	}

	article := model.Article{
		Title:       raw.Name,
		Description: raw.Description,
		URL:         raw.URL,
		PublishedAt: publishedAt,
		Category:    category,
	}

	if len(raw.Provider) > 0 {
		article.Provider = raw.Provider[0].Name
	}

	if raw.Image != nil && raw.Image.Thumbnail.ContentURL != "" {
		imageURL := raw.Image.Thumbnail.ContentURL
		article.ImageURL = &imageURL
	}

	return article, nil
}
