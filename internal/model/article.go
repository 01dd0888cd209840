package model

import "time"

const (
	CategoryBusiness      = "Business"
	CategoryTechnology    = "Technology"
	CategoryHealth        = "Health"
	CategoryScience       = "Science"
	CategorySports        = "Sports"
	CategoryEntertainment = "Entertainment"
)

// Categories is the fixed set fetched on every refresh and seeded at startup.
// Names are case-sensitive.
var Categories = []string{
	CategoryBusiness,
	CategoryTechnology,
	CategoryHealth,
	CategoryScience,
	CategorySports,
	CategoryEntertainment,
}

type Article struct {
	ID          int64
	Title       string
	Description string
	URL         string
	PublishedAt time.Time
	Category    string
	Provider    string
	ImageURL    *string
}

// Category.ArticleCount is a running total of reconciled articles. It is
// never recomputed from the article table.
type Category struct {
	ID           int64
	Name         string
	ArticleCount int
}

type ApiUsage struct {
	ID           int64
	Endpoint     string
	RequestCount int
	LastAccessed time.Time
}

func IsKnownCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}
