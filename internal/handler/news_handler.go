package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dcosodev/news-hub/internal/model"
	"github.com/dcosodev/news-hub/pkg/news"
)

type NewsStore interface {
	FindArticlesByCategory(ctx context.Context, category string) ([]model.Article, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
}

type Refresher interface {
	Refresh(ctx context.Context) (map[string][]news.RawArticle, error)
}

type NewsHandler struct {
	repository NewsStore
	refresher  Refresher
	fallback   news.NewsClient
}

// fallback serves categories that have no stored articles yet. Its results
// are returned as-is and never persisted.
func NewNewsHandler(repository NewsStore, refresher Refresher, fallback news.NewsClient) *NewsHandler {
	return &NewsHandler{repository: repository, refresher: refresher, fallback: fallback}
}

func (h *NewsHandler) GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, MessageResponse{Message: "Welcome to the News API"})
}

func (h *NewsHandler) FetchNews(c *gin.Context) {
	fetched, err := h.refresher.Refresh(c.Request.Context())
	if err != nil {
		slog.Error("error refreshing news", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Refresh failed", Detail: err.Error()})
		return
	}

	c.JSON(http.StatusOK, FetchNewsResponse{
		Message: "News fetched and stored successfully",
		News:    fetched,
	})
}

func (h *NewsHandler) GetNewsByCategory(c *gin.Context) {
	category := c.Param("category")

	articles, err := h.repository.FindArticlesByCategory(c.Request.Context(), category)
	if err != nil {
		slog.Error("error fetching articles", "category", category, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Database error", Detail: err.Error()})
		return
	}

	if len(articles) == 0 {
		slog.Info("no stored articles, fetching from provider", "category", category, "source", h.fallback.Name())
		fetched := h.fallback.FetchCategory(c.Request.Context(), category)
		if fetched == nil {
			fetched = []news.RawArticle{}
		}
		c.JSON(http.StatusOK, CategoryNewsResponse{Category: category, News: fetched})
		return
	}

	res := make([]news.RawArticle, 0, len(articles))
	for _, a := range articles {
		res = append(res, toRawArticle(a))
	}

	c.JSON(http.StatusOK, CategoryNewsResponse{Category: category, News: res})
}

func (h *NewsHandler) GetCategories(c *gin.Context) {
	categories, err := h.repository.ListCategories(c.Request.Context())
	if err != nil {
		slog.Error("error fetching categories", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Database error", Detail: err.Error()})
		return
	}

	res := make([]string, 0, len(categories))
	for _, category := range categories {
		res = append(res, category.Name)
	}

	c.JSON(http.StatusOK, res)
}

func (h *NewsHandler) GetHealth(c *gin.Context) {
	_, err := h.repository.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}
