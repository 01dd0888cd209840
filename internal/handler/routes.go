package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Register mounts the public API. Every route in the tracked group records a
// usage hit; /health and /metrics do not.
func Register(r *gin.Engine, newsHandler *NewsHandler, usageHandler *UsageHandler) {
	tracked := r.Group("/", usageHandler.Track())
	tracked.GET("/", newsHandler.GetRoot)
	tracked.GET("/fetch-news", newsHandler.FetchNews)
	tracked.GET("/news/:category", newsHandler.GetNewsByCategory)
	tracked.GET("/categories", newsHandler.GetCategories)
	tracked.GET("/api-usage", usageHandler.GetAPIUsage)

	r.GET("/health", newsHandler.GetHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
