package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dcosodev/news-hub/internal/model"
)

type UsageStore interface {
	UpsertUsage(ctx context.Context, endpoint string, day time.Time) error
	ListUsage(ctx context.Context) ([]model.ApiUsage, error)
}

type UsageHandler struct {
	repository UsageStore
	now        func() time.Time
}

func NewUsageHandler(repository UsageStore) *UsageHandler {
	return &UsageHandler{repository: repository, now: time.Now}
}

// Track counts the request under its concrete path before the route handler
// runs. A failed write is logged and does not fail the request.
func (h *UsageHandler) Track() gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.Request.URL.Path
		if err := h.repository.UpsertUsage(c.Request.Context(), endpoint, h.now()); err != nil {
			slog.Error("error tracking api usage", "endpoint", endpoint, "error", err)
		}
		c.Next()
	}
}

func (h *UsageHandler) GetAPIUsage(c *gin.Context) {
	usage, err := h.repository.ListUsage(c.Request.Context())
	if err != nil {
		slog.Error("error fetching api usage", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Database error", Detail: err.Error()})
		return
	}

	res := make([]UsageResponse, 0, len(usage))
	for _, u := range usage {
		res = append(res, toUsageResponse(u))
	}

	c.JSON(http.StatusOK, res)
}
