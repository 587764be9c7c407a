package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/piyush-pb/Personal-Finance-Tracker/internal/errors"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/store"
)

const healthTimeout = 2 * time.Second

// HealthHandler reports whether the API can reach its store.
type HealthHandler struct {
	store store.Pinger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(s store.Pinger) *HealthHandler {
	return &HealthHandler{store: s}
}

// HealthResponse is the body of a healthy response.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health pings the store.
// @Summary     Health check
// @Description Reports ok when the backing store answers a ping
// @Tags        health
// @Produce     json
// @Success     200 {object} HealthResponse "Healthy"
// @Failure     503 {object} ErrorResponse "Store unreachable"
// @Router      /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrServiceUnavailable, err))
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
