package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger is implemented by the store connections.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports whether the store is reachable.
type HealthHandler struct {
	store   Pinger
	timeout time.Duration
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store, timeout: 2 * time.Second}
}

// Health godoc
// @Summary Liveness and store connectivity
// @Tags health
// @Produce json
// @Success 200 {object} Response
// @Failure 500 {object} errors.ErrorResponse
// @Router /healthz [get]
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping store: %w", err)
	}
	return c.JSON(http.StatusOK, success(http.StatusOK, "ok"))
}
