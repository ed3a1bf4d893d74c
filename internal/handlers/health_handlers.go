package handlers

import (
	"net/http"
	"time"

	"pettouch/internal/caching"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// HealthHandlers reports service liveness and dependency health
type HealthHandlers struct {
	db       *pgxpool.Pool
	cacheSvc caching.CacheService
}

// NewHealthHandlers creates a new health handlers instance
func NewHealthHandlers(db *pgxpool.Pool, cacheSvc caching.CacheService) *HealthHandlers {
	return &HealthHandlers{db: db, cacheSvc: cacheSvc}
}

// Health handles GET /health
func (h *HealthHandlers) Health(c echo.Context) error {
	ctx := c.Request().Context()

	status := http.StatusOK
	checks := map[string]string{
		"database": "ok",
		"cache":    "ok",
	}

	if err := h.db.Ping(ctx); err != nil {
		checks["database"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	if err := h.cacheSvc.Ping(ctx); err != nil {
		checks["cache"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, map[string]interface{}{
		"status": http.StatusText(status),
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
	})
}

// Ready handles GET /health/ready. Readiness only needs the database;
// a degraded cache slows requests but does not make them fail.
func (h *HealthHandlers) Ready(c echo.Context) error {
	if err := h.db.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
