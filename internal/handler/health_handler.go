package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"timecraft/internal/llm"
)

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

// HealthHandler handles liveness and dependency health endpoints.
type HealthHandler struct {
	db       *gorm.DB
	rewriter llm.Rewriter
}

// NewHealthHandler creates a new health handler. rewriter may be nil for
// services that do not talk to a model.
func NewHealthHandler(db *gorm.DB, rewriter llm.Rewriter) *HealthHandler {
	return &HealthHandler{db: db, rewriter: rewriter}
}

// ComponentHealth reports one dependency check.
type ComponentHealth struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

// DetailedHealth is the full dependency report.
type DetailedHealth struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentHealth `json:"components"`
}

// Basic godoc
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Basic(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Detailed godoc
// @Summary Dependency health with per-component latency
// @Tags health
// @Produce json
// @Success 200 {object} DetailedHealth
// @Failure 503 {object} DetailedHealth
// @Router /health/detailed [get]
func (h *HealthHandler) Detailed(c echo.Context) error {
	ctx := c.Request().Context()
	report := DetailedHealth{
		Status:     statusHealthy,
		Components: map[string]ComponentHealth{},
	}

	start := time.Now()
	dbErr := h.pingDB()
	report.Components["database"] = componentResult(dbErr, start)
	if dbErr != nil {
		report.Status = statusUnhealthy
	}

	if h.rewriter != nil {
		start = time.Now()
		llmErr := h.rewriter.Ping(ctx)
		report.Components["llm"] = componentResult(llmErr, start)
		if llmErr != nil && report.Status == statusHealthy {
			// the rewriter degrades to deterministic fallbacks
			report.Status = statusDegraded
		}
	}

	code := http.StatusOK
	if report.Status == statusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, report)
}

func (h *HealthHandler) pingDB() error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func componentResult(err error, start time.Time) ComponentHealth {
	result := ComponentHealth{
		Status:    statusHealthy,
		LatencyMS: time.Since(start).Milliseconds(),
	}
	if err != nil {
		result.Status = statusUnhealthy
		result.Error = err.Error()
	}
	return result
}
