package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"loreweave-api/internal/infrastructure/persistence/postgres"
	"loreweave-api/internal/infrastructure/persistence/redis"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	pg      *postgres.Client
	redis   *redis.Client
	version string
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(pg *postgres.Client, redisClient *redis.Client, version string) *HealthHandler {
	return &HealthHandler{
		pg:      pg,
		redis:   redisClient,
		version: version,
	}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type readinessCheck struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
}

type readinessResponse struct {
	Status string                     `json:"status"`
	Checks map[string]*readinessCheck `json:"checks,omitempty"`
}

// Health 健康检查接口
// @Summary 健康检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: h.version,
	})
}

// Ready 就绪检查接口
// @Summary 就绪检查
// @Tags System
// @Produce json
// @Success 200 {object} readinessResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]*readinessCheck{
		"postgres": {Status: "unknown"},
		"redis":    {Status: "disabled"},
	}

	ready := true

	start := time.Now()
	if err := h.pg.HealthCheck(ctx); err != nil {
		checks["postgres"].Status = "down"
		checks["postgres"].Error = err.Error()
		ready = false
	} else {
		checks["postgres"].Status = "up"
	}
	checks["postgres"].LatencyMs = time.Since(start).Milliseconds()

	if h.redis != nil {
		start = time.Now()
		if err := h.redis.HealthCheck(ctx); err != nil {
			checks["redis"].Status = "down"
			checks["redis"].Error = err.Error()
			ready = false
		} else {
			checks["redis"].Status = "up"
		}
		checks["redis"].LatencyMs = time.Since(start).Milliseconds()
	}

	status := http.StatusOK
	resp := readinessResponse{Status: "ready", Checks: checks}
	if !ready {
		status = http.StatusServiceUnavailable
		resp.Status = "not ready"
	}
	c.JSON(status, resp)
}
