package handler

import (
	"github.com/gin-gonic/gin"

	"loreweave-api/internal/application/analytics"
	"loreweave-api/internal/interfaces/http/dto"
)

// AnalyticsHandler 归属与协作分析处理器
type AnalyticsHandler struct {
	reports *analytics.Service
}

// NewAnalyticsHandler 创建分析处理器
func NewAnalyticsHandler(reports *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{reports: reports}
}

// EntityAttribution 单条内容的归属明细
// @Summary 获取内容归属明细
// @Tags Analytics
// @Produce json
// @Param kind path string true "内容类型"
// @Param id path string true "内容 ID"
// @Success 200 {object} dto.Response[analytics.EntityAttribution]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/content/{kind}/{id}/attribution [get]
func (h *AnalyticsHandler) EntityAttribution(c *gin.Context) {
	ctx := c.Request.Context()

	ref, err := dto.BindContentRef(c)
	if err != nil {
		respondError(c, err)
		return
	}

	report, err := h.reports.EntityAttribution(ctx, ref)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, report)
}

// RelatedContent 相关内容发现
// @Summary 发现相关内容
// @Tags Analytics
// @Produce json
// @Param kind path string true "内容类型"
// @Param id path string true "内容 ID"
// @Success 200 {object} dto.Response[analytics.RelatedContent]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/content/{kind}/{id}/related [get]
func (h *AnalyticsHandler) RelatedContent(c *gin.Context) {
	ctx := c.Request.Context()

	ref, err := dto.BindContentRef(c)
	if err != nil {
		respondError(c, err)
		return
	}

	report, err := h.reports.RelatedContent(ctx, ref)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, report)
}

// WorldStats 世界级协作统计
// @Summary 获取世界协作统计
// @Tags Analytics
// @Produce json
// @Param wid path string true "世界 ID"
// @Success 200 {object} dto.Response[analytics.WorldStats]
// @Router /v1/worlds/{wid}/stats [get]
func (h *AnalyticsHandler) WorldStats(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.reports.WorldStats(ctx, dto.BindWorldID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, stats)
}

// AttributionNetwork 世界归属网络报告
// @Summary 获取世界归属网络
// @Tags Analytics
// @Produce json
// @Param wid path string true "世界 ID"
// @Success 200 {object} dto.Response[analytics.AttributionNetwork]
// @Router /v1/worlds/{wid}/attribution [get]
func (h *AnalyticsHandler) AttributionNetwork(c *gin.Context) {
	ctx := c.Request.Context()

	network, err := h.reports.AttributionNetwork(ctx, dto.BindWorldID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, network)
}
