package handler

import (
	"github.com/gin-gonic/gin"

	"loreweave-api/internal/application/timeline"
	"loreweave-api/internal/interfaces/http/dto"
	apperrors "loreweave-api/pkg/errors"
)

// TimelineHandler 时间线与搜索处理器
type TimelineHandler struct {
	timelines *timeline.Service
}

// NewTimelineHandler 创建时间线处理器
func NewTimelineHandler(timelines *timeline.Service) *TimelineHandler {
	return &TimelineHandler{timelines: timelines}
}

// Timeline 跨类型时间线
// @Summary 获取世界时间线
// @Tags Timeline
// @Produce json
// @Param wid path string true "世界 ID"
// @Param kinds query string false "内容类型，逗号分隔"
// @Param author query string false "作者过滤"
// @Param tags query string false "标签过滤，逗号分隔"
// @Param created_after query string false "RFC3339 下界"
// @Param created_before query string false "RFC3339 上界"
// @Success 200 {object} dto.Response[[]dto.ContentResponse]
// @Router /v1/worlds/{wid}/timeline [get]
func (h *TimelineHandler) Timeline(c *gin.Context) {
	ctx := c.Request.Context()

	filters, err := dto.BindTimelineFilters(c)
	if err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.CodeInvalidParam, "invalid timeline filters"))
		return
	}
	pageReq := dto.BindPage(c)

	items, total, err := h.timelines.Timeline(ctx, dto.BindWorldID(c), filters, timeline.Page{
		Offset: (pageReq.Page - 1) * pageReq.PageSize,
		Limit:  pageReq.PageSize,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	meta := dto.NewPageMeta(pageReq.Page, pageReq.PageSize, total)
	dto.SuccessWithPage(c, dto.ToContentListResponse(items), meta)
}

// Search 世界内全文搜索
// @Summary 搜索世界内容
// @Tags Timeline
// @Produce json
// @Param wid path string true "世界 ID"
// @Param q query string true "搜索词"
// @Param sort query string false "排序方式" Enums(relevance, created_desc, created_asc, title)
// @Success 200 {object} dto.Response[[]dto.SearchHitResponse]
// @Router /v1/worlds/{wid}/search [get]
func (h *TimelineHandler) Search(c *gin.Context) {
	ctx := c.Request.Context()

	query := c.Query("q")
	if query == "" {
		dto.BadRequest(c, "query parameter q is required")
		return
	}

	filters, err := dto.BindTimelineFilters(c)
	if err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.CodeInvalidParam, "invalid search filters"))
		return
	}
	pageReq := dto.BindPage(c)

	sortMode := timeline.SortRelevance
	switch timeline.SortMode(c.Query("sort")) {
	case timeline.SortCreatedDesc:
		sortMode = timeline.SortCreatedDesc
	case timeline.SortCreatedAsc:
		sortMode = timeline.SortCreatedAsc
	case timeline.SortTitle:
		sortMode = timeline.SortTitle
	}

	hits, total, err := h.timelines.Search(ctx, dto.BindWorldID(c), query, filters, sortMode, timeline.Page{
		Offset: (pageReq.Page - 1) * pageReq.PageSize,
		Limit:  pageReq.PageSize,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	meta := dto.NewPageMeta(pageReq.Page, pageReq.PageSize, total)
	dto.SuccessWithPage(c, dto.ToSearchHitListResponse(hits), meta)
}
