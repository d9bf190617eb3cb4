package handler

import (
	"github.com/gin-gonic/gin"

	"loreweave-api/internal/application/linking"
	"loreweave-api/internal/interfaces/http/dto"
	"loreweave-api/internal/interfaces/http/middleware"
)

// LinkingHandler 互链处理器
type LinkingHandler struct {
	links *linking.Service
}

// NewLinkingHandler 创建互链处理器
func NewLinkingHandler(links *linking.Service) *LinkingHandler {
	return &LinkingHandler{links: links}
}

// CreateLink 建立双向互链
// @Summary 建立互链
// @Tags Linking
// @Accept json
// @Produce json
// @Param kind path string true "内容类型"
// @Param id path string true "内容 ID"
// @Param body body dto.LinkRequest true "目标引用"
// @Success 201 {object} dto.Response[dto.LinkResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/content/{kind}/{id}/links [post]
func (h *LinkingHandler) CreateLink(c *gin.Context) {
	ctx := c.Request.Context()

	from, err := dto.BindContentRef(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	to, err := req.To.ToRef()
	if err != nil {
		respondError(c, err)
		return
	}

	link, err := h.links.Link(ctx, from, to, middleware.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Created(c, dto.ToLinkResponse(link))
}

// DeleteLink 解除双向互链
// @Summary 解除互链
// @Tags Linking
// @Produce json
// @Param kind path string true "内容类型"
// @Param id path string true "内容 ID"
// @Param to_kind path string true "目标内容类型"
// @Param to_id path string true "目标内容 ID"
// @Success 200 {object} dto.Response[dto.UnlinkResponse]
// @Router /v1/content/{kind}/{id}/links/{to_kind}/{to_id} [delete]
func (h *LinkingHandler) DeleteLink(c *gin.Context) {
	ctx := c.Request.Context()

	from, err := dto.BindContentRef(c)
	if err != nil {
		respondError(c, err)
		return
	}
	to, err := dto.ContentRefPayload{Kind: c.Param("to_kind"), ID: c.Param("to_id")}.ToRef()
	if err != nil {
		respondError(c, err)
		return
	}

	removed, err := h.links.Unlink(ctx, from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.UnlinkResponse{Removed: removed})
}

// ListLinkedTargets 获取内容的出链目标
// @Summary 获取出链目标
// @Tags Linking
// @Produce json
// @Param kind path string true "内容类型"
// @Param id path string true "内容 ID"
// @Success 200 {object} dto.Response[[]dto.ContentResponse]
// @Router /v1/content/{kind}/{id}/links [get]
func (h *LinkingHandler) ListLinkedTargets(c *gin.Context) {
	ctx := c.Request.Context()

	ref, err := dto.BindContentRef(c)
	if err != nil {
		respondError(c, err)
		return
	}

	contents, err := h.links.LinkedTargets(ctx, ref)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ToContentListResponse(contents))
}

// ListLinkingSources 获取指向内容的来源
// 镜像行对称，结果集与出链目标一致
// @Summary 获取入链来源
// @Tags Linking
// @Produce json
// @Param kind path string true "内容类型"
// @Param id path string true "内容 ID"
// @Success 200 {object} dto.Response[[]dto.ContentResponse]
// @Router /v1/content/{kind}/{id}/backlinks [get]
func (h *LinkingHandler) ListLinkingSources(c *gin.Context) {
	ctx := c.Request.Context()

	ref, err := dto.BindContentRef(c)
	if err != nil {
		respondError(c, err)
		return
	}

	contents, err := h.links.LinkingSources(ctx, ref)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ToContentListResponse(contents))
}
