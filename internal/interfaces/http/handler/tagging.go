package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"loreweave-api/internal/application/tagging"
	"loreweave-api/internal/domain/entity"
	"loreweave-api/internal/domain/repository"
	"loreweave-api/internal/interfaces/http/dto"
	"loreweave-api/internal/interfaces/http/middleware"
	apperrors "loreweave-api/pkg/errors"
)

// TaggingHandler 标签处理器
type TaggingHandler struct {
	tags *tagging.Service
}

// NewTaggingHandler 创建标签处理器
func NewTaggingHandler(tags *tagging.Service) *TaggingHandler {
	return &TaggingHandler{tags: tags}
}

// AddTag 为内容打标签
// @Summary 打标签
// @Tags Tagging
// @Accept json
// @Produce json
// @Param kind path string true "内容类型"
// @Param id path string true "内容 ID"
// @Param body body dto.TagRequest true "标签名"
// @Success 200 {object} dto.Response[dto.TagResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /v1/content/{kind}/{id}/tags [post]
func (h *TaggingHandler) AddTag(c *gin.Context) {
	ctx := c.Request.Context()

	ref, err := dto.BindContentRef(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	tag, err := h.tags.AddTag(ctx, ref, req.Name, middleware.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ToTagResponse(tag))
}

// RemoveTag 为内容解标签
// @Summary 解标签
// @Tags Tagging
// @Produce json
// @Param kind path string true "内容类型"
// @Param id path string true "内容 ID"
// @Param name path string true "标签名"
// @Success 200 {object} dto.Response[dto.RemoveTagResponse]
// @Router /v1/content/{kind}/{id}/tags/{name} [delete]
func (h *TaggingHandler) RemoveTag(c *gin.Context) {
	ctx := c.Request.Context()

	ref, err := dto.BindContentRef(c)
	if err != nil {
		respondError(c, err)
		return
	}

	removed, err := h.tags.RemoveTag(ctx, ref, c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.RemoveTagResponse{Removed: removed})
}

// GetContentTags 获取内容标签
// @Summary 获取内容标签
// @Tags Tagging
// @Produce json
// @Param kind path string true "内容类型"
// @Param id path string true "内容 ID"
// @Success 200 {object} dto.Response[[]dto.TagResponse]
// @Router /v1/content/{kind}/{id}/tags [get]
func (h *TaggingHandler) GetContentTags(c *gin.Context) {
	ctx := c.Request.Context()

	ref, err := dto.BindContentRef(c)
	if err != nil {
		respondError(c, err)
		return
	}

	tags, err := h.tags.GetTags(ctx, ref)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ToTagListResponse(tags))
}

// ListWorldTags 列出世界内全部标签
// @Summary 获取世界标签列表
// @Tags Tagging
// @Produce json
// @Param wid path string true "世界 ID"
// @Success 200 {object} dto.Response[[]dto.TagResponse]
// @Router /v1/worlds/{wid}/tags [get]
func (h *TaggingHandler) ListWorldTags(c *gin.Context) {
	ctx := c.Request.Context()

	tags, err := h.tags.ListWorldTags(ctx, dto.BindWorldID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ToTagListResponse(tags))
}

// ContentByTags 按标签检索内容
// tags 逗号分隔；match=any 取并集，match=all 取交集
// @Summary 按标签检索内容
// @Tags Tagging
// @Produce json
// @Param wid path string true "世界 ID"
// @Param kind path string true "内容类型"
// @Param tags query string true "标签名，逗号分隔"
// @Param match query string false "匹配模式" Enums(any, all)
// @Success 200 {object} dto.Response[[]dto.ContentResponse]
// @Router /v1/worlds/{wid}/content/{kind}/by-tags [get]
func (h *TaggingHandler) ContentByTags(c *gin.Context) {
	ctx := c.Request.Context()

	kind, err := entity.ParseKind(c.Param("kind"))
	if err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.CodeInvalidParam, "invalid content kind"))
		return
	}

	names := splitTagNames(c.Query("tags"))
	mode := repository.TagMatchAny
	if c.Query("match") == "all" {
		mode = repository.TagMatchAll
	}

	contents, err := h.tags.ContentByTags(ctx, dto.BindWorldID(c), kind, names, mode)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ToContentListResponse(contents))
}

// RenameTag 重命名标签
// @Summary 重命名标签
// @Tags Tagging
// @Accept json
// @Produce json
// @Param tag_id path string true "标签 ID"
// @Param body body dto.RenameTagRequest true "新标签名"
// @Success 200 {object} dto.Response[dto.TagResponse]
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/tags/{tag_id} [put]
func (h *TaggingHandler) RenameTag(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RenameTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	tag, err := h.tags.RenameTag(ctx, c.Param("tag_id"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ToTagResponse(tag))
}

// DeleteTag 删除标签及其全部关联
// @Summary 删除标签
// @Tags Tagging
// @Produce json
// @Param tag_id path string true "标签 ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/tags/{tag_id} [delete]
func (h *TaggingHandler) DeleteTag(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.tags.DeleteTag(ctx, c.Param("tag_id")); err != nil {
		respondError(c, err)
		return
	}

	dto.NoContent(c)
}

func splitTagNames(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
