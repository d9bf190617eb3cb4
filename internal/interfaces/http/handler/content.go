package handler

import (
	"github.com/gin-gonic/gin"

	"loreweave-api/internal/application/content"
	"loreweave-api/internal/domain/entity"
	"loreweave-api/internal/domain/repository"
	"loreweave-api/internal/interfaces/http/dto"
	"loreweave-api/internal/interfaces/http/middleware"
	apperrors "loreweave-api/pkg/errors"
)

// ContentHandler 内容处理器
type ContentHandler struct {
	contents *content.Service
}

// NewContentHandler 创建内容处理器
func NewContentHandler(contents *content.Service) *ContentHandler {
	return &ContentHandler{contents: contents}
}

// CreateContent 创建内容
// @Summary 创建内容
// @Tags Content
// @Accept json
// @Produce json
// @Param wid path string true "世界 ID"
// @Param kind path string true "内容类型" Enums(page, essay, character, story, image)
// @Param body body dto.CreateContentRequest true "内容"
// @Success 201 {object} dto.Response[dto.ContentResponse]
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /v1/worlds/{wid}/content/{kind} [post]
func (h *ContentHandler) CreateContent(c *gin.Context) {
	ctx := c.Request.Context()

	kind, err := entity.ParseKind(c.Param("kind"))
	if err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.CodeInvalidParam, "invalid content kind"))
		return
	}

	var req dto.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	entry, err := req.ToEntity(kind, dto.BindWorldID(c), middleware.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.contents.Create(ctx, entry); err != nil {
		respondError(c, err)
		return
	}

	dto.Created(c, dto.ToContentResponse(entry))
}

// GetContent 获取内容
// @Summary 获取内容
// @Tags Content
// @Produce json
// @Param kind path string true "内容类型"
// @Param id path string true "内容 ID"
// @Param include_deleted query bool false "包含软删除行"
// @Success 200 {object} dto.Response[dto.ContentResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/content/{kind}/{id} [get]
func (h *ContentHandler) GetContent(c *gin.Context) {
	ctx := c.Request.Context()

	ref, err := dto.BindContentRef(c)
	if err != nil {
		respondError(c, err)
		return
	}

	entry, err := h.contents.Get(ctx, ref, dto.BindIncludeDeleted(c))
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ToContentResponse(entry))
}

// ListContent 获取世界内指定类型的内容列表
// @Summary 获取内容列表
// @Tags Content
// @Produce json
// @Param wid path string true "世界 ID"
// @Param kind path string true "内容类型"
// @Param author_id query string false "作者 ID"
// @Param include_deleted query bool false "包含软删除行"
// @Param deleted_only query bool false "仅软删除行"
// @Success 200 {object} dto.Response[[]dto.ContentResponse]
// @Router /v1/worlds/{wid}/content/{kind} [get]
func (h *ContentHandler) ListContent(c *gin.Context) {
	ctx := c.Request.Context()

	kind, err := entity.ParseKind(c.Param("kind"))
	if err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.CodeInvalidParam, "invalid content kind"))
		return
	}
	pageReq := dto.BindPage(c)

	filter := repository.ContentFilter{
		AuthorID:       c.Query("author_id"),
		IncludeDeleted: dto.BindIncludeDeleted(c),
		DeletedOnly:    c.Query("deleted_only") == "true",
		TitleQuery:     c.Query("title"),
	}

	result, err := h.contents.List(ctx, dto.BindWorldID(c), kind, filter,
		repository.NewPagination(pageReq.Page, pageReq.PageSize))
	if err != nil {
		respondError(c, err)
		return
	}

	meta := dto.NewPageMeta(pageReq.Page, pageReq.PageSize, int(result.Total))
	dto.SuccessWithPage(c, dto.ToContentListResponse(result.Items), meta)
}

// UpdateContent 常规写路径
// 除软删除三元组外任一字段变化都会被不可变守卫拒绝
// @Summary 更新内容
// @Tags Content
// @Accept json
// @Produce json
// @Param kind path string true "内容类型"
// @Param id path string true "内容 ID"
// @Param body body dto.CreateContentRequest true "内容"
// @Success 200 {object} dto.Response[dto.ContentResponse]
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/content/{kind}/{id} [put]
func (h *ContentHandler) UpdateContent(c *gin.Context) {
	ctx := c.Request.Context()

	ref, err := dto.BindContentRef(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	stored, err := h.contents.Get(ctx, ref, true)
	if err != nil {
		respondError(c, err)
		return
	}
	proposed, err := req.ToProposed(stored)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.contents.Write(ctx, proposed); err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ToContentResponse(proposed))
}

// ForceWriteContent 管理员旁路写入
// @Summary 强制更新内容
// @Tags Admin
// @Accept json
// @Produce json
// @Param kind path string true "内容类型"
// @Param id path string true "内容 ID"
// @Param body body dto.CreateContentRequest true "内容"
// @Success 200 {object} dto.Response[dto.ContentResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/admin/content/{kind}/{id} [put]
func (h *ContentHandler) ForceWriteContent(c *gin.Context) {
	ctx := c.Request.Context()

	ref, err := dto.BindContentRef(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	stored, err := h.contents.Get(ctx, ref, true)
	if err != nil {
		respondError(c, err)
		return
	}
	proposed, err := req.ToProposed(stored)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.contents.ForceWrite(ctx, proposed); err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ToContentResponse(proposed))
}

// SoftDeleteContent 软删除内容
// @Summary 软删除内容
// @Tags Content
// @Produce json
// @Param kind path string true "内容类型"
// @Param id path string true "内容 ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/content/{kind}/{id} [delete]
func (h *ContentHandler) SoftDeleteContent(c *gin.Context) {
	ctx := c.Request.Context()

	ref, err := dto.BindContentRef(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.contents.SoftDelete(ctx, ref, middleware.ActorID(c)); err != nil {
		respondError(c, err)
		return
	}

	dto.NoContent(c)
}

// RestoreContent 撤销软删除
// @Summary 恢复内容
// @Tags Content
// @Produce json
// @Param kind path string true "内容类型"
// @Param id path string true "内容 ID"
// @Success 200 {object} dto.Response[dto.ContentResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/content/{kind}/{id}/restore [post]
func (h *ContentHandler) RestoreContent(c *gin.Context) {
	ctx := c.Request.Context()

	ref, err := dto.BindContentRef(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.contents.Restore(ctx, ref); err != nil {
		respondError(c, err)
		return
	}

	entry, err := h.contents.Get(ctx, ref, false)
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, dto.ToContentResponse(entry))
}

// PurgeContent 管理员物理删除
// @Summary 物理删除内容
// @Tags Admin
// @Produce json
// @Param kind path string true "内容类型"
// @Param id path string true "内容 ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/admin/content/{kind}/{id} [delete]
func (h *ContentHandler) PurgeContent(c *gin.Context) {
	ctx := c.Request.Context()

	ref, err := dto.BindContentRef(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.contents.Purge(ctx, ref); err != nil {
		respondError(c, err)
		return
	}

	dto.NoContent(c)
}
