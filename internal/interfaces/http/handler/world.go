package handler

import (
	"github.com/gin-gonic/gin"

	"loreweave-api/internal/application/world"
	"loreweave-api/internal/domain/entity"
	"loreweave-api/internal/domain/repository"
	"loreweave-api/internal/interfaces/http/dto"
	"loreweave-api/internal/interfaces/http/middleware"
)

// WorldHandler 世界处理器
type WorldHandler struct {
	worlds *world.Service
}

// NewWorldHandler 创建世界处理器
func NewWorldHandler(worlds *world.Service) *WorldHandler {
	return &WorldHandler{worlds: worlds}
}

// CreateWorld 创建世界
// @Summary 创建世界
// @Tags Worlds
// @Accept json
// @Produce json
// @Param body body dto.CreateWorldRequest true "世界信息"
// @Success 201 {object} dto.Response[dto.WorldResponse]
// @Failure 422 {object} dto.ErrorResponse
// @Router /v1/worlds [post]
func (h *WorldHandler) CreateWorld(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateWorldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	w := entity.NewWorld(req.Title, req.Description, middleware.ActorID(c), req.CreatorName)
	if req.IsPublic != nil {
		w.IsPublic = *req.IsPublic
	}

	if err := h.worlds.Create(ctx, w); err != nil {
		respondError(c, err)
		return
	}

	dto.Created(c, dto.ToWorldResponse(w))
}

// GetWorld 获取世界
// @Summary 获取世界
// @Tags Worlds
// @Produce json
// @Param wid path string true "世界 ID"
// @Success 200 {object} dto.Response[dto.WorldResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/worlds/{wid} [get]
func (h *WorldHandler) GetWorld(c *gin.Context) {
	ctx := c.Request.Context()

	w, err := h.worlds.Get(ctx, dto.BindWorldID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ToWorldResponse(w))
}

// ListWorlds 获取世界列表
// @Summary 获取世界列表
// @Tags Worlds
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页条数" default(20)
// @Success 200 {object} dto.Response[[]dto.WorldResponse]
// @Router /v1/worlds [get]
func (h *WorldHandler) ListWorlds(c *gin.Context) {
	ctx := c.Request.Context()
	pageReq := dto.BindPage(c)

	var result *repository.PagedResult[*entity.World]
	var err error
	if creatorID := c.Query("creator_id"); creatorID != "" {
		result, err = h.worlds.ListByCreator(ctx, creatorID, repository.NewPagination(pageReq.Page, pageReq.PageSize))
	} else {
		result, err = h.worlds.List(ctx, repository.NewPagination(pageReq.Page, pageReq.PageSize))
	}
	if err != nil {
		respondError(c, err)
		return
	}

	meta := dto.NewPageMeta(pageReq.Page, pageReq.PageSize, int(result.Total))
	dto.SuccessWithPage(c, dto.ToWorldListResponse(result.Items), meta)
}

// UpdateWorld 更新世界元数据
// @Summary 更新世界元数据
// @Tags Worlds
// @Accept json
// @Produce json
// @Param wid path string true "世界 ID"
// @Param body body dto.UpdateWorldRequest true "元数据"
// @Success 200 {object} dto.Response[dto.WorldResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/worlds/{wid} [put]
func (h *WorldHandler) UpdateWorld(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateWorldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	w, err := h.worlds.UpdateMetadata(ctx, dto.BindWorldID(c), req.Title, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ToWorldResponse(w))
}
