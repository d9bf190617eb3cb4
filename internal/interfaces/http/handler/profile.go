package handler

import (
	"github.com/gin-gonic/gin"

	"loreweave-api/internal/application/profile"
	"loreweave-api/internal/interfaces/http/dto"
	"loreweave-api/internal/interfaces/http/middleware"
)

// ProfileHandler 作者画像处理器
type ProfileHandler struct {
	profiles *profile.Service
}

// NewProfileHandler 创建作者画像处理器
func NewProfileHandler(profiles *profile.Service) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// GetProfile 获取作者画像
// @Summary 获取作者画像
// @Tags Profile
// @Produce json
// @Param actor_id path string true "作者 ID"
// @Success 200 {object} dto.Response[dto.ProfileResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/profiles/{actor_id} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	ctx := c.Request.Context()

	p, err := h.profiles.Get(ctx, c.Param("actor_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ToProfileResponse(p))
}

// UpdateProfile 更新当前作者画像
// @Summary 更新作者画像
// @Tags Profile
// @Accept json
// @Produce json
// @Param body body dto.UpdateProfileRequest true "画像"
// @Success 200 {object} dto.Response[dto.ProfileResponse]
// @Router /v1/profiles/me [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	p, err := h.profiles.Update(ctx, middleware.ActorID(c), req.DisplayName, req.Bio)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ToProfileResponse(p))
}
