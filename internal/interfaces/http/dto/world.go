package dto

import (
	"time"

	"loreweave-api/internal/domain/entity"
)

// CreateWorldRequest 创建世界请求
type CreateWorldRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	IsPublic    *bool  `json:"is_public"`
	CreatorName string `json:"creator_name"`
}

// UpdateWorldRequest 更新世界元数据请求
type UpdateWorldRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// WorldResponse 世界响应
type WorldResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatorID   string    `json:"creator_id"`
	CreatorName string    `json:"creator_name,omitempty"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToWorldResponse 转换世界响应
func ToWorldResponse(w *entity.World) *WorldResponse {
	return &WorldResponse{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		CreatorID:   w.CreatorID,
		CreatorName: w.CreatorName,
		IsPublic:    w.IsPublic,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

// ToWorldListResponse 转换世界列表响应
func ToWorldListResponse(worlds []*entity.World) []*WorldResponse {
	out := make([]*WorldResponse, 0, len(worlds))
	for _, w := range worlds {
		out = append(out, ToWorldResponse(w))
	}
	return out
}
