package dto

import (
	"time"

	"loreweave-api/internal/domain/entity"
)

// TagRequest 打标签/解标签请求
type TagRequest struct {
	Name string `json:"name" binding:"required"`
}

// RenameTagRequest 重命名标签请求
type RenameTagRequest struct {
	Name string `json:"name" binding:"required"`
}

// TagResponse 标签响应
type TagResponse struct {
	ID        string    `json:"id"`
	WorldID   string    `json:"world_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ToTagResponse 转换标签响应
func ToTagResponse(t *entity.Tag) *TagResponse {
	return &TagResponse{
		ID:        t.ID,
		WorldID:   t.WorldID,
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
	}
}

// ToTagListResponse 转换标签列表响应
func ToTagListResponse(tags []*entity.Tag) []*TagResponse {
	out := make([]*TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, ToTagResponse(t))
	}
	return out
}

// RemoveTagResponse 解标签响应
type RemoveTagResponse struct {
	Removed bool `json:"removed"`
}
