package dto

import (
	"time"

	"loreweave-api/internal/domain/entity"
)

// ContentRefPayload 判别引用键载荷
type ContentRefPayload struct {
	Kind string `json:"kind" binding:"required"`
	ID   string `json:"id" binding:"required"`
}

// ToRef 转换为判别引用键
func (p ContentRefPayload) ToRef() (entity.ContentRef, error) {
	kind, err := entity.ParseKind(p.Kind)
	if err != nil {
		return entity.ContentRef{}, err
	}
	return entity.ContentRef{Kind: kind, ID: p.ID}, nil
}

// LinkRequest 建立/解除互链请求
type LinkRequest struct {
	To ContentRefPayload `json:"to" binding:"required"`
}

// LinkResponse 互链响应
type LinkResponse struct {
	ID        string            `json:"id"`
	From      ContentRefPayload `json:"from"`
	To        ContentRefPayload `json:"to"`
	WorldID   string            `json:"world_id"`
	CreatedAt time.Time         `json:"created_at"`
}

// ToLinkResponse 转换互链响应
func ToLinkResponse(l *entity.ContentLink) *LinkResponse {
	return &LinkResponse{
		ID:        l.ID,
		From:      ContentRefPayload{Kind: string(l.FromKind), ID: l.FromID},
		To:        ContentRefPayload{Kind: string(l.ToKind), ID: l.ToID},
		WorldID:   l.WorldID,
		CreatedAt: l.CreatedAt,
	}
}

// UnlinkResponse 解除互链响应
type UnlinkResponse struct {
	Removed bool `json:"removed"`
}
