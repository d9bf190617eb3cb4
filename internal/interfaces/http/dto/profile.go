package dto

import (
	"time"

	"loreweave-api/internal/domain/entity"
)

// UpdateProfileRequest 更新作者画像请求
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
}

// ProfileResponse 作者画像响应
type ProfileResponse struct {
	ActorID           string    `json:"actor_id"`
	DisplayName       string    `json:"display_name,omitempty"`
	Bio               string    `json:"bio,omitempty"`
	ContributionCount int64     `json:"contribution_count"`
	WorldsCreated     int64     `json:"worlds_created"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ToProfileResponse 转换作者画像响应
func ToProfileResponse(p *entity.UserProfile) *ProfileResponse {
	return &ProfileResponse{
		ActorID:           p.ActorID,
		DisplayName:       p.DisplayName,
		Bio:               p.Bio,
		ContributionCount: p.ContributionCount,
		WorldsCreated:     p.WorldsCreated,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
