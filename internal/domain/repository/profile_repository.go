package repository

import (
	"context"

	"loreweave-api/internal/domain/entity"
)

// ProfileRepository 作者画像仓储接口
type ProfileRepository interface {
	// GetOrCreate 获取作者画像，不存在则创建
	GetOrCreate(ctx context.Context, actorID, displayName string) (*entity.UserProfile, error)

	// GetByActor 根据 actor ID 获取画像
	GetByActor(ctx context.Context, actorID string) (*entity.UserProfile, error)

	// Update 更新画像
	Update(ctx context.Context, profile *entity.UserProfile) error

	// IncrementContribution 调整贡献计数，delta 可为负
	IncrementContribution(ctx context.Context, actorID string, delta int64) error

	// IncrementWorldsCreated 调整创建世界计数
	IncrementWorldsCreated(ctx context.Context, actorID string, delta int64) error
}
