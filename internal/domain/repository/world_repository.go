package repository

import (
	"context"

	"loreweave-api/internal/domain/entity"
)

// WorldRepository 世界仓储接口
type WorldRepository interface {
	// Create 创建世界
	Create(ctx context.Context, world *entity.World) error

	// GetByID 根据 ID 获取世界
	GetByID(ctx context.Context, id string) (*entity.World, error)

	// Update 更新世界
	Update(ctx context.Context, world *entity.World) error

	// Delete 删除世界
	Delete(ctx context.Context, id string) error

	// List 获取世界列表
	List(ctx context.Context, pagination Pagination) (*PagedResult[*entity.World], error)

	// ListByCreator 获取指定创建者的世界列表
	ListByCreator(ctx context.Context, creatorID string, pagination Pagination) (*PagedResult[*entity.World], error)
}
