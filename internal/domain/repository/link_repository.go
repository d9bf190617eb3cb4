package repository

import (
	"context"

	"loreweave-api/internal/domain/entity"
)

// LinkRepository 内容互链仓储接口
// 一条逻辑互链对应一对镜像行，创建与删除必须在同一事务内成对完成
type LinkRepository interface {
	// CreatePair 成对创建镜像行
	CreatePair(ctx context.Context, forward, reverse entity.ContentLink) error

	// DeletePair 成对删除镜像行
	DeletePair(ctx context.Context, from, to entity.ContentRef) error

	// DeleteAllFor 删除涉及指定内容的全部互链行（双向）
	DeleteAllFor(ctx context.Context, ref entity.ContentRef) error

	// Exists 检查互链是否存在
	Exists(ctx context.Context, from, to entity.ContentRef) (bool, error)

	// ListFrom 获取指定内容链出的全部互链行
	ListFrom(ctx context.Context, ref entity.ContentRef) ([]entity.ContentLink, error)

	// ListByWorld 获取世界内全部互链行
	ListByWorld(ctx context.Context, worldID string) ([]entity.ContentLink, error)

	// CountFrom 统计指定内容链出的互链数量
	CountFrom(ctx context.Context, ref entity.ContentRef) (int64, error)

	// CountTo 统计链入指定内容的互链数量
	CountTo(ctx context.Context, ref entity.ContentRef) (int64, error)
}
