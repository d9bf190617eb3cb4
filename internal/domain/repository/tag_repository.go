package repository

import (
	"context"

	"loreweave-api/internal/domain/entity"
)

// TagMatchMode 多标签查询的集合语义
type TagMatchMode string

const (
	// TagMatchAny 命中任一标签即返回（并集）
	TagMatchAny TagMatchMode = "any"
	// TagMatchAll 必须同时命中全部标签（交集）
	TagMatchAll TagMatchMode = "all"
)

// TagRepository 标签仓储接口
type TagRepository interface {
	// GetOrCreate 按 (world, name) 获取标签，不存在则创建
	GetOrCreate(ctx context.Context, worldID, name, creatorID string) (*entity.Tag, error)

	// GetByName 按 (world, name) 获取标签
	GetByName(ctx context.Context, worldID, name string) (*entity.Tag, error)

	// GetByID 根据 ID 获取标签
	GetByID(ctx context.Context, id string) (*entity.Tag, error)

	// Rename 重命名标签，新名字须已规范化
	Rename(ctx context.Context, id, newName string) error

	// Delete 删除标签及其全部关联行
	Delete(ctx context.Context, id string) error

	// ListByWorld 获取世界内全部标签
	ListByWorld(ctx context.Context, worldID string) ([]*entity.Tag, error)

	// Attach 建立标签与内容的关联，重复关联保持幂等
	Attach(ctx context.Context, ref entity.ContentRef, tagID, taggedBy string) error

	// Detach 解除标签与内容的关联，返回是否确有关联被移除
	Detach(ctx context.Context, ref entity.ContentRef, tagID string) (bool, error)

	// DetachAll 解除内容的全部标签关联
	DetachAll(ctx context.Context, ref entity.ContentRef) error

	// ListByContent 获取内容上的全部标签
	ListByContent(ctx context.Context, ref entity.ContentRef) ([]*entity.Tag, error)

	// FindRefsByTags 按标签名集合查询内容引用键
	// mode 为 any 时取并集，all 时取交集；names 为空返回空集
	FindRefsByTags(ctx context.Context, worldID string, names []string, mode TagMatchMode) ([]entity.ContentRef, error)

	// CountByContent 统计内容上的标签数量
	CountByContent(ctx context.Context, ref entity.ContentRef) (int64, error)

	// CountUsage 统计标签被使用的次数
	CountUsage(ctx context.Context, tagID string) (int64, error)
}
