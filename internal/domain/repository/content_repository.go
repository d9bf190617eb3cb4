package repository

import (
	"context"
	"time"

	"loreweave-api/internal/domain/entity"
)

// ContentFilter 内容过滤条件
// IncludeDeleted 显式控制是否包含软删除行，默认只返回存活行
type ContentFilter struct {
	AuthorID       string
	IncludeDeleted bool
	DeletedOnly    bool
	TitleQuery     string
}

// ContentRepository 多态内容仓储接口
// 五种内容类型各居一张表，按判别符分派，表集合固定
type ContentRepository interface {
	// Create 创建内容
	Create(ctx context.Context, content entity.Content) error

	// GetByRef 根据判别引用键获取内容
	GetByRef(ctx context.Context, ref entity.ContentRef, includeDeleted bool) (entity.Content, error)

	// GetByRefs 批量获取内容，悬空引用静默跳过
	GetByRefs(ctx context.Context, refs []entity.ContentRef, includeDeleted bool) ([]entity.Content, error)

	// Update 持久化内容整行
	Update(ctx context.Context, content entity.Content) error

	// HardDelete 物理删除内容行
	HardDelete(ctx context.Context, ref entity.ContentRef) error

	// ListByWorldKind 获取世界内指定类型的内容列表，按创建时间倒序
	ListByWorldKind(ctx context.Context, worldID string, kind entity.ContentKind, filter ContentFilter, pagination Pagination) (*PagedResult[entity.Content], error)

	// ListAllByWorldKind 获取世界内指定类型的全部内容，按创建时间倒序
	ListAllByWorldKind(ctx context.Context, worldID string, kind entity.ContentKind, filter ContentFilter) ([]entity.Content, error)

	// ExistsTitle 检查同世界同类型存活行中是否已有同名标题（忽略大小写）
	ExistsTitle(ctx context.Context, worldID string, kind entity.ContentKind, title string, excludeID string) (bool, error)

	// CountByWorldKind 统计世界内指定类型的存活内容数量
	CountByWorldKind(ctx context.Context, worldID string, kind entity.ContentKind) (int64, error)

	// CountCreatedSince 统计世界内指定类型在给定时间之后创建的存活内容数量
	CountCreatedSince(ctx context.Context, worldID string, kind entity.ContentKind, since time.Time) (int64, error)

	// ListAuthorsByWorld 获取世界内存活内容的去重作者列表
	ListAuthorsByWorld(ctx context.Context, worldID string) ([]entity.Author, error)
}
