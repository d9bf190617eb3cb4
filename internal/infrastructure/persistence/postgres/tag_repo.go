package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"loreweave-api/internal/domain/entity"
	"loreweave-api/internal/domain/repository"
)

// TagRepository 标签仓储实现
type TagRepository struct {
	client *Client
}

// NewTagRepository 创建标签仓储
func NewTagRepository(client *Client) *TagRepository {
	return &TagRepository{client: client}
}

// GetOrCreate 按 (world, name) 获取标签，不存在则创建
// 并发创建同名标签时借助唯一索引收敛到同一行
func (r *TagRepository) GetOrCreate(ctx context.Context, worldID, name, creatorID string) (*entity.Tag, error) {
	ctx, span := tracer.Start(ctx, "postgres.TagRepository.GetOrCreate")
	defer span.End()

	db := getDB(ctx, r.client.db)
	tag := entity.NewTag(worldID, name, creatorID)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(tag).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	if tag.ID != "" {
		return tag, nil
	}
	// 冲突时行已存在，回读
	return r.GetByName(ctx, worldID, name)
}

// GetByName 按 (world, name) 获取标签
func (r *TagRepository) GetByName(ctx context.Context, worldID, name string) (*entity.Tag, error) {
	ctx, span := tracer.Start(ctx, "postgres.TagRepository.GetByName")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var tag entity.Tag
	if err := db.First(&tag, "world_id = ? AND name = ?", worldID, name).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return &tag, nil
}

// GetByID 根据 ID 获取标签
func (r *TagRepository) GetByID(ctx context.Context, id string) (*entity.Tag, error) {
	ctx, span := tracer.Start(ctx, "postgres.TagRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var tag entity.Tag
	if err := db.First(&tag, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return &tag, nil
}

// Rename 重命名标签
func (r *TagRepository) Rename(ctx context.Context, id, newName string) error {
	ctx, span := tracer.Start(ctx, "postgres.TagRepository.Rename")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Model(&entity.Tag{}).Where("id = ?", id).
		Update("name", newName).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to rename tag: %w", err)
	}
	return nil
}

// Delete 删除标签及其全部关联行
func (r *TagRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.TagRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.ContentTag{}, "tag_id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete tag assignments: %w", err)
	}
	if err := db.Delete(&entity.Tag{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return nil
}

// ListByWorld 获取世界内全部标签
func (r *TagRepository) ListByWorld(ctx context.Context, worldID string) ([]*entity.Tag, error) {
	ctx, span := tracer.Start(ctx, "postgres.TagRepository.ListByWorld")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var tags []*entity.Tag
	if err := db.Where("world_id = ?", worldID).
		Order("name ASC").
		Find(&tags).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// Attach 建立标签与内容的关联，重复关联保持幂等
func (r *TagRepository) Attach(ctx context.Context, ref entity.ContentRef, tagID, taggedBy string) error {
	ctx, span := tracer.Start(ctx, "postgres.TagRepository.Attach")
	defer span.End()

	db := getDB(ctx, r.client.db)
	ct := &entity.ContentTag{
		ContentKind: ref.Kind,
		ContentID:   ref.ID,
		TagID:       tagID,
		TaggedBy:    taggedBy,
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(ct).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to attach tag: %w", err)
	}
	return nil
}

// Detach 解除标签与内容的关联，返回是否确有关联被移除
func (r *TagRepository) Detach(ctx context.Context, ref entity.ContentRef, tagID string) (bool, error) {
	ctx, span := tracer.Start(ctx, "postgres.TagRepository.Detach")
	defer span.End()

	db := getDB(ctx, r.client.db)
	result := db.Delete(&entity.ContentTag{},
		"content_kind = ? AND content_id = ? AND tag_id = ?",
		ref.Kind, ref.ID, tagID)
	if result.Error != nil {
		span.RecordError(result.Error)
		return false, fmt.Errorf("failed to detach tag: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DetachAll 解除内容的全部标签关联
func (r *TagRepository) DetachAll(ctx context.Context, ref entity.ContentRef) error {
	ctx, span := tracer.Start(ctx, "postgres.TagRepository.DetachAll")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.ContentTag{},
		"content_kind = ? AND content_id = ?", ref.Kind, ref.ID).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to detach tags: %w", err)
	}
	return nil
}

// ListByContent 获取内容上的全部标签
func (r *TagRepository) ListByContent(ctx context.Context, ref entity.ContentRef) ([]*entity.Tag, error) {
	ctx, span := tracer.Start(ctx, "postgres.TagRepository.ListByContent")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var tags []*entity.Tag
	if err := db.Model(&entity.Tag{}).
		Joins("JOIN content_tags ct ON ct.tag_id = tags.id").
		Where("ct.content_kind = ? AND ct.content_id = ?", ref.Kind, ref.ID).
		Order("tags.name ASC").
		Find(&tags).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list content tags: %w", err)
	}
	return tags, nil
}

// refRow 标签查询的扫描载体
type refRow struct {
	ContentKind entity.ContentKind
	ContentID   string
}

// FindRefsByTags 按标签名集合查询内容引用键
func (r *TagRepository) FindRefsByTags(ctx context.Context, worldID string, names []string, mode repository.TagMatchMode) ([]entity.ContentRef, error) {
	ctx, span := tracer.Start(ctx, "postgres.TagRepository.FindRefsByTags")
	defer span.End()

	if len(names) == 0 {
		return []entity.ContentRef{}, nil
	}

	db := getDB(ctx, r.client.db)
	var rows []refRow
	var err error
	switch mode {
	case repository.TagMatchAll:
		err = db.Raw(`
			SELECT ct.content_kind, ct.content_id
			FROM content_tags ct
			JOIN tags t ON t.id = ct.tag_id
			WHERE t.world_id = ? AND t.name = ANY(?)
			GROUP BY ct.content_kind, ct.content_id
			HAVING COUNT(DISTINCT t.name) = ?`,
			worldID, pq.Array(names), len(names)).Scan(&rows).Error
	default:
		err = db.Raw(`
			SELECT DISTINCT ct.content_kind, ct.content_id
			FROM content_tags ct
			JOIN tags t ON t.id = ct.tag_id
			WHERE t.world_id = ? AND t.name = ANY(?)`,
			worldID, pq.Array(names)).Scan(&rows).Error
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to find refs by tags: %w", err)
	}

	refs := make([]entity.ContentRef, 0, len(rows))
	for _, row := range rows {
		refs = append(refs, entity.ContentRef{Kind: row.ContentKind, ID: row.ContentID})
	}
	return refs, nil
}

// CountByContent 统计内容上的标签数量
func (r *TagRepository) CountByContent(ctx context.Context, ref entity.ContentRef) (int64, error) {
	ctx, span := tracer.Start(ctx, "postgres.TagRepository.CountByContent")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var count int64
	if err := db.Model(&entity.ContentTag{}).
		Where("content_kind = ? AND content_id = ?", ref.Kind, ref.ID).
		Count(&count).Error; err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to count content tags: %w", err)
	}
	return count, nil
}

// CountUsage 统计标签被使用的次数
func (r *TagRepository) CountUsage(ctx context.Context, tagID string) (int64, error) {
	ctx, span := tracer.Start(ctx, "postgres.TagRepository.CountUsage")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var count int64
	if err := db.Model(&entity.ContentTag{}).
		Where("tag_id = ?", tagID).
		Count(&count).Error; err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to count tag usage: %w", err)
	}
	return count, nil
}
