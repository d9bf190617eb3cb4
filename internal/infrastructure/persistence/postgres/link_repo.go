package postgres

import (
	"context"
	"fmt"

	"loreweave-api/internal/domain/entity"
)

// LinkRepository 内容互链仓储实现
type LinkRepository struct {
	client *Client
}

// NewLinkRepository 创建互链仓储
func NewLinkRepository(client *Client) *LinkRepository {
	return &LinkRepository{client: client}
}

// CreatePair 成对创建镜像行
// 原子性由调用方的事务保证
func (r *LinkRepository) CreatePair(ctx context.Context, forward, reverse entity.ContentLink) error {
	ctx, span := tracer.Start(ctx, "postgres.LinkRepository.CreatePair")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(&forward).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create link: %w", err)
	}
	if err := db.Create(&reverse).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create reverse link: %w", err)
	}
	return nil
}

// DeletePair 成对删除镜像行
func (r *LinkRepository) DeletePair(ctx context.Context, from, to entity.ContentRef) error {
	ctx, span := tracer.Start(ctx, "postgres.LinkRepository.DeletePair")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.ContentLink{},
		"(from_kind = ? AND from_id = ? AND to_kind = ? AND to_id = ?) OR "+
			"(from_kind = ? AND from_id = ? AND to_kind = ? AND to_id = ?)",
		from.Kind, from.ID, to.Kind, to.ID,
		to.Kind, to.ID, from.Kind, from.ID).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete link pair: %w", err)
	}
	return nil
}

// DeleteAllFor 删除涉及指定内容的全部互链行（双向）
func (r *LinkRepository) DeleteAllFor(ctx context.Context, ref entity.ContentRef) error {
	ctx, span := tracer.Start(ctx, "postgres.LinkRepository.DeleteAllFor")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.ContentLink{},
		"(from_kind = ? AND from_id = ?) OR (to_kind = ? AND to_id = ?)",
		ref.Kind, ref.ID, ref.Kind, ref.ID).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete links: %w", err)
	}
	return nil
}

// Exists 检查互链是否存在
func (r *LinkRepository) Exists(ctx context.Context, from, to entity.ContentRef) (bool, error) {
	ctx, span := tracer.Start(ctx, "postgres.LinkRepository.Exists")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var count int64
	if err := db.Model(&entity.ContentLink{}).
		Where("from_kind = ? AND from_id = ? AND to_kind = ? AND to_id = ?",
			from.Kind, from.ID, to.Kind, to.ID).
		Count(&count).Error; err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("failed to check link: %w", err)
	}
	return count > 0, nil
}

// ListFrom 获取指定内容链出的全部互链行
func (r *LinkRepository) ListFrom(ctx context.Context, ref entity.ContentRef) ([]entity.ContentLink, error) {
	ctx, span := tracer.Start(ctx, "postgres.LinkRepository.ListFrom")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var links []entity.ContentLink
	if err := db.Where("from_kind = ? AND from_id = ?", ref.Kind, ref.ID).
		Order("created_at DESC").
		Find(&links).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	return links, nil
}

// ListByWorld 获取世界内全部互链行
func (r *LinkRepository) ListByWorld(ctx context.Context, worldID string) ([]entity.ContentLink, error) {
	ctx, span := tracer.Start(ctx, "postgres.LinkRepository.ListByWorld")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var links []entity.ContentLink
	if err := db.Where("world_id = ?", worldID).
		Order("created_at DESC").
		Find(&links).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list world links: %w", err)
	}
	return links, nil
}

// CountFrom 统计指定内容链出的互链数量
func (r *LinkRepository) CountFrom(ctx context.Context, ref entity.ContentRef) (int64, error) {
	ctx, span := tracer.Start(ctx, "postgres.LinkRepository.CountFrom")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var count int64
	if err := db.Model(&entity.ContentLink{}).
		Where("from_kind = ? AND from_id = ?", ref.Kind, ref.ID).
		Count(&count).Error; err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to count outgoing links: %w", err)
	}
	return count, nil
}

// CountTo 统计链入指定内容的互链数量
func (r *LinkRepository) CountTo(ctx context.Context, ref entity.ContentRef) (int64, error) {
	ctx, span := tracer.Start(ctx, "postgres.LinkRepository.CountTo")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var count int64
	if err := db.Model(&entity.ContentLink{}).
		Where("to_kind = ? AND to_id = ?", ref.Kind, ref.ID).
		Count(&count).Error; err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to count incoming links: %w", err)
	}
	return count, nil
}
