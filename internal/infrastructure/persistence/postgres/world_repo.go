package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"loreweave-api/internal/domain/entity"
	"loreweave-api/internal/domain/repository"
)

// WorldRepository 世界仓储实现
type WorldRepository struct {
	client *Client
}

// NewWorldRepository 创建世界仓储
func NewWorldRepository(client *Client) *WorldRepository {
	return &WorldRepository{client: client}
}

// Create 创建世界
func (r *WorldRepository) Create(ctx context.Context, world *entity.World) error {
	ctx, span := tracer.Start(ctx, "postgres.WorldRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(world).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create world: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取世界
func (r *WorldRepository) GetByID(ctx context.Context, id string) (*entity.World, error) {
	ctx, span := tracer.Start(ctx, "postgres.WorldRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var world entity.World
	if err := db.First(&world, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get world: %w", err)
	}
	return &world, nil
}

// Update 更新世界
func (r *WorldRepository) Update(ctx context.Context, world *entity.World) error {
	ctx, span := tracer.Start(ctx, "postgres.WorldRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(world).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update world: %w", err)
	}
	return nil
}

// Delete 删除世界
func (r *WorldRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.WorldRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.World{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete world: %w", err)
	}
	return nil
}

// List 获取世界列表
func (r *WorldRepository) List(ctx context.Context, pagination repository.Pagination) (*repository.PagedResult[*entity.World], error) {
	ctx, span := tracer.Start(ctx, "postgres.WorldRepository.List")
	defer span.End()

	db := getDB(ctx, r.client.db)
	return r.listWhere(ctx, db.Model(&entity.World{}), pagination)
}

// ListByCreator 获取指定创建者的世界列表
func (r *WorldRepository) ListByCreator(ctx context.Context, creatorID string, pagination repository.Pagination) (*repository.PagedResult[*entity.World], error) {
	ctx, span := tracer.Start(ctx, "postgres.WorldRepository.ListByCreator")
	defer span.End()

	db := getDB(ctx, r.client.db)
	query := db.Model(&entity.World{}).Where("creator_id = ?", creatorID)
	return r.listWhere(ctx, query, pagination)
}

func (r *WorldRepository) listWhere(ctx context.Context, query *gorm.DB, pagination repository.Pagination) (*repository.PagedResult[*entity.World], error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count worlds: %w", err)
	}

	var worlds []*entity.World
	if err := query.Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&worlds).Error; err != nil {
		return nil, fmt.Errorf("failed to list worlds: %w", err)
	}

	return repository.NewPagedResult(worlds, total, pagination), nil
}
