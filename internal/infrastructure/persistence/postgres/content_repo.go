package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"loreweave-api/internal/domain/entity"
	"loreweave-api/internal/domain/repository"
	apperrors "loreweave-api/pkg/errors"
)

// ContentRepository 多态内容仓储实现
// 五种内容类型各居一张表，判别符到表的映射为固定闭集
type ContentRepository struct {
	client *Client
}

// NewContentRepository 创建内容仓储
func NewContentRepository(client *Client) *ContentRepository {
	return &ContentRepository{client: client}
}

// emptyModel 返回判别符对应的空实体
func emptyModel(kind entity.ContentKind) (entity.Content, error) {
	switch kind {
	case entity.KindPage:
		return &entity.Page{}, nil
	case entity.KindEssay:
		return &entity.Essay{}, nil
	case entity.KindCharacter:
		return &entity.Character{}, nil
	case entity.KindStory:
		return &entity.Story{}, nil
	case entity.KindImage:
		return &entity.Image{}, nil
	}
	return nil, apperrors.Newf(apperrors.CodeInvalidParam, "unknown content kind: %s", kind)
}

// collect 查询并装箱为统一的内容接口切片
func collect[T any, PT interface {
	*T
	entity.Content
}](query *gorm.DB) ([]entity.Content, error) {
	var rows []T
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Content, 0, len(rows))
	for i := range rows {
		out = append(out, PT(&rows[i]))
	}
	return out, nil
}

// findByKind 按判别符分派查询
func findByKind(query *gorm.DB, kind entity.ContentKind) ([]entity.Content, error) {
	switch kind {
	case entity.KindPage:
		return collect[entity.Page](query)
	case entity.KindEssay:
		return collect[entity.Essay](query)
	case entity.KindCharacter:
		return collect[entity.Character](query)
	case entity.KindStory:
		return collect[entity.Story](query)
	case entity.KindImage:
		return collect[entity.Image](query)
	}
	return nil, apperrors.Newf(apperrors.CodeInvalidParam, "unknown content kind: %s", kind)
}

// applyFilter 应用过滤条件
func applyFilter(query *gorm.DB, filter repository.ContentFilter) *gorm.DB {
	if filter.AuthorID != "" {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.DeletedOnly {
		query = query.Where("is_deleted = ?", true)
	} else if !filter.IncludeDeleted {
		query = query.Where("is_deleted = ?", false)
	}
	if filter.TitleQuery != "" {
		query = query.Where("title ILIKE ?", "%"+filter.TitleQuery+"%")
	}
	return query
}

// Create 创建内容
func (r *ContentRepository) Create(ctx context.Context, content entity.Content) error {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(content).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create %s: %w", content.Kind(), err)
	}
	return nil
}

// GetByRef 根据判别引用键获取内容
func (r *ContentRepository) GetByRef(ctx context.Context, ref entity.ContentRef, includeDeleted bool) (entity.Content, error) {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.GetByRef")
	defer span.End()

	model, err := emptyModel(ref.Kind)
	if err != nil {
		return nil, err
	}

	db := getDB(ctx, r.client.db)
	query := db.Where("id = ?", ref.ID)
	if !includeDeleted {
		query = query.Where("is_deleted = ?", false)
	}
	if err := query.First(model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get %s: %w", ref.Kind, err)
	}
	return model, nil
}

// GetByRefs 批量获取内容，悬空引用静默跳过，返回顺序与入参一致
func (r *ContentRepository) GetByRefs(ctx context.Context, refs []entity.ContentRef, includeDeleted bool) ([]entity.Content, error) {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.GetByRefs")
	defer span.End()

	if len(refs) == 0 {
		return []entity.Content{}, nil
	}

	idsByKind := make(map[entity.ContentKind][]string)
	for _, ref := range refs {
		if ref.IsZero() {
			continue
		}
		idsByKind[ref.Kind] = append(idsByKind[ref.Kind], ref.ID)
	}

	db := getDB(ctx, r.client.db)
	found := make(map[entity.ContentRef]entity.Content)
	for kind, ids := range idsByKind {
		query := db.Where("id IN ?", ids)
		if !includeDeleted {
			query = query.Where("is_deleted = ?", false)
		}
		contents, err := findByKind(query, kind)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to get %s batch: %w", kind, err)
		}
		for _, c := range contents {
			found[c.Ref()] = c
		}
	}

	out := make([]entity.Content, 0, len(found))
	for _, ref := range refs {
		if c, ok := found[ref]; ok {
			out = append(out, c)
			delete(found, ref)
		}
	}
	return out, nil
}

// Update 持久化内容整行
func (r *ContentRepository) Update(ctx context.Context, content entity.Content) error {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(content).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update %s: %w", content.Kind(), err)
	}
	return nil
}

// HardDelete 物理删除内容行
func (r *ContentRepository) HardDelete(ctx context.Context, ref entity.ContentRef) error {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.HardDelete")
	defer span.End()

	model, err := emptyModel(ref.Kind)
	if err != nil {
		return err
	}

	db := getDB(ctx, r.client.db)
	if err := db.Delete(model, "id = ?", ref.ID).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to hard delete %s: %w", ref.Kind, err)
	}
	return nil
}

// ListByWorldKind 获取世界内指定类型的内容列表，按创建时间倒序
func (r *ContentRepository) ListByWorldKind(ctx context.Context, worldID string, kind entity.ContentKind, filter repository.ContentFilter, pagination repository.Pagination) (*repository.PagedResult[entity.Content], error) {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.ListByWorldKind")
	defer span.End()

	model, err := emptyModel(kind)
	if err != nil {
		return nil, err
	}

	db := getDB(ctx, r.client.db)
	query := applyFilter(db.Model(model).Where("world_id = ?", worldID), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count %s: %w", kind, err)
	}

	paged := query.Order("created_at DESC, id DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit())
	contents, err := findByKind(paged, kind)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}

	return repository.NewPagedResult(contents, total, pagination), nil
}

// ListAllByWorldKind 获取世界内指定类型的全部内容，按创建时间倒序
func (r *ContentRepository) ListAllByWorldKind(ctx context.Context, worldID string, kind entity.ContentKind, filter repository.ContentFilter) ([]entity.Content, error) {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.ListAllByWorldKind")
	defer span.End()

	model, err := emptyModel(kind)
	if err != nil {
		return nil, err
	}

	db := getDB(ctx, r.client.db)
	query := applyFilter(db.Model(model).Where("world_id = ?", worldID), filter).
		Order("created_at DESC, id DESC")
	contents, err := findByKind(query, kind)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}
	return contents, nil
}

// ExistsTitle 检查同世界同类型存活行中是否已有同名标题（忽略大小写）
func (r *ContentRepository) ExistsTitle(ctx context.Context, worldID string, kind entity.ContentKind, title string, excludeID string) (bool, error) {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.ExistsTitle")
	defer span.End()

	model, err := emptyModel(kind)
	if err != nil {
		return false, err
	}

	db := getDB(ctx, r.client.db)
	query := db.Model(model).
		Where("world_id = ?", worldID).
		Where("LOWER(title) = LOWER(?)", title).
		Where("is_deleted = ?", false)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("failed to check title: %w", err)
	}
	return count > 0, nil
}

// CountByWorldKind 统计世界内指定类型的存活内容数量
func (r *ContentRepository) CountByWorldKind(ctx context.Context, worldID string, kind entity.ContentKind) (int64, error) {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.CountByWorldKind")
	defer span.End()

	model, err := emptyModel(kind)
	if err != nil {
		return 0, err
	}

	db := getDB(ctx, r.client.db)
	var count int64
	if err := db.Model(model).
		Where("world_id = ? AND is_deleted = ?", worldID, false).
		Count(&count).Error; err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to count %s: %w", kind, err)
	}
	return count, nil
}

// CountCreatedSince 统计世界内指定类型在给定时间之后创建的存活内容数量
func (r *ContentRepository) CountCreatedSince(ctx context.Context, worldID string, kind entity.ContentKind, since time.Time) (int64, error) {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.CountCreatedSince")
	defer span.End()

	model, err := emptyModel(kind)
	if err != nil {
		return 0, err
	}

	db := getDB(ctx, r.client.db)
	var count int64
	if err := db.Model(model).
		Where("world_id = ? AND is_deleted = ? AND created_at >= ?", worldID, false, since).
		Count(&count).Error; err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to count recent %s: %w", kind, err)
	}
	return count, nil
}

// ListAuthorsByWorld 获取世界内存活内容的去重作者列表
func (r *ContentRepository) ListAuthorsByWorld(ctx context.Context, worldID string) ([]entity.Author, error) {
	ctx, span := tracer.Start(ctx, "postgres.ContentRepository.ListAuthorsByWorld")
	defer span.End()

	db := getDB(ctx, r.client.db)
	seen := make(map[string]struct{})
	var authors []entity.Author
	for _, kind := range entity.AllKinds() {
		model, err := emptyModel(kind)
		if err != nil {
			return nil, err
		}
		var rows []entity.Author
		if err := db.Model(model).
			Select("DISTINCT author_id AS id, author_name AS name").
			Where("world_id = ? AND is_deleted = ?", worldID, false).
			Scan(&rows).Error; err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to list %s authors: %w", kind, err)
		}
		for _, a := range rows {
			if _, ok := seen[a.ID]; ok {
				continue
			}
			seen[a.ID] = struct{}{}
			authors = append(authors, a)
		}
	}
	return authors, nil
}
