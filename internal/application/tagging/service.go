// Package tagging 提供世界作用域的多态标签能力
package tagging

import (
	"context"
	"strings"

	"loreweave-api/internal/domain/entity"
	"loreweave-api/internal/domain/repository"
	apperrors "loreweave-api/pkg/errors"
	"loreweave-api/pkg/logger"
	"loreweave-api/pkg/metrics"
)

// Service 标签服务
type Service struct {
	tx       repository.Transactor
	tags     repository.TagRepository
	contents repository.ContentRepository
}

// NewService 创建标签服务
func NewService(tx repository.Transactor, tags repository.TagRepository, contents repository.ContentRepository) *Service {
	return &Service{
		tx:       tx,
		tags:     tags,
		contents: contents,
	}
}

// AddTag 给内容打标签
// 名字先规范化，标签与关联均按需创建，重复调用幂等
func (s *Service) AddTag(ctx context.Context, ref entity.ContentRef, rawName, actorID string) (*entity.Tag, error) {
	name, err := entity.NormalizeTagName(rawName)
	if err != nil {
		return nil, err
	}

	c, err := s.contents.GetByRef(ctx, ref, false)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperrors.ErrContentNotFound.WithDetail(ref.String())
	}

	var tag *entity.Tag
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		tag, err = s.tags.GetOrCreate(ctx, c.Meta().WorldID, name, actorID)
		if err != nil {
			return err
		}
		return s.tags.Attach(ctx, ref, tag.ID, actorID)
	})
	if err != nil {
		return nil, err
	}

	metrics.TagsAttachedTotal.WithLabelValues(string(ref.Kind)).Inc()
	logger.Debug(ctx, "tag attached", "kind", ref.Kind, "id", ref.ID, "tag", name)
	return tag, nil
}

// RemoveTag 解除内容上的标签
// 标签或关联不存在时返回 false，不视为错误
func (s *Service) RemoveTag(ctx context.Context, ref entity.ContentRef, rawName string) (bool, error) {
	name, err := entity.NormalizeTagName(rawName)
	if err != nil {
		return false, err
	}

	c, err := s.contents.GetByRef(ctx, ref, false)
	if err != nil {
		return false, err
	}
	if c == nil {
		return false, apperrors.ErrContentNotFound.WithDetail(ref.String())
	}

	tag, err := s.tags.GetByName(ctx, c.Meta().WorldID, name)
	if err != nil {
		return false, err
	}
	if tag == nil {
		return false, nil
	}

	removed, err := s.tags.Detach(ctx, ref, tag.ID)
	if err != nil {
		return false, err
	}
	if removed {
		metrics.TagsDetachedTotal.WithLabelValues(string(ref.Kind)).Inc()
	}
	return removed, nil
}

// GetTags 获取内容上的全部标签，按名字排序
func (s *Service) GetTags(ctx context.Context, ref entity.ContentRef) ([]*entity.Tag, error) {
	return s.tags.ListByContent(ctx, ref)
}

// ListWorldTags 获取世界内全部标签
func (s *Service) ListWorldTags(ctx context.Context, worldID string) ([]*entity.Tag, error) {
	return s.tags.ListByWorld(ctx, worldID)
}

// ContentByTag 按单个标签名查询指定类型的内容
// 标签不存在时返回空结果
func (s *Service) ContentByTag(ctx context.Context, worldID string, kind entity.ContentKind, rawName string) ([]entity.Content, error) {
	return s.ContentByTags(ctx, worldID, kind, []string{rawName}, repository.TagMatchAny)
}

// ContentByTags 按标签名集合查询指定类型的内容
// mode 为 any 时取并集，all 时取交集；空白名字剔除后为空集时返回空结果
func (s *Service) ContentByTags(ctx context.Context, worldID string, kind entity.ContentKind, rawNames []string, mode repository.TagMatchMode) ([]entity.Content, error) {
	names, err := normalizeNames(rawNames)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return []entity.Content{}, nil
	}

	refs, err := s.tags.FindRefsByTags(ctx, worldID, names, mode)
	if err != nil {
		return nil, err
	}

	filtered := refs[:0]
	for _, ref := range refs {
		if ref.Kind == kind {
			filtered = append(filtered, ref)
		}
	}

	// 悬空引用在批量回读中被静默跳过
	return s.contents.GetByRefs(ctx, filtered, false)
}

// FindRefsByTags 按标签名集合查询内容引用键（不限类型）
func (s *Service) FindRefsByTags(ctx context.Context, worldID string, rawNames []string, mode repository.TagMatchMode) ([]entity.ContentRef, error) {
	names, err := normalizeNames(rawNames)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return []entity.ContentRef{}, nil
	}
	return s.tags.FindRefsByTags(ctx, worldID, names, mode)
}

// normalizeNames 规范化标签名集合并去重
// all 模式的 SQL 按 distinct 命中数与名字数比较，重复名字必须在这里收敛
func normalizeNames(rawNames []string) ([]string, error) {
	seen := make(map[string]struct{}, len(rawNames))
	names := make([]string, 0, len(rawNames))
	for _, raw := range rawNames {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		name, err := entity.NormalizeTagName(raw)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}

// RenameTag 重命名标签（管理路径）
func (s *Service) RenameTag(ctx context.Context, tagID, rawName string) (*entity.Tag, error) {
	name, err := entity.NormalizeTagName(rawName)
	if err != nil {
		return nil, err
	}

	tag, err := s.tags.GetByID(ctx, tagID)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, apperrors.ErrTagNotFound.WithDetail(tagID)
	}

	existing, err := s.tags.GetByName(ctx, tag.WorldID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != tag.ID {
		return nil, apperrors.New(apperrors.CodeConflict, "tag name already in use").WithDetail(name)
	}

	if err := s.tags.Rename(ctx, tagID, name); err != nil {
		return nil, err
	}
	tag.Name = name
	return tag, nil
}

// DeleteTag 删除标签及其全部关联（管理路径）
func (s *Service) DeleteTag(ctx context.Context, tagID string) error {
	tag, err := s.tags.GetByID(ctx, tagID)
	if err != nil {
		return err
	}
	if tag == nil {
		return apperrors.ErrTagNotFound.WithDetail(tagID)
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return s.tags.Delete(ctx, tagID)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "tag deleted", "tag_id", tagID, "name", tag.Name)
	return nil
}
