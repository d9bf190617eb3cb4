// Package content 提供内容写入守卫与生命周期管理
// 内容创建后除软删除三元组外全部字段冻结，常规写路径只允许可见性切换
package content

import (
	"context"

	"loreweave-api/internal/domain/entity"
	"loreweave-api/internal/domain/repository"
	apperrors "loreweave-api/pkg/errors"
	"loreweave-api/pkg/logger"
	"loreweave-api/pkg/metrics"
)

// Service 内容服务（不可变守卫）
type Service struct {
	tx       repository.Transactor
	contents repository.ContentRepository
	tags     repository.TagRepository
	links    repository.LinkRepository
	profiles repository.ProfileRepository
	worlds   repository.WorldRepository
}

// NewService 创建内容服务
func NewService(
	tx repository.Transactor,
	contents repository.ContentRepository,
	tags repository.TagRepository,
	links repository.LinkRepository,
	profiles repository.ProfileRepository,
	worlds repository.WorldRepository,
) *Service {
	return &Service{
		tx:       tx,
		contents: contents,
		tags:     tags,
		links:    links,
		profiles: profiles,
		worlds:   worlds,
	}
}

// Create 创建内容
// 校验字段边界与同世界同类型标题唯一性，成功后累加作者贡献计数，
// 写入与计数调整在同一事务内完成
func (s *Service) Create(ctx context.Context, c entity.Content) error {
	if err := validateMeta(c); err != nil {
		return err
	}

	meta := c.Meta()
	world, err := s.worlds.GetByID(ctx, meta.WorldID)
	if err != nil {
		return err
	}
	if world == nil {
		return apperrors.ErrWorldNotFound.WithDetail(meta.WorldID)
	}

	exists, err := s.contents.ExistsTitle(ctx, meta.WorldID, c.Kind(), meta.Title, "")
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrDuplicateTitle.WithField("title").WithDetail(meta.Title)
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.contents.Create(ctx, c); err != nil {
			return err
		}
		if _, err := s.profiles.GetOrCreate(ctx, meta.AuthorID, meta.AuthorName); err != nil {
			return err
		}
		return s.profiles.IncrementContribution(ctx, meta.AuthorID, 1)
	})
	if err != nil {
		return err
	}

	metrics.ContentCreatedTotal.WithLabelValues(string(c.Kind())).Inc()
	logger.Info(ctx, "content created",
		"kind", c.Kind(), "id", meta.ID, "world_id", meta.WorldID, "author_id", meta.AuthorID)
	return nil
}

// Get 获取内容
func (s *Service) Get(ctx context.Context, ref entity.ContentRef, includeDeleted bool) (entity.Content, error) {
	c, err := s.contents.GetByRef(ctx, ref, includeDeleted)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperrors.ErrContentNotFound.WithDetail(ref.String())
	}
	return c, nil
}

// List 获取世界内指定类型的内容列表
func (s *Service) List(ctx context.Context, worldID string, kind entity.ContentKind, filter repository.ContentFilter, pagination repository.Pagination) (*repository.PagedResult[entity.Content], error) {
	return s.contents.ListByWorldKind(ctx, worldID, kind, filter, pagination)
}

// Write 常规写路径
// 与已持久化状态做差异判定：除软删除三元组外任一字段变化即拒绝；
// 尚无持久化状态时退化为创建
func (s *Service) Write(ctx context.Context, proposed entity.Content) error {
	ref := proposed.Ref()
	if ref.ID == "" {
		return s.Create(ctx, proposed)
	}

	stored, err := s.contents.GetByRef(ctx, ref, true)
	if err != nil {
		return err
	}
	if stored == nil {
		return s.Create(ctx, proposed)
	}

	if !stored.FrozenEqual(proposed) {
		metrics.ImmutabilityRejectionsTotal.WithLabelValues(string(ref.Kind)).Inc()
		logger.Warn(ctx, "immutable content write rejected", "kind", ref.Kind, "id", ref.ID)
		return apperrors.ErrImmutableContent.WithDetail(ref.String())
	}

	return s.contents.Update(ctx, proposed)
}

// SoftDelete 软删除内容
// 已删除时保持幂等；删除与计数下调在同一事务内完成
func (s *Service) SoftDelete(ctx context.Context, ref entity.ContentRef, actorID string) error {
	c, err := s.contents.GetByRef(ctx, ref, true)
	if err != nil {
		return err
	}
	if c == nil {
		return apperrors.ErrContentNotFound.WithDetail(ref.String())
	}
	if c.Meta().IsDeleted {
		return nil
	}

	c.Meta().SoftDelete(actorID)
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.contents.Update(ctx, c); err != nil {
			return err
		}
		return s.profiles.IncrementContribution(ctx, c.Meta().AuthorID, -1)
	})
	if err != nil {
		return err
	}

	metrics.ContentSoftDeletedTotal.WithLabelValues(string(ref.Kind)).Inc()
	logger.Info(ctx, "content soft deleted", "kind", ref.Kind, "id", ref.ID, "actor_id", actorID)
	return nil
}

// Restore 撤销软删除
// 未删除时保持幂等
func (s *Service) Restore(ctx context.Context, ref entity.ContentRef) error {
	c, err := s.contents.GetByRef(ctx, ref, true)
	if err != nil {
		return err
	}
	if c == nil {
		return apperrors.ErrContentNotFound.WithDetail(ref.String())
	}
	if !c.Meta().IsDeleted {
		return nil
	}

	c.Meta().Restore()
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.contents.Update(ctx, c); err != nil {
			return err
		}
		return s.profiles.IncrementContribution(ctx, c.Meta().AuthorID, 1)
	})
	if err != nil {
		return err
	}

	metrics.ContentRestoredTotal.WithLabelValues(string(ref.Kind)).Inc()
	logger.Info(ctx, "content restored", "kind", ref.Kind, "id", ref.ID)
	return nil
}

// ForceWrite 管理员旁路写入
// 绕过冻结判定但仍校验字段边界与标题唯一性，仅供维护工具使用，
// 常规写路径永远不应触达这里
func (s *Service) ForceWrite(ctx context.Context, c entity.Content) error {
	if err := validateMeta(c); err != nil {
		return err
	}

	meta := c.Meta()
	exists, err := s.contents.ExistsTitle(ctx, meta.WorldID, c.Kind(), meta.Title, meta.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrDuplicateTitle.WithField("title").WithDetail(meta.Title)
	}

	logger.Warn(ctx, "content force written", "kind", c.Kind(), "id", meta.ID)
	return s.contents.Update(ctx, c)
}

// Purge 管理员物理删除
// 同一事务内级联清理标签关联与互链行，存活内容的贡献计数同步下调
func (s *Service) Purge(ctx context.Context, ref entity.ContentRef) error {
	c, err := s.contents.GetByRef(ctx, ref, true)
	if err != nil {
		return err
	}
	if c == nil {
		return apperrors.ErrContentNotFound.WithDetail(ref.String())
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.tags.DetachAll(ctx, ref); err != nil {
			return err
		}
		if err := s.links.DeleteAllFor(ctx, ref); err != nil {
			return err
		}
		if err := s.contents.HardDelete(ctx, ref); err != nil {
			return err
		}
		if !c.Meta().IsDeleted {
			return s.profiles.IncrementContribution(ctx, c.Meta().AuthorID, -1)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Warn(ctx, "content purged", "kind", ref.Kind, "id", ref.ID)
	return nil
}
