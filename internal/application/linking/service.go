// Package linking 提供内容间的双向互链能力
// 一条逻辑互链以一对镜像行落库，成对创建、成对删除，
// 遍历查询依赖这一对称性
package linking

import (
	"context"

	"loreweave-api/internal/domain/entity"
	"loreweave-api/internal/domain/repository"
	apperrors "loreweave-api/pkg/errors"
	"loreweave-api/pkg/logger"
	"loreweave-api/pkg/metrics"
)

// Service 互链服务
type Service struct {
	tx       repository.Transactor
	links    repository.LinkRepository
	contents repository.ContentRepository
}

// NewService 创建互链服务
func NewService(tx repository.Transactor, links repository.LinkRepository, contents repository.ContentRepository) *Service {
	return &Service{
		tx:       tx,
		links:    links,
		contents: contents,
	}
}

// Link 建立互链
// 同一 (kind, id) 拒绝自链，跨世界拒绝互链，重复互链保持幂等
func (s *Service) Link(ctx context.Context, from, to entity.ContentRef, actorID string) (*entity.ContentLink, error) {
	if from == to {
		metrics.LinkRejectionsTotal.WithLabelValues("self_link").Inc()
		return nil, apperrors.ErrSelfLink.WithDetail(from.String())
	}

	fromContent, err := s.contents.GetByRef(ctx, from, false)
	if err != nil {
		return nil, err
	}
	if fromContent == nil {
		return nil, apperrors.ErrContentNotFound.WithDetail(from.String())
	}
	toContent, err := s.contents.GetByRef(ctx, to, false)
	if err != nil {
		return nil, err
	}
	if toContent == nil {
		return nil, apperrors.ErrContentNotFound.WithDetail(to.String())
	}

	if fromContent.Meta().WorldID != toContent.Meta().WorldID {
		metrics.LinkRejectionsTotal.WithLabelValues("world_mismatch").Inc()
		return nil, apperrors.ErrWorldMismatch.WithDetail(from.String() + " -> " + to.String())
	}

	exists, err := s.links.Exists(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if exists {
		links, err := s.links.ListFrom(ctx, from)
		if err != nil {
			return nil, err
		}
		for i := range links {
			if links[i].To() == to {
				return &links[i], nil
			}
		}
		return nil, apperrors.ErrLinkNotFound.WithDetail(from.String())
	}

	forward, reverse := entity.NewLinkPair(from, to, fromContent.Meta().WorldID, actorID)
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return s.links.CreatePair(ctx, forward, reverse)
	})
	if err != nil {
		return nil, err
	}

	metrics.LinksCreatedTotal.Inc()
	logger.Debug(ctx, "link created", "from", from.String(), "to", to.String())
	return &forward, nil
}

// Unlink 解除互链
// 两个方向在同一事务内一并删除，返回是否确有互链被移除
func (s *Service) Unlink(ctx context.Context, from, to entity.ContentRef) (bool, error) {
	exists, err := s.links.Exists(ctx, from, to)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return s.links.DeletePair(ctx, from, to)
	})
	if err != nil {
		return false, err
	}

	metrics.LinksRemovedTotal.Inc()
	logger.Debug(ctx, "link removed", "from", from.String(), "to", to.String())
	return true, nil
}

// LinkedTargets 解析内容链出的对端
// 已清除或软删除的对端静默跳过
func (s *Service) LinkedTargets(ctx context.Context, ref entity.ContentRef) ([]entity.Content, error) {
	links, err := s.links.ListFrom(ctx, ref)
	if err != nil {
		return nil, err
	}

	refs := make([]entity.ContentRef, 0, len(links))
	for _, l := range links {
		refs = append(refs, l.To())
	}
	return s.contents.GetByRefs(ctx, refs, false)
}

// LinkingSources 解析链入内容的对端
// 镜像行保证对称，链入即对端的链出
func (s *Service) LinkingSources(ctx context.Context, ref entity.ContentRef) ([]entity.Content, error) {
	return s.LinkedTargets(ctx, ref)
}

// Exists 检查互链是否存在
func (s *Service) Exists(ctx context.Context, from, to entity.ContentRef) (bool, error) {
	return s.links.Exists(ctx, from, to)
}
