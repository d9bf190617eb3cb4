// Package world 提供世界管理能力
package world

import (
	"context"
	"strings"

	"loreweave-api/internal/domain/entity"
	"loreweave-api/internal/domain/repository"
	apperrors "loreweave-api/pkg/errors"
	"loreweave-api/pkg/logger"
)

// 世界标题最小长度
const TitleMinLen = 3

// Service 世界服务
type Service struct {
	tx       repository.Transactor
	worlds   repository.WorldRepository
	profiles repository.ProfileRepository
}

// NewService 创建世界服务
func NewService(tx repository.Transactor, worlds repository.WorldRepository, profiles repository.ProfileRepository) *Service {
	return &Service{
		tx:       tx,
		worlds:   worlds,
		profiles: profiles,
	}
}

// Create 创建世界
// 创建与计数累加在同一事务内完成
func (s *Service) Create(ctx context.Context, w *entity.World) error {
	if len(strings.TrimSpace(w.Title)) < TitleMinLen {
		return apperrors.Newf(apperrors.CodeValidationFailed,
			"world title must be at least %d characters", TitleMinLen).WithField("title")
	}
	if w.CreatorID == "" {
		return apperrors.New(apperrors.CodeValidationFailed, "creator is required").WithField("creator_id")
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.worlds.Create(ctx, w); err != nil {
			return err
		}
		if _, err := s.profiles.GetOrCreate(ctx, w.CreatorID, w.CreatorName); err != nil {
			return err
		}
		return s.profiles.IncrementWorldsCreated(ctx, w.CreatorID, 1)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "world created", "id", w.ID, "creator_id", w.CreatorID)
	return nil
}

// Get 获取世界
func (s *Service) Get(ctx context.Context, id string) (*entity.World, error) {
	w, err := s.worlds.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, apperrors.ErrWorldNotFound.WithDetail(id)
	}
	return w, nil
}

// List 获取世界列表
func (s *Service) List(ctx context.Context, pagination repository.Pagination) (*repository.PagedResult[*entity.World], error) {
	return s.worlds.List(ctx, pagination)
}

// ListByCreator 获取指定创建者的世界列表
func (s *Service) ListByCreator(ctx context.Context, creatorID string, pagination repository.Pagination) (*repository.PagedResult[*entity.World], error) {
	return s.worlds.ListByCreator(ctx, creatorID, pagination)
}

// UpdateMetadata 更新世界元数据（标题与描述）
func (s *Service) UpdateMetadata(ctx context.Context, id, title, description string) (*entity.World, error) {
	w, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if title != "" {
		if len(strings.TrimSpace(title)) < TitleMinLen {
			return nil, apperrors.Newf(apperrors.CodeValidationFailed,
				"world title must be at least %d characters", TitleMinLen).WithField("title")
		}
		w.Title = title
	}
	if description != "" {
		w.Description = description
	}
	if err := s.worlds.Update(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}
