// Package profile 提供作者画像能力
package profile

import (
	"context"

	"loreweave-api/internal/domain/entity"
	"loreweave-api/internal/domain/repository"
	apperrors "loreweave-api/pkg/errors"
)

// Service 作者画像服务
type Service struct {
	profiles repository.ProfileRepository
}

// NewService 创建作者画像服务
func NewService(profiles repository.ProfileRepository) *Service {
	return &Service{profiles: profiles}
}

// Get 获取作者画像
func (s *Service) Get(ctx context.Context, actorID string) (*entity.UserProfile, error) {
	p, err := s.profiles.GetByActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.ErrNotFound.WithDetail(actorID)
	}
	return p, nil
}

// Update 更新展示名与简介
func (s *Service) Update(ctx context.Context, actorID, displayName, bio string) (*entity.UserProfile, error) {
	p, err := s.profiles.GetOrCreate(ctx, actorID, displayName)
	if err != nil {
		return nil, err
	}
	if displayName != "" {
		p.DisplayName = displayName
	}
	if bio != "" {
		p.Bio = bio
	}
	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
