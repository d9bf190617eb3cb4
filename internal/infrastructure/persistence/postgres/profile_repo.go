package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"loreweave-api/internal/domain/entity"
)

// ProfileRepository 作者画像仓储实现
type ProfileRepository struct {
	client *Client
}

// NewProfileRepository 创建作者画像仓储
func NewProfileRepository(client *Client) *ProfileRepository {
	return &ProfileRepository{client: client}
}

// GetOrCreate 获取作者画像，不存在则创建
func (r *ProfileRepository) GetOrCreate(ctx context.Context, actorID, displayName string) (*entity.UserProfile, error) {
	ctx, span := tracer.Start(ctx, "postgres.ProfileRepository.GetOrCreate")
	defer span.End()

	db := getDB(ctx, r.client.db)
	profile := entity.NewUserProfile(actorID, displayName)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(profile).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return r.GetByActor(ctx, actorID)
}

// GetByActor 根据 actor ID 获取画像
func (r *ProfileRepository) GetByActor(ctx context.Context, actorID string) (*entity.UserProfile, error) {
	ctx, span := tracer.Start(ctx, "postgres.ProfileRepository.GetByActor")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var profile entity.UserProfile
	if err := db.First(&profile, "actor_id = ?", actorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// Update 更新画像
func (r *ProfileRepository) Update(ctx context.Context, profile *entity.UserProfile) error {
	ctx, span := tracer.Start(ctx, "postgres.ProfileRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(profile).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// IncrementContribution 调整贡献计数
// 计数不为负，下调越界时钳制为零
func (r *ProfileRepository) IncrementContribution(ctx context.Context, actorID string, delta int64) error {
	ctx, span := tracer.Start(ctx, "postgres.ProfileRepository.IncrementContribution")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Model(&entity.UserProfile{}).
		Where("actor_id = ?", actorID).
		Update("contribution_count",
			gorm.Expr("GREATEST(contribution_count + ?, 0)", delta)).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update contribution count: %w", err)
	}
	return nil
}

// IncrementWorldsCreated 调整创建世界计数
func (r *ProfileRepository) IncrementWorldsCreated(ctx context.Context, actorID string, delta int64) error {
	ctx, span := tracer.Start(ctx, "postgres.ProfileRepository.IncrementWorldsCreated")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Model(&entity.UserProfile{}).
		Where("actor_id = ?", actorID).
		Update("worlds_created",
			gorm.Expr("GREATEST(worlds_created + ?, 0)", delta)).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update worlds created count: %w", err)
	}
	return nil
}
