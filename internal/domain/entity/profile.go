package entity

import "time"

// UserProfile 作者画像与贡献计数
// 以外部身份系统下发的 actor_id 为主键，身份鉴权不在本服务职责内
type UserProfile struct {
	ActorID           string    `json:"actor_id" gorm:"type:uuid;primaryKey"`
	DisplayName       string    `json:"display_name" gorm:"type:varchar(150)"`
	Bio               string    `json:"bio" gorm:"type:text"`
	ContributionCount int64     `json:"contribution_count" gorm:"default:0"`
	WorldsCreated     int64     `json:"worlds_created" gorm:"default:0"`
	CreatedAt         time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (UserProfile) TableName() string {
	return "user_profiles"
}

// NewUserProfile 创建作者画像
func NewUserProfile(actorID, displayName string) *UserProfile {
	return &UserProfile{
		ActorID:     actorID,
		DisplayName: displayName,
	}
}
