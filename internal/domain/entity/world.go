package entity

import "time"

// World 协作世界设定，所有内容、标签与互链均限定在单一世界内
type World struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string    `json:"title" gorm:"type:varchar(200);not null"`
	Description string    `json:"description" gorm:"type:text"`
	CreatorID   string    `json:"creator_id" gorm:"type:uuid;index;not null"`
	CreatorName string    `json:"creator_name" gorm:"type:varchar(150)"`
	IsPublic    bool      `json:"is_public" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (World) TableName() string {
	return "worlds"
}

// NewWorld 创建新世界
func NewWorld(title, description, creatorID, creatorName string) *World {
	return &World{
		Title:       title,
		Description: description,
		CreatorID:   creatorID,
		CreatorName: creatorName,
		IsPublic:    true,
	}
}
