package entity

import (
	"regexp"
	"strings"
	"time"

	apperrors "loreweave-api/pkg/errors"
)

// 标签名长度及字符集约束
const (
	TagNameMinLen = 2
	TagNameMaxLen = 100
)

var tagNamePattern = regexp.MustCompile(`^[a-z0-9\-_ ]+$`)

// reservedTagNames 保留标签名，规范化后命中即拒绝
var reservedTagNames = map[string]struct{}{
	"admin":     {},
	"system":    {},
	"api":       {},
	"null":      {},
	"undefined": {},
	"delete":    {},
	"edit":      {},
}

// NormalizeTagName 规范化标签名：去首尾空白并转小写
// 校验长度、字符集与保留名，任一不满足返回校验错误
func NormalizeTagName(raw string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if len(name) < TagNameMinLen || len(name) > TagNameMaxLen {
		return "", apperrors.New(apperrors.CodeInvalidTagName,
			"tag name must be between 2 and 100 characters")
	}
	if !tagNamePattern.MatchString(name) {
		return "", apperrors.New(apperrors.CodeInvalidTagName,
			"tag name may only contain lowercase letters, digits, hyphens, underscores and spaces")
	}
	if _, ok := reservedTagNames[name]; ok {
		return "", apperrors.New(apperrors.CodeReservedTagName,
			"tag name is reserved").WithDetail(name)
	}
	return name, nil
}

// Tag 世界作用域标签，(world_id, name) 唯一
type Tag struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorldID   string    `json:"world_id" gorm:"type:uuid;uniqueIndex:uq_tags_world_name;not null"`
	Name      string    `json:"name" gorm:"type:varchar(100);uniqueIndex:uq_tags_world_name;not null"`
	CreatorID string    `json:"creator_id" gorm:"type:uuid;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (Tag) TableName() string {
	return "tags"
}

// NewTag 以已规范化的名字创建标签
func NewTag(worldID, name, creatorID string) *Tag {
	return &Tag{
		WorldID:   worldID,
		Name:      name,
		CreatorID: creatorID,
	}
}

// ContentTag 标签与内容的多态关联行，(content_kind, content_id, tag_id) 唯一
type ContentTag struct {
	ID          string      `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ContentKind ContentKind `json:"content_kind" gorm:"type:varchar(20);uniqueIndex:uq_content_tags_ref;not null"`
	ContentID   string      `json:"content_id" gorm:"type:uuid;uniqueIndex:uq_content_tags_ref;not null"`
	TagID       string      `json:"tag_id" gorm:"type:uuid;uniqueIndex:uq_content_tags_ref;index;not null"`
	TaggedBy    string      `json:"tagged_by" gorm:"type:uuid"`
	CreatedAt   time.Time   `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (ContentTag) TableName() string {
	return "content_tags"
}

// Ref 返回被标注内容的引用键
func (ct ContentTag) Ref() ContentRef {
	return ContentRef{Kind: ct.ContentKind, ID: ct.ContentID}
}
