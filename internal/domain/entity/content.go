// Package entity 定义领域实体
package entity

import (
	"fmt"
	"time"
)

// ContentKind 内容类型判别符
type ContentKind string

const (
	KindPage      ContentKind = "page"
	KindEssay     ContentKind = "essay"
	KindCharacter ContentKind = "character"
	KindStory     ContentKind = "story"
	KindImage     ContentKind = "image"
)

// AllKinds 全部内容类型（固定闭集，按固定顺序）
func AllKinds() []ContentKind {
	return []ContentKind{KindPage, KindEssay, KindCharacter, KindStory, KindImage}
}

// ParseKind 解析内容类型字符串
func ParseKind(s string) (ContentKind, error) {
	switch ContentKind(s) {
	case KindPage, KindEssay, KindCharacter, KindStory, KindImage:
		return ContentKind(s), nil
	}
	return "", fmt.Errorf("unknown content kind: %q", s)
}

// ContentRef 跨类型内容引用键 {kind, id}
// 标签与互链关联表以该判别键定位五张内容表中的一行
type ContentRef struct {
	Kind ContentKind `json:"kind"`
	ID   string      `json:"id"`
}

// String 实现 Stringer
func (r ContentRef) String() string {
	return string(r.Kind) + ":" + r.ID
}

// IsZero 检查引用是否为空
func (r ContentRef) IsZero() bool {
	return r.Kind == "" || r.ID == ""
}

// ContentMeta 所有内容类型共享的字段
// 除软删除三元组外，全部字段在创建后冻结
type ContentMeta struct {
	ID         string     `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorldID    string     `json:"world_id" gorm:"type:uuid;index;not null"`
	AuthorID   string     `json:"author_id" gorm:"type:uuid;index;not null"`
	AuthorName string     `json:"author_name" gorm:"type:varchar(150);not null"`
	Title      string     `json:"title" gorm:"type:varchar(300);not null"`
	Body       string     `json:"body" gorm:"type:text;not null"`
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`
	IsDeleted  bool       `json:"is_deleted" gorm:"default:false;index"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
	DeletedBy  string     `json:"deleted_by,omitempty" gorm:"type:uuid"`
}

// SoftDelete 标记软删除
func (m *ContentMeta) SoftDelete(actorID string) {
	now := time.Now()
	m.IsDeleted = true
	m.DeletedAt = &now
	m.DeletedBy = actorID
}

// Restore 撤销软删除
func (m *ContentMeta) Restore() {
	m.IsDeleted = false
	m.DeletedAt = nil
	m.DeletedBy = ""
}

// metaFrozenEqual 比较冻结字段（软删除三元组除外）
func metaFrozenEqual(a, b *ContentMeta) bool {
	return a.ID == b.ID &&
		a.WorldID == b.WorldID &&
		a.AuthorID == b.AuthorID &&
		a.AuthorName == b.AuthorName &&
		a.Title == b.Title &&
		a.Body == b.Body &&
		a.CreatedAt.Equal(b.CreatedAt)
}

// Content 统一的内容实体能力集合
// 五种内容类型以显式判别符分派，不使用继承
type Content interface {
	Kind() ContentKind
	Meta() *ContentMeta
	Ref() ContentRef
	// FrozenEqual 比较除软删除三元组外的全部字段，供不可变守卫做差异判定
	FrozenEqual(other Content) bool
}

// Author 内容作者的去重投影
type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// stringSliceEqual 比较字符串切片
func stringSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
