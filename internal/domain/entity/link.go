package entity

import "time"

// ContentLink 内容互链的单向行
// 一条逻辑互链由一对镜像行组成，成对创建、成对删除
type ContentLink struct {
	ID        string      `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FromKind  ContentKind `json:"from_kind" gorm:"type:varchar(20);uniqueIndex:uq_content_links_pair;not null"`
	FromID    string      `json:"from_id" gorm:"type:uuid;uniqueIndex:uq_content_links_pair;index;not null"`
	ToKind    ContentKind `json:"to_kind" gorm:"type:varchar(20);uniqueIndex:uq_content_links_pair;not null"`
	ToID      string      `json:"to_id" gorm:"type:uuid;uniqueIndex:uq_content_links_pair;index;not null"`
	WorldID   string      `json:"world_id" gorm:"type:uuid;index;not null"`
	CreatedBy string      `json:"created_by" gorm:"type:uuid"`
	CreatedAt time.Time   `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (ContentLink) TableName() string {
	return "content_links"
}

// From 返回链出端引用键
func (l ContentLink) From() ContentRef {
	return ContentRef{Kind: l.FromKind, ID: l.FromID}
}

// To 返回链入端引用键
func (l ContentLink) To() ContentRef {
	return ContentRef{Kind: l.ToKind, ID: l.ToID}
}

// Reverse 构造镜像行
func (l ContentLink) Reverse() ContentLink {
	return ContentLink{
		FromKind:  l.ToKind,
		FromID:    l.ToID,
		ToKind:    l.FromKind,
		ToID:      l.FromID,
		WorldID:   l.WorldID,
		CreatedBy: l.CreatedBy,
	}
}

// NewLinkPair 构造一条逻辑互链的两条镜像行
func NewLinkPair(from, to ContentRef, worldID, createdBy string) (ContentLink, ContentLink) {
	forward := ContentLink{
		FromKind:  from.Kind,
		FromID:    from.ID,
		ToKind:    to.Kind,
		ToID:      to.ID,
		WorldID:   worldID,
		CreatedBy: createdBy,
	}
	return forward, forward.Reverse()
}
