package entity

import "strings"

// Essay 长文分析类内容
type Essay struct {
	ContentMeta `gorm:"embedded"`

	Abstract  string `json:"abstract,omitempty" gorm:"type:text"`
	WordCount int    `json:"word_count" gorm:"default:0"`
}

// TableName 指定表名
func (Essay) TableName() string {
	return "essays"
}

// Kind 返回内容类型
func (*Essay) Kind() ContentKind {
	return KindEssay
}

// Meta 返回共享字段
func (e *Essay) Meta() *ContentMeta {
	return &e.ContentMeta
}

// Ref 返回判别引用键
func (e *Essay) Ref() ContentRef {
	return ContentRef{Kind: KindEssay, ID: e.ID}
}

// FrozenEqual 比较冻结字段
func (e *Essay) FrozenEqual(other Content) bool {
	o, ok := other.(*Essay)
	if !ok {
		return false
	}
	return metaFrozenEqual(&e.ContentMeta, &o.ContentMeta) &&
		e.Abstract == o.Abstract &&
		e.WordCount == o.WordCount
}

// NewEssay 创建新文章，字数在创建时计算（内容创建后冻结）
func NewEssay(worldID, authorID, authorName, title, body, abstract string) *Essay {
	return &Essay{
		ContentMeta: ContentMeta{
			WorldID:    worldID,
			AuthorID:   authorID,
			AuthorName: authorName,
			Title:      title,
			Body:       body,
		},
		Abstract:  abstract,
		WordCount: len(strings.Fields(body)),
	}
}
