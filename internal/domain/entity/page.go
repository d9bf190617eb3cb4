package entity

// Page 百科式条目，承载世界观通用信息
type Page struct {
	ContentMeta `gorm:"embedded"`

	Summary string `json:"summary,omitempty" gorm:"type:varchar(500)"`
}

// TableName 指定表名
func (Page) TableName() string {
	return "pages"
}

// Kind 返回内容类型
func (*Page) Kind() ContentKind {
	return KindPage
}

// Meta 返回共享字段
func (p *Page) Meta() *ContentMeta {
	return &p.ContentMeta
}

// Ref 返回判别引用键
func (p *Page) Ref() ContentRef {
	return ContentRef{Kind: KindPage, ID: p.ID}
}

// FrozenEqual 比较冻结字段
func (p *Page) FrozenEqual(other Content) bool {
	o, ok := other.(*Page)
	if !ok {
		return false
	}
	return metaFrozenEqual(&p.ContentMeta, &o.ContentMeta) && p.Summary == o.Summary
}

// NewPage 创建新页面
func NewPage(worldID, authorID, authorName, title, body string) *Page {
	return &Page{
		ContentMeta: ContentMeta{
			WorldID:    worldID,
			AuthorID:   authorID,
			AuthorName: authorName,
			Title:      title,
			Body:       body,
		},
	}
}
