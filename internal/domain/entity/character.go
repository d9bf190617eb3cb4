package entity

// Character 角色档案
type Character struct {
	ContentMeta `gorm:"embedded"`

	FullName            string   `json:"full_name" gorm:"type:varchar(200);not null"`
	Age                 string   `json:"age,omitempty" gorm:"type:varchar(50)"`
	Species             string   `json:"species,omitempty" gorm:"type:varchar(100)"`
	Occupation          string   `json:"occupation,omitempty" gorm:"type:varchar(200)"`
	Location            string   `json:"location,omitempty" gorm:"type:varchar(200)"`
	PersonalityTraits   []string `json:"personality_traits,omitempty" gorm:"type:jsonb;serializer:json"`
	PhysicalDescription string   `json:"physical_description,omitempty" gorm:"type:text"`
	Background          string   `json:"background,omitempty" gorm:"type:text"`
}

// TableName 指定表名
func (Character) TableName() string {
	return "characters"
}

// Kind 返回内容类型
func (*Character) Kind() ContentKind {
	return KindCharacter
}

// Meta 返回共享字段
func (c *Character) Meta() *ContentMeta {
	return &c.ContentMeta
}

// Ref 返回判别引用键
func (c *Character) Ref() ContentRef {
	return ContentRef{Kind: KindCharacter, ID: c.ID}
}

// FrozenEqual 比较冻结字段
func (c *Character) FrozenEqual(other Content) bool {
	o, ok := other.(*Character)
	if !ok {
		return false
	}
	return metaFrozenEqual(&c.ContentMeta, &o.ContentMeta) &&
		c.FullName == o.FullName &&
		c.Age == o.Age &&
		c.Species == o.Species &&
		c.Occupation == o.Occupation &&
		c.Location == o.Location &&
		stringSliceEqual(c.PersonalityTraits, o.PersonalityTraits) &&
		c.PhysicalDescription == o.PhysicalDescription &&
		c.Background == o.Background
}

// NewCharacter 创建新角色
func NewCharacter(worldID, authorID, authorName, title, body, fullName string) *Character {
	return &Character{
		ContentMeta: ContentMeta{
			WorldID:    worldID,
			AuthorID:   authorID,
			AuthorName: authorName,
			Title:      title,
			Body:       body,
		},
		FullName:          fullName,
		PersonalityTraits: []string{},
	}
}
