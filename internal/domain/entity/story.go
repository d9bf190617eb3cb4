package entity

import "strings"

// StoryType 叙事类型
type StoryType string

const (
	StoryTypeShortStory StoryType = "short_story"
	StoryTypeNovella    StoryType = "novella"
	StoryTypeChapter    StoryType = "chapter"
	StoryTypeVignette   StoryType = "vignette"
	StoryTypeLegend     StoryType = "legend"
	StoryTypeMyth       StoryType = "myth"
	StoryTypeHistorical StoryType = "historical_account"
)

// ValidStoryType 检查叙事类型是否合法
func ValidStoryType(t StoryType) bool {
	switch t {
	case StoryTypeShortStory, StoryTypeNovella, StoryTypeChapter,
		StoryTypeVignette, StoryTypeLegend, StoryTypeMyth, StoryTypeHistorical:
		return true
	}
	return false
}

// Story 叙事类内容
type Story struct {
	ContentMeta `gorm:"embedded"`

	Genre           string    `json:"genre,omitempty" gorm:"type:varchar(100)"`
	StoryType       StoryType `json:"story_type" gorm:"type:varchar(50);default:'short_story'"`
	TimelinePeriod  string    `json:"timeline_period,omitempty" gorm:"type:varchar(200)"`
	SettingLocation string    `json:"setting_location,omitempty" gorm:"type:varchar(200)"`
	MainCharacters  []string  `json:"main_characters,omitempty" gorm:"type:jsonb;serializer:json"`
	WordCount       int       `json:"word_count" gorm:"default:0"`
	IsCanonical     bool      `json:"is_canonical" gorm:"default:true"`
}

// TableName 指定表名
func (Story) TableName() string {
	return "stories"
}

// Kind 返回内容类型
func (*Story) Kind() ContentKind {
	return KindStory
}

// Meta 返回共享字段
func (s *Story) Meta() *ContentMeta {
	return &s.ContentMeta
}

// Ref 返回判别引用键
func (s *Story) Ref() ContentRef {
	return ContentRef{Kind: KindStory, ID: s.ID}
}

// FrozenEqual 比较冻结字段
func (s *Story) FrozenEqual(other Content) bool {
	o, ok := other.(*Story)
	if !ok {
		return false
	}
	return metaFrozenEqual(&s.ContentMeta, &o.ContentMeta) &&
		s.Genre == o.Genre &&
		s.StoryType == o.StoryType &&
		s.TimelinePeriod == o.TimelinePeriod &&
		s.SettingLocation == o.SettingLocation &&
		stringSliceEqual(s.MainCharacters, o.MainCharacters) &&
		s.WordCount == o.WordCount &&
		s.IsCanonical == o.IsCanonical
}

// NewStory 创建新故事，字数在创建时计算（内容创建后冻结）
func NewStory(worldID, authorID, authorName, title, body string, storyType StoryType) *Story {
	if storyType == "" {
		storyType = StoryTypeShortStory
	}
	return &Story{
		ContentMeta: ContentMeta{
			WorldID:    worldID,
			AuthorID:   authorID,
			AuthorName: authorName,
			Title:      title,
			Body:       body,
		},
		StoryType:      storyType,
		MainCharacters: []string{},
		WordCount:      len(strings.Fields(body)),
		IsCanonical:    true,
	}
}
