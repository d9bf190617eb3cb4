package dto

import (
	"time"

	"loreweave-api/internal/domain/entity"
	apperrors "loreweave-api/pkg/errors"
)

// CreateContentRequest 创建内容请求
// 共享字段之外按类型携带私有字段
type CreateContentRequest struct {
	Title      string `json:"title" binding:"required"`
	Body       string `json:"body" binding:"required"`
	AuthorName string `json:"author_name"`

	// page
	Summary string `json:"summary,omitempty"`

	// essay
	Abstract string `json:"abstract,omitempty"`

	// character
	FullName            string   `json:"full_name,omitempty"`
	Age                 string   `json:"age,omitempty"`
	Species             string   `json:"species,omitempty"`
	Occupation          string   `json:"occupation,omitempty"`
	Location            string   `json:"location,omitempty"`
	PersonalityTraits   []string `json:"personality_traits,omitempty"`
	PhysicalDescription string   `json:"physical_description,omitempty"`
	Background          string   `json:"background,omitempty"`

	// story
	Genre           string   `json:"genre,omitempty"`
	StoryType       string   `json:"story_type,omitempty"`
	TimelinePeriod  string   `json:"timeline_period,omitempty"`
	SettingLocation string   `json:"setting_location,omitempty"`
	MainCharacters  []string `json:"main_characters,omitempty"`
	IsCanonical     *bool    `json:"is_canonical,omitempty"`

	// image
	FilePath   string `json:"file_path,omitempty"`
	Caption    string `json:"caption,omitempty"`
	AltText    string `json:"alt_text,omitempty"`
	ImageType  string `json:"image_type,omitempty"`
	Dimensions string `json:"dimensions,omitempty"`
	FileSize   int64  `json:"file_size,omitempty"`
}

// ToEntity 按判别符构造内容实体
func (r *CreateContentRequest) ToEntity(kind entity.ContentKind, worldID, authorID string) (entity.Content, error) {
	switch kind {
	case entity.KindPage:
		p := entity.NewPage(worldID, authorID, r.AuthorName, r.Title, r.Body)
		p.Summary = r.Summary
		return p, nil
	case entity.KindEssay:
		return entity.NewEssay(worldID, authorID, r.AuthorName, r.Title, r.Body, r.Abstract), nil
	case entity.KindCharacter:
		ch := entity.NewCharacter(worldID, authorID, r.AuthorName, r.Title, r.Body, r.FullName)
		ch.Age = r.Age
		ch.Species = r.Species
		ch.Occupation = r.Occupation
		ch.Location = r.Location
		ch.PersonalityTraits = r.PersonalityTraits
		ch.PhysicalDescription = r.PhysicalDescription
		ch.Background = r.Background
		return ch, nil
	case entity.KindStory:
		st := entity.NewStory(worldID, authorID, r.AuthorName, r.Title, r.Body, entity.StoryType(r.StoryType))
		st.Genre = r.Genre
		st.TimelinePeriod = r.TimelinePeriod
		st.SettingLocation = r.SettingLocation
		st.MainCharacters = r.MainCharacters
		if r.IsCanonical != nil {
			st.IsCanonical = *r.IsCanonical
		}
		return st, nil
	case entity.KindImage:
		img := entity.NewImage(worldID, authorID, r.AuthorName, r.Title, r.Body, r.AltText)
		img.FilePath = r.FilePath
		img.Caption = r.Caption
		if r.ImageType != "" {
			img.ImageType = entity.ImageType(r.ImageType)
		}
		img.Dimensions = r.Dimensions
		img.FileSize = r.FileSize
		return img, nil
	}
	return nil, apperrors.Newf(apperrors.CodeInvalidParam, "unknown content kind: %s", kind)
}

// ToProposed 基于已持久化实体构造提案实体
// 不可经请求表达的元数据（ID、创建时间、软删除三元组）继承存量值
func (r *CreateContentRequest) ToProposed(stored entity.Content) (entity.Content, error) {
	sm := stored.Meta()
	proposed, err := r.ToEntity(stored.Kind(), sm.WorldID, sm.AuthorID)
	if err != nil {
		return nil, err
	}

	meta := proposed.Meta()
	meta.ID = sm.ID
	meta.CreatedAt = sm.CreatedAt
	meta.IsDeleted = sm.IsDeleted
	meta.DeletedAt = sm.DeletedAt
	meta.DeletedBy = sm.DeletedBy
	if meta.AuthorName == "" {
		meta.AuthorName = sm.AuthorName
	}

	if st, ok := proposed.(*entity.Story); ok && r.IsCanonical == nil {
		if src, ok := stored.(*entity.Story); ok {
			st.IsCanonical = src.IsCanonical
		}
	}
	return proposed, nil
}

// ContentResponse 内容响应
type ContentResponse struct {
	ID         string     `json:"id"`
	Kind       string     `json:"kind"`
	WorldID    string     `json:"world_id"`
	AuthorID   string     `json:"author_id"`
	AuthorName string     `json:"author_name,omitempty"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	CreatedAt  time.Time  `json:"created_at"`
	IsDeleted  bool       `json:"is_deleted"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
	DeletedBy  string     `json:"deleted_by,omitempty"`

	Summary string `json:"summary,omitempty"`

	Abstract  string `json:"abstract,omitempty"`
	WordCount int    `json:"word_count,omitempty"`

	FullName            string   `json:"full_name,omitempty"`
	Age                 string   `json:"age,omitempty"`
	Species             string   `json:"species,omitempty"`
	Occupation          string   `json:"occupation,omitempty"`
	Location            string   `json:"location,omitempty"`
	PersonalityTraits   []string `json:"personality_traits,omitempty"`
	PhysicalDescription string   `json:"physical_description,omitempty"`
	Background          string   `json:"background,omitempty"`

	Genre           string   `json:"genre,omitempty"`
	StoryType       string   `json:"story_type,omitempty"`
	TimelinePeriod  string   `json:"timeline_period,omitempty"`
	SettingLocation string   `json:"setting_location,omitempty"`
	MainCharacters  []string `json:"main_characters,omitempty"`
	IsCanonical     *bool    `json:"is_canonical,omitempty"`

	FilePath   string `json:"file_path,omitempty"`
	Caption    string `json:"caption,omitempty"`
	AltText    string `json:"alt_text,omitempty"`
	ImageType  string `json:"image_type,omitempty"`
	Dimensions string `json:"dimensions,omitempty"`
	FileSize   int64  `json:"file_size,omitempty"`
}

// ToContentResponse 转换内容响应
func ToContentResponse(c entity.Content) *ContentResponse {
	meta := c.Meta()
	resp := &ContentResponse{
		ID:         meta.ID,
		Kind:       string(c.Kind()),
		WorldID:    meta.WorldID,
		AuthorID:   meta.AuthorID,
		AuthorName: meta.AuthorName,
		Title:      meta.Title,
		Body:       meta.Body,
		CreatedAt:  meta.CreatedAt,
		IsDeleted:  meta.IsDeleted,
		DeletedAt:  meta.DeletedAt,
		DeletedBy:  meta.DeletedBy,
	}

	switch v := c.(type) {
	case *entity.Page:
		resp.Summary = v.Summary
	case *entity.Essay:
		resp.Abstract = v.Abstract
		resp.WordCount = v.WordCount
	case *entity.Character:
		resp.FullName = v.FullName
		resp.Age = v.Age
		resp.Species = v.Species
		resp.Occupation = v.Occupation
		resp.Location = v.Location
		resp.PersonalityTraits = v.PersonalityTraits
		resp.PhysicalDescription = v.PhysicalDescription
		resp.Background = v.Background
	case *entity.Story:
		resp.Genre = v.Genre
		resp.StoryType = string(v.StoryType)
		resp.TimelinePeriod = v.TimelinePeriod
		resp.SettingLocation = v.SettingLocation
		resp.MainCharacters = v.MainCharacters
		canonical := v.IsCanonical
		resp.IsCanonical = &canonical
		resp.WordCount = v.WordCount
	case *entity.Image:
		resp.FilePath = v.FilePath
		resp.Caption = v.Caption
		resp.AltText = v.AltText
		resp.ImageType = string(v.ImageType)
		resp.Dimensions = v.Dimensions
		resp.FileSize = v.FileSize
	}
	return resp
}

// ToContentListResponse 转换内容列表响应
func ToContentListResponse(contents []entity.Content) []*ContentResponse {
	out := make([]*ContentResponse, 0, len(contents))
	for _, c := range contents {
		out = append(out, ToContentResponse(c))
	}
	return out
}
