package entity

// ImageType 图像内容类别
type ImageType string

const (
	ImageTypeConceptArt       ImageType = "concept_art"
	ImageTypeMap              ImageType = "map"
	ImageTypePortrait         ImageType = "character_portrait"
	ImageTypeLocationPhoto    ImageType = "location_photo"
	ImageTypeItemIllustration ImageType = "item_illustration"
	ImageTypeScene            ImageType = "scene_illustration"
	ImageTypeDiagram          ImageType = "diagram"
	ImageTypeOther            ImageType = "other"
)

// Image 视觉类内容
// 文件上传与像素级处理由外部协作方完成，这里仅承载元数据
type Image struct {
	ContentMeta `gorm:"embedded"`

	FilePath   string    `json:"file_path,omitempty" gorm:"type:varchar(500)"`
	Caption    string    `json:"caption,omitempty" gorm:"type:varchar(500)"`
	AltText    string    `json:"alt_text" gorm:"type:varchar(200);not null"`
	ImageType  ImageType `json:"image_type" gorm:"type:varchar(50);default:'other'"`
	Dimensions string    `json:"dimensions,omitempty" gorm:"type:varchar(50)"`
	FileSize   int64     `json:"file_size" gorm:"default:0"`
}

// TableName 指定表名
func (Image) TableName() string {
	return "images"
}

// Kind 返回内容类型
func (*Image) Kind() ContentKind {
	return KindImage
}

// Meta 返回共享字段
func (i *Image) Meta() *ContentMeta {
	return &i.ContentMeta
}

// Ref 返回判别引用键
func (i *Image) Ref() ContentRef {
	return ContentRef{Kind: KindImage, ID: i.ID}
}

// FrozenEqual 比较冻结字段
func (i *Image) FrozenEqual(other Content) bool {
	o, ok := other.(*Image)
	if !ok {
		return false
	}
	return metaFrozenEqual(&i.ContentMeta, &o.ContentMeta) &&
		i.FilePath == o.FilePath &&
		i.Caption == o.Caption &&
		i.AltText == o.AltText &&
		i.ImageType == o.ImageType &&
		i.Dimensions == o.Dimensions &&
		i.FileSize == o.FileSize
}

// NewImage 创建新图像条目
func NewImage(worldID, authorID, authorName, title, body, altText string) *Image {
	return &Image{
		ContentMeta: ContentMeta{
			WorldID:    worldID,
			AuthorID:   authorID,
			AuthorName: authorName,
			Title:      title,
			Body:       body,
		},
		AltText:   altText,
		ImageType: ImageTypeOther,
	}
}
