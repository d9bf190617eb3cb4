package content

import (
	"strings"

	"loreweave-api/internal/domain/entity"
	apperrors "loreweave-api/pkg/errors"
)

// 字段边界
const (
	TitleMinLen = 3
	TitleMaxLen = 300
	BodyMinLen  = 10
	BodyMaxLen  = 100000
)

// ValidateTitle 校验标题边界
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return apperrors.New(apperrors.CodeTitleRequired, "title is required").WithField("title")
	}
	if len(trimmed) < TitleMinLen {
		return apperrors.Newf(apperrors.CodeTitleTooShort,
			"title must be at least %d characters", TitleMinLen).WithField("title")
	}
	if len(trimmed) > TitleMaxLen {
		return apperrors.Newf(apperrors.CodeTitleTooLong,
			"title must be at most %d characters", TitleMaxLen).WithField("title")
	}
	return nil
}

// ValidateBody 校验正文边界
func ValidateBody(body string) error {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return apperrors.New(apperrors.CodeBodyRequired, "body is required").WithField("body")
	}
	if len(trimmed) < BodyMinLen {
		return apperrors.Newf(apperrors.CodeBodyTooShort,
			"body must be at least %d characters", BodyMinLen).WithField("body")
	}
	if len(trimmed) > BodyMaxLen {
		return apperrors.Newf(apperrors.CodeBodyTooLong,
			"body must be at most %d characters", BodyMaxLen).WithField("body")
	}
	return nil
}

// validateMeta 校验共享字段
func validateMeta(c entity.Content) error {
	meta := c.Meta()
	if meta.WorldID == "" {
		return apperrors.New(apperrors.CodeValidationFailed, "world is required").WithField("world_id")
	}
	if meta.AuthorID == "" {
		return apperrors.New(apperrors.CodeValidationFailed, "author is required").WithField("author_id")
	}
	if err := ValidateTitle(meta.Title); err != nil {
		return err
	}
	if err := ValidateBody(meta.Body); err != nil {
		return err
	}
	return validateKindFields(c)
}

// validateKindFields 校验各类型私有字段
func validateKindFields(c entity.Content) error {
	switch v := c.(type) {
	case *entity.Character:
		if strings.TrimSpace(v.FullName) == "" {
			return apperrors.New(apperrors.CodeValidationFailed, "full name is required").WithField("full_name")
		}
	case *entity.Story:
		if v.StoryType != "" && !entity.ValidStoryType(v.StoryType) {
			return apperrors.Newf(apperrors.CodeValidationFailed,
				"invalid story type: %s", v.StoryType).WithField("story_type")
		}
	case *entity.Image:
		if strings.TrimSpace(v.AltText) == "" {
			return apperrors.New(apperrors.CodeValidationFailed, "alt text is required").WithField("alt_text")
		}
	}
	return nil
}
