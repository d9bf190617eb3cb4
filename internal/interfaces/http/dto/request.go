// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"loreweave-api/internal/domain/entity"
	apperrors "loreweave-api/pkg/errors"
)

// PageRequest 分页请求参数
type PageRequest struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"page_size" json:"page_size"`
}

// Normalize 规范化分页参数
func (r *PageRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = 20
	}
	if r.PageSize > 100 {
		r.PageSize = 100
	}
}

// Offset 计算偏移量
func (r *PageRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// Limit 返回限制数
func (r *PageRequest) Limit() int {
	return r.PageSize
}

// BindPage 从 Gin Context 绑定分页参数
func BindPage(c *gin.Context) PageRequest {
	req := PageRequest{
		Page:     parseIntWithDefault(c.Query("page"), 1),
		PageSize: parseIntWithDefault(c.Query("page_size"), 20),
	}
	req.Normalize()
	return req
}

// parseIntWithDefault 解析整数，失败时返回默认值
func parseIntWithDefault(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

// BindWorldID 从 URI 绑定世界 ID
func BindWorldID(c *gin.Context) string {
	return c.Param("wid")
}

// BindContentRef 从 URI 绑定内容判别引用键
func BindContentRef(c *gin.Context) (entity.ContentRef, error) {
	kind, err := entity.ParseKind(c.Param("kind"))
	if err != nil {
		return entity.ContentRef{}, apperrors.Wrap(err, apperrors.CodeInvalidParam, "invalid content kind")
	}
	id := c.Param("id")
	if id == "" {
		return entity.ContentRef{}, apperrors.New(apperrors.CodeInvalidParam, "content id is required")
	}
	return entity.ContentRef{Kind: kind, ID: id}, nil
}

// BindIncludeDeleted 从查询参数绑定是否包含软删除行
func BindIncludeDeleted(c *gin.Context) bool {
	return c.Query("include_deleted") == "true"
}
