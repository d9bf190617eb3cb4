// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"loreweave-api/internal/interfaces/http/dto"
	apperrors "loreweave-api/pkg/errors"
	"loreweave-api/pkg/logger"
)

// respondError 将应用错误映射为 HTTP 响应
// 错误码自带 HTTP 状态映射，非应用错误一律按内部错误处理
func respondError(c *gin.Context, err error) {
	appErr := apperrors.AsAppError(err)
	if appErr.HTTPStatus >= 500 {
		logger.Error(c.Request.Context(), "request failed", err,
			"path", c.Request.URL.Path, "method", c.Request.Method)
	}

	status := appErr.HTTPStatus
	if status == 0 {
		status = 500
	}
	dto.ErrorWithDetail(c, status, appErr.Message, &dto.ErrorDetail{
		ErrorCode: string(appErr.Code),
		Field:     appErr.Field,
		Details:   appErr.Detail,
	})
}
