// Package errors 提供统一的错误定义
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode 错误码类型
type ErrorCode string

// 预定义错误码
const (
	// 通用错误 (1xxx)
	CodeSuccess            ErrorCode = "0"
	CodeUnknown            ErrorCode = "1000"
	CodeInvalidParam       ErrorCode = "1001"
	CodeUnauthorized       ErrorCode = "1002"
	CodeForbidden          ErrorCode = "1003"
	CodeNotFound           ErrorCode = "1004"
	CodeConflict           ErrorCode = "1005"
	CodeTooManyRequests    ErrorCode = "1006"
	CodeInternalError      ErrorCode = "1007"
	CodeServiceUnavailable ErrorCode = "1008"

	// 校验错误 (2xxx)
	CodeValidationFailed ErrorCode = "2001"
	CodeTitleRequired    ErrorCode = "2002"
	CodeTitleTooShort    ErrorCode = "2003"
	CodeTitleTooLong     ErrorCode = "2004"
	CodeBodyRequired     ErrorCode = "2005"
	CodeBodyTooShort     ErrorCode = "2006"
	CodeBodyTooLong      ErrorCode = "2007"
	CodeDuplicateTitle   ErrorCode = "2008"
	CodeInvalidTagName   ErrorCode = "2009"
	CodeReservedTagName  ErrorCode = "2010"

	// 资源错误 (3xxx)
	CodeWorldNotFound   ErrorCode = "3001"
	CodeContentNotFound ErrorCode = "3002"
	CodeTagNotFound     ErrorCode = "3003"
	CodeLinkNotFound    ErrorCode = "3004"

	// 业务错误 (4xxx)
	CodeImmutableContent ErrorCode = "4001"
	CodeWorldMismatch    ErrorCode = "4002"
	CodeSelfLink         ErrorCode = "4003"
	CodeSoftDeleted      ErrorCode = "4004"
	CodeNotSoftDeletable ErrorCode = "4005"

	// 外部服务错误 (5xxx)
	CodeDatabaseError ErrorCode = "5001"
	CodeCacheError    ErrorCode = "5002"
)

// AppError 应用错误
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	Field      string    `json:"field,omitempty"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 返回底层错误
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较，使预定义错误可用于 errors.Is
func (e *AppError) Is(target error) bool {
	var appErr *AppError
	if errors.As(target, &appErr) {
		return e.Code == appErr.Code
	}
	return false
}

// WithDetail 添加详细信息
func (e *AppError) WithDetail(detail string) *AppError {
	clone := *e
	clone.Detail = detail
	return &clone
}

// WithField 标记触发校验错误的字段
func (e *AppError) WithField(field string) *AppError {
	clone := *e
	clone.Field = field
	return &clone
}

// WithError 添加底层错误
func (e *AppError) WithError(err error) *AppError {
	clone := *e
	clone.Err = err
	return &clone
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Newf 创建带格式化消息的应用错误
func Newf(code ErrorCode, format string, args ...any) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Err:        err,
	}
}

// codeToHTTPStatus 错误码转 HTTP 状态码
func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeSuccess:
		return http.StatusOK
	case CodeInvalidParam, CodeWorldMismatch, CodeSelfLink:
		return http.StatusBadRequest
	case CodeValidationFailed, CodeTitleRequired, CodeTitleTooShort, CodeTitleTooLong,
		CodeBodyRequired, CodeBodyTooShort, CodeBodyTooLong,
		CodeInvalidTagName, CodeReservedTagName:
		return http.StatusUnprocessableEntity
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden, CodeImmutableContent, CodeNotSoftDeletable:
		return http.StatusForbidden
	case CodeNotFound, CodeWorldNotFound, CodeContentNotFound, CodeTagNotFound, CodeLinkNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeDuplicateTitle:
		return http.StatusConflict
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// 预定义错误
var (
	ErrInvalidParam       = New(CodeInvalidParam, "invalid parameter")
	ErrUnauthorized       = New(CodeUnauthorized, "unauthorized")
	ErrForbidden          = New(CodeForbidden, "forbidden")
	ErrNotFound           = New(CodeNotFound, "resource not found")
	ErrConflict           = New(CodeConflict, "resource conflict")
	ErrTooManyRequests    = New(CodeTooManyRequests, "too many requests")
	ErrInternalError      = New(CodeInternalError, "internal server error")
	ErrServiceUnavailable = New(CodeServiceUnavailable, "service unavailable")

	ErrWorldNotFound   = New(CodeWorldNotFound, "world not found")
	ErrContentNotFound = New(CodeContentNotFound, "content not found")
	ErrTagNotFound     = New(CodeTagNotFound, "tag not found")
	ErrLinkNotFound    = New(CodeLinkNotFound, "link not found")

	ErrValidationFailed = New(CodeValidationFailed, "validation failed")
	ErrDuplicateTitle   = New(CodeDuplicateTitle, "title already exists in this world")
	ErrImmutableContent = New(CodeImmutableContent, "content cannot be modified after creation")
	ErrWorldMismatch    = New(CodeWorldMismatch, "cannot link content from different worlds")
	ErrSelfLink         = New(CodeSelfLink, "content cannot link to itself")
)

// IsAppError 检查是否为 AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError 将错误转换为 AppError
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeUnknown, "unknown error")
}

// IsCode 检查错误是否携带指定错误码
func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
