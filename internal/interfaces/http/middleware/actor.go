package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loreweave-api/pkg/errors"
	"loreweave-api/pkg/logger"
)

// ActorIDHeader 操作者身份头
// 身份签发与会话管理是外部协作方职责，这里只消费不透明的 actor ID
const ActorIDHeader = "X-Actor-ID"

// Actor 操作者提取中间件
// required 为 true 时缺失身份直接拒绝
func Actor(required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader(ActorIDHeader)
		if actorID == "" && required {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    errors.CodeUnauthorized,
				"message": "missing " + ActorIDHeader + " header",
			})
			return
		}

		if actorID != "" {
			c.Set("actor_id", actorID)
			ctx := logger.WithContext(c.Request.Context(), logger.ActorIDKey, actorID)
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}

// ActorID 从 Gin Context 读取操作者 ID
func ActorID(c *gin.Context) string {
	return c.GetString("actor_id")
}
