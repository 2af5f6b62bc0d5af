package api

import (
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/wfunc/casino-jackpot/internal/errors"
	"github.com/wfunc/casino-jackpot/internal/logger"
)

// requestLogger 记录每个请求的访问日志
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.LogRequest(
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
		)
	}
}

// panicRecovery panic兜底，记录堆栈后返回统一错误信封
func panicRecovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.LogPanic(recovered, debug.Stack())
		appErr := apperrors.New(apperrors.ErrUnknown, "服务内部错误")
		c.AbortWithStatusJSON(appErr.HTTPStatus(), apperrors.NewErrorResponse(appErr, c.GetHeader("X-Request-ID")))
	})
}
