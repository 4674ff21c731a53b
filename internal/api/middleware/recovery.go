package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/board-api/pkg/logger"
	"github.com/d60-Lab/board-api/pkg/response"
	"github.com/d60-Lab/board-api/pkg/sentryx"
)

// Recovery 捕获 panic，统一返回 500 {error, message, timestamp}
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("%v", rec)
			}
			logger.Error("panic recovered",
				zap.Error(err),
				zap.String("request_id", GetRequestID(c)),
				zap.ByteString("stack", debug.Stack()),
			)
			sentryx.CaptureRequestError(c.Request, err)
			response.InternalError(c, err)
		}()
		c.Next()
	}
}
