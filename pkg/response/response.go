package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/board-api/pkg/apperr"
	"github.com/d60-Lab/board-api/pkg/logger"
)

const MsgInternal = "서버 오류가 발생했습니다."

// ErrorBody 非 2xx 响应体
type ErrorBody struct {
	Error string `json:"error" example:"게시글을 찾을 수 없습니다."`
}

// InternalErrorBody 500 响应体
type InternalErrorBody struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Timestamp ISO-8601 UTC，毫秒精度
func Timestamp() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

func Success(c *gin.Context, data any) { c.JSON(http.StatusOK, data) }

func Created(c *gin.Context, data any) { c.JSON(http.StatusCreated, data) }

func Error(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorBody{Error: msg})
}

func BadRequest(c *gin.Context, msg string) { Error(c, http.StatusBadRequest, msg) }

func Unauthorized(c *gin.Context, msg string) { Error(c, http.StatusUnauthorized, msg) }

func NotFound(c *gin.Context, msg string) { Error(c, http.StatusNotFound, msg) }

func TooManyRequests(c *gin.Context, msg string) { Error(c, http.StatusTooManyRequests, msg) }

// InternalError 记录日志并返回 500
func InternalError(c *gin.Context, err error) {
	logger.Error("unhandled error",
		zap.Error(err),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
	)
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, InternalErrorBody{
		Error:     MsgInternal,
		Message:   apperr.MessageOf(err),
		Timestamp: Timestamp(),
	})
}

// FromError 按错误分类写响应
func FromError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindConflict:
		BadRequest(c, apperr.MessageOf(err))
	case apperr.KindAuth:
		Unauthorized(c, apperr.MessageOf(err))
	case apperr.KindNotFound:
		NotFound(c, apperr.MessageOf(err))
	default:
		InternalError(c, err)
	}
}
