package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/board-api/internal/service"
)

const MsgInvalidBody = "요청 본문이 올바른 JSON이 아닙니다."

// Handler 聚合所有 HTTP handler
type Handler struct {
	userService service.UserService
	postService service.PostService
	version     string
}

func NewHandler(userService service.UserService, postService service.PostService, version string) *Handler {
	return &Handler{userService: userService, postService: postService, version: version}
}

// bindJSON 空请求体按 {} 处理，交给 service 报告缺失字段
func bindJSON(c *gin.Context, obj any) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// pathID 非数字的 id 视为不存在
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil
}
