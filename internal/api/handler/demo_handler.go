package handler

import (
	"math"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/board-api/pkg/response"
)

const (
	MsgHello          = "안녕하세요! Gin 서버에서 보낸 데이터입니다."
	MsgMessageMissing = "메시지가 필요합니다."
)

type helloResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version" example:"1.0.0"`
}

// DemoUser 静态演示数据，与注册用户无关
type DemoUser struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type demoUsersResponse struct {
	Users []DemoUser `json:"users"`
}

var demoUsers = []DemoUser{
	{ID: 1, Name: "사용자1", Email: "user1@example.com"},
	{ID: 2, Name: "사용자2", Email: "user2@example.com"},
}

type messageRequest struct {
	Message any `json:"message"`
}

type messageResponse struct {
	Success         bool   `json:"success"`
	ReceivedMessage any    `json:"receivedMessage"`
	ProcessedAt     string `json:"processedAt"`
}

// Hello 连通性测试
// @Summary 기본 인사말 반환
// @Tags 테스트
// @Produce json
// @Success 200 {object} helloResponse
// @Router /api/hello [get]
func (h *Handler) Hello(c *gin.Context) {
	response.Success(c, helloResponse{Message: MsgHello, Timestamp: response.Timestamp(), Version: h.version})
}

// DemoUsers 静态用户列表
// @Summary 사용자 목록 조회
// @Tags 사용자
// @Produce json
// @Success 200 {object} demoUsersResponse
// @Router /api/users [get]
func (h *Handler) DemoUsers(c *gin.Context) {
	response.Success(c, demoUsersResponse{Users: demoUsers})
}

// Message 原样回显 message
// @Summary 메시지 전송
// @Tags 메시지
// @Accept json
// @Produce json
// @Param request body messageRequest true "메시지"
// @Success 200 {object} messageResponse
// @Failure 400 {object} response.ErrorBody
// @Router /api/message [post]
func (h *Handler) Message(c *gin.Context) {
	var req messageRequest
	if err := bindJSON(c, &req); err != nil {
		response.BadRequest(c, MsgInvalidBody)
		return
	}
	if !truthy(req.Message) {
		response.BadRequest(c, MsgMessageMissing)
		return
	}
	response.Success(c, messageResponse{Success: true, ReceivedMessage: req.Message, ProcessedAt: response.Timestamp()})
}

// truthy 对解码后的 JSON 值：null、""、0、false 视为缺失
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	default:
		return true
	}
}
