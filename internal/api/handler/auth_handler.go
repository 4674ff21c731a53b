package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/board-api/internal/model"
	"github.com/d60-Lab/board-api/internal/service"
	"github.com/d60-Lab/board-api/pkg/response"
)

const (
	MsgRegistered = "회원가입 성공!"
	MsgLoggedIn   = "로그인 성공!"
)

type registerResponse struct {
	Message string           `json:"message"`
	User    model.PublicUser `json:"user"`
}

// loginUser 登录响应只带 id/username/email
type loginUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type loginResponse struct {
	Message string    `json:"message"`
	User    loginUser `json:"user"`
	Token   string    `json:"token" example:"fake_token_1"`
}

type usersResponse struct {
	Users []model.PublicUser `json:"users"`
}

// Register 注册
// @Summary 회원가입
// @Tags 인증
// @Accept json
// @Produce json
// @Param request body service.RegisterInput true "회원 정보"
// @Success 201 {object} registerResponse
// @Failure 400 {object} response.ErrorBody
// @Router /api/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req service.RegisterInput
	if err := bindJSON(c, &req); err != nil {
		response.BadRequest(c, MsgInvalidBody)
		return
	}
	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, registerResponse{Message: MsgRegistered, User: *user})
}

// Login 登录，token 仅为占位符
// @Summary 로그인
// @Tags 인증
// @Accept json
// @Produce json
// @Param request body service.LoginInput true "로그인 정보"
// @Success 200 {object} loginResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Router /api/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req service.LoginInput
	if err := bindJSON(c, &req); err != nil {
		response.BadRequest(c, MsgInvalidBody)
		return
	}
	res, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, loginResponse{
		Message: MsgLoggedIn,
		User:    loginUser{ID: res.User.ID, Username: res.User.Username, Email: res.User.Email},
		Token:   res.Token,
	})
}

// ListUsers 已注册用户
// @Summary 모든 사용자 조회
// @Tags 인증
// @Produce json
// @Success 200 {object} usersResponse
// @Router /api/auth/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, usersResponse{Users: users})
}

// GetUser 按 ID 查询用户
// @Summary 특정 사용자 조회
// @Tags 인증
// @Produce json
// @Param id path int true "사용자 ID"
// @Success 200 {object} model.PublicUser
// @Failure 404 {object} response.ErrorBody
// @Router /api/auth/users/{id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.NotFound(c, service.MsgUserNotFound)
		return
	}
	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, user)
}
