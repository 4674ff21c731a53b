package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/board-api/internal/model"
	"github.com/d60-Lab/board-api/internal/service"
	"github.com/d60-Lab/board-api/pkg/response"
)

const MsgPostDeleted = "게시글이 삭제되었습니다."

type deletePostResponse struct {
	Message string      `json:"message"`
	Post    *model.Post `json:"post"`
}

// ListPosts 分页查询帖子
// @Summary 모든 게시글 조회
// @Tags 게시판
// @Produce json
// @Param page query int false "페이지 번호" default(1)
// @Param limit query int false "한 페이지당 개수" default(10)
// @Success 200 {object} service.PostPage
// @Router /api/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	// 解析失败得到 0，由 service 回退为默认值
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	res, err := h.postService.ListPosts(c.Request.Context(), page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, res)
}

// GetPost 查询帖子详情（浏览数 +1）
// @Summary 특정 게시글 조회
// @Tags 게시판
// @Produce json
// @Param id path int true "게시글 ID"
// @Success 200 {object} model.Post
// @Failure 404 {object} response.ErrorBody
// @Router /api/posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.NotFound(c, service.MsgPostNotFound)
		return
	}
	post, err := h.postService.GetPost(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, post)
}

// CreatePost 发帖
// @Summary 새 게시글 작성
// @Tags 게시판
// @Accept json
// @Produce json
// @Param request body service.CreatePostInput true "게시글"
// @Success 201 {object} model.Post
// @Failure 400 {object} response.ErrorBody
// @Router /api/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req service.CreatePostInput
	if err := bindJSON(c, &req); err != nil {
		response.BadRequest(c, MsgInvalidBody)
		return
	}
	post, err := h.postService.CreatePost(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, post)
}

// UpdatePost 编辑标题/内容
// @Summary 게시글 수정
// @Tags 게시판
// @Accept json
// @Produce json
// @Param id path int true "게시글 ID"
// @Param request body model.PostPatch true "수정할 필드"
// @Success 200 {object} model.Post
// @Failure 404 {object} response.ErrorBody
// @Router /api/posts/{id} [put]
func (h *Handler) UpdatePost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.NotFound(c, service.MsgPostNotFound)
		return
	}
	var patch model.PostPatch
	if err := bindJSON(c, &patch); err != nil {
		response.BadRequest(c, MsgInvalidBody)
		return
	}
	post, err := h.postService.UpdatePost(c.Request.Context(), id, patch)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, post)
}

// DeletePost 删除帖子
// @Summary 게시글 삭제
// @Tags 게시판
// @Produce json
// @Param id path int true "게시글 ID"
// @Success 200 {object} deletePostResponse
// @Failure 404 {object} response.ErrorBody
// @Router /api/posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.NotFound(c, service.MsgPostNotFound)
		return
	}
	post, err := h.postService.DeletePost(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, deletePostResponse{Message: MsgPostDeleted, Post: post})
}
