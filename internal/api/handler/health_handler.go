package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/board-api/pkg/response"
)

type healthResponse struct {
	Status    string `json:"status" example:"ok"`
	Timestamp string `json:"timestamp"`
}

// Health 健康检查
// @Summary 상태 확인
// @Tags 시스템
// @Produce json
// @Success 200 {object} healthResponse
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	response.Success(c, healthResponse{Status: "ok", Timestamp: response.Timestamp()})
}

const landingPage = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>백엔드 API 서버</title>
    <style>
      body { font-family: Arial; margin: 40px; background: #f5f5f5; }
      .container { max-width: 600px; margin: 0 auto; background: white; padding: 30px; border-radius: 8px; }
      .link { display: inline-block; margin: 10px 0; padding: 10px 20px; background: #61dafb; color: #333; text-decoration: none; border-radius: 5px; font-weight: bold; }
    </style>
  </head>
  <body>
    <div class="container">
      <h1>Gin 백엔드 서버</h1>
      <a href="/api-docs/index.html" class="link">API 문서 (Swagger)</a>
      <a href="/health" class="link">상태 확인</a>
    </div>
  </body>
</html>
`

// Home 文档链接页
func (h *Handler) Home(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(landingPage))
}
