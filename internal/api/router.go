package api

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/d60-Lab/board-api/docs"

	"github.com/d60-Lab/board-api/config"
	"github.com/d60-Lab/board-api/internal/api/handler"
	"github.com/d60-Lab/board-api/internal/api/middleware"
	"github.com/d60-Lab/board-api/pkg/response"
)

const MsgRouteNotFound = "요청한 경로를 찾을 수 없습니다."

// SetupRouter 注册中间件与路由
// @title 게시판 API
// @version 1.0.0
// @description Gin 백엔드 API 문서 (사용자 인증 + 게시판)
// @BasePath /
func SetupRouter(cfg *config.Config, h *handler.Handler) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()

	r.Use(middleware.RequestID())
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(middleware.Logger())
	if len(cfg.CORS.AllowOrigins) > 0 {
		r.Use(middleware.CORS(cfg.CORS.AllowOrigins))
	}
	// gzip 不会还原 c.Writer，Recovery 须在其内侧
	r.Use(gzip.Gzip(gzip.DefaultCompression), middleware.Recovery())
	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	r.GET("/", h.Home)
	r.GET("/health", h.Health)
	if cfg.Swagger.Enabled {
		r.GET("/api-docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/hello", h.Hello)
		apiGroup.GET("/users", h.DemoUsers)
		apiGroup.POST("/message", h.Message)

		auth := apiGroup.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)
			auth.GET("/users", h.ListUsers)
			auth.GET("/users/:id", h.GetUser)
		}

		posts := apiGroup.Group("/posts")
		{
			posts.GET("", h.ListPosts)
			posts.POST("", h.CreatePost)
			posts.GET("/:id", h.GetPost)
			posts.PUT("/:id", h.UpdatePost)
			posts.DELETE("/:id", h.DeletePost)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, MsgRouteNotFound)
	})
	return r
}
