package router

import (
	"github.com/gin-gonic/gin"

	"intergalactic/internal/config"
	"intergalactic/internal/controller"
	"intergalactic/internal/middleware"
)

// Setup 设置API路由
func Setup(r *gin.Engine) {
	// 本地存储时由本服务直接提供图片访问
	cfg := config.GetConfig()
	if cfg.Storage.Type == "" || cfg.Storage.Type == "local" {
		r.Static(cfg.Storage.Local.URLPrefix, cfg.Storage.Local.Path)
	}

	api := r.Group("/api")

	setupUserRoutes(api)
	setupCategoryRoutes(api)
	setupPublicationRoutes(api)
	setupCommentRoutes(api)
	setupNotificationRoutes(api)
	setupImageRoutes(api)
	setupSystemRoutes(api)
}

// setupUserRoutes 设置用户相关路由
func setupUserRoutes(api *gin.RouterGroup) {
	userApi := controller.NewUserApi()

	// 公开路由
	userRoutes := api.Group("/users")
	{
		userRoutes.POST("/register", userApi.Register)
		userRoutes.POST("/login", userApi.Login)
		userRoutes.GET("/:id", userApi.GetUserDetail)
		userRoutes.GET("/:id/rating", userApi.GetAuthorRating)
	}

	// 需要刷新令牌的路由
	refreshRoutes := api.Group("/users", middleware.RefreshAuth())
	{
		refreshRoutes.POST("/refresh", userApi.RefreshToken)
		refreshRoutes.POST("/logout", userApi.Logout)
	}

	// 需要认证的路由
	authUserRoutes := api.Group("/users", middleware.JWTAuth())
	{
		authUserRoutes.GET("/me", userApi.GetMe)
		authUserRoutes.POST("/:id/rating", userApi.RateAuthor)
	}
}

// setupCategoryRoutes 设置分类相关路由
func setupCategoryRoutes(api *gin.RouterGroup) {
	categoryApi := controller.NewCategoryApi()

	categoryRoutes := api.Group("/categories")
	{
		categoryRoutes.GET("", categoryApi.List)
		// 分类页的发布列表，ID为0时不过滤分类
		categoryRoutes.GET("/:id/publications", categoryApi.Publications)
	}

	adminCategoryRoutes := api.Group("/categories", middleware.AdminAuth())
	{
		adminCategoryRoutes.POST("", categoryApi.Create)
		adminCategoryRoutes.PUT("/:id", categoryApi.Update)
	}
}

// setupPublicationRoutes 设置发布相关路由
func setupPublicationRoutes(api *gin.RouterGroup) {
	publicationApi := controller.NewPublicationApi()

	// 公开路由，详情页带可选认证以标记当前用户的反应状态
	publicationRoutes := api.Group("/publications")
	{
		publicationRoutes.GET("", publicationApi.Home)
		publicationRoutes.GET("/search", publicationApi.Search)
		publicationRoutes.GET("/:id", middleware.OptionalAuth(), publicationApi.Detail)
		publicationRoutes.GET("/:id/rating", publicationApi.GetRating)
	}

	authPublicationRoutes := api.Group("/publications", middleware.JWTAuth())
	{
		authPublicationRoutes.POST("", publicationApi.Create)
		authPublicationRoutes.PUT("/:id", publicationApi.Update)
		authPublicationRoutes.DELETE("/:id", publicationApi.Delete)
		authPublicationRoutes.POST("/:id/like", publicationApi.Like)
		authPublicationRoutes.POST("/:id/dislike", publicationApi.Dislike)
		authPublicationRoutes.POST("/:id/rating", publicationApi.Rate)
	}

	adminPublicationRoutes := api.Group("/publications", middleware.AdminAuth())
	{
		adminPublicationRoutes.POST("/:id/moderation", publicationApi.Moderate)
	}
}

// setupCommentRoutes 设置评论相关路由
func setupCommentRoutes(api *gin.RouterGroup) {
	commentApi := controller.NewCommentApi()

	commentRoutes := api.Group("/comments")
	{
		commentRoutes.GET("", commentApi.List)
	}

	authCommentRoutes := api.Group("/comments", middleware.JWTAuth())
	{
		authCommentRoutes.POST("", commentApi.Create)
		authCommentRoutes.POST("/reply", commentApi.Reply)
		authCommentRoutes.DELETE("/:id", commentApi.Delete)
	}
}

// setupNotificationRoutes 设置通知相关路由
func setupNotificationRoutes(api *gin.RouterGroup) {
	notificationApi := controller.NewNotificationApi()
	websocketApi := controller.NewWebSocketApi()

	authNotificationRoutes := api.Group("/notifications", middleware.JWTAuth())
	{
		authNotificationRoutes.GET("/unread", notificationApi.Inbox)
		authNotificationRoutes.POST("/reactions/:id/read", notificationApi.MarkReactionRead)
		authNotificationRoutes.POST("/comments/:id/read", notificationApi.MarkCommentRead)
	}

	// websocket自行从查询参数认证
	api.GET("/ws", websocketApi.Connect)
}

// setupImageRoutes 设置图片相关路由
func setupImageRoutes(api *gin.RouterGroup) {
	imageApi := controller.NewImageApi()

	authImageRoutes := api.Group("/images", middleware.JWTAuth())
	{
		authImageRoutes.POST("/upload", imageApi.Upload)
	}
}

// setupSystemRoutes 设置系统相关路由
func setupSystemRoutes(api *gin.RouterGroup) {
	systemApi := controller.NewSystemApi()

	systemRoutes := api.Group("/system")
	{
		systemRoutes.GET("/captcha", systemApi.CaptchaCreate)
	}
}
