package app

import (
	"healthlearn_backend/docs"
	"healthlearn_backend/internal/config"
	"healthlearn_backend/internal/middleware"
	"healthlearn_backend/internal/model"
	"healthlearn_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/api/health", c.health.HealthCheck)

	a.registerPublicRoutes(router, c, cfg)
	a.registerAccountRoutes(router, c, cfg)
	a.registerSellerRoutes(router, c, cfg)
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", c.auth.Register)
		auth.POST("/login", c.auth.Login)
		auth.POST("/request-password-reset", c.auth.RequestPasswordReset)
		auth.POST("/verify-otp", c.auth.VerifyOTP)
		auth.POST("/reset-password-final", c.auth.ResetPassword)
	}

	// Catalog and detail are open to guests; the gate decides per viewer
	// what the detail response contains.
	catalog := router.Group("/api")
	catalog.Use(middleware.TryAuthMiddleware(cfg))
	{
		catalog.GET("/courses", c.course.List)
		catalog.GET("/courses/:id", c.course.Detail)
		catalog.GET("/courses/:id/content", c.course.Content)
		catalog.GET("/courses/:id/reviews", c.rating.List)
	}
}

func (a *App) registerAccountRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))
	{
		api.GET("/auth/me", c.auth.Me)
		api.POST("/auth/complete-profile", c.auth.CompleteProfile)

		api.PUT("/users/me/name", c.user.UpdateName)
		api.PUT("/users/me/password", c.user.ChangePassword)
		api.POST("/users/me/avatar", c.user.UploadAvatar)

		api.POST("/courses/:id/favorite", c.course.ToggleFavorite)
		api.DELETE("/courses/:id/favorite", c.course.Unfavorite)

		api.POST("/courses/:id/reviews", c.rating.Rate)
		api.GET("/courses/:id/reviews/me", c.rating.MyRating)
		api.GET("/favorites", c.course.Favorites)

		api.POST("/courses/:id/enroll", c.order.Enroll)
		api.GET("/orders", c.order.List)
		api.POST("/orders/:id/confirm", c.order.Confirm)

		api.POST("/seller-requests", c.user.RequestSeller)
	}
}

func (a *App) registerSellerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	seller := router.Group("/api")
	seller.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Seller))
	{
		seller.GET("/courses/mine", c.course.MyCourses)

		sessions := seller.Group("/authoring/sessions")
		{
			sessions.POST("", c.authoring.StartSession)
			sessions.GET("/:id", c.authoring.GetSession)
			sessions.DELETE("/:id", c.authoring.Abandon)
			sessions.PATCH("/:id/draft", c.authoring.UpdateDraft)
			sessions.POST("/:id/next", c.authoring.Next)
			sessions.POST("/:id/back", c.authoring.Back)
			sessions.POST("/:id/goto/:step", c.authoring.GoToStep)
			sessions.GET("/:id/completion", c.authoring.Completion)
			sessions.POST("/:id/videos", c.authoring.AddVideo)
			sessions.DELETE("/:id/videos/:videoId", c.authoring.RemoveVideo)
			sessions.POST("/:id/videos/:videoId/file", c.authoring.UploadVideoFile)
			sessions.POST("/:id/presentation", c.authoring.UploadPresentation)
			sessions.DELETE("/:id/presentation", c.authoring.RemovePresentation)
			sessions.POST("/:id/bibliography", c.authoring.AddBibliography)
			sessions.DELETE("/:id/bibliography/:refId", c.authoring.RemoveBibliography)
			sessions.POST("/:id/submit", c.authoring.Submit)
		}
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/courses/review", c.admin.ReviewQueue)
		admin.POST("/courses/:id/review", c.admin.ReviewCourse)
		admin.GET("/seller-requests", c.admin.SellerRequests)
		admin.POST("/seller-requests/:id", c.admin.ResolveSellerRequest)
	}
}
