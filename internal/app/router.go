package app

import (
	"studystack_backend/docs"
	"studystack_backend/internal/middleware"
	"studystack_backend/internal/model"
	"studystack_backend/internal/service"
	"studystack_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, s *services) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c, s.auth)
	a.registerAuthRoutes(router, c, repos, s.auth)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, auth *service.AuthService) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		// Browsing is open to everyone; a valid token only changes what
		// is visible (private resources, bookmark state).
		public.GET("/resources", c.resource.ListResources)
		public.GET("/resources/:id", middleware.TryAuthMiddleware(auth), c.resource.GetResource)

		public.POST("/contact", middleware.TryAuthMiddleware(auth), c.contact.SubmitContact)
	}
}

func (a *App) registerAuthRoutes(router *gin.Engine, c *controllers, repos *repositories, auth *service.AuthService) {
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(auth))
	{
		resources := authGroup.Group("/resources")
		{
			resources.POST("", middleware.RoleMiddleware(model.Contributor), c.resource.CreateResource)
			resources.PUT("/:id", middleware.OwnershipMiddleware(repos.resource), c.resource.UpdateResource)
			resources.DELETE("/:id", middleware.OwnershipMiddleware(repos.resource), c.resource.DeleteResource)
			resources.POST("/:id/bookmark", c.resource.ToggleBookmark)
			resources.POST("/:id/download", c.resource.TrackDownload)
			resources.GET("/my/resources", c.resource.MyResources)
		}

		users := authGroup.Group("/users")
		{
			users.GET("/profile", c.user.GetProfile)
			users.PUT("/profile", c.user.UpdateProfile)
			users.GET("/stats", c.user.GetStats)
			users.GET("/bookmarks", c.user.GetBookmarks)
			users.POST("/bookmarks/:id", c.user.ToggleBookmarkByID)
			users.DELETE("/bookmarks/:id", c.user.ToggleBookmarkByID)
			users.GET("/activities", c.user.GetActivities)
			users.GET("/analytics", middleware.RoleMiddleware(model.Contributor), c.user.GetAnalytics)
		}
	}
}
