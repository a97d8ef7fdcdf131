package server

import (
	"github.com/courseforge/courseforge/internal/handlers"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	AuthHandler       *handlers.AuthHandler
	CourseHandler     *handlers.CourseHandler
	CurriculumHandler *handlers.CurriculumHandler
	PageHandler       *handlers.PageHandler
	VersionHandler    *handlers.VersionHandler
	ViewerHandler     *handlers.ViewerHandler
	CommentHandler    *handlers.CommentHandler
	ExportHandler     *handlers.ExportHandler
	ExternalHandler   *handlers.ExternalHandler
	AllowOrigins      []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-API-Key"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")

	// auth
	api.POST("/auth/login", cfg.AuthHandler.Login)
	api.POST("/auth/logout", cfg.AuthHandler.Logout)

	// authoring surface, admin session required
	admin := api.Group("/")
	admin.Use(cfg.AuthHandler.RequireAdmin())
	{
		admin.GET("/auth/me", cfg.AuthHandler.Me)

		admin.GET("/courses", cfg.CourseHandler.List)
		admin.POST("/courses", cfg.CourseHandler.Create)
		admin.GET("/courses/:courseId", cfg.CourseHandler.Get)
		admin.PUT("/courses/:courseId", cfg.CourseHandler.Update)
		admin.DELETE("/courses/:courseId", cfg.CourseHandler.Delete)
		admin.POST("/courses/:courseId/publish", cfg.CourseHandler.Publish)

		admin.POST("/courses/:courseId/curriculums", cfg.CurriculumHandler.Create)
		admin.PUT("/courses/:courseId/curriculums/reorder", cfg.CurriculumHandler.Reorder)
		admin.GET("/courses/:courseId/curriculums/:curriculumId", cfg.CurriculumHandler.Get)
		admin.PUT("/courses/:courseId/curriculums/:curriculumId", cfg.CurriculumHandler.Update)
		admin.DELETE("/courses/:courseId/curriculums/:curriculumId", cfg.CurriculumHandler.Delete)
		admin.POST("/courses/:courseId/curriculums/:curriculumId/duplicate", cfg.CurriculumHandler.Duplicate)

		admin.POST("/courses/:courseId/curriculums/:curriculumId/pages", cfg.PageHandler.Create)
		admin.PUT("/courses/:courseId/curriculums/:curriculumId/pages/reorder", cfg.PageHandler.Reorder)
		admin.GET("/courses/:courseId/curriculums/:curriculumId/pages/:pageId", cfg.PageHandler.Get)
		admin.PUT("/courses/:courseId/curriculums/:curriculumId/pages/:pageId", cfg.PageHandler.Update)
		admin.DELETE("/courses/:courseId/curriculums/:curriculumId/pages/:pageId", cfg.PageHandler.Delete)
		admin.PUT("/courses/:courseId/curriculums/:curriculumId/pages/:pageId/move", cfg.PageHandler.Move)
		admin.POST("/courses/:courseId/curriculums/:curriculumId/pages/:pageId/duplicate", cfg.PageHandler.Duplicate)

		admin.GET("/courses/:courseId/curriculums/:curriculumId/pages/:pageId/versions", cfg.VersionHandler.List)
		admin.POST("/courses/:courseId/curriculums/:curriculumId/pages/:pageId/versions", cfg.VersionHandler.Save)
		admin.GET("/courses/:courseId/curriculums/:curriculumId/pages/:pageId/versions/:versionId", cfg.VersionHandler.Get)
		// POST on a version id restores it
		admin.POST("/courses/:courseId/curriculums/:curriculumId/pages/:pageId/versions/:versionId", cfg.VersionHandler.Restore)
		admin.DELETE("/courses/:courseId/curriculums/:curriculumId/pages/:pageId/versions/:versionId", cfg.VersionHandler.Delete)

		admin.GET("/comments", cfg.CommentHandler.List)
		admin.POST("/comments", cfg.CommentHandler.Create)
		admin.PATCH("/comments/:commentId", cfg.CommentHandler.Update)
		admin.DELETE("/comments/:commentId", cfg.CommentHandler.Delete)

		admin.GET("/export", cfg.ExportHandler.Get)
	}

	// viewer surface, anonymous cookie session
	api.GET("/viewer/courses", cfg.CourseHandler.ViewerList)
	api.GET("/viewer/courses/:courseId", cfg.CourseHandler.ViewerGet)
	api.GET("/courses/:courseId/progress", cfg.ViewerHandler.GetProgress)
	api.POST("/courses/:courseId/progress", cfg.ViewerHandler.CompletePage)
	api.GET("/pages/:pageId/like", cfg.ViewerHandler.GetLike)
	api.POST("/pages/:pageId/like", cfg.ViewerHandler.Like)
	api.DELETE("/pages/:pageId/like", cfg.ViewerHandler.Unlike)
	api.GET("/viewer/comments", cfg.CommentHandler.ViewerList)
	api.POST("/viewer/comments", cfg.CommentHandler.ViewerCreate)

	// external integration surface, API key required
	external := api.Group("/external")
	external.Use(cfg.ExternalHandler.RequireKey())
	{
		external.GET("/courses", cfg.ExternalHandler.ListCourses)
		external.GET("/courses/:courseId", cfg.ExternalHandler.GetCourse)
		external.GET("/pages/:pageId", cfg.ExternalHandler.GetPage)
	}

	return router
}
