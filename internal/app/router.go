package app

import (
	"skillmaster_backend/docs"
	"skillmaster_backend/internal/config"
	"skillmaster_backend/internal/middleware"
	"skillmaster_backend/internal/model"
	"skillmaster_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)
	a.registerStudentRoutes(router, c, cfg)
	a.registerAdminRoutes(router, c, cfg)
}

// Public reads: health, auth and the whole catalog browsing surface.
func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		public.GET("/subjects", c.subject.ListSubjects)
		public.GET("/subjects/:id", c.subject.GetSubject)
		public.GET("/subjects/:id/modules", c.subject.ListSubjectModules)

		public.GET("/skills", c.skill.ListSkills)
		public.GET("/skills/:slug", c.skill.GetSkill)
		public.GET("/skills/:slug/modules", c.skill.ListSkillModules)

		public.GET("/modules", c.content.ListModules)
		public.GET("/modules/:id", c.content.GetModule)
		public.GET("/modules/:id/lessons", c.content.ListModuleLessons)

		public.GET("/lessons", c.content.ListLessons)
		public.GET("/lessons/:id", c.content.GetLesson)
		public.GET("/lessons/:id/activities", c.content.ListLessonActivities)
		public.GET("/lessons/:id/attachments", c.content.ListAttachments)

		public.GET("/activities", c.content.ListActivities)
		public.GET("/activities/:id", c.content.GetActivity)

		public.GET("/ai/quiz/lesson/:lessonId", c.quiz.GetQuizForLesson)
	}
}

// Authenticated flows: quiz submission and progress tracking.
func (a *App) registerStudentRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.POST("/ai/quiz/submit", c.quiz.SubmitQuiz)

		authGroup.GET("/progress/:userId", c.progress.GetUserProgress)
		authGroup.GET("/progress/:userId/lesson/:lessonId", c.progress.ListForLesson)
		authGroup.POST("/progress/complete", c.progress.MarkCompleted)
	}
}

// Admin writes: catalog mutation, quiz generation and seeding.
func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/subjects", c.subject.CreateSubject)
		admin.PUT("/subjects/:id", c.subject.UpdateSubject)
		admin.DELETE("/subjects/:id", c.subject.DeleteSubject)

		admin.POST("/skills", c.skill.CreateSkill)
		admin.PUT("/skills/:slug", c.skill.UpdateSkill)
		admin.DELETE("/skills/:slug", c.skill.DeleteSkill)

		admin.POST("/modules", c.content.CreateModule)
		admin.PUT("/modules/:id", c.content.UpdateModule)
		admin.DELETE("/modules/:id", c.content.DeleteModule)

		admin.POST("/lessons", c.content.CreateLesson)
		admin.PUT("/lessons/:id", c.content.UpdateLesson)
		admin.DELETE("/lessons/:id", c.content.DeleteLesson)
		admin.POST("/lessons/:id/attachments", c.content.UploadAttachment)

		admin.POST("/activities", c.content.CreateActivity)
		admin.PUT("/activities/:id", c.content.UpdateActivity)
		admin.DELETE("/activities/:id", c.content.DeleteActivity)

		admin.POST("/ai/quiz/generate", c.quiz.GenerateQuiz)
		admin.POST("/admin/seed", c.seed.RunSeed)
	}
}
