package app

import (
	"quiz_platform_backend/docs"
	"quiz_platform_backend/internal/middleware"
	"quiz_platform_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 需要登录的通用接口
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(s.auth))
	{
		authGroup.POST("/logout", c.auth.Logout)
		authGroup.GET("/profile", c.auth.GetProfile)

		// 学生端
		user := authGroup.Group("/user")
		{
			user.GET("/dashboard", c.dashboard.UserDashboard)
			user.POST("/avatar", c.user.UploadAvatar)
			user.GET("/quizzes", c.attempt.ListQuizzes)
			user.GET("/quizzes/:id/take", c.attempt.TakeQuiz)
			user.POST("/quizzes/:id/submit", c.attempt.SubmitQuiz)
			user.GET("/results/:id", c.attempt.GetResult)
			user.GET("/history", c.attempt.GetHistory)
		}

		// 管理端
		admin := authGroup.Group("/admin")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.GET("/dashboard", c.dashboard.AdminDashboard)
			admin.GET("/analytics", c.analytics.GetOverview)

			admin.GET("/users", c.user.ListUsers)
			admin.GET("/users/:id", c.user.GetUser)
			admin.DELETE("/users/:id", c.user.DeleteUser)

			admin.GET("/subjects", c.subject.ListSubjects)
			admin.POST("/subjects", c.subject.CreateSubject)
			admin.PUT("/subjects/:id", c.subject.UpdateSubject)
			admin.DELETE("/subjects/:id", c.subject.DeleteSubject)

			admin.GET("/chapters", c.chapter.ListChapters)
			admin.POST("/chapters", c.chapter.CreateChapter)
			admin.PUT("/chapters/:id", c.chapter.UpdateChapter)
			admin.DELETE("/chapters/:id", c.chapter.DeleteChapter)

			admin.GET("/quizzes", c.quiz.ListQuizzes)
			admin.POST("/quizzes", c.quiz.CreateQuiz)
			admin.PUT("/quizzes/:id", c.quiz.UpdateQuiz)
			admin.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)

			admin.GET("/quizzes/:id/questions", c.question.ListQuestions)
			admin.POST("/quizzes/:id/questions", c.question.CreateQuestion)
			admin.PUT("/questions/:id", c.question.UpdateQuestion)
			admin.DELETE("/questions/:id", c.question.DeleteQuestion)
		}
	}
}
