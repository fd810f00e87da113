package routes

import (
	"examprep/backend/config"
	"examprep/backend/controllers"
	"examprep/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	authMiddleware := middleware.AuthMiddleware(db, cfg)

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/register", authController.Register)
	app.Post("/login", authController.Login)
	app.Get("/users/me", authMiddleware, authController.Me)

	// Mock paper delivery
	testsController := controllers.NewTestsController(db, cfg)
	app.Get("/getTest", testsController.GetMockTest)

	// Catalog routes
	catalogController := controllers.NewCatalogController(db, cfg)
	catalog := app.Group("/api/catalog", authMiddleware)
	catalog.Get("/exams", catalogController.GetExams)
	catalog.Get("/subjects", catalogController.GetSubjects)
	catalog.Get("/subjects/:id/chapters", catalogController.GetChapters)
	catalog.Get("/chapters/:id/subtopics", catalogController.GetSubtopics)
	catalog.Get("/questions", catalogController.GetQuestions)

	// Enrollment and starred questions
	userController := controllers.NewUserController(db, cfg)
	app.Post("/api/exams/:id/enroll", authMiddleware, userController.Enroll)
	app.Get("/api/users/enrollments", authMiddleware, userController.GetEnrollments)
	app.Post("/api/questions/:id/star", authMiddleware, userController.StarQuestion)
	app.Delete("/api/questions/:id/star", authMiddleware, userController.UnstarQuestion)
	app.Get("/api/users/starred", authMiddleware, userController.GetStarredQuestions)

	// Test attempt lifecycle
	tests := app.Group("/api/tests", authMiddleware)
	tests.Post("/", testsController.StartTest)
	tests.Get("/", testsController.GetUserTests)
	tests.Get("/:id", testsController.GetTestResult)
	tests.Put("/:id/answers/:questionId", testsController.SaveAnswer)
	tests.Post("/:id/pause", testsController.PauseTest)
	tests.Post("/:id/resume", testsController.ResumeTest)
	tests.Post("/:id/submit", testsController.SubmitTest)

	// Analytics routes
	analyticsController := controllers.NewAnalyticsController(db, cfg)
	analytics := app.Group("/api/analytics", authMiddleware)
	analytics.Get("/subjects", analyticsController.GetSubjectAnalytics)
	analytics.Get("/chapters", analyticsController.GetChapterAnalytics)
	analytics.Get("/question-types", analyticsController.GetQuestionTypeAnalytics)
}
