package main

import (
	"log"

	"examprep/backend/config"
	"examprep/backend/middleware"
	"examprep/backend/models"
	"examprep/backend/routes"
	"examprep/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.UserEnrollment{},
		&models.UserStarredQuestion{},
		&models.Exam{},
		&models.Subject{},
		&models.Chapter{},
		&models.Subtopic{},
		&models.Question{},
		&models.QuestionOption{},
		&models.QuestionExamApplicability{},
		&models.Test{},
		&models.TestAnswer{},
		&models.TestAnswerSelection{},
		&models.UserSubjectAnalytics{},
		&models.UserChapterAnalytics{},
		&models.UserQuestionTypeAnalytics{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, db, cfg)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
