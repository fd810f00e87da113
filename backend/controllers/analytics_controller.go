package controllers

import (
	"strconv"

	"examprep/backend/config"
	"examprep/backend/middleware"
	"examprep/backend/repositories"
	"examprep/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AnalyticsController struct {
	DB        *gorm.DB
	Cfg       *config.Config
	Analytics *repositories.AnalyticsRepository
}

func NewAnalyticsController(db *gorm.DB, cfg *config.Config) *AnalyticsController {
	return &AnalyticsController{DB: db, Cfg: cfg, Analytics: repositories.NewAnalyticsRepository(db)}
}

func examIDParam(c *fiber.Ctx) (uint, bool) {
	examID, err := strconv.Atoi(c.Query("exam_id"))
	if err != nil || examID <= 0 {
		return 0, false
	}
	return uint(examID), true
}

// GetSubjectAnalytics возвращает накопленную статистику пользователя по предметам
func (ac *AnalyticsController) GetSubjectAnalytics(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	examID, ok := examIDParam(c)
	if !ok {
		return utils.BadRequest(c, "exam_id query parameter is required")
	}

	rows, err := ac.Analytics.SubjectRows(user.UserID, examID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, rows)
}

// GetChapterAnalytics возвращает накопленную статистику пользователя по главам
func (ac *AnalyticsController) GetChapterAnalytics(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	examID, ok := examIDParam(c)
	if !ok {
		return utils.BadRequest(c, "exam_id query parameter is required")
	}

	rows, err := ac.Analytics.ChapterRows(user.UserID, examID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, rows)
}

// GetQuestionTypeAnalytics возвращает статистику по типам вопросов
func (ac *AnalyticsController) GetQuestionTypeAnalytics(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	examID, ok := examIDParam(c)
	if !ok {
		return utils.BadRequest(c, "exam_id query parameter is required")
	}

	rows, err := ac.Analytics.QuestionTypeRows(user.UserID, examID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, rows)
}
