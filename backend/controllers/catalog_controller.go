package controllers

import (
	"strconv"

	"examprep/backend/config"
	"examprep/backend/models"
	"examprep/backend/repositories"
	"examprep/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CatalogController serves the reference-data hierarchy. Content authoring
// happens outside this service; everything here is read-only.
type CatalogController struct {
	DB        *gorm.DB
	Cfg       *config.Config
	Questions *repositories.QuestionRepository
}

func NewCatalogController(db *gorm.DB, cfg *config.Config) *CatalogController {
	return &CatalogController{DB: db, Cfg: cfg, Questions: repositories.NewQuestionRepository(db)}
}

func (cc *CatalogController) GetExams(c *fiber.Ctx) error {
	exams, err := cc.Questions.Exams()
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, exams)
}

func (cc *CatalogController) GetSubjects(c *fiber.Ctx) error {
	subjects, err := cc.Questions.Subjects()
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, subjects)
}

func (cc *CatalogController) GetChapters(c *fiber.Ctx) error {
	subjectID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid subject ID")
	}

	chapters, err := cc.Questions.ChaptersBySubject(uint(subjectID))
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, chapters)
}

func (cc *CatalogController) GetSubtopics(c *fiber.Ctx) error {
	chapterID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid chapter ID")
	}

	subtopics, err := cc.Questions.SubtopicsByChapter(uint(chapterID))
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, subtopics)
}

func (cc *CatalogController) GetQuestions(c *fiber.Ctx) error {
	var filter repositories.QuestionFilter

	if raw := c.Query("subtopic_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return utils.BadRequest(c, "Invalid subtopic_id")
		}
		subtopicID := uint(id)
		filter.SubtopicID = &subtopicID
	}
	if raw := c.Query("type"); raw != "" {
		questionType := models.QuestionType(raw)
		filter.QuestionType = &questionType
	}
	if raw := c.Query("difficulty"); raw != "" {
		difficulty := models.DifficultyLevel(raw)
		filter.DifficultyLevel = &difficulty
	}
	if raw := c.Query("validation_status"); raw != "" {
		status := models.AIValidationStatus(raw)
		filter.ValidationStatus = &status
	}

	questions, err := cc.Questions.List(filter)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, questions)
}
