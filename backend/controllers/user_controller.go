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

type UserController struct {
	DB        *gorm.DB
	Cfg       *config.Config
	Users     *repositories.UserRepository
	Questions *repositories.QuestionRepository
}

func NewUserController(db *gorm.DB, cfg *config.Config) *UserController {
	return &UserController{
		DB:        db,
		Cfg:       cfg,
		Users:     repositories.NewUserRepository(db),
		Questions: repositories.NewQuestionRepository(db),
	}
}

// Enroll registers the user into an exam's question pool.
func (uc *UserController) Enroll(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	examID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid exam ID")
	}

	if _, err := uc.Questions.FindExam(uint(examID)); err != nil {
		if err == repositories.ErrNotFound {
			return utils.NotFound(c, "Exam not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := uc.Users.Enroll(user.UserID, uint(examID)); err != nil {
		return utils.InternalServerError(c, "Could not create enrollment")
	}

	return utils.Created(c, fiber.Map{
		"user_id": user.UserID,
		"exam_id": examID,
	})
}

func (uc *UserController) GetEnrollments(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	exams, err := uc.Users.Enrollments(user.UserID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, exams)
}

func (uc *UserController) StarQuestion(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	questionID := c.Params("id")

	questions, err := uc.Questions.FindByIDs([]string{questionID})
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	if len(questions) == 0 {
		return utils.NotFound(c, "Question not found")
	}

	if err := uc.Users.StarQuestion(user.UserID, questionID); err != nil {
		return utils.InternalServerError(c, "Could not star question")
	}

	return utils.Created(c, fiber.Map{"question_id": questionID})
}

func (uc *UserController) UnstarQuestion(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	if err := uc.Users.UnstarQuestion(user.UserID, c.Params("id")); err != nil {
		return utils.InternalServerError(c, "Could not unstar question")
	}

	return utils.NoContent(c)
}

func (uc *UserController) GetStarredQuestions(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	questions, err := uc.Users.StarredQuestions(user.UserID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, questions)
}
