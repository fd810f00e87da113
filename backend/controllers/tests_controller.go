package controllers

import (
	"fmt"
	"strconv"
	"time"

	"examprep/backend/config"
	"examprep/backend/middleware"
	"examprep/backend/models"
	"examprep/backend/repositories"
	"examprep/backend/scoring"
	"examprep/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	mockSectionSize      = 5
	secondsPerQuestion   = 60
	defaultQuestionCount = 10
	maxQuestionCount     = 50
)

type TestsController struct {
	DB        *gorm.DB
	Cfg       *config.Config
	Questions *repositories.QuestionRepository
	Tests     *repositories.TestRepository
	Analytics *repositories.AnalyticsRepository
}

func NewTestsController(db *gorm.DB, cfg *config.Config) *TestsController {
	return &TestsController{
		DB:        db,
		Cfg:       cfg,
		Questions: repositories.NewQuestionRepository(db),
		Tests:     repositories.NewTestRepository(db),
		Analytics: repositories.NewAnalyticsRepository(db),
	}
}

// GetMockTest composes a mock paper: one section per question type, drawn
// randomly from validated questions applicable to the exam. Marking scheme
// comes from the questions themselves. Options never reveal correctness.
func (tc *TestsController) GetMockTest(c *fiber.Ctx) error {
	var exam *models.Exam
	if raw := c.Query("exam_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return utils.BadRequest(c, "Invalid exam_id")
		}
		found, err := tc.Questions.FindExam(uint(id))
		if err != nil {
			if err == repositories.ErrNotFound {
				return utils.NotFound(c, "Exam not found")
			}
			return utils.InternalServerError(c, "Could not query database")
		}
		exam = found
	} else {
		exams, err := tc.Questions.Exams()
		if err != nil {
			return utils.InternalServerError(c, "Could not query database")
		}
		if len(exams) == 0 {
			return utils.NotFound(c, "No exams configured")
		}
		exam = &exams[0]
	}

	sectionTypes := []models.QuestionType{
		models.QuestionTypeMCSC,
		models.QuestionTypeMCMC,
		models.QuestionTypeINT,
		models.QuestionTypeNUM,
	}

	var sections []fiber.Map
	totalQuestions := 0
	for i, questionType := range sectionTypes {
		qt := questionType
		questions, err := tc.Questions.Pick(repositories.PickFilter{
			ExamID:       exam.ExamID,
			QuestionType: &qt,
			Limit:        mockSectionSize,
		})
		if err != nil {
			return utils.InternalServerError(c, "Could not query database")
		}
		if len(questions) == 0 {
			continue
		}

		sections = append(sections, fiber.Map{
			"sectionId":     fmt.Sprintf("sec_%d", i+1),
			"sectionName":   fmt.Sprintf("Section %d (%s)", i+1, questionType),
			"type":          questionType,
			"positiveMarks": questions[0].PositiveMarks,
			"negativeMarks": -questions[0].NegativeMarks,
			"questions":     deliveryQuestions(questions),
		})
		totalQuestions += len(questions)
	}

	return c.JSON(fiber.Map{
		"sessionId":         "session_" + uuid.NewString(),
		"testId":            "mock_" + uuid.NewString(),
		"testName":          exam.ExamName + " Mock Test",
		"durationInSeconds": totalQuestions * secondsPerQuestion,
		"sections":          sections,
	})
}

// deliveryQuestions shapes questions for the client during an attempt:
// no correctness flags, no accepted answers, no solutions.
func deliveryQuestions(questions []models.Question) []fiber.Map {
	shaped := make([]fiber.Map, 0, len(questions))
	for _, q := range questions {
		options := make([]fiber.Map, 0, len(q.Options))
		for _, opt := range q.Options {
			options = append(options, fiber.Map{
				"optionId":       opt.OptionID,
				"optionText":     opt.OptionText,
				"optionImageUrl": opt.ImageURL,
			})
		}
		shaped = append(shaped, fiber.Map{
			"questionId":       q.QuestionID,
			"questionText":     q.QuestionText,
			"questionImageUrl": q.ImageURL,
			"questionType":     q.QuestionType,
			"options":          options,
		})
	}
	return shaped
}

// StartTest creates an attempt: picks questions per the test type's scope
// and persists the Test with one UNATTEMPTED answer per question.
func (tc *TestsController) StartTest(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input struct {
		ExamID        uint            `json:"exam_id"`
		TestType      models.TestType `json:"test_type"`
		TestName      string          `json:"test_name"`
		ChapterID     *uint           `json:"chapter_id"`
		SubjectID     *uint           `json:"subject_id"`
		QuestionCount int             `json:"question_count"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	exam, err := tc.Questions.FindExam(input.ExamID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return utils.NotFound(c, "Exam not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	filter := repositories.PickFilter{ExamID: exam.ExamID}
	switch input.TestType {
	case models.TestTypeChapter:
		if input.ChapterID == nil {
			return utils.BadRequest(c, "chapter_id is required for a chapter test")
		}
		filter.ChapterID = input.ChapterID
	case models.TestTypeSubject:
		if input.SubjectID == nil {
			return utils.BadRequest(c, "subject_id is required for a subject test")
		}
		filter.SubjectID = input.SubjectID
	case models.TestTypeFullMock, models.TestTypeCustom:
		// exam-wide pool
	case "":
		input.TestType = models.TestTypeCustom
	default:
		return utils.BadRequest(c, "Unknown test type")
	}

	filter.Limit = input.QuestionCount
	if filter.Limit <= 0 {
		filter.Limit = defaultQuestionCount
	}
	if filter.Limit > maxQuestionCount {
		filter.Limit = maxQuestionCount
	}

	questions, err := tc.Questions.Pick(filter)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	if len(questions) == 0 {
		return utils.NotFound(c, "No questions available for this selection")
	}

	if input.TestName == "" {
		input.TestName = fmt.Sprintf("%s %s", exam.ExamName, input.TestType)
	}

	now := time.Now()
	test := models.Test{
		TestID:    uuid.NewString(),
		UserID:    user.UserID,
		ExamID:    exam.ExamID,
		ChapterID: input.ChapterID,
		SubjectID: input.SubjectID,
		TestName:  input.TestName,
		TestType:  input.TestType,
		Status:    models.TestStatusInProgress,
		StartTime: &now,
	}
	for i, q := range questions {
		test.Answers = append(test.Answers, models.TestAnswer{
			AnswerID:      uuid.NewString(),
			QuestionID:    q.QuestionID,
			Status:        models.AnswerUnattempted,
			SequenceOrder: i + 1,
		})
	}

	if err := tc.Tests.Create(&test); err != nil {
		return utils.InternalServerError(c, "Could not create test")
	}

	return utils.Created(c, fiber.Map{
		"test_id":    test.TestID,
		"test_name":  test.TestName,
		"test_type":  test.TestType,
		"status":     test.Status,
		"start_time": test.StartTime,
		"questions":  deliveryQuestions(questions),
	})
}

// SaveAnswer records a response during an in-progress attempt. Selected
// options are replaced wholesale, not merged.
func (tc *TestsController) SaveAnswer(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	test, err := tc.Tests.FindForUser(c.Params("id"), user.UserID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return utils.NotFound(c, "Test not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	if test.Status != models.TestStatusInProgress {
		return utils.BadRequest(c, "Test is not in progress")
	}

	var answer *models.TestAnswer
	for i := range test.Answers {
		if test.Answers[i].QuestionID == c.Params("questionId") {
			answer = &test.Answers[i]
			break
		}
	}
	if answer == nil {
		return utils.NotFound(c, "Question is not part of this test")
	}

	var input struct {
		SelectedOptionIDs []string `json:"selected_option_ids"`
		IntegerAnswer     *int     `json:"integer_answer"`
		NumericAnswer     *float64 `json:"numeric_answer"`
		TimeTakenSeconds  int      `json:"time_taken_seconds"`
		MarkedForReview   bool     `json:"marked_for_review"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	answer.IntegerAnswer = input.IntegerAnswer
	answer.NumericAnswer = input.NumericAnswer
	if input.TimeTakenSeconds > 0 {
		answer.TimeTakenSeconds = input.TimeTakenSeconds
	}
	// Statuses are provisional until submission; scoring overwrites them.
	if input.MarkedForReview {
		answer.Status = models.AnswerMarkedForReview
	} else {
		answer.Status = models.AnswerUnattempted
	}

	if err := tc.Tests.SaveAnswer(answer, input.SelectedOptionIDs); err != nil {
		return utils.InternalServerError(c, "Could not save answer")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"answer_id": answer.AnswerID,
		"status":    answer.Status,
	})
}

func (tc *TestsController) PauseTest(c *fiber.Ctx) error {
	return tc.transition(c, models.TestStatusInProgress, models.TestStatusPaused)
}

func (tc *TestsController) ResumeTest(c *fiber.Ctx) error {
	return tc.transition(c, models.TestStatusPaused, models.TestStatusInProgress)
}

func (tc *TestsController) transition(c *fiber.Ctx, from, to models.TestStatus) error {
	user := middleware.CurrentUser(c)

	test, err := tc.Tests.FindForUser(c.Params("id"), user.UserID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return utils.NotFound(c, "Test not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	if test.Status != from {
		return utils.BadRequest(c, fmt.Sprintf("Test is not %s", from))
	}

	if err := tc.Tests.UpdateStatus(test, to); err != nil {
		return utils.InternalServerError(c, "Could not update test")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"test_id": test.TestID,
		"status":  test.Status,
	})
}

// SubmitTest finalizes an attempt: grades every answer, computes the final
// score, and folds the results into the per-user analytics aggregates.
// Everything commits in one transaction.
func (tc *TestsController) SubmitTest(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	test, err := tc.Tests.FindForUser(c.Params("id"), user.UserID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return utils.NotFound(c, "Test not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	if test.Status == models.TestStatusCompleted {
		return utils.BadRequest(c, "Test already submitted")
	}

	questionIDs := make([]string, 0, len(test.Answers))
	for _, answer := range test.Answers {
		questionIDs = append(questionIDs, answer.QuestionID)
	}

	questions, err := tc.Questions.FindByIDs(questionIDs)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	questionByID := make(map[string]*models.Question, len(questions))
	for i := range questions {
		questionByID[questions[i].QuestionID] = &questions[i]
	}

	taxonomy, err := tc.Questions.TaxonomyFor(questionIDs)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	subjectDeltas := make(map[uint]*repositories.ResultDelta)
	chapterDeltas := make(map[uint]*repositories.ResultDelta)
	typeDeltas := make(map[models.QuestionType]*repositories.ResultDelta)

	var outcomes []scoring.Outcome
	counts := map[models.TestAnswerStatus]int{}
	for i := range test.Answers {
		answer := &test.Answers[i]
		question, ok := questionByID[answer.QuestionID]
		if !ok {
			continue
		}

		outcome := scoring.Evaluate(question, answer)
		answer.Status = outcome.Status
		outcomes = append(outcomes, outcome)
		counts[outcome.Status]++

		tax, ok := taxonomy[answer.QuestionID]
		if !ok {
			continue
		}
		subject := deltaFor(subjectDeltas, tax.SubjectID)
		chapter := deltaFor(chapterDeltas, tax.ChapterID)
		qtype := deltaFor(typeDeltas, question.QuestionType)

		subject.TimeSeconds += int64(answer.TimeTakenSeconds)
		chapter.TimeSeconds += int64(answer.TimeTakenSeconds)
		if outcome.Status == models.AnswerCorrect || outcome.Status == models.AnswerIncorrect {
			subject.Attempted++
			chapter.Attempted++
			qtype.Attempted++
		}
		if outcome.Status == models.AnswerCorrect {
			subject.Correct++
			chapter.Correct++
			qtype.Correct++
		}
	}

	finalScore := scoring.Total(outcomes)
	now := time.Now()

	err = tc.DB.Transaction(func(tx *gorm.DB) error {
		for i := range test.Answers {
			answer := &test.Answers[i]
			if err := tx.Model(&models.TestAnswer{}).
				Where("answer_id = ?", answer.AnswerID).
				Update("status", answer.Status).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Test{}).
			Where("test_id = ?", test.TestID).
			Updates(map[string]interface{}{
				"status":      models.TestStatusCompleted,
				"end_time":    now,
				"final_score": finalScore,
			}).Error; err != nil {
			return err
		}

		analytics := repositories.NewAnalyticsRepository(tx)
		for subjectID, delta := range subjectDeltas {
			if err := analytics.AddSubjectResult(user.UserID, test.ExamID, subjectID, *delta); err != nil {
				return err
			}
		}
		for chapterID, delta := range chapterDeltas {
			if err := analytics.AddChapterResult(user.UserID, test.ExamID, chapterID, *delta); err != nil {
				return err
			}
		}
		for questionType, delta := range typeDeltas {
			if err := analytics.AddQuestionTypeResult(user.UserID, test.ExamID, questionType, *delta); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not submit test")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"test_id":     test.TestID,
		"status":      models.TestStatusCompleted,
		"final_score": finalScore,
		"correct":     counts[models.AnswerCorrect],
		"incorrect":   counts[models.AnswerIncorrect],
		"unattempted": counts[models.AnswerUnattempted],
	})
}

func deltaFor[K comparable](deltas map[K]*repositories.ResultDelta, key K) *repositories.ResultDelta {
	if delta, ok := deltas[key]; ok {
		return delta
	}
	delta := &repositories.ResultDelta{}
	deltas[key] = delta
	return delta
}

// GetTestResult returns the attempt with per-answer detail. Correct options
// and solutions are only included once the attempt is completed.
func (tc *TestsController) GetTestResult(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	test, err := tc.Tests.FindForUser(c.Params("id"), user.UserID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return utils.NotFound(c, "Test not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	questionIDs := make([]string, 0, len(test.Answers))
	for _, answer := range test.Answers {
		questionIDs = append(questionIDs, answer.QuestionID)
	}
	questions, err := tc.Questions.FindByIDs(questionIDs)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	questionByID := make(map[string]*models.Question, len(questions))
	for i := range questions {
		questionByID[questions[i].QuestionID] = &questions[i]
	}

	completed := test.Status == models.TestStatusCompleted

	answers := make([]fiber.Map, 0, len(test.Answers))
	for _, answer := range test.Answers {
		selected := make([]string, 0, len(answer.Selections))
		for _, selection := range answer.Selections {
			selected = append(selected, selection.SelectedOptionID)
		}

		entry := fiber.Map{
			"answer_id":          answer.AnswerID,
			"question_id":        answer.QuestionID,
			"status":             answer.Status,
			"time_taken_seconds": answer.TimeTakenSeconds,
			"selected_options":   selected,
			"integer_answer":     answer.IntegerAnswer,
			"numeric_answer":     answer.NumericAnswer,
		}

		if question, ok := questionByID[answer.QuestionID]; ok {
			entry["question_text"] = question.QuestionText
			if completed {
				var correctOptions []string
				for _, option := range question.Options {
					if option.IsCorrect {
						correctOptions = append(correctOptions, option.OptionID)
					}
				}
				entry["correct_options"] = correctOptions
				entry["solution_explanation"] = question.SolutionExplanation
			}
		}
		answers = append(answers, entry)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"test_id":     test.TestID,
		"test_name":   test.TestName,
		"test_type":   test.TestType,
		"status":      test.Status,
		"start_time":  test.StartTime,
		"end_time":    test.EndTime,
		"final_score": test.FinalScore,
		"answers":     answers,
	})
}

func (tc *TestsController) GetUserTests(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	tests, err := tc.Tests.ListForUser(user.UserID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, tests)
}
