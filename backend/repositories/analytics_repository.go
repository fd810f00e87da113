package repositories

import (
	"time"

	"examprep/backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnalyticsRepository struct {
	DB *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

// ResultDelta is the contribution of one completed test to an aggregate row.
type ResultDelta struct {
	Attempted   int
	Correct     int
	TimeSeconds int64
}

// The upserts below increment rather than overwrite, so concurrent
// completions of different tests for the same user stay additive.

func (r *AnalyticsRepository) AddSubjectResult(userID string, examID, subjectID uint, delta ResultDelta) error {
	row := models.UserSubjectAnalytics{
		UserID:                userID,
		ExamID:                examID,
		SubjectID:             subjectID,
		QuestionsAttempted:    delta.Attempted,
		CorrectAnswers:        delta.Correct,
		TotalTimeTakenSeconds: delta.TimeSeconds,
		LastUpdatedAt:         time.Now(),
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "exam_id"}, {Name: "subject_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"questions_attempted":      gorm.Expr("questions_attempted + ?", delta.Attempted),
			"correct_answers":          gorm.Expr("correct_answers + ?", delta.Correct),
			"total_time_taken_seconds": gorm.Expr("total_time_taken_seconds + ?", delta.TimeSeconds),
			"last_updated_at":          time.Now(),
		}),
	}).Create(&row).Error
}

func (r *AnalyticsRepository) AddChapterResult(userID string, examID, chapterID uint, delta ResultDelta) error {
	row := models.UserChapterAnalytics{
		UserID:                userID,
		ExamID:                examID,
		ChapterID:             chapterID,
		QuestionsAttempted:    delta.Attempted,
		CorrectAnswers:        delta.Correct,
		TotalTimeTakenSeconds: delta.TimeSeconds,
		LastUpdatedAt:         time.Now(),
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "exam_id"}, {Name: "chapter_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"questions_attempted":      gorm.Expr("questions_attempted + ?", delta.Attempted),
			"correct_answers":          gorm.Expr("correct_answers + ?", delta.Correct),
			"total_time_taken_seconds": gorm.Expr("total_time_taken_seconds + ?", delta.TimeSeconds),
			"last_updated_at":          time.Now(),
		}),
	}).Create(&row).Error
}

func (r *AnalyticsRepository) AddQuestionTypeResult(userID string, examID uint, questionType models.QuestionType, delta ResultDelta) error {
	row := models.UserQuestionTypeAnalytics{
		UserID:             userID,
		ExamID:             examID,
		QuestionType:       string(questionType),
		QuestionsAttempted: delta.Attempted,
		CorrectAnswers:     delta.Correct,
		LastUpdatedAt:      time.Now(),
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "exam_id"}, {Name: "question_type"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"questions_attempted": gorm.Expr("questions_attempted + ?", delta.Attempted),
			"correct_answers":     gorm.Expr("correct_answers + ?", delta.Correct),
			"last_updated_at":     time.Now(),
		}),
	}).Create(&row).Error
}

func (r *AnalyticsRepository) SubjectRows(userID string, examID uint) ([]models.UserSubjectAnalytics, error) {
	var rows []models.UserSubjectAnalytics
	err := r.DB.Where("user_id = ? AND exam_id = ?", userID, examID).
		Order("subject_id").Find(&rows).Error
	return rows, err
}

func (r *AnalyticsRepository) ChapterRows(userID string, examID uint) ([]models.UserChapterAnalytics, error) {
	var rows []models.UserChapterAnalytics
	err := r.DB.Where("user_id = ? AND exam_id = ?", userID, examID).
		Order("chapter_id").Find(&rows).Error
	return rows, err
}

func (r *AnalyticsRepository) QuestionTypeRows(userID string, examID uint) ([]models.UserQuestionTypeAnalytics, error) {
	var rows []models.UserQuestionTypeAnalytics
	err := r.DB.Where("user_id = ? AND exam_id = ?", userID, examID).
		Order("question_type").Find(&rows).Error
	return rows, err
}
