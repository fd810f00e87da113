package models

import "time"

// Analytics aggregates are running per-user rollups updated incrementally
// as tests complete. Counters are only ever incremented, never overwritten,
// so concurrent test completions stay additive.

type UserSubjectAnalytics struct {
	UserID                string    `json:"user_id" gorm:"primaryKey"`
	ExamID                uint      `json:"exam_id" gorm:"primaryKey"`
	SubjectID             uint      `json:"subject_id" gorm:"primaryKey"`
	QuestionsAttempted    int       `json:"questions_attempted" gorm:"default:0"`
	CorrectAnswers        int       `json:"correct_answers" gorm:"default:0"`
	TotalTimeTakenSeconds int64     `json:"total_time_taken_seconds" gorm:"default:0"`
	LastUpdatedAt         time.Time `json:"last_updated_at"`
}

func (UserSubjectAnalytics) TableName() string { return "user_subject_analytics" }

type UserChapterAnalytics struct {
	UserID                string    `json:"user_id" gorm:"primaryKey"`
	ExamID                uint      `json:"exam_id" gorm:"primaryKey"`
	ChapterID             uint      `json:"chapter_id" gorm:"primaryKey"`
	QuestionsAttempted    int       `json:"questions_attempted" gorm:"default:0"`
	CorrectAnswers        int       `json:"correct_answers" gorm:"default:0"`
	TotalTimeTakenSeconds int64     `json:"total_time_taken_seconds" gorm:"default:0"`
	LastUpdatedAt         time.Time `json:"last_updated_at"`
}

func (UserChapterAnalytics) TableName() string { return "user_chapter_analytics" }

type UserQuestionTypeAnalytics struct {
	UserID             string    `json:"user_id" gorm:"primaryKey"`
	ExamID             uint      `json:"exam_id" gorm:"primaryKey"`
	QuestionType       string    `json:"question_type" gorm:"primaryKey"`
	QuestionsAttempted int       `json:"questions_attempted" gorm:"default:0"`
	CorrectAnswers     int       `json:"correct_answers" gorm:"default:0"`
	LastUpdatedAt      time.Time `json:"last_updated_at"`
}

func (UserQuestionTypeAnalytics) TableName() string { return "user_question_type_analytics" }
