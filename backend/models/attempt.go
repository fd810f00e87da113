package models

import "time"

type TestType string

const (
	TestTypeChapter  TestType = "CHAPTER_TEST"
	TestTypeSubject  TestType = "SUBJECT_TEST"
	TestTypeFullMock TestType = "FULL_MOCK"
	TestTypeCustom   TestType = "CUSTOM"
)

type TestStatus string

const (
	TestStatusInProgress TestStatus = "IN_PROGRESS"
	TestStatusCompleted  TestStatus = "COMPLETED"
	TestStatusPaused     TestStatus = "PAUSED"
)

type TestAnswerStatus string

const (
	AnswerCorrect         TestAnswerStatus = "CORRECT"
	AnswerIncorrect       TestAnswerStatus = "INCORRECT"
	AnswerUnattempted     TestAnswerStatus = "UNATTEMPTED"
	AnswerMarkedForReview TestAnswerStatus = "MARKED_FOR_REVIEW"
)

// Test is one user's attempt. Created at test start, mutated during the
// attempt, finalized at submission; never physically deleted.
type Test struct {
	TestID     string       `json:"test_id" gorm:"primaryKey"`
	UserID     string       `json:"user_id" gorm:"not null;index"`
	ExamID     uint         `json:"exam_id" gorm:"not null"`
	ChapterID  *uint        `json:"chapter_id"`
	SubjectID  *uint        `json:"subject_id"`
	TestName   string       `json:"test_name"`
	TestType   TestType     `json:"test_type"`
	Status     TestStatus   `json:"status"`
	StartTime  *time.Time   `json:"start_time"`
	EndTime    *time.Time   `json:"end_time"`
	FinalScore *float64     `json:"final_score"`
	CreatedAt  time.Time    `json:"created_at"`
	Answers    []TestAnswer `json:"answers,omitempty" gorm:"foreignKey:TestID"`
}

type TestAnswer struct {
	AnswerID         string                `json:"answer_id" gorm:"primaryKey"`
	TestID           string                `json:"test_id" gorm:"not null;index"`
	QuestionID       string                `json:"question_id" gorm:"not null"`
	IntegerAnswer    *int                  `json:"integer_answer"`
	NumericAnswer    *float64              `json:"numeric_answer"`
	Status           TestAnswerStatus      `json:"status" gorm:"default:UNATTEMPTED"`
	TimeTakenSeconds int                   `json:"time_taken_seconds" gorm:"default:0"`
	SequenceOrder    int                   `json:"sequence_order"`
	Selections       []TestAnswerSelection `json:"selections,omitempty" gorm:"foreignKey:AnswerID"`
}

type TestAnswerSelection struct {
	AnswerID         string `json:"answer_id" gorm:"primaryKey"`
	SelectedOptionID string `json:"selected_option_id" gorm:"primaryKey"`
}
