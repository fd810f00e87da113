package models

import "time"

type QuestionType string

const (
	QuestionTypeMCSC QuestionType = "MCSC" // multiple choice, single correct
	QuestionTypeMCMC QuestionType = "MCMC" // multiple choice, multiple correct
	QuestionTypeINT  QuestionType = "INT"
	QuestionTypeNUM  QuestionType = "NUM"
)

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "EASY"
	DifficultyMedium DifficultyLevel = "MEDIUM"
	DifficultyHard   DifficultyLevel = "HARD"
)

type QuestionSource string

const (
	SourcePYQ       QuestionSource = "PYQ"
	SourceNCERT     QuestionSource = "NCERT"
	SourceGenerated QuestionSource = "GENERATED"
)

type AIValidationStatus string

const (
	ValidationPending   AIValidationStatus = "PENDING"
	ValidationValidated AIValidationStatus = "VALIDATED"
	ValidationRejected  AIValidationStatus = "REJECTED"
)

type Exam struct {
	ExamID   uint   `json:"exam_id" gorm:"primaryKey"`
	ExamName string `json:"exam_name" gorm:"uniqueIndex;not null"`
}

// Subject -> Chapter -> Subtopic is a strict three-level hierarchy;
// each child references exactly one parent.
type Subject struct {
	SubjectID   uint      `json:"subject_id" gorm:"primaryKey"`
	SubjectName string    `json:"subject_name" gorm:"not null"`
	Chapters    []Chapter `json:"chapters,omitempty" gorm:"foreignKey:SubjectID"`
}

type Chapter struct {
	ChapterID   uint       `json:"chapter_id" gorm:"primaryKey"`
	ChapterName string     `json:"chapter_name" gorm:"not null"`
	SubjectID   uint       `json:"subject_id" gorm:"not null"`
	Subtopics   []Subtopic `json:"subtopics,omitempty" gorm:"foreignKey:ChapterID"`
}

type Subtopic struct {
	SubtopicID   uint   `json:"subtopic_id" gorm:"primaryKey"`
	SubtopicName string `json:"subtopic_name" gorm:"not null"`
	ChapterID    uint   `json:"chapter_id" gorm:"not null"`
}

type Question struct {
	QuestionID          string             `json:"question_id" gorm:"primaryKey"`
	QuestionText        string             `json:"question_text" gorm:"not null"`
	ImageURL            *string            `json:"image_url"`
	QuestionType        QuestionType       `json:"question_type" gorm:"not null"`
	SubtopicID          uint               `json:"subtopic_id" gorm:"not null"`
	DifficultyLevel     DifficultyLevel    `json:"difficulty_level"`
	Source              QuestionSource     `json:"source"`
	SourceDetails       *string            `json:"source_details"`
	PositiveMarks       int                `json:"positive_marks" gorm:"default:4"`
	NegativeMarks       int                `json:"negative_marks" gorm:"default:1"` // can be 0
	AnswerValue         *float64           `json:"-"`                               // accepted answer for INT/NUM questions
	SolutionExplanation *string            `json:"solution_explanation,omitempty"`
	AIValidationStatus  AIValidationStatus `json:"ai_validation_status" gorm:"default:PENDING"`
	CreatedAt           time.Time          `json:"created_at"`
	Options             []QuestionOption   `json:"options,omitempty" gorm:"foreignKey:QuestionID"`
}

type QuestionOption struct {
	OptionID   string  `json:"option_id" gorm:"primaryKey"`
	QuestionID string  `json:"question_id" gorm:"not null"`
	OptionText string  `json:"option_text"`
	ImageURL   *string `json:"image_url"`
	IsCorrect  bool    `json:"-" gorm:"default:false"`
}

type QuestionExamApplicability struct {
	QuestionID string `json:"question_id" gorm:"primaryKey"`
	ExamID     uint   `json:"exam_id" gorm:"primaryKey"`
}

func (QuestionExamApplicability) TableName() string {
	return "question_exam_applicability"
}
