package models

import "time"

type User struct {
	UserID       string    `json:"user_id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserEnrollment registers a user into an exam's question pool.
type UserEnrollment struct {
	UserID string `json:"user_id" gorm:"primaryKey"`
	ExamID uint   `json:"exam_id" gorm:"primaryKey"`
}

type UserStarredQuestion struct {
	UserID     string    `json:"user_id" gorm:"primaryKey"`
	QuestionID string    `json:"question_id" gorm:"primaryKey"`
	CreatedAt  time.Time `json:"created_at"`
}
