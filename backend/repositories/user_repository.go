package repositories

import (
	"errors"

	"examprep/backend/models"

	"gorm.io/gorm"
)

var (
	ErrEmailTaken = errors.New("email already registered")
	ErrNotFound   = errors.New("record not found")
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// Create persists a new user. The unique index on email is the source of
// truth for duplicates; a check-then-insert would be racy under concurrent
// registrations.
func (r *UserRepository) Create(user *models.User) error {
	if err := r.DB.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Enroll(userID string, examID uint) error {
	enrollment := models.UserEnrollment{UserID: userID, ExamID: examID}
	return r.DB.FirstOrCreate(&enrollment, enrollment).Error
}

func (r *UserRepository) Enrollments(userID string) ([]models.Exam, error) {
	var exams []models.Exam
	err := r.DB.
		Joins("JOIN user_enrollments ON user_enrollments.exam_id = exams.exam_id").
		Where("user_enrollments.user_id = ?", userID).
		Find(&exams).Error
	return exams, err
}

func (r *UserRepository) StarQuestion(userID, questionID string) error {
	star := models.UserStarredQuestion{UserID: userID, QuestionID: questionID}
	return r.DB.FirstOrCreate(&star, models.UserStarredQuestion{UserID: userID, QuestionID: questionID}).Error
}

func (r *UserRepository) UnstarQuestion(userID, questionID string) error {
	return r.DB.
		Where("user_id = ? AND question_id = ?", userID, questionID).
		Delete(&models.UserStarredQuestion{}).Error
}

func (r *UserRepository) StarredQuestions(userID string) ([]models.Question, error) {
	var questions []models.Question
	err := r.DB.Preload("Options").
		Joins("JOIN user_starred_questions ON user_starred_questions.question_id = questions.question_id").
		Where("user_starred_questions.user_id = ?", userID).
		Order("user_starred_questions.created_at DESC").
		Find(&questions).Error
	return questions, err
}
