package repositories

import (
	"errors"

	"examprep/backend/models"

	"gorm.io/gorm"
)

type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

// Create persists an attempt together with its answer rows.
func (r *TestRepository) Create(test *models.Test) error {
	return r.DB.Create(test).Error
}

// FindForUser loads an attempt owned by the given user, answers ordered the
// way the paper presented them.
func (r *TestRepository) FindForUser(testID, userID string) (*models.Test, error) {
	var test models.Test
	err := r.DB.
		Preload("Answers", func(db *gorm.DB) *gorm.DB { return db.Order("sequence_order") }).
		Preload("Answers.Selections").
		Where("test_id = ? AND user_id = ?", testID, userID).
		First(&test).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &test, nil
}

func (r *TestRepository) ListForUser(userID string) ([]models.Test, error) {
	var tests []models.Test
	err := r.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tests).Error
	return tests, err
}

func (r *TestRepository) UpdateStatus(test *models.Test, status models.TestStatus) error {
	test.Status = status
	return r.DB.Model(test).Update("status", status).Error
}

// SaveAnswer updates one answer row and replaces its selected options
// atomically.
func (r *TestRepository) SaveAnswer(answer *models.TestAnswer, selectedOptionIDs []string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(answer).Select(
			"integer_answer", "numeric_answer", "status", "time_taken_seconds",
		).Updates(answer).Error; err != nil {
			return err
		}

		if err := tx.Where("answer_id = ?", answer.AnswerID).
			Delete(&models.TestAnswerSelection{}).Error; err != nil {
			return err
		}

		for _, optionID := range selectedOptionIDs {
			selection := models.TestAnswerSelection{
				AnswerID:         answer.AnswerID,
				SelectedOptionID: optionID,
			}
			if err := tx.Create(&selection).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
