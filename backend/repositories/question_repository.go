package repositories

import (
	"errors"

	"examprep/backend/models"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Exams() ([]models.Exam, error) {
	var exams []models.Exam
	err := r.DB.Order("exam_id").Find(&exams).Error
	return exams, err
}

func (r *QuestionRepository) FindExam(examID uint) (*models.Exam, error) {
	var exam models.Exam
	if err := r.DB.First(&exam, examID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &exam, nil
}

func (r *QuestionRepository) Subjects() ([]models.Subject, error) {
	var subjects []models.Subject
	err := r.DB.Order("subject_id").Find(&subjects).Error
	return subjects, err
}

func (r *QuestionRepository) ChaptersBySubject(subjectID uint) ([]models.Chapter, error) {
	var chapters []models.Chapter
	err := r.DB.Where("subject_id = ?", subjectID).Order("chapter_id").Find(&chapters).Error
	return chapters, err
}

func (r *QuestionRepository) SubtopicsByChapter(chapterID uint) ([]models.Subtopic, error) {
	var subtopics []models.Subtopic
	err := r.DB.Where("chapter_id = ?", chapterID).Order("subtopic_id").Find(&subtopics).Error
	return subtopics, err
}

type QuestionFilter struct {
	SubtopicID       *uint
	QuestionType     *models.QuestionType
	DifficultyLevel  *models.DifficultyLevel
	ValidationStatus *models.AIValidationStatus
}

func (r *QuestionRepository) List(filter QuestionFilter) ([]models.Question, error) {
	query := r.DB.Preload("Options")

	if filter.SubtopicID != nil {
		query = query.Where("subtopic_id = ?", *filter.SubtopicID)
	}
	if filter.QuestionType != nil {
		query = query.Where("question_type = ?", *filter.QuestionType)
	}
	if filter.DifficultyLevel != nil {
		query = query.Where("difficulty_level = ?", *filter.DifficultyLevel)
	}
	if filter.ValidationStatus != nil {
		query = query.Where("ai_validation_status = ?", *filter.ValidationStatus)
	}

	var questions []models.Question
	err := query.Order("created_at").Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindByIDs(questionIDs []string) ([]models.Question, error) {
	var questions []models.Question
	err := r.DB.Preload("Options").Where("question_id IN ?", questionIDs).Find(&questions).Error
	return questions, err
}

// PickFilter selects validated questions applicable to an exam, optionally
// narrowed to one chapter or subject and one question type.
type PickFilter struct {
	ExamID       uint
	QuestionType *models.QuestionType
	ChapterID    *uint
	SubjectID    *uint
	Limit        int
}

// Pick draws a random sample from the question bank. Only VALIDATED
// questions ever reach a paper. ORDER BY RANDOM() is understood by both
// postgres and sqlite.
func (r *QuestionRepository) Pick(filter PickFilter) ([]models.Question, error) {
	query := r.DB.Preload("Options").
		Joins("JOIN question_exam_applicability ON question_exam_applicability.question_id = questions.question_id").
		Where("question_exam_applicability.exam_id = ?", filter.ExamID).
		Where("questions.ai_validation_status = ?", models.ValidationValidated)

	if filter.QuestionType != nil {
		query = query.Where("questions.question_type = ?", *filter.QuestionType)
	}
	if filter.ChapterID != nil {
		query = query.
			Joins("JOIN subtopics ON subtopics.subtopic_id = questions.subtopic_id").
			Where("subtopics.chapter_id = ?", *filter.ChapterID)
	} else if filter.SubjectID != nil {
		query = query.
			Joins("JOIN subtopics ON subtopics.subtopic_id = questions.subtopic_id").
			Joins("JOIN chapters ON chapters.chapter_id = subtopics.chapter_id").
			Where("chapters.subject_id = ?", *filter.SubjectID)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var questions []models.Question
	err := query.Order("RANDOM()").Find(&questions).Error
	return questions, err
}

// QuestionTaxonomy locates a question inside the subject/chapter hierarchy,
// which the analytics aggregates are keyed by.
type QuestionTaxonomy struct {
	QuestionID string
	SubtopicID uint
	ChapterID  uint
	SubjectID  uint
}

func (r *QuestionRepository) TaxonomyFor(questionIDs []string) (map[string]QuestionTaxonomy, error) {
	var rows []QuestionTaxonomy
	err := r.DB.Table("questions").
		Select("questions.question_id, questions.subtopic_id, subtopics.chapter_id, chapters.subject_id").
		Joins("JOIN subtopics ON subtopics.subtopic_id = questions.subtopic_id").
		Joins("JOIN chapters ON chapters.chapter_id = subtopics.chapter_id").
		Where("questions.question_id IN ?", questionIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	taxonomy := make(map[string]QuestionTaxonomy, len(rows))
	for _, row := range rows {
		taxonomy[row.QuestionID] = row
	}
	return taxonomy, nil
}
