package scoring

import (
	"testing"

	"examprep/backend/models"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int             { return &v }
func floatPtr(v float64) *float64   { return &v }
func selections(ids ...string) []models.TestAnswerSelection {
	var result []models.TestAnswerSelection
	for _, id := range ids {
		result = append(result, models.TestAnswerSelection{SelectedOptionID: id})
	}
	return result
}

func mcscQuestion() *models.Question {
	return &models.Question{
		QuestionID:    "q1",
		QuestionType:  models.QuestionTypeMCSC,
		PositiveMarks: 4,
		NegativeMarks: 1,
		Options: []models.QuestionOption{
			{OptionID: "a", IsCorrect: true},
			{OptionID: "b"},
			{OptionID: "c"},
			{OptionID: "d"},
		},
	}
}

func mcmcQuestion() *models.Question {
	return &models.Question{
		QuestionID:    "q2",
		QuestionType:  models.QuestionTypeMCMC,
		PositiveMarks: 4,
		NegativeMarks: 2,
		Options: []models.QuestionOption{
			{OptionID: "a", IsCorrect: true},
			{OptionID: "b", IsCorrect: true},
			{OptionID: "c"},
		},
	}
}

func TestEvaluateMCSC(t *testing.T) {
	q := mcscQuestion()

	correct := Evaluate(q, &models.TestAnswer{Selections: selections("a")})
	assert.Equal(t, models.AnswerCorrect, correct.Status)
	assert.Equal(t, 4.0, correct.Marks)

	wrong := Evaluate(q, &models.TestAnswer{Selections: selections("b")})
	assert.Equal(t, models.AnswerIncorrect, wrong.Status)
	assert.Equal(t, -1.0, wrong.Marks)

	blank := Evaluate(q, &models.TestAnswer{})
	assert.Equal(t, models.AnswerUnattempted, blank.Status)
	assert.Equal(t, 0.0, blank.Marks)
}

func TestEvaluateMCMCNeedsExactSet(t *testing.T) {
	q := mcmcQuestion()

	exact := Evaluate(q, &models.TestAnswer{Selections: selections("b", "a")})
	assert.Equal(t, models.AnswerCorrect, exact.Status)
	assert.Equal(t, 4.0, exact.Marks)

	subset := Evaluate(q, &models.TestAnswer{Selections: selections("a")})
	assert.Equal(t, models.AnswerIncorrect, subset.Status)
	assert.Equal(t, -2.0, subset.Marks)

	superset := Evaluate(q, &models.TestAnswer{Selections: selections("a", "b", "c")})
	assert.Equal(t, models.AnswerIncorrect, superset.Status)
}

func TestEvaluateInteger(t *testing.T) {
	q := &models.Question{
		QuestionType:  models.QuestionTypeINT,
		PositiveMarks: 4,
		NegativeMarks: 1,
		AnswerValue:   floatPtr(42),
	}

	assert.Equal(t, models.AnswerCorrect, Evaluate(q, &models.TestAnswer{IntegerAnswer: intPtr(42)}).Status)
	assert.Equal(t, models.AnswerIncorrect, Evaluate(q, &models.TestAnswer{IntegerAnswer: intPtr(41)}).Status)
	assert.Equal(t, models.AnswerUnattempted, Evaluate(q, &models.TestAnswer{}).Status)
}

func TestEvaluateNumericalTolerance(t *testing.T) {
	q := &models.Question{
		QuestionType:  models.QuestionTypeNUM,
		PositiveMarks: 4,
		NegativeMarks: 0,
		AnswerValue:   floatPtr(9.8),
	}

	within := Evaluate(q, &models.TestAnswer{NumericAnswer: floatPtr(9.805)})
	assert.Equal(t, models.AnswerCorrect, within.Status)

	outside := Evaluate(q, &models.TestAnswer{NumericAnswer: floatPtr(9.82)})
	assert.Equal(t, models.AnswerIncorrect, outside.Status)
	assert.Equal(t, 0.0, outside.Marks) // negative marks can be zero
}

func TestMarkedForReviewWithoutAnswerIsUnattempted(t *testing.T) {
	q := mcscQuestion()

	bare := Evaluate(q, &models.TestAnswer{Status: models.AnswerMarkedForReview})
	assert.Equal(t, models.AnswerUnattempted, bare.Status)

	answered := Evaluate(q, &models.TestAnswer{
		Status:     models.AnswerMarkedForReview,
		Selections: selections("a"),
	})
	assert.Equal(t, models.AnswerCorrect, answered.Status)
}

func TestTotalScore(t *testing.T) {
	q := mcscQuestion()

	// All unattempted scores zero.
	blank := []Outcome{
		Evaluate(q, &models.TestAnswer{}),
		Evaluate(q, &models.TestAnswer{}),
		Evaluate(q, &models.TestAnswer{}),
	}
	assert.Equal(t, 0.0, Total(blank))

	// Flipping one answer to correct adds exactly its positive marks.
	flipped := []Outcome{
		Evaluate(q, &models.TestAnswer{Selections: selections("a")}),
		Evaluate(q, &models.TestAnswer{}),
		Evaluate(q, &models.TestAnswer{}),
	}
	assert.Equal(t, float64(q.PositiveMarks), Total(flipped)-Total(blank))
}
