// Package scoring applies the marking scheme to a completed attempt.
// It is deliberately free of storage concerns: callers hand it the
// question (with options) and the answer (with selections).
package scoring

import (
	"math"
	"sort"

	"examprep/backend/models"
)

// NumericTolerance is the absolute tolerance accepted for NUM answers.
// INT answers must match exactly.
const NumericTolerance = 0.01

type Outcome struct {
	Status models.TestAnswerStatus
	Marks  float64
}

// Evaluate grades a single answer: +positive_marks when correct,
// -negative_marks when incorrect, 0 when unattempted. A marked-for-review
// answer that carries a selection or value is graded like any other;
// without one it counts as unattempted.
func Evaluate(question *models.Question, answer *models.TestAnswer) Outcome {
	if !attempted(question, answer) {
		return Outcome{Status: models.AnswerUnattempted}
	}
	if correct(question, answer) {
		return Outcome{Status: models.AnswerCorrect, Marks: float64(question.PositiveMarks)}
	}
	return Outcome{Status: models.AnswerIncorrect, Marks: -float64(question.NegativeMarks)}
}

// Total sums outcome marks into a final score.
func Total(outcomes []Outcome) float64 {
	var total float64
	for _, outcome := range outcomes {
		total += outcome.Marks
	}
	return total
}

func attempted(question *models.Question, answer *models.TestAnswer) bool {
	switch question.QuestionType {
	case models.QuestionTypeMCSC, models.QuestionTypeMCMC:
		return len(answer.Selections) > 0
	case models.QuestionTypeINT:
		return answer.IntegerAnswer != nil
	case models.QuestionTypeNUM:
		return answer.NumericAnswer != nil
	}
	return false
}

func correct(question *models.Question, answer *models.TestAnswer) bool {
	switch question.QuestionType {
	case models.QuestionTypeMCSC, models.QuestionTypeMCMC:
		// The selected-option set must exactly equal the correct-option set.
		return sameOptionSet(correctOptionIDs(question), selectedOptionIDs(answer))
	case models.QuestionTypeINT:
		return question.AnswerValue != nil &&
			float64(*answer.IntegerAnswer) == *question.AnswerValue
	case models.QuestionTypeNUM:
		return question.AnswerValue != nil &&
			math.Abs(*answer.NumericAnswer-*question.AnswerValue) <= NumericTolerance
	}
	return false
}

func correctOptionIDs(question *models.Question) []string {
	var ids []string
	for _, option := range question.Options {
		if option.IsCorrect {
			ids = append(ids, option.OptionID)
		}
	}
	return ids
}

func selectedOptionIDs(answer *models.TestAnswer) []string {
	var ids []string
	for _, selection := range answer.Selections {
		ids = append(ids, selection.SelectedOptionID)
	}
	return ids
}

func sameOptionSet(a, b []string) bool {
	if len(a) != len(b) || len(a) == 0 {
		return false
	}
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
