package quiz

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/studyforge/backend/internal/models"
)

const (
	// MasteryPercentage is the score at or above which an attempt earns the
	// mastery XP award.
	MasteryPercentage = 80

	// MasteryXP is the XP granted for a mastery-level attempt.
	MasteryXP = 100
)

// Grade scores submitted answers against a normalized quiz. Pure and
// deterministic: the same quiz and answers always produce the same result.
// Questions are compared in order by index; an unanswered question counts as
// incorrect. Each question is binary correct/incorrect, one comparison rule
// per answer kind.
func Grade(quiz *models.Quiz, answers map[int]models.SubmittedAnswer) (*models.GradeResult, error) {
	total := len(quiz.Questions)
	if total == 0 {
		return nil, ErrNoQuestions
	}

	result := models.GradeResult{
		TotalQuestions: total,
		QAPairs:        make([]models.QAPair, 0, total),
	}

	for i, q := range quiz.Questions {
		answer, answered := answers[i]

		correct := answered && isCorrect(q, answer)
		if correct {
			result.Score++
		}

		pair := models.QAPair{
			Question:      q.Question,
			Kind:          q.Kind,
			Options:       q.Options,
			CorrectAnswer: formatCorrectAnswer(q),
			IsCorrect:     correct,
		}
		if answered {
			pair.UserAnswer = formatSubmittedAnswer(q, answer)
		}
		result.QAPairs = append(result.QAPairs, pair)
	}

	// Round half up; total is taken from the quiz, never from the answer map.
	result.Percentage = int(math.Round(100 * float64(result.Score) / float64(total)))

	return &result, nil
}

// isCorrect applies the equality rule for the question's kind.
func isCorrect(q models.Question, a models.SubmittedAnswer) bool {
	switch q.Kind {
	case models.KindMultipleChoice:
		return a.Choice == q.CorrectAnswer
	case models.KindTypeAnswer:
		// Exact match, same as choice answers. Normalization is the client's
		// job before submitting.
		return a.Choice == q.CorrectAnswer
	case models.KindOrdering:
		if len(a.Order) != len(q.CorrectOrder) {
			return false
		}
		for i := range q.CorrectOrder {
			if a.Order[i] != q.CorrectOrder[i] {
				return false
			}
		}
		return true
	case models.KindMatching:
		if len(a.Matches) != len(q.Pairs) {
			return false
		}
		for left, right := range q.Pairs {
			if a.Matches[left] != right {
				return false
			}
		}
		return true
	case models.KindSlider:
		return a.Value != nil && *a.Value == q.SliderAnswer
	}
	return false
}

// ── Canonical answer rendering for the audit trail ──────

func formatCorrectAnswer(q models.Question) string {
	switch q.Kind {
	case models.KindMultipleChoice, models.KindTypeAnswer:
		return q.CorrectAnswer
	case models.KindOrdering:
		items := make([]string, len(q.CorrectOrder))
		for i, idx := range q.CorrectOrder {
			items[i] = q.Options[idx]
		}
		return strings.Join(items, " > ")
	case models.KindMatching:
		return formatMatches(q.Pairs)
	case models.KindSlider:
		return fmt.Sprintf("%g", q.SliderAnswer)
	}
	return ""
}

func formatSubmittedAnswer(q models.Question, a models.SubmittedAnswer) string {
	switch q.Kind {
	case models.KindMultipleChoice, models.KindTypeAnswer:
		return a.Choice
	case models.KindOrdering:
		items := make([]string, len(a.Order))
		for i, idx := range a.Order {
			if idx >= 0 && idx < len(q.Options) {
				items[i] = q.Options[idx]
			} else {
				items[i] = fmt.Sprintf("#%d", idx)
			}
		}
		return strings.Join(items, " > ")
	case models.KindMatching:
		return formatMatches(a.Matches)
	case models.KindSlider:
		if a.Value == nil {
			return ""
		}
		return fmt.Sprintf("%g", *a.Value)
	}
	return ""
}

// formatMatches renders a matching map in sorted key order so the rendering
// is stable across gradings.
func formatMatches(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" = "+m[k])
	}
	return strings.Join(parts, ", ")
}
