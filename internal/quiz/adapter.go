package quiz

import (
	"fmt"
	"strings"

	"github.com/studyforge/backend/internal/models"
)

// AdaptQuiz validates and normalizes a raw generator payload into a Quiz
// ready for grading. The input is never mutated. Every structural violation
// is collected so a bad payload is reported in full, not one field at a time.
func AdaptQuiz(payload models.QuizPayload) (*models.Quiz, error) {
	var violations []string

	if len(payload.Questions) == 0 {
		return nil, &MalformedContentError{Violations: []string{"question list is empty"}}
	}

	quiz := models.Quiz{
		Title:     strings.TrimSpace(payload.Title),
		Questions: make([]models.Question, 0, len(payload.Questions)),
	}
	if quiz.Title == "" {
		quiz.Title = "Untitled Quiz"
	}

	for i, raw := range payload.Questions {
		qNum := i + 1

		q := models.Question{
			Question:   strings.TrimSpace(raw.Question),
			Kind:       normalizeKind(raw.Kind),
			Difficulty: models.Difficulty(raw.Difficulty),
			Hint:       strings.TrimSpace(raw.Hint),
		}

		if q.Question == "" {
			violations = append(violations, fmt.Sprintf("question %d: missing question text", qNum))
		}
		if !models.ValidAnswerKinds[q.Kind] {
			violations = append(violations, fmt.Sprintf("question %d: unknown kind %q", qNum, raw.Kind))
			continue
		}

		switch q.Kind {
		case models.KindMultipleChoice:
			q.Options = trimAll(raw.Options)
			q.CorrectAnswer = strings.TrimSpace(raw.CorrectAnswer)
			if len(q.Options) < 2 {
				violations = append(violations, fmt.Sprintf("question %d: choice question needs at least 2 options, got %d", qNum, len(q.Options)))
			}
			if q.CorrectAnswer == "" {
				violations = append(violations, fmt.Sprintf("question %d: missing correct_answer", qNum))
			} else if !contains(q.Options, q.CorrectAnswer) {
				violations = append(violations, fmt.Sprintf("question %d: correct_answer %q is not one of the options", qNum, q.CorrectAnswer))
			}

		case models.KindTypeAnswer:
			q.CorrectAnswer = strings.TrimSpace(raw.CorrectAnswer)
			if q.CorrectAnswer == "" {
				violations = append(violations, fmt.Sprintf("question %d: missing correct_answer", qNum))
			}

		case models.KindOrdering:
			q.Options = trimAll(raw.Options)
			q.CorrectOrder = raw.CorrectOrder
			if len(q.Options) < 2 {
				violations = append(violations, fmt.Sprintf("question %d: ordering question needs at least 2 items, got %d", qNum, len(q.Options)))
			} else if !isPermutation(q.CorrectOrder, len(q.Options)) {
				violations = append(violations, fmt.Sprintf("question %d: correct_order is not a permutation of item indices", qNum))
			}

		case models.KindMatching:
			q.Pairs = trimPairs(raw.Pairs)
			if len(q.Pairs) < 2 {
				violations = append(violations, fmt.Sprintf("question %d: matching question needs at least 2 pairs, got %d", qNum, len(q.Pairs)))
			}

		case models.KindSlider:
			if raw.SliderMin == nil || raw.SliderMax == nil || raw.SliderAnswer == nil {
				violations = append(violations, fmt.Sprintf("question %d: slider question needs slider_min, slider_max, and slider_answer", qNum))
				break
			}
			q.SliderMin = *raw.SliderMin
			q.SliderMax = *raw.SliderMax
			q.SliderAnswer = *raw.SliderAnswer
			if q.SliderMin >= q.SliderMax {
				violations = append(violations, fmt.Sprintf("question %d: slider_min must be below slider_max", qNum))
			} else if q.SliderAnswer < q.SliderMin || q.SliderAnswer > q.SliderMax {
				violations = append(violations, fmt.Sprintf("question %d: slider_answer %v is outside [%v, %v]", qNum, q.SliderAnswer, q.SliderMin, q.SliderMax))
			}
		}

		switch q.Difficulty {
		case "", models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
		default:
			violations = append(violations, fmt.Sprintf("question %d: unknown difficulty %q", qNum, raw.Difficulty))
		}

		quiz.Questions = append(quiz.Questions, q)
	}

	if len(violations) > 0 {
		return nil, &MalformedContentError{Violations: violations}
	}

	return &quiz, nil
}

// normalizeKind defaults a missing kind to multiple choice, the generator's
// dominant output.
func normalizeKind(kind string) models.AnswerKind {
	k := models.AnswerKind(strings.TrimSpace(strings.ToLower(kind)))
	if k == "" {
		return models.KindMultipleChoice
	}
	return k
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func trimPairs(pairs map[string]string) map[string]string {
	out := make(map[string]string, len(pairs))
	for k, v := range pairs {
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		if k != "" && v != "" {
			out[k] = v
		}
	}
	return out
}

func contains(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}

// isPermutation reports whether order contains each index 0..n-1 exactly once.
func isPermutation(order []int, n int) bool {
	if len(order) != n {
		return false
	}
	seen := make([]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n || seen[idx] {
			return false
		}
		seen[idx] = true
	}
	return true
}
