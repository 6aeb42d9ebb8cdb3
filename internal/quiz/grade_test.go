package quiz

import (
	"errors"
	"testing"

	"github.com/studyforge/backend/internal/models"
)

func mcq(question, correct string, options ...string) models.Question {
	return models.Question{
		Question:      question,
		Kind:          models.KindMultipleChoice,
		Options:       options,
		CorrectAnswer: correct,
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestGradeAllKinds(t *testing.T) {
	quiz := &models.Quiz{
		Title: "Mixed Kinds",
		Questions: []models.Question{
			mcq("Capital of France?", "Paris", "Paris", "Lyon", "Nice"),
			{
				Question:      "Chemical symbol for gold?",
				Kind:          models.KindTypeAnswer,
				CorrectAnswer: "Au",
			},
			{
				Question:     "Order from smallest to largest",
				Kind:         models.KindOrdering,
				Options:      []string{"Earth", "Moon", "Sun"},
				CorrectOrder: []int{1, 0, 2},
			},
			{
				Question: "Match country to capital",
				Kind:     models.KindMatching,
				Pairs:    map[string]string{"Spain": "Madrid", "Italy": "Rome"},
			},
			{
				Question:     "Boiling point of water in Celsius?",
				Kind:         models.KindSlider,
				SliderMin:    0,
				SliderMax:    200,
				SliderAnswer: 100,
			},
		},
	}

	answers := map[int]models.SubmittedAnswer{
		0: {Choice: "Paris"},
		1: {Choice: "Au"},
		2: {Order: []int{1, 0, 2}},
		3: {Matches: map[string]string{"Spain": "Madrid", "Italy": "Rome"}},
		4: {Value: floatPtr(100)},
	}

	result, err := Grade(quiz, answers)
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}
	if result.Score != 5 {
		t.Errorf("Score = %d, want 5", result.Score)
	}
	if result.Percentage != 100 {
		t.Errorf("Percentage = %d, want 100", result.Percentage)
	}
	for i, pair := range result.QAPairs {
		if !pair.IsCorrect {
			t.Errorf("question %d graded incorrect, want correct", i)
		}
	}
}

func TestGradeWrongAnswers(t *testing.T) {
	quiz := &models.Quiz{
		Questions: []models.Question{
			mcq("Q1", "A", "A", "B"),
			{Question: "Q2", Kind: models.KindTypeAnswer, CorrectAnswer: "forty two"},
			{Question: "Q3", Kind: models.KindOrdering, Options: []string{"x", "y"}, CorrectOrder: []int{0, 1}},
			{Question: "Q4", Kind: models.KindMatching, Pairs: map[string]string{"a": "1", "b": "2"}},
			{Question: "Q5", Kind: models.KindSlider, SliderMin: 0, SliderMax: 10, SliderAnswer: 7},
		},
	}

	answers := map[int]models.SubmittedAnswer{
		0: {Choice: "B"},
		1: {Choice: "fortytwo"},
		2: {Order: []int{1, 0}},
		3: {Matches: map[string]string{"a": "1", "b": "wrong"}},
		4: {Value: floatPtr(6.9)},
	}

	result, err := Grade(quiz, answers)
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}
	if result.Score != 0 {
		t.Errorf("Score = %d, want 0", result.Score)
	}
	if result.Percentage != 0 {
		t.Errorf("Percentage = %d, want 0", result.Percentage)
	}
}

func TestGradeTypeAnswerExactMatch(t *testing.T) {
	quiz := &models.Quiz{
		Questions: []models.Question{
			{Question: "Chemical symbol for gold?", Kind: models.KindTypeAnswer, CorrectAnswer: "Au"},
		},
	}

	tests := []struct {
		choice string
		want   int
	}{
		{"Au", 1},
		{"  aU ", 0},
		{"au", 0},
		{"AU", 0},
		{" Au", 0},
	}

	for _, tt := range tests {
		result, err := Grade(quiz, map[int]models.SubmittedAnswer{0: {Choice: tt.choice}})
		if err != nil {
			t.Fatalf("Grade() error = %v", err)
		}
		if result.Score != tt.want {
			t.Errorf("Score for submission %q = %d, want %d", tt.choice, result.Score, tt.want)
		}
	}
}

func TestGradeUnansweredCountsIncorrect(t *testing.T) {
	quiz := &models.Quiz{
		Questions: []models.Question{
			mcq("Q1", "A", "A", "B"),
			mcq("Q2", "A", "A", "B"),
		},
	}

	result, err := Grade(quiz, map[int]models.SubmittedAnswer{0: {Choice: "A"}})
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}
	if result.Score != 1 {
		t.Errorf("Score = %d, want 1", result.Score)
	}
	if result.Percentage != 50 {
		t.Errorf("Percentage = %d, want 50", result.Percentage)
	}
	if result.QAPairs[1].UserAnswer != "" {
		t.Errorf("unanswered UserAnswer = %q, want empty", result.QAPairs[1].UserAnswer)
	}
	if result.QAPairs[1].IsCorrect {
		t.Error("unanswered question graded correct")
	}
}

func TestGradePercentageRounding(t *testing.T) {
	tests := []struct {
		score, total, want int
	}{
		{3, 7, 43},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{0, 5, 0},
		{5, 5, 100},
	}

	for _, tt := range tests {
		questions := make([]models.Question, tt.total)
		answers := make(map[int]models.SubmittedAnswer)
		for i := range questions {
			questions[i] = mcq("Q", "A", "A", "B")
			if i < tt.score {
				answers[i] = models.SubmittedAnswer{Choice: "A"}
			} else {
				answers[i] = models.SubmittedAnswer{Choice: "B"}
			}
		}

		result, err := Grade(&models.Quiz{Questions: questions}, answers)
		if err != nil {
			t.Fatalf("Grade(%d/%d) error = %v", tt.score, tt.total, err)
		}
		if result.Percentage != tt.want {
			t.Errorf("Percentage(%d/%d) = %d, want %d", tt.score, tt.total, result.Percentage, tt.want)
		}
	}
}

func TestGradeSingleQuestionBoundaries(t *testing.T) {
	quiz := &models.Quiz{Questions: []models.Question{mcq("Q", "A", "A", "B")}}

	right, err := Grade(quiz, map[int]models.SubmittedAnswer{0: {Choice: "A"}})
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}
	if right.Percentage != 100 {
		t.Errorf("correct single question Percentage = %d, want 100", right.Percentage)
	}

	wrong, err := Grade(quiz, map[int]models.SubmittedAnswer{0: {Choice: "B"}})
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}
	if wrong.Percentage != 0 {
		t.Errorf("incorrect single question Percentage = %d, want 0", wrong.Percentage)
	}
}

func TestGradeEmptyQuiz(t *testing.T) {
	_, err := Grade(&models.Quiz{}, nil)
	if !errors.Is(err, ErrNoQuestions) {
		t.Errorf("Grade(empty quiz) error = %v, want ErrNoQuestions", err)
	}
}

func TestGradeDeterministic(t *testing.T) {
	quiz := &models.Quiz{
		Questions: []models.Question{
			{Question: "Match", Kind: models.KindMatching, Pairs: map[string]string{"c": "3", "a": "1", "b": "2"}},
			mcq("Q", "A", "A", "B"),
		},
	}
	answers := map[int]models.SubmittedAnswer{
		0: {Matches: map[string]string{"b": "2", "a": "1", "c": "3"}},
		1: {Choice: "B"},
	}

	first, err := Grade(quiz, answers)
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Grade(quiz, answers)
		if err != nil {
			t.Fatalf("Grade() error = %v", err)
		}
		if again.Score != first.Score || again.Percentage != first.Percentage {
			t.Fatalf("grading not deterministic: got %d/%d%%, want %d/%d%%",
				again.Score, again.Percentage, first.Score, first.Percentage)
		}
		for j := range first.QAPairs {
			if again.QAPairs[j].UserAnswer != first.QAPairs[j].UserAnswer ||
				again.QAPairs[j].CorrectAnswer != first.QAPairs[j].CorrectAnswer ||
				again.QAPairs[j].IsCorrect != first.QAPairs[j].IsCorrect {
				t.Fatalf("question %d grading not stable across runs", j)
			}
		}
	}
}

func TestGradeMatchingPartialIncorrect(t *testing.T) {
	quiz := &models.Quiz{
		Questions: []models.Question{
			{Question: "Match", Kind: models.KindMatching, Pairs: map[string]string{"a": "1", "b": "2"}},
		},
	}

	// A submission covering only some pairs is incorrect even when every
	// covered pair is right.
	result, err := Grade(quiz, map[int]models.SubmittedAnswer{
		0: {Matches: map[string]string{"a": "1"}},
	})
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}
	if result.Score != 0 {
		t.Errorf("Score = %d, want 0", result.Score)
	}
}

func TestGradeOrderingLengthMismatch(t *testing.T) {
	quiz := &models.Quiz{
		Questions: []models.Question{
			{Question: "Order", Kind: models.KindOrdering, Options: []string{"x", "y", "z"}, CorrectOrder: []int{0, 1, 2}},
		},
	}

	result, err := Grade(quiz, map[int]models.SubmittedAnswer{0: {Order: []int{0, 1}}})
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}
	if result.Score != 0 {
		t.Errorf("Score = %d, want 0", result.Score)
	}
}

func TestGradeSliderMissingValue(t *testing.T) {
	quiz := &models.Quiz{
		Questions: []models.Question{
			{Question: "Slide", Kind: models.KindSlider, SliderMin: 0, SliderMax: 10, SliderAnswer: 5},
		},
	}

	result, err := Grade(quiz, map[int]models.SubmittedAnswer{0: {}})
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}
	if result.Score != 0 {
		t.Errorf("Score = %d, want 0", result.Score)
	}
}

func TestGradeAnswerRendering(t *testing.T) {
	quiz := &models.Quiz{
		Questions: []models.Question{
			{Question: "Order", Kind: models.KindOrdering, Options: []string{"first", "second", "third"}, CorrectOrder: []int{2, 0, 1}},
			{Question: "Match", Kind: models.KindMatching, Pairs: map[string]string{"b": "2", "a": "1"}},
			{Question: "Slide", Kind: models.KindSlider, SliderMin: 0, SliderMax: 10, SliderAnswer: 2.5},
		},
	}
	answers := map[int]models.SubmittedAnswer{
		0: {Order: []int{0, 1, 2}},
		1: {Matches: map[string]string{"a": "1", "b": "2"}},
		2: {Value: floatPtr(2.5)},
	}

	result, err := Grade(quiz, answers)
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}

	if got, want := result.QAPairs[0].CorrectAnswer, "third > first > second"; got != want {
		t.Errorf("ordering CorrectAnswer = %q, want %q", got, want)
	}
	if got, want := result.QAPairs[0].UserAnswer, "first > second > third"; got != want {
		t.Errorf("ordering UserAnswer = %q, want %q", got, want)
	}
	if got, want := result.QAPairs[1].CorrectAnswer, "a = 1, b = 2"; got != want {
		t.Errorf("matching CorrectAnswer = %q, want %q", got, want)
	}
	if got, want := result.QAPairs[2].CorrectAnswer, "2.5"; got != want {
		t.Errorf("slider CorrectAnswer = %q, want %q", got, want)
	}
}
