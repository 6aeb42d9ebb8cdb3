package models

// AnswerKind tags the interaction type of a question. Each kind carries its
// own correct-answer shape and its own equality rule during grading.
type AnswerKind string

const (
	KindMultipleChoice AnswerKind = "multiple_choice"
	KindTypeAnswer     AnswerKind = "type_answer"
	KindOrdering       AnswerKind = "ordering"
	KindMatching       AnswerKind = "matching"
	KindSlider         AnswerKind = "slider"
)

var ValidAnswerKinds = map[AnswerKind]bool{
	KindMultipleChoice: true,
	KindTypeAnswer:     true,
	KindOrdering:       true,
	KindMatching:       true,
	KindSlider:         true,
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ── Generator payload (raw, untrusted) ──────────────────

// QuizPayload is the raw shape produced by the content generator. It has not
// been validated; it must pass through quiz.AdaptQuiz before grading.
type QuizPayload struct {
	Title     string            `json:"title"`
	Questions []QuestionPayload `json:"questions"`
}

type QuestionPayload struct {
	Question      string            `json:"question"`
	Kind          string            `json:"kind"`
	Options       []string          `json:"options,omitempty"`
	CorrectAnswer string            `json:"correct_answer,omitempty"`
	CorrectOrder  []int             `json:"correct_order,omitempty"`
	Pairs         map[string]string `json:"pairs,omitempty"`
	SliderMin     *float64          `json:"slider_min,omitempty"`
	SliderMax     *float64          `json:"slider_max,omitempty"`
	SliderAnswer  *float64          `json:"slider_answer,omitempty"`
	Difficulty    string            `json:"difficulty,omitempty"`
	Hint          string            `json:"hint,omitempty"`
}

// ── Normalized quiz (adapter output) ────────────────────

// Quiz is a validated, normalized quiz ready for grading. Question order is
// significant: the index is the key submitted answers are matched on.
type Quiz struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

type Question struct {
	Question      string            `json:"question"`
	Kind          AnswerKind        `json:"kind"`
	Options       []string          `json:"options,omitempty"`
	CorrectAnswer string            `json:"correct_answer,omitempty"`
	CorrectOrder  []int             `json:"correct_order,omitempty"`
	Pairs         map[string]string `json:"pairs,omitempty"`
	SliderMin     float64           `json:"slider_min,omitempty"`
	SliderMax     float64           `json:"slider_max,omitempty"`
	SliderAnswer  float64           `json:"slider_answer,omitempty"`
	Difficulty    Difficulty        `json:"difficulty,omitempty"`
	Hint          string            `json:"hint,omitempty"`
}

// SubmittedAnswer is the tagged variant for one question's answer. Exactly
// one payload field is used, selected by the question's kind.
type SubmittedAnswer struct {
	Choice  string            `json:"choice,omitempty"`
	Order   []int             `json:"order,omitempty"`
	Matches map[string]string `json:"matches,omitempty"`
	Value   *float64          `json:"value,omitempty"`
}

// ── Request Types ───────────────────────────────────────

type GenerateQuizRequest struct {
	DocumentID   int64      `json:"document_id"`
	Title        string     `json:"title"`
	NumQuestions int        `json:"num_questions"`
	Difficulty   Difficulty `json:"difficulty"`
}

type SubmitAttemptRequest struct {
	DocumentID int64                   `json:"document_id"`
	Quiz       QuizPayload             `json:"quiz"`
	Answers    map[int]SubmittedAnswer `json:"answers"`
}
