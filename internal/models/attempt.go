package models

import (
	"time"

	"github.com/google/uuid"
)

// QAPair is the audit record for one graded question. Correct and submitted
// answers are stored in canonical string form so the attempt history reads
// the same regardless of interaction type.
type QAPair struct {
	Question      string     `json:"question"`
	Kind          AnswerKind `json:"kind"`
	Options       []string   `json:"options,omitempty"`
	CorrectAnswer string     `json:"correct_answer"`
	UserAnswer    string     `json:"user_answer"`
	IsCorrect     bool       `json:"is_correct"`
}

// GradeResult is the grader's output for one submission.
type GradeResult struct {
	Score          int      `json:"score"`
	TotalQuestions int      `json:"total_questions"`
	Percentage     int      `json:"percentage"`
	QAPairs        []QAPair `json:"qa_pairs"`
}

// QuizAttempt is one immutable, scored submission against a generated quiz.
// Rows are append-only: retakes insert a new attempt, never overwrite.
type QuizAttempt struct {
	ID             uuid.UUID `json:"id"`
	DocumentID     int64     `json:"document_id"`
	UserID         int64     `json:"user_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     int       `json:"percentage"`
	QAPairs        []QAPair  `json:"qa_pairs"`
	CreatedAt      time.Time `json:"created_at"`
}

type SubmitAttemptResponse struct {
	Attempt  QuizAttempt     `json:"attempt"`
	Progress *UpdatedProfile `json:"progress,omitempty"`
}

type AttemptListResponse struct {
	Attempts []QuizAttempt `json:"attempts"`
	Total    int           `json:"total"`
}
