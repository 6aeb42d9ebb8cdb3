package quiz

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/studyforge/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// RecordAttempt persists one graded submission as a new immutable row. Every
// call inserts — retakes append to the history, they never merge with or
// overwrite a prior attempt. The insert is a single statement, so a storage
// failure leaves nothing behind.
func (s *Store) RecordAttempt(documentID, userID int64, result *models.GradeResult) (*models.QuizAttempt, error) {
	qaJSON, err := json.Marshal(result.QAPairs)
	if err != nil {
		return nil, fmt.Errorf("marshal qa pairs: %w", err)
	}

	attempt := models.QuizAttempt{
		ID:             uuid.New(),
		DocumentID:     documentID,
		UserID:         userID,
		Score:          result.Score,
		TotalQuestions: result.TotalQuestions,
		Percentage:     result.Percentage,
		QAPairs:        result.QAPairs,
	}

	err = s.db.QueryRow(
		`INSERT INTO quiz_attempts (id, document_id, user_id, score, total_questions, percentage, qa_pairs)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at`,
		attempt.ID, documentID, userID, result.Score, result.TotalQuestions, result.Percentage, qaJSON,
	).Scan(&attempt.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("record attempt: %w", err)
	}

	return &attempt, nil
}

// ListByDocument returns a user's attempts for one document, newest first.
// No attempts is an empty list, not an error.
func (s *Store) ListByDocument(documentID, userID int64) ([]models.QuizAttempt, error) {
	rows, err := s.db.Query(
		`SELECT id, document_id, user_id, score, total_questions, percentage, qa_pairs, created_at
		 FROM quiz_attempts
		 WHERE document_id = $1 AND user_id = $2
		 ORDER BY created_at DESC`,
		documentID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	attempts := []models.QuizAttempt{}
	for rows.Next() {
		attempt, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, *attempt)
	}
	return attempts, rows.Err()
}

// GetByID returns one attempt owned by the user.
func (s *Store) GetByID(attemptID uuid.UUID, userID int64) (*models.QuizAttempt, error) {
	row := s.db.QueryRow(
		`SELECT id, document_id, user_id, score, total_questions, percentage, qa_pairs, created_at
		 FROM quiz_attempts
		 WHERE id = $1 AND user_id = $2`,
		attemptID, userID,
	)

	attempt, err := scanAttempt(row)
	if err == sql.ErrNoRows {
		return nil, ErrAttemptNotFound
	}
	if err != nil {
		return nil, err
	}
	return attempt, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAttempt(row rowScanner) (*models.QuizAttempt, error) {
	var a models.QuizAttempt
	var qaJSON []byte
	err := row.Scan(&a.ID, &a.DocumentID, &a.UserID, &a.Score, &a.TotalQuestions, &a.Percentage, &qaJSON, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan attempt: %w", err)
	}
	if err := json.Unmarshal(qaJSON, &a.QAPairs); err != nil {
		return nil, fmt.Errorf("unmarshal qa pairs: %w", err)
	}
	return &a, nil
}
