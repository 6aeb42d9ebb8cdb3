package quiz

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/studyforge/backend/internal/documents"
	"github.com/studyforge/backend/internal/generator"
	"github.com/studyforge/backend/internal/models"
	"github.com/studyforge/backend/internal/progression"
)

type Service struct {
	store     *Store
	docs      *documents.Store
	generator *generator.Generator
	progress  *progression.Service
}

func NewService(store *Store, docs *documents.Store, gen *generator.Generator, progress *progression.Service) *Service {
	return &Service{store: store, docs: docs, generator: gen, progress: progress}
}

// GenerateQuiz produces a fresh quiz for a ready document. The quiz is
// ephemeral: it is returned to the client and never persisted — only the
// attempt graded against it is.
func (s *Service) GenerateQuiz(ctx context.Context, userID int64, req models.GenerateQuizRequest) (*models.Quiz, error) {
	doc, err := s.docs.GetReady(req.DocumentID, userID)
	if err != nil {
		return nil, err
	}

	payload, llmResp, err := s.generator.GenerateQuiz(ctx, doc, req.Title, req.NumQuestions, req.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("quiz generation failed: %w", err)
	}
	if llmResp != nil {
		log.Printf("[quiz] %s generated %d questions for document %d (%d prompt / %d output tokens)",
			s.generator.ModelName(), len(payload.Questions), doc.ID, llmResp.PromptTokens, llmResp.OutputTokens)
	}

	quiz, err := AdaptQuiz(*payload)
	if err != nil {
		return nil, fmt.Errorf("generator returned unusable content: %w", err)
	}

	return quiz, nil
}

// SubmitAttempt grades a submission server-side and records it. The quiz
// travels back with the submission because quizzes are not persisted; it is
// re-validated through the adapter so grading never runs on an unchecked
// shape, and the score is always computed here — a client-supplied score is
// never accepted.
//
// Attempt recording and the mastery XP grant are sequential, independent
// commits: a failed grant never rolls back a recorded attempt.
func (s *Service) SubmitAttempt(ctx context.Context, userID int64, req models.SubmitAttemptRequest) (*models.SubmitAttemptResponse, error) {
	if _, err := s.docs.GetReady(req.DocumentID, userID); err != nil {
		return nil, err
	}

	quiz, err := AdaptQuiz(req.Quiz)
	if err != nil {
		return nil, err
	}

	result, err := Grade(quiz, req.Answers)
	if err != nil {
		return nil, err
	}

	attempt, err := s.store.RecordAttempt(req.DocumentID, userID, result)
	if err != nil {
		return nil, err
	}

	resp := &models.SubmitAttemptResponse{Attempt: *attempt}

	if result.Percentage >= MasteryPercentage {
		profile, err := s.progress.Grant(userID, MasteryXP, "quiz_mastery")
		if err != nil {
			// The attempt is already committed and fully correct on its own;
			// surface the partial outcome instead of failing the submission.
			log.Printf("[quiz] mastery XP grant failed for user %d: %v", userID, err)
		} else {
			resp.Progress = profile
		}
	}

	if err := s.progress.TouchDayStreak(userID); err != nil {
		log.Printf("[quiz] day streak update failed for user %d: %v", userID, err)
	}

	return resp, nil
}

// ListAttempts returns the user's attempts against one document, newest
// first.
func (s *Service) ListAttempts(userID, documentID int64) ([]models.QuizAttempt, error) {
	if _, err := s.docs.GetOwned(documentID, userID); err != nil {
		return nil, err
	}
	return s.store.ListByDocument(documentID, userID)
}

func (s *Service) GetAttempt(userID int64, attemptID uuid.UUID) (*models.QuizAttempt, error) {
	return s.store.GetByID(attemptID, userID)
}
