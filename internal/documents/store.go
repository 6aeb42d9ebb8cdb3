package documents

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/studyforge/backend/internal/models"
)

var (
	// ErrNotFound means the document does not exist or is not owned by the
	// caller. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("document not found")

	// ErrNotReady means the document exists but has no extracted text to
	// generate quizzes from yet.
	ErrNotReady = errors.New("document is not ready")
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Create inserts document metadata. Documents created with extracted text are
// immediately ready; without text they stay in processing until a later
// ingestion pass supplies it.
func (s *Store) Create(userID int64, req models.CreateDocumentRequest) (*models.Document, error) {
	status := models.DocumentProcessing
	if req.ContentText != "" {
		status = models.DocumentReady
	}

	var doc models.Document
	err := s.db.QueryRow(
		`INSERT INTO documents (user_id, title, filename, content_text, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, user_id, title, filename, content_text, status, created_at, updated_at`,
		userID, req.Title, req.Filename, req.ContentText, status,
	).Scan(&doc.ID, &doc.UserID, &doc.Title, &doc.Filename, &doc.ContentText, &doc.Status, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return &doc, nil
}

// GetOwned resolves a document for the given owner.
func (s *Store) GetOwned(documentID, userID int64) (*models.Document, error) {
	var doc models.Document
	err := s.db.QueryRow(
		`SELECT id, user_id, title, filename, content_text, status, created_at, updated_at
		 FROM documents
		 WHERE id = $1 AND user_id = $2`,
		documentID, userID,
	).Scan(&doc.ID, &doc.UserID, &doc.Title, &doc.Filename, &doc.ContentText, &doc.Status, &doc.CreatedAt, &doc.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &doc, nil
}

// GetReady resolves a document that is owned by the user and ready for quiz
// generation and attempt recording.
func (s *Store) GetReady(documentID, userID int64) (*models.Document, error) {
	doc, err := s.GetOwned(documentID, userID)
	if err != nil {
		return nil, err
	}
	if doc.Status != models.DocumentReady {
		return nil, ErrNotReady
	}
	return doc, nil
}

// SetContent supplies extracted text for a processing document and marks it
// ready. Ownership is enforced the same way as reads.
func (s *Store) SetContent(documentID, userID int64, contentText string) (*models.Document, error) {
	var doc models.Document
	err := s.db.QueryRow(
		`UPDATE documents
		 SET content_text = $3, status = $4, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, title, filename, content_text, status, created_at, updated_at`,
		documentID, userID, contentText, models.DocumentReady,
	).Scan(&doc.ID, &doc.UserID, &doc.Title, &doc.Filename, &doc.ContentText, &doc.Status, &doc.CreatedAt, &doc.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("set document content: %w", err)
	}
	return &doc, nil
}

func (s *Store) ListByUser(userID int64) ([]models.Document, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, title, filename, status, created_at, updated_at
		 FROM documents
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := []models.Document{}
	for rows.Next() {
		var doc models.Document
		if err := rows.Scan(&doc.ID, &doc.UserID, &doc.Title, &doc.Filename, &doc.Status, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
