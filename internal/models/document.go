package models

import "time"

// Document status values. Quizzes can only be generated from ready documents.
const (
	DocumentProcessing = "processing"
	DocumentReady      = "ready"
	DocumentFailed     = "failed"
)

type Document struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Filename    string    `json:"filename"`
	ContentText string    `json:"-"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateDocumentRequest struct {
	Title       string `json:"title"`
	Filename    string `json:"filename"`
	ContentText string `json:"content_text"`
}

// SetContentRequest supplies extracted text for a document that was created
// without it.
type SetContentRequest struct {
	ContentText string `json:"content_text"`
}

type DocumentListResponse struct {
	Documents []Document `json:"documents"`
	Total     int        `json:"total"`
}
