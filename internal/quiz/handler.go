package quiz

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/studyforge/backend/internal/documents"
	"github.com/studyforge/backend/internal/models"
)

const (
	defaultNumQuestions = 5
	maxNumQuestions     = 20
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers quiz endpoints on the protected subrouter.
func (h *Handler) RegisterRoutes(protected *mux.Router) {
	protected.HandleFunc("/quiz/generate", h.GenerateQuiz).Methods("POST")
	protected.HandleFunc("/quiz-attempts/submit", h.SubmitAttempt).Methods("POST")
	protected.HandleFunc("/quiz-attempts/document/{documentID}", h.ListAttempts).Methods("GET")
	protected.HandleFunc("/quiz-attempts/{id}", h.GetAttempt).Methods("GET")
}

func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

func (h *Handler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.GenerateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.DocumentID == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "document_id is required"})
		return
	}

	switch req.Difficulty {
	case "":
		req.Difficulty = models.DifficultyMedium
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
	default:
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "difficulty must be 'easy', 'medium', or 'hard'"})
		return
	}

	if req.NumQuestions <= 0 {
		req.NumQuestions = defaultNumQuestions
	}
	if req.NumQuestions > maxNumQuestions {
		req.NumQuestions = maxNumQuestions
	}

	quiz, err := h.service.GenerateQuiz(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrNotFound):
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Document not found"})
		case errors.Is(err, documents.ErrNotReady):
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Document is not ready for quiz generation"})
		default:
			log.Printf("[handler] GenerateQuiz error: %v", err)
			writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "Quiz generation failed"})
		}
		return
	}

	writeJSON(w, http.StatusOK, quiz)
}

func (h *Handler) SubmitAttempt(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.SubmitAttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.DocumentID == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "document_id is required"})
		return
	}

	resp, err := h.service.SubmitAttempt(r.Context(), userID, req)
	if err != nil {
		var malformed *MalformedContentError
		switch {
		case errors.Is(err, documents.ErrNotFound):
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Document not found"})
		case errors.Is(err, documents.ErrNotReady):
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Document is not ready"})
		case errors.As(err, &malformed):
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: malformed.Error()})
		case errors.Is(err, ErrNoQuestions):
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Quiz has no questions"})
		default:
			log.Printf("[handler] SubmitAttempt error: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to record attempt"})
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	documentID, err := strconv.ParseInt(mux.Vars(r)["documentID"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid document ID"})
		return
	}

	attempts, err := h.service.ListAttempts(userID, documentID)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Document not found"})
			return
		}
		log.Printf("[handler] ListAttempts error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list attempts"})
		return
	}

	writeJSON(w, http.StatusOK, models.AttemptListResponse{Attempts: attempts, Total: len(attempts)})
}

func (h *Handler) GetAttempt(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	attemptID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid attempt ID"})
		return
	}

	attempt, err := h.service.GetAttempt(userID, attemptID)
	if err != nil {
		if errors.Is(err, ErrAttemptNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Attempt not found"})
			return
		}
		log.Printf("[handler] GetAttempt error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get attempt"})
		return
	}

	writeJSON(w, http.StatusOK, attempt)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
