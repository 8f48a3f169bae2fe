package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"quiz-api/internal/app"
	"quiz-api/internal/domain"
)

// Handler exposes the quiz use cases over JSON/HTTP.
type Handler struct {
	service *app.QuizService
}

func NewHandler(service *app.QuizService) *Handler {
	return &Handler{service: service}
}

type createQuizRequest struct {
	Title string `json:"title"`
}

type submitRequest struct {
	Answers []domain.Answer `json:"answers"`
}

func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	var req createQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	quiz, err := h.service.CreateQuiz(r.Context(), req.Title)
	if err != nil {
		writeServiceError(w, err, "server error while creating quiz")
		return
	}
	respondJSON(w, http.StatusCreated, quiz)
}

func (h *Handler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	page, limit := pagingParams(r)
	result, err := h.service.ListQuizzes(r.Context(), page, limit)
	if err != nil {
		writeServiceError(w, err, "server error while fetching quizzes")
		return
	}
	if len(result.Quizzes) == 0 {
		respondJSON(w, http.StatusNotFound, map[string]string{"message": "no quizzes found"})
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *Handler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "quizID")
	var input domain.QuestionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	question, err := h.service.AddQuestion(r.Context(), quizID, input)
	if err != nil {
		writeServiceError(w, err, "server error while adding question")
		return
	}
	respondJSON(w, http.StatusCreated, question)
}

func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "quizID")
	page, limit := pagingParams(r)
	result, err := h.service.ListQuestions(r.Context(), quizID, page, limit)
	if err != nil {
		writeServiceError(w, err, "server error while fetching quiz questions")
		return
	}
	if len(result.Questions) == 0 {
		respondJSON(w, http.StatusNotFound, map[string]string{"message": "no questions found for this quiz"})
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "quizID")
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := h.service.Submit(r.Context(), quizID, req.Answers)
	if err != nil {
		writeServiceError(w, err, "server error while submitting quiz")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// writeServiceError maps engine errors onto HTTP statuses: validation
// failures carry their reason, not-found and storage failures stay generic.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		respondError(w, http.StatusBadRequest, ve.Reason)
	case errors.Is(err, domain.ErrQuizNotFound):
		respondError(w, http.StatusNotFound, "quiz not found")
	case errors.Is(err, domain.ErrQuestionNotFound):
		respondError(w, http.StatusNotFound, "question not found")
	default:
		log.Printf("request failed: %v", err)
		respondError(w, http.StatusInternalServerError, fallback)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func pagingParams(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}
