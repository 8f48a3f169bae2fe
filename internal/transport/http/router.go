package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter assembles the API routes with CORS and rate limiting applied
// globally. The route shapes mirror the public API:
//
//	POST /api/quizzes                    create quiz
//	GET  /api/quizzes                    list quizzes (paginated)
//	POST /api/questions/{quizID}         add question to quiz
//	GET  /api/questions/{quizID}         list quiz questions (redacted)
//	POST /api/questions/{quizID}/submit  submit answers
func NewRouter(h *Handler, limiter Limiter, corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))
	r.Use(RateLimit(limiter))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Quiz API is running"))
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api/quizzes", func(r chi.Router) {
		r.Post("/", h.CreateQuiz)
		r.Get("/", h.ListQuizzes)
	})
	r.Route("/api/questions", func(r chi.Router) {
		r.Post("/{quizID}", h.AddQuestion)
		r.Get("/{quizID}", h.ListQuestions)
		r.Post("/{quizID}/submit", h.SubmitQuiz)
	})

	return r
}
