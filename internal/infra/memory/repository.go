package memory

import (
	"context"
	"sync"

	"quiz-api/internal/domain"
)

// Repository is an in-memory implementation of app.Repository, used when no
// Postgres is configured and throughout the unit tests.
type Repository struct {
	mu        sync.RWMutex
	quizzes   map[string]domain.Quiz
	quizOrder []string
	questions map[string][]domain.Question
}

func NewRepository() *Repository {
	return &Repository{
		quizzes:   make(map[string]domain.Quiz),
		questions: make(map[string][]domain.Question),
	}
}

func (r *Repository) CreateQuiz(_ context.Context, quiz domain.Quiz) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.quizzes[quiz.ID]; !ok {
		r.quizOrder = append(r.quizOrder, quiz.ID)
	}
	r.quizzes[quiz.ID] = quiz
	return nil
}

func (r *Repository) GetQuiz(_ context.Context, quizID string) (domain.Quiz, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	quiz, ok := r.quizzes[quizID]
	if !ok {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return quiz, nil
}

func (r *Repository) ListQuizzes(_ context.Context, offset, limit int) ([]domain.Quiz, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := len(r.quizOrder)
	quizzes := make([]domain.Quiz, 0, limit)
	for i := offset; i < total && len(quizzes) < limit; i++ {
		quizzes = append(quizzes, r.quizzes[r.quizOrder[i]])
	}
	return quizzes, total, nil
}

func (r *Repository) CreateQuestion(_ context.Context, question domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.quizzes[question.QuizID]; !ok {
		return domain.ErrQuizNotFound
	}
	r.questions[question.QuizID] = append(r.questions[question.QuizID], question)
	return nil
}

func (r *Repository) ListQuestions(_ context.Context, quizID string, offset, limit int) ([]domain.Question, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := r.questions[quizID]
	total := len(all)
	questions := make([]domain.Question, 0, limit)
	for i := offset; i < total && len(questions) < limit; i++ {
		questions = append(questions, all[i])
	}
	return questions, total, nil
}

func (r *Repository) QuizQuestions(_ context.Context, quizID string) ([]domain.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := r.questions[quizID]
	questions := make([]domain.Question, len(all))
	copy(questions, all)
	return questions, nil
}
