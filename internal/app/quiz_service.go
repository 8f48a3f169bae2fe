package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"quiz-api/internal/domain"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// Repository is the durable store for quizzes and questions.
type Repository interface {
	CreateQuiz(ctx context.Context, quiz domain.Quiz) error
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
	ListQuizzes(ctx context.Context, offset, limit int) ([]domain.Quiz, int, error)
	CreateQuestion(ctx context.Context, question domain.Question) error
	ListQuestions(ctx context.Context, quizID string, offset, limit int) ([]domain.Question, int, error)
	QuizQuestions(ctx context.Context, quizID string) ([]domain.Question, error)
}

// QuestionSource supplies the full, unpaginated question set of a quiz for
// grading. A caching layer (Redis or in-process) typically sits here.
type QuestionSource interface {
	QuizQuestions(ctx context.Context, quizID string) ([]domain.Question, error)
}

// questionInvalidator is implemented by caches that can evict a quiz's
// question snapshot after a write.
type questionInvalidator interface {
	Invalidate(ctx context.Context, quizID string) error
}

// QuizService contains the quiz authoring and grading use cases.
type QuizService struct {
	repo      Repository
	questions QuestionSource
	now       func() time.Time
}

func NewQuizService(repo Repository, questions QuestionSource) *QuizService {
	return NewQuizServiceWithClock(repo, questions, time.Now)
}

// NewQuizServiceWithClock is test-only for deterministic timestamps.
func NewQuizServiceWithClock(repo Repository, questions QuestionSource, now func() time.Time) *QuizService {
	return &QuizService{repo: repo, questions: questions, now: now}
}

// CreateQuiz stores a new quiz with a trimmed, non-empty title.
func (s *QuizService) CreateQuiz(ctx context.Context, title string) (domain.Quiz, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Quiz{}, domain.Validationf("quiz title is required")
	}
	quiz := domain.Quiz{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.CreateQuiz(ctx, quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("create quiz: %w", err)
	}
	return quiz, nil
}

// ListQuizzes returns one page of quizzes. Page and limit are clamped to
// sensible defaults rather than rejected.
func (s *QuizService) ListQuizzes(ctx context.Context, page, limit int) (domain.QuizPage, error) {
	page, limit = clampPaging(page, limit)
	quizzes, total, err := s.repo.ListQuizzes(ctx, (page-1)*limit, limit)
	if err != nil {
		return domain.QuizPage{}, fmt.Errorf("list quizzes: %w", err)
	}
	if quizzes == nil {
		quizzes = []domain.Quiz{}
	}
	return domain.QuizPage{
		Quizzes:    quizzes,
		Pagination: paginate(total, page, limit),
	}, nil
}

// AddQuestion validates and stores a new question on an existing quiz.
func (s *QuizService) AddQuestion(ctx context.Context, quizID string, input domain.QuestionInput) (domain.Question, error) {
	if _, err := s.repo.GetQuiz(ctx, quizID); err != nil {
		return domain.Question{}, err
	}
	question, err := ValidateQuestion(input)
	if err != nil {
		return domain.Question{}, err
	}
	question.QuizID = quizID
	question.CreatedAt = s.now().UTC()
	if err := s.repo.CreateQuestion(ctx, question); err != nil {
		return domain.Question{}, fmt.Errorf("create question: %w", err)
	}
	if inv, ok := s.questions.(questionInvalidator); ok {
		if err := inv.Invalidate(ctx, quizID); err != nil {
			log.Printf("invalidate question cache for quiz %s: %v", quizID, err)
		}
	}
	return question, nil
}

// ListQuestions returns one page of a quiz's questions with all correctness
// data stripped. Redaction happens here, before anything leaves the engine.
func (s *QuizService) ListQuestions(ctx context.Context, quizID string, page, limit int) (domain.QuestionPage, error) {
	if _, err := s.repo.GetQuiz(ctx, quizID); err != nil {
		return domain.QuestionPage{}, err
	}
	page, limit = clampPaging(page, limit)
	questions, total, err := s.repo.ListQuestions(ctx, quizID, (page-1)*limit, limit)
	if err != nil {
		return domain.QuestionPage{}, fmt.Errorf("list questions: %w", err)
	}
	public := make([]domain.PublicQuestion, 0, len(questions))
	for _, q := range questions {
		public = append(public, q.Redacted())
	}
	return domain.QuestionPage{
		Questions:  public,
		Pagination: paginate(total, page, limit),
	}, nil
}

// Submit grades a set of answers against every question in the quiz.
// Malformed answers are rejected before any storage read. Each question
// contributes exactly 0 or 1 to the score; unanswered questions count 0.
// An answer whose declared type disagrees with the stored question type is
// graded as incorrect rather than rejected, since the stored types are only
// known after the snapshot is fetched.
func (s *QuizService) Submit(ctx context.Context, quizID string, answers []domain.Answer) (domain.ScoreResult, error) {
	if err := validateAnswers(answers); err != nil {
		return domain.ScoreResult{}, err
	}
	if _, err := s.repo.GetQuiz(ctx, quizID); err != nil {
		return domain.ScoreResult{}, err
	}
	questions, err := s.questions.QuizQuestions(ctx, quizID)
	if err != nil {
		return domain.ScoreResult{}, fmt.Errorf("load questions: %w", err)
	}

	// First answer per question wins; later duplicates are ignored.
	byQuestion := make(map[string]domain.Answer, len(answers))
	for _, a := range answers {
		if _, ok := byQuestion[a.QuestionID]; !ok {
			byQuestion[a.QuestionID] = a
		}
	}

	score := 0
	for _, q := range questions {
		answer, ok := byQuestion[q.ID]
		if !ok || answer.Type != q.Type {
			continue
		}
		if AnswerMatches(q, answer) {
			score++
		}
	}
	return domain.ScoreResult{Score: score, Total: len(questions)}, nil
}

// validateAnswers enforces the per-type shape of each submitted answer so a
// malformed submission fails fast, before questions are fetched.
func validateAnswers(answers []domain.Answer) error {
	if len(answers) == 0 {
		return domain.Validationf("answers must be a non-empty array")
	}
	for _, a := range answers {
		if a.QuestionID == "" {
			return domain.Validationf("each answer must include questionId")
		}
		if !a.Type.Valid() {
			return domain.Validationf("each answer must include a valid type")
		}
		switch a.Type {
		case domain.QuestionSingle, domain.QuestionMultiple:
			if len(a.SelectedOptions) == 0 {
				return domain.Validationf("question %s: selectedOptions must be a non-empty array for type %s", a.QuestionID, a.Type)
			}
		case domain.QuestionText:
			if strings.TrimSpace(a.Answer) == "" {
				return domain.Validationf("question %s: answer must be a non-empty string for type text", a.QuestionID)
			}
		}
	}
	return nil
}

func clampPaging(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

func paginate(total, page, limit int) domain.Pagination {
	return domain.Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}
}
