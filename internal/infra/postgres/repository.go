package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quiz-api/internal/domain"
)

// Repository stores quizzes and questions in Postgres. Option sets are kept
// as JSONB on the question row since options have no lifecycle of their own.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) CreateQuiz(ctx context.Context, quiz domain.Quiz) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO quizzes (id, title, created_at) VALUES ($1, $2, $3)`,
		quiz.ID, quiz.Title, quiz.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert quiz: %w", err)
	}
	return nil
}

func (r *Repository) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	var quiz domain.Quiz
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, created_at FROM quizzes WHERE id=$1`, quizID).
		Scan(&quiz.ID, &quiz.Title, &quiz.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("select quiz: %w", err)
	}
	return quiz, nil
}

func (r *Repository) ListQuizzes(ctx context.Context, offset, limit int) ([]domain.Quiz, int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, created_at FROM quizzes ORDER BY created_at, id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("select quizzes: %w", err)
	}
	defer rows.Close()

	quizzes := make([]domain.Quiz, 0, limit)
	for rows.Next() {
		var quiz domain.Quiz
		if err := rows.Scan(&quiz.ID, &quiz.Title, &quiz.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan quiz: %w", err)
		}
		quizzes = append(quizzes, quiz)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate quizzes: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM quizzes`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count quizzes: %w", err)
	}
	return quizzes, total, nil
}

func (r *Repository) CreateQuestion(ctx context.Context, question domain.Question) error {
	options, err := json.Marshal(question.Options)
	if err != nil {
		return fmt.Errorf("marshal options: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO questions (id, quiz_id, text, qtype, options, correct_answer, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		question.ID, question.QuizID, question.Text, string(question.Type),
		options, question.CorrectAnswer, question.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	return nil
}

func (r *Repository) ListQuestions(ctx context.Context, quizID string, offset, limit int) ([]domain.Question, int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, quiz_id, text, qtype, options, correct_answer, created_at
		 FROM questions WHERE quiz_id=$1 ORDER BY created_at, id LIMIT $2 OFFSET $3`,
		quizID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("select questions: %w", err)
	}
	questions, err := scanQuestions(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions WHERE quiz_id=$1`, quizID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count questions: %w", err)
	}
	return questions, total, nil
}

func (r *Repository) QuizQuestions(ctx context.Context, quizID string) ([]domain.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, quiz_id, text, qtype, options, correct_answer, created_at
		 FROM questions WHERE quiz_id=$1 ORDER BY created_at, id`,
		quizID)
	if err != nil {
		return nil, fmt.Errorf("select questions: %w", err)
	}
	return scanQuestions(rows)
}

func scanQuestions(rows pgx.Rows) ([]domain.Question, error) {
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var (
			question domain.Question
			qtype    string
			options  []byte
		)
		if err := rows.Scan(&question.ID, &question.QuizID, &question.Text, &qtype,
			&options, &question.CorrectAnswer, &question.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		question.Type = domain.QuestionType(qtype)
		if err := json.Unmarshal(options, &question.Options); err != nil {
			return nil, fmt.Errorf("unmarshal options: %w", err)
		}
		questions = append(questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return questions, nil
}
