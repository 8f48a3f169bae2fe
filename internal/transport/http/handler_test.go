package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quiz-api/internal/app"
	"quiz-api/internal/domain"
	"quiz-api/internal/infra/memory"
	transport "quiz-api/internal/transport/http"
)

func newTestRouter(t *testing.T, limiter transport.Limiter) nethttp.Handler {
	t.Helper()
	repo := memory.NewRepository()
	service := app.NewQuizService(repo, memory.NewQuestionCache(repo, 5*time.Minute))
	if limiter == nil {
		limiter = memory.NewRateLimiter(1000, 100000)
	}
	return transport.NewRouter(transport.NewHandler(service), limiter, []string{"*"})
}

func doJSON(t *testing.T, router nethttp.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestQuizFlowEndToEnd(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, nethttp.MethodPost, "/api/quizzes", map[string]string{"title": "Trivia"})
	if rec.Code != nethttp.StatusCreated {
		t.Fatalf("create quiz: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	quiz := decodeBody[domain.Quiz](t, rec)

	single := decodeBody[domain.Question](t, mustCreate(t, router, quiz.ID, domain.QuestionInput{
		Text: "What is 2 + 2?",
		Type: domain.QuestionSingle,
		Options: []domain.OptionInput{
			{Text: "3"}, {Text: "4", IsCorrect: true}, {Text: "5"},
		},
	}))
	multiple := decodeBody[domain.Question](t, mustCreate(t, router, quiz.ID, domain.QuestionInput{
		Text: "Which are even?",
		Type: domain.QuestionMultiple,
		Options: []domain.OptionInput{
			{Text: "2", IsCorrect: true}, {Text: "3"}, {Text: "4", IsCorrect: true},
		},
	}))
	text := decodeBody[domain.Question](t, mustCreate(t, router, quiz.ID, domain.QuestionInput{
		Text:          "Capital of France?",
		Type:          domain.QuestionText,
		CorrectAnswer: "Paris",
	}))

	answers := []domain.Answer{
		{QuestionID: single.ID, Type: domain.QuestionSingle, SelectedOptions: correctIDs(single)},
		{QuestionID: multiple.ID, Type: domain.QuestionMultiple, SelectedOptions: correctIDs(multiple)},
		{QuestionID: text.ID, Type: domain.QuestionText, Answer: "paris"},
	}
	rec = doJSON(t, router, nethttp.MethodPost, "/api/questions/"+quiz.ID+"/submit", map[string]any{"answers": answers})
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("submit: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := decodeBody[domain.ScoreResult](t, rec)
	if result.Score != 3 || result.Total != 3 {
		t.Fatalf("expected 3/3, got %d/%d", result.Score, result.Total)
	}
}

func TestListQuestionsRedactsAnswers(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, nethttp.MethodPost, "/api/quizzes", map[string]string{"title": "Trivia"})
	quiz := decodeBody[domain.Quiz](t, rec)

	mustCreate(t, router, quiz.ID, domain.QuestionInput{
		Text: "What is 2 + 2?",
		Type: domain.QuestionSingle,
		Options: []domain.OptionInput{
			{Text: "3"}, {Text: "4", IsCorrect: true},
		},
	})
	mustCreate(t, router, quiz.ID, domain.QuestionInput{
		Text:          "Capital of France?",
		Type:          domain.QuestionText,
		CorrectAnswer: "Paris",
	})

	rec = doJSON(t, router, nethttp.MethodGet, "/api/questions/"+quiz.ID+"?page=1&limit=10", nil)
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("list questions: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody[map[string]any](t, rec)
	questions, ok := body["questions"].([]any)
	if !ok || len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %v", body["questions"])
	}
	for _, raw := range questions {
		q := raw.(map[string]any)
		if _, leaked := q["correctAnswer"]; leaked {
			t.Fatalf("correctAnswer leaked in listing: %v", q)
		}
		if options, ok := q["options"].([]any); ok {
			for _, rawOpt := range options {
				opt := rawOpt.(map[string]any)
				if _, leaked := opt["isCorrect"]; leaked {
					t.Fatalf("isCorrect leaked in listing: %v", opt)
				}
			}
		}
	}
}

func TestValidationAndNotFoundStatuses(t *testing.T) {
	router := newTestRouter(t, nil)

	// blank title
	if rec := doJSON(t, router, nethttp.MethodPost, "/api/quizzes", map[string]string{"title": "  "}); rec.Code != nethttp.StatusBadRequest {
		t.Fatalf("blank title: expected 400, got %d", rec.Code)
	}
	// nothing created yet
	if rec := doJSON(t, router, nethttp.MethodGet, "/api/quizzes", nil); rec.Code != nethttp.StatusNotFound {
		t.Fatalf("empty listing: expected 404, got %d", rec.Code)
	}
	// question on a quiz that does not exist
	rec := doJSON(t, router, nethttp.MethodPost, "/api/questions/missing", domain.QuestionInput{
		Text: "q", Type: domain.QuestionText, CorrectAnswer: "a",
	})
	if rec.Code != nethttp.StatusNotFound {
		t.Fatalf("unknown quiz: expected 404, got %d", rec.Code)
	}
	// submission against a quiz that does not exist
	rec = doJSON(t, router, nethttp.MethodPost, "/api/questions/missing/submit", map[string]any{
		"answers": []domain.Answer{{QuestionID: "q", Type: domain.QuestionText, Answer: "a"}},
	})
	if rec.Code != nethttp.StatusNotFound {
		t.Fatalf("submit unknown quiz: expected 404, got %d", rec.Code)
	}

	quiz := decodeBody[domain.Quiz](t, doJSON(t, router, nethttp.MethodPost, "/api/quizzes", map[string]string{"title": "Trivia"}))

	// invalid question shape
	rec = doJSON(t, router, nethttp.MethodPost, "/api/questions/"+quiz.ID, domain.QuestionInput{
		Text: "q",
		Type: domain.QuestionSingle,
		Options: []domain.OptionInput{
			{Text: "a", IsCorrect: true}, {Text: "b", IsCorrect: true},
		},
	})
	if rec.Code != nethttp.StatusBadRequest {
		t.Fatalf("two correct options: expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	// empty answers are rejected, never scored as 0
	rec = doJSON(t, router, nethttp.MethodPost, "/api/questions/"+quiz.ID+"/submit", map[string]any{"answers": []domain.Answer{}})
	if rec.Code != nethttp.StatusBadRequest {
		t.Fatalf("empty answers: expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	// malformed body
	req := httptest.NewRequest(nethttp.MethodPost, "/api/quizzes", bytes.NewBufferString("{"))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	if res.Code != nethttp.StatusBadRequest {
		t.Fatalf("malformed body: expected 400, got %d", res.Code)
	}
}

func TestRateLimitRejectsBursts(t *testing.T) {
	router := newTestRouter(t, memory.NewRateLimiter(1, 1))

	if rec := doJSON(t, router, nethttp.MethodGet, "/healthz", nil); rec.Code != nethttp.StatusOK {
		t.Fatalf("first request: expected 200, got %d", rec.Code)
	}
	if rec := doJSON(t, router, nethttp.MethodGet, "/healthz", nil); rec.Code != nethttp.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", rec.Code)
	}
}

func mustCreate(t *testing.T, router nethttp.Handler, quizID string, input domain.QuestionInput) *httptest.ResponseRecorder {
	t.Helper()
	rec := doJSON(t, router, nethttp.MethodPost, fmt.Sprintf("/api/questions/%s", quizID), input)
	if rec.Code != nethttp.StatusCreated {
		t.Fatalf("add question: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	return rec
}

func correctIDs(q domain.Question) []string {
	var ids []string
	for _, opt := range q.Options {
		if opt.IsCorrect {
			ids = append(ids, opt.ID)
		}
	}
	return ids
}
