package domain

import "time"

// QuestionType enumerates the supported question kinds.
type QuestionType string

const (
	QuestionSingle   QuestionType = "single"
	QuestionMultiple QuestionType = "multiple"
	QuestionText     QuestionType = "text"
)

// Valid reports whether t is one of the supported question types.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionSingle, QuestionMultiple, QuestionText:
		return true
	}
	return false
}

// Quiz is a named collection of questions.
type Quiz struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// Option is a candidate choice belonging to a single/multiple-choice question.
type Option struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Question is a single gradable item with a declared type and correctness data.
// Options is empty for text questions; CorrectAnswer is set only for text questions.
type Question struct {
	ID            string       `json:"id"`
	QuizID        string       `json:"quizId"`
	Text          string       `json:"text"`
	Type          QuestionType `json:"type"`
	Options       []Option     `json:"options"`
	CorrectAnswer string       `json:"correctAnswer,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// PublicOption is an option with the correctness flag stripped.
type PublicOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// PublicQuestion is a question safe to hand to quiz takers: no isCorrect
// flags, no correct answer.
type PublicQuestion struct {
	ID      string         `json:"id"`
	QuizID  string         `json:"quizId"`
	Text    string         `json:"text"`
	Type    QuestionType   `json:"type"`
	Options []PublicOption `json:"options"`
}

// Redacted strips the correctness data from q.
func (q Question) Redacted() PublicQuestion {
	options := make([]PublicOption, 0, len(q.Options))
	for _, opt := range q.Options {
		options = append(options, PublicOption{ID: opt.ID, Text: opt.Text})
	}
	return PublicQuestion{
		ID:      q.ID,
		QuizID:  q.QuizID,
		Text:    q.Text,
		Type:    q.Type,
		Options: options,
	}
}

// QuestionInput is the client-supplied shape of a new question, before
// validation assigns identifiers.
type QuestionInput struct {
	Text          string        `json:"text"`
	Type          QuestionType  `json:"type"`
	Options       []OptionInput `json:"options"`
	CorrectAnswer string        `json:"correctAnswer"`
}

// OptionInput is the client-supplied shape of an option.
type OptionInput struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Answer is a client-submitted response to one question. It is transient:
// supplied per submission, never persisted.
type Answer struct {
	QuestionID      string       `json:"questionId"`
	Type            QuestionType `json:"type"`
	SelectedOptions []string     `json:"selectedOptions"`
	Answer          string       `json:"answer"`
}

// ScoreResult is the outcome of grading one submission against a quiz.
type ScoreResult struct {
	Score int `json:"score"`
	Total int `json:"total"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// QuizPage is one page of quizzes.
type QuizPage struct {
	Quizzes    []Quiz     `json:"quizzes"`
	Pagination Pagination `json:"pagination"`
}

// QuestionPage is one page of redacted questions.
type QuestionPage struct {
	Questions  []PublicQuestion `json:"questions"`
	Pagination Pagination       `json:"pagination"`
}
