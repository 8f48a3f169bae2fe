package app

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"quiz-api/internal/domain"
)

const maxTextLength = 300

// ValidateQuestion checks the per-type invariants of a new question and, when
// they hold, produces a normalized Question ready for storage: trimmed text,
// fresh identifiers for the question and its options. It touches no storage
// and is safe to call repeatedly on the same input.
func ValidateQuestion(input domain.QuestionInput) (domain.Question, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return domain.Question{}, domain.Validationf("question text is required")
	}
	if utf8.RuneCountInString(text) > maxTextLength {
		return domain.Question{}, domain.Validationf("question text cannot exceed %d characters", maxTextLength)
	}
	if !input.Type.Valid() {
		return domain.Question{}, domain.Validationf("question type must be single, multiple, or text")
	}

	if input.Type == domain.QuestionText {
		return validateTextQuestion(input, text)
	}

	if len(input.Options) == 0 {
		return domain.Question{}, domain.Validationf("options are required for single/multiple choice questions")
	}

	correctCount := 0
	options := make([]domain.Option, 0, len(input.Options))
	for _, opt := range input.Options {
		optText := strings.TrimSpace(opt.Text)
		if optText == "" {
			return domain.Question{}, domain.Validationf("option text is required")
		}
		if opt.IsCorrect {
			correctCount++
		}
		options = append(options, domain.Option{
			ID:        uuid.NewString(),
			Text:      optText,
			IsCorrect: opt.IsCorrect,
		})
	}

	switch input.Type {
	case domain.QuestionSingle:
		if correctCount != 1 {
			return domain.Question{}, domain.Validationf("single choice question must have exactly one correct option")
		}
	case domain.QuestionMultiple:
		if correctCount < 1 {
			return domain.Question{}, domain.Validationf("multiple choice question must have at least one correct option")
		}
	}

	return domain.Question{
		ID:      uuid.NewString(),
		Text:    text,
		Type:    input.Type,
		Options: options,
	}, nil
}

func validateTextQuestion(input domain.QuestionInput, text string) (domain.Question, error) {
	correct := strings.TrimSpace(input.CorrectAnswer)
	if correct == "" {
		return domain.Question{}, domain.Validationf("correct answer is required for text-based questions")
	}
	if utf8.RuneCountInString(correct) > maxTextLength {
		return domain.Question{}, domain.Validationf("text-based correct answer cannot exceed %d characters", maxTextLength)
	}
	if len(input.Options) > 0 {
		return domain.Question{}, domain.Validationf("text-based questions should not have options")
	}
	return domain.Question{
		ID:            uuid.NewString(),
		Text:          text,
		Type:          domain.QuestionText,
		Options:       []domain.Option{},
		CorrectAnswer: correct,
	}, nil
}
