package app_test

import (
	"strings"
	"testing"

	"quiz-api/internal/app"
	"quiz-api/internal/domain"
)

func TestValidateSingleChoice(t *testing.T) {
	question, err := app.ValidateQuestion(domain.QuestionInput{
		Text: "  What is 2 + 2?  ",
		Type: domain.QuestionSingle,
		Options: []domain.OptionInput{
			{Text: "3"},
			{Text: "4", IsCorrect: true},
			{Text: "5"},
		},
	})
	if err != nil {
		t.Fatalf("expected valid question, got %v", err)
	}
	if question.Text != "What is 2 + 2?" {
		t.Fatalf("expected trimmed text, got %q", question.Text)
	}
	if question.ID == "" {
		t.Fatalf("expected question id assigned")
	}
	if len(question.Options) != 3 {
		t.Fatalf("expected 3 options, got %d", len(question.Options))
	}
	for _, opt := range question.Options {
		if opt.ID == "" {
			t.Fatalf("expected option id assigned, got %+v", opt)
		}
	}
}

func TestValidateRejections(t *testing.T) {
	one := domain.OptionInput{Text: "a", IsCorrect: true}
	none := domain.OptionInput{Text: "b"}

	cases := []struct {
		name  string
		input domain.QuestionInput
	}{
		{"blank text", domain.QuestionInput{Type: domain.QuestionSingle, Options: []domain.OptionInput{one}}},
		{"text too long", domain.QuestionInput{Text: strings.Repeat("x", 301), Type: domain.QuestionSingle, Options: []domain.OptionInput{one}}},
		{"unknown type", domain.QuestionInput{Text: "q", Type: "truefalse", Options: []domain.OptionInput{one}}},
		{"single no options", domain.QuestionInput{Text: "q", Type: domain.QuestionSingle}},
		{"single zero correct", domain.QuestionInput{Text: "q", Type: domain.QuestionSingle, Options: []domain.OptionInput{none, none}}},
		{"single two correct", domain.QuestionInput{Text: "q", Type: domain.QuestionSingle, Options: []domain.OptionInput{one, one}}},
		{"multiple no options", domain.QuestionInput{Text: "q", Type: domain.QuestionMultiple}},
		{"multiple zero correct", domain.QuestionInput{Text: "q", Type: domain.QuestionMultiple, Options: []domain.OptionInput{none, none}}},
		{"blank option text", domain.QuestionInput{Text: "q", Type: domain.QuestionSingle, Options: []domain.OptionInput{{Text: "  ", IsCorrect: true}}}},
		{"text missing answer", domain.QuestionInput{Text: "q", Type: domain.QuestionText}},
		{"text blank answer", domain.QuestionInput{Text: "q", Type: domain.QuestionText, CorrectAnswer: "   "}},
		{"text answer too long", domain.QuestionInput{Text: "q", Type: domain.QuestionText, CorrectAnswer: strings.Repeat("x", 301)}},
		{"text with options", domain.QuestionInput{Text: "q", Type: domain.QuestionText, CorrectAnswer: "a", Options: []domain.OptionInput{one}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := app.ValidateQuestion(tc.input); !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestValidateCountsCharactersNotBytes(t *testing.T) {
	// 200 Cyrillic characters are 400 bytes; the limit is on characters.
	long := strings.Repeat("ж", 200)
	question, err := app.ValidateQuestion(domain.QuestionInput{
		Text:          long,
		Type:          domain.QuestionText,
		CorrectAnswer: long,
	})
	if err != nil {
		t.Fatalf("expected 200-character multibyte text to be accepted, got %v", err)
	}
	if question.CorrectAnswer != long {
		t.Fatalf("expected correct answer preserved")
	}

	tooLong := strings.Repeat("ж", 301)
	if _, err := app.ValidateQuestion(domain.QuestionInput{
		Text: tooLong, Type: domain.QuestionText, CorrectAnswer: "a",
	}); !domain.IsValidation(err) {
		t.Fatalf("expected 301-character text to be rejected, got %v", err)
	}
	if _, err := app.ValidateQuestion(domain.QuestionInput{
		Text: "q", Type: domain.QuestionText, CorrectAnswer: tooLong,
	}); !domain.IsValidation(err) {
		t.Fatalf("expected 301-character correct answer to be rejected, got %v", err)
	}
}

func TestValidateTextQuestion(t *testing.T) {
	question, err := app.ValidateQuestion(domain.QuestionInput{
		Text:          "Capital of France?",
		Type:          domain.QuestionText,
		CorrectAnswer: " Paris ",
	})
	if err != nil {
		t.Fatalf("expected valid question, got %v", err)
	}
	if question.CorrectAnswer != "Paris" {
		t.Fatalf("expected trimmed correct answer, got %q", question.CorrectAnswer)
	}
	if len(question.Options) != 0 {
		t.Fatalf("expected no options, got %d", len(question.Options))
	}
}

func TestValidateIsIdempotent(t *testing.T) {
	input := domain.QuestionInput{
		Text: "q",
		Type: domain.QuestionMultiple,
		Options: []domain.OptionInput{
			{Text: "a", IsCorrect: true},
			{Text: "b", IsCorrect: true},
		},
	}
	for i := 0; i < 2; i++ {
		if _, err := app.ValidateQuestion(input); err != nil {
			t.Fatalf("run %d: expected accept, got %v", i, err)
		}
	}
}
