package app

import (
	"strings"

	"quiz-api/internal/domain"
)

// AnswerMatches decides correctness for one (question, answer) pair. It is a
// pure function: no storage, no side effects.
//
// Single choice: exactly one selected option, equal to the option flagged
// correct. Multiple choice: the selected set must equal the correct set in
// both directions; extras or omissions count as incorrect. Text: compared
// after trimming leading/trailing whitespace and lowercasing; internal
// whitespace stays significant.
func AnswerMatches(question domain.Question, answer domain.Answer) bool {
	switch question.Type {
	case domain.QuestionSingle:
		if len(answer.SelectedOptions) != 1 {
			return false
		}
		for _, opt := range question.Options {
			if opt.IsCorrect {
				return answer.SelectedOptions[0] == opt.ID
			}
		}
		return false

	case domain.QuestionMultiple:
		correct := make(map[string]struct{}, len(question.Options))
		for _, opt := range question.Options {
			if opt.IsCorrect {
				correct[opt.ID] = struct{}{}
			}
		}
		selected := make(map[string]struct{}, len(answer.SelectedOptions))
		for _, id := range answer.SelectedOptions {
			selected[id] = struct{}{}
		}
		if len(selected) != len(correct) || len(correct) == 0 {
			return false
		}
		for id := range selected {
			if _, ok := correct[id]; !ok {
				return false
			}
		}
		return true

	case domain.QuestionText:
		return foldAnswer(answer.Answer) == foldAnswer(question.CorrectAnswer)
	}
	return false
}

func foldAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
