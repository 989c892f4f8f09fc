package genai

import (
	"fmt"
	"strings"

	"github.com/existflow/digicafe/internal/model"
)

// ValidateQuiz checks a decoded quiz against the contract the quiz view
// relies on. Any violation wraps ErrMalformedResponse.
func ValidateQuiz(q *model.Quiz) error {
	if q == nil {
		return fmt.Errorf("%w: empty quiz", ErrMalformedResponse)
	}
	if strings.TrimSpace(q.Title) == "" {
		return fmt.Errorf("%w: missing title", ErrMalformedResponse)
	}
	if len(q.Questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrMalformedResponse)
	}
	for i, question := range q.Questions {
		if strings.TrimSpace(question.Question) == "" {
			return fmt.Errorf("%w: question %d has no text", ErrMalformedResponse, i+1)
		}
		if len(question.Options) != model.OptionsPerQuestion {
			return fmt.Errorf("%w: question %d has %d options, want %d",
				ErrMalformedResponse, i+1, len(question.Options), model.OptionsPerQuestion)
		}
		for j, opt := range question.Options {
			if strings.TrimSpace(opt) == "" {
				return fmt.Errorf("%w: question %d option %d is empty", ErrMalformedResponse, i+1, j+1)
			}
		}
		if question.CorrectAnswer < 0 || question.CorrectAnswer >= len(question.Options) {
			return fmt.Errorf("%w: question %d answer index %d out of range",
				ErrMalformedResponse, i+1, question.CorrectAnswer)
		}
	}
	return nil
}
