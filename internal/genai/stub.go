package genai

import (
	"context"

	"github.com/existflow/digicafe/internal/model"
)

// Stub is a Generator built from functions. Nil functions fail with
// ErrGeneration. Used by tests and the offline demo mode.
type Stub struct {
	ChatFunc func(ctx context.Context, history []model.Message, message string) (string, error)
	QuizFunc func(ctx context.Context, topic string) (*model.Quiz, error)
}

// Chat calls ChatFunc
func (s Stub) Chat(ctx context.Context, history []model.Message, message string) (string, error) {
	if s.ChatFunc == nil {
		return "", ErrGeneration
	}
	return s.ChatFunc(ctx, history, message)
}

// Quiz calls QuizFunc
func (s Stub) Quiz(ctx context.Context, topic string) (*model.Quiz, error) {
	if s.QuizFunc == nil {
		return nil, ErrGeneration
	}
	return s.QuizFunc(ctx, topic)
}
