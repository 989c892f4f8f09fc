// Package genai talks to the remote text generation service that backs the
// barista chat and the quiz generator.
package genai

import (
	"context"
	"errors"

	"github.com/existflow/digicafe/internal/model"
)

var (
	// ErrGeneration means the remote call did not complete
	ErrGeneration = errors.New("generation failed")
	// ErrMalformedResponse means the call completed but broke the contract
	ErrMalformedResponse = errors.New("malformed response")
)

// Generator produces chat replies and quizzes
type Generator interface {
	Chat(ctx context.Context, history []model.Message, message string) (string, error)
	Quiz(ctx context.Context, topic string) (*model.Quiz, error)
}

// BaristaInstruction is the persona sent with every chat request
const BaristaInstruction = "You are a helpful, encouraging cafe barista AI named 'Digi Barista'. " +
	"Your goal is to help students and workers stay focused, answer their questions clearly, " +
	"and keep the tone warm, professional, and cozy."
