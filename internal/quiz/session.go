// Package quiz runs a generated quiz one question at a time and keeps score.
package quiz

import (
	"context"
	"errors"
	"strings"

	"github.com/existflow/digicafe/internal/genai"
	"github.com/existflow/digicafe/internal/model"
)

// ErrorNotice is shown when a quiz cannot be brewed
const ErrorNotice = "Error brewing your quiz. Our barista got distracted!"

// ErrEmptyTopic is returned for blank topics
var ErrEmptyTopic = errors.New("topic is empty")

// Session is a play-through of one quiz
type Session struct {
	quiz     *model.Quiz
	index    int
	selected int
	answered bool
	finished bool
	score    int
}

// NewSession validates q and positions on the first question. Invalid
// quizzes are rejected whole.
func NewSession(q *model.Quiz) (*Session, error) {
	if err := genai.ValidateQuiz(q); err != nil {
		return nil, err
	}
	return &Session{quiz: q, selected: -1}, nil
}

// Brew asks gen for a quiz on topic and starts a session. On any failure no
// session is returned.
func Brew(ctx context.Context, gen genai.Generator, topic string) (*Session, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}
	q, err := gen.Quiz(ctx, topic)
	if err != nil {
		return nil, err
	}
	return NewSession(q)
}

// Title returns the quiz title
func (s *Session) Title() string { return s.quiz.Title }

// Quiz returns the underlying quiz
func (s *Session) Quiz() *model.Quiz { return s.quiz }

// Index returns the zero based position of the current question
func (s *Session) Index() int { return s.index }

// Total returns the number of questions
func (s *Session) Total() int { return len(s.quiz.Questions) }

// Current returns the question being asked
func (s *Session) Current() model.Question { return s.quiz.Questions[s.index] }

// Answered reports whether the current question has been answered
func (s *Session) Answered() bool { return s.answered }

// Selected returns the chosen option for the current question, -1 if none
func (s *Session) Selected() int { return s.selected }

// Finished reports whether the results card is showing
func (s *Session) Finished() bool { return s.finished }

// Score returns the number of correct answers so far
func (s *Session) Score() int { return s.score }

// IsLast reports whether the current question is the final one
func (s *Session) IsLast() bool { return s.index+1 == len(s.quiz.Questions) }

// Answer records option i for the current question. Only the first answer
// counts; later calls and out of range options return ok=false.
func (s *Session) Answer(i int) (correct bool, ok bool) {
	if s.finished || s.answered {
		return false, false
	}
	q := s.quiz.Questions[s.index]
	if i < 0 || i >= len(q.Options) {
		return false, false
	}
	s.selected = i
	s.answered = true
	if q.IsCorrect(i) {
		s.score++
		return true, true
	}
	return false, true
}

// Next moves to the following question, or to the results after the last
// one. It does nothing until the current question is answered.
func (s *Session) Next() bool {
	if s.finished || !s.answered {
		return false
	}
	if s.IsLast() {
		s.finished = true
		return true
	}
	s.index++
	s.selected = -1
	s.answered = false
	return true
}

// Ratio returns score over total in [0,1]
func (s *Session) Ratio() float64 {
	return float64(s.score) / float64(len(s.quiz.Questions))
}
