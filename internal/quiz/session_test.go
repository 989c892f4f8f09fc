package quiz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/digicafe/internal/genai"
	"github.com/existflow/digicafe/internal/model"
)

func sampleQuiz() *model.Quiz {
	q := func(text string, answer int) model.Question {
		return model.Question{
			Question:      text,
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: answer,
			Explanation:   "because",
		}
	}
	return &model.Quiz{
		Title:     "Espresso Basics",
		Questions: []model.Question{q("one", 0), q("two", 1), q("three", 2), q("four", 3), q("five", 0)},
	}
}

func TestRoundTripScore(t *testing.T) {
	s, err := NewSession(sampleQuiz())
	require.NoError(t, err)

	picks := []int{0, 0, 2, 1, 0} // three correct
	for i, pick := range picks {
		assert.Equal(t, i, s.Index())
		assert.False(t, s.Next(), "cannot skip unanswered question")
		_, ok := s.Answer(pick)
		require.True(t, ok)
		assert.True(t, s.Answered())
		assert.Equal(t, pick, s.Selected())
		require.True(t, s.Next())
	}

	assert.True(t, s.Finished())
	assert.Equal(t, 3, s.Score())
	assert.Equal(t, 5, s.Total())
	assert.InDelta(t, 0.6, s.Ratio(), 1e-9)
}

func TestAnswerOnlyOnce(t *testing.T) {
	s, err := NewSession(sampleQuiz())
	require.NoError(t, err)

	correct, ok := s.Answer(1)
	assert.True(t, ok)
	assert.False(t, correct)

	_, ok = s.Answer(0)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 1, s.Selected())
}

func TestAnswerOutOfRange(t *testing.T) {
	s, err := NewSession(sampleQuiz())
	require.NoError(t, err)

	_, ok := s.Answer(4)
	assert.False(t, ok)
	_, ok = s.Answer(-1)
	assert.False(t, ok)
	assert.False(t, s.Answered())
}

func TestScoreBounds(t *testing.T) {
	all, _ := NewSession(sampleQuiz())
	none, _ := NewSession(sampleQuiz())
	for !all.Finished() {
		q := all.Current()
		all.Answer(q.CorrectAnswer)
		all.Next()

		wrong := (none.Current().CorrectAnswer + 1) % 4
		none.Answer(wrong)
		none.Next()
	}
	assert.Equal(t, all.Total(), all.Score())
	assert.Equal(t, 0, none.Score())
}

func TestNewSessionRejectsMalformed(t *testing.T) {
	q := sampleQuiz()
	q.Questions[2].CorrectAnswer = 9
	_, err := NewSession(q)
	assert.True(t, errors.Is(err, genai.ErrMalformedResponse))
}

func TestBrew(t *testing.T) {
	gen := genai.Stub{QuizFunc: func(_ context.Context, topic string) (*model.Quiz, error) {
		assert.Equal(t, "espresso", topic)
		return sampleQuiz(), nil
	}}
	s, err := Brew(context.Background(), gen, "  espresso ")
	require.NoError(t, err)
	assert.Equal(t, "Espresso Basics", s.Title())

	_, err = Brew(context.Background(), gen, "   ")
	assert.ErrorIs(t, err, ErrEmptyTopic)

	_, err = Brew(context.Background(), genai.Stub{}, "espresso")
	assert.ErrorIs(t, err, genai.ErrGeneration)

	bad := genai.Stub{QuizFunc: func(context.Context, string) (*model.Quiz, error) {
		return &model.Quiz{Title: "x"}, nil
	}}
	_, err = Brew(context.Background(), bad, "espresso")
	assert.ErrorIs(t, err, genai.ErrMalformedResponse)
}
