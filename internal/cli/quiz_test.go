package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/digicafe/internal/model"
	"github.com/existflow/digicafe/internal/quiz"
)

func twoQuestions(t *testing.T) *quiz.Session {
	t.Helper()
	s, err := quiz.NewSession(&model.Quiz{
		Title: "Coffee",
		Questions: []model.Question{
			{Question: "Where did coffee originate?", Options: []string{"Ethiopia", "Brazil", "Italy", "Japan"}, CorrectAnswer: 0, Explanation: "Legend credits a goat herder in Kaffa."},
			{Question: "What is a ristretto?", Options: []string{"A latte", "A short espresso", "A cold brew", "A tea"}, CorrectAnswer: 1, Explanation: "Less water, same dose."},
		},
	})
	require.NoError(t, err)
	return s
}

func TestPlayQuiz(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("A\nx\nc\n")

	require.NoError(t, playQuiz(twoQuestions(t), in, &out))

	text := out.String()
	assert.Contains(t, text, "Coffee")
	assert.Contains(t, text, "✓ Correct!")
	assert.Contains(t, text, "Please answer a, b, c or d.")
	assert.Contains(t, text, "The answer was b) A short espresso")
	assert.Contains(t, text, "Score Card: 1 / 2")
}

func TestPlayQuizAbandoned(t *testing.T) {
	var out bytes.Buffer
	err := playQuiz(twoQuestions(t), strings.NewReader("a\n"), &out)
	assert.Error(t, err)
	assert.NotContains(t, out.String(), "Score Card")
}

func TestPlayQuizLastLineWithoutNewline(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, playQuiz(twoQuestions(t), strings.NewReader("a\nb"), &out))
	assert.Contains(t, out.String(), "Score Card: 2 / 2")
}
