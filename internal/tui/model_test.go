package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/digicafe/internal/ambient"
	"github.com/existflow/digicafe/internal/chat"
	"github.com/existflow/digicafe/internal/genai"
	"github.com/existflow/digicafe/internal/match"
	"github.com/existflow/digicafe/internal/model"
	"github.com/existflow/digicafe/internal/quiz"
	"github.com/existflow/digicafe/internal/timer"
)

// inOrder leaves the deck unshuffled so card i pairs with card i+8
type inOrder struct{}

func (inOrder) Shuffle(int, func(i, j int)) {}

func press(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, gen genai.Generator) Model {
	t.Helper()
	m := NewModel(context.Background(), Deps{
		Generator: gen,
		Shuffler:  inOrder{},
		Pacing:    match.Pacing{Match: time.Millisecond, Mismatch: time.Millisecond},
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	t.Cleanup(next.(Model).shutdown)
	return next.(Model)
}

func send(m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

// collect runs cmd and flattens batches, returning the messages of type T
func collect[T any](cmd tea.Cmd) []T {
	if cmd == nil {
		return nil
	}
	var out []T
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			out = append(out, collect[T](c)...)
		}
	case T:
		out = append(out, msg)
	}
	return out
}

func sampleQuiz() *model.Quiz {
	return &model.Quiz{
		Title: "Owls",
		Questions: []model.Question{
			{Question: "Can owls rotate their heads 270 degrees?", Options: []string{"Yes", "No", "Only at night", "Only babies"}, CorrectAnswer: 0, Explanation: "Extra neck vertebrae."},
			{Question: "What is a group of owls called?", Options: []string{"A flock", "A parliament", "A court", "A choir"}, CorrectAnswer: 1, Explanation: "A parliament."},
		},
	}
}

func TestTimerStartTickAndStaleTicks(t *testing.T) {
	m := newTestModel(t, nil)
	require.Equal(t, PaneTimer, m.pane)

	m, cmd := send(m, press(" "))
	require.NotNil(t, cmd)
	assert.True(t, m.timer.Running())
	gen := m.timer.Generation()

	m, cmd = send(m, timerTickMsg{gen: gen})
	assert.Equal(t, timer.ModeFocus.Seconds()-1, m.timer.Remaining())
	assert.NotNil(t, cmd, "next tick is scheduled")

	// Pause, then a tick from the old run arrives.
	m, _ = send(m, press("s"))
	assert.False(t, m.timer.Running())
	m, cmd = send(m, timerTickMsg{gen: gen})
	assert.Nil(t, cmd)
	assert.Equal(t, timer.ModeFocus.Seconds()-1, m.timer.Remaining())

	m, _ = send(m, press("b"))
	assert.Equal(t, timer.ModeShortBreak, m.timer.Mode())
	assert.Equal(t, 300, m.timer.Remaining())
}

func TestTimerCompletes(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = send(m, press("b"), press(" "))

	for i := 0; i < 300; i++ {
		m, _ = send(m, timerTickMsg{gen: m.timer.Generation()})
	}
	assert.Equal(t, 0, m.timer.Remaining())
	assert.False(t, m.timer.Running())
	assert.Equal(t, "00:00", m.timer.Format())

	// Start at zero is a no-op.
	m, cmd := send(m, press(" "))
	assert.Nil(t, cmd)
	assert.False(t, m.timer.Running())
}

func TestChatRoundTrip(t *testing.T) {
	var gotHistory []model.Message
	gen := genai.Stub{ChatFunc: func(_ context.Context, history []model.Message, msg string) (string, error) {
		gotHistory = history
		return "Try the Pomodoro method, " + msg, nil
	}}
	m := newTestModel(t, gen)

	m, _ = send(m, press("tab"))
	require.Equal(t, PaneChat, m.pane)
	require.True(t, m.typing())

	m, cmd := send(m, press("h"), press("i"))
	assert.Equal(t, "hi", m.chatInput.Value())

	m, cmd = send(m, press("enter"))
	assert.True(t, m.conv.Pending())
	assert.Empty(t, m.chatInput.Value())

	replies := collect[chatReplyMsg](cmd)
	require.Len(t, replies, 1)
	require.Len(t, gotHistory, 1)
	assert.Equal(t, chat.Welcome, gotHistory[0].Text)

	m, _ = send(m, replies[0])
	msgs := m.conv.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, model.SpeakerUser, msgs[1].Speaker)
	assert.Equal(t, "Try the Pomodoro method, hi", msgs[2].Text)
	assert.False(t, m.conv.Pending())
}

func TestChatFailureShowsFallback(t *testing.T) {
	m := newTestModel(t, genai.Stub{})
	m, _ = send(m, press("tab"))
	m.chatInput.SetValue("help")

	m, cmd := send(m, press("enter"))
	m, _ = send(m, collect[chatReplyMsg](cmd)[0])

	msgs := m.conv.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "help", msgs[1].Text)
	assert.Equal(t, chat.Fallback, msgs[2].Text)
}

func TestGlobalKeysAreTextWhileTyping(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = send(m, press("tab"), press("q"), press("1"))

	assert.Equal(t, "q1", m.chatInput.Value())
	assert.False(t, m.mixer.Playing(model.SoundRain))

	m, _ = send(m, press("esc"), press("1"))
	assert.True(t, m.mixer.Playing(model.SoundRain))
	m, _ = send(m, press("1"))
	assert.False(t, m.mixer.Playing(model.SoundRain))
}

func TestQuizFlow(t *testing.T) {
	gen := genai.Stub{QuizFunc: func(_ context.Context, topic string) (*model.Quiz, error) {
		assert.Equal(t, "owls", topic)
		return sampleQuiz(), nil
	}}
	m := newTestModel(t, gen)
	m, _ = send(m, press("tab"), press("tab"))
	require.Equal(t, PaneQuiz, m.pane)
	m.topicInput.SetValue("  owls ")

	m, cmd := send(m, press("enter"))
	assert.True(t, m.quizLoading)
	ready := collect[quizReadyMsg](cmd)
	require.Len(t, ready, 1)

	m, _ = send(m, ready[0])
	require.NotNil(t, m.quiz)
	assert.False(t, m.quizLoading)

	// Next before answering does nothing.
	m, _ = send(m, press("enter"))
	assert.Equal(t, 0, m.quiz.Index())

	m, _ = send(m, press("a"), press("b"), press("enter"))
	assert.Equal(t, 1, m.quiz.Score(), "only the first answer counts")
	assert.Equal(t, 1, m.quiz.Index())

	m, _ = send(m, press("b"), press("enter"))
	require.True(t, m.quiz.Finished())
	assert.Equal(t, 2, m.quiz.Score())
	assert.Contains(t, m.View(), "2 / 2")

	m, _ = send(m, press("enter"))
	assert.Nil(t, m.quiz)
	assert.True(t, m.typing())
}

func TestQuizFailureShowsNotice(t *testing.T) {
	gen := genai.Stub{QuizFunc: func(context.Context, string) (*model.Quiz, error) {
		return nil, errors.Join(genai.ErrMalformedResponse, errors.New("bad json"))
	}}
	m := newTestModel(t, gen)
	m, _ = send(m, press("tab"), press("tab"))
	m.topicInput.SetValue("owls")

	m, cmd := send(m, press("enter"))
	m, _ = send(m, collect[quizReadyMsg](cmd)[0])

	assert.Nil(t, m.quiz)
	assert.Equal(t, quiz.ErrorNotice, m.quizNotice)
	assert.Contains(t, m.View(), quiz.ErrorNotice)

	m, _ = send(m, press("x"))
	assert.Empty(t, m.quizNotice)
}

func TestEmptyTopicIsIgnored(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = send(m, press("tab"), press("tab"))
	m.topicInput.SetValue("   ")

	m, cmd := send(m, press("enter"))
	assert.Nil(t, cmd)
	assert.False(t, m.quizLoading)
}

func TestMatchGameInTUI(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = send(m, press("]"))
	require.Equal(t, AreaZen, m.area)
	require.Equal(t, PaneGame, m.pane)

	// Card 0 and card 8 share a symbol in an unshuffled deck.
	m, _ = send(m, press("enter"), press("j"), press("j"))
	assert.Equal(t, 8, m.cardCursor)

	m, cmd := send(m, press("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, 1, m.board.Moves())
	assert.True(t, m.board.Pending())

	// A third flip while the pair is pending is refused.
	m, _ = send(m, press("l"), press("enter"))
	c, _ := m.board.Card(9)
	assert.False(t, c.Flipped)

	res := collect[resolveMsg](cmd)
	require.Len(t, res, 1)
	m, _ = send(m, res[0])
	assert.Equal(t, 1, m.board.MatchedPairs())
	assert.False(t, m.board.Pending())
}

func TestMatchGameWinAndRestart(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = send(m, press("]"))

	for i := 0; i < 8; i++ {
		first, _ := m.board.Flip(i)
		assert.Nil(t, first)
		res, ok := m.board.Flip(i + 8)
		require.True(t, ok)
		m, _ = send(m, resolveMsg{token: res.Token})
	}
	require.True(t, m.board.Won())
	assert.Contains(t, m.View(), "Well Done!")

	m, _ = send(m, press("enter"))
	assert.False(t, m.board.Won())
	assert.Equal(t, 0, m.board.Moves())
}

func TestStaleResolutionAfterRestart(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = send(m, press("]"))

	m.board.Flip(0)
	res, ok := m.board.Flip(1)
	require.True(t, ok)

	m, _ = send(m, press("r"), resolveMsg{token: res.Token})
	for _, c := range m.board.Cards() {
		assert.False(t, c.Flipped)
	}
}

func TestQuitShutsDown(t *testing.T) {
	player := ambient.NopPlayer{}
	ctx := context.Background()
	mixer := ambient.NewMixer(ctx, player)
	m := NewModel(ctx, Deps{Mixer: mixer, Shuffler: inOrder{}})
	m, _ = send(m, tea.WindowSizeMsg{Width: 120, Height: 40}, press("2"))
	require.True(t, mixer.Playing(model.SoundCafe))

	m, cmd := send(m, press("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, mixer.Active())
	assert.Error(t, m.ctx.Err())
}

func TestHelpModal(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = send(m, press("?"))
	assert.Equal(t, ModeHelp, m.mode)
	view := m.View()
	assert.Contains(t, view, "Keyboard Shortcuts")
	for _, column := range keys.FullHelp() {
		for _, b := range column {
			assert.Contains(t, view, b.Help().Desc)
		}
	}

	m, _ = send(m, press("x"))
	assert.Equal(t, ModeNormal, m.mode)
}

func TestQuestionWrapsToWidth(t *testing.T) {
	long := &model.Quiz{
		Title: "Pastries",
		Questions: []model.Question{{
			Question:      strings.Repeat("Which 🥐 croissant layer 層 is flakiest? ", 6),
			Options:       []string{"Top", "Middle", "Bottom", "All"},
			CorrectAnswer: 3,
			Explanation:   strings.Repeat("Laminated dough 🧈 folds butter in. ", 6),
		}},
	}
	m := newTestModel(t, genai.Stub{QuizFunc: func(context.Context, string) (*model.Quiz, error) {
		return long, nil
	}})
	m, _ = send(m, press("tab"), press("tab"))
	m.topicInput.SetValue("pastries")
	m, cmd := send(m, press("enter"))
	m, _ = send(m, collect[quizReadyMsg](cmd)[0], press("d"))

	const width = 30
	for _, line := range strings.Split(m.renderQuestion(width), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), width, "line %q", line)
	}
}
