package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/existflow/digicafe/internal/logger"
	"github.com/existflow/digicafe/internal/match"
	"github.com/existflow/digicafe/internal/model"
	"github.com/existflow/digicafe/internal/quiz"
	"github.com/existflow/digicafe/internal/timer"
)

// timerTickMsg is one second of countdown for run gen
type timerTickMsg struct {
	gen uint64
}

// resolveMsg fires after the pacing delay of a completed pair
type resolveMsg struct {
	token uint64
}

// chatReplyMsg carries the generator's answer
type chatReplyMsg struct {
	reply string
	err   error
}

// quizReadyMsg carries a brewed quiz session or the reason it failed
type quizReadyMsg struct {
	session *quiz.Session
	err     error
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

func tickCmd(gen uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{gen: gen}
	})
}

func resolveCmd(res *match.Resolution) tea.Cmd {
	return tea.Tick(res.Delay, func(time.Time) tea.Msg {
		return resolveMsg{token: res.Token}
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case timerTickMsg:
		// Ticks scheduled before a pause, reset or mode switch are stale.
		if msg.gen != m.timer.Generation() || !m.timer.Running() {
			return m, nil
		}
		if m.timer.Tick() {
			m.message = fmt.Sprintf("%s session complete", m.timer.Mode().Label())
			logger.Info("Timer finished", logger.F("mode", m.timer.Mode().String()))
			return m, nil
		}
		return m, tickCmd(m.timer.Generation())

	case resolveMsg:
		if m.board.Resolve(msg.token) && m.board.Won() {
			m.message = "Well Done! Your mind is refreshed."
			logger.Info("Match game won", logger.F("moves", m.board.Moves()))
		}
		return m, nil

	case chatReplyMsg:
		m.conv.Complete(msg.reply, msg.err)
		m.refreshChat()
		return m, nil

	case quizReadyMsg:
		m.quizLoading = false
		if msg.err != nil {
			// Stay on the topic entry; nothing partial is shown.
			if !errors.Is(msg.err, quiz.ErrEmptyTopic) {
				m.quizNotice = quiz.ErrorNotice
			}
			logger.Warn("Quiz brew failed", logger.F("error", msg.err))
			return m, nil
		}
		m.quiz = msg.session
		m.quizNotice = ""
		m.topicInput.Blur()
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.mode == ModeHelp {
			m.mode = ModeNormal
			return m, nil
		}
		if m.quizNotice != "" && m.pane == PaneQuiz {
			// The notice blocks until acknowledged.
			m.quizNotice = ""
			return m, nil
		}
		if m.typing() {
			return m.updateInput(msg)
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

func (m Model) loading() bool {
	return m.quizLoading || m.conv.Pending()
}

// handleNormalKeys handles key presses outside text inputs
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.shutdown()
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, keys.Tab):
		return m.focusNext()

	case key.Matches(msg, keys.PrevArea):
		return m.switchArea(AreaStudy)

	case key.Matches(msg, keys.NextArea):
		return m.switchArea(AreaZen)

	case key.Matches(msg, keys.Rain):
		m.toggleSound(model.SoundRain)
		return m, nil

	case key.Matches(msg, keys.Cafe):
		m.toggleSound(model.SoundCafe)
		return m, nil

	case key.Matches(msg, keys.Jazz):
		m.toggleSound(model.SoundJazz)
		return m, nil
	}

	switch m.pane {
	case PaneTimer:
		return m.handleTimerKeys(msg)
	case PaneChat:
		if key.Matches(msg, keys.Enter) {
			m.chatInput.Focus()
			return m, textinput.Blink
		}
	case PaneQuiz:
		return m.handleQuizKeys(msg)
	case PaneGame:
		return m.handleGameKeys(msg)
	}
	return m, nil
}

func (m Model) focusNext() (tea.Model, tea.Cmd) {
	order := m.panes()
	next := order[0]
	for i, p := range order {
		if p == m.pane {
			next = order[(i+1)%len(order)]
			break
		}
	}
	return m.focus(next)
}

func (m Model) focus(p Pane) (tea.Model, tea.Cmd) {
	m.pane = p
	m.chatInput.Blur()
	m.topicInput.Blur()
	switch p {
	case PaneChat:
		m.chatInput.Focus()
		return m, textinput.Blink
	case PaneQuiz:
		if m.quiz == nil && !m.quizLoading {
			m.topicInput.Focus()
			return m, textinput.Blink
		}
	}
	return m, nil
}

func (m Model) switchArea(a Area) (tea.Model, tea.Cmd) {
	if m.area == a {
		return m, nil
	}
	m.area = a
	if a == AreaZen {
		return m.focus(PaneGame)
	}
	return m.focus(PaneChat)
}

func (m *Model) toggleSound(id model.SoundID) {
	playing, err := m.mixer.Toggle(id)
	sound, _ := model.LookupSound(id)
	switch {
	case err != nil:
		m.message = err.Error()
	case playing:
		m.message = fmt.Sprintf("%s %s on", sound.Emoji, sound.Label)
	default:
		m.message = fmt.Sprintf("%s off", sound.Label)
	}
}

// updateInput routes keys to whichever text input has focus
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.shutdown()
		return m, tea.Quit

	case key.Matches(msg, keys.Tab):
		return m.focusNext()

	case key.Matches(msg, keys.Escape):
		m.chatInput.Blur()
		m.topicInput.Blur()
		return m, nil

	case key.Matches(msg, keys.Enter):
		if m.pane == PaneChat {
			return m.sendChat()
		}
		return m.brewQuiz()
	}

	var cmd tea.Cmd
	if m.pane == PaneChat {
		m.chatInput, cmd = m.chatInput.Update(msg)
	} else {
		m.topicInput, cmd = m.topicInput.Update(msg)
	}
	return m, cmd
}

func (m Model) sendChat() (tea.Model, tea.Cmd) {
	history, text, ok := m.conv.Begin(m.chatInput.Value())
	if !ok {
		return m, nil
	}
	m.chatInput.SetValue("")
	m.refreshChat()

	ctx, gen := m.ctx, m.gen
	ask := func() tea.Msg {
		reply, err := gen.Chat(ctx, history, text)
		return chatReplyMsg{reply: reply, err: err}
	}
	return m, tea.Batch(ask, m.spinner.Tick)
}

func (m Model) brewQuiz() (tea.Model, tea.Cmd) {
	topic := strings.TrimSpace(m.topicInput.Value())
	if topic == "" || m.quizLoading {
		return m, nil
	}
	m.quizLoading = true
	m.quizNotice = ""
	m.topicInput.Blur()
	logger.Info("Brewing quiz", logger.F("topic", topic))

	ctx, gen := m.ctx, m.gen
	brew := func() tea.Msg {
		s, err := quiz.Brew(ctx, gen, topic)
		return quizReadyMsg{session: s, err: err}
	}
	return m, tea.Batch(brew, m.spinner.Tick)
}

func (m Model) handleTimerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.StartPause):
		if m.timer.Toggle() {
			m.message = "Brewing focus..."
			return m, tickCmd(m.timer.Generation())
		}
		if m.timer.Remaining() == 0 {
			m.message = "Reset the timer to brew again"
		} else {
			m.message = "Paused"
		}

	case key.Matches(msg, keys.Reset):
		m.timer.Reset()
		m.message = "Timer reset"

	case key.Matches(msg, keys.Focus):
		m.timer.SelectMode(timer.ModeFocus)
		m.message = ""

	case key.Matches(msg, keys.ShortBreak):
		m.timer.SelectMode(timer.ModeShortBreak)
		m.message = ""

	case key.Matches(msg, keys.LongBreak):
		m.timer.SelectMode(timer.ModeLongBreak)
		m.message = ""
	}
	return m, nil
}

func (m Model) handleQuizKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.quiz == nil {
		if key.Matches(msg, keys.Enter) && !m.quizLoading {
			m.topicInput.Focus()
			return m, textinput.Blink
		}
		return m, nil
	}

	if m.quiz.Finished() {
		if key.Matches(msg, keys.Enter) {
			// Return to menu
			m.quiz = nil
			m.topicInput.SetValue("")
			m.topicInput.Focus()
			return m, textinput.Blink
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Answer):
		idx := int(msg.String()[0] - 'a')
		if correct, ok := m.quiz.Answer(idx); ok {
			if correct {
				m.message = "Correct!"
			} else {
				m.message = "Not quite"
			}
		}
	case key.Matches(msg, keys.Enter):
		m.quiz.Next()
		if m.quiz.Finished() {
			logger.Info("Quiz finished",
				logger.F("score", m.quiz.Score()),
				logger.F("total", m.quiz.Total()))
		}
	}
	return m, nil
}

func (m Model) handleGameKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	const cols = 4

	if m.board.Won() {
		if key.Matches(msg, keys.Enter) || key.Matches(msg, keys.Restart) {
			m.board.Restart()
			m.cardCursor = 0
			m.message = ""
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Up):
		if m.cardCursor >= cols {
			m.cardCursor -= cols
		}
	case key.Matches(msg, keys.Down):
		if m.cardCursor+cols < match.BoardSize {
			m.cardCursor += cols
		}
	case key.Matches(msg, keys.Left):
		if m.cardCursor%cols > 0 {
			m.cardCursor--
		}
	case key.Matches(msg, keys.Right):
		if m.cardCursor%cols < cols-1 {
			m.cardCursor++
		}
	case key.Matches(msg, keys.Restart):
		m.board.Restart()
		m.message = "Fresh deal"
	case key.Matches(msg, keys.Flip):
		if res, ok := m.board.Flip(m.cardCursor); ok && res != nil {
			return m, resolveCmd(res)
		}
	}
	return m, nil
}

// refreshChat rerenders the conversation into the viewport
func (m *Model) refreshChat() {
	width := m.chatView.Width - 4
	var sb strings.Builder
	for _, msg := range m.conv.Messages() {
		if msg.Speaker == model.SpeakerUser {
			sb.WriteString(UserBubbleStyle.Width(width).Render(msg.Text))
		} else {
			sb.WriteString(HelpStyle.Render("Barista Receipt") + "\n")
			sb.WriteString(BaristaBubbleStyle.Width(width).Render(msg.Text))
		}
		sb.WriteString("\n\n")
	}
	m.chatView.SetContent(sb.String())
	m.chatView.GotoBottom()
}

// resize fits the widgets to the terminal
func (m *Model) resize() {
	right := m.width - leftColumnWidth - 6
	if right < 30 {
		right = 30
	}
	m.chatView.Width = right/2 - 6
	m.chatView.Height = max(6, m.height-18)
	m.chatInput.Width = m.chatView.Width - 4
	m.topicInput.Width = right/2 - 10
	m.help.Width = m.width - 8
	m.refreshChat()
}

