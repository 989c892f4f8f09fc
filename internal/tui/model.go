package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/existflow/digicafe/internal/ambient"
	"github.com/existflow/digicafe/internal/chat"
	"github.com/existflow/digicafe/internal/genai"
	"github.com/existflow/digicafe/internal/logger"
	"github.com/existflow/digicafe/internal/match"
	"github.com/existflow/digicafe/internal/quiz"
	"github.com/existflow/digicafe/internal/timer"
)

// Area is one of the two tabs on the right
type Area int

const (
	AreaStudy Area = iota // chat and quiz
	AreaZen               // match game
)

// Pane represents which pane is focused
type Pane int

const (
	PaneTimer Pane = iota
	PaneChat
	PaneQuiz
	PaneGame
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeHelp
)

// Deps are the collaborators the UI drives
type Deps struct {
	Generator genai.Generator
	Mixer     *ambient.Mixer
	Shuffler  match.Shuffler
	Pacing    match.Pacing
}

// Model is the main TUI model. Each region owns its own state object.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	gen   genai.Generator
	mixer *ambient.Mixer

	timer *timer.Timer
	conv  *chat.Conversation
	quiz  *quiz.Session
	board *match.Board

	// UI state
	width  int
	height int
	area   Area
	pane   Pane
	mode   Mode

	// Game cursor, 0..15
	cardCursor int

	// Widgets
	chatInput  textinput.Model
	topicInput textinput.Model
	chatView   viewport.Model
	spinner    spinner.Model
	ring       progress.Model
	help       help.Model

	quizLoading bool
	quizNotice  string // blocking notice after a failed brew

	message string
}

// NewModel creates a new TUI model
func NewModel(ctx context.Context, deps Deps) Model {
	logger.Info("Initializing TUI model")

	ctx, cancel := context.WithCancel(ctx)

	ci := textinput.New()
	ci.Placeholder = "Type your question..."
	ci.CharLimit = 1000
	ci.Width = 50

	ti := textinput.New()
	ti.Placeholder = "What topic is on your mind?"
	ti.CharLimit = 120
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = HelpStyle

	mixer := deps.Mixer
	if mixer == nil {
		mixer = ambient.NewMixer(ctx, ambient.NopPlayer{})
	}
	gen := deps.Generator
	if gen == nil {
		gen = genai.Stub{}
	}

	m := Model{
		ctx:        ctx,
		cancel:     cancel,
		gen:        gen,
		mixer:      mixer,
		timer:      timer.New(),
		conv:       chat.New(),
		board:      match.NewBoard(deps.Shuffler, deps.Pacing),
		area:       AreaStudy,
		pane:       PaneTimer,
		chatInput:  ci,
		topicInput: ti,
		chatView:   viewport.New(50, 12),
		spinner:    sp,
		help:       help.New(),
		ring:       progress.New(progress.WithGradient(string(Roast), string(Amber)), progress.WithWidth(30)),
	}
	m.refreshChat()
	return m
}

// panes returns the focus order for the current area
func (m Model) panes() []Pane {
	if m.area == AreaZen {
		return []Pane{PaneTimer, PaneGame}
	}
	return []Pane{PaneTimer, PaneChat, PaneQuiz}
}

// typing reports whether keys go to a text input
func (m Model) typing() bool {
	switch m.pane {
	case PaneChat:
		return m.chatInput.Focused()
	case PaneQuiz:
		return m.quiz == nil && m.topicInput.Focused()
	}
	return false
}

// shutdown releases everything scoped to the program
func (m Model) shutdown() {
	m.board.Close()
	m.mixer.StopAll()
	m.cancel()
	logger.Info("TUI shut down")
}
