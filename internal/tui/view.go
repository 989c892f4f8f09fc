package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/existflow/digicafe/internal/match"
	"github.com/existflow/digicafe/internal/model"
	"github.com/existflow/digicafe/internal/timer"
)

const leftColumnWidth = 40

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.mode == ModeHelp {
		return lipgloss.JoinVertical(lipgloss.Left, m.renderHelp(), m.renderStatusBar())
	}

	header := m.renderHeader()
	left := m.renderTimer()

	var right string
	tabs := m.renderTabs()
	if m.area == AreaZen {
		right = lipgloss.JoinVertical(lipgloss.Left, tabs, m.renderGame())
	} else {
		panes := lipgloss.JoinHorizontal(lipgloss.Top, m.renderChat(), m.renderQuiz())
		right = lipgloss.JoinVertical(lipgloss.Left, tabs, panes)
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	if m.quizNotice != "" && m.pane == PaneQuiz {
		modal := ModalStyle.Render(
			WrongStyle.Render(m.quizNotice) + "\n\n" + HelpStyle.Render("press any key"))
		main = lipgloss.Place(m.width, lipgloss.Height(main),
			lipgloss.Center, lipgloss.Center, modal,
			lipgloss.WithWhitespaceChars(" "))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, main, m.renderStatusBar())
}

func (m Model) paneStyle(p Pane) lipgloss.Style {
	if m.pane == p {
		return PaneFocusedStyle
	}
	return PaneStyle
}

func (m Model) renderHeader() string {
	title := HeaderStyle.Render("☕ Digi Cafe")
	tagline := TaglineStyle.Render("Brew focus, sip knowledge")

	var chips []string
	for i, s := range model.Sounds {
		label := fmt.Sprintf("%d %s %s", i+1, s.Emoji, s.Label)
		if m.mixer.Playing(s.ID) {
			chips = append(chips, ChipActiveStyle.Render(label))
		} else {
			chips = append(chips, ChipStyle.Render(label))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		title, tagline, "  ", strings.Join(chips, " "))
}

func (m Model) renderTimer() string {
	var s strings.Builder

	var tabs []string
	for _, mode := range timer.Modes {
		if mode == m.timer.Mode() {
			tabs = append(tabs, TabActiveStyle.Render(mode.Label()))
		} else {
			tabs = append(tabs, TabStyle.Render(mode.Label()))
		}
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n\n")

	s.WriteString(ClockStyle.Render(m.timer.Format()) + "\n\n")
	s.WriteString(m.ring.ViewAs(m.timer.Progress()) + "\n\n")

	switch {
	case m.timer.Running():
		s.WriteString(TitleStyle.Render("Brewing focus...") + "\n")
	case m.timer.Remaining() == 0:
		s.WriteString(CorrectStyle.Render("Session complete") + "\n")
	default:
		s.WriteString(HelpStyle.Render("Paused") + "\n")
	}
	s.WriteString(HelpStyle.Render("space start/pause · r reset\nf focus · b short · B long"))

	return m.paneStyle(PaneTimer).Width(leftColumnWidth).Render(s.String())
}

func (m Model) renderTabs() string {
	study, zen := TabStyle, TabStyle
	if m.area == AreaStudy {
		study = TabActiveStyle
	} else {
		zen = TabActiveStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		study.Render("Study Lounge"), " ", zen.Render("Zen Garden"))
}

func (m Model) rightWidth() int {
	return max(30, m.width-leftColumnWidth-6)
}

func (m Model) renderChat() string {
	var s strings.Builder
	s.WriteString(TitleStyle.Render("Barista Chat") + "\n\n")
	s.WriteString(m.chatView.View() + "\n")

	if m.conv.Pending() {
		s.WriteString(m.spinner.View() + " " + HelpStyle.Render("Brewing response...") + "\n")
	} else {
		s.WriteString("\n")
	}
	s.WriteString(m.chatInput.View())

	return m.paneStyle(PaneChat).Width(m.rightWidth() / 2).Render(s.String())
}

func (m Model) renderQuiz() string {
	width := m.rightWidth() / 2
	var s strings.Builder

	switch {
	case m.quizLoading:
		s.WriteString(TitleStyle.Render("Quiz Menu") + "\n\n")
		s.WriteString(m.spinner.View() + " " + HelpStyle.Render("Brewing your quiz..."))

	case m.quiz == nil:
		s.WriteString(TitleStyle.Render("Quiz Menu") + "\n\n")
		s.WriteString("Pick a topic and the barista\nwill brew a quiz for you.\n\n")
		s.WriteString(m.topicInput.View() + "\n\n")
		s.WriteString(HelpStyle.Render("enter brew"))

	case m.quiz.Finished():
		s.WriteString(TitleStyle.Render("Score Card") + "\n\n")
		s.WriteString(ClockStyle.Render(fmt.Sprintf("%d / %d", m.quiz.Score(), m.quiz.Total())) + "\n\n")
		s.WriteString(m.ring.ViewAs(m.quiz.Ratio()) + "\n\n")
		s.WriteString(HelpStyle.Render("enter back to menu"))

	default:
		s.WriteString(m.renderQuestion(width - 6))
	}

	return m.paneStyle(PaneQuiz).Width(width).Render(s.String())
}

func (m Model) renderQuestion(width int) string {
	var s strings.Builder
	q := m.quiz.Current()

	s.WriteString(TitleStyle.Render(truncate(m.quiz.Title(), width)) + "\n")
	s.WriteString(HelpStyle.Render(fmt.Sprintf("Question %d of %d", m.quiz.Index()+1, m.quiz.Total())) + "\n\n")
	s.WriteString(lipgloss.NewStyle().Width(width).Render(q.Question) + "\n\n")

	for i, opt := range q.Options {
		line := fmt.Sprintf("%c) %s", 'A'+i, opt)
		switch {
		case !m.quiz.Answered():
			s.WriteString(line)
		case i == q.CorrectAnswer:
			s.WriteString(CorrectStyle.Render(line + " ✓"))
		case i == m.quiz.Selected():
			s.WriteString(WrongStyle.Render(line + " ✗"))
		default:
			s.WriteString(HelpStyle.Render(line))
		}
		s.WriteString("\n")
	}

	if m.quiz.Answered() {
		s.WriteString("\n" + NoteStyle.Width(width-1).Render("Barista Note\n"+q.Explanation) + "\n\n")
		if m.quiz.IsLast() {
			s.WriteString(HelpStyle.Render("enter see results"))
		} else {
			s.WriteString(HelpStyle.Render("enter next question"))
		}
	} else {
		s.WriteString("\n" + HelpStyle.Render("a-d answer"))
	}
	return s.String()
}

func (m Model) renderGame() string {
	const cols = 4
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Zen Match") + "  ")
	s.WriteString(HelpStyle.Render(fmt.Sprintf("Moves: %d · Pairs: %d/%d",
		m.board.Moves(), m.board.MatchedPairs(), len(match.Symbols))) + "\n\n")

	if m.board.Won() {
		s.WriteString(CorrectStyle.Render("Well Done!") + "\n")
		s.WriteString(fmt.Sprintf("You cleared the board in %d moves.\n\n", m.board.Moves()))
		s.WriteString(HelpStyle.Render("enter play again"))
		return m.paneStyle(PaneGame).Width(m.rightWidth()).Render(s.String())
	}

	cards := m.board.Cards()
	for row := 0; row < match.BoardSize/cols; row++ {
		var cells []string
		for col := 0; col < cols; col++ {
			i := row*cols + col
			cells = append(cells, m.renderCard(cards[i], i == m.cardCursor && m.pane == PaneGame))
		}
		s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...) + "\n")
	}

	s.WriteString("\n" + m.renderBreathing() + "\n")
	s.WriteString(HelpStyle.Render("arrows move · enter flip · r new deal"))

	return m.paneStyle(PaneGame).Width(m.rightWidth()).Render(s.String())
}

func (m Model) renderCard(c match.Card, selected bool) string {
	face := "?"
	style := CardDownStyle
	switch {
	case c.Matched:
		face, style = c.Symbol, CardMatchedStyle
	case c.Flipped:
		face, style = c.Symbol, CardUpStyle
	}
	if selected {
		style = style.BorderForeground(Highlight).Bold(true)
	}
	return style.Render(face)
}

// renderBreathing paces a four second in, four second out cycle off the clock
func (m Model) renderBreathing() string {
	cue := "Breathe in..."
	if m.timer.Remaining()%8 >= 4 {
		cue = "Breathe out..."
	}
	return NoteStyle.Render(cue)
}

func (m Model) renderStatusBar() string {
	status := m.help.ShortHelpView(keys.ShortHelp())
	if m.message != "" {
		status = m.message + " · " + status
	}
	return StatusBarStyle.Width(m.width).Render(status)
}

func (m Model) renderHelp() string {
	var s strings.Builder
	s.WriteString(TitleStyle.Render("Keyboard Shortcuts") + "\n\n")
	s.WriteString(m.help.FullHelpView(keys.FullHelp()) + "\n\n")
	s.WriteString(HelpStyle.Render("press any key to close"))

	return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center,
		ModalStyle.Render(s.String()))
}
