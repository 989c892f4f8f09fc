package tui

import "github.com/charmbracelet/lipgloss"

// Color palette: roasted browns on cream
var (
	Espresso = lipgloss.Color("#2D1B0B")
	Roast    = lipgloss.Color("#8B5E3C")
	Caramel  = lipgloss.Color("#D4A373")
	Amber    = lipgloss.Color("#F4C98B")
	Cream    = lipgloss.Color("#FAF3E8")
	Stone    = lipgloss.Color("#A8A29E")

	Correct = lipgloss.Color("#95E1A3")
	Wrong   = lipgloss.Color("#FF6B6B")

	Primary   = Caramel
	Text      = Cream
	TextMuted = Stone
	Border    = lipgloss.Color("#5C4033")
	Highlight = Amber
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	TaglineStyle = lipgloss.NewStyle().
			Foreground(Roast).
			Padding(0, 1)

	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(1, 2)

	PaneFocusedStyle = PaneStyle.
				BorderForeground(Primary)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Amber)

	TabStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 2)

	TabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Espresso).
			Background(Caramel).
			Padding(0, 2)

	ChipStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1)

	ChipActiveStyle = lipgloss.NewStyle().
			Foreground(Cream).
			Background(Roast).
			Padding(0, 1)

	ClockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Cream).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Roast)

	UserBubbleStyle = lipgloss.NewStyle().
			Foreground(Espresso).
			Background(Amber).
			Padding(0, 1)

	BaristaBubbleStyle = lipgloss.NewStyle().
				Foreground(Cream).
				Padding(0, 1).
				BorderStyle(lipgloss.NormalBorder()).
				BorderLeft(true).
				BorderForeground(Caramel)

	CardDownStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Width(4).
			Align(lipgloss.Center)

	CardUpStyle = CardDownStyle.
			BorderForeground(Amber)

	CardMatchedStyle = CardDownStyle.
				BorderForeground(Correct)

	CorrectStyle = lipgloss.NewStyle().Foreground(Correct).Bold(true)
	WrongStyle   = lipgloss.NewStyle().Foreground(Wrong)

	NoteStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(Amber).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(Caramel).
			PaddingLeft(1)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)
