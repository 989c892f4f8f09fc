package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Tab      key.Binding
	Enter    key.Binding
	Escape   key.Binding
	Help     key.Binding
	Quit     key.Binding
	PrevArea key.Binding
	NextArea key.Binding

	// Ambient
	Rain key.Binding
	Cafe key.Binding
	Jazz key.Binding

	// Timer
	StartPause key.Binding
	Reset      key.Binding
	Focus      key.Binding
	ShortBreak key.Binding
	LongBreak  key.Binding

	// Quiz
	Answer key.Binding

	// Game
	Flip    key.Binding
	Restart key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Escape:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave input")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	PrevArea: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "study lounge")),
	NextArea: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "zen garden")),

	Rain: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "rain")),
	Cafe: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "coffee shop")),
	Jazz: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "jazz")),

	StartPause: key.NewBinding(key.WithKeys(" ", "s"), key.WithHelp("space/s", "start/pause")),
	Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Focus:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "focus")),
	ShortBreak: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "short break")),
	LongBreak:  key.NewBinding(key.WithKeys("B"), key.WithHelp("B", "long break")),

	Answer: key.NewBinding(key.WithKeys("a", "b", "c", "d"), key.WithHelp("a-d", "answer")),

	Flip:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter/space", "flip")),
	Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "new deal")),
}

// ShortHelp returns the bindings shown in the status bar
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.PrevArea, k.NextArea, k.Help, k.Quit}
}

// FullHelp returns the help modal columns: general, timer, quiz, game
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.PrevArea, k.NextArea, k.Rain, k.Cafe, k.Jazz, k.Escape, k.Help, k.Quit},
		{k.StartPause, k.Reset, k.Focus, k.ShortBreak, k.LongBreak},
		{k.Enter, k.Answer},
		{k.Up, k.Down, k.Left, k.Right, k.Flip, k.Restart},
	}
}
