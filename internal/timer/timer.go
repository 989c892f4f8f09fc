// Package timer implements the focus countdown: three preset modes with
// start/pause, reset and mode switching. The host owns the clock and calls
// Tick once per second while the timer is running.
package timer

import (
	"fmt"
	"time"
)

// Mode is a preset countdown length
type Mode int

const (
	ModeFocus Mode = iota
	ModeShortBreak
	ModeLongBreak
)

// Modes lists the presets in display order
var Modes = []Mode{ModeFocus, ModeShortBreak, ModeLongBreak}

// Duration returns the preset length of the mode
func (m Mode) Duration() time.Duration {
	return time.Duration(m.Seconds()) * time.Second
}

// Seconds returns the preset length in whole seconds
func (m Mode) Seconds() int {
	switch m {
	case ModeShortBreak:
		return 5 * 60
	case ModeLongBreak:
		return 15 * 60
	default:
		return 25 * 60
	}
}

// String returns the machine name of the mode
func (m Mode) String() string {
	switch m {
	case ModeFocus:
		return "pomodoro"
	case ModeShortBreak:
		return "shortBreak"
	case ModeLongBreak:
		return "longBreak"
	default:
		return "unknown"
	}
}

// Label returns the short button label
func (m Mode) Label() string {
	switch m {
	case ModeShortBreak:
		return "Short"
	case ModeLongBreak:
		return "Long"
	default:
		return "Focus"
	}
}

// ParseMode accepts either the machine name or the label
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if s == m.String() || s == m.Label() {
			return m, nil
		}
	}
	return ModeFocus, fmt.Errorf("unknown timer mode %q", s)
}

// Snapshot is what the host renders
type Snapshot struct {
	Mode      Mode
	Remaining int
	Running   bool
	Progress  float64
}

// Timer is a single countdown session.
//
// Invariants: 0 <= remaining <= mode.Seconds(), and remaining == 0 implies
// !running.
type Timer struct {
	mode      Mode
	remaining int
	running   bool

	// gen changes whenever running starts or stops so the host can drop
	// ticks scheduled for an earlier run.
	gen uint64
}

// New returns an idle focus timer
func New() *Timer {
	return &Timer{
		mode:      ModeFocus,
		remaining: ModeFocus.Seconds(),
	}
}

// SelectMode switches presets. It always resets, even for the current mode.
func (t *Timer) SelectMode(m Mode) {
	t.mode = m
	t.remaining = m.Seconds()
	t.stop()
}

// Toggle starts or pauses the countdown and returns the new running state.
// A timer at zero cannot be started until it is reset.
func (t *Timer) Toggle() bool {
	if t.remaining == 0 {
		return false
	}
	t.running = !t.running
	t.gen++
	return t.running
}

// Reset stops the countdown and refills the current mode
func (t *Timer) Reset() {
	t.remaining = t.mode.Seconds()
	t.stop()
}

// Tick consumes one second. It returns true when this tick finished the
// countdown. Ticks while idle are ignored.
func (t *Timer) Tick() bool {
	if !t.running || t.remaining == 0 {
		return false
	}
	t.remaining--
	if t.remaining == 0 {
		t.stop()
		return true
	}
	return false
}

func (t *Timer) stop() {
	t.running = false
	t.gen++
}

// Mode returns the active preset
func (t *Timer) Mode() Mode { return t.mode }

// Remaining returns the seconds left
func (t *Timer) Remaining() int { return t.remaining }

// Running reports whether the countdown is active
func (t *Timer) Running() bool { return t.running }

// Generation identifies the current run for tick scheduling
func (t *Timer) Generation() uint64 { return t.gen }

// Progress returns the elapsed fraction of the current mode in [0,1]
func (t *Timer) Progress() float64 {
	total := t.mode.Seconds()
	return float64(total-t.remaining) / float64(total)
}

// Format renders the remaining time as MM:SS
func (t *Timer) Format() string {
	return FormatSeconds(t.remaining)
}

// Snapshot captures the current state
func (t *Timer) Snapshot() Snapshot {
	return Snapshot{
		Mode:      t.mode,
		Remaining: t.remaining,
		Running:   t.running,
		Progress:  t.Progress(),
	}
}

// FormatSeconds renders seconds as zero padded MM:SS
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
