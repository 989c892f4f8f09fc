package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimerIsIdleFocus(t *testing.T) {
	tm := New()
	assert.Equal(t, ModeFocus, tm.Mode())
	assert.Equal(t, 1500, tm.Remaining())
	assert.False(t, tm.Running())
	assert.Equal(t, "25:00", tm.Format())
	assert.Zero(t, tm.Progress())
}

func TestModeDurations(t *testing.T) {
	assert.Equal(t, 1500, ModeFocus.Seconds())
	assert.Equal(t, 300, ModeShortBreak.Seconds())
	assert.Equal(t, 900, ModeLongBreak.Seconds())
}

func TestSelectModeResets(t *testing.T) {
	for _, m := range Modes {
		tm := New()
		tm.Toggle()
		tm.Tick()
		tm.SelectMode(m)
		assert.Equal(t, m.Seconds(), tm.Remaining(), m.String())
		assert.False(t, tm.Running(), m.String())
	}
}

func TestSelectSameModeRestartsCountdown(t *testing.T) {
	tm := New()
	tm.Toggle()
	for i := 0; i < 10; i++ {
		tm.Tick()
	}
	require.Equal(t, 1490, tm.Remaining())

	tm.SelectMode(ModeFocus)
	assert.Equal(t, 1500, tm.Remaining())
	assert.False(t, tm.Running())
}

func TestTickIgnoredWhileIdle(t *testing.T) {
	tm := New()
	assert.False(t, tm.Tick())
	assert.Equal(t, 1500, tm.Remaining())
}

func TestToggleAndReset(t *testing.T) {
	tm := New()
	assert.True(t, tm.Toggle())
	tm.Tick()
	tm.Tick()
	assert.False(t, tm.Toggle())
	assert.Equal(t, 1498, tm.Remaining())

	tm.Tick()
	assert.Equal(t, 1498, tm.Remaining(), "paused timer must not count down")

	tm.Toggle()
	tm.Reset()
	assert.False(t, tm.Running())
	assert.Equal(t, 1500, tm.Remaining())
}

func TestFullFocusRunStopsAtZero(t *testing.T) {
	tm := New()
	tm.Toggle()

	finished := 0
	for i := 0; i < 1500; i++ {
		if tm.Tick() {
			finished++
		}
	}

	assert.Equal(t, 0, tm.Remaining())
	assert.False(t, tm.Running())
	assert.Equal(t, 1, finished)
	assert.Equal(t, 1.0, tm.Progress())
	assert.Equal(t, "00:00", tm.Format())

	// Extra ticks never go negative
	for i := 0; i < 5; i++ {
		assert.False(t, tm.Tick())
	}
	assert.Equal(t, 0, tm.Remaining())
}

func TestToggleAtZeroIsNoop(t *testing.T) {
	tm := New()
	tm.SelectMode(ModeShortBreak)
	tm.Toggle()
	for i := 0; i < 300; i++ {
		tm.Tick()
	}
	require.Equal(t, 0, tm.Remaining())

	for i := 0; i < 3; i++ {
		assert.False(t, tm.Toggle())
		assert.False(t, tm.Running())
	}

	tm.Reset()
	assert.True(t, tm.Toggle())
}

func TestGenerationChangesOnRunTransitions(t *testing.T) {
	tm := New()
	g0 := tm.Generation()
	tm.Toggle()
	g1 := tm.Generation()
	assert.NotEqual(t, g0, g1)

	tm.Tick()
	assert.Equal(t, g1, tm.Generation(), "ticking keeps the run")

	tm.Toggle()
	assert.NotEqual(t, g1, tm.Generation())
}

func TestProgressMidway(t *testing.T) {
	tm := New()
	tm.SelectMode(ModeShortBreak)
	tm.Toggle()
	for i := 0; i < 150; i++ {
		tm.Tick()
	}
	assert.InDelta(t, 0.5, tm.Progress(), 1e-9)

	snap := tm.Snapshot()
	assert.Equal(t, ModeShortBreak, snap.Mode)
	assert.Equal(t, 150, snap.Remaining)
	assert.True(t, snap.Running)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("shortBreak")
	require.NoError(t, err)
	assert.Equal(t, ModeShortBreak, m)

	m, err = ParseMode("Long")
	require.NoError(t, err)
	assert.Equal(t, ModeLongBreak, m)

	_, err = ParseMode("nap")
	assert.Error(t, err)
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "04:05", FormatSeconds(245))
	assert.Equal(t, "00:00", FormatSeconds(-3))
}
