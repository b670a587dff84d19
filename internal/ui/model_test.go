package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"color-tango/internal/clock"
	"color-tango/internal/config"
	"color-tango/internal/pad"
	"color-tango/internal/state"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualTimers runs the model's callbacks on a virtual clock instead of tea.Tick.
type manualTimers struct {
	*clock.Manual
}

func (manualTimers) Commands() []tea.Cmd { return nil }

type fixedSource struct {
	c pad.Color
}

func (s fixedSource) Next() pad.Color { return s.c }

func newTestModel(t *testing.T, c pad.Color) (*Model, *clock.Manual, *bytes.Buffer) {
	t.Helper()
	clk := clock.NewManual()
	out := &bytes.Buffer{}
	m := New(Options{
		Timers:  manualTimers{clk},
		Game:    state.DefaultOptions(),
		Flash:   500 * time.Millisecond,
		Source:  fixedSource{c: c},
		Speaker: NewSpeaker(out, true, 0.015, zerolog.Nop()),
		Logger:  zerolog.Nop(),
	})
	m.Init()
	return m, clk, out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestModel_InitShowsIdleScreen(t *testing.T) {
	m, _, _ := newTestModel(t, pad.Red)

	assert.Equal(t, state.DefaultTitle, m.Screen.Heading)
	assert.True(t, m.Screen.Locked)
	assert.False(t, m.Screen.Playing)
	assert.True(t, m.Speaker.AmbientPlaying())

	view := m.View()
	assert.Contains(t, view, state.DefaultTitle)
	assert.Contains(t, view, startLabel)
}

func TestModel_KeyboardRound(t *testing.T) {
	m, clk, out := newTestModel(t, pad.Blue)

	m.Update(runes("s"))
	require.True(t, m.prompting)
	assert.Contains(t, m.View(), state.LevelPrompt)

	m.Update(runes("2"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, m.prompting)
	assert.Equal(t, "Round 1 of 14", m.Screen.Heading)
	assert.True(t, m.Screen.Playing)
	assert.Equal(t, state.ComputerTurnStatus, m.Screen.Status)
	assert.NotContains(t, m.View(), startLabel)

	clk.Advance(0)
	assert.True(t, m.Screen.IsLit(pad.Blue))
	assert.Equal(t, "\a", out.String())

	clk.Advance(500 * time.Millisecond)
	assert.False(t, m.Screen.IsLit(pad.Blue))

	clk.Advance(1100 * time.Millisecond)
	assert.False(t, m.Screen.Locked)
	assert.Equal(t, "13 Rounds left", m.Screen.Status)

	m.Update(runes("b"))
	assert.Equal(t, state.RoundClearedStatus, m.Screen.Status)
	assert.Equal(t, 2, m.Game.State.RoundCount)
	assert.Equal(t, 2, m.Speaker.CuesPlayed())

	clk.Advance(time.Second)
	assert.Equal(t, "Round 2 of 14", m.Screen.Heading)
	assert.Equal(t, state.ComputerTurnStatus, m.Screen.Status)
}

func TestModel_InvalidLevelRaisesAlert(t *testing.T) {
	m, _, _ := newTestModel(t, pad.Red)

	m.Update(runes("s"))
	m.Update(runes("9"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	alert, ok := m.Screen.CurrentAlert()
	require.True(t, ok)
	assert.Equal(t, state.InvalidLevelAlert, alert)
	assert.False(t, m.Game.IsPlaying())
	assert.Contains(t, m.View(), state.InvalidLevelAlert)

	// Everything but the confirm key is swallowed by the alert.
	m.Update(runes("s"))
	assert.False(t, m.prompting)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, ok = m.Screen.CurrentAlert()
	assert.False(t, ok)
	assert.Equal(t, state.DefaultTitle, m.Screen.Heading)
}

func TestModel_MouseStartAndCancelledPrompt(t *testing.T) {
	m, clk, _ := newTestModel(t, pad.Red)

	m.Update(click(marginLeft, startRow))
	require.True(t, m.prompting)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.prompting)
	assert.Equal(t, "Round 1 of 8", m.Screen.Heading)

	// Clicks during the computer turn are ignored.
	m.Update(click(marginLeft, gridTop))
	assert.Empty(t, m.Game.State.PlayerSequence)

	clk.Advance(1600 * time.Millisecond)
	m.Update(click(marginLeft, gridTop))
	assert.Equal(t, 2, m.Game.State.RoundCount)
}

func TestModel_WrongPadEndsGame(t *testing.T) {
	m, clk, _ := newTestModel(t, pad.Red)

	m.Update(runes("s"))
	m.Update(runes("1"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	clk.Advance(1600 * time.Millisecond)

	m.Update(runes("y"))

	alert, ok := m.Screen.CurrentAlert()
	require.True(t, ok)
	assert.Equal(t, state.FailureMessage, alert)
	assert.False(t, m.Game.IsPlaying())
	assert.Equal(t, state.DefaultTitle, m.Screen.Heading)

	m.Update(runes(" "))
	assert.Contains(t, m.View(), "Games: 1 | Wins: 0")
}

func TestModel_EscAbandons(t *testing.T) {
	m, clk, _ := newTestModel(t, pad.Green)

	m.Update(runes("s"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.Game.IsPlaying())

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	alert, ok := m.Screen.CurrentAlert()
	require.True(t, ok)
	assert.Equal(t, state.AbandonMessage, alert)
	assert.Equal(t, 1, m.Game.Summary().Abandoned)

	// The abandoned game's timers no longer act.
	clk.Advance(5 * time.Second)
	assert.True(t, m.Screen.Locked)
	assert.False(t, m.Game.IsPlaying())
}

func TestModel_QuitOnlyWhenIdle(t *testing.T) {
	m, _, _ := newTestModel(t, pad.Green)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	m.Update(runes("s"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, cmd = m.Update(runes("q"))
	if cmd != nil {
		assert.NotEqual(t, tea.QuitMsg{}, cmd())
	}
	assert.True(t, m.Game.IsPlaying())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_ConfigReload(t *testing.T) {
	m, _, _ := newTestModel(t, pad.Green)

	cfg := &config.Config{
		Timing: config.TimingConfig{
			StepInterval:   400 * time.Millisecond,
			FlashDuration:  300 * time.Millisecond,
			SettleDelay:    500 * time.Millisecond,
			NextRoundDelay: 500 * time.Millisecond,
		},
		Game:  config.GameConfig{Title: "Midnight Tango"},
		Audio: config.AudioConfig{Enabled: false, AmbientVolume: 0.5},
	}
	m.Update(ConfigMsg{Config: cfg})

	assert.Equal(t, "Midnight Tango", m.Screen.Heading)
	assert.Equal(t, 300*time.Millisecond, m.Screen.Flash)
	assert.Equal(t, 400*time.Millisecond, m.Game.State.Options.StepInterval)
	assert.False(t, m.Speaker.Enabled)

	m.Update(ConfigMsg{})
	assert.Equal(t, "Midnight Tango", m.Screen.Heading)
}

func TestModel_PresetLevelStartsImmediately(t *testing.T) {
	clk := clock.NewManual()
	m := New(Options{
		Timers: manualTimers{clk},
		Game:   state.DefaultOptions(),
		Flash:  500 * time.Millisecond,
		Source: fixedSource{c: pad.Yellow},
		Level:  "4",
		Logger: zerolog.Nop(),
	})
	m.Init()

	assert.Equal(t, "Round 1 of 26", m.Screen.Heading)
	assert.True(t, strings.Contains(m.View(), "Round 1 of 26"))
}
