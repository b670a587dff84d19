// Package ui is the terminal front end: it renders the pads, routes keys and
// mouse clicks to the game and runs scheduled callbacks on the bubbletea loop.
package ui

import (
	"context"
	"errors"
	"time"

	"color-tango/internal/clock"
	"color-tango/internal/config"
	"color-tango/internal/game"
	"color-tango/internal/pad"
	"color-tango/internal/state"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// ConfigMsg delivers a reloaded configuration to the running program.
type ConfigMsg struct {
	Config *config.Config
}

// Timers schedules callbacks and hands them to bubbletea as commands.
type Timers interface {
	clock.Scheduler
	Commands() []tea.Cmd
}

// Options configures a Model.
type Options struct {
	// Timers defaults to a Scheduler backed by tea.Tick.
	Timers  Timers
	Game    state.GameOptions
	Flash   time.Duration
	Source  state.Source
	Speaker *Speaker
	// Level, when set, answers the level prompt of the first game.
	Level  string
	Logger zerolog.Logger
}

// GameOptions extracts the orchestrator options from cfg.
func GameOptions(cfg *config.Config) state.GameOptions {
	return state.GameOptions{
		StepInterval:   cfg.Timing.StepInterval,
		SettleDelay:    cfg.Timing.SettleDelay,
		NextRoundDelay: cfg.Timing.NextRoundDelay,
		Title:          cfg.Game.Title,
	}
}

type Model struct {
	Game    *game.Game
	Screen  *Screen
	Speaker *Speaker

	sched     Timers
	keys      keyMap
	help      help.Model
	prompt    textinput.Model
	prompting bool
	level     string
	ctx       context.Context
	logger    zerolog.Logger
}

func New(opts Options) *Model {
	var sched Timers = &Scheduler{}
	if opts.Timers != nil {
		sched = opts.Timers
	}
	speaker := opts.Speaker
	if speaker == nil {
		speaker = NewSpeaker(nil, false, 0, opts.Logger)
	}
	screen := NewScreen(opts.Flash, sched, speaker)

	ti := textinput.New()
	ti.Prompt = state.LevelPrompt + " "
	ti.CharLimit = 8
	ti.Width = 8

	m := &Model{
		Game:    game.NewGame(opts.Game, screen, sched, opts.Source, opts.Logger),
		Screen:  screen,
		Speaker: speaker,
		sched:   sched,
		keys:    defaultKeyMap(),
		help:    help.New(),
		prompt:  ti,
		level:   opts.Level,
		ctx:     context.Background(),
		logger:  opts.Logger.With().Str("component", "ui").Logger(),
	}
	m.Game.Init()
	return m
}

func (m *Model) Init() tea.Cmd {
	m.Speaker.StartAmbient()
	if m.level != "" {
		level := m.level
		m.level = ""
		m.submitLevel(level)
	}
	m.syncKeys()
	return tea.Batch(m.sched.Commands()...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case timerMsg:
		msg.fn()
	case ConfigMsg:
		m.applyConfig(msg.Config)
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		m.syncKeys()
		cmds = append(cmds, m.handleKey(msg))
	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))
	default:
		if m.prompting {
			var cmd tea.Cmd
			m.prompt, cmd = m.prompt.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.syncKeys()
	cmds = append(cmds, m.sched.Commands()...)
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Exit) {
		return tea.Quit
	}

	// Alerts block everything else until acknowledged.
	if _, ok := m.Screen.CurrentAlert(); ok {
		if key.Matches(msg, m.keys.Confirm) {
			m.Screen.DismissAlert()
		}
		return nil
	}

	if m.prompting {
		switch msg.Type {
		case tea.KeyEnter:
			m.submitLevel(m.prompt.Value())
		case tea.KeyEsc:
			// A cancelled prompt has no answer, which means level 1.
			m.submitLevel("")
		default:
			var cmd tea.Cmd
			m.prompt, cmd = m.prompt.Update(msg)
			return cmd
		}
		return nil
	}

	if !m.Game.IsPlaying() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return tea.Quit
		case key.Matches(msg, m.keys.Start):
			return m.openPrompt()
		}
		return nil
	}

	if key.Matches(msg, m.keys.Abandon) {
		if err := m.Game.Abandon(m.ctx); err != nil {
			m.logger.Error().Err(err).Msg("Abandon failed")
		}
		return nil
	}
	if c, ok := m.keys.padFor(msg); ok {
		m.press(c)
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	if _, ok := m.Screen.CurrentAlert(); ok || m.prompting {
		return nil
	}

	if !m.Game.IsPlaying() {
		if onStartButton(msg.X, msg.Y) {
			return m.openPrompt()
		}
		return nil
	}

	c, ok := padAt(msg.X, msg.Y)
	if !ok {
		m.logger.Debug().Int("x", msg.X).Int("y", msg.Y).Msg("Click outside the pads")
		return nil
	}
	m.press(c)
	return nil
}

func (m *Model) openPrompt() tea.Cmd {
	m.prompting = true
	m.prompt.SetValue("")
	return m.prompt.Focus()
}

func (m *Model) submitLevel(input string) {
	m.prompting = false
	m.prompt.Blur()

	err := m.Game.Start(m.ctx, input)
	if err != nil && !errors.Is(err, state.ErrInvalidLevel) {
		m.logger.Error().Err(err).Str("input", input).Msg("Could not start game")
	}
}

func (m *Model) press(c pad.Color) {
	if err := m.Game.Press(m.ctx, c); err != nil {
		m.logger.Error().Err(err).Str("pad", c.String()).Msg("Press failed")
	}
}

func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	m.Game.Configure(GameOptions(cfg))
	m.Screen.Flash = cfg.Timing.FlashDuration
	m.Speaker.Enabled = cfg.Audio.Enabled
	m.Speaker.AmbientVolume = cfg.Audio.AmbientVolume
	m.logger.Info().Msg("Configuration reloaded")
}

func (m *Model) syncKeys() {
	_, alerting := m.Screen.CurrentAlert()
	m.keys.phase(m.Game.IsPlaying(), m.prompting, alerting)
}
