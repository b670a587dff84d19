package game

import (
	"context"
	"errors"
	"fmt"

	"color-tango/internal/clock"
	"color-tango/internal/pad"
	"color-tango/internal/scoring"
	"color-tango/internal/state"

	"github.com/rs/zerolog"
)

var ErrGameInProgress = errors.New("a game is already in progress")

// Game is the game loop controller. It owns the orchestrator state and is the
// only way in for player actions.
type Game struct {
	State *state.State
	Board *scoring.Board

	display state.Display
	pending *state.GameOptions
	logger  zerolog.Logger
}

// NewGame wires a controller that reports to display and schedules on scheduler.
func NewGame(
	opts state.GameOptions,
	display state.Display,
	scheduler clock.Scheduler,
	source state.Source,
	logger zerolog.Logger,
) *Game {
	g := &Game{
		Board:   scoring.NewBoard(),
		display: display,
		logger:  logger.With().Str("component", "game").Logger(),
	}
	g.State = state.NewState(opts, display, scheduler, source, logger)
	g.State.OnFinish = g.recordFinish
	return g
}

// Init puts the display into its idle layout.
func (g *Game) Init() {
	g.display.SetHeading(g.State.Options.Title)
	g.display.SetLocked(true)
	g.display.SetPlaying(false)
}

// Start validates the answer to the level prompt and begins a game. An
// out-of-range level raises the validation alert and changes nothing.
func (g *Game) Start(ctx context.Context, levelInput string) error {
	if !g.State.IsIdle() {
		return ErrGameInProgress
	}

	level, rounds, err := state.MaxRoundsForLevel(levelInput)
	if err != nil {
		g.logger.Debug().Err(err).Msg("Rejected level")
		g.display.Alert(state.InvalidLevelAlert)
		return err
	}

	g.applyPendingOptions()
	if err := g.State.Begin(ctx, level, rounds); err != nil {
		return fmt.Errorf("start game: %w", err)
	}
	return nil
}

// Press handles a click on a pad zone. Presses while input is locked, outside
// the player's turn, or on something that is not a pad are ignored.
func (g *Game) Press(ctx context.Context, c pad.Color) error {
	if !c.Valid() {
		g.logger.Debug().Str("target", c.String()).Msg("Ignoring press outside the pads")
		return nil
	}
	if g.State.Locked || !g.State.FSM.Can("press") {
		g.logger.Debug().Str("pad", c.String()).Msg("Ignoring press while locked")
		return nil
	}

	g.display.PlayCue(c)
	return g.State.Press(ctx, c)
}

// Abandon ends the running game. It is a no-op when idle or mid-evaluation.
func (g *Game) Abandon(ctx context.Context) error {
	if !g.State.FSM.Can("abandon") {
		return nil
	}
	return g.State.Abandon(ctx)
}

func (g *Game) IsPlaying() bool {
	return !g.State.IsIdle()
}
