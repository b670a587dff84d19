package state

import (
	"context"
	"time"

	"color-tango/internal/clock"
	"color-tango/internal/pad"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"github.com/rs/zerolog"
)

// FSM states.
const (
	Idle          = "idle"
	ComputerTurn  = "computerTurn"
	HumanTurn     = "humanTurn"
	CheckPress    = "checkPress"
	RoundComplete = "roundComplete"
)

// GameOptions holds the timings and texts the orchestrator works with.
type GameOptions struct {
	StepInterval   time.Duration // delay between two activations of a replay
	SettleDelay    time.Duration // extra wait after a replay before the player's turn
	NextRoundDelay time.Duration // pause between a cleared round and the next replay
	Title          string        // heading shown while idle
}

func DefaultOptions() GameOptions {
	return GameOptions{
		StepInterval:   600 * time.Millisecond,
		SettleDelay:    1000 * time.Millisecond,
		NextRoundDelay: 1000 * time.Millisecond,
		Title:          DefaultTitle,
	}
}

// Display is everything the orchestrator needs from the screen and speakers.
type Display interface {
	// Activate lights the pad and plays its cue. The light reverts on its own.
	Activate(c pad.Color)
	// PlayCue plays the pad's cue without lighting it.
	PlayCue(c pad.Color)
	SetStatus(text string)
	SetHeading(text string)
	SetLocked(locked bool)
	// SetPlaying hides the start control and shows the status when true.
	SetPlaying(playing bool)
	// Alert shows text and blocks other input until acknowledged.
	Alert(text string)
}

// Source produces the next pad of the computer sequence.
type Source interface {
	Next() pad.Color
}

// Outcome tells why a game ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeFailure
	OutcomeSuccess
	OutcomeAbandoned
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFailure:
		return "failure"
	case OutcomeSuccess:
		return "success"
	case OutcomeAbandoned:
		return "abandoned"
	default:
		return "none"
	}
}

// Message is the text shown when a game ends with o.
func (o Outcome) Message() string {
	switch o {
	case OutcomeFailure:
		return FailureMessage
	case OutcomeSuccess:
		return SuccessMessage
	case OutcomeAbandoned:
		return AbandonMessage
	default:
		return ""
	}
}

// Finished describes a game at the moment it was reset.
type Finished struct {
	GameID        string
	Level         int
	MaxRounds     int
	RoundsCleared int
	Outcome       Outcome
}

type State struct {
	ComputerSequence []pad.Color
	PlayerSequence   []pad.Color
	RoundCount       int
	MaxRoundCount    int
	Level            int
	Locked           bool
	// Generation changes on every start and reset. Timers scheduled under an
	// older generation are dropped when they fire.
	Generation int
	GameID     string
	Options    GameOptions
	FSM        *fsm.FSM

	// OnFinish, when set, is called during reset before the terminal alert.
	OnFinish func(Finished)

	display   Display
	scheduler clock.Scheduler
	source    Source
	logger    zerolog.Logger
}

func NewState(
	opts GameOptions,
	display Display,
	scheduler clock.Scheduler,
	source Source,
	logger zerolog.Logger,
) *State {
	s := &State{
		Locked:    true,
		Options:   opts,
		display:   display,
		scheduler: scheduler,
		source:    source,
		logger:    logger.With().Str("component", "orchestrator").Logger(),
	}

	s.FSM = fsm.NewFSM(
		Idle,
		getStateTransitions(),
		getStateCallbacks(s),
	)

	return s
}

// Begin starts a game of maxRounds rounds and plays the first computer turn.
func (s *State) Begin(ctx context.Context, level, maxRounds int) error {
	s.Level = level
	s.MaxRoundCount = maxRounds
	s.RoundCount = 1
	s.ComputerSequence = nil
	s.PlayerSequence = nil
	s.GameID = uuid.NewString()
	s.Generation++

	s.logger.Info().
		Str("game_id", s.GameID).
		Int("level", level).
		Int("max_rounds", maxRounds).
		Msg("Game started")

	s.display.SetPlaying(true)
	return s.FSM.Event(ctx, "start")
}

// Press feeds one player pad press into the human turn.
func (s *State) Press(ctx context.Context, c pad.Color) error {
	return s.FSM.Event(ctx, "press", c)
}

// Abandon ends the running game without a winner.
func (s *State) Abandon(ctx context.Context) error {
	return s.FSM.Event(ctx, "abandon")
}

func (s *State) IsIdle() bool {
	return s.FSM.Current() == Idle
}

// schedule defers fn, dropping it if the game generation has moved on by then.
func (s *State) schedule(d time.Duration, what string, fn func()) {
	gen := s.Generation
	s.scheduler.After(d, func() {
		if gen != s.Generation {
			s.logger.Debug().
				Str("timer", what).
				Int("generation", gen).
				Int("current_generation", s.Generation).
				Msg("Dropping stale timer")
			return
		}
		fn()
	})
}

func (s *State) fire(ctx context.Context, event string) {
	if err := s.FSM.Event(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("event", event).Msg("Transition failed")
	}
}

func (s *State) playComputerTurn() {
	s.Locked = true
	s.display.SetLocked(true)
	s.display.SetStatus(ComputerTurnStatus)
	s.display.SetHeading(RoundHeading(s.RoundCount, s.MaxRoundCount))

	s.ComputerSequence = append(s.ComputerSequence, s.source.Next())

	for i, c := range s.ComputerSequence {
		c := c
		s.schedule(time.Duration(i)*s.Options.StepInterval, "activate", func() {
			s.display.Activate(c)
		})
	}

	wait := time.Duration(s.RoundCount)*s.Options.StepInterval + s.Options.SettleDelay
	s.schedule(wait, "yield", func() {
		s.fire(context.Background(), "yield")
	})

	s.logger.Debug().
		Str("game_id", s.GameID).
		Int("round", s.RoundCount).
		Int("sequence_len", len(s.ComputerSequence)).
		Dur("yield_in", wait).
		Msg("Computer turn")
}

func (s *State) reset(outcome Outcome) {
	cleared := s.RoundCount - 1
	if outcome == OutcomeSuccess {
		cleared = s.MaxRoundCount
	}
	if cleared < 0 {
		cleared = 0
	}
	done := Finished{
		GameID:        s.GameID,
		Level:         s.Level,
		MaxRounds:     s.MaxRoundCount,
		RoundsCleared: cleared,
		Outcome:       outcome,
	}

	s.ComputerSequence = nil
	s.PlayerSequence = nil
	s.RoundCount = 0
	s.Generation++

	s.logger.Info().
		Str("game_id", done.GameID).
		Str("outcome", outcome.String()).
		Int("rounds_cleared", cleared).
		Msg("Game over")

	if s.OnFinish != nil {
		s.OnFinish(done)
	}

	s.display.Alert(outcome.Message())
	s.display.SetHeading(s.Options.Title)
	s.Locked = true
	s.display.SetLocked(true)
	s.display.SetPlaying(false)
}

func getStateTransitions() []fsm.EventDesc {
	return fsm.Events{
		{Name: "start", Src: []string{Idle}, Dst: ComputerTurn},
		{Name: "yield", Src: []string{ComputerTurn}, Dst: HumanTurn},

		// Player input
		{Name: "press", Src: []string{HumanTurn}, Dst: CheckPress},
		{Name: "wait", Src: []string{CheckPress}, Dst: HumanTurn},
		{Name: "complete", Src: []string{CheckPress}, Dst: RoundComplete},
		{Name: "nextRound", Src: []string{RoundComplete}, Dst: ComputerTurn},

		// Termination
		{Name: "fail", Src: []string{CheckPress}, Dst: Idle},
		{Name: "succeed", Src: []string{RoundComplete}, Dst: Idle},
		{Name: "abandon", Src: []string{ComputerTurn, HumanTurn, RoundComplete}, Dst: Idle},
	}
}

func getStateCallbacks(s *State) map[string]fsm.Callback {
	return fsm.Callbacks{
		"enter_" + ComputerTurn: func(ctx context.Context, e *fsm.Event) {
			s.playComputerTurn()
		},
		"after_yield": func(ctx context.Context, e *fsm.Event) {
			s.Locked = false
			s.display.SetLocked(false)
			s.display.SetStatus(RoundsLeftStatus(s.MaxRoundCount - s.RoundCount))
		},
		"enter_" + CheckPress: func(ctx context.Context, e *fsm.Event) {
			var c pad.Color
			if len(e.Args) > 0 {
				c, _ = e.Args[0].(pad.Color)
			}

			s.PlayerSequence = append(s.PlayerSequence, c)
			index := len(s.PlayerSequence) - 1
			remaining := len(s.ComputerSequence) - len(s.PlayerSequence)
			s.display.SetStatus(StepsLeftStatus(remaining))

			if index >= len(s.ComputerSequence) || s.ComputerSequence[index] != c {
				s.logger.Debug().
					Str("game_id", s.GameID).
					Int("index", index).
					Str("pressed", c.String()).
					Msg("Wrong pad")
				e.FSM.Event(ctx, "fail")
				return
			}

			if remaining > 0 {
				e.FSM.Event(ctx, "wait")
				return
			}
			e.FSM.Event(ctx, "complete")
		},
		"enter_" + RoundComplete: func(ctx context.Context, e *fsm.Event) {
			if len(s.PlayerSequence) == s.MaxRoundCount {
				e.FSM.Event(ctx, "succeed")
				return
			}

			s.RoundCount++
			s.PlayerSequence = nil
			s.display.SetStatus(RoundClearedStatus)
			s.schedule(s.Options.NextRoundDelay, "nextRound", func() {
				s.fire(context.Background(), "nextRound")
			})
		},
		"enter_" + Idle: func(ctx context.Context, e *fsm.Event) {
			switch e.Event {
			case "fail":
				s.reset(OutcomeFailure)
			case "succeed":
				s.reset(OutcomeSuccess)
			case "abandon":
				s.reset(OutcomeAbandoned)
			}
		},
	}
}
