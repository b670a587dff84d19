package game

import (
	"color-tango/internal/scoring"
	"color-tango/internal/state"
)

// Configure replaces the game options. A running game keeps its timings; the
// new options take effect at the next start.
func (g *Game) Configure(opts state.GameOptions) {
	if g.State.IsIdle() {
		g.State.Options = opts
		g.pending = nil
		g.display.SetHeading(opts.Title)
		return
	}
	g.pending = &opts
}

func (g *Game) applyPendingOptions() {
	if g.pending == nil {
		return
	}
	g.State.Options = *g.pending
	g.pending = nil
}

func (g *Game) recordFinish(f state.Finished) {
	g.Board.Record(scoring.Result{
		GameID:        f.GameID,
		Level:         f.Level,
		MaxRounds:     f.MaxRounds,
		RoundsCleared: f.RoundsCleared,
		Won:           f.Outcome == state.OutcomeSuccess,
		Abandoned:     f.Outcome == state.OutcomeAbandoned,
	})

	sum := g.Board.Summary()
	g.logger.Info().
		Int("games", sum.Games).
		Int("wins", sum.Wins).
		Int("best_rounds", sum.BestRounds).
		Msg("Session tally")
}

// Summary reports the games finished so far in this process.
func (g *Game) Summary() scoring.Summary {
	return g.Board.Summary()
}
