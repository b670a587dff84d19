package game

import (
	"context"
	"testing"
	"time"

	"color-tango/internal/state"
)

func TestGame_ConfigureWhileIdle(t *testing.T) {
	g, d, _ := newTestGame(1)

	opts := state.DefaultOptions()
	opts.Title = "Tango Night"
	opts.StepInterval = 300 * time.Millisecond
	g.Configure(opts)

	if g.State.Options.StepInterval != 300*time.Millisecond {
		t.Errorf("options should apply immediately while idle")
	}
	if d.Heading != "Tango Night" {
		t.Errorf("expected heading 'Tango Night', got %q", d.Heading)
	}
}

func TestGame_ConfigureWhilePlaying(t *testing.T) {
	g, _, m := newTestGame(1)
	ctx := context.Background()
	_ = g.Start(ctx, "1")

	opts := state.DefaultOptions()
	opts.SettleDelay = 5 * time.Second
	g.Configure(opts)

	if g.State.Options.SettleDelay != time.Second {
		t.Fatalf("running game must keep its timings, got %v", g.State.Options.SettleDelay)
	}

	// The original 1.6s yield still applies.
	waitForHumanTurn(t, g, m)
	_ = g.Abandon(ctx)

	_ = g.Start(ctx, "1")
	if g.State.Options.SettleDelay != 5*time.Second {
		t.Errorf("pending options should apply on the next start, got %v", g.State.Options.SettleDelay)
	}
}

func TestGame_SummaryAcrossGames(t *testing.T) {
	g, _, m := newTestGame(3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_ = g.Start(ctx, "1")
		waitForHumanTurn(t, g, m)
		_ = g.Press(ctx, wrongPad(g.State.ComputerSequence[0]))
	}

	sum := g.Summary()
	if sum.Games != 3 || sum.Losses != 3 || sum.Wins != 0 {
		t.Errorf("unexpected summary %+v", sum)
	}
	if len(g.Board.Top(5)) != 3 {
		t.Errorf("expected 3 recorded results")
	}
}
