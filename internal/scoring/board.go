package scoring

import (
	"sort"
	"time"
)

// Result records one finished game.
type Result struct {
	GameID        string
	Level         int
	MaxRounds     int
	RoundsCleared int
	Won           bool
	Abandoned     bool
	FinishedAt    time.Time
}

// Summary aggregates the results of the current process.
type Summary struct {
	Games      int
	Wins       int
	Losses     int
	Abandoned  int
	BestRounds int
}

// Board keeps the results of every game played since the program started.
// Nothing outlives the process.
type Board struct {
	results []Result
	now     func() time.Time
}

func NewBoard() *Board {
	return &Board{now: time.Now}
}

// Record appends r, stamping it with the current time when FinishedAt is zero.
func (b *Board) Record(r Result) {
	if r.FinishedAt.IsZero() {
		r.FinishedAt = b.now()
	}
	b.results = append(b.results, r)
}

func (b *Board) Summary() Summary {
	var s Summary
	for _, r := range b.results {
		s.Games++
		switch {
		case r.Won:
			s.Wins++
		case r.Abandoned:
			s.Abandoned++
		default:
			s.Losses++
		}
		if r.RoundsCleared > s.BestRounds {
			s.BestRounds = r.RoundsCleared
		}
	}
	return s
}

// Top returns up to n results, most rounds cleared first. Ties keep play order.
func (b *Board) Top(n int) []Result {
	out := make([]Result, len(b.results))
	copy(out, b.results)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RoundsCleared > out[j].RoundsCleared
	})

	if len(out) < n {
		return out
	}
	return out[:n]
}

// Last returns the most recent result.
func (b *Board) Last() (Result, bool) {
	if len(b.results) == 0 {
		return Result{}, false
	}
	return b.results[len(b.results)-1], true
}
