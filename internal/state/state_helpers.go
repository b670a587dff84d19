package state

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultTitle       = "Color Tango"
	ComputerTurnStatus = "The computer's turn..."
	RoundClearedStatus = "Nice! Keep dancing!"
	FailureMessage     = "Oops! You stomped on your partner's toes. Try again."
	SuccessMessage     = "Congratulations! You completed the full Tango!"
	AbandonMessage     = "Game abandoned."
	InvalidLevelAlert  = "Please enter level 1, 2, 3, or 4"
	LevelPrompt        = "Choose a skill level (1-4):"

	MinLevel = 1
	MaxLevel = 4
)

var ErrInvalidLevel = errors.New("level out of range")

// MaxRoundsForLevel turns the answer to the level prompt into a level and a
// round count. Input without a leading number means level 1.
func MaxRoundsForLevel(input string) (level, rounds int, err error) {
	n, ok := parseLeadingInt(input)
	if !ok {
		return MinLevel, roundsFor(MinLevel), nil
	}
	if n < MinLevel || n > MaxLevel {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidLevel, input)
	}
	return n, roundsFor(n), nil
}

func roundsFor(level int) int {
	return level*6 + 2
}

// parseLeadingInt reads an optionally signed run of digits after leading
// whitespace and ignores whatever follows it.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	neg := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		// Past this the value is out of range anyway.
		if n < 1_000_000 {
			n = n*10 + int(r-'0')
		}
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func RoundsLeftStatus(n int) string {
	return fmt.Sprintf("%d Round%s left", n, plural(n))
}

func StepsLeftStatus(n int) string {
	return fmt.Sprintf("%d dance step%s left", n, plural(n))
}

func RoundHeading(round, max int) string {
	return fmt.Sprintf("Round %d of %d", round, max)
}
