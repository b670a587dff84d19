package ui

import (
	"time"

	"color-tango/internal/clock"
	"color-tango/internal/pad"
)

// Screen is what the game writes to: texts, pad lights, the lock and the
// alert queue. The view renders it.
type Screen struct {
	Status  string
	Heading string
	Locked  bool
	Playing bool
	Flash   time.Duration

	lit     map[pad.Color]int
	flashes int
	alerts  []string

	scheduler clock.Scheduler
	speaker   *Speaker
}

func NewScreen(flash time.Duration, scheduler clock.Scheduler, speaker *Speaker) *Screen {
	return &Screen{
		Locked:    true,
		Flash:     flash,
		lit:       make(map[pad.Color]int),
		scheduler: scheduler,
		speaker:   speaker,
	}
}

// Activate lights c and plays its cue. Only the latest activation of a pad
// may switch its light off.
func (s *Screen) Activate(c pad.Color) {
	s.flashes++
	token := s.flashes
	s.lit[c] = token
	s.speaker.Cue(c)
	s.scheduler.After(s.Flash, func() {
		if s.lit[c] == token {
			delete(s.lit, c)
		}
	})
}

func (s *Screen) PlayCue(c pad.Color) {
	s.speaker.Cue(c)
}

func (s *Screen) SetStatus(text string) { s.Status = text }
func (s *Screen) SetHeading(text string) { s.Heading = text }
func (s *Screen) SetLocked(locked bool) { s.Locked = locked }
func (s *Screen) SetPlaying(playing bool) { s.Playing = playing }

// Alert queues text. The oldest queued alert is shown until dismissed.
func (s *Screen) Alert(text string) {
	s.alerts = append(s.alerts, text)
}

func (s *Screen) IsLit(c pad.Color) bool {
	_, ok := s.lit[c]
	return ok
}

func (s *Screen) CurrentAlert() (string, bool) {
	if len(s.alerts) == 0 {
		return "", false
	}
	return s.alerts[0], true
}

func (s *Screen) DismissAlert() {
	if len(s.alerts) > 0 {
		s.alerts = s.alerts[1:]
	}
}
