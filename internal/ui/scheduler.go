package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// timerMsg carries a scheduled callback back onto the bubbletea loop.
type timerMsg struct {
	fn func()
}

type pendingTimer struct {
	delay time.Duration
	fn    func()
}

// Scheduler collects callbacks during an Update and turns them into tea.Tick
// commands afterwards, so every callback runs on the program's event loop.
type Scheduler struct {
	pending []pendingTimer
}

func (s *Scheduler) After(d time.Duration, fn func()) {
	s.pending = append(s.pending, pendingTimer{delay: d, fn: fn})
}

func (s *Scheduler) take() []pendingTimer {
	p := s.pending
	s.pending = nil
	return p
}

// Commands drains the pending callbacks.
func (s *Scheduler) Commands() []tea.Cmd {
	timers := s.take()
	cmds := make([]tea.Cmd, 0, len(timers))
	for _, t := range timers {
		fn := t.fn
		cmds = append(cmds, tea.Tick(t.delay, func(time.Time) tea.Msg {
			return timerMsg{fn: fn}
		}))
	}
	return cmds
}
