package ui

import (
	"color-tango/internal/pad"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Start   key.Binding
	Red     key.Binding
	Green   key.Binding
	Blue    key.Binding
	Yellow  key.Binding
	Abandon key.Binding
	Confirm key.Binding
	Quit    key.Binding
	Exit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Start:   key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s", "start")),
		Red:     key.NewBinding(key.WithKeys("r", "1"), key.WithHelp("r/1", "red")),
		Green:   key.NewBinding(key.WithKeys("g", "2"), key.WithHelp("g/2", "green")),
		Blue:    key.NewBinding(key.WithKeys("b", "3"), key.WithHelp("b/3", "blue")),
		Yellow:  key.NewBinding(key.WithKeys("y", "4"), key.WithHelp("y/4", "yellow")),
		Abandon: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "give up")),
		Confirm: key.NewBinding(key.WithKeys("enter", " ", "space", "esc"), key.WithHelp("enter", "ok")),
		Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Exit:    key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// padFor maps a key press to the pad it stands for.
func (k keyMap) padFor(msg tea.KeyMsg) (pad.Color, bool) {
	bindings := []struct {
		b key.Binding
		c pad.Color
	}{
		{k.Red, pad.Red},
		{k.Green, pad.Green},
		{k.Blue, pad.Blue},
		{k.Yellow, pad.Yellow},
	}
	for _, kb := range bindings {
		if key.Matches(msg, kb.b) {
			return kb.c, true
		}
	}
	return "", false
}

// phase enables the bindings that make sense for what is on screen.
func (k *keyMap) phase(playing, prompting, alerting bool) {
	idle := !playing && !prompting && !alerting
	k.Start.SetEnabled(idle)
	k.Quit.SetEnabled(idle)
	k.Confirm.SetEnabled(alerting)

	inGame := playing && !alerting
	for _, b := range []*key.Binding{&k.Red, &k.Green, &k.Blue, &k.Yellow, &k.Abandon} {
		b.SetEnabled(inGame)
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Red, k.Green, k.Blue, k.Yellow, k.Abandon, k.Confirm, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Quit},
		{k.Red, k.Green, k.Blue, k.Yellow},
		{k.Abandon, k.Confirm},
	}
}
