package ui

import (
	"fmt"
	"strings"

	"color-tango/internal/pad"

	"github.com/charmbracelet/lipgloss"
)

type padPalette struct {
	dim    lipgloss.Color
	bright lipgloss.Color
	key    string
}

var palette = map[pad.Color]padPalette{
	pad.Red:    {dim: lipgloss.Color("1"), bright: lipgloss.Color("9"), key: "r"},
	pad.Green:  {dim: lipgloss.Color("2"), bright: lipgloss.Color("10"), key: "g"},
	pad.Blue:   {dim: lipgloss.Color("4"), bright: lipgloss.Color("12"), key: "b"},
	pad.Yellow: {dim: lipgloss.Color("3"), bright: lipgloss.Color("11"), key: "y"},
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	buttonStyle  = lipgloss.NewStyle().Reverse(true)
	summaryStyle = lipgloss.NewStyle().Faint(true)
	alertStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(0, 1)
	margin = strings.Repeat(" ", marginLeft)
)

func (m *Model) View() string {
	lines := make([]string, 0, startRow+6)

	lines = append(lines, margin+headingStyle.Render(m.Screen.Heading))
	if m.Screen.Playing {
		lines = append(lines, margin+statusStyle.Render(m.Screen.Status))
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, "")

	set := pad.All()
	lines = append(lines, m.renderPadRow(set[0].Color, set[1].Color)...)
	for i := 0; i < gapY; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, m.renderPadRow(set[2].Color, set[3].Color)...)
	lines = append(lines, "")

	if m.Screen.Playing {
		lines = append(lines, "")
	} else {
		lines = append(lines, margin+buttonStyle.Render(startLabel))
	}

	if sum := m.Game.Summary(); sum.Games > 0 {
		lines = append(lines, margin+summaryStyle.Render(fmt.Sprintf(
			"Games: %d | Wins: %d | Best: %d rounds", sum.Games, sum.Wins, sum.BestRounds)))
	}

	if alert, ok := m.Screen.CurrentAlert(); ok {
		lines = append(lines, "", indent(alertStyle.Render(alert)))
	} else if m.prompting {
		lines = append(lines, "", margin+m.prompt.View())
	}

	lines = append(lines, "", margin+m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

// renderPadRow renders two pads side by side as padHeight lines.
func (m *Model) renderPadRow(left, right pad.Color) []string {
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderPad(left),
		strings.Repeat(" ", gapX),
		m.renderPad(right),
	)
	out := strings.Split(row, "\n")
	for i := range out {
		out[i] = margin + out[i]
	}
	return out
}

func (m *Model) renderPad(c pad.Color) string {
	p := palette[c]
	style := lipgloss.NewStyle().
		Width(padWidth).
		Height(padHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(lipgloss.Color("0")).
		Background(p.dim)

	label := fmt.Sprintf("%s (%s)", strings.ToUpper(c.String()), p.key)
	if m.Screen.IsLit(c) {
		style = style.Background(p.bright).Bold(true)
		label = "* " + label + " *"
	} else if m.Screen.Locked {
		style = style.Faint(true)
	}
	return style.Render(label)
}

func indent(block string) string {
	lines := strings.Split(block, "\n")
	for i := range lines {
		lines[i] = margin + lines[i]
	}
	return strings.Join(lines, "\n")
}
