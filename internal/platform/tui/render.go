package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/grid-arcade/internal/core"
)

// channelStyles assigns a color per observation channel, cycling when a
// game declares more channels than the palette has.
var channelStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // player
	lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
}

var emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

// glyphFor maps a cell value to a block character. Trail magnitudes show
// how recently the entity arrived: a full block is a settled entity, the
// lighter shades are fresher fractions of a move.
func glyphFor(v float64) rune {
	mag := math.Abs(v)
	switch {
	case mag >= 1:
		return '█'
	case mag >= 0.66:
		return '▓'
	case mag >= 0.33:
		return '▒'
	case mag > 0:
		return '░'
	}
	return '·'
}

// RenderObservation converts an observation into a styled grid, one
// double-width cell per board position. Lower channel indexes win when
// several channels mark the same cell, which keeps the player visible.
func RenderObservation(ob *core.Observation) string {
	var sb strings.Builder
	sb.Grow(ob.Rows * ob.Cols * 8)

	for row := range ob.Rows {
		if row > 0 {
			sb.WriteRune('\n')
		}
		for col := range ob.Cols {
			drawn := false
			for ch := range ob.Channels {
				v := ob.At(row, col, ch)
				if v == 0 {
					continue
				}
				style := channelStyles[ch%len(channelStyles)]
				g := glyphFor(v)
				sb.WriteString(style.Render(string([]rune{g, g})))
				drawn = true
				break
			}
			if !drawn {
				sb.WriteString(emptyStyle.Render("··"))
			}
		}
	}
	return sb.String()
}
