package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/skytower/internal/core"
	"github.com/vovakirdan/skytower/internal/storage"
)

// ansiCodes are the terminal 256-color codes for the core palette.
var ansiCodes = [...]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
	core.ColorBrown:         "94",
	core.ColorTan:           "180",
}

var paletteStyles = func() []lipgloss.Style {
	styles := make([]lipgloss.Style, len(ansiCodes))
	for c, code := range ansiCodes {
		styles[c] = lipgloss.NewStyle()
		if code != "" {
			styles[c] = styles[c].Foreground(lipgloss.Color(code))
		}
	}
	return styles
}()

func styleFor(c core.Color) lipgloss.Style {
	if int(c) < len(paletteStyles) {
		return paletteStyles[c]
	}
	return paletteStyles[core.ColorDefault]
}

// RenderScreen turns the screen into terminal text. Each row is split into
// spans of one color so every span costs a single escape sequence.
func RenderScreen(s *core.Screen) string {
	var (
		out  strings.Builder
		span []rune
	)
	out.Grow(2*s.Width()*s.Height() + s.Height())

	for y := range s.Height() {
		if y > 0 {
			out.WriteByte('\n')
		}
		span = span[:0]
		spanColor := s.GetCell(0, y).Color
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != spanColor {
				out.WriteString(styleFor(spanColor).Render(string(span)))
				span, spanColor = span[:0], cell.Color
			}
			span = append(span, cell.Rune)
		}
		if len(span) > 0 {
			out.WriteString(styleFor(spanColor).Render(string(span)))
		}
	}
	return out.String()
}

// drawLeaderboard draws the mode's best runs in a box under the game-over
// message. The run with id highlight is marked.
func drawLeaderboard(dst *core.Screen, runs []storage.RunEntry, highlight int64, coins int) {
	lines := make([]string, 0, len(runs)+1)
	for i, r := range runs {
		mark := " "
		if r.ID == highlight {
			mark = ">"
		}
		lines = append(lines, fmt.Sprintf("%s%2d. %6d  floor %-4d x%d", mark, i+1, r.Score, r.Floor, r.MaxCombo))
	}
	if len(lines) == 0 {
		lines = append(lines, "no runs yet")
	}
	if coins > 0 {
		lines = append(lines, fmt.Sprintf("+%d coins", coins))
	}

	boxW := len("TOP RUNS") + 4
	for _, l := range lines {
		boxW = max(boxW, len(l)+4)
	}
	boxH := len(lines) + 3
	top := dst.Height()/2 + 3
	if top+boxH > dst.Height() {
		top = max(1, dst.Height()-boxH)
	}
	box := core.NewRect((dst.Width()-boxW)/2, top, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorGray)
	dst.DrawTextColored(box.X+2, box.Y+1, "TOP RUNS", core.ColorBrightYellow)
	for i, l := range lines {
		c := core.ColorDefault
		if strings.HasPrefix(l, ">") {
			c = core.ColorBrightCyan
		}
		dst.DrawTextColored(box.X+2, box.Y+2+i, l, c)
	}
}
