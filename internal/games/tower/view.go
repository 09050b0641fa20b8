package tower

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vovakirdan/skytower/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar = '█'
	FloorChar  = '▀'
	GroundChar = '═'
	AboveChar  = '▲'
)

// Floor colors cycle by theme.
var themeColors = []core.Color{core.ColorBrown, core.ColorRed, core.ColorOrange, core.ColorTan}

// ThemeColor returns the palette color for a floor theme.
func ThemeColor(theme int) core.Color {
	return themeColors[theme%len(themeColors)]
}

// ComboView is the combo meter shown to the player.
type ComboView struct {
	Active    bool
	Count     int
	Floors    int
	Remaining float64 // fraction of the combo window left
}

// View is a read-only copy of everything a renderer needs for one frame.
type View struct {
	WorldW, WorldH float64
	FloorH         float64
	CameraY        float64

	Body     core.Box
	OnGround bool
	Floors   []Floor // floors near the view, ascending

	Floor      int
	Highest    int
	Score      int
	MaxCombo   int
	Combo      ComboView
	ScrollOn   bool
	Speed      float64
	SpeedLevel int
	Hurry      float64 // fraction of the hurry banner left, 0 when hidden
	Elapsed    time.Duration

	Practice bool
	Paused   bool
	GameOver bool
}

// View returns a snapshot of the run for rendering.
func (g *Game) View() View {
	now := g.clock.Now()
	v := View{
		WorldW:   g.cfg.World.Width,
		WorldH:   g.cfg.World.Height,
		FloorH:   g.cfg.Floors.Height,
		CameraY:  g.cameraY,
		Body:     g.body.Box(g.cfg.Player),
		OnGround: g.body.OnGround,

		Floor:    g.progress.CurrentFloor,
		Highest:  g.progress.HighestFloor,
		Score:    g.progress.Score,
		MaxCombo: g.progress.Combo.Max,
		Combo: ComboView{
			Active:    g.progress.Combo.Active,
			Count:     g.progress.Combo.Count,
			Floors:    g.progress.Combo.Floors,
			Remaining: g.progress.Remaining(now),
		},
		ScrollOn:   g.scroll.Active,
		Speed:      g.scroll.Speed,
		SpeedLevel: g.scroll.Level,
		Hurry:      g.scroll.HurryRemaining(now),
		Elapsed:    now,

		Practice: g.practice != nil,
		Paused:   g.paused,
		GameOver: g.gameOver,
	}

	const margin = 50
	for _, f := range g.floors.Floors() {
		screenY := f.Y - g.cameraY
		if screenY > -margin && screenY < v.WorldH+margin {
			v.Floors = append(v.Floors, f)
		}
	}
	return v
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	RenderView(g.View(), dst, g.skin)
}

// RenderView draws v into dst: a HUD line on top and the world scaled
// into the remaining rows.
func RenderView(v View, dst *core.Screen, skin core.Color) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()
	if w <= 0 || h <= 1 || v.WorldW <= 0 || v.WorldH <= 0 {
		return
	}

	area := core.NewRect(0, 1, w, h-1)
	sx := float64(area.W) / v.WorldW
	sy := float64(area.H) / v.WorldH
	toCol := func(x float64) int { return area.X + int(math.Floor(x*sx)) }
	toRow := func(y float64) int { return area.Y + int(math.Floor((y-v.CameraY)*sy)) }

	for _, f := range v.Floors {
		row := toRow(f.Y)
		if row < area.Y || row >= area.Bottom() {
			continue
		}
		x0, x1 := toCol(f.X), toCol(f.X+f.Width)
		ch := FloorChar
		if f.Number == 1 {
			ch = GroundChar
		}
		dst.DrawHLine(x0, row, max(1, x1-x0), ch, ThemeColor(f.Theme))
		if label := fmt.Sprint(f.Number); x1-x0 > len(label)+2 {
			dst.DrawTextColored(x0+1, row, label, core.ColorGray)
		}
	}

	// Player; clipped to the view with a marker when above it
	x0, x1 := toCol(v.Body.X), toCol(v.Body.Right())
	y0, y1 := toRow(v.Body.Y), toRow(v.Body.Bottom())
	if y1 <= area.Y {
		dst.SetColored(x0, area.Y, AboveChar, skin)
	} else {
		for y := max(y0, area.Y); y < max(y1, y0+1) && y < area.Bottom(); y++ {
			dst.DrawHLine(x0, y, max(1, x1-x0), PlayerChar, skin)
		}
	}

	drawHUD(v, dst)

	if v.Hurry > 0 && !v.Paused && !v.GameOver {
		dst.DrawTextCentered(area.Y+area.H/4, fmt.Sprintf(">> HURRY UP! SPEED %d <<", v.SpeedLevel+1), core.ColorBrightRed)
	}
	if v.Paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if v.GameOver {
		drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Floor %d  |  Score %d  |  Combo x%d  |  R to restart", v.Highest, v.Score, v.MaxCombo))
	}
}

func drawHUD(v View, dst *core.Screen) {
	hud := fmt.Sprintf(" Floor %d  Best %d  Score %d", v.Floor, v.Highest, v.Score)
	if v.ScrollOn {
		hud += fmt.Sprintf("  Speed %d", v.SpeedLevel+1)
	}
	if v.Practice {
		hud += "  [practice]"
	}
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)

	if !v.Combo.Active {
		return
	}
	const barW = 10
	filled := int(math.Ceil(v.Combo.Remaining * barW))
	combo := fmt.Sprintf("COMBO x%d [%s%s] ", v.Combo.Count,
		strings.Repeat("#", filled), strings.Repeat(" ", barW-filled))
	dst.DrawTextColored(dst.Width()-len(combo), 0, combo, core.ColorBrightYellow)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextColored(box.X+(boxW-len(title))/2, box.Y+1, title, core.ColorBrightWhite)
	dst.DrawTextColored(box.X+(boxW-len(subtitle))/2, box.Y+3, subtitle, core.ColorDefault)
}
