// Package gui draws the tower in a desktop window with ebiten.
// Ebiten's Update drives the same fixed-step loop the terminal uses, so a
// run plays identically in both.
package gui

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/skytower/internal/core"
	"github.com/vovakirdan/skytower/internal/engine"
	"github.com/vovakirdan/skytower/internal/games/tower"
	"github.com/vovakirdan/skytower/internal/storage"
	"github.com/vovakirdan/skytower/internal/wallet"
)

// Options are the services the window uses around the run. All are optional.
type Options struct {
	Store         *storage.Store
	Wallet        *wallet.Wallet
	FloorsPerCoin int
	Logger        *log.Logger
	Scale         float64 // window size relative to the world
}

var (
	backgroundColor = color.RGBA{0x12, 0x14, 0x24, 0xff}
	overlayColor    = color.RGBA{0x00, 0x00, 0x00, 0xb0}
	comboColor      = color.RGBA{0xf5, 0xf5, 0x43, 0xff}
)

// Game adapts a tower run to ebiten.Game.
type Game struct {
	sim       *tower.Game
	loop      *engine.Loop
	opts      Options
	runtime   core.RuntimeConfig
	fixedSeed bool
	skin      color.RGBA

	jumpPending bool

	hurry      *gween.Tween
	hurryAlpha float32
	lastLevel  int

	saveRequested bool
	mu            sync.Mutex // guards run, board and coins against the save goroutine
	run           int        // bumped on restart; saves of older runs are dropped
	board         []storage.RunEntry
	savedID       int64
	coins         int
}

// New wraps sim and starts a fresh run.
func New(sim *tower.Game, rc core.RuntimeConfig, opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}

	g := &Game{
		sim:       sim,
		opts:      opts,
		runtime:   rc,
		fixedSeed: rc.Seed != 0,
		skin:      rgba(core.ColorBrightCyan),
	}
	if opts.Wallet != nil {
		g.skin = rgba(opts.Wallet.CurrentColor())
	}
	if !g.fixedSeed {
		g.runtime.Seed = time.Now().UnixNano()
	}

	sim.Reset(g.runtime)
	g.loop = engine.NewLoop(sim, sim.Timing(), g.runtime)
	return g
}

func rgba(c core.Color) color.RGBA {
	r, gr, b := c.RGB()
	return color.RGBA{r, gr, b, 0xff}
}

// input polls the keyboard. A jump is asserted from its press until the
// simulation consumes it or the key is let go.
func (g *Game) input() core.InputFrame {
	in := core.NewInputFrame()
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		in.Set(core.ActionLeft)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		in.Set(core.ActionRight)
	}

	jumpDown := ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW)
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyW) {
		g.jumpPending = true
	}
	if !jumpDown {
		g.jumpPending = false
	}
	if g.jumpPending {
		in.Set(core.ActionJump)
	}
	return in
}

// Update runs the ticks due this frame.
func (g *Game) Update() error {
	now := time.Now()

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.loop.TogglePause(now)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && g.sim.State().GameOver {
		g.restart(now)
	}

	in := g.input()
	res := g.loop.Frame(now, &in)
	if !in.Has(core.ActionJump) {
		g.jumpPending = false
	}

	g.updateHurry()

	if res.Ended && !g.saveRequested {
		g.saveRequested = true
		g.mu.Lock()
		run := g.run
		g.mu.Unlock()
		go g.saveRun(run, g.sim.ID(), g.sim.State().Summary)
	}
	return nil
}

// updateHurry fades the speed-up banner in step with ebiten's tick rate.
func (g *Game) updateHurry() {
	v := g.sim.View()
	if v.SpeedLevel > g.lastLevel {
		secs := float32(g.sim.Config().Scroll.HurryBanner.Seconds())
		g.hurry = gween.New(1, 0, max(secs, 0.1), ease.InQuad)
	}
	g.lastLevel = v.SpeedLevel

	if g.hurry == nil || g.loop.Paused() {
		return
	}
	alpha, done := g.hurry.Update(1 / float32(ebiten.TPS()))
	g.hurryAlpha = alpha
	if done {
		g.hurry = nil
		g.hurryAlpha = 0
	}
}

func (g *Game) restart(now time.Time) {
	if !g.fixedSeed {
		g.runtime.Seed = now.UnixNano()
	}
	g.loop.ResetWith(now, g.runtime)
	g.jumpPending = false
	g.hurry = nil
	g.hurryAlpha = 0
	g.lastLevel = 0
	g.saveRequested = false

	g.mu.Lock()
	g.run++
	g.board, g.savedID, g.coins = nil, 0, 0
	g.mu.Unlock()
}

// saveRun persists a finished run. It runs on its own goroutine.
func (g *Game) saveRun(seq int, mode string, run core.RunSummary) {
	var (
		board []storage.RunEntry
		id    int64
		coins int
	)
	if g.opts.Store != nil {
		var err error
		if id, err = g.opts.Store.SaveRun(mode, run); err != nil {
			g.opts.Logger.Warn("run not saved", "mode", mode, "err", err)
		}
		if board, err = g.opts.Store.TopRuns(mode, g.opts.Store.Keep()); err != nil {
			g.opts.Logger.Warn("cannot load top runs", "mode", mode, "err", err)
		}
	}
	if g.opts.Wallet != nil {
		var err error
		if coins, err = g.opts.Wallet.CreditRun(run, g.opts.FloorsPerCoin); err != nil {
			g.opts.Logger.Warn("coins not credited", "err", err)
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if seq != g.run {
		return
	}
	g.board, g.savedID, g.coins = board, id, coins
}

// Draw renders the world view, HUD and overlays.
func (g *Game) Draw(screen *ebiten.Image) {
	v := g.sim.View()
	screen.Fill(backgroundColor)

	for _, f := range v.Floors {
		y := float32(f.Y - v.CameraY)
		vector.FillRect(screen, float32(f.X), y, float32(f.Width), float32(v.FloorH), rgba(tower.ThemeColor(f.Theme)), false)
		if f.Width > 40 {
			ebitenutil.DebugPrintAt(screen, fmt.Sprint(f.Number), int(f.X)+4, int(y)+2)
		}
	}

	b := v.Body
	vector.FillRect(screen, float32(b.X), float32(b.Y-v.CameraY), float32(b.W), float32(b.H), g.skin, false)

	g.drawHUD(screen, v)

	w, h := float32(v.WorldW), float32(v.WorldH)
	if g.hurryAlpha > 0 && !v.GameOver {
		banner := color.RGBA{0xf1, 0x4c, 0x4c, uint8(200 * g.hurryAlpha)}
		vector.FillRect(screen, 0, h/4-20, w, 40, banner, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf(">> HURRY UP! SPEED %d <<", v.SpeedLevel+1), int(w/2)-80, int(h/4)-8)
	}

	switch {
	case v.Paused:
		vector.FillRect(screen, 0, 0, w, h, overlayColor, false)
		ebitenutil.DebugPrintAt(screen, "PAUSED - press P to resume", int(w/2)-80, int(h/2))
	case v.GameOver:
		vector.FillRect(screen, 0, 0, w, h, overlayColor, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("GAME OVER  floor %d  score %d  combo x%d", v.Highest, v.Score, v.MaxCombo), int(w/2)-130, int(h/3))
		ebitenutil.DebugPrintAt(screen, "R to restart, Q to quit", int(w/2)-70, int(h/3)+20)
		g.drawBoard(screen, int(w/2)-110, int(h/3)+50)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image, v tower.View) {
	hud := fmt.Sprintf("Floor %d  Best %d  Score %d", v.Floor, v.Highest, v.Score)
	if v.ScrollOn {
		hud += fmt.Sprintf("  Speed %d", v.SpeedLevel+1)
	}
	if v.Practice {
		hud += "  [practice]"
	}
	ebitenutil.DebugPrintAt(screen, hud, 8, 4)

	if !v.Combo.Active {
		return
	}
	const barW = 120
	x := float32(v.WorldW) - barW - 12
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("COMBO x%d", v.Combo.Count), int(x), 4)
	vector.StrokeRect(screen, x, 22, barW, 8, 1, comboColor, false)
	vector.FillRect(screen, x, 22, barW*float32(v.Combo.Remaining), 8, comboColor, false)
}

func (g *Game) drawBoard(screen *ebiten.Image, x, y int) {
	g.mu.Lock()
	board, id, coins := g.board, g.savedID, g.coins
	g.mu.Unlock()

	if g.opts.Store == nil {
		return
	}
	ebitenutil.DebugPrintAt(screen, "TOP RUNS", x, y)
	for i, r := range board {
		mark := " "
		if r.ID == id {
			mark = ">"
		}
		line := fmt.Sprintf("%s%2d. %6d  floor %-4d x%d", mark, i+1, r.Score, r.Floor, r.MaxCombo)
		ebitenutil.DebugPrintAt(screen, line, x, y+16*(i+1))
	}
	if coins > 0 {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("+%d coins", coins), x, y+16*(len(board)+2))
	}
}

// Layout draws in world units; ebiten scales to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	cfg := g.sim.Config()
	return int(cfg.World.Width), int(cfg.World.Height)
}

// Run opens the window and blocks until it is closed.
func Run(sim *tower.Game, rc core.RuntimeConfig, opts Options) error {
	g := New(sim, rc, opts)
	cfg := sim.Config()

	ebiten.SetWindowTitle(sim.Title())
	ebiten.SetWindowSize(int(cfg.World.Width*g.opts.Scale), int(cfg.World.Height*g.opts.Scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if rc.TickRate > 0 {
		ebiten.SetTPS(rc.TickRate)
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("gui: %w", err)
	}
	return nil
}
