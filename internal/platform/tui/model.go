package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skytower/internal/core"
	"github.com/vovakirdan/skytower/internal/engine"
	"github.com/vovakirdan/skytower/internal/registry"
	"github.com/vovakirdan/skytower/internal/storage"
	"github.com/vovakirdan/skytower/internal/wallet"
)

// Options are the services a Model uses around the run. All are optional.
type Options struct {
	Store          *storage.Store
	Wallet         *wallet.Wallet
	FloorsPerCoin  int
	HoldWindow     time.Duration
	Logger         *log.Logger
	Clock          func() time.Time // source for key press times; time.Now when nil
	AllowBack      bool             // b/esc after a run returns to the session menu
	ScreenshotsDir string
}

// skinned is implemented by games that draw the player in a wallet color.
type skinned interface {
	SetSkin(c core.Color)
}

// runSeq numbers runs across every model, so a save result can be matched
// to the run that produced it.
var runSeq atomic.Uint64

// runSavedMsg reports the finished run's persistence.
type runSavedMsg struct {
	run   uint64 // runSeq value of the saved run
	id    int64
	board []storage.RunEntry
	coins int
	err   error
}

// Model is the Bubble Tea model for one game mode.
type Model struct {
	game      registry.Game
	loop      *engine.Loop
	screen    *core.Screen
	opts      Options
	config    core.RuntimeConfig
	fixedSeed bool
	keys      *KeyMapper
	held      *HeldKeys

	run          uint64 // runSeq value of the current run
	saveRequests int    // save commands issued for the current run
	saved        *runSavedMsg
	quitting     bool
	backToMenu   bool
}

// NewModel creates a model and starts a fresh run of game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	fixedSeed := cfg.Seed != 0
	if !fixedSeed {
		cfg.Seed = opts.Clock().UnixNano()
	}

	if opts.Wallet != nil {
		if s, ok := game.(skinned); ok {
			s.SetSkin(opts.Wallet.CurrentColor())
		}
	}

	game.Reset(cfg)
	return Model{
		game:      game,
		loop:      engine.NewLoop(game, game.Timing(), cfg),
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:      opts,
		config:    cfg,
		fixedSeed: fixedSeed,
		keys:      NewKeyMapper(),
		held:      NewHeldKeys(opts.HoldWindow),
		run:       runSeq.Add(1),
	}
}

// Init starts the frame ticker.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The world is resolution independent, so resizing keeps the run
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case runSavedMsg:
		if msg.run != m.run {
			return m, nil // a run that was restarted away
		}
		if msg.err != nil {
			m.opts.Logger.Warn("run not saved", "mode", m.game.ID(), "err", msg.err)
		}
		m.saved = &msg
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	now := m.opts.Clock()
	over := m.game.State().GameOver

	switch action {
	case core.ActionLeft, core.ActionRight, core.ActionJump:
		if !over && !m.loop.Paused() {
			m.held.Press(action, now)
		}
	case core.ActionPause:
		if m.opts.AllowBack && over {
			m.backToMenu = true
			return m, tea.Quit
		}
		m.loop.TogglePause(now)
		m.held.Clear()
	case core.ActionBack:
		if m.opts.AllowBack && (over || m.loop.Paused()) {
			m.backToMenu = true
			return m, tea.Quit
		}
	case core.ActionRestart:
		if over {
			m.restart(now)
		}
	}

	return m, nil
}

// restart begins a new run, with a new seed unless one was given.
func (m *Model) restart(now time.Time) {
	if !m.fixedSeed {
		m.config.Seed = now.UnixNano()
	}
	m.loop.ResetWith(now, m.config)
	m.held.Clear()
	m.run = runSeq.Add(1)
	m.saveRequests = 0
	m.saved = nil
}

// handleTick runs the simulation ticks due at now.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	in := m.held.Frame(now)
	res := m.loop.Frame(now, &in)
	m.held.Sync(in)

	next := tickCmd(m.config.TickRate)
	if res.Ended && m.saveRequests == 0 {
		m.saveRequests++
		summary := m.game.State().Summary
		return m, tea.Batch(next, saveRunCmd(m.opts, m.run, m.game.ID(), summary))
	}
	return m, next
}

// saveRunCmd persists a finished run off the update loop.
// Saving is best effort; failures are only logged.
func saveRunCmd(opts Options, seq uint64, mode string, run core.RunSummary) tea.Cmd {
	return func() tea.Msg {
		msg := runSavedMsg{run: seq}
		if opts.Store != nil {
			id, err := opts.Store.SaveRun(mode, run)
			if err != nil {
				msg.err = err
			} else {
				msg.id = id
			}
			board, err := opts.Store.TopRuns(mode, opts.Store.Keep())
			if err != nil && msg.err == nil {
				msg.err = err
			}
			msg.board = board
		}
		if opts.Wallet != nil {
			coins, err := opts.Wallet.CreditRun(run, opts.FloorsPerCoin)
			if err != nil {
				opts.Logger.Warn("coins not credited", "err", err)
			}
			msg.coins = coins
		}
		return msg
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotsDir
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".skytower", "screenshots")
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := m.opts.Clock().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("screenshot failed", "path", path, "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.game.State().GameOver && m.saved != nil && m.opts.Store != nil {
		drawLeaderboard(m.screen, m.saved.board, m.saved.id, m.saved.coins)
	}
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for game.
// It reports whether the player asked to go back to the menu.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (backToMenu bool, err error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	return ok && m.BackToMenu(), nil
}
