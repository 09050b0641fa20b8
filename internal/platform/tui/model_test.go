package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/skytower/internal/config"
	"github.com/vovakirdan/skytower/internal/core"
	"github.com/vovakirdan/skytower/internal/games/tower"
	"github.com/vovakirdan/skytower/internal/storage"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// harness drives a Model with a controllable clock.
type harness struct {
	t     *testing.T
	now   time.Time
	model Model
	game  *tower.Game
}

func newHarness(t *testing.T, practice *tower.PracticeSettings, opts Options) *harness {
	t.Helper()
	h := &harness{t: t, now: epoch}
	h.game = tower.NewWithConfig(config.DefaultTowerConfig(), practice)
	opts.Clock = func() time.Time { return h.now }
	h.model = NewModel(h.game, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 5}, opts)
	h.frame(0)
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.model.Update(msg)
	m, ok := next.(Model)
	if !ok {
		h.t.Fatalf("Update returned %T", next)
	}
	h.model = m
	return cmd
}

// frame advances the clock by d and delivers one tick.
func (h *harness) frame(d time.Duration) tea.Cmd {
	h.now = h.now.Add(d)
	return h.send(TickMsg(h.now))
}

func (h *harness) runUntilOver(limit int) {
	h.t.Helper()
	for i := 0; i < limit && !h.game.State().GameOver; i++ {
		h.frame(100 * time.Millisecond)
	}
	if !h.game.State().GameOver {
		h.t.Fatal("run never ended")
	}
}

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key    string
		action core.Action
		quit   bool
	}{
		{"left", core.ActionLeft, false},
		{"a", core.ActionLeft, false},
		{"right", core.ActionRight, false},
		{"d", core.ActionRight, false},
		{" ", core.ActionJump, false},
		{"up", core.ActionJump, false},
		{"w", core.ActionJump, false},
		{"p", core.ActionPause, false},
		{"esc", core.ActionPause, false},
		{"r", core.ActionRestart, false},
		{"b", core.ActionBack, false},
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"x", core.ActionNone, false},
	}
	for _, tc := range tests {
		action, quit := km.MapKey(keyMsg(tc.key))
		if action != tc.action || quit != tc.quit {
			t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tc.key, action, quit, tc.action, tc.quit)
		}
	}
}

func TestMenuKeys(t *testing.T) {
	km := NewKeyMapper()
	tests := map[string]MenuAction{
		"up": MenuActionUp, "j": MenuActionDown, " ": MenuActionSelect,
		"esc": MenuActionBack, "tab": MenuActionScoreboard, "q": MenuActionQuit,
	}
	for k, want := range tests {
		msg := keyMsg(k)
		if k == "tab" {
			msg = tea.KeyMsg{Type: tea.KeyTab}
		}
		if got := km.MapKeyToMenuAction(msg); got != want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", k, got, want)
		}
	}
}

func TestHeldKeysWindow(t *testing.T) {
	h := NewHeldKeys(100 * time.Millisecond)
	h.Press(core.ActionLeft, epoch)

	if in := h.Frame(epoch.Add(50 * time.Millisecond)); !in.Has(core.ActionLeft) {
		t.Error("left should be held inside the window")
	}
	h.Press(core.ActionLeft, epoch.Add(90*time.Millisecond)) // key repeat extends it
	if in := h.Frame(epoch.Add(150 * time.Millisecond)); !in.Has(core.ActionLeft) {
		t.Error("a repeat should extend the hold")
	}
	if in := h.Frame(epoch.Add(300 * time.Millisecond)); in.Has(core.ActionLeft) {
		t.Error("left should be released after the window")
	}
}

func TestHeldKeysOppositeDirections(t *testing.T) {
	h := NewHeldKeys(0)
	h.Press(core.ActionLeft, epoch)
	h.Press(core.ActionRight, epoch)

	in := h.Frame(epoch)
	if in.Has(core.ActionLeft) || !in.Has(core.ActionRight) {
		t.Errorf("frame = %v, expected only right", in)
	}
}

func TestHeldKeysSyncDropsConsumedJump(t *testing.T) {
	h := NewHeldKeys(time.Second)
	h.Press(core.ActionJump, epoch)
	h.Press(core.ActionRight, epoch)

	in := h.Frame(epoch)
	in.Release(core.ActionJump) // the simulation jumped
	h.Sync(in)

	next := h.Frame(epoch.Add(10 * time.Millisecond))
	if next.Has(core.ActionJump) {
		t.Error("a consumed jump must wait for the next press")
	}
	if !next.Has(core.ActionRight) {
		t.Error("movement should stay held")
	}
}

func TestModelRunsTicks(t *testing.T) {
	h := newHarness(t, nil, Options{})
	before := h.game.Snapshot().Tick

	cmd := h.frame(50 * time.Millisecond)
	if cmd == nil {
		t.Error("a tick should schedule the next one")
	}
	if got := h.game.Snapshot().Tick - before; got != 6 {
		t.Errorf("50ms ran %d ticks, expected 6", got)
	}
}

func TestModelPauseFreezesRun(t *testing.T) {
	h := newHarness(t, nil, Options{})
	h.frame(100 * time.Millisecond)

	h.send(keyMsg("p"))
	if !h.game.State().Paused {
		t.Fatal("p should pause the run")
	}
	snap := h.game.Snapshot()
	before := snap.Hash()
	for i := 0; i < 20; i++ {
		h.frame(100 * time.Millisecond)
	}
	if after := h.game.Snapshot(); after.Hash() != before {
		t.Error("the run advanced while paused")
	}

	// Movement keys are ignored while paused
	h.send(keyMsg("left"))
	h.send(keyMsg("esc"))
	if h.game.State().Paused {
		t.Fatal("esc should resume")
	}
	h.frame(20 * time.Millisecond)
	if snap := h.game.Snapshot(); snap.BodyVX != 0 {
		t.Errorf("a key pressed during the pause moved the player: vx=%v", snap.BodyVX)
	}
}

func TestModelSavesRunOnce(t *testing.T) {
	h := newHarness(t, &tower.PracticeSettings{StartFloor: 10}, Options{})

	h.runUntilOver(3000)
	if h.model.saveRequests != 1 {
		t.Fatalf("save requested %d times at game over, expected 1", h.model.saveRequests)
	}

	for i := 0; i < 30; i++ {
		h.frame(100 * time.Millisecond)
	}
	h.send(keyMsg("p"))
	if h.model.saveRequests != 1 {
		t.Errorf("save requested %d times, expected exactly 1", h.model.saveRequests)
	}
	if h.game.State().Paused {
		t.Error("a finished run cannot be paused")
	}
}

func TestModelRestart(t *testing.T) {
	h := newHarness(t, &tower.PracticeSettings{StartFloor: 10}, Options{})

	h.frame(100 * time.Millisecond)
	h.send(keyMsg("r"))
	if h.game.Snapshot().Tick == 0 || h.game.State().GameOver {
		t.Fatal("r during a live run should be ignored")
	}

	h.runUntilOver(3000)
	h.send(keyMsg("r"))
	if h.game.State().GameOver {
		t.Fatal("r should start a new run after game over")
	}
	if h.model.saveRequests != 0 || h.model.saved != nil {
		t.Error("restart should clear the save state")
	}
	if h.game.Snapshot().Tick != 0 {
		t.Error("restart should begin from tick 0")
	}
}

func TestModelQuitAndBack(t *testing.T) {
	h := newHarness(t, nil, Options{AllowBack: true})

	h.send(keyMsg("b"))
	if h.model.BackToMenu() {
		t.Error("b during a live run should be ignored")
	}
	h.send(keyMsg("p"))
	h.send(keyMsg("b"))
	if !h.model.BackToMenu() {
		t.Error("b while paused should return to the menu")
	}

	cmd := h.send(keyMsg("q"))
	if !h.model.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if h.model.View() != "" {
		t.Error("a quitting model renders nothing")
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	h := newHarness(t, nil, Options{})
	h.frame(100 * time.Millisecond)
	snap := h.game.Snapshot()
	before := snap.Hash()

	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	if after := h.game.Snapshot(); after.Hash() != before {
		t.Error("resizing should not touch the run")
	}
	if h.model.screen.Width() != 120 || h.model.screen.Height() != 40 {
		t.Errorf("screen = %dx%d", h.model.screen.Width(), h.model.screen.Height())
	}
}

func TestSaveRunCmdShowsLeaderboard(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	h := newHarness(t, &tower.PracticeSettings{StartFloor: 10}, Options{Store: store})
	h.runUntilOver(3000)

	summary := h.game.State().Summary
	msg := saveRunCmd(h.model.opts, h.model.run, h.game.ID(), summary)()
	saved, ok := msg.(runSavedMsg)
	if !ok {
		t.Fatalf("save command returned %T", msg)
	}
	if saved.err != nil || len(saved.board) != 1 || saved.board[0].ID != saved.id {
		t.Fatalf("saved = %+v", saved)
	}

	h.send(saved)
	if view := h.model.View(); !strings.Contains(view, "TOP RUNS") {
		t.Error("game over view should list the top runs")
	}
}

func TestStaleSaveIgnoredAfterRestart(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	h := newHarness(t, &tower.PracticeSettings{StartFloor: 10}, Options{Store: store})
	h.runUntilOver(3000)
	first := h.model.run
	stale := saveRunCmd(h.model.opts, first, h.game.ID(), h.game.State().Summary)()

	h.send(keyMsg("r"))
	if h.model.run == first {
		t.Fatal("restart should start a new run number")
	}
	h.send(stale)
	if h.model.saved != nil {
		t.Error("a save from the previous run should not reach the new run")
	}

	h.runUntilOver(3000)
	h.send(stale)
	if strings.Contains(h.model.View(), "TOP RUNS") {
		t.Error("game over view should wait for its own run's save")
	}
}
