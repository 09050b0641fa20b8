package tower

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/skytower/internal/config"
)

func seededFloors(seed int64) (*FloorSet, config.TowerConfig) {
	cfg := config.DefaultTowerConfig()
	s := NewFloorSet(cfg, rand.New(rand.NewSource(seed)))
	s.Seed()
	return s, cfg
}

func assertContiguous(t *testing.T, floors []Floor) {
	t.Helper()
	for i := 1; i < len(floors); i++ {
		if floors[i].Number != floors[i-1].Number+1 {
			t.Fatalf("floor %d follows floor %d", floors[i].Number, floors[i-1].Number)
		}
	}
}

func TestSeedFloors(t *testing.T) {
	s, cfg := seededFloors(1)
	floors := s.Floors()

	if len(floors) != cfg.Floors.Initial {
		t.Fatalf("seeded %d floors, expected %d", len(floors), cfg.Floors.Initial)
	}

	ground := floors[0]
	if ground.Number != 1 || ground.X != 0 || ground.Width != cfg.World.Width || ground.Y != 500 || ground.Theme != 0 {
		t.Errorf("ground floor = %+v", ground)
	}

	assertContiguous(t, floors)
	for i, f := range floors[1:] {
		prev := floors[i]
		if f.Y != prev.Y-cfg.Floors.VerticalSpacing {
			t.Errorf("floor %d y = %v, expected %v", f.Number, f.Y, prev.Y-cfg.Floors.VerticalSpacing)
		}
		if f.Width < cfg.Floors.MinWidth || f.Width >= cfg.Floors.MaxWidth {
			t.Errorf("floor %d width %v out of range", f.Number, f.Width)
		}
		if f.X < 0 || f.X >= cfg.World.Width-f.Width {
			t.Errorf("floor %d x %v out of range for width %v", f.Number, f.X, f.Width)
		}
	}
}

func TestFloorTheme(t *testing.T) {
	s, _ := seededFloors(1)
	tests := []struct{ number, theme int }{
		{1, 0}, {100, 0}, {101, 1}, {250, 2},
	}
	for _, tc := range tests {
		if got := s.Theme(tc.number); got != tc.theme {
			t.Errorf("Theme(%d) = %d, expected %d", tc.number, got, tc.theme)
		}
	}
}

func TestTopUp(t *testing.T) {
	s, cfg := seededFloors(2)

	if added := s.TopUp(150); added != 0 {
		t.Errorf("initial floors already cover the view, added %d", added)
	}

	cameraY := -5000.0
	added := s.TopUp(cameraY)
	if added == 0 {
		t.Fatal("expected floors to be added for a high camera")
	}
	limit := cameraY - cfg.World.Height - cfg.Floors.TopUpMargin
	if top := s.Top(); top.Y > limit {
		t.Errorf("top floor y %v still above limit %v", top.Y, limit)
	}
	if top := s.Top(); top.Y+cfg.Floors.VerticalSpacing <= limit {
		t.Errorf("top-up overshot: top y %v, limit %v", top.Y, limit)
	}
	assertContiguous(t, s.Floors())

	if again := s.TopUp(cameraY); again != 0 {
		t.Errorf("second top-up added %d floors", again)
	}
}

func TestPrune(t *testing.T) {
	s, cfg := seededFloors(3)
	s.Shift(1000)

	removed := s.Prune(0)
	cutoff := cfg.World.Height + cfg.Floors.PruneMargin
	if removed == 0 {
		t.Fatal("expected shifted floors to be pruned")
	}
	for _, f := range s.Floors() {
		if f.Y >= cutoff {
			t.Errorf("floor %d at y %v should have been pruned", f.Number, f.Y)
		}
	}
	if s.Floors()[0].Number != removed+1 {
		t.Errorf("lowest floor = %d, expected %d", s.Floors()[0].Number, removed+1)
	}
	assertContiguous(t, s.Floors())
}

func TestFloorSetDeterministic(t *testing.T) {
	a, _ := seededFloors(42)
	b, _ := seededFloors(42)
	c, _ := seededFloors(43)

	a.TopUp(-3000)
	b.TopUp(-3000)
	if len(a.Floors()) != len(b.Floors()) {
		t.Fatal("same seed produced different floor counts")
	}
	for i := range a.Floors() {
		if a.Floors()[i] != b.Floors()[i] {
			t.Fatalf("same seed diverged at floor %d", i+1)
		}
	}
	if a.Floors()[1] == c.Floors()[1] {
		t.Error("different seeds should place floors differently")
	}
}

func TestVerifyPanicsOnGap(t *testing.T) {
	s, _ := seededFloors(1)
	s.floors = append(s.floors, Floor{Number: s.Top().Number + 2})

	defer func() {
		if recover() == nil {
			t.Error("verify should panic on a gap in floor numbers")
		}
	}()
	s.verify()
}
