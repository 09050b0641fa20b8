package tower

import (
	"testing"
	"time"

	"github.com/vovakirdan/skytower/internal/config"
)

func TestMultiFloorCombo(t *testing.T) {
	p := NewProgression(config.DefaultTowerConfig().Combo, 1)

	if got := p.Land(4, time.Second); got != 34 {
		t.Errorf("landing 1 -> 4 awarded %d, expected 34", got)
	}
	if !p.Combo.Active || p.Combo.Count != 1 || p.Combo.Floors != 3 {
		t.Errorf("combo = %+v, expected active count 1 floors 3", p.Combo)
	}
	if p.Score != 34 || p.CurrentFloor != 4 || p.HighestFloor != 4 {
		t.Errorf("progress = %+v", p)
	}

	// Extend: 4 -> 6 is a milestone of 6 plus 2*10*2
	if got := p.Land(6, 2*time.Second); got != 46 {
		t.Errorf("landing 4 -> 6 awarded %d, expected 46", got)
	}
	if p.Combo.Count != 2 || p.Combo.Floors != 5 || p.Combo.Max != 2 {
		t.Errorf("extended combo = %+v", p.Combo)
	}
	if p.Combo.LastLand != 2*time.Second {
		t.Errorf("LastLand = %v, expected 2s", p.Combo.LastLand)
	}

	// A single-floor landing ends the combo without a penalty
	if got := p.Land(7, 3*time.Second); got != 7 {
		t.Errorf("landing 6 -> 7 awarded %d, expected 7", got)
	}
	if p.Combo.Active || p.Combo.Count != 0 || p.Combo.Floors != 0 {
		t.Errorf("combo should end, got %+v", p.Combo)
	}
	if p.Combo.Max != 2 {
		t.Errorf("max combo should persist, got %d", p.Combo.Max)
	}
	if p.Score != 87 {
		t.Errorf("score = %d, expected 87", p.Score)
	}
}

func TestBacktrackingIsNoop(t *testing.T) {
	p := NewProgression(config.DefaultTowerConfig().Combo, 1)
	p.Land(5, time.Second)
	before := p

	for _, floor := range []int{5, 4, 1} {
		if got := p.Land(floor, 2*time.Second); got != 0 {
			t.Errorf("Land(%d) awarded %d, expected 0", floor, got)
		}
	}
	if p != before {
		t.Errorf("backtracking changed state:\n%+v\n%+v", before, p)
	}
}

func TestComboTimeoutIsStrict(t *testing.T) {
	p := NewProgression(config.DefaultTowerConfig().Combo, 1)
	p.Land(3, time.Second)

	if p.Expire(4 * time.Second) {
		t.Error("combo should survive exactly the timer length")
	}
	if !p.Combo.Active {
		t.Fatal("combo should still be active")
	}
	if !p.Expire(4*time.Second + time.Nanosecond) {
		t.Error("combo should expire once the timer is exceeded")
	}
	if p.Combo.Active || p.Combo.Count != 0 {
		t.Errorf("expired combo = %+v", p.Combo)
	}
	if p.Expire(10 * time.Second) {
		t.Error("Expire on an inactive combo should report false")
	}
}

func TestComboRemaining(t *testing.T) {
	p := NewProgression(config.DefaultTowerConfig().Combo, 1)
	if p.Remaining(0) != 0 {
		t.Error("inactive combo should have nothing remaining")
	}

	p.Land(3, time.Second)
	if got := p.Remaining(time.Second); got != 1 {
		t.Errorf("Remaining at landing = %v, expected 1", got)
	}
	if got := p.Remaining(2500 * time.Millisecond); !near(got, 0.5) {
		t.Errorf("Remaining halfway = %v, expected 0.5", got)
	}
	if got := p.Remaining(5 * time.Second); got != 0 {
		t.Errorf("Remaining after timeout = %v, expected 0", got)
	}
}

func TestPracticeStartFloorMilestones(t *testing.T) {
	p := NewProgression(config.DefaultTowerConfig().Combo, 10)

	if got := p.Land(5, time.Second); got != 0 {
		t.Errorf("floors below the start floor should award nothing, got %d", got)
	}
	if got := p.Land(11, time.Second); got != 11 {
		t.Errorf("first floor above start awarded %d, expected 11", got)
	}

	if p := NewProgression(config.DefaultTowerConfig().Combo, 0); p.CurrentFloor != 1 {
		t.Errorf("start floor 0 should become 1, got %d", p.CurrentFloor)
	}
}
