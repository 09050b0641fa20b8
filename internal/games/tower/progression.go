package tower

import (
	"time"

	"github.com/vovakirdan/skytower/internal/config"
)

// Combo tracks consecutive multi-floor landings.
type Combo struct {
	Active   bool
	Count    int
	Floors   int // total floors skipped in this combo
	LastLand time.Duration
	Max      int // best count this run
}

// Progression owns floor progress, score and the combo state machine.
type Progression struct {
	CurrentFloor int
	HighestFloor int
	Score        int
	Combo        Combo

	minFloors int
	timer     time.Duration
}

// NewProgression starts a run at startFloor.
func NewProgression(cfg config.ComboConfig, startFloor int) Progression {
	if startFloor < 1 {
		startFloor = 1
	}
	return Progression{
		CurrentFloor: startFloor,
		HighestFloor: startFloor,
		minFloors:    cfg.MinFloors,
		timer:        cfg.Timer,
	}
}

// Land applies a landing on floor number at sim time now and returns the
// points awarded. Floors at or below the current floor change nothing.
func (p *Progression) Land(number int, now time.Duration) int {
	if number <= p.CurrentFloor {
		return 0
	}

	diff := number - p.CurrentFloor
	p.CurrentFloor = number

	gained := 0
	if number > p.HighestFloor {
		p.HighestFloor = number
		gained += number
	}

	if diff >= p.minFloors {
		if p.Combo.Active {
			p.Combo.Count++
			p.Combo.Floors += diff
		} else {
			p.Combo.Active = true
			p.Combo.Count = 1
			p.Combo.Floors = diff
		}
		p.Combo.LastLand = now
		gained += diff * 10 * p.Combo.Count
		p.Combo.Max = max(p.Combo.Max, p.Combo.Count)
	} else {
		p.endCombo()
	}

	p.Score += gained
	return gained
}

// Expire ends an active combo once more than the combo timer has elapsed
// since its last landing. Reports whether it ended.
func (p *Progression) Expire(now time.Duration) bool {
	if !p.Combo.Active || now-p.Combo.LastLand <= p.timer {
		return false
	}
	p.endCombo()
	return true
}

// Remaining returns the fraction of the combo window left, 0 when inactive.
func (p *Progression) Remaining(now time.Duration) float64 {
	if !p.Combo.Active || p.timer <= 0 {
		return 0
	}
	left := p.timer - (now - p.Combo.LastLand)
	if left <= 0 {
		return 0
	}
	return float64(left) / float64(p.timer)
}

func (p *Progression) endCombo() {
	p.Combo.Active = false
	p.Combo.Count = 0
	p.Combo.Floors = 0
}
