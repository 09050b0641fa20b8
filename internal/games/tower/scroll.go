package tower

import (
	"time"

	"github.com/vovakirdan/skytower/internal/config"
)

// Scroll is the forced downward shove of the world.
// Once active it stays active for the rest of the run.
type Scroll struct {
	Active       bool
	Speed        float64
	Level        int
	LastIncrease time.Duration
	HurryUntil   time.Duration

	cfg      config.ScrollConfig
	bypassed bool
}

// NewScroll creates an inactive scroll. A bypassed scroll never activates.
func NewScroll(cfg config.ScrollConfig, bypassed bool) Scroll {
	return Scroll{cfg: cfg, bypassed: bypassed}
}

// Update activates or escalates the scroll for this tick and returns the
// distance the world moves down. leveledUp is set when the speed increased.
func (s *Scroll) Update(currentFloor int, now time.Duration) (shift float64, leveledUp bool) {
	if s.bypassed {
		return 0, false
	}

	if !s.Active && currentFloor >= s.cfg.StartFloor {
		s.Active = true
		s.Speed = s.cfg.InitialSpeed
		s.LastIncrease = now
	}
	if !s.Active {
		return 0, false
	}

	if s.cfg.Escalate && now-s.LastIncrease >= s.cfg.Interval {
		s.Speed += s.cfg.Increment
		s.Level++
		s.LastIncrease = now
		s.HurryUntil = now + s.cfg.HurryBanner
		leveledUp = true
	}

	return s.Speed, leveledUp
}

// Hurry reports whether the hurry banner is showing at now.
func (s *Scroll) Hurry(now time.Duration) bool {
	return s.Level > 0 && now < s.HurryUntil
}

// HurryRemaining returns the fraction of the banner time left.
func (s *Scroll) HurryRemaining(now time.Duration) float64 {
	if !s.Hurry(now) || s.cfg.HurryBanner <= 0 {
		return 0
	}
	return float64(s.HurryUntil-now) / float64(s.cfg.HurryBanner)
}
