package tower

import (
	"time"

	"github.com/vovakirdan/skytower/internal/config"
)

// resolver detects landings. It keeps no state between ticks.
type resolver struct {
	player      config.PlayerConfig
	floorHeight float64
	slack       float64
}

func newResolver(cfg config.TowerConfig) resolver {
	return resolver{
		player:      cfg.Player,
		floorHeight: cfg.Floors.Height,
		slack:       cfg.Floors.LandingSlack,
	}
}

// canLand reports whether b, moving down or resting, has its bottom edge
// within the landing band of f and overlaps it horizontally.
func (r resolver) canLand(b *Body, f Floor) bool {
	if b.VY < 0 {
		return false
	}
	bottom := b.Bottom(r.player)
	if bottom < f.Y || bottom > f.Y+r.floorHeight+r.slack {
		return false
	}
	return b.Box(r.player).OverlapsX(f.Box(r.floorHeight))
}

// resolve clears OnGround and lands b on the first matching floor in list
// order. The scan is linear; a tower holds a few dozen floors at most.
func (r resolver) resolve(b *Body, floors []Floor, now time.Duration) (Floor, bool) {
	b.OnGround = false
	for _, f := range floors {
		if !r.canLand(b, f) {
			continue
		}
		b.Y = f.Y - r.player.Height
		b.VY = 0
		b.OnGround = true
		b.LastGround = now
		return f, true
	}
	return Floor{}, false
}
