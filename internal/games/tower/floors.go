package tower

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/skytower/internal/config"
	"github.com/vovakirdan/skytower/internal/core"
)

// Floor is a horizontal platform. Numbers are unique and ascending with height.
type Floor struct {
	Number int
	X      float64
	Y      float64 // top surface; smaller is higher
	Width  float64
	Theme  int
}

// Box returns the floor's collision box.
func (f Floor) Box(height float64) core.Box {
	return core.Box{X: f.X, Y: f.Y, W: f.Width, H: height}
}

// FloorSet owns the live floors, ordered by ascending number.
// It spawns floors above the top and prunes floors below the view, keeping
// the numbers a contiguous run at all times.
type FloorSet struct {
	floors []Floor
	rng    *rand.Rand
	cfg    config.FloorsConfig
	world  config.WorldConfig
}

// NewFloorSet creates an empty floor set drawing from rng.
func NewFloorSet(cfg config.TowerConfig, rng *rand.Rand) *FloorSet {
	return &FloorSet{
		floors: make([]Floor, 0, cfg.Floors.Initial+8),
		rng:    rng,
		cfg:    cfg.Floors,
		world:  cfg.World,
	}
}

// Seed replaces the floors with the ground floor plus the initial generated floors.
func (s *FloorSet) Seed() {
	s.floors = s.floors[:0]
	s.floors = append(s.floors, Floor{
		Number: 1,
		X:      0,
		Y:      s.world.Height - s.world.GroundOffset,
		Width:  s.world.Width,
		Theme:  0,
	})
	for len(s.floors) < s.cfg.Initial {
		s.spawn()
	}
	s.verify()
}

// Floors returns the live floors. The slice must not be modified.
func (s *FloorSet) Floors() []Floor {
	return s.floors
}

// Len returns the number of live floors.
func (s *FloorSet) Len() int {
	return len(s.floors)
}

// Top returns the highest floor.
func (s *FloorSet) Top() Floor {
	return s.floors[len(s.floors)-1]
}

// Theme returns the theme index for a floor number.
func (s *FloorSet) Theme(number int) int {
	return (number - 1) / s.cfg.ThemeInterval
}

// spawn appends one floor above the current top.
func (s *FloorSet) spawn() {
	top := s.Top()
	width := s.cfg.MinWidth + s.rng.Float64()*(s.cfg.MaxWidth-s.cfg.MinWidth)
	number := top.Number + 1
	s.floors = append(s.floors, Floor{
		Number: number,
		X:      s.rng.Float64() * (s.world.Width - width),
		Y:      top.Y - s.cfg.VerticalSpacing,
		Width:  width,
		Theme:  s.Theme(number),
	})
}

// TopUp spawns floors until the top floor sits TopUpMargin above the camera's
// top edge. Returns the number of floors added.
func (s *FloorSet) TopUp(cameraY float64) int {
	limit := (cameraY - s.world.Height) - s.cfg.TopUpMargin
	added := 0
	for s.Top().Y > limit {
		s.spawn()
		added++
	}
	if added > 0 {
		s.verify()
	}
	return added
}

// Prune drops floors that have scrolled PruneMargin below the view.
// Returns the number of floors removed.
func (s *FloorSet) Prune(cameraY float64) int {
	cutoff := cameraY + s.world.Height + s.cfg.PruneMargin
	kept := s.floors[:0]
	for _, f := range s.floors {
		if f.Y < cutoff {
			kept = append(kept, f)
		}
	}
	removed := len(s.floors) - len(kept)
	s.floors = kept
	if removed > 0 {
		s.verify()
	}
	return removed
}

// Shift moves every floor down by dy.
func (s *FloorSet) Shift(dy float64) {
	for i := range s.floors {
		s.floors[i].Y += dy
	}
}

// verify panics if the floor numbers are not a contiguous ascending run.
// Collision resolution depends on that ordering.
func (s *FloorSet) verify() {
	if len(s.floors) == 0 {
		panic("tower: floor set is empty")
	}
	for i := 1; i < len(s.floors); i++ {
		if s.floors[i].Number != s.floors[i-1].Number+1 {
			panic(fmt.Sprintf("tower: floor %d follows floor %d", s.floors[i].Number, s.floors[i-1].Number))
		}
	}
}
