package tower

import (
	"math"
	"time"

	"github.com/vovakirdan/skytower/internal/config"
	"github.com/vovakirdan/skytower/internal/core"
)

// neverGrounded is the lastGround stamp of a body that has not landed yet,
// far enough in the past that coyote time cannot apply.
const neverGrounded = -time.Hour

// Body is the player-controlled box.
type Body struct {
	X, Y       float64 // top-left corner
	VX, VY     float64
	OnGround   bool
	LastGround time.Duration // sim time of the latest floor contact
}

// Box returns the body's collision box.
func (b Body) Box(p config.PlayerConfig) core.Box {
	return core.Box{X: b.X, Y: b.Y, W: p.Width, H: p.Height}
}

// Bottom returns the y of the body's bottom edge.
func (b Body) Bottom(p config.PlayerConfig) float64 {
	return b.Y + p.Height
}

// integrator advances a Body by one tick.
type integrator struct {
	phys       config.PhysicsConfig
	player     config.PlayerConfig
	worldWidth float64
	mult       float64
}

func newIntegrator(cfg config.TowerConfig) integrator {
	mult := cfg.Settings.SpeedMultiplier
	if mult <= 0 {
		mult = 1
	}
	return integrator{
		phys:       cfg.Physics,
		player:     cfg.Player,
		worldWidth: cfg.World.Width,
		mult:       mult,
	}
}

// maxSpeed is the horizontal speed limit after the multiplier.
func (it integrator) maxSpeed() float64 {
	return it.phys.MoveMaxSpeed * it.mult
}

// jumpPower interpolates between base and max power by horizontal speed fraction.
func (it integrator) jumpPower(vx float64) float64 {
	frac := core.Clamp(math.Abs(vx)/it.maxSpeed(), 0, 1)
	return core.Lerp(it.phys.JumpPowerBase, it.phys.JumpPowerMax, frac)
}

// step integrates b for one tick. A successful jump releases ActionJump from
// in so holding the key does not repeat it. Reports whether a jump fired.
func (it integrator) step(b *Body, in *core.InputFrame, now time.Duration) bool {
	accel := it.phys.MoveAcceleration * it.mult
	if !b.OnGround {
		accel *= it.phys.AirControl
	}
	if in.Has(core.ActionLeft) {
		b.VX -= accel
	}
	if in.Has(core.ActionRight) {
		b.VX += accel
	}

	if b.OnGround {
		b.VX *= it.phys.Friction
	}
	b.VX = core.Clamp(b.VX, -it.maxSpeed(), it.maxSpeed())

	jumped := false
	canJump := b.OnGround || now-b.LastGround < it.phys.CoyoteTime
	if in.Has(core.ActionJump) && canJump && b.VY >= 0 {
		b.VY = -it.jumpPower(b.VX)
		b.OnGround = false
		in.Release(core.ActionJump)
		jumped = true
	}

	if !b.OnGround {
		b.VY += it.phys.Gravity
	}

	b.X += b.VX
	b.Y += b.VY

	// Lossy bounce off the side walls
	if b.X < 0 {
		b.X = 0
		b.VX = -b.VX * it.phys.WallBounce
	} else if b.X+it.player.Width > it.worldWidth {
		b.X = it.worldWidth - it.player.Width
		b.VX = -b.VX * it.phys.WallBounce
	}

	return jumped
}
