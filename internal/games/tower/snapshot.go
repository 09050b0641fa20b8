package tower

import "math"

// Snapshot contains the complete simulation state for determinism checks.
// Uses primitive types only for stable hashing.
type Snapshot struct {
	Tick    uint64
	SimTime int64 // nanoseconds

	BodyX, BodyY   float64
	BodyVX, BodyVY float64
	OnGround       bool
	LastGround     int64
	CameraY        float64

	CurrentFloor int
	HighestFloor int
	Score        int

	ComboActive   bool
	ComboCount    int
	ComboFloors   int
	ComboLastLand int64
	ComboMax      int

	ScrollActive bool
	ScrollSpeed  float64
	SpeedLevel   int
	LastIncrease int64
	HurryUntil   int64
	GameOver     bool

	// Floors flattened as (Number, X, Y, Width) groups
	FloorCount int
	FloorData  []float64
}

// Snapshot returns the current simulation state.
func (g *Game) Snapshot() Snapshot {
	floors := g.floors.Floors()
	data := make([]float64, 0, len(floors)*4)
	for _, f := range floors {
		data = append(data, float64(f.Number), f.X, f.Y, f.Width)
	}

	return Snapshot{
		Tick:    uint64(g.tickCount), //#nosec G115 -- tick count is always positive
		SimTime: int64(g.clock.Now()),

		BodyX:      g.body.X,
		BodyY:      g.body.Y,
		BodyVX:     g.body.VX,
		BodyVY:     g.body.VY,
		OnGround:   g.body.OnGround,
		LastGround: int64(g.body.LastGround),
		CameraY:    g.cameraY,

		CurrentFloor: g.progress.CurrentFloor,
		HighestFloor: g.progress.HighestFloor,
		Score:        g.progress.Score,

		ComboActive:   g.progress.Combo.Active,
		ComboCount:    g.progress.Combo.Count,
		ComboFloors:   g.progress.Combo.Floors,
		ComboLastLand: int64(g.progress.Combo.LastLand),
		ComboMax:      g.progress.Combo.Max,

		ScrollActive: g.scroll.Active,
		ScrollSpeed:  g.scroll.Speed,
		SpeedLevel:   g.scroll.Level,
		LastIncrease: int64(g.scroll.LastIncrease),
		HurryUntil:   int64(g.scroll.HurryUntil),
		GameOver:     g.gameOver,

		FloorCount: len(floors),
		FloorData:  data,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
// Floats are hashed by their bit patterns, so equal hashes mean bit-identical state.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.SimTime) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.BodyX)
	h = h*31 + math.Float64bits(snap.BodyY)
	h = h*31 + math.Float64bits(snap.BodyVX)
	h = h*31 + math.Float64bits(snap.BodyVY)
	h = h*31 + boolBits(snap.OnGround)
	h = h*31 + uint64(snap.LastGround) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.CameraY)

	h = h*31 + uint64(snap.CurrentFloor) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HighestFloor) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)        //#nosec G115 -- hash computation

	h = h*31 + boolBits(snap.ComboActive)
	h = h*31 + uint64(snap.ComboCount)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ComboFloors)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ComboLastLand) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ComboMax)      //#nosec G115 -- hash computation

	h = h*31 + boolBits(snap.ScrollActive)
	h = h*31 + math.Float64bits(snap.ScrollSpeed)
	h = h*31 + uint64(snap.SpeedLevel)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.LastIncrease) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HurryUntil)   //#nosec G115 -- hash computation
	h = h*31 + boolBits(snap.GameOver)

	h = h*31 + uint64(snap.FloorCount) //#nosec G115 -- hash computation
	for _, v := range snap.FloorData {
		h = h*31 + math.Float64bits(v)
	}
	return h
}

func boolBits(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
