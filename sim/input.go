package sim

import (
	"github.com/lixenwraith/vi-drive/terrain"
	"github.com/lixenwraith/vi-drive/vehicle"
	"github.com/lixenwraith/vi-drive/vmath"
	"github.com/lixenwraith/vi-drive/world"
)

// Input is one tick of driver controls
type Input struct {
	Throttle  float64 // [0,1]
	Brake     bool
	Handbrake bool
	Steer     float64 // [-1,1], positive right
}

// Clamp returns the input with analog values forced into range; NaN reads as released
func (in Input) Clamp() Input {
	in.Throttle = vmath.Clamp01(vmath.Finite(in.Throttle))
	in.Steer = vmath.Clamp(vmath.Finite(in.Steer), -1, 1)
	return in
}

// Env is the read-only environment a step runs against
type Env struct {
	Terrain terrain.Provider
	World   *world.World
}

func (e Env) provider() terrain.Provider {
	if e.Terrain == nil {
		return terrain.Flat{}
	}
	return e.Terrain
}

// Spawn is where the vehicle starts and respawns
func (e Env) Spawn() vehicle.Pose {
	if e.World == nil {
		return vehicle.Pose{}
	}
	return e.World.Spawn
}
