package scenario

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vi-drive/config"
	"github.com/lixenwraith/vi-drive/drivetrain"
	"github.com/lixenwraith/vi-drive/sim"
	"github.com/lixenwraith/vi-drive/terrain"
	"github.com/lixenwraith/vi-drive/vehicle"
	"github.com/lixenwraith/vi-drive/vmath"
	"github.com/lixenwraith/vi-drive/world"
)

// ErrUnknown is returned by ByName for names no preset carries
var ErrUnknown = errors.New("unknown scenario")

// EdgeDistance is how far ahead of the spawn DriveOffEdge's ground ends
const EdgeDistance = 30.0

var asphalt = sim.Env{Terrain: terrain.Flat{Surface: terrain.Asphalt}}

// Rolling places the vehicle moving straight ahead at speed with the drivetrain and wheels matched to it
func Rolling(speed float64) func(cfg *config.Config, st *vehicle.State) {
	return func(cfg *config.Config, st *vehicle.State) {
		st.Body.Velocity = vmath.Lift(vmath.Forward(st.Body.Yaw).Mul(speed), 0)
		st.Drivetrain = drivetrain.Settle(&cfg.Drivetrain, speed, cfg.Vehicle.WheelRadius)
		for i := range st.Wheels {
			st.Wheels[i].AngularVelocity = speed / cfg.Vehicle.WheelRadius
		}
	}
}

func constant(in sim.Input) func(float64) sim.Input {
	return func(float64) sim.Input { return in }
}

// Launch is full throttle from rest on flat asphalt
func Launch() Scenario {
	return Scenario{
		Name:     "launch",
		Duration: 10,
		Env:      asphalt,
		Input:    constant(sim.Input{Throttle: 1}),
	}
}

// Handbrake pulls the handbrake with no pedals from a straight roll at speed
func Handbrake(speed float64) Scenario {
	return Scenario{
		Name:     fmt.Sprintf("handbrake-%g", speed),
		Duration: 3,
		Env:      asphalt,
		Setup:    Rolling(speed),
		Input:    constant(sim.Input{Handbrake: true}),
	}
}

// SteadySteer holds full right lock at 15 m/s
func SteadySteer() Scenario {
	return Scenario{
		Name:     "steady-steer",
		Duration: 3,
		Env:      asphalt,
		Setup:    Rolling(15),
		Input:    constant(sim.Input{Steer: 1}),
	}
}

// DriveOffEdge rolls off the end of the ground and keeps falling until respawn
func DriveOffEdge() Scenario {
	return Scenario{
		Name:     "drive-off-edge",
		Duration: 8,
		Env: sim.Env{Terrain: terrain.Edge{
			Origin:  mgl64.Vec2{0, EdgeDistance},
			Normal:  mgl64.Vec2{0, 1},
			Surface: terrain.Asphalt,
		}},
		Setup: Rolling(15),
		Input: constant(sim.Input{Throttle: 0.2}),
	}
}

// Coast releases every control at speed and lets the vehicle come to rest
func Coast(speed float64) Scenario {
	return Scenario{
		Name:     fmt.Sprintf("coast-%g", speed),
		Duration: 90,
		Env:      asphalt,
		Setup:    Rolling(speed),
	}
}

// WallHit drives into a wall across the path, then backs off and tries again
func WallHit() Scenario {
	return Scenario{
		Name:     "wall-hit",
		Duration: 6,
		Env: sim.Env{
			Terrain: terrain.Flat{Surface: terrain.Asphalt},
			World:   &world.World{Boxes: []world.Box{world.Wall("wall", -20, 20, 20, 21)}},
		},
		Setup: Rolling(12),
		Input: func(t float64) sim.Input {
			if t < 3 {
				return sim.Input{Throttle: 0.5}
			}
			return sim.Input{Throttle: 0.5, Steer: 0.6}
		},
	}
}

// All returns every preset in a stable order
func All() []Scenario {
	return []Scenario{
		Launch(),
		Handbrake(10),
		Handbrake(20),
		Handbrake(30),
		SteadySteer(),
		DriveOffEdge(),
		Coast(20),
		WallHit(),
	}
}

// ByName looks a preset up by its Name
func ByName(name string) (Scenario, error) {
	for _, sc := range All() {
		if sc.Name == name {
			return sc, nil
		}
	}
	return Scenario{}, fmt.Errorf("%w: %q", ErrUnknown, name)
}
