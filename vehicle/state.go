// Package vehicle holds the plain-data vehicle state owned by the simulation step
package vehicle

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vi-drive/config"
	"github.com/lixenwraith/vi-drive/drivetrain"
	"github.com/lixenwraith/vi-drive/vmath"
)

// Regime is the ground contact classification of the whole vehicle
type Regime int

const (
	ContactFull Regime = iota
	ContactPartial
	ContactNone
)

func (r Regime) String() string {
	switch r {
	case ContactFull:
		return "full"
	case ContactPartial:
		return "partial"
	case ContactNone:
		return "airborne"
	default:
		return "unknown"
	}
}

// Pose is a spawn point: ground-level position and heading
type Pose struct {
	Position mgl64.Vec3
	Yaw      float64
}

// Body is the rigid chassis
type Body struct {
	Mass       float64
	Wheelbase  float64
	TrackWidth float64
	CoGHeight  float64
	Inertia    float64

	Position mgl64.Vec3
	Velocity mgl64.Vec3 // Y is vertical speed

	Yaw       float64
	YawRate   float64
	Pitch     float64
	PitchRate float64
	Roll      float64

	SteerAngle float64

	// Local accelerations from the previous integration, used for weight transfer
	LongAccel float64
	LatAccel  float64
}

// State is the complete simulation state; copying it copies everything
type State struct {
	Body       Body
	Wheels     [WheelCount]Wheel
	Drivetrain drivetrain.State

	Regime     Regime
	Skidding   bool
	Collisions int
	Respawns   int
	RNG        uint64
	Tick       uint64
	Time       float64
}

// New returns a vehicle at rest on spawn
func New(cfg *config.Config, spawn Pose) State {
	var st State
	st.RNG = cfg.Step.Seed
	st.Reset(cfg, spawn)
	return st
}

// Reset places the vehicle at rest on spawn in one assignment
// Counters, tick, and RNG survive; everything dynamic returns to the static rest state
func (s *State) Reset(cfg *config.Config, spawn Pose) {
	next := State{
		Body: Body{
			Mass:       cfg.Vehicle.Mass,
			Wheelbase:  cfg.Vehicle.Wheelbase(),
			TrackWidth: cfg.Vehicle.TrackWidth,
			CoGHeight:  cfg.Vehicle.CoGHeight,
			Inertia:    cfg.Vehicle.YawInertia,
			Position:   spawn.Position.Add(mgl64.Vec3{0, cfg.Vehicle.RideHeight, 0}),
			Yaw:        vmath.WrapAngle(spawn.Yaw),
		},
		Drivetrain: drivetrain.Initial(&cfg.Drivetrain),
		Regime:     ContactFull,
		Collisions: s.Collisions,
		Respawns:   s.Respawns,
		RNG:        s.RNG,
		Tick:       s.Tick,
		Time:       s.Time,
	}
	for _, id := range All {
		load := StaticCornerLoad(cfg, id)
		next.Wheels[id] = Wheel{
			Offset:      Offset(cfg, id),
			Steered:     id.IsFront(),
			NormalForce: load,
			Load:        load,
			Compression: StaticRestCompression(cfg, id),
			Contact: Contact{
				GroundHeight:   spawn.Position.Y(),
				Supported:      true,
				OnGround:       true,
				Friction:       1,
				SlipMultiplier: 1,
			},
		}
	}
	*s = next
}

// Retune re-reads the chassis constants and wheel offsets from cfg after a config swap
// Motion, compression and counters are kept; the gear is moved into the new table
func (s *State) Retune(cfg *config.Config) {
	b := &s.Body
	b.Mass = cfg.Vehicle.Mass
	b.Wheelbase = cfg.Vehicle.Wheelbase()
	b.TrackWidth = cfg.Vehicle.TrackWidth
	b.CoGHeight = cfg.Vehicle.CoGHeight
	b.Inertia = cfg.Vehicle.YawInertia
	for _, id := range All {
		s.Wheels[id].Offset = Offset(cfg, id)
	}
	d := &s.Drivetrain
	d.Gear = drivetrain.Fit(&cfg.Drivetrain, d.Gear)
	d.TargetGear = drivetrain.Fit(&cfg.Drivetrain, d.TargetGear)
}

// PlanarVelocity is the ground-plane velocity (x, z)
func (s *State) PlanarVelocity() mgl64.Vec2 {
	return vmath.Planar(s.Body.Velocity)
}

// Speed is planar speed magnitude
func (s *State) Speed() float64 {
	return s.PlanarVelocity().Len()
}

// ForwardSpeed is planar velocity along the heading, negative when reversing
func (s *State) ForwardSpeed() float64 {
	return s.PlanarVelocity().Dot(vmath.Forward(s.Body.Yaw))
}

// WheelWorld returns the wheel's contact point in world space
// Pitch raises the front, roll lowers the right side
func (s *State) WheelWorld(cfg *config.Config, id WheelID) mgl64.Vec3 {
	off := s.Wheels[id].Offset
	p := vmath.ToWorld(s.Body.Yaw, off.X(), off.Z())
	y := s.Body.Position.Y() - cfg.Vehicle.RideHeight +
		off.Z()*math.Sin(s.Body.Pitch) - off.X()*math.Sin(s.Body.Roll)
	return mgl64.Vec3{s.Body.Position.X() + p.X(), y, s.Body.Position.Z() + p.Y()}
}

// DrivenWheelSpeed is the mean angular speed of the driven wheels in rad/s
func (s *State) DrivenWheelSpeed() float64 {
	sum, n := 0.0, 0
	for _, id := range All {
		if id.IsDriven() {
			sum += s.Wheels[id].AngularVelocity
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// TotalNormalForce sums wheel normal forces
func (s *State) TotalNormalForce() float64 {
	total := 0.0
	for i := range s.Wheels {
		total += s.Wheels[i].NormalForce
	}
	return total
}
