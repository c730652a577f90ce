package sim

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vi-drive/config"
	"github.com/lixenwraith/vi-drive/drivetrain"
	"github.com/lixenwraith/vi-drive/vehicle"
)

// WheelSnapshot is the per-wheel view exposed to renderers and audio
type WheelSnapshot struct {
	ID              vehicle.WheelID
	LocalPosition   mgl64.Vec3
	WorldPosition   mgl64.Vec3
	SteerAngle      float64
	AngularVelocity float64
	SlipRatio       float64
	SlipAngle       float64
	Compression     float64
	NormalForce     float64
	OnGround        bool
	Skidding        bool
	Surface         string
}

// Snapshot is a read-only copy of the state taken after a step completes
type Snapshot struct {
	Tick uint64
	Time float64

	Position     mgl64.Vec3
	Velocity     mgl64.Vec3
	Speed        float64
	ForwardSpeed float64
	Yaw          float64
	Pitch        float64
	Roll         float64
	YawRate      float64
	SteerAngle   float64

	RPM      float64
	Gear     drivetrain.Gear
	Clutch   float64
	Shifting bool
	Limiter  bool

	Regime     vehicle.Regime
	Skidding   bool
	Collisions int
	Respawns   int

	Wheels [vehicle.WheelCount]WheelSnapshot
}

// TakeSnapshot copies the collaborator-facing fields out of st
func TakeSnapshot(cfg *config.Config, st *vehicle.State) Snapshot {
	b := &st.Body
	s := Snapshot{
		Tick:         st.Tick,
		Time:         st.Time,
		Position:     b.Position,
		Velocity:     b.Velocity,
		Speed:        st.Speed(),
		ForwardSpeed: st.ForwardSpeed(),
		Yaw:          b.Yaw,
		Pitch:        b.Pitch,
		Roll:         b.Roll,
		YawRate:      b.YawRate,
		SteerAngle:   b.SteerAngle,
		RPM:          st.Drivetrain.RPM,
		Gear:         st.Drivetrain.Gear,
		Clutch:       st.Drivetrain.Clutch,
		Shifting:     st.Drivetrain.Shifting,
		Limiter:      st.Drivetrain.Limiter,
		Regime:       st.Regime,
		Skidding:     st.Skidding,
		Collisions:   st.Collisions,
		Respawns:     st.Respawns,
	}
	for _, id := range vehicle.All {
		w := &st.Wheels[id]
		s.Wheels[id] = WheelSnapshot{
			ID:              id,
			LocalPosition:   w.Offset,
			WorldPosition:   st.WheelWorld(cfg, id),
			SteerAngle:      w.SteerAngle,
			AngularVelocity: w.AngularVelocity,
			SlipRatio:       w.SlipRatio,
			SlipAngle:       w.SlipAngle,
			Compression:     w.Compression,
			NormalForce:     w.NormalForce,
			OnGround:        w.Contact.OnGround,
			Skidding:        w.Skidding,
			Surface:         w.Contact.Surface,
		}
	}
	return s
}

// AnySkid reports whether the vehicle or any wheel is sliding
func (s *Snapshot) AnySkid() bool {
	if s.Skidding {
		return true
	}
	for i := range s.Wheels {
		if s.Wheels[i].Skidding {
			return true
		}
	}
	return false
}
