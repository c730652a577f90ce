package event

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vi-drive/drivetrain"
	"github.com/lixenwraith/vi-drive/vehicle"
)

// CollisionPayload carries the contact point and approach speed of an impact
type CollisionPayload struct {
	Position    mgl64.Vec3
	Normal      mgl64.Vec2 // planar (x, z), pointing away from the obstacle
	ImpactSpeed float64
	Target      string // geometry kind
}

// SkidPayload identifies the wheel and its slip at the transition
type SkidPayload struct {
	Wheel     vehicle.WheelID
	Position  mgl64.Vec3
	SlipRatio float64
	SlipAngle float64
}

type GearChangePayload struct {
	From drivetrain.Gear
	To   drivetrain.Gear
	RPM  float64 // engine speed when the shift began
}

type RevLimiterPayload struct {
	RPM  float64
	Gear drivetrain.Gear
}

type ContactPayload struct {
	From vehicle.Regime
	To   vehicle.Regime
}

// RespawnPayload records where the vehicle left the world
type RespawnPayload struct {
	FallPosition mgl64.Vec3
	Count        int
}
