package vehicle

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vi-drive/config"
)

// WheelID indexes the four corners in a fixed order
type WheelID int

const (
	FrontLeft WheelID = iota
	FrontRight
	RearLeft
	RearRight
	WheelCount
)

// All lists every wheel in index order
var All = [WheelCount]WheelID{FrontLeft, FrontRight, RearLeft, RearRight}

var wheelNames = [WheelCount]string{"FL", "FR", "RL", "RR"}

func (w WheelID) String() string {
	if w < 0 || w >= WheelCount {
		return "??"
	}
	return wheelNames[w]
}

func (w WheelID) IsFront() bool { return w == FrontLeft || w == FrontRight }
func (w WheelID) IsLeft() bool  { return w == FrontLeft || w == RearLeft }

// IsDriven reports rear-wheel drive
func (w WheelID) IsDriven() bool { return !w.IsFront() }

// Contact is the ground query result recorded on a wheel each tick
type Contact struct {
	GroundHeight      float64
	Supported         bool
	OnGround          bool
	Friction          float64
	RollingResistance float64 // multiplier on the base coefficient
	SpeedPenalty      float64 // 1/s linear drag on the wheel's mass share
	SlipMultiplier    float64 // divides tire stiffness
	Surface           string
}

// Wheel is per-corner state; every field is always present
type Wheel struct {
	Offset  mgl64.Vec3 // local: X lateral (right +), Z longitudinal (front +)
	Steered bool

	SteerAngle float64
	SlipAngle  float64
	SlipRatio  float64

	LateralForce      float64 // wheel frame, N
	LongitudinalForce float64 // wheel frame, N
	NormalForce       float64
	Load              float64 // weight assigned by transfer, before the spring

	Compression     float64
	CompressionRate float64

	Contact         Contact
	AngularVelocity float64 // rad/s, positive rolls forward
	Skidding        bool
}

// Offset returns the local position of a wheel relative to the CoG
func Offset(cfg *config.Config, id WheelID) mgl64.Vec3 {
	lat := cfg.Vehicle.TrackWidth / 2
	if id.IsLeft() {
		lat = -lat
	}
	lon := -cfg.Vehicle.CoGToRear
	if id.IsFront() {
		lon = cfg.Vehicle.CoGToFront
	}
	return mgl64.Vec3{lat, 0, lon}
}

// StaticCornerLoad is the share of weight a wheel carries at rest
// Front axle carries weight * rear lever / wheelbase
func StaticCornerLoad(cfg *config.Config, id WheelID) float64 {
	v := cfg.Vehicle
	share := v.CoGToFront / v.Wheelbase()
	if id.IsFront() {
		share = v.CoGToRear / v.Wheelbase()
	}
	return v.Weight() * share / 2
}

// StaticRestCompression is preload plus the spring deflection under static load
func StaticRestCompression(cfg *config.Config, id WheelID) float64 {
	s := cfg.Suspension
	c := s.RestCompression + StaticCornerLoad(cfg, id)/s.Rate
	if c > s.MaxCompression {
		return s.MaxCompression
	}
	return c
}
