package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-drive/config"
	"github.com/lixenwraith/vi-drive/vehicle"
	"github.com/lixenwraith/vi-drive/vmath"
	"github.com/lixenwraith/vi-drive/world"
)

const dt = 1.0 / 60

func restState(cfg *config.Config) vehicle.State {
	return vehicle.New(cfg, vehicle.Pose{})
}

func TestWheelForceRotation(t *testing.T) {
	w := vehicle.Wheel{LongitudinalForce: 100}
	f := WheelForce(0, &w)
	assert.InDelta(t, 0.0, f.X(), 1e-9)
	assert.InDelta(t, 100.0, f.Y(), 1e-9)

	w = vehicle.Wheel{LateralForce: 50}
	f = WheelForce(0, &w)
	assert.InDelta(t, 50.0, f.X(), 1e-9)
	assert.InDelta(t, 0.0, f.Y(), 1e-9)

	// Steer adds to yaw
	w = vehicle.Wheel{LongitudinalForce: 100, SteerAngle: math.Pi / 4}
	f = WheelForce(math.Pi/4, &w)
	assert.InDelta(t, 100.0, f.X(), 1e-9)
	assert.InDelta(t, 0.0, f.Y(), 1e-9)
}

func TestAccumulateFrontLateralTurnsRight(t *testing.T) {
	cfg := config.Default()
	st := restState(cfg)
	st.Wheels[vehicle.FrontLeft].LateralForce = 1000
	st.Wheels[vehicle.FrontRight].LateralForce = 1000

	f := Accumulate(cfg, &st, dt)
	assert.InDelta(t, 2000.0, f.Linear.X(), 1e-9)
	assert.InDelta(t, 0.0, f.Linear.Y(), 1e-9)
	assert.InDelta(t, 2000*cfg.Vehicle.CoGToFront, f.Torque, 1e-9)

	// Same push on the rear turns the other way
	st.Wheels[vehicle.FrontLeft].LateralForce = 0
	st.Wheels[vehicle.FrontRight].LateralForce = 0
	st.Wheels[vehicle.RearLeft].LateralForce = 1000
	f = Accumulate(cfg, &st, dt)
	assert.Less(t, f.Torque, 0.0)
}

func TestAccumulateSkipsAirborneWheels(t *testing.T) {
	cfg := config.Default()
	st := restState(cfg)
	for i := range st.Wheels {
		st.Wheels[i].LongitudinalForce = 500
	}
	st.Wheels[vehicle.RearRight].Contact.OnGround = false

	f := Accumulate(cfg, &st, dt)
	assert.InDelta(t, 1500.0, f.Tire.Y(), 1e-9)
}

func TestAccumulateResistance(t *testing.T) {
	cfg := config.Default()
	st := restState(cfg)
	st.Body.Velocity = mgl64.Vec3{0, 0, 20}

	f := Accumulate(cfg, &st, dt)
	a := cfg.Aero
	drag := 0.5 * a.AirDensity * a.DragCoefficient * a.FrontalArea * 400
	rolling := a.RollingResistance * st.TotalNormalForce()

	assert.InDelta(t, -drag, f.Drag.Y(), 1e-9)
	assert.InDelta(t, -rolling, f.Rolling.Y(), 1e-6)
	assert.InDelta(t, -(drag + rolling), f.Linear.Y(), 1e-6)
	assert.InDelta(t, 0.0, f.Linear.X(), 1e-9)
}

func TestAccumulateResistanceNeverReverses(t *testing.T) {
	cfg := config.Default()
	st := restState(cfg)
	st.Body.Velocity = mgl64.Vec3{0, 0, 0.001}
	for i := range st.Wheels {
		st.Wheels[i].Contact.SpeedPenalty = 5
	}

	f := Accumulate(cfg, &st, dt)
	stop := cfg.Vehicle.Mass * 0.001 / dt
	assert.InDelta(t, -stop, f.Rolling.Y(), 1e-9)

	// Integrated, the body stops instead of reversing
	Integrate(cfg, &st, f, true, dt)
	assert.GreaterOrEqual(t, st.Body.Velocity.Z(), -1e-9)
}

func TestAccumulateSurfaceMultiplier(t *testing.T) {
	cfg := config.Default()
	base := restState(cfg)
	base.Body.Velocity = mgl64.Vec3{0, 0, 10}
	rough := base
	for i := range rough.Wheels {
		rough.Wheels[i].Contact.RollingResistance = 4
	}

	fb := Accumulate(cfg, &base, dt)
	fr := Accumulate(cfg, &rough, dt)
	assert.InDelta(t, 4*fb.Rolling.Y(), fr.Rolling.Y(), 1e-6)
}

func TestIntegrateAccelerationClamp(t *testing.T) {
	cfg := config.Default()
	st := restState(cfg)

	f := Forces{Linear: mgl64.Vec2{0, 1e6}, Torque: 1000}
	Integrate(cfg, &st, f, true, dt)

	maxA := cfg.Integrator.MaxAccelG * vmath.Gravity
	assert.InDelta(t, maxA*dt, st.Body.Velocity.Z(), 1e-6)
	assert.InDelta(t, maxA, st.Body.LongAccel, 1e-9)

	scale := maxA * cfg.Vehicle.Mass / 1e6
	torque := 1000 * (1 - (1-scale)*cfg.Integrator.TorqueClampBlend)
	assert.InDelta(t, torque/cfg.Vehicle.YawInertia*dt, st.Body.YawRate, 1e-12)

	// Torque keeps more than the force did
	assert.Greater(t, torque/1000, scale)
}

func TestIntegrateVelocityFollowsHeading(t *testing.T) {
	cfg := config.Default()
	st := restState(cfg)
	st.Body.Velocity = mgl64.Vec3{0, 0, 10}
	st.Body.YawRate = 1

	for range 30 {
		Integrate(cfg, &st, Forces{}, true, dt)
	}

	assert.InDelta(t, 0.5, st.Body.Yaw, 1e-9)
	v := st.PlanarVelocity()
	assert.InDelta(t, 10.0, v.Len(), 1e-9)
	assert.InDelta(t, 0.0, v.Dot(vmath.Right(st.Body.Yaw)), 1e-9)
	assert.InDelta(t, 10.0, st.ForwardSpeed(), 1e-9)
}

func TestIntegrateYawRateBounded(t *testing.T) {
	cfg := config.Default()
	st := restState(cfg)

	for range 600 {
		Integrate(cfg, &st, Forces{Torque: 1e6}, true, dt)
	}
	assert.InDelta(t, cfg.Integrator.MaxYawRate, st.Body.YawRate, 1e-9)
	assert.LessOrEqual(t, math.Abs(st.Body.Yaw), math.Pi)
}

func TestIntegrateRestSnap(t *testing.T) {
	cfg := config.Default()

	st := restState(cfg)
	st.Body.Velocity = mgl64.Vec3{0.01, 0, 0.02}
	st.Body.YawRate = 0.01
	Integrate(cfg, &st, Forces{}, false, dt)
	assert.Equal(t, 0.0, st.Speed())
	assert.Equal(t, 0.0, st.Body.YawRate)

	// Drive input holds off the snap so launches can start from rest
	st = restState(cfg)
	st.Body.Velocity = mgl64.Vec3{0, 0, 0.02}
	Integrate(cfg, &st, Forces{}, true, dt)
	assert.Greater(t, st.Speed(), 0.0)
}

func TestIntegratePosition(t *testing.T) {
	cfg := config.Default()
	st := restState(cfg)
	st.Body.Velocity = mgl64.Vec3{3, -1, 4}
	y := st.Body.Position.Y()

	Integrate(cfg, &st, Forces{}, true, 0.5)
	assert.InDelta(t, 1.5, st.Body.Position.X(), 1e-9)
	assert.InDelta(t, 2.0, st.Body.Position.Z(), 1e-9)
	assert.Equal(t, y, st.Body.Position.Y(), "height belongs to Vertical")
	assert.Equal(t, -1.0, st.Body.Velocity.Y())
}

func TestVerticalFullRidesGround(t *testing.T) {
	cfg := config.Default()
	st := restState(cfg)
	for i := range st.Wheels {
		st.Wheels[i].Contact.GroundHeight = 2
	}
	st.Body.Velocity[1] = -3

	Vertical(cfg, &st, vehicle.ContactFull, dt)
	assert.InDelta(t, 2+cfg.Vehicle.RideHeight, st.Body.Position.Y(), 1e-12)
	assert.Equal(t, 0.0, st.Body.Velocity.Y())
	assert.InDelta(t, 0.0, st.Body.Pitch, 1e-12)
	assert.InDelta(t, 0.0, st.Body.Roll, 1e-12)

	// Front compression beyond rest pitches the nose down
	st.Wheels[vehicle.FrontLeft].Compression += 0.05
	st.Wheels[vehicle.FrontRight].Compression += 0.05
	Vertical(cfg, &st, vehicle.ContactFull, dt)
	assert.Less(t, st.Body.Pitch, 0.0)
}

func TestVerticalPartialDipsUnsupportedEnd(t *testing.T) {
	cfg := config.Default()

	st := restState(cfg)
	st.Wheels[vehicle.FrontLeft].Contact.OnGround = false
	st.Wheels[vehicle.FrontRight].Contact.OnGround = false
	Vertical(cfg, &st, vehicle.ContactPartial, 0.1)
	assert.InDelta(t, -cfg.Contact.PartialPitchRate*0.1, st.Body.Pitch, 1e-12)
	assert.InDelta(t, -vmath.Gravity*cfg.Contact.GravityPartial*0.1, st.Body.Velocity.Y(), 1e-12)

	st = restState(cfg)
	st.Wheels[vehicle.RearLeft].Contact.OnGround = false
	st.Wheels[vehicle.RearRight].Contact.OnGround = false
	Vertical(cfg, &st, vehicle.ContactPartial, 0.1)
	assert.Greater(t, st.Body.Pitch, 0.0)
}

func TestVerticalPartialSagLimited(t *testing.T) {
	cfg := config.Default()
	st := restState(cfg)
	st.Wheels[vehicle.FrontLeft].Contact.OnGround = false
	st.Body.Velocity[1] = -20

	for range 60 {
		Vertical(cfg, &st, vehicle.ContactPartial, dt)
	}
	floor := cfg.Vehicle.RideHeight - cfg.Contact.PartialMaxSag
	assert.InDelta(t, floor, st.Body.Position.Y(), 1e-9)
	assert.GreaterOrEqual(t, st.Body.Velocity.Y(), -vmath.Gravity*dt)
}

func TestVerticalAirborne(t *testing.T) {
	cfg := config.Default()
	st := restState(cfg)
	for i := range st.Wheels {
		st.Wheels[i].Contact.OnGround = false
	}
	st.Body.Velocity = mgl64.Vec3{0, 0, 20}

	Vertical(cfg, &st, vehicle.ContactNone, 0.1)
	assert.InDelta(t, -vmath.Gravity*0.1, st.Body.Velocity.Y(), 1e-12)
	assert.InDelta(t, -cfg.Contact.AirPitchPerSpeed*20, st.Body.PitchRate, 1e-12)

	// Faster launch, faster rotation
	slow := restState(cfg)
	slow.Body.Velocity = mgl64.Vec3{0, 0, 5}
	Vertical(cfg, &slow, vehicle.ContactNone, 0.1)
	assert.Less(t, st.Body.Pitch, slow.Body.Pitch)

	for range 1000 {
		Vertical(cfg, &st, vehicle.ContactNone, dt)
	}
	assert.InDelta(t, -cfg.Contact.MaxPitch, st.Body.Pitch, 1e-12)
}

func TestProfileFor(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, cfg.Collision.Wall.Restitution, ProfileFor(cfg, world.KindWall).Restitution)
	assert.Equal(t, cfg.Collision.Gate.Restitution, ProfileFor(cfg, world.KindGate).Restitution)
	assert.Less(t, ProfileFor(cfg, world.KindWall).Restitution, 1.0)
}

func TestOverlap(t *testing.T) {
	a := world.Box{Center: mgl64.Vec2{0, 0}, HalfExtents: mgl64.Vec2{1, 1}}
	b := world.Box{Center: mgl64.Vec2{1.5, 0}, HalfExtents: mgl64.Vec2{1, 1}}

	n, depth, hit := Overlap(a, b)
	require.True(t, hit)
	assert.InDelta(t, 0.5, depth, 1e-12)
	assert.InDelta(t, -1.0, n.X(), 1e-12)

	b.Center = mgl64.Vec2{2.5, 0}
	_, _, hit = Overlap(a, b)
	assert.False(t, hit)

	// Rotated square: corner reaches 1+sqrt2 along x
	b.Center = mgl64.Vec2{2.3, 0}
	b.Yaw = math.Pi / 4
	_, depth, hit = Overlap(a, b)
	require.True(t, hit)
	assert.InDelta(t, 1+math.Sqrt2-2.3, depth, 1e-9)
}

func wallAhead() *world.World {
	return &world.World{Boxes: []world.Box{world.Wall("north", -10, 5, 10, 6)}}
}

func TestCollideReflectsWithRestitution(t *testing.T) {
	cfg := config.Default()
	st := restState(cfg)
	st.Body.Position = mgl64.Vec3{0, cfg.Vehicle.RideHeight, 3}
	st.Body.Velocity = mgl64.Vec3{2, 0, 10}
	rng := vmath.NewFastRand(7)

	contacts := Collide(cfg, &st, wallAhead(), rng)
	require.Len(t, contacts, 1)
	c := contacts[0]

	depth := 3 + cfg.Vehicle.BodyLength/2 - 5
	assert.InDelta(t, depth, c.Depth, 1e-9)
	assert.InDelta(t, 3-depth, st.Body.Position.Z(), 1e-9)
	assert.InDelta(t, -1.0, c.Normal.Y(), 1e-12)
	assert.InDelta(t, 10.0, c.ImpactSpeed, 1e-9)
	assert.Equal(t, world.KindWall, c.Kind)
	assert.Equal(t, "north", c.Name)

	wall := cfg.Collision.Wall
	assert.InDelta(t, -10*wall.Restitution, st.Body.Velocity.Z(), 1e-9)
	assert.InDelta(t, 2*(1-wall.Friction), st.Body.Velocity.X(), 1e-9)
	assert.LessOrEqual(t, math.Abs(st.Body.YawRate), wall.AngularVariance)
	assert.Equal(t, 1, st.Collisions)

	// Deepest corner is on the front edge
	assert.InDelta(t, 3+cfg.Vehicle.BodyLength/2, c.Position.Z(), 1e-9)
}

func TestCollideSlowContactIsSilent(t *testing.T) {
	cfg := config.Default()
	st := restState(cfg)
	st.Body.Position = mgl64.Vec3{0, cfg.Vehicle.RideHeight, 3}
	st.Body.Velocity = mgl64.Vec3{0, 0, 0.3}

	contacts := Collide(cfg, &st, wallAhead(), vmath.NewFastRand(1))
	assert.Empty(t, contacts)
	assert.Equal(t, 0, st.Collisions)
	assert.Less(t, st.Body.Position.Z(), 3.0)
	assert.Less(t, st.Body.Velocity.Z(), 0.0)
	assert.Equal(t, 0.0, st.Body.YawRate)
}

func TestCollideSeparatingKeepsVelocity(t *testing.T) {
	cfg := config.Default()
	st := restState(cfg)
	st.Body.Position = mgl64.Vec3{0, cfg.Vehicle.RideHeight, 3}
	st.Body.Velocity = mgl64.Vec3{0, 0, -5}

	contacts := Collide(cfg, &st, wallAhead(), vmath.NewFastRand(1))
	assert.Empty(t, contacts)
	assert.Equal(t, -5.0, st.Body.Velocity.Z())
	assert.Less(t, st.Body.Position.Z(), 3.0)
}

func TestCollideDeterministic(t *testing.T) {
	cfg := config.Default()
	run := func() float64 {
		st := restState(cfg)
		st.Body.Position = mgl64.Vec3{0, cfg.Vehicle.RideHeight, 3}
		st.Body.Velocity = mgl64.Vec3{0, 0, 10}
		Collide(cfg, &st, wallAhead(), vmath.NewFastRand(42))
		return st.Body.YawRate
	}
	assert.Equal(t, run(), run())
}

func TestCollideNoGeometry(t *testing.T) {
	cfg := config.Default()
	st := restState(cfg)
	assert.Nil(t, Collide(cfg, &st, nil, vmath.NewFastRand(1)))
	assert.Nil(t, Collide(cfg, &st, world.Empty(), vmath.NewFastRand(1)))
}
