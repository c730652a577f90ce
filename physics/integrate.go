package physics

import (
	"math"

	"github.com/lixenwraith/vi-drive/config"
	"github.com/lixenwraith/vi-drive/suspension"
	"github.com/lixenwraith/vi-drive/terrain"
	"github.com/lixenwraith/vi-drive/vehicle"
	"github.com/lixenwraith/vi-drive/vmath"
)

// Integrate advances planar velocity, yaw rate, heading and position by dt
// Acceleration is capped at MaxAccelG; the same cap only partly scales torque
// Velocity is carried in the body frame across the heading update so it turns with the car
func Integrate(cfg *config.Config, st *vehicle.State, f Forces, driving bool, dt float64) {
	b := &st.Body
	ic := cfg.Integrator

	accel := f.Linear.Mul(1 / b.Mass)
	accel, scale := vmath.ClampMagnitude2(accel, ic.MaxAccelG*vmath.Gravity)
	torque := f.Torque * (1 - (1-scale)*ic.TorqueClampBlend)

	yawAccel := vmath.SafeDiv(torque, b.Inertia, 0)
	b.YawRate = vmath.Clamp(b.YawRate+yawAccel*dt, -ic.MaxYawRate, ic.MaxYawRate)

	vLat, vLong := vmath.ToLocal(b.Yaw, st.PlanarVelocity())
	aLat, aLong := vmath.ToLocal(b.Yaw, accel)
	vLat += aLat * dt
	vLong += aLong * dt

	b.Yaw = vmath.WrapAngle(b.Yaw + b.YawRate*dt)
	v := vmath.ToWorld(b.Yaw, vLat, vLong)

	if !driving && v.Len() < ic.RestSpeed {
		v = v.Mul(0)
		if math.Abs(b.YawRate) < ic.RestYawRate {
			b.YawRate = 0
		}
	}

	b.Velocity = vmath.Lift(v, b.Velocity.Y())
	b.Position = vmath.Lift(vmath.Planar(b.Position).Add(v.Mul(dt)), b.Position.Y())
	b.LongAccel = aLong
	b.LatAccel = aLat
}

// Vertical moves the body in height and sets pitch and roll for the contact regime
// Full contact rides the suspension; losing support lets the unsupported share of gravity act
func Vertical(cfg *config.Config, st *vehicle.State, regime vehicle.Regime, dt float64) {
	b := &st.Body
	c := cfg.Contact
	ride := cfg.Vehicle.RideHeight

	var comp [vehicle.WheelCount]float64
	for _, id := range vehicle.All {
		comp[id] = st.Wheels[id].Compression
	}
	pitch, roll := suspension.BodyAngles(cfg, comp)
	ground, grounded := groundBelow(st)

	switch regime {
	case vehicle.ContactFull:
		b.Position[1] = ground + ride
		b.Velocity[1] = 0
		b.PitchRate = 0
		b.Pitch = pitch

	case vehicle.ContactPartial:
		g := vmath.Gravity * terrain.GravityScale(cfg, regime)
		b.Velocity[1] -= g * dt
		b.Position[1] += b.Velocity.Y() * dt
		if grounded > 0 {
			floor := ground + ride - c.PartialMaxSag
			if b.Position.Y() < floor {
				b.Position[1] = floor
				b.Velocity[1] = math.Max(b.Velocity.Y(), 0)
			}
		}
		b.PitchRate = partialPitchRate(cfg, st)
		b.Pitch += b.PitchRate * dt

	default:
		g := vmath.Gravity * terrain.GravityScale(cfg, regime)
		b.Velocity[1] -= g * dt
		b.Position[1] += b.Velocity.Y() * dt
		b.PitchRate = -c.AirPitchPerSpeed * st.ForwardSpeed()
		b.Pitch += b.PitchRate * dt
	}

	b.Pitch = vmath.Clamp(vmath.Finite(b.Pitch), -c.MaxPitch, c.MaxPitch)
	b.Roll = vmath.Clamp(vmath.Finite(roll), -c.MaxRoll, c.MaxRoll)
}

// partialPitchRate dips the nose when the fronts hang and the tail when the rears do
func partialPitchRate(cfg *config.Config, st *vehicle.State) float64 {
	front, rear := 0, 0
	for _, id := range vehicle.All {
		if !st.Wheels[id].Contact.OnGround {
			continue
		}
		if id.IsFront() {
			front++
		} else {
			rear++
		}
	}
	switch {
	case front == 0 && rear > 0:
		return -cfg.Contact.PartialPitchRate
	case rear == 0 && front > 0:
		return cfg.Contact.PartialPitchRate
	default:
		return 0
	}
}

// groundBelow is the mean ground height under the grounded wheels
func groundBelow(st *vehicle.State) (float64, int) {
	sum, n := 0.0, 0
	for i := range st.Wheels {
		if st.Wheels[i].Contact.OnGround {
			sum += st.Wheels[i].Contact.GroundHeight
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return sum / float64(n), n
}
