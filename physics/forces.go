package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vi-drive/config"
	"github.com/lixenwraith/vi-drive/vehicle"
	"github.com/lixenwraith/vi-drive/vmath"
)

// Forces is the planar force and yaw torque acting on the body for one tick
type Forces struct {
	Linear mgl64.Vec2 // world (x, z), N
	Torque float64    // about +y, N·m

	// Components kept for telemetry
	Tire    mgl64.Vec2
	Drag    mgl64.Vec2
	Rolling mgl64.Vec2
}

// WheelForce rotates a wheel's frame forces into the world plane using yaw plus its steer angle
func WheelForce(yaw float64, w *vehicle.Wheel) mgl64.Vec2 {
	heading := yaw + w.SteerAngle
	return vmath.ToWorld(heading, w.LateralForce, w.LongitudinalForce)
}

// Accumulate sums tire forces and their lever torques with aero drag, rolling resistance and surface drag
// Resistive terms together never exceed what stops the body within dt
func Accumulate(cfg *config.Config, st *vehicle.State, dt float64) Forces {
	var f Forces
	b := &st.Body

	for _, id := range vehicle.All {
		w := &st.Wheels[id]
		if !w.Contact.OnGround {
			continue
		}
		force := WheelForce(b.Yaw, w)
		lever := vmath.ToWorld(b.Yaw, w.Offset.X(), w.Offset.Z())
		f.Tire = f.Tire.Add(force)
		f.Torque += vmath.YawTorque(lever, force)
	}

	v := st.PlanarVelocity()
	speed := v.Len()
	if speed > 1e-6 {
		dir := v.Mul(1 / speed)
		a := cfg.Aero

		f.Drag = dir.Mul(-0.5 * a.AirDensity * a.DragCoefficient * a.FrontalArea * speed * speed)

		rolling := 0.0
		penalty := 0.0
		for _, id := range vehicle.All {
			w := &st.Wheels[id]
			if !w.Contact.OnGround {
				continue
			}
			mul := w.Contact.RollingResistance
			if mul <= 0 {
				mul = 1
			}
			rolling += a.RollingResistance * w.NormalForce * mul
			penalty += w.Contact.SpeedPenalty * b.Mass / float64(vehicle.WheelCount) * speed
		}
		resist := rolling + penalty
		if dt > 0 {
			resist = math.Min(resist, b.Mass*speed/dt)
		}
		f.Rolling = dir.Mul(-resist)
	}

	f.Linear = f.Tire.Add(f.Drag).Add(f.Rolling)
	f.Linear = mgl64.Vec2{vmath.Finite(f.Linear.X()), vmath.Finite(f.Linear.Y())}
	f.Torque = vmath.Finite(f.Torque)
	return f
}
