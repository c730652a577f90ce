// Package sim advances the vehicle one fixed tick at a time and hosts the simulation for collaborators
package sim

import (
	"math"

	"github.com/lixenwraith/vi-drive/config"
	"github.com/lixenwraith/vi-drive/drivetrain"
	"github.com/lixenwraith/vi-drive/event"
	"github.com/lixenwraith/vi-drive/physics"
	"github.com/lixenwraith/vi-drive/suspension"
	"github.com/lixenwraith/vi-drive/terrain"
	"github.com/lixenwraith/vi-drive/tire"
	"github.com/lixenwraith/vi-drive/vehicle"
	"github.com/lixenwraith/vi-drive/vmath"
)

// Step advances prev by dt and returns the next state with the events the tick produced
// prev is not modified; dt above cfg.Step.MaxStep is clamped, non-positive dt returns prev unchanged
func Step(cfg *config.Config, env Env, prev vehicle.State, in Input, dt float64) (vehicle.State, []event.Event) {
	if !(dt > 0) || !vmath.IsFinite(dt) {
		return prev, nil
	}
	dt = math.Min(dt, cfg.Step.MaxStep)
	in = in.Clamp()

	st := prev
	st.Tick++
	var evs []event.Event
	emit := func(t event.EventType, payload any) {
		evs = append(evs, event.Event{Type: t, Payload: payload, Tick: st.Tick})
	}

	steer(cfg, &st, in, dt)

	regime := terrain.Resolve(cfg, &st, env.provider())

	power := drivetrain.Update(&cfg.Drivetrain, st.Drivetrain, drivetrain.Control{
		Throttle:   in.Throttle,
		Brake:      in.Brake,
		Speed:      st.ForwardSpeed(),
		WheelSpeed: st.DrivenWheelSpeed(),
		Dt:         dt,
	})
	st.Drivetrain = power.State
	if power.Shifted {
		emit(event.EventGearChange, event.GearChangePayload{From: power.From, To: power.To, RPM: power.ShiftRPM})
	}
	if power.LimiterEngaged {
		emit(event.EventRevLimiter, event.RevLimiterPayload{RPM: st.Drivetrain.RPM, Gear: st.Drivetrain.Gear})
	}

	loadCorners(cfg, &st, dt)
	solveTires(cfg, &st, in, power, dt, emit)

	f := physics.Accumulate(cfg, &st, dt)
	physics.Integrate(cfg, &st, f, power.DriveThrottle >= cfg.Drivetrain.IdleThrottle, dt)
	physics.Vertical(cfg, &st, regime, dt)
	st.Regime = regime

	rng := vmath.NewFastRand(st.RNG)
	for _, c := range physics.Collide(cfg, &st, env.World, rng) {
		emit(event.EventCollision, event.CollisionPayload{
			Position:    c.Position,
			Normal:      c.Normal,
			ImpactSpeed: c.ImpactSpeed,
			Target:      c.Kind.String(),
		})
	}
	st.RNG = rng.State()

	sanitize(&st, &prev)

	if st.Body.Position.Y() < cfg.Contact.KillHeight {
		fall := st.Body.Position
		st.Reset(cfg, env.Spawn())
		st.Respawns++
		emit(event.EventRespawn, event.RespawnPayload{FallPosition: fall, Count: st.Respawns})
	}

	if st.Regime != prev.Regime {
		emit(event.EventContactChange, event.ContactPayload{From: prev.Regime, To: st.Regime})
	}

	st.Time += dt
	return st, evs
}

// steer slews the front wheels toward the commanded angle; available lock shrinks with speed
func steer(cfg *config.Config, st *vehicle.State, in Input, dt float64) {
	sc := cfg.Steering
	limit := sc.MaxAngle / (1 + st.Speed()*sc.SpeedFactor)
	b := &st.Body
	b.SteerAngle = vmath.MoveToward(b.SteerAngle, in.Steer*limit, sc.Rate*dt)
	b.SteerAngle = vmath.Clamp(b.SteerAngle, -limit, limit)
	for _, id := range vehicle.All {
		if st.Wheels[id].Steered {
			st.Wheels[id].SteerAngle = b.SteerAngle
		} else {
			st.Wheels[id].SteerAngle = 0
		}
	}
}

// RequiredLateralAccel is the acceleration the current steer angle asks of the tires at speed
func RequiredLateralAccel(cfg *config.Config, st *vehicle.State) float64 {
	return suspension.LateralAccel(st.Speed(), st.Body.SteerAngle, cfg.Vehicle.Wheelbase())
}

// loadCorners distributes weight with transfer and integrates each spring to a normal force
func loadCorners(cfg *config.Config, st *vehicle.State, dt float64) {
	latAccel := RequiredLateralAccel(cfg, st)
	st.Skidding = math.Abs(latAccel) > cfg.Tire.Grip*vmath.Gravity

	long, lat := suspension.Transfer(cfg, st.Body.LongAccel, latAccel)
	loads := suspension.Distribute(cfg, long, lat)
	spring := suspension.NewSpring(cfg)

	for _, id := range vehicle.All {
		w := &st.Wheels[id]
		load := loads[id]
		if !w.Contact.OnGround {
			load = 0
		}
		w.Load = load
		w.Compression, w.CompressionRate = spring.Step(w.Compression, w.CompressionRate, load, dt)
		if w.Contact.OnGround {
			w.NormalForce = spring.NormalForce(w.Compression, w.CompressionRate, load)
		} else {
			w.NormalForce = 0
		}
	}
}

// solveTires runs the tire model per wheel and emits skid transitions
func solveTires(cfg *config.Config, st *vehicle.State, in Input, power drivetrain.Output, dt float64, emit func(event.EventType, any)) {
	b := &st.Body
	vLat, vLong := vmath.ToLocal(b.Yaw, st.PlanarVelocity())
	radius := cfg.Vehicle.WheelRadius
	efficacy := tire.HandbrakeEfficacy(&cfg.Brakes, st.Speed())

	brake := 0.0
	if power.ServiceBrake {
		brake = cfg.Brakes.Force
	}
	driven := 0
	for _, id := range vehicle.All {
		if id.IsDriven() {
			driven++
		}
	}

	for _, id := range vehicle.All {
		w := &st.Wheels[id]

		// Contact patch velocity: body velocity plus yaw rate about the CoG, then into the wheel frame
		pLong := vLong - b.YawRate*w.Offset.X()
		pLat := vLat + b.YawRate*w.Offset.Z()
		sin, cos := math.Sincos(w.SteerAngle)

		share := 1 - cfg.Brakes.FrontBias
		if id.IsFront() {
			share = cfg.Brakes.FrontBias
		}
		drive := 0.0
		if id.IsDriven() && driven > 0 {
			drive = vmath.SafeDiv(power.WheelTorque/float64(driven), radius, 0)
		}

		out := tire.Solve(&cfg.Tire, tire.Input{
			VLong:          pLong*cos + pLat*sin,
			VLat:           -pLong*sin + pLat*cos,
			Load:           w.NormalForce,
			Friction:       w.Contact.Friction * cfg.Tire.Grip,
			SlipMultiplier: w.Contact.SlipMultiplier,
			Drive:          drive,
			Brake:          brake * share / 2,
			Locked:         in.Handbrake && id.IsFront(),
			LockEfficacy:   efficacy,
			Radius:         radius,
			MassShare:      b.Mass / float64(vehicle.WheelCount),
			Dt:             dt,
		})

		was := w.Skidding
		w.SlipAngle = out.SlipAngle
		w.SlipRatio = out.SlipRatio
		w.LateralForce = out.Lateral
		w.LongitudinalForce = out.Longitudinal
		w.AngularVelocity = out.AngularVelocity
		w.Skidding = out.Skidding

		if was != w.Skidding {
			t := event.EventSkidEnd
			if w.Skidding {
				t = event.EventSkidStart
			}
			emit(t, event.SkidPayload{
				Wheel:     id,
				Position:  st.WheelWorld(cfg, id),
				SlipRatio: w.SlipRatio,
				SlipAngle: w.SlipAngle,
			})
		}
	}
}

// sanitize replaces non-finite body values with the previous tick's
func sanitize(st, prev *vehicle.State) {
	b, p := &st.Body, &prev.Body
	b.Position = vmath.FiniteVec3(b.Position, p.Position)
	b.Velocity = vmath.FiniteVec3(b.Velocity, p.Velocity)
	b.Yaw = vmath.FiniteOr(b.Yaw, p.Yaw)
	b.YawRate = vmath.FiniteOr(b.YawRate, 0)
	b.Pitch = vmath.FiniteOr(b.Pitch, p.Pitch)
	b.PitchRate = vmath.FiniteOr(b.PitchRate, 0)
	b.Roll = vmath.FiniteOr(b.Roll, p.Roll)
	b.LongAccel = vmath.Finite(b.LongAccel)
	b.LatAccel = vmath.Finite(b.LatAccel)
	for i := range st.Wheels {
		w := &st.Wheels[i]
		w.AngularVelocity = vmath.Finite(w.AngularVelocity)
		w.Compression = vmath.FiniteOr(w.Compression, prev.Wheels[i].Compression)
		w.CompressionRate = vmath.Finite(w.CompressionRate)
	}
}
