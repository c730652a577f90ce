package tire

import (
	"math"

	"github.com/lixenwraith/vi-drive/config"
	"github.com/lixenwraith/vi-drive/vmath"
)

// Input describes one wheel for one tick
type Input struct {
	VLong, VLat    float64 // contact patch velocity in the wheel frame, m/s
	Load           float64 // normal force, N
	Friction       float64
	SlipMultiplier float64
	Drive          float64 // traction demand along the wheel heading, N, positive forward
	Brake          float64 // brake demand magnitude, N
	Locked         bool
	LockEfficacy   float64
	Radius         float64
	MassShare      float64 // mass this wheel stops on its own, kg
	Dt             float64
}

// Output is the solved slip state and wheel-frame forces
type Output struct {
	SlipAngle       float64
	SlipRatio       float64
	Lateral         float64
	Longitudinal    float64
	AngularVelocity float64
	Skidding        bool
}

// SlipAngle is atan(vLat / |vLong|) with a low-speed denominator floor, clamped
func SlipAngle(cfg *config.TireConfig, vLong, vLat float64) float64 {
	den := math.Max(math.Abs(vLong), cfg.SlipSpeedFloor)
	return vmath.Clamp(vmath.Finite(math.Atan2(vLat, den)), -cfg.MaxSlipAngle, cfg.MaxSlipAngle)
}

// HandbrakeEfficacy falls with speed: a locked wheel sheds less speed the faster it slides
func HandbrakeEfficacy(cfg *config.BrakeConfig, speed float64) float64 {
	return math.Max(1/(1+math.Abs(speed)/cfg.HandbrakeFadeSpeed), cfg.HandbrakeMinEfficacy)
}

// Curves builds the lateral and longitudinal curves for load, friction, and surface softness
func Curves(cfg *config.TireConfig, load, friction, slipMul, speed float64) (lat, long Curve) {
	if slipMul <= 0 {
		slipMul = 1
	}
	peak := friction * load
	boost := vmath.Lerp(cfg.LowSpeedBoost, 1, vmath.Clamp01(math.Abs(speed)/cfg.LowSpeedBoostSpeed))
	lat = Curve{B: cfg.Lateral.B / slipMul, C: cfg.Lateral.C, D: peak * cfg.Lateral.D, E: cfg.Lateral.E}
	long = Curve{B: cfg.Longitudinal.B / slipMul, C: cfg.Longitudinal.C, D: peak * cfg.Longitudinal.D * boost, E: cfg.Longitudinal.E}
	return lat, long
}

// Solve computes slip and forces for one wheel
func Solve(cfg *config.TireConfig, in Input) Output {
	vLong, vLat := vmath.Finite(in.VLong), vmath.Finite(in.VLat)
	speed := math.Abs(vLong)

	var out Output
	out.AngularVelocity = vmath.SafeDiv(vLong, in.Radius, 0)
	if in.Locked {
		out.AngularVelocity = 0
	}
	if !(in.Load > 0) || !(in.Friction > 0) {
		return out
	}

	latCurve, longCurve := Curves(cfg, in.Load, in.Friction, in.SlipMultiplier, vLong)

	out.SlipAngle = SlipAngle(cfg, vLong, vLat)
	out.Lateral = -latCurve.Eval(out.SlipAngle)

	demand := in.Drive
	switch {
	case vLong != 0:
		demand -= vmath.Sign(vLong) * in.Brake
	case math.Abs(demand) <= in.Brake:
		demand = 0
	default:
		demand -= vmath.Sign(demand) * in.Brake
	}

	switch {
	case in.Locked && speed > cfg.StillSpeed:
		out.SlipRatio = -vmath.Sign(vLong)
		out.Longitudinal = longCurve.Eval(out.SlipRatio) * vmath.Clamp01(in.LockEfficacy)
	case in.Locked:
		out.Longitudinal = -vmath.Sign(vLong) * longCurve.D
	case speed <= cfg.StillSpeed:
		// No usable ground speed: the wheel either spins or holds
		if math.Abs(demand) > longCurve.D {
			out.SlipRatio = vmath.Sign(demand)
			out.Longitudinal = longCurve.Eval(out.SlipRatio)
		} else {
			out.Longitudinal = demand
		}
	case math.Abs(demand) < longCurve.D:
		out.SlipRatio = longCurve.Invert(demand)
		out.Longitudinal = demand
	default:
		over := math.Abs(demand)/longCurve.D - 1
		out.SlipRatio = vmath.Sign(demand) * math.Min(1, longCurve.PeakSlip()+over*cfg.SpinGain)
		out.Longitudinal = longCurve.Eval(out.SlipRatio)
	}
	out.SlipRatio = vmath.Clamp(out.SlipRatio, -1, 1)

	out.Lateral, out.Longitudinal = FrictionCircle(cfg, out.Lateral, out.Longitudinal,
		in.Load*in.Friction, math.Hypot(out.SlipRatio, out.SlipAngle))

	if in.Dt > 0 && in.MassShare > 0 {
		out.Longitudinal = capOpposing(out.Longitudinal, vLong, in.MassShare, in.Dt)
		out.Lateral = capOpposing(out.Lateral, vLat, in.MassShare, in.Dt)
	}

	if !in.Locked {
		out.AngularVelocity = vmath.SafeDiv(vLong+out.SlipRatio*math.Max(speed, cfg.SlipSpeedFloor), in.Radius, 0)
	}
	out.Skidding = math.Abs(out.SlipRatio) > cfg.SkidSlipRatio || math.Abs(out.SlipAngle) > cfg.SkidSlipAngle
	out.Lateral = vmath.Finite(out.Lateral)
	out.Longitudinal = vmath.Finite(out.Longitudinal)
	return out
}

// FrictionCircle limits combined force to mu(slip)·grip, where grip = friction·load
// Force beyond the circle is not cut outright: a parabolic share of the excess survives
func FrictionCircle(cfg *config.TireConfig, lat, long, grip, slip float64) (float64, float64) {
	mu := vmath.Lerp(cfg.StaticFriction, cfg.KineticFriction,
		vmath.Smoothstep(cfg.BlendStartSlip, cfg.BlendEndSlip, slip))
	limit := mu * grip
	mag := math.Hypot(lat, long)
	if mag <= limit || mag == 0 {
		return lat, long
	}
	if limit <= 0 {
		return 0, 0
	}
	excess := math.Min(mag-limit, limit/2)
	final := limit + excess*cfg.SoftExcessRetain*(1-excess/limit)
	s := final / mag
	return lat * s, long * s
}

// capOpposing keeps a force that opposes v from reversing it within one tick
func capOpposing(f, v, mass, dt float64) float64 {
	if f*v >= 0 {
		return f
	}
	limit := mass * math.Abs(v) / dt
	if math.Abs(f) > limit {
		return vmath.Sign(f) * limit
	}
	return f
}
