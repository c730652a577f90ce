package drivetrain

import (
	"math"

	"github.com/lixenwraith/vi-drive/config"
	"github.com/lixenwraith/vi-drive/vmath"
)

// State persists across ticks and is only mutated by Update
type State struct {
	Gear          Gear
	TargetGear    Gear
	RPM           float64
	Clutch        float64 // engagement [0,1]
	Shifting      bool
	ShiftProgress float64 // seconds into the current shift
	ShiftRPM      float64 // engine speed when the shift began
	StoppedTime   float64 // seconds stopped with brake held
	ReverseReady  bool
	Limiter       bool
}

// Initial is the rest state: 1st gear, idle, clutch engaged
func Initial(cfg *config.DrivetrainConfig) State {
	return State{
		Gear:       First,
		TargetGear: First,
		RPM:        cfg.IdleRPM,
		Clutch:     1,
	}
}

// Settle returns a cruising state for speed: banded gear and wheel-coupled RPM
func Settle(cfg *config.DrivetrainConfig, speed, wheelRadius float64) State {
	st := Initial(cfg)
	st.Gear = GearForSpeed(cfg, math.Abs(speed))
	st.TargetGear = st.Gear
	st.RPM = vmath.Clamp(CoupledRPM(cfg, st.Gear, speed/wheelRadius), cfg.IdleRPM, cfg.RedlineRPM)
	return st
}

// Control is the per-tick driver and road input to the drivetrain
type Control struct {
	Throttle   float64
	Brake      bool
	Speed      float64 // signed forward speed, m/s
	WheelSpeed float64 // driven wheel angular speed, rad/s
	Dt         float64
}

// Output is the new state plus the torque delivered to the driven axle
type Output struct {
	State          State
	WheelTorque    float64 // total at the driven axle, N·m, positive drives forward
	EngineTorque   float64 // at the crank, after fuel cut
	DriveThrottle  float64 // pedal actually feeding the engine
	ServiceBrake   bool
	Shifted        bool
	From, To       Gear
	ShiftRPM       float64
	LimiterEngaged bool
}

// Update advances gear selection, clutch, and engine speed by c.Dt
func Update(cfg *config.DrivetrainConfig, st State, c Control) Output {
	dt := c.Dt
	throttle := vmath.Clamp01(vmath.Finite(c.Throttle))
	speed := vmath.Finite(c.Speed)
	speedAbs := math.Abs(speed)
	stopped := speedAbs < cfg.StopSpeed
	pedalUp := throttle < cfg.IdleThrottle

	out := Output{}

	// A swapped config may have a shorter gear table
	if g := Fit(cfg, st.Gear); g != st.Gear {
		out.Shifted, out.From, out.To, out.ShiftRPM = true, st.Gear, g, st.RPM
		st.Gear = g
	}
	st.TargetGear = Fit(cfg, st.TargetGear)
	if st.Shifting && st.TargetGear == st.Gear {
		st.Shifting = false
		st.ShiftProgress = 0
	}

	// Reverse engagement debounce, counted in simulated time
	if st.Gear != Reverse {
		if stopped && c.Brake && pedalUp && !st.Shifting {
			st.StoppedTime += dt
			st.ReverseReady = st.StoppedTime >= cfg.ReverseDelay
		} else {
			st.StoppedTime = 0
			st.ReverseReady = false
		}
		if st.ReverseReady {
			out.Shifted, out.From, out.To, out.ShiftRPM = true, st.Gear, Reverse, st.RPM
			st.Gear, st.TargetGear = Reverse, Reverse
			st.StoppedTime = 0
		}
	} else if stopped && !c.Brake {
		out.Shifted, out.From, out.To, out.ShiftRPM = true, Reverse, First, st.RPM
		st.Gear, st.TargetGear = First, First
		st.ReverseReady = false
	}

	// In reverse the brake pedal drives and the throttle pedal brakes
	driveThrottle := throttle
	serviceBrake := c.Brake
	if st.Gear == Reverse {
		driveThrottle = 0
		if c.Brake {
			driveThrottle = 1
		}
		serviceBrake = !pedalUp
	}

	if st.Shifting {
		st.ShiftProgress += dt
		if st.ShiftProgress >= cfg.ShiftTime {
			out.Shifted, out.From, out.To, out.ShiftRPM = true, st.Gear, st.TargetGear, st.ShiftRPM
			st.Gear = st.TargetGear
			st.Shifting = false
			st.ShiftProgress = 0
		}
	} else if target := autoShiftTarget(cfg, st.Gear, speed); target != st.Gear {
		st.Shifting = true
		st.TargetGear = target
		st.ShiftProgress = 0
		st.ShiftRPM = st.RPM
	}

	engineThrottle := driveThrottle
	if st.Shifting {
		engineThrottle = 0
	}

	if st.RPM >= cfg.RedlineRPM {
		if !st.Limiter {
			out.LimiterEngaged = true
		}
		st.Limiter = true
	} else if st.Limiter && st.RPM < cfg.RedlineRPM-cfg.LimiterHysteresis {
		st.Limiter = false
	}

	torque := EngineTorque(cfg, engineThrottle, st.RPM)
	if st.Limiter {
		torque = 0
	}

	switch {
	case st.Shifting:
		st.Clutch = 0
	case engineThrottle >= cfg.IdleThrottle:
		st.Clutch = vmath.Clamp(speedAbs/cfg.ClutchLockSpeed, cfg.ClutchLaunchMin, 1)
	case speedAbs < cfg.StallSpeed:
		st.Clutch = 0
	default:
		st.Clutch = 1
	}

	if st.Clutch > 0 {
		target := CoupledRPM(cfg, st.Gear, c.WheelSpeed)
		if st.Clutch < 1 {
			target = math.Max(target, cfg.IdleRPM+engineThrottle*(cfg.LaunchRPM-cfg.IdleRPM))
		}
		st.RPM += (target - st.RPM) * math.Min(1, cfg.CouplingRate*st.Clutch*dt)
	} else {
		alpha := (torque - DragTorque(cfg, st.RPM)) / cfg.EngineInertia
		st.RPM += vmath.RadPerSecToRPM(alpha * dt)
	}
	st.RPM = vmath.Clamp(vmath.FiniteOr(st.RPM, cfg.IdleRPM), cfg.IdleRPM, cfg.RedlineRPM)

	ratio := Ratio(cfg, st.Gear)
	capacity := vmath.Clamp01(st.Clutch / cfg.ClutchLaunchMin)
	wheel := torque * capacity * ratio * cfg.FinalDrive * cfg.Efficiency

	if engineThrottle < cfg.IdleThrottle && st.Clutch > 0 && speedAbs > cfg.StallSpeed {
		braking := cfg.EngineBrakeTorque * vmath.Clamp01(st.RPM/cfg.RedlineRPM) *
			math.Abs(ratio) * cfg.FinalDrive * st.Clutch
		wheel -= vmath.Sign(speed) * braking
	}

	out.State = st
	out.WheelTorque = vmath.Finite(wheel)
	out.EngineTorque = torque
	out.DriveThrottle = driveThrottle
	out.ServiceBrake = serviceBrake
	return out
}
