package drivetrain

import (
	"github.com/lixenwraith/vi-drive/config"
	"github.com/lixenwraith/vi-drive/vmath"
)

// CurveFactor is the normalized torque available at rpm, peaking at TargetRPM
// Falls off quadratically on each side and never drops below MinCurveFactor
func CurveFactor(cfg *config.DrivetrainConfig, rpm float64) float64 {
	x := rpm - cfg.TargetRPM
	width := cfg.CurveHighWidth
	if x < 0 {
		width = cfg.CurveLowWidth
	}
	f := 1 - (x/width)*(x/width)
	return vmath.Clamp(f, cfg.MinCurveFactor, 1)
}

// EngineTorque is crank torque for throttle at rpm in N·m
func EngineTorque(cfg *config.DrivetrainConfig, throttle, rpm float64) float64 {
	return cfg.MaxTorque * vmath.Clamp01(throttle) * CurveFactor(cfg, rpm)
}

// DragTorque is internal friction plus pumping loss, rising linearly to redline
func DragTorque(cfg *config.DrivetrainConfig, rpm float64) float64 {
	return cfg.FrictionTorque + cfg.DragTorque*vmath.Clamp01(rpm/cfg.RedlineRPM)
}

// CoupledRPM is the engine speed implied by the driven wheels through the gear train
func CoupledRPM(cfg *config.DrivetrainConfig, g Gear, wheelRadPerSec float64) float64 {
	r := Ratio(cfg, g)
	if r < 0 {
		r = -r
	}
	w := wheelRadPerSec
	if w < 0 {
		w = -w
	}
	return vmath.RadPerSecToRPM(w) * r * cfg.FinalDrive
}
