// Package drivetrain models the engine, clutch and automatic gearbox
package drivetrain

import (
	"strconv"

	"github.com/lixenwraith/vi-drive/config"
)

// Gear is Reverse or a forward gear 1..N; 1st doubles as the neutral/rest gear
type Gear int

const (
	Reverse Gear = -1
	First   Gear = 1
)

func (g Gear) String() string {
	if g == Reverse {
		return "R"
	}
	return strconv.Itoa(int(g))
}

// Valid reports whether g indexes the configured gear table
func (g Gear) Valid(cfg *config.DrivetrainConfig) bool {
	return g == Reverse || (g >= First && int(g) <= len(cfg.GearRatios))
}

// Ratio returns the signed gearbox ratio; reverse is negative
func Ratio(cfg *config.DrivetrainConfig, g Gear) float64 {
	if g == Reverse {
		return -cfg.ReverseRatio
	}
	if g < First || int(g) > len(cfg.GearRatios) {
		return 0
	}
	return cfg.GearRatios[g-1]
}

// GearForSpeed returns the forward gear whose band contains speed
func GearForSpeed(cfg *config.DrivetrainConfig, speed float64) Gear {
	g := First
	for i, threshold := range cfg.ShiftSpeeds {
		if speed >= threshold {
			g = Gear(i + 1)
		}
	}
	return g
}

// Fit returns g moved into the configured table; gears past the top clamp to the top gear
func Fit(cfg *config.DrivetrainConfig, g Gear) Gear {
	if g.Valid(cfg) {
		return g
	}
	if g < First {
		return First
	}
	return Gear(len(cfg.GearRatios))
}

// autoShiftTarget returns the next gear one step toward the speed band, or current
func autoShiftTarget(cfg *config.DrivetrainConfig, current Gear, speed float64) Gear {
	if current == Reverse {
		return current
	}
	band := GearForSpeed(cfg, speed)
	if band > current {
		return current + 1
	}
	if current > First && int(current) <= len(cfg.ShiftSpeeds) &&
		speed < cfg.ShiftSpeeds[current-1]-cfg.DownshiftMargin {
		return current - 1
	}
	return current
}
