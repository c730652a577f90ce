package sim

import (
	"fmt"
	"math"

	"github.com/lixenwraith/vi-drive/config"
	"github.com/lixenwraith/vi-drive/parameter"
	"github.com/lixenwraith/vi-drive/vehicle"
	"github.com/lixenwraith/vi-drive/vmath"
)

// Invariant names reported in Violation.Check
const (
	CheckNormalForce = "normal_force"
	CheckCompression = "compression"
	CheckSlipRatio   = "slip_ratio"
	CheckSlipAngle   = "slip_angle"
	CheckGear        = "gear"
	CheckRPM         = "rpm"
	CheckClutch      = "clutch"
	CheckLoadSum     = "load_sum"
	CheckFinite      = "finite"
)

// BodyWheel marks a violation that belongs to the body rather than one wheel
const BodyWheel vehicle.WheelID = -1

// Violation is one broken state invariant
type Violation struct {
	Check string
	Wheel vehicle.WheelID
	Value float64
}

// Where names the wheel, or "body"
func (v Violation) Where() string {
	if v.Wheel == BodyWheel {
		return "body"
	}
	return v.Wheel.String()
}

func (v Violation) String() string {
	return fmt.Sprintf("%s[%s]=%g", v.Check, v.Where(), v.Value)
}

// Validate checks every state invariant and returns the ones that do not hold
func Validate(cfg *config.Config, st *vehicle.State) []Violation {
	var out []Violation
	add := func(check string, w vehicle.WheelID, v float64) {
		out = append(out, Violation{Check: check, Wheel: w, Value: v})
	}
	slack := parameter.InvariantSlack
	s := cfg.Suspension

	sumN, sumLoad := 0.0, 0.0
	for _, id := range vehicle.All {
		w := &st.Wheels[id]
		if !vmath.IsFinite(w.NormalForce) || w.NormalForce < 0 {
			add(CheckNormalForce, id, w.NormalForce)
		}
		if !vmath.IsFinite(w.Compression) || w.Compression > s.MaxCompression+slack || w.Compression < -s.MaxExtension-slack {
			add(CheckCompression, id, w.Compression)
		}
		if !vmath.IsFinite(w.SlipRatio) || math.Abs(w.SlipRatio) > 1+slack {
			add(CheckSlipRatio, id, w.SlipRatio)
		}
		if !vmath.IsFinite(w.SlipAngle) || math.Abs(w.SlipAngle) > cfg.Tire.MaxSlipAngle+slack {
			add(CheckSlipAngle, id, w.SlipAngle)
		}
		for _, v := range []float64{w.AngularVelocity, w.LateralForce, w.LongitudinalForce, w.CompressionRate} {
			if !vmath.IsFinite(v) {
				add(CheckFinite, id, v)
			}
		}
		sumN += w.NormalForce
		sumLoad += w.Load
	}

	if st.Regime == vehicle.ContactFull {
		if gap := math.Abs(sumN - sumLoad); gap > parameter.LoadSumTolerance*cfg.Vehicle.Weight() {
			add(CheckLoadSum, BodyWheel, sumN-sumLoad)
		}
	}

	d := st.Drivetrain
	if !d.Gear.Valid(&cfg.Drivetrain) {
		add(CheckGear, BodyWheel, float64(d.Gear))
	}
	if !vmath.IsFinite(d.RPM) || d.RPM < cfg.Drivetrain.IdleRPM-slack || d.RPM > cfg.Drivetrain.RedlineRPM+slack {
		add(CheckRPM, BodyWheel, d.RPM)
	}
	if !vmath.IsFinite(d.Clutch) || d.Clutch < 0 || d.Clutch > 1 {
		add(CheckClutch, BodyWheel, d.Clutch)
	}

	b := &st.Body
	for _, v := range []float64{
		b.Position.X(), b.Position.Y(), b.Position.Z(),
		b.Velocity.X(), b.Velocity.Y(), b.Velocity.Z(),
		b.Yaw, b.YawRate, b.Pitch, b.Roll,
	} {
		if !vmath.IsFinite(v) {
			add(CheckFinite, BodyWheel, v)
		}
	}
	return out
}
