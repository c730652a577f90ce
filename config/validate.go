package config

import (
	"errors"
	"fmt"
)

// Validate reports every out-of-domain field, each wrapped with ErrInvalid
func (c *Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if !(v > 0) {
			errs = append(errs, fmt.Errorf("%w: %s must be > 0, got %g", ErrInvalid, name, v))
		}
	}
	unit := func(name string, v float64) {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%w: %s must be in [0,1], got %g", ErrInvalid, name, v))
		}
	}

	positive("step.fixed_step", c.Step.FixedStep)
	positive("step.max_step", c.Step.MaxStep)
	if c.Step.FixedStep > c.Step.MaxStep {
		errs = append(errs, fmt.Errorf("%w: step.fixed_step %g exceeds step.max_step %g", ErrInvalid, c.Step.FixedStep, c.Step.MaxStep))
	}

	positive("vehicle.mass", c.Vehicle.Mass)
	positive("vehicle.cog_to_front", c.Vehicle.CoGToFront)
	positive("vehicle.cog_to_rear", c.Vehicle.CoGToRear)
	positive("vehicle.track_width", c.Vehicle.TrackWidth)
	positive("vehicle.cog_height", c.Vehicle.CoGHeight)
	positive("vehicle.yaw_inertia", c.Vehicle.YawInertia)
	positive("vehicle.body_length", c.Vehicle.BodyLength)
	positive("vehicle.body_width", c.Vehicle.BodyWidth)
	positive("vehicle.ride_height", c.Vehicle.RideHeight)
	positive("vehicle.wheel_radius", c.Vehicle.WheelRadius)

	positive("steering.max_angle", c.Steering.MaxAngle)
	positive("steering.rate", c.Steering.Rate)
	unit("brakes.front_bias", c.Brakes.FrontBias)
	positive("brakes.handbrake_fade_speed", c.Brakes.HandbrakeFadeSpeed)
	unit("brakes.handbrake_min_efficacy", c.Brakes.HandbrakeMinEfficacy)

	for name, axis := range map[string]AxisConfig{"tire.lateral": c.Tire.Lateral, "tire.longitudinal": c.Tire.Longitudinal} {
		positive(name+".b", axis.B)
		positive(name+".c", axis.C)
		positive(name+".d", axis.D)
		if axis.E > 1 {
			errs = append(errs, fmt.Errorf("%w: %s.e must be <= 1, got %g", ErrInvalid, name, axis.E))
		}
	}
	positive("tire.static_friction", c.Tire.StaticFriction)
	positive("tire.kinetic_friction", c.Tire.KineticFriction)
	if c.Tire.BlendEndSlip <= c.Tire.BlendStartSlip {
		errs = append(errs, fmt.Errorf("%w: tire.blend_end_slip must exceed tire.blend_start_slip", ErrInvalid))
	}
	unit("tire.soft_excess_retain", c.Tire.SoftExcessRetain)
	positive("tire.slip_speed_floor", c.Tire.SlipSpeedFloor)
	positive("tire.max_slip_angle", c.Tire.MaxSlipAngle)
	positive("tire.grip", c.Tire.Grip)

	positive("suspension.rate", c.Suspension.Rate)
	if c.Suspension.Damping < 0 {
		errs = append(errs, fmt.Errorf("%w: suspension.damping must be >= 0", ErrInvalid))
	}
	positive("suspension.max_compression", c.Suspension.MaxCompression)
	positive("suspension.max_extension", c.Suspension.MaxExtension)
	if c.Suspension.RestCompression < -c.Suspension.MaxExtension || c.Suspension.RestCompression > c.Suspension.MaxCompression {
		errs = append(errs, fmt.Errorf("%w: suspension.rest_compression %g outside travel", ErrInvalid, c.Suspension.RestCompression))
	}
	unit("suspension.transfer_max_fraction", c.Suspension.TransferMaxFraction)

	errs = append(errs, c.Drivetrain.validate()...)

	positive("integrator.max_accel_g", c.Integrator.MaxAccelG)
	unit("integrator.torque_clamp_blend", c.Integrator.TorqueClampBlend)
	positive("integrator.max_yaw_rate", c.Integrator.MaxYawRate)

	positive("contact.tolerance", c.Contact.Tolerance)
	positive("contact.max_pitch", c.Contact.MaxPitch)
	if c.Contact.KillHeight >= 0 {
		errs = append(errs, fmt.Errorf("%w: contact.kill_height must be below ground, got %g", ErrInvalid, c.Contact.KillHeight))
	}

	for name, p := range map[string]ProfileConfig{"collision.wall": c.Collision.Wall, "collision.gate": c.Collision.Gate} {
		if !(p.Restitution > 0 && p.Restitution < 1) {
			errs = append(errs, fmt.Errorf("%w: %s.restitution must be in (0,1), got %g", ErrInvalid, name, p.Restitution))
		}
		unit(name+".friction", p.Friction)
	}

	return errors.Join(errs...)
}

func (d DrivetrainConfig) validate() []error {
	var errs []error
	if len(d.GearRatios) == 0 {
		errs = append(errs, fmt.Errorf("%w: drivetrain.gear_ratios is empty", ErrInvalid))
	}
	if len(d.ShiftSpeeds) != len(d.GearRatios) {
		errs = append(errs, fmt.Errorf("%w: drivetrain.shift_speeds has %d entries, want %d", ErrInvalid, len(d.ShiftSpeeds), len(d.GearRatios)))
	}
	for i, r := range d.GearRatios {
		if !(r > 0) {
			errs = append(errs, fmt.Errorf("%w: drivetrain.gear_ratios[%d] must be > 0", ErrInvalid, i))
		}
	}
	for i := 1; i < len(d.ShiftSpeeds); i++ {
		if d.ShiftSpeeds[i] <= d.ShiftSpeeds[i-1] {
			errs = append(errs, fmt.Errorf("%w: drivetrain.shift_speeds must ascend at %d", ErrInvalid, i))
		}
	}
	if !(d.ReverseRatio > 0) || !(d.FinalDrive > 0) {
		errs = append(errs, fmt.Errorf("%w: drivetrain reverse_ratio and final_drive must be > 0", ErrInvalid))
	}
	if d.Efficiency <= 0 || d.Efficiency > 1 {
		errs = append(errs, fmt.Errorf("%w: drivetrain.efficiency must be in (0,1]", ErrInvalid))
	}
	if !(d.IdleRPM > 0) || d.RedlineRPM <= d.IdleRPM {
		errs = append(errs, fmt.Errorf("%w: drivetrain needs 0 < idle_rpm < redline_rpm", ErrInvalid))
	}
	if d.LimiterHysteresis < 0 || d.LimiterHysteresis >= d.RedlineRPM-d.IdleRPM {
		errs = append(errs, fmt.Errorf("%w: drivetrain.limiter_hysteresis out of range", ErrInvalid))
	}
	if !(d.MaxTorque > 0) || !(d.EngineInertia > 0) {
		errs = append(errs, fmt.Errorf("%w: drivetrain max_torque and engine_inertia must be > 0", ErrInvalid))
	}
	if d.MinCurveFactor <= 0 || d.MinCurveFactor > 1 {
		errs = append(errs, fmt.Errorf("%w: drivetrain.min_curve_factor must be in (0,1]", ErrInvalid))
	}
	if !(d.CurveLowWidth > 0) || !(d.CurveHighWidth > 0) {
		errs = append(errs, fmt.Errorf("%w: drivetrain curve widths must be > 0", ErrInvalid))
	}
	if !(d.ShiftTime >= 0) || !(d.ReverseDelay >= 0) {
		errs = append(errs, fmt.Errorf("%w: drivetrain timers must be >= 0", ErrInvalid))
	}
	if d.ClutchLaunchMin <= 0 || d.ClutchLaunchMin > 1 || !(d.ClutchLockSpeed > 0) {
		errs = append(errs, fmt.Errorf("%w: drivetrain clutch launch settings out of range", ErrInvalid))
	}
	return errs
}
