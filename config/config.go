// Package config holds the immutable tuning snapshot consumed by the simulation step
// A Config is never mutated while a step runs; live tuning swaps in a new pointer between ticks
package config

import (
	"errors"

	"github.com/lixenwraith/vi-drive/parameter"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Step       StepConfig       `mapstructure:"step"`
	Vehicle    VehicleConfig    `mapstructure:"vehicle"`
	Steering   SteeringConfig   `mapstructure:"steering"`
	Brakes     BrakeConfig      `mapstructure:"brakes"`
	Aero       AeroConfig       `mapstructure:"aero"`
	Tire       TireConfig       `mapstructure:"tire"`
	Suspension SuspensionConfig `mapstructure:"suspension"`
	Drivetrain DrivetrainConfig `mapstructure:"drivetrain"`
	Integrator IntegratorConfig `mapstructure:"integrator"`
	Contact    ContactConfig    `mapstructure:"contact"`
	Collision  CollisionConfig  `mapstructure:"collision"`
}

type StepConfig struct {
	FixedStep float64 `mapstructure:"fixed_step"`
	MaxStep   float64 `mapstructure:"max_step"`
	Seed      uint64  `mapstructure:"seed"`
}

type VehicleConfig struct {
	Mass        float64 `mapstructure:"mass"`
	CoGToFront  float64 `mapstructure:"cog_to_front"`
	CoGToRear   float64 `mapstructure:"cog_to_rear"`
	TrackWidth  float64 `mapstructure:"track_width"`
	CoGHeight   float64 `mapstructure:"cog_height"`
	YawInertia  float64 `mapstructure:"yaw_inertia"`
	BodyLength  float64 `mapstructure:"body_length"`
	BodyWidth   float64 `mapstructure:"body_width"`
	RideHeight  float64 `mapstructure:"ride_height"`
	WheelRadius float64 `mapstructure:"wheel_radius"`
}

// Wheelbase is the axle-to-axle distance
func (v VehicleConfig) Wheelbase() float64 {
	return v.CoGToFront + v.CoGToRear
}

// Weight is the static weight in N
func (v VehicleConfig) Weight() float64 {
	return v.Mass * gravity
}

type SteeringConfig struct {
	MaxAngle    float64 `mapstructure:"max_angle"`
	Rate        float64 `mapstructure:"rate"`
	SpeedFactor float64 `mapstructure:"speed_factor"`
}

type BrakeConfig struct {
	Force                float64 `mapstructure:"force"`
	FrontBias            float64 `mapstructure:"front_bias"`
	HandbrakeFadeSpeed   float64 `mapstructure:"handbrake_fade_speed"`
	HandbrakeMinEfficacy float64 `mapstructure:"handbrake_min_efficacy"`
}

type AeroConfig struct {
	AirDensity        float64 `mapstructure:"air_density"`
	DragCoefficient   float64 `mapstructure:"drag_coefficient"`
	FrontalArea       float64 `mapstructure:"frontal_area"`
	RollingResistance float64 `mapstructure:"rolling_resistance"`
}

// AxisConfig is one Pacejka curve: D is a scale on friction * load
type AxisConfig struct {
	B float64 `mapstructure:"b"`
	C float64 `mapstructure:"c"`
	D float64 `mapstructure:"d"`
	E float64 `mapstructure:"e"`
}

type TireConfig struct {
	Lateral            AxisConfig `mapstructure:"lateral"`
	Longitudinal       AxisConfig `mapstructure:"longitudinal"`
	LowSpeedBoost      float64    `mapstructure:"low_speed_boost"`
	LowSpeedBoostSpeed float64    `mapstructure:"low_speed_boost_speed"`
	StaticFriction     float64    `mapstructure:"static_friction"`
	KineticFriction    float64    `mapstructure:"kinetic_friction"`
	BlendStartSlip     float64    `mapstructure:"blend_start_slip"`
	BlendEndSlip       float64    `mapstructure:"blend_end_slip"`
	SoftExcessRetain   float64    `mapstructure:"soft_excess_retain"`
	SlipSpeedFloor     float64    `mapstructure:"slip_speed_floor"`
	MaxSlipAngle       float64    `mapstructure:"max_slip_angle"`
	StillSpeed         float64    `mapstructure:"still_speed"`
	SpinGain           float64    `mapstructure:"spin_gain"`
	SkidSlipRatio      float64    `mapstructure:"skid_slip_ratio"`
	SkidSlipAngle      float64    `mapstructure:"skid_slip_angle"`
	Grip               float64    `mapstructure:"grip"`
}

type SuspensionConfig struct {
	Rate                float64 `mapstructure:"rate"`
	Damping             float64 `mapstructure:"damping"`
	RestCompression     float64 `mapstructure:"rest_compression"`
	MaxCompression      float64 `mapstructure:"max_compression"`
	MaxExtension        float64 `mapstructure:"max_extension"`
	TransferMaxFraction float64 `mapstructure:"transfer_max_fraction"`
	LongFrontBias       float64 `mapstructure:"long_front_bias"`
	LongRearBias        float64 `mapstructure:"long_rear_bias"`
	LatFrontBias        float64 `mapstructure:"lat_front_bias"`
	LatRearBias         float64 `mapstructure:"lat_rear_bias"`
}

type DrivetrainConfig struct {
	GearRatios        []float64 `mapstructure:"gear_ratios"`
	ShiftSpeeds       []float64 `mapstructure:"shift_speeds"`
	ReverseRatio      float64   `mapstructure:"reverse_ratio"`
	FinalDrive        float64   `mapstructure:"final_drive"`
	Efficiency        float64   `mapstructure:"efficiency"`
	ShiftTime         float64   `mapstructure:"shift_time"`
	DownshiftMargin   float64   `mapstructure:"downshift_margin"`
	StopSpeed         float64   `mapstructure:"stop_speed"`
	ReverseDelay      float64   `mapstructure:"reverse_delay"`
	IdleRPM           float64   `mapstructure:"idle_rpm"`
	RedlineRPM        float64   `mapstructure:"redline_rpm"`
	LimiterHysteresis float64   `mapstructure:"limiter_hysteresis"`
	TargetRPM         float64   `mapstructure:"target_rpm"`
	LaunchRPM         float64   `mapstructure:"launch_rpm"`
	MaxTorque         float64   `mapstructure:"max_torque"`
	MinCurveFactor    float64   `mapstructure:"min_curve_factor"`
	CurveLowWidth     float64   `mapstructure:"curve_low_width"`
	CurveHighWidth    float64   `mapstructure:"curve_high_width"`
	EngineInertia     float64   `mapstructure:"engine_inertia"`
	DragTorque        float64   `mapstructure:"drag_torque"`
	FrictionTorque    float64   `mapstructure:"friction_torque"`
	EngineBrakeTorque float64   `mapstructure:"engine_brake_torque"`
	IdleThrottle      float64   `mapstructure:"idle_throttle"`
	CouplingRate      float64   `mapstructure:"coupling_rate"`
	ClutchLaunchMin   float64   `mapstructure:"clutch_launch_min"`
	ClutchLockSpeed   float64   `mapstructure:"clutch_lock_speed"`
	StallSpeed        float64   `mapstructure:"stall_speed"`
}

// TopGear is the highest forward gear index
func (d DrivetrainConfig) TopGear() int {
	return len(d.GearRatios)
}

type IntegratorConfig struct {
	MaxAccelG        float64 `mapstructure:"max_accel_g"`
	TorqueClampBlend float64 `mapstructure:"torque_clamp_blend"`
	MaxYawRate       float64 `mapstructure:"max_yaw_rate"`
	RestSpeed        float64 `mapstructure:"rest_speed"`
	RestYawRate      float64 `mapstructure:"rest_yaw_rate"`
}

type ContactConfig struct {
	Tolerance        float64 `mapstructure:"tolerance"`
	GravityFull      float64 `mapstructure:"gravity_full"`
	GravityPartial   float64 `mapstructure:"gravity_partial"`
	GravityNone      float64 `mapstructure:"gravity_none"`
	PartialPitchRate float64 `mapstructure:"partial_pitch_rate"`
	AirPitchPerSpeed float64 `mapstructure:"air_pitch_per_speed"`
	MaxPitch         float64 `mapstructure:"max_pitch"`
	MaxRoll          float64 `mapstructure:"max_roll"`
	PartialMaxSag    float64 `mapstructure:"partial_max_sag"`
	KillHeight       float64 `mapstructure:"kill_height"`
}

type ProfileConfig struct {
	Restitution     float64 `mapstructure:"restitution"`
	AngularVariance float64 `mapstructure:"angular_variance"`
	Friction        float64 `mapstructure:"friction"`
}

type CollisionConfig struct {
	Wall           ProfileConfig `mapstructure:"wall"`
	Gate           ProfileConfig `mapstructure:"gate"`
	MinImpactSpeed float64       `mapstructure:"min_impact_speed"`
}

const gravity = 9.81

// Default assembles a Config from the parameter package
// Slices are copied so callers may edit the result freely
func Default() *Config {
	return &Config{
		Step: StepConfig{
			FixedStep: parameter.FixedStepSeconds,
			MaxStep:   parameter.MaxStepSeconds,
			Seed:      parameter.DefaultSeed,
		},
		Vehicle: VehicleConfig{
			Mass:        parameter.VehicleMass,
			CoGToFront:  parameter.VehicleCoGToFront,
			CoGToRear:   parameter.VehicleCoGToRear,
			TrackWidth:  parameter.VehicleTrackWidth,
			CoGHeight:   parameter.VehicleCoGHeight,
			YawInertia:  parameter.VehicleYawInertia,
			BodyLength:  parameter.VehicleBodyLength,
			BodyWidth:   parameter.VehicleBodyWidth,
			RideHeight:  parameter.VehicleRideHeight,
			WheelRadius: parameter.VehicleWheelRadius,
		},
		Steering: SteeringConfig{
			MaxAngle:    parameter.SteerMaxAngle,
			Rate:        parameter.SteerRate,
			SpeedFactor: parameter.SteerSpeedFactor,
		},
		Brakes: BrakeConfig{
			Force:                parameter.BrakeForce,
			FrontBias:            parameter.BrakeFrontBias,
			HandbrakeFadeSpeed:   parameter.HandbrakeFadeSpeed,
			HandbrakeMinEfficacy: parameter.HandbrakeMinEfficacy,
		},
		Aero: AeroConfig{
			AirDensity:        parameter.AirDensity,
			DragCoefficient:   parameter.DragCoefficient,
			FrontalArea:       parameter.FrontalArea,
			RollingResistance: parameter.RollingResistance,
		},
		Tire: TireConfig{
			Lateral: AxisConfig{
				B: parameter.TireLatStiffness,
				C: parameter.TireLatShape,
				D: parameter.TireLatPeakScale,
				E: parameter.TireLatCurvature,
			},
			Longitudinal: AxisConfig{
				B: parameter.TireLongStiffness,
				C: parameter.TireLongShape,
				D: parameter.TireLongPeakScale,
				E: parameter.TireLongCurvature,
			},
			LowSpeedBoost:      parameter.TireLowSpeedBoost,
			LowSpeedBoostSpeed: parameter.TireLowSpeedBoostSpeed,
			StaticFriction:     parameter.TireStaticFriction,
			KineticFriction:    parameter.TireKineticFriction,
			BlendStartSlip:     parameter.TireBlendStartSlip,
			BlendEndSlip:       parameter.TireBlendEndSlip,
			SoftExcessRetain:   parameter.TireSoftExcessRetain,
			SlipSpeedFloor:     parameter.TireSlipSpeedFloor,
			MaxSlipAngle:       parameter.TireMaxSlipAngle,
			StillSpeed:         parameter.TireStillSpeed,
			SpinGain:           parameter.TireSpinGain,
			SkidSlipRatio:      parameter.TireSkidSlipRatio,
			SkidSlipAngle:      parameter.TireSkidSlipAngle,
			Grip:               parameter.TireGrip,
		},
		Suspension: SuspensionConfig{
			Rate:                parameter.SpringRate,
			Damping:             parameter.SpringDamping,
			RestCompression:     parameter.SpringRestCompression,
			MaxCompression:      parameter.SpringMaxCompression,
			MaxExtension:        parameter.SpringMaxExtension,
			TransferMaxFraction: parameter.TransferMaxFraction,
			LongFrontBias:       parameter.TransferLongFrontBias,
			LongRearBias:        parameter.TransferLongRearBias,
			LatFrontBias:        parameter.TransferLatFrontBias,
			LatRearBias:         parameter.TransferLatRearBias,
		},
		Drivetrain: DrivetrainConfig{
			GearRatios:        append([]float64(nil), parameter.GearRatios...),
			ShiftSpeeds:       append([]float64(nil), parameter.ShiftSpeeds...),
			ReverseRatio:      parameter.ReverseRatio,
			FinalDrive:        parameter.FinalDrive,
			Efficiency:        parameter.DriveEfficiency,
			ShiftTime:         parameter.ShiftTime,
			DownshiftMargin:   parameter.DownshiftMargin,
			StopSpeed:         parameter.StopSpeed,
			ReverseDelay:      parameter.ReverseDelay,
			IdleRPM:           parameter.IdleRPM,
			RedlineRPM:        parameter.RedlineRPM,
			LimiterHysteresis: parameter.LimiterHysteresis,
			TargetRPM:         parameter.TargetRPM,
			LaunchRPM:         parameter.LaunchRPM,
			MaxTorque:         parameter.MaxTorque,
			MinCurveFactor:    parameter.MinCurveFactor,
			CurveLowWidth:     parameter.CurveLowWidth,
			CurveHighWidth:    parameter.CurveHighWidth,
			EngineInertia:     parameter.EngineInertia,
			DragTorque:        parameter.EngineDragTorque,
			FrictionTorque:    parameter.EngineFrictionTorque,
			EngineBrakeTorque: parameter.EngineBrakeTorque,
			IdleThrottle:      parameter.IdleThrottle,
			CouplingRate:      parameter.ClutchCouplingRate,
			ClutchLaunchMin:   parameter.ClutchLaunchMin,
			ClutchLockSpeed:   parameter.ClutchLockSpeed,
			StallSpeed:        parameter.StallSpeed,
		},
		Integrator: IntegratorConfig{
			MaxAccelG:        parameter.MaxAccelG,
			TorqueClampBlend: parameter.TorqueClampBlend,
			MaxYawRate:       parameter.MaxYawRate,
			RestSpeed:        parameter.RestSpeed,
			RestYawRate:      parameter.RestYawRate,
		},
		Contact: ContactConfig{
			Tolerance:        parameter.ContactTolerance,
			GravityFull:      parameter.GravityFull,
			GravityPartial:   parameter.GravityPartial,
			GravityNone:      parameter.GravityNone,
			PartialPitchRate: parameter.PartialPitchRate,
			AirPitchPerSpeed: parameter.AirPitchPerSpeed,
			MaxPitch:         parameter.MaxPitch,
			MaxRoll:          parameter.MaxRoll,
			PartialMaxSag:    parameter.PartialMaxSag,
			KillHeight:       parameter.KillHeight,
		},
		Collision: CollisionConfig{
			Wall: ProfileConfig{
				Restitution:     parameter.WallRestitution,
				AngularVariance: parameter.WallAngularVariance,
				Friction:        parameter.WallFriction,
			},
			Gate: ProfileConfig{
				Restitution:     parameter.GateRestitution,
				AngularVariance: parameter.GateAngularVariance,
				Friction:        parameter.GateFriction,
			},
			MinImpactSpeed: parameter.MinImpactSpeed,
		},
	}
}

// Clone returns a deep copy suitable for editing before a SetConfig swap
func (c *Config) Clone() *Config {
	cp := *c
	cp.Drivetrain.GearRatios = append([]float64(nil), c.Drivetrain.GearRatios...)
	cp.Drivetrain.ShiftSpeeds = append([]float64(nil), c.Drivetrain.ShiftSpeeds...)
	return &cp
}
