package parameter

// Gearbox
var (
	// GearRatios are the forward ratios, index 0 = 1st
	GearRatios = []float64{3.0, 2.3, 1.65, 1.25, 1.0, 0.82}

	// ShiftSpeeds are ascending speed thresholds in m/s at which each forward gear is selected
	ShiftSpeeds = []float64{0, 8, 15, 23, 31, 40}
)

const (
	// ReverseRatio is the reverse gear ratio magnitude
	ReverseRatio = 3.4

	// FinalDrive is the differential ratio
	FinalDrive = 3.9

	// DriveEfficiency is the fraction of engine torque reaching the wheels
	DriveEfficiency = 0.85

	// ShiftTime is the clutch-open duration of a gear change in s
	ShiftTime = 0.25

	// DownshiftMargin is the speed hysteresis below a band threshold before downshifting in m/s
	DownshiftMargin = 2.0

	// StopSpeed is the speed below which the vehicle counts as stopped in m/s
	StopSpeed = 0.3

	// ReverseDelay is how long the vehicle must be stopped with brake held before reverse engages in s
	ReverseDelay = 0.4
)

// Engine
const (
	IdleRPM    = 900.0
	RedlineRPM = 7000.0

	// LimiterHysteresis is how far RPM must fall below redline before fuel returns
	LimiterHysteresis = 400.0

	// TargetRPM is the torque peak
	TargetRPM = 4400.0

	// LaunchRPM is the slipping-clutch RPM at full throttle
	LaunchRPM = 3200.0

	// MaxTorque in N·m
	MaxTorque = 330.0

	// MinCurveFactor keeps the torque curve from reaching zero
	MinCurveFactor = 0.35

	// CurveLowWidth is the RPM span below TargetRPM over which the curve falls to zero (before clamp)
	CurveLowWidth = 3500.0

	// CurveHighWidth is the RPM span above TargetRPM over which the curve falls to zero (before clamp)
	CurveHighWidth = 3200.0

	// EngineInertia in kg·m²
	EngineInertia = 0.22

	// EngineDragTorque is internal drag at redline in N·m, scales linearly with RPM
	EngineDragTorque = 45.0

	// EngineFrictionTorque is constant internal friction in N·m
	EngineFrictionTorque = 8.0

	// EngineBrakeTorque is the closed-throttle retarding torque at redline in N·m
	EngineBrakeTorque = 55.0

	// IdleThrottle is the throttle below which the idle floor holds RPM
	IdleThrottle = 0.05
)

// Clutch
const (
	// ClutchCouplingRate is how fast engaged clutch pulls RPM to wheel RPM in 1/s
	ClutchCouplingRate = 12.0

	// ClutchLaunchMin is engagement at standstill with throttle applied
	ClutchLaunchMin = 0.35

	// ClutchLockSpeed is the speed at which a launch clutch is fully engaged in m/s
	ClutchLockSpeed = 7.0

	// StallSpeed is the speed below which a closed throttle opens the clutch in m/s
	StallSpeed = 1.0
)
