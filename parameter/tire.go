package parameter

// Lateral Pacejka coefficients
const (
	TireLatStiffness = 12.0 // B
	TireLatShape     = 1.4  // C
	TireLatPeakScale = 1.0  // D = friction * load * scale
	TireLatCurvature = 0.3  // E
)

// Longitudinal Pacejka coefficients
const (
	TireLongStiffness = 12.0 // B
	TireLongShape     = 1.65 // C
	TireLongPeakScale = 1.05 // D = friction * load * scale
	TireLongCurvature = 0.5  // E

	// TireLowSpeedBoost multiplies longitudinal D at standstill, fading out by TireLowSpeedBoostSpeed
	TireLowSpeedBoost = 1.4

	// TireLowSpeedBoostSpeed is the ground speed in m/s where the static-grip boost is gone
	TireLowSpeedBoostSpeed = 5.0
)

// Friction circle
const (
	// TireStaticFriction is the grip coefficient at small combined slip
	TireStaticFriction = 1.0

	// TireKineticFriction is the grip coefficient at large combined slip
	TireKineticFriction = 0.75

	// TireBlendStartSlip is the combined slip where static grip starts giving way
	TireBlendStartSlip = 0.1

	// TireBlendEndSlip is the combined slip where only kinetic grip remains
	TireBlendEndSlip = 0.6

	// TireSoftExcessRetain is the largest share of force beyond the circle that survives the clamp
	TireSoftExcessRetain = 0.7
)

// Slip computation
const (
	// TireSlipSpeedFloor is the minimum longitudinal speed used as slip angle denominator in m/s
	TireSlipSpeedFloor = 3.0

	// TireMaxSlipAngle bounds slip angle magnitude in rad
	TireMaxSlipAngle = 1.0

	// TireStillSpeed is the ground speed below which slip ratio uses the spin rule in m/s
	TireStillSpeed = 0.5

	// TireSpinGain converts demand beyond peak grip into additional slip ratio
	TireSpinGain = 1.0

	// TireSkidSlipRatio flags a wheel as skidding above this |slip ratio|
	TireSkidSlipRatio = 0.25

	// TireSkidSlipAngle flags a wheel as skidding above this |slip angle| in rad
	TireSkidSlipAngle = 0.2

	// TireGrip is the nominal grip used for the vehicle skid check (required lateral accel > grip·g)
	TireGrip = 1.0
)
