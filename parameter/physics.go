package parameter

// Integrator limits
const (
	// MaxAccelG caps total planar acceleration at this multiple of g
	MaxAccelG = 1.6

	// TorqueClampBlend is how much of the force clamp is applied to yaw torque (0 = none, 1 = same)
	TorqueClampBlend = 0.5

	// MaxYawRate bounds yaw rate in rad/s
	MaxYawRate = 3.5

	// RestSpeed snaps planar speed to zero below this in m/s when no drive input
	RestSpeed = 0.05

	// RestYawRate snaps yaw rate to zero below this in rad/s when at rest
	RestYawRate = 0.02
)

// Ground contact regimes
const (
	// ContactTolerance is the wheel-to-ground gap still counted as contact in m
	ContactTolerance = 0.15

	// GravityFull/Partial/None are unsupported-gravity multipliers per contact regime
	GravityFull    = 0.0
	GravityPartial = 0.5
	GravityNone    = 1.0

	// PartialPitchRate is the tip rate when one axle loses support in rad/s
	PartialPitchRate = 0.6

	// AirPitchPerSpeed is the airborne nose-down rate per unit forward speed in (rad/s)/(m/s)
	AirPitchPerSpeed = 0.02

	// MaxPitch bounds body pitch in rad
	MaxPitch = 0.9

	// MaxRoll bounds body roll in rad
	MaxRoll = 0.3

	// PartialMaxSag is how far below ride height the body may sink while partially supported in m
	PartialMaxSag = 0.3
)

// Invariant checks
const (
	// LoadSumTolerance is the allowed gap between summed normal force and summed corner load, as a fraction of weight
	LoadSumTolerance = 0.5

	// InvariantSlack absorbs float rounding at clamped bounds
	InvariantSlack = 1e-9
)
