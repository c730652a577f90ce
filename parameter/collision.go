package parameter

// Collision response per geometry kind
const (
	WallRestitution     = 0.35
	WallAngularVariance = 0.4 // rad/s random yaw kick scale
	WallFriction        = 0.2 // tangential speed loss fraction

	GateRestitution     = 0.5
	GateAngularVariance = 0.2
	GateFriction        = 0.1

	// MinImpactSpeed is the approach speed below which contact resolves silently in m/s
	MinImpactSpeed = 0.5
)

// World
const (
	// KillHeight is the y below which the vehicle respawns in m
	KillHeight = -30.0
)
