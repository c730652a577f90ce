package status

// Metric keys published by the simulator
const (
	KeyTick       = "sim.tick"        // Ints
	KeyCollisions = "sim.collisions"  // Ints
	KeyRespawns   = "sim.respawns"    // Ints
	KeyViolations = "sim.violations"  // Ints, cumulative
	KeyDropped    = "sim.dropped_dt"  // Floats, seconds discarded by the dt clamp
	KeySpeed      = "vehicle.speed"   // Floats, m/s
	KeyTopSpeed   = "vehicle.top"     // Floats, m/s
	KeySkidding   = "vehicle.skid"    // Bools
	KeyContact    = "vehicle.contact" // Strings
	KeyRPM        = "engine.rpm"      // Floats
	KeyLimiter    = "engine.limiter"  // Bools
	KeyGear       = "drivetrain.gear" // Strings
	KeyClutch     = "drivetrain.clutch"
)
