package parameter

// Chassis
// Low, rear-biased coupe: CoG sits closer to the rear axle
const (
	// VehicleMass is the total sprung + unsprung mass in kg
	VehicleMass = 1400.0

	// VehicleCoGToFront is the longitudinal distance from CoG to front axle in m
	VehicleCoGToFront = 1.4

	// VehicleCoGToRear is the longitudinal distance from CoG to rear axle in m
	VehicleCoGToRear = 1.2

	// VehicleTrackWidth is the lateral distance between left and right wheel centers in m
	VehicleTrackWidth = 1.55

	// VehicleCoGHeight is the center of gravity height above ground in m
	VehicleCoGHeight = 0.45

	// VehicleYawInertia is the moment of inertia about the vertical axis in kg·m²
	VehicleYawInertia = 2100.0

	// VehicleBodyLength is the collision footprint length in m
	VehicleBodyLength = 4.3

	// VehicleBodyWidth is the collision footprint width in m
	VehicleBodyWidth = 1.8

	// VehicleRideHeight is the body origin height above ground at static rest in m
	VehicleRideHeight = 0.45

	// VehicleWheelRadius is the rolling radius in m
	VehicleWheelRadius = 0.33
)

// Steering
const (
	// SteerMaxAngle is the front wheel lock angle at standstill in rad
	SteerMaxAngle = 0.6

	// SteerRate is the maximum slew rate of the front wheels in rad/s
	SteerRate = 2.5

	// SteerSpeedFactor reduces lock with speed: max = SteerMaxAngle / (1 + v*factor)
	SteerSpeedFactor = 0.05
)

// Brakes
const (
	// BrakeForce is the total service brake force demand in N
	BrakeForce = 9000.0

	// BrakeFrontBias is the fraction of brake force on the front axle
	BrakeFrontBias = 0.6

	// HandbrakeFadeSpeed sets handbrake efficacy: 1 / (1 + v/fade)
	HandbrakeFadeSpeed = 15.0

	// HandbrakeMinEfficacy floors handbrake efficacy at high speed
	HandbrakeMinEfficacy = 0.25
)

// Aerodynamics and rolling losses
const (
	// AirDensity in kg/m³
	AirDensity = 1.225

	// DragCoefficient is the body Cd
	DragCoefficient = 0.32

	// FrontalArea in m²
	FrontalArea = 2.2

	// RollingResistance is the rolling resistance coefficient (force = Crr * N)
	RollingResistance = 0.015
)
