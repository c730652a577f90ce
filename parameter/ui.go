package parameter

import "time"

// Top-Down View
const (
	// ViewScale is columns per metre; rows cover twice the ground of a column
	ViewScale    = 2.0
	ViewMinScale = 0.5
	ViewMaxScale = 8.0
	ViewZoomStep = 1.25

	// SkidMarkCapacity bounds the skid mark ring
	SkidMarkCapacity = 2048

	// ImpactFlashFrames is how long the car and HUD flag an impact
	ImpactFlashFrames = 12
)

// HUD
const (
	RPMBarWidth   = 20
	RPMBarRedFrac = 0.9 // fraction of redline where the bar turns red
)

// Keyboard Input
const (
	// KeyHoldTimeout releases a key when the terminal stops repeating it
	// Terminals report presses only, so a held key is inferred from auto-repeat
	KeyHoldTimeout = 120 * time.Millisecond

	// KeyFirstRepeat covers the longer delay before a terminal starts auto-repeating
	KeyFirstRepeat = 550 * time.Millisecond
)

// Sandbox
const (
	// OpenGroundHalf is the half-size of the unwalled ground in metres; past it the car falls
	OpenGroundHalf = 150.0

	// LogMaxSize rotates the log file beyond this many bytes
	LogMaxSize = 10 << 20
)
