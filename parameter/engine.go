package parameter

import "time"

// Simulation Loop Timing
const (
	// FixedStepSeconds is the nominal simulation tick (60 Hz)
	FixedStepSeconds = 1.0 / 60.0

	// FrameUpdateInterval is the host loop interval matching FixedStepSeconds
	FrameUpdateInterval = time.Second / 60

	// MaxStepSeconds caps the dt handed to one tick; larger steps destabilize the spring-damper
	MaxStepSeconds = 0.1

	// DefaultSeed seeds the collision perturbation generator
	DefaultSeed = 0x9E3779B97F4A7C15
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)
