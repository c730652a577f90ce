package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 50 * time.Millisecond
)

// Engine Voice
const (
	// EngineFiringsPerRev for a four-stroke four-cylinder
	EngineFiringsPerRev = 2.0

	// EngineIdleGain and EngineLoadGain set amplitude as idle + load*throttle
	EngineIdleGain = 0.12
	EngineLoadGain = 0.18

	// EngineLimiterGain scales amplitude while fuel is cut
	EngineLimiterGain = 0.35

	// EngineGainSmoothing is the per-sample approach factor toward the target gain
	EngineGainSmoothing = 0.002

	// EngineSawMin/Max blend more saw in as load rises
	EngineSawMin = 0.2
	EngineSawMax = 0.8
)

// Collision Thump
const (
	ThumpDuration  = 300 * time.Millisecond
	ThumpDecay     = 9.0  // envelope rate 1/s
	ThumpRumbleHz  = 70.0 // low body resonance
	ThumpFullSpeed = 15.0 // impact speed at full volume in m/s
	ThumpMinGain   = 0.2
)

// Gear Chirp
const (
	ChirpDuration    = 40 * time.Millisecond
	ChirpUpshiftHz   = 880.0
	ChirpDownshiftHz = 660.0
	ChirpVolume      = -4.0 // base-2 exponent for effects.Volume
)

// Tire Squeal
const (
	SquealHz     = 1800.0
	SquealDetune = 70.0 // second partial offset in Hz
	SquealGain   = 0.08 // per skidding wheel
)

// MasterVolume is the base-2 exponent applied to the whole mix
const MasterVolume = -1.0
