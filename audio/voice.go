package audio

import (
	"math"
	"sync/atomic"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/vi-drive/parameter"
	"github.com/lixenwraith/vi-drive/status"
)

// EngineVoice is an endless streamer whose pitch follows engine RPM
// Set is called from the host loop; Stream runs on the speaker goroutine
type EngineVoice struct {
	sr beep.SampleRate

	rpm     status.AtomicFloat
	load    status.AtomicFloat
	limiter atomic.Bool

	// Speaker goroutine only
	phase float64
	gain  float64
}

func NewEngineVoice(sr beep.SampleRate) *EngineVoice {
	return &EngineVoice{sr: sr}
}

// Set updates engine speed, pedal load in [0,1] and fuel-cut state
func (v *EngineVoice) Set(rpm, load float64, limiter bool) {
	v.rpm.Set(math.Max(rpm, 0))
	v.load.Set(math.Min(math.Max(load, 0), 1))
	v.limiter.Store(limiter)
}

// Frequency is the firing frequency for the current RPM in Hz
func (v *EngineVoice) Frequency() float64 {
	return v.rpm.Get() / 60 * parameter.EngineFiringsPerRev
}

func (v *EngineVoice) Stream(samples [][2]float64) (n int, ok bool) {
	freq := v.Frequency()
	load := v.load.Get()
	target := parameter.EngineIdleGain + parameter.EngineLoadGain*load
	if v.limiter.Load() {
		target *= parameter.EngineLimiterGain
	}
	saw := parameter.EngineSawMin + (parameter.EngineSawMax-parameter.EngineSawMin)*load
	step := freq / float64(v.sr)

	for i := range samples {
		v.gain += (target - v.gain) * parameter.EngineGainSmoothing
		s := (1-saw)*math.Sin(2*math.Pi*v.phase) + saw*(2*v.phase-1)
		s *= v.gain

		samples[i][0] = s
		samples[i][1] = s

		v.phase += step
		if v.phase >= 1 {
			v.phase -= math.Floor(v.phase)
		}
	}
	return len(samples), true
}

func (v *EngineVoice) Err() error {
	return nil
}
